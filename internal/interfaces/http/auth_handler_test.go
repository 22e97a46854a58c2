package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Supermercado-api/internal/interfaces/http"
)

const testFrontend = "https://app.mercado.test"

// fakeAuth implementa el contrato de auth que consume el handler.
type fakeAuth struct {
	mu          sync.Mutex
	registerErr error
	linkErr     error
	exchangeErr error
	access      string
	linkEmails  []string
	registered  []dto.RegisterRequest
}

func (f *fakeAuth) Register(_ context.Context, in dto.RegisterRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, in)
	return f.registerErr
}

func (f *fakeAuth) RequestLink(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkEmails = append(f.linkEmails, email)
	return f.linkErr
}

func (f *fakeAuth) Exchange(context.Context, string, string) (string, error) {
	return f.access, f.exchangeErr
}

// routerApp monta el router completo; los casos de uso del tenant no se invocan en estos tests.
func routerApp(t *testing.T, fa *fakeAuth, perIP int) *fiber.App {
	t.Helper()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         fa,
		Verifier:       newIssuer(t, time.Hour),
		FrontendURL:    testFrontend + "/",
		MagicLinkPerIP: perIP,
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, dto.Result) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out dto.Result
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

const validRegistration = `{"name":"Mercado Central","legal_name":"Mercado Central Ltda","tax_id":"12.345.678/0001-90",
"admin_name":"Ana","admin_email":"ana@mercado.com"}`

// ──────────────────────────────────────────────────────────────────────────────
// POST /auth/register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_Exitoso(t *testing.T) {
	fa := &fakeAuth{}
	resp, out := postJSON(t, routerApp(t, fa, 0), "/auth/register", validRegistration)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, out.IsSuccess)
	assert.Empty(t, out.Error)
	require.Len(t, fa.registered, 1)
	assert.Equal(t, "12.345.678/0001-90", fa.registered[0].TaxID, "la normalización es responsabilidad del caso de uso")
}

func TestRegister_CamposFaltantes(t *testing.T) {
	fa := &fakeAuth{}
	resp, out := postJSON(t, routerApp(t, fa, 0), "/auth/register", `{"name":"Mercado"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, out.IsSuccess)
	assert.Contains(t, out.Error, "admin_email")
	assert.Empty(t, fa.registered, "no debe invocarse el caso de uso con datos inválidos")
}

func TestRegister_CuerpoMalformado(t *testing.T) {
	resp, out := postJSON(t, routerApp(t, &fakeAuth{}, 0), "/auth/register", `{no es json`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, out.IsSuccess)
}

func TestRegister_DuplicadoDevuelveMotivo(t *testing.T) {
	fa := &fakeAuth{registerErr: &domain.RegistrationError{
		Reason: "ya existe un supermercado con ese documento fiscal",
		Cause:  domain.ErrDuplicateTaxID,
	}}
	resp, out := postJSON(t, routerApp(t, fa, 0), "/auth/register", validRegistration)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, out.IsSuccess)
	assert.Equal(t, "ya existe un supermercado con ese documento fiscal", out.Error)
}

func TestRegister_ErrorInternoNoFiltraDetalle(t *testing.T) {
	fa := &fakeAuth{registerErr: errors.New("pq: connection refused 10.0.0.5")}
	resp, out := postJSON(t, routerApp(t, fa, 0), "/auth/register", validRegistration)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, out.IsSuccess)
	assert.NotContains(t, out.Error, "10.0.0.5")
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /auth/magic-link
// ──────────────────────────────────────────────────────────────────────────────

func TestMagicLink_SiempreExito(t *testing.T) {
	fa := &fakeAuth{}
	resp, out := postJSON(t, routerApp(t, fa, 0), "/auth/magic-link", `{"email":"nadie@mercado.com"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, out.IsSuccess)
	assert.Equal(t, []string{"nadie@mercado.com"}, fa.linkEmails)
}

func TestMagicLink_EmailInvalido(t *testing.T) {
	fa := &fakeAuth{}
	resp, out := postJSON(t, routerApp(t, fa, 0), "/auth/magic-link", `{"email":"no-es-email"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, out.IsSuccess)
	assert.Empty(t, fa.linkEmails)
}

func TestMagicLink_ErrorDeInfraestructura(t *testing.T) {
	fa := &fakeAuth{linkErr: errors.New("db caída")}
	resp, out := postJSON(t, routerApp(t, fa, 0), "/auth/magic-link", `{"email":"ana@mercado.com"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, out.IsSuccess)
}

func TestMagicLink_LimitePorIP(t *testing.T) {
	app := routerApp(t, &fakeAuth{}, 2)
	for i := 0; i < 2; i++ {
		resp, _ := postJSON(t, app, "/auth/magic-link", `{"email":"ana@mercado.com"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, out := postJSON(t, app, "/auth/magic-link", `{"email":"ana@mercado.com"}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.False(t, out.IsSuccess)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /auth/magic-login
// ──────────────────────────────────────────────────────────────────────────────

func getRaw(t *testing.T, app *fiber.App, target, bearer string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestMagicLogin_RedirigeConToken(t *testing.T) {
	fa := &fakeAuth{access: "header.payload.firma"}
	resp := getRaw(t, routerApp(t, fa, 0), "/auth/magic-login?token=abc&email=ana%40mercado.com", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "app.mercado.test", loc.Host)
	assert.Equal(t, "/auth/callback", loc.Path)
	assert.Equal(t, "header.payload.firma", loc.Query().Get("jwt"))
}

func TestMagicLogin_TokenInvalidoRedirigeALogin(t *testing.T) {
	fa := &fakeAuth{exchangeErr: domain.ErrInvalidOrExpiredToken}
	resp := getRaw(t, routerApp(t, fa, 0), "/auth/magic-login?token=abc&email=ana%40mercado.com", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, testFrontend+"/login?error=auth_failed", resp.Header.Get("Location"))
}

func TestMagicLogin_ParametrosFaltantes(t *testing.T) {
	app := routerApp(t, &fakeAuth{access: "x"}, 0)
	for _, target := range []string{
		"/auth/magic-login",
		"/auth/magic-login?token=abc",
		"/auth/magic-login?email=ana%40mercado.com",
	} {
		resp := getRaw(t, app, target, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, target)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /auth/me y autorización de grupos del API
// ──────────────────────────────────────────────────────────────────────────────

func TestMe_DevuelveClaims(t *testing.T) {
	resp := getRaw(t, routerApp(t, &fakeAuth{}, 0), "/auth/me", tokenFor(t, entity.RoleFinancial, false))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.MeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, testUserID, me.UserID)
	assert.Equal(t, "Financial", me.Role)
	assert.Equal(t, testCompanyID, me.CompanyID)
	assert.Equal(t, []string{"financial"}, me.Areas)
}

func TestMe_AdminGlobalVeTodasLasAreas(t *testing.T) {
	resp := getRaw(t, routerApp(t, &fakeAuth{}, 0), "/auth/me", tokenFor(t, entity.RoleCashier, true))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.MeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, []string{"sales", "registrations", "financial", "management"}, me.Areas)
}

func TestMe_SinToken(t *testing.T) {
	resp := getRaw(t, routerApp(t, &fakeAuth{}, 0), "/auth/me", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_AreasBloqueanAntesDelHandler(t *testing.T) {
	app := routerApp(t, &fakeAuth{}, 0)
	cases := []struct {
		path   string
		token  string
		status int
	}{
		{"/api/financial/transactions", tokenFor(t, entity.RoleCashier, false), http.StatusForbidden},
		{"/api/products", tokenFor(t, entity.RoleCashier, false), http.StatusForbidden},
		{"/api/sales", tokenFor(t, entity.RoleFinancial, false), http.StatusForbidden},
		{"/api/users", tokenFor(t, entity.RoleFinancial, false), http.StatusForbidden},
		{"/api/admin/supermarkets", tokenFor(t, entity.RoleAdministrator, false), http.StatusForbidden},
		{"/api/sales", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		resp := getRaw(t, app, tc.path, tc.token)
		resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
	}
}
