package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Supermercado-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Supermercado-api/pkg/jwt"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "supermercado-api-test"
	testAudience  = "supermercado-web-test"
)

func newIssuer(t *testing.T, ttl time.Duration) *pkgjwt.Issuer {
	t.Helper()
	iss, err := pkgjwt.NewIssuer(pkgjwt.Config{Secret: testJWTSecret, Issuer: testIssuer, Audience: testAudience, TTL: ttl})
	require.NoError(t, err)
	return iss
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para verificar el JWT y cargar locals
//   - RequireArea para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(t *testing.T, area entity.Area) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(newIssuer(t, time.Hour), logger.Nop()),
		apphttp.RequireArea(area),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT con el rol indicado.
func tokenFor(t *testing.T, role entity.Role, globalAdmin bool) string {
	t.Helper()
	tok, err := newIssuer(t, time.Hour).Issue(pkgjwt.Identity{
		UserID:      testUserID,
		Email:       "usuario@mercado.com",
		Role:        string(role),
		GlobalAdmin: globalAdmin,
		CompanyID:   testCompanyID,
	})
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireArea
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireArea_CajeroAccedeAVentas(t *testing.T) {
	app := buildTestApp(t, entity.AreaSales)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, entity.RoleCashier, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Cashier debe acceder al área de ventas")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Cashier", body["role"])
}

func TestRequireArea_CajeroBloqueadoEnFinanciero(t *testing.T) {
	app := buildTestApp(t, entity.AreaFinancial)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, entity.RoleCashier, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN", "la respuesta de error debe incluir el código FORBIDDEN")
}

func TestRequireArea_FinancieroSoloFinanciero(t *testing.T) {
	tok := "Bearer " + tokenFor(t, entity.RoleFinancial, false)
	cases := map[entity.Area]int{
		entity.AreaFinancial:     http.StatusOK,
		entity.AreaSales:         http.StatusForbidden,
		entity.AreaRegistrations: http.StatusForbidden,
		entity.AreaManagement:    http.StatusForbidden,
	}
	for area, want := range cases {
		resp := doRequest(t, buildTestApp(t, area), tok)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode, "área %s", area)
	}
}

func TestRequireArea_GerenteAccedeATodas(t *testing.T) {
	tok := "Bearer " + tokenFor(t, entity.RoleManager, false)
	for _, area := range entity.Areas {
		resp := doRequest(t, buildTestApp(t, area), tok)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "área %s", area)
	}
}

func TestRequireArea_AdminGlobalPasaSinRol(t *testing.T) {
	app := buildTestApp(t, entity.AreaManagement)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, "", true))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "el admin global no depende del rol")
}

func TestRequireArea_RolDesconocido(t *testing.T) {
	app := buildTestApp(t, entity.AreaSales)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, "Auditor", false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinToken_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.AreaSales)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.AreaSales)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoSinBearer(t *testing.T) {
	app := buildTestApp(t, entity.AreaSales)
	resp := doRequest(t, app, "Token "+tokenFor(t, entity.RoleCashier, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	tok, err := newIssuer(t, -time.Minute).Issue(pkgjwt.Identity{UserID: testUserID, Role: "Cashier"})
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(t, entity.AreaSales), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_AceptaCookie(t *testing.T) {
	app := buildTestApp(t, entity.AreaSales)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: pkgjwt.CookieName, Value: tokenFor(t, entity.RoleCashier, false)})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "la cookie jwt_token debe aceptarse como transporte")
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(newIssuer(t, time.Hour), nil), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":      apphttp.GetUserID(c),
			"company_id":   apphttp.GetCompanyID(c),
			"role":         apphttp.GetRole(c),
			"email":        apphttp.GetEmail(c),
			"global_admin": apphttp.IsGlobalAdmin(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, entity.RoleAdministrator, false))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, "Administrator", body["role"])
	assert.Equal(t, "usuario@mercado.com", body["email"])
	assert.Equal(t, false, body["global_admin"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireGlobalAdmin / RequireActiveSubscription
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireGlobalAdmin(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", apphttp.AuthMiddleware(newIssuer(t, time.Hour), nil), apphttp.RequireGlobalAdmin(),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for _, tc := range []struct {
		name   string
		token  string
		status int
	}{
		{"administrador del tenant", tokenFor(t, entity.RoleAdministrator, false), http.StatusForbidden},
		{"admin global", tokenFor(t, "", true), http.StatusOK},
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+tc.token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode, tc.name)
	}
}

type stubSubscriptions struct {
	active bool
	err    error
	calls  int
}

func (s *stubSubscriptions) IsActive(context.Context, string) (bool, error) {
	s.calls++
	return s.active, s.err
}

func subscriptionApp(t *testing.T, checker *stubSubscriptions) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(newIssuer(t, time.Hour), nil),
		apphttp.RequireActiveSubscription(checker, logger.Nop()),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestRequireActiveSubscription(t *testing.T) {
	cashier := "Bearer " + tokenFor(t, entity.RoleCashier, false)

	resp := doRequest(t, subscriptionApp(t, &stubSubscriptions{active: true}), cashier)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, subscriptionApp(t, &stubSubscriptions{active: false}), cashier)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.Contains(t, string(body), "SUBSCRIPTION_INACTIVE")

	resp = doRequest(t, subscriptionApp(t, &stubSubscriptions{err: errors.New("db caída")}), cashier)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRequireActiveSubscription_AdminGlobalNoConsulta(t *testing.T) {
	checker := &stubSubscriptions{}
	resp := doRequest(t, subscriptionApp(t, checker), "Bearer "+tokenFor(t, "", true))
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, checker.calls)
}
