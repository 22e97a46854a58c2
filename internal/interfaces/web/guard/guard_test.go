package guard_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/interfaces/web/guard"
	"github.com/jhoicas/Supermercado-api/pkg/jwt"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testIssuer   = "supermercado-api-test"
	testAudience = "supermercado-web-test"
)

func newIssuer(t *testing.T, ttl time.Duration) *jwt.Issuer {
	t.Helper()
	iss, err := jwt.NewIssuer(jwt.Config{Secret: testSecret, Issuer: testIssuer, Audience: testAudience, TTL: ttl})
	require.NoError(t, err)
	return iss
}

func token(t *testing.T, role entity.Role, globalAdmin bool) string {
	t.Helper()
	tok, err := newIssuer(t, time.Hour).Issue(jwt.Identity{
		UserID: "u-1", Email: "caja@mercado.com", Role: string(role), GlobalAdmin: globalAdmin, CompanyID: "c-1",
	})
	require.NoError(t, err)
	return tok
}

// ──────────────────────────────────────────────────────────────────────────────
// Evaluate
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_CajeroEnVentas(t *testing.T) {
	g := guard.New(newIssuer(t, time.Hour), nil)
	tok := token(t, entity.RoleCashier, false)

	for _, p := range []string{"/sales", "/sales/anything", "/vendas/caixa/1"} {
		assert.Equal(t, guard.Allow, g.Evaluate(p, tok).Action, p)
	}
}

func TestEvaluate_CajeroEnFinancieroVaAForbidden(t *testing.T) {
	g := guard.New(newIssuer(t, time.Hour), nil)
	d := g.Evaluate("/financeiro/anything", token(t, entity.RoleCashier, false))

	assert.Equal(t, guard.RedirectForbidden, d.Action)
	assert.Equal(t, "/forbidden", d.Location)
	assert.False(t, d.ClearCookie, "un token válido no se borra por falta de permisos")
}

func TestEvaluate_AdminGlobalPasaTodo(t *testing.T) {
	g := guard.New(newIssuer(t, time.Hour), nil)
	tok := token(t, "", true)

	for _, p := range []string{"/management", "/gestao/usuarios", "/financial", "/cadastros/produtos"} {
		assert.Equal(t, guard.Allow, g.Evaluate(p, tok).Action, p)
	}
}

func TestEvaluate_SinTokenRedirigeAlLogin(t *testing.T) {
	g := guard.New(newIssuer(t, time.Hour), nil)
	d := g.Evaluate("/vendas", "")

	assert.Equal(t, guard.RedirectLogin, d.Action)
	assert.Equal(t, "/login?redirect=/vendas", d.Location)
	assert.True(t, d.ClearCookie)
}

func TestEvaluate_TokenInvalidoOExpirado(t *testing.T) {
	g := guard.New(newIssuer(t, time.Hour), nil)
	expired, err := newIssuer(t, -time.Minute).Issue(jwt.Identity{UserID: "u-1", Role: "Manager"})
	require.NoError(t, err)

	for _, tok := range []string{"basura", expired} {
		d := g.Evaluate("/gestao", tok)
		assert.Equal(t, guard.RedirectLogin, d.Action)
		assert.True(t, d.ClearCookie)
		assert.Error(t, d.Reason)
	}
}

func TestEvaluate_RutasPublicasYNoProtegidas(t *testing.T) {
	g := guard.New(newIssuer(t, time.Hour), nil)
	for _, p := range []string{"/", "/login", "/register", "/auth/callback", "/forbidden", "/logout",
		"/assets/app.js", "/favicon.ico", "/ayuda", "/salesx"} {
		assert.Equal(t, guard.Allow, g.Evaluate(p, "").Action, p)
	}
}

func TestEvaluate_PrefijoPorSegmento(t *testing.T) {
	assert.True(t, guard.IsSecured("/sales"))
	assert.True(t, guard.IsSecured("/sales/x"))
	assert.False(t, guard.IsSecured("/salesx"))
	assert.False(t, guard.IsSecured("/financeiros"))
}

func TestEvaluate_NoSeEvadeConPuntos(t *testing.T) {
	g := guard.New(newIssuer(t, time.Hour), nil)
	d := g.Evaluate("/sales/../financeiro", token(t, entity.RoleCashier, false))

	assert.Equal(t, guard.RedirectForbidden, d.Action)
}

func TestEvaluate_PathCodificadoSeDecodificaAntesDeComparar(t *testing.T) {
	g := guard.New(newIssuer(t, time.Hour), nil)

	d := g.Evaluate("/%66inanceiro/x", token(t, entity.RoleCashier, false))
	assert.Equal(t, guard.RedirectForbidden, d.Action)
	assert.Equal(t, "/forbidden", d.Location)

	d = g.Evaluate("/%76endas", "")
	assert.Equal(t, guard.RedirectLogin, d.Action)
	assert.Equal(t, "/login?redirect=/vendas", d.Location)

	assert.Equal(t, guard.Allow, g.Evaluate("/%73ales/caixa", token(t, entity.RoleCashier, false)).Action)
}

func TestEvaluate_CodificacionAmbiguaSeDeniega(t *testing.T) {
	g := guard.New(newIssuer(t, time.Hour), nil)
	tok := token(t, entity.RoleCashier, false)

	for _, p := range []string{"/financeiro%2Fx", "/sales%2f..%2ffinanceiro", "/%2566inanceiro", "/%zz", "/sales\\..\\financeiro"} {
		d := g.Evaluate(p, tok)
		assert.Equal(t, guard.RedirectForbidden, d.Action, p)
		assert.Equal(t, "/forbidden", d.Location, p)
		assert.Equal(t, guard.RedirectForbidden, g.Evaluate(p, "").Action, p)
	}
}

func TestEvaluate_RedirectEscapaQuery(t *testing.T) {
	g := guard.New(newIssuer(t, time.Hour), nil)
	d := g.Evaluate("/vendas/a&b=c", "")

	assert.Equal(t, "/login?redirect=/vendas/a%26b%3Dc", d.Location)
}

// ──────────────────────────────────────────────────────────────────────────────
// Middleware
// ──────────────────────────────────────────────────────────────────────────────

func guardedApp(t *testing.T, buf *bytes.Buffer) *fiber.App {
	app := fiber.New()
	app.Use(guard.New(newIssuer(t, time.Hour), logger.FromWriter(buf)).Middleware(true))
	app.Get("/*", func(c *fiber.Ctx) error { return c.SendString("page") })
	return app
}

func get(t *testing.T, app *fiber.App, target, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: jwt.CookieName, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestMiddleware_TokenInvalidoBorraCookieYRegistraWarn(t *testing.T) {
	var buf bytes.Buffer
	resp := get(t, guardedApp(t, &buf), "/vendas", "token.roto.x")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirect=/vendas", resp.Header.Get("Location"))

	var cleared *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == jwt.CookieName {
			cleared = ck
		}
	}
	require.NotNil(t, cleared, "la cookie debe expirarse")
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0 || cleared.Expires.Before(time.Now()))

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.NotContains(t, buf.String(), testSecret)
}

func TestMiddleware_PermiteYForbidden(t *testing.T) {
	var buf bytes.Buffer
	app := guardedApp(t, &buf)

	resp := get(t, app, "/sales/caixa", token(t, entity.RoleCashier, false))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, app, "/financeiro", token(t, entity.RoleCashier, false))
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/forbidden", resp.Header.Get("Location"))
}

func TestMiddleware_OtrosMetodosNoSeEvaluan(t *testing.T) {
	app := fiber.New()
	app.Use(guard.New(newIssuer(t, time.Hour), nil).Middleware(true))
	app.Post("/vendas", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/vendas", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}
