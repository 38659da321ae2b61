package services_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogadmin/internal/domain"
	"catalogadmin/internal/repos"
	"catalogadmin/internal/services"
)

// storeApp exposes Save on POST /save and Load on GET /load.
func storeApp(st services.TokenStore, s domain.Session) *fiber.App {
	app := fiber.New()
	app.Post("/save", func(c *fiber.Ctx) error { return st.Save(c, s) })
	app.Get("/load", func(c *fiber.Ctx) error {
		got, ok := st.Load(c)
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(got.Token)
	})
	app.Post("/clear", func(c *fiber.Ctx) error { return st.Clear(c) })
	return app
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func loadWith(t *testing.T, app *fiber.App, ck *http.Cookie) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/load", nil)
	if ck != nil {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestCookieTokenStore(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second)
	app := storeApp(&services.CookieTokenStore{}, domain.Session{Token: "tok-c", ExpiresAt: exp})

	resp, err := app.Test(httptest.NewRequest("POST", "/save", nil))
	require.NoError(t, err)
	ck := cookieNamed(resp, services.TokenCookie)
	require.NotNil(t, ck)
	assert.Equal(t, "tok-c", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Expires.Equal(exp), "cookie expires %v, want %v", ck.Expires, exp)

	code, body := loadWith(t, app, ck)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "tok-c", body)

	code, _ = loadWith(t, app, nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestSQLTokenStore(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	st := &services.SQLTokenStore{Repo: repos.NewSessionRepo(db)}
	app := storeApp(st, domain.Session{Token: "tok-s", ExpiresAt: time.Now().Add(time.Hour)})

	resp, err := app.Test(httptest.NewRequest("POST", "/save", nil))
	require.NoError(t, err)
	ck := cookieNamed(resp, services.SIDCookie)
	require.NotNil(t, ck)
	assert.NotEqual(t, "tok-s", ck.Value, "token must not leave the server")
	assert.Nil(t, cookieNamed(resp, services.TokenCookie))

	code, body := loadWith(t, app, ck)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "tok-s", body)

	req := httptest.NewRequest("POST", "/clear", nil)
	req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	_, err = app.Test(req)
	require.NoError(t, err)

	code, _ = loadWith(t, app, ck)
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestSQLTokenStoreIssuesFreshSID(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	repo := repos.NewSessionRepo(db)
	st := &services.SQLTokenStore{Repo: repo}
	app := storeApp(st, domain.Session{Token: "victim-tok", ExpiresAt: time.Now().Add(time.Hour)})

	// a sid the browser already carries, bound or not, is never reused
	require.NoError(t, repo.Bind("known-sid", domain.Session{Token: "old-tok", ExpiresAt: time.Now().Add(time.Hour)}))
	for _, planted := range []string{"attacker-chosen", "known-sid"} {
		req := httptest.NewRequest("POST", "/save", nil)
		req.AddCookie(&http.Cookie{Name: services.SIDCookie, Value: planted})
		resp, err := app.Test(req)
		require.NoError(t, err)

		ck := cookieNamed(resp, services.SIDCookie)
		require.NotNil(t, ck)
		assert.NotEqual(t, planted, ck.Value)

		code, body := loadWith(t, app, ck)
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, "victim-tok", body)

		code, _ = loadWith(t, app, &http.Cookie{Name: services.SIDCookie, Value: planted})
		assert.Equal(t, fiber.StatusUnauthorized, code, planted)
	}
}
