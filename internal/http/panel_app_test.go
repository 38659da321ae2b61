package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/catalogapi/catalogapitest"
	"catalogadmin/internal/http/handlers"
	"catalogadmin/internal/services"
)

// newPanelApp wires the real handlers to a fake catalog API.
func newPanelApp(t *testing.T, loginGuards ...fiber.Handler) (*fiber.App, *catalogapitest.Server) {
	t.Helper()
	srv := catalogapitest.NewServer(t)
	api := catalogapi.NewClient(srv.URL, catalogapitest.APIPath, 5*time.Second)
	deps := handlers.NewDeps(api, &services.CookieTokenStore{})

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	deps.Routes(app, loginGuards...)
	return app, srv
}

func postForm(path string, form url.Values, authed bool) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if authed {
		req.AddCookie(&http.Cookie{Name: services.TokenCookie, Value: catalogapitest.Token})
	}
	return req
}

func getAuthed(path string) *http.Request {
	req := httptest.NewRequest("GET", path, nil)
	req.AddCookie(&http.Cookie{Name: services.TokenCookie, Value: catalogapitest.Token})
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", req.Method, req.URL, err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func extractCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func loginForm(user, pass string) url.Values {
	return url.Values{"username": {user}, "password": {pass}}
}
