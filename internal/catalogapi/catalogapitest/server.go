// Package catalogapitest runs an in-process stand-in for the hosted catalog
// API so clients and handlers can be exercised end to end.
package catalogapitest

import (
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"catalogadmin/internal/domain"
)

const (
	Username = "admin@example.test"
	Password = "example"
	Token    = "tok-123"
	APIPath  = "shop"
)

// Route keys for Calls, Fail and LastBody.
const (
	RouteSignIn = "signin"
	RouteCheck  = "check"
	RouteList   = "list"
	RouteCreate = "create"
	RouteUpdate = "update"
	RouteDelete = "delete"
)

type Server struct {
	URL     string
	Expires time.Time

	mu       sync.Mutex
	app      *fiber.App
	products []domain.Product
	nextID   int
	calls    map[string]int
	fail     map[string]int
	bodies   map[string][]byte
	paths    map[string]string
	auth     map[string]string
	hold     map[string]chan struct{}
}

func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		Expires: time.Now().Add(24 * time.Hour).Truncate(time.Millisecond),
		nextID:  1,
		calls:   map[string]int{},
		fail:    map[string]int{},
		bodies:  map[string][]byte{},
		paths:   map[string]string{},
		auth:    map[string]string{},
		hold:    map[string]chan struct{}{},
	}
	s.app = fiber.New(fiber.Config{DisableStartupMessage: true, Immutable: true})
	s.routes()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s.URL = "http://" + ln.Addr().String()
	go func() { _ = s.app.Listener(ln) }()
	t.Cleanup(func() { _ = s.app.Shutdown() })
	return s
}

// Seed adds products and returns them with ids assigned.
func (s *Server) Seed(ps ...domain.Product) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if p.ID == "" {
			p.ID = strconv.Itoa(s.nextID)
			s.nextID++
		}
		s.products = append(s.products, p)
		out = append(out, p)
	}
	return out
}

func (s *Server) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.products...)
}

func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// Fail makes route answer with status until Fail(route, 0) is called.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[route] = status
}

// Hold blocks route until the returned func is called.
func (s *Server) Hold(route string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold[route] = ch
	s.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (s *Server) LastBody(route string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[route]
}

func (s *Server) LastPath(route string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paths[route]
}

func (s *Server) LastAuth(route string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth[route]
}

func (s *Server) routes() {
	s.app.Post("/v2/admin/signin", s.track(RouteSignIn, false, s.signIn))
	s.app.Post("/v2/api/user/check", s.track(RouteCheck, true, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "uid": "u-1"})
	}))

	admin := s.app.Group("/v2/api/" + APIPath + "/admin")
	admin.Get("/products", s.track(RouteList, true, s.list))
	admin.Post("/product", s.track(RouteCreate, true, s.create))
	admin.Put("/product/:id", s.track(RouteUpdate, true, s.update))
	admin.Delete("/product/:id", s.track(RouteDelete, true, s.remove))
}

func (s *Server) track(route string, authed bool, h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s.mu.Lock()
		s.calls[route]++
		s.bodies[route] = append([]byte(nil), c.Body()...)
		s.paths[route] = c.Path()
		s.auth[route] = c.Get(fiber.HeaderAuthorization)
		status := s.fail[route]
		hold := s.hold[route]
		s.mu.Unlock()

		if hold != nil {
			<-hold
		}
		if status != 0 {
			return c.Status(status).JSON(fiber.Map{"success": false, "message": "forced failure"})
		}
		if authed && c.Get(fiber.HeaderAuthorization) != Token {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "請重新登入"})
		}
		return h(c)
	}
}

func (s *Server) signIn(c *fiber.Ctx) error {
	var cred domain.Credentials
	if err := c.BodyParser(&cred); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "bad body"})
	}
	if cred.Username != Username || cred.Password != Password {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "登入失敗"})
	}
	return c.JSON(fiber.Map{"success": true, "token": Token, "expired": s.Expires.UnixMilli()})
}

func (s *Server) list(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "products": s.Products()})
}

type productBody struct {
	Data domain.Product `json:"data"`
}

func (s *Server) create(c *fiber.Ctx) error {
	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": []string{"bad body"}})
	}
	if body.Data.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": []string{"title 屬性不得為空"}})
	}
	body.Data.ID = ""
	s.Seed(body.Data)
	return c.JSON(fiber.Map{"success": true, "message": "已建立產品"})
}

func (s *Server) update(c *fiber.Ctx) error {
	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "bad body"})
	}
	id := c.Params("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			body.Data.ID = id
			s.products[i] = body.Data
			return c.JSON(fiber.Map{"success": true, "message": "已更新產品"})
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "找不到產品"})
}

func (s *Server) remove(c *fiber.Ctx) error {
	id := c.Params("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return c.JSON(fiber.Map{"success": true, "message": "已刪除產品"})
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "找不到產品"})
}
