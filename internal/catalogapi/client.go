// Package catalogapi talks to the hosted e-commerce admin API.
package catalogapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"catalogadmin/internal/domain"
)

// API is the subset of the remote service the panel depends on.
type API interface {
	SignIn(cred domain.Credentials) (domain.Session, error)
	Check(s domain.Session) error
	ListProducts(s domain.Session) ([]domain.Product, error)
	CreateProduct(s domain.Session, p domain.Product) error
	UpdateProduct(s domain.Session, id string, p domain.Product) error
	DeleteProduct(s domain.Session, id string) error
}

type Client struct {
	baseURL string
	apiPath string
	timeout time.Duration
	http    *fiber.Client
}

func NewClient(baseURL, apiPath string, timeout time.Duration) *Client {
	hc := fiber.AcquireClient()
	hc.UserAgent = "catalogadmin"
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiPath: strings.Trim(apiPath, "/"),
		timeout: timeout,
		http:    hc,
	}
}

// envelope covers the common response fields. message is either a string or
// a list of validation messages.
type envelope struct {
	Success *bool           `json:"success"`
	Message json.RawMessage `json:"message"`
}

func (e envelope) text() string {
	if len(e.Message) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(e.Message, &s) == nil {
		return s
	}
	var list []string
	if json.Unmarshal(e.Message, &list) == nil {
		return strings.Join(list, "; ")
	}
	return string(e.Message)
}

type signInResponse struct {
	envelope
	Token   string `json:"token"`
	Expired int64  `json:"expired"`
}

type productsResponse struct {
	envelope
	Products []domain.Product `json:"products"`
}

type productBody struct {
	Data domain.Product `json:"data"`
}

func (c *Client) adminURL(parts ...string) string {
	segs := []string{c.baseURL, "v2", "api", c.apiPath, "admin"}
	for _, p := range parts {
		segs = append(segs, url.PathEscape(p))
	}
	return strings.Join(segs, "/")
}

func (c *Client) SignIn(cred domain.Credentials) (domain.Session, error) {
	a := c.http.Post(c.baseURL + "/v2/admin/signin").JSON(cred)
	var out signInResponse
	if err := c.do(a, &out); err != nil {
		return domain.Session{}, fmt.Errorf("sign in: %w", err)
	}
	if out.Token == "" {
		return domain.Session{}, fmt.Errorf("sign in: %w", &APIError{Status: fiber.StatusOK, Message: "empty token"})
	}
	return domain.Session{Token: out.Token, ExpiresAt: time.UnixMilli(out.Expired)}, nil
}

func (c *Client) Check(s domain.Session) error {
	a := c.authed(c.http.Post(c.baseURL+"/v2/api/user/check"), s)
	if err := c.do(a, &envelope{}); err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	return nil
}

func (c *Client) ListProducts(s domain.Session) ([]domain.Product, error) {
	a := c.authed(c.http.Get(c.adminURL("products")), s)
	var out productsResponse
	if err := c.do(a, &out); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out.Products, nil
}

func (c *Client) CreateProduct(s domain.Session, p domain.Product) error {
	p.ID = ""
	a := c.authed(c.http.Post(c.adminURL("product")), s).JSON(productBody{Data: p})
	if err := c.do(a, &envelope{}); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (c *Client) UpdateProduct(s domain.Session, id string, p domain.Product) error {
	if id == "" {
		return errors.New("update product: missing id")
	}
	p.ID = id
	a := c.authed(c.http.Put(c.adminURL("product", id)), s).JSON(productBody{Data: p})
	if err := c.do(a, &envelope{}); err != nil {
		return fmt.Errorf("update product %s: %w", id, err)
	}
	return nil
}

func (c *Client) DeleteProduct(s domain.Session, id string) error {
	if id == "" {
		return errors.New("delete product: missing id")
	}
	a := c.authed(c.http.Delete(c.adminURL("product", id)), s)
	if err := c.do(a, &envelope{}); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

// authed sets the raw token as the Authorization value, no scheme prefix.
func (c *Client) authed(a *fiber.Agent, s domain.Session) *fiber.Agent {
	return a.Set(fiber.HeaderAuthorization, s.Token)
}

type successReporter interface {
	ok() (reported bool, success bool, msg string)
}

func (e envelope) ok() (bool, bool, string) {
	if e.Success == nil {
		return false, false, e.text()
	}
	return true, *e.Success, e.text()
}

// do sends the request and decodes the body into out. Non-2xx statuses and
// success=false bodies both become *APIError.
func (c *Client) do(a *fiber.Agent, out successReporter) error {
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request: %w", errors.Join(errs...))
	}

	decodeErr := json.Unmarshal(body, out)
	reported, success, msg := out.ok()
	if code < 200 || code > 299 {
		return &APIError{Status: code, Message: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if reported && !success {
		return &APIError{Status: code, Message: msg}
	}
	return nil
}
