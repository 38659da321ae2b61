package services_test

import (
	"sync"
	"time"

	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/domain"
)

// fakeAPI records calls and serves a fixed product list.
type fakeAPI struct {
	mu       sync.Mutex
	token    string
	products []domain.Product
	failOn   map[string]error
	block    chan struct{}

	signIns, checks, lists int
	created, updated       []domain.Product
	updatedIDs, deleted    []string
}

func newFakeAPI(products ...domain.Product) *fakeAPI {
	return &fakeAPI{token: "tok", products: products, failOn: map[string]error{}}
}

func (f *fakeAPI) fail(op string) error { return f.failOn[op] }

func (f *fakeAPI) SignIn(cred domain.Credentials) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signIns++
	if cred.Password != "secret" {
		return domain.Session{}, &catalogapi.APIError{Status: 400, Message: "登入失敗"}
	}
	return domain.Session{Token: f.token, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeAPI) Check(s domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	if s.Token != f.token {
		return &catalogapi.APIError{Status: 401}
	}
	return nil
}

func (f *fakeAPI) ListProducts(domain.Session) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if err := f.fail("list"); err != nil {
		return nil, err
	}
	return append([]domain.Product(nil), f.products...), nil
}

func (f *fakeAPI) CreateProduct(_ domain.Session, p domain.Product) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("create"); err != nil {
		return err
	}
	f.created = append(f.created, p)
	return nil
}

func (f *fakeAPI) UpdateProduct(_ domain.Session, id string, p domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("update"); err != nil {
		return err
	}
	f.updatedIDs = append(f.updatedIDs, id)
	f.updated = append(f.updated, p)
	return nil
}

func (f *fakeAPI) DeleteProduct(_ domain.Session, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("delete"); err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}
