package services

import (
	"errors"
	"fmt"

	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/domain"
)

// ErrListStale means the API accepted a mutation but the list fetch after it
// failed. The mutation must not be resubmitted.
var ErrListStale = errors.New("product list not refreshed")

// ProductStore is the product list as last fetched for one session. Local
// state only changes through Refresh; mutations never patch it directly.
type ProductStore struct {
	API     catalogapi.API
	Session domain.Session
	Guard   *SubmitGuard

	Products []domain.Product
}

func NewProductStore(api catalogapi.API, s domain.Session, guard *SubmitGuard) *ProductStore {
	if guard == nil {
		guard = NewSubmitGuard()
	}
	return &ProductStore{API: api, Session: s, Guard: guard}
}

// Refresh replaces the local list with the API's full list.
func (s *ProductStore) Refresh() error {
	ps, err := s.API.ListProducts(s.Session)
	if err != nil {
		return err
	}
	if ps == nil {
		ps = []domain.Product{}
	}
	s.Products = ps
	return nil
}

// Find returns the locally held product with id.
func (s *ProductStore) Find(id string) (domain.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *ProductStore) Create(wp *domain.WorkingProduct) error {
	p, err := wp.Payload()
	if err != nil {
		return err
	}
	return s.mutate(func() error { return s.API.CreateProduct(s.Session, p) })
}

func (s *ProductStore) Update(id string, wp *domain.WorkingProduct) error {
	p, err := wp.Payload()
	if err != nil {
		return err
	}
	return s.mutate(func() error { return s.API.UpdateProduct(s.Session, id, p) })
}

func (s *ProductStore) Delete(id string) error {
	return s.mutate(func() error { return s.API.DeleteProduct(s.Session, id) })
}

// mutate runs call under the session's submit guard and refreshes once on
// success. A failed refresh after an accepted call is reported as ErrListStale.
func (s *ProductStore) mutate(call func() error) error {
	release, err := s.Guard.Acquire(s.Session.Token)
	if err != nil {
		return err
	}
	defer release()

	if err := call(); err != nil {
		return err
	}
	if err := s.Refresh(); err != nil {
		return fmt.Errorf("%w: %w", ErrListStale, err)
	}
	return nil
}
