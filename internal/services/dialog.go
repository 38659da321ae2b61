package services

import (
	"errors"

	"catalogadmin/internal/domain"
)

type DialogMode string

const (
	DialogClosed DialogMode = "closed"
	DialogCreate DialogMode = "create"
	DialogEdit   DialogMode = "edit"
)

var ErrDialogClosed = errors.New("dialog is not open")

// ProductDialog is closed -> open(create|edit) -> submit|cancel -> closed.
type ProductDialog struct {
	Mode    DialogMode
	Working *domain.WorkingProduct
}

func (d *ProductDialog) IsOpen() bool { return d.Mode == DialogCreate || d.Mode == DialogEdit }

func (d *ProductDialog) OpenCreate() {
	d.Mode = DialogCreate
	d.Working = domain.BlankProduct()
}

func (d *ProductDialog) OpenEdit(p domain.Product) {
	d.Mode = DialogEdit
	d.Working = domain.EditProduct(p)
}

// Resume reopens the dialog around a working product rebuilt from a form.
func (d *ProductDialog) Resume(mode DialogMode, wp *domain.WorkingProduct) {
	d.Mode = mode
	d.Working = wp
}

// Submit sends the working product. The dialog closes once the API accepts it,
// even when the following list fetch fails (ErrListStale); on any other
// failure it stays open with the edits intact.
func (d *ProductDialog) Submit(store *ProductStore) error {
	var err error
	switch d.Mode {
	case DialogCreate:
		err = store.Create(d.Working)
	case DialogEdit:
		err = store.Update(d.Working.ID, d.Working)
	default:
		return ErrDialogClosed
	}
	if err != nil && !errors.Is(err, ErrListStale) {
		return err
	}
	d.close()
	return err
}

// Cancel discards the working product.
func (d *ProductDialog) Cancel() { d.close() }

func (d *ProductDialog) close() {
	d.Mode = DialogClosed
	d.Working = nil
}

// DeleteDialog is closed <-> open, leaving open only through Confirm or Cancel.
type DeleteDialog struct {
	Open   bool
	Target domain.Product
}

func (d *DeleteDialog) Show(p domain.Product) {
	d.Open = true
	d.Target = p
}

func (d *DeleteDialog) Confirm(store *ProductStore) error {
	if !d.Open {
		return ErrDialogClosed
	}
	err := store.Delete(d.Target.ID)
	if err != nil && !errors.Is(err, ErrListStale) {
		return err
	}
	d.Cancel()
	return err
}

func (d *DeleteDialog) Cancel() {
	d.Open = false
	d.Target = domain.Product{}
}
