package database

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ken-eddy/salesApp/checkout"
	"github.com/ken-eddy/salesApp/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate record")
	ErrUnknownDriver  = errors.New("unknown database driver")
	ErrInvalidRestock = errors.New("restock quantity must be positive")
)

// Repository is everything the HTTP layer needs from storage: the checkout
// transaction plus catalog, supplier and ledger maintenance.
type Repository interface {
	checkout.Store

	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*models.Product, error)
	// CreateProduct stores the product and its initial Stock entry.
	CreateProduct(ctx context.Context, p *models.Product) error
	// Restock adds quantity to the product, bumps its version and records a
	// Stock entry.
	Restock(ctx context.Context, id uint, quantity int) (*models.Product, error)
	LowStock(ctx context.Context, threshold int) ([]models.Product, error)

	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	CreateSupplier(ctx context.Context, s *models.Supplier) error

	// ListLines returns every ledger line, newest first, with Product loaded.
	ListLines(ctx context.Context) ([]models.SalesOrderLine, error)
	LinesByInvoice(ctx context.Context, invoice string) ([]models.SalesOrderLine, error)
	GetLine(ctx context.Context, id uint) (*models.SalesOrderLine, error)
	// UpdateLine is an administrative correction; it does not touch stock.
	UpdateLine(ctx context.Context, id uint, quantity int, unitPrice decimal.Decimal) (*models.SalesOrderLine, error)
	DeleteLine(ctx context.Context, id uint) error

	Ping(ctx context.Context) error
	Close() error
}
