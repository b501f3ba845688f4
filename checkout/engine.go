package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ken-eddy/salesApp/logging"
	"github.com/ken-eddy/salesApp/models"
)

const (
	MinQuantity = 1
	MaxQuantity = 1000

	// DefaultSalesPerson is recorded when the caller is not authenticated.
	DefaultSalesPerson = "Staff"
)

type CartItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Invoice is the result of a committed checkout.
type Invoice struct {
	InvoiceNumber string                  `json:"invoice_number"`
	OrderDate     time.Time               `json:"order_date"`
	SalesPersonID string                  `json:"sales_person_id"`
	Lines         []models.SalesOrderLine `json:"lines"`
	Total         decimal.Decimal         `json:"total"`
	// Skipped counts cart items whose product id did not exist.
	Skipped int `json:"skipped"`
}

func (i *Invoice) LineCount() int {
	return len(i.Lines)
}

// Observer receives one call per Checkout.
type Observer interface {
	ObserveCheckout(outcome string, committed, skipped int)
}

type Engine struct {
	store    Store
	invoices InvoiceNumberer
	now      func() time.Time
	observer Observer
}

type Option func(*Engine)

func WithInvoiceNumbers(n InvoiceNumberer) Option {
	return func(e *Engine) { e.invoices = n }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		invoices: InvoiceNumbers{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// staged tracks what one checkout has taken from a product so far.
type staged struct {
	product *models.Product
	taken   int
}

// Checkout validates the cart, prices every line from the products' current
// price, and commits the ledger lines together with the stock decrements in a
// single transaction. Items referencing unknown products are dropped and
// counted in Invoice.Skipped. The call is never retried internally.
func (e *Engine) Checkout(ctx context.Context, items []CartItem, salesPersonID string) (*Invoice, error) {
	start := time.Now()
	inv, err := e.checkout(ctx, items, salesPersonID)

	outcome := Outcome(err)
	fields := logging.Fields{
		Service:     "checkout",
		Step:        "checkout",
		Status:      outcome,
		SalesPerson: salesPersonID,
		DurationMS:  time.Since(start).Milliseconds(),
	}
	committed, skipped := 0, 0
	if inv != nil {
		committed, skipped = inv.LineCount(), inv.Skipped
		fields.Invoice = inv.InvoiceNumber
		fields.SalesPerson = inv.SalesPersonID
		fields.Lines = committed
		fields.Skipped = skipped
	}
	var commitErr *CommitFailedError
	if errors.As(err, &commitErr) {
		fields.Invoice = commitErr.InvoiceNumber
	}
	if err != nil {
		fields.Error = err.Error()
	}
	logging.Log(fields)

	if e.observer != nil {
		e.observer.ObserveCheckout(outcome, committed, skipped)
	}
	return inv, err
}

func (e *Engine) checkout(ctx context.Context, items []CartItem, salesPersonID string) (*Invoice, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, item := range items {
		if item.Quantity < MinQuantity || item.Quantity > MaxQuantity {
			return nil, &InvalidQuantityError{ProductID: item.ProductID, Quantity: item.Quantity}
		}
	}
	if strings.TrimSpace(salesPersonID) == "" {
		salesPersonID = DefaultSalesPerson
	}

	now := e.now()
	inv := &Invoice{
		InvoiceNumber: e.invoices.Next(now),
		OrderDate:     now,
		SalesPersonID: salesPersonID,
	}

	err := e.store.RunInTx(ctx, func(tx Tx) error {
		inv.Lines = make([]models.SalesOrderLine, 0, len(items))
		inv.Total = decimal.Zero
		inv.Skipped = 0

		byProduct := make(map[uint]*staged)
		var touched []uint
		for _, item := range items {
			s, ok := byProduct[item.ProductID]
			if !ok {
				product, err := tx.GetProduct(ctx, item.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					inv.Skipped++
					continue
				}
				s = &staged{product: product}
				byProduct[item.ProductID] = s
				touched = append(touched, item.ProductID)
			}

			available := s.product.StockQuantity - s.taken
			if !CanFulfill(available, item.Quantity) {
				return &InsufficientStockError{
					ProductID:   s.product.ID,
					ProductName: s.product.Name,
					Available:   available,
					Requested:   item.Quantity,
				}
			}

			line := models.SalesOrderLine{
				InvoiceNumber: inv.InvoiceNumber,
				OrderDate:     now,
				SalesPersonID: salesPersonID,
				ProductID:     s.product.ID,
				Quantity:      item.Quantity,
				UnitPrice:     s.product.Price,
				TotalAmount:   models.LineTotal(item.Quantity, s.product.Price),
			}
			inv.Lines = append(inv.Lines, line)
			inv.Total = inv.Total.Add(line.TotalAmount)
			s.taken += item.Quantity
		}

		if len(inv.Lines) == 0 {
			return nil
		}
		for _, id := range touched {
			s := byProduct[id]
			if err := tx.DecrementStock(ctx, id, s.product.Version, s.taken); err != nil {
				return err
			}
		}
		return tx.InsertLines(ctx, inv.Lines)
	})
	if err != nil {
		var insufficient *InsufficientStockError
		if errors.As(err, &insufficient) {
			return nil, insufficient
		}
		return nil, &CommitFailedError{InvoiceNumber: inv.InvoiceNumber, Err: err}
	}
	return inv, nil
}
