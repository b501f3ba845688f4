package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ken-eddy/salesApp/checkout"
	"github.com/ken-eddy/salesApp/models"
)

// MemoryStore keeps the catalog and the ledger in process. Checkout
// transactions read committed state and validate product versions when they
// commit, the same optimistic scheme GormStore runs in SQL.
type MemoryStore struct {
	mu        sync.Mutex
	products  map[uint]models.Product
	suppliers map[uint]models.Supplier
	stocks    []models.Stock
	lines     []models.SalesOrderLine
	nextID    uint
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:  make(map[uint]models.Product),
		suppliers: make(map[uint]models.Supplier),
		now:       time.Now,
	}
}

func (s *MemoryStore) id() uint {
	s.nextID++
	return s.nextID
}

type memoryDecrement struct {
	id      uint
	version int
	amount  int
}

type memoryTx struct {
	store      *MemoryStore
	decrements []memoryDecrement
	lines      []models.SalesOrderLine
}

func (t *memoryTx) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	p, ok := t.store.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (t *memoryTx) DecrementStock(ctx context.Context, id uint, version, amount int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.decrements = append(t.decrements, memoryDecrement{id: id, version: version, amount: amount})
	return nil
}

func (t *memoryTx) InsertLines(ctx context.Context, lines []models.SalesOrderLine) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.lines = lines
	return nil
}

func (s *MemoryStore) RunInTx(ctx context.Context, fn func(tx checkout.Tx) error) error {
	tx := &memoryTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.commit(tx)
}

func (s *MemoryStore) commit(tx *memoryTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range tx.decrements {
		p, ok := s.products[d.id]
		if !ok || p.Version != d.version || p.StockQuantity < d.amount {
			return fmt.Errorf("product %d: %w", d.id, checkout.ErrVersionConflict)
		}
	}
	now := s.now()
	for _, d := range tx.decrements {
		p := s.products[d.id]
		p.StockQuantity -= d.amount
		p.Version++
		p.UpdatedAt = now
		s.products[d.id] = p
	}
	for i := range tx.lines {
		tx.lines[i].ID = s.id()
		tx.lines[i].CreatedAt = now
		line := tx.lines[i]
		line.Product = nil
		s.lines = append(s.lines, line)
	}
	return nil
}

func (s *MemoryStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedProducts(func(models.Product) bool { return true }), nil
}

func (s *MemoryStore) sortedProducts(keep func(models.Product) bool) []models.Product {
	out := []models.Product{}
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemoryStore) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) GetProductByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateProduct(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Barcode != nil {
		for _, existing := range s.products {
			if existing.Barcode != nil && *existing.Barcode == *p.Barcode {
				return ErrDuplicate
			}
		}
	}
	now := s.now()
	p.Price = models.RoundPrice(p.Price)
	p.ID = s.id()
	p.CreatedAt, p.UpdatedAt = now, now
	s.products[p.ID] = *p
	s.stocks = append(s.stocks, models.Stock{ProductID: p.ID, Quantity: p.StockQuantity, AddedAt: now})
	return nil
}

func (s *MemoryStore) Restock(ctx context.Context, id uint, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidRestock
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	p.StockQuantity += quantity
	p.Version++
	p.UpdatedAt = now
	s.products[id] = p
	s.stocks = append(s.stocks, models.Stock{ProductID: id, Quantity: quantity, AddedAt: now})
	return &p, nil
}

// SetPrice changes a product's price; committed ledger lines keep their
// snapshot.
func (s *MemoryStore) SetPrice(id uint, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return ErrNotFound
	}
	p.Price = models.RoundPrice(price)
	s.products[id] = p
	return nil
}

func (s *MemoryStore) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.sortedProducts(func(p models.Product) bool { return p.StockQuantity < threshold })
	sort.SliceStable(out, func(i, j int) bool { return out[i].StockQuantity < out[j].StockQuantity })
	return out, nil
}

func (s *MemoryStore) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Supplier{}
	for _, sup := range s.suppliers {
		out = append(out, sup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateSupplier(ctx context.Context, sup *models.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	sup.ID = s.id()
	sup.CreatedAt, sup.UpdatedAt = now, now
	s.suppliers[sup.ID] = *sup
	return nil
}

func (s *MemoryStore) withProduct(line models.SalesOrderLine) models.SalesOrderLine {
	if p, ok := s.products[line.ProductID]; ok {
		line.Product = &p
	}
	return line
}

func (s *MemoryStore) ListLines(ctx context.Context) ([]models.SalesOrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SalesOrderLine, 0, len(s.lines))
	for i := len(s.lines) - 1; i >= 0; i-- {
		out = append(out, s.withProduct(s.lines[i]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (s *MemoryStore) LinesByInvoice(ctx context.Context, invoice string) ([]models.SalesOrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.SalesOrderLine
	for _, line := range s.lines {
		if line.InvoiceNumber == invoice {
			out = append(out, s.withProduct(line))
		}
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *MemoryStore) GetLine(ctx context.Context, id uint) (*models.SalesOrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range s.lines {
		if line.ID == id {
			line = s.withProduct(line)
			return &line, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateLine(ctx context.Context, id uint, quantity int, unitPrice decimal.Decimal) (*models.SalesOrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines[i].Quantity = quantity
			s.lines[i].UnitPrice = models.RoundPrice(unitPrice)
			s.lines[i].TotalAmount = models.LineTotal(quantity, s.lines[i].UnitPrice)
			line := s.withProduct(s.lines[i])
			return &line, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteLine(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Stocks returns the recorded stock additions for a product.
func (s *MemoryStore) Stocks(productID uint) []models.Stock {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Stock
	for _, st := range s.stocks {
		if st.ProductID == productID {
			out = append(out, st)
		}
	}
	return out
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	return nil
}
