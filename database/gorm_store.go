package database

import (
	"context"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"

	"github.com/ken-eddy/salesApp/checkout"
	"github.com/ken-eddy/salesApp/models"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// RunInTx runs fn in a database transaction bound to ctx. Any error from fn
// rolls the transaction back.
func (s *GormStore) RunInTx(ctx context.Context, fn func(tx checkout.Tx) error) error {
	tx := s.db.BeginTx(ctx, nil)
	if tx.Error != nil {
		return classify(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormTx{db: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return classify(tx.Commit().Error)
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := t.db.Where("id = ?", id).First(&product).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &product, nil
}

func (t *gormTx) DecrementStock(ctx context.Context, id uint, version, amount int) error {
	res := t.db.Model(&models.Product{}).
		Where("id = ? AND version = ? AND stock_quantity >= ?", id, version, amount).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity - ?", amount),
			"version":        gorm.Expr("version + ?", 1),
		})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return checkout.ErrVersionConflict
	}
	return nil
}

func (t *gormTx) InsertLines(ctx context.Context, lines []models.SalesOrderLine) error {
	for i := range lines {
		if err := t.db.Create(&lines[i]).Error; err != nil {
			return classify(err)
		}
	}
	return nil
}

func (s *GormStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *GormStore) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Supplier").Where("id = ?", id).First(&product).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (s *GormStore) GetProductByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("barcode = ?", barcode).First(&product).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (s *GormStore) CreateProduct(ctx context.Context, p *models.Product) error {
	tx := s.db.BeginTx(ctx, nil)
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Create(p).Error; err != nil {
		tx.Rollback()
		return classify(err)
	}

	stock := models.Stock{
		ProductID: p.ID,
		Quantity:  p.StockQuantity,
		AddedAt:   time.Now(),
	}
	if err := tx.Create(&stock).Error; err != nil {
		tx.Rollback()
		return classify(err)
	}

	return tx.Commit().Error
}

func (s *GormStore) Restock(ctx context.Context, id uint, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidRestock
	}
	tx := s.db.BeginTx(ctx, nil)
	if tx.Error != nil {
		return nil, tx.Error
	}

	res := tx.Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity + ?", quantity),
			"version":        gorm.Expr("version + ?", 1),
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrNotFound
	}

	stock := models.Stock{ProductID: id, Quantity: quantity, AddedAt: time.Now()}
	if err := tx.Create(&stock).Error; err != nil {
		tx.Rollback()
		return nil, classify(err)
	}

	var product models.Product
	if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
		tx.Rollback()
		return nil, notFound(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, classify(err)
	}
	return &product, nil
}

func (s *GormStore) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.Where("stock_quantity < ?", threshold).
		Order("stock_quantity asc").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *GormStore) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	suppliers := []models.Supplier{}
	if err := s.db.Order("id asc").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (s *GormStore) CreateSupplier(ctx context.Context, sup *models.Supplier) error {
	return classify(s.db.Create(sup).Error)
}

func (s *GormStore) ListLines(ctx context.Context) ([]models.SalesOrderLine, error) {
	lines := []models.SalesOrderLine{}
	if err := s.db.Preload("Product").
		Order("order_date desc, id desc").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *GormStore) LinesByInvoice(ctx context.Context, invoice string) ([]models.SalesOrderLine, error) {
	var lines []models.SalesOrderLine
	if err := s.db.Preload("Product").
		Where("invoice_number = ?", invoice).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNotFound
	}
	return lines, nil
}

func (s *GormStore) GetLine(ctx context.Context, id uint) (*models.SalesOrderLine, error) {
	var line models.SalesOrderLine
	if err := s.db.Preload("Product").Where("id = ?", id).First(&line).Error; err != nil {
		return nil, notFound(err)
	}
	return &line, nil
}

func (s *GormStore) UpdateLine(ctx context.Context, id uint, quantity int, unitPrice decimal.Decimal) (*models.SalesOrderLine, error) {
	var line models.SalesOrderLine
	if err := s.db.Where("id = ?", id).First(&line).Error; err != nil {
		return nil, notFound(err)
	}

	if err := s.db.Model(&line).Updates(map[string]interface{}{
		"quantity":     quantity,
		"unit_price":   unitPrice,
		"total_amount": models.LineTotal(quantity, unitPrice),
	}).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Product").Where("id = ?", id).First(&line).Error; err != nil {
		return nil, notFound(err)
	}
	return &line, nil
}

func (s *GormStore) DeleteLine(ctx context.Context, id uint) error {
	res := s.db.Where("id = ?", id).Delete(&models.SalesOrderLine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	return s.db.DB().PingContext(ctx)
}

func (s *GormStore) Close() error {
	return s.db.Close()
}

func notFound(err error) error {
	if gorm.IsRecordNotFoundError(err) {
		return ErrNotFound
	}
	return err
}
