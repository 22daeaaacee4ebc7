package posting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pos-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStore Store'un Postgres/GORM implementasyonu.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(&gormTx{db: gtx})
	})
}

func (s *GormStore) IsDuplicateNumber(err error) bool {
	if err == nil {
		return false
	}
	// TranslateError açık olduğu için gorm.ErrDuplicatedKey yeterli olmalı;
	// SQLSTATE kontrolü raw Exec yolundan gelen hatalar için.
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "SQLSTATE 23505")
}

func (s *GormStore) BumpSequence(ctx context.Context, docType, locID string, to int64) error {
	return s.db.WithContext(ctx).Exec(`
		INSERT INTO document_sequences (doc_type, loc_id, last_value, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON CONFLICT (doc_type, loc_id) DO UPDATE
		SET last_value = GREATEST(document_sequences.last_value, EXCLUDED.last_value),
			updated_at = NOW()
	`, docType, locID, to).Error
}

type gormTx struct {
	db *gorm.DB
}

// NextNumber sayaç satırını atomik artırır. Satır yoksa 1 ile oluşturulur;
// RETURNING sayesinde okuma ve artırma tek statement'tır, yarış koşulu yoktur.
func (t *gormTx) NextNumber(docType, locID string) (int64, error) {
	var lastValue int64
	err := t.db.Raw(`
		INSERT INTO document_sequences (doc_type, loc_id, last_value, created_at, updated_at)
		VALUES (?, ?, 1, NOW(), NOW())
		ON CONFLICT (doc_type, loc_id) DO UPDATE
		SET last_value = document_sequences.last_value + 1,
			updated_at = NOW()
		RETURNING last_value
	`, docType, locID).Scan(&lastValue).Error
	if err != nil {
		return 0, err
	}
	if lastValue == 0 {
		return 0, fmt.Errorf("belge sayacı değer dönmedi (%s/%s)", docType, locID)
	}
	return lastValue, nil
}

func (t *gormTx) InsertGrnHeader(hdr *models.GrnHeader) error {
	return t.db.Create(hdr).Error
}

func (t *gormTx) InsertGrnDetail(dtl *models.GrnDetail) error {
	return t.db.Create(dtl).Error
}

func (t *gormTx) InsertInvoiceHeader(hdr *models.InvoiceHeader) error {
	return t.db.Create(hdr).Error
}

func (t *gormTx) InsertInvoiceDetail(dtl *models.InvoiceDetail) error {
	return t.db.Create(dtl).Error
}

func (t *gormTx) AdjustStock(itemCode string, delta float64) (int64, error) {
	res := t.db.Model(&models.Item{}).
		Where("sys_id = ?", itemCode).
		Update("avl_qty", gorm.Expr("avl_qty + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (t *gormTx) ItemPurchasePrice(itemCode string) (decimal.Decimal, error) {
	var item models.Item
	if err := t.db.Select("purchased_price").First(&item, "sys_id = ?", itemCode).Error; err != nil {
		return decimal.Zero, err
	}
	return item.PurchasedPrice, nil
}
