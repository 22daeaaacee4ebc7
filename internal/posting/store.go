package posting

import (
	"context"

	"pos-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Store belge kayıt motorunun veritabanı sınırıdır. Production'da GormStore
// kullanılır; testler bellek içi bir implementasyonla çalışır.
type Store interface {
	// WithinTx fn'i tek bir transaction içinde çalıştırır. fn hata dönerse
	// tüm değişiklikler geri alınır.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error

	// IsDuplicateNumber hatanın belge numarası tekillik ihlali olup
	// olmadığını söyler; orchestrator bu durumda yeni numarayla tekrar dener.
	IsDuplicateNumber(err error) bool

	// BumpSequence sayacı en az to değerine çeker ve HEMEN commit eder.
	// Numara çakışınca posting transaction'ı geri alınır ve içindeki sayaç
	// artışı da onunla birlikte gider; çakışan numara burada, transaction'ın
	// dışında yakılmazsa her deneme aynı numarayı üretir.
	BumpSequence(ctx context.Context, docType, locID string, to int64) error
}

// Tx tek bir transaction'ın sunduğu işlemler.
type Tx interface {
	// NextNumber (belge tipi, lokasyon) sayacını atomik olarak bir artırıp
	// yeni değeri döner. Sayaç okunamazsa hata döner; asla sessizce 1'e
	// düşülmez.
	NextNumber(docType, locID string) (int64, error)

	InsertGrnHeader(hdr *models.GrnHeader) error
	InsertGrnDetail(dtl *models.GrnDetail) error
	InsertInvoiceHeader(hdr *models.InvoiceHeader) error
	InsertInvoiceDetail(dtl *models.InvoiceDetail) error

	// AdjustStock ürünün eldeki miktarına işaretli deltayı uygular ve
	// etkilenen satır sayısını döner.
	AdjustStock(itemCode string, delta float64) (int64, error)

	// ItemPurchasePrice kalem maliyeti için ürünün alış fiyatını okur.
	ItemPurchasePrice(itemCode string) (decimal.Decimal, error)
}
