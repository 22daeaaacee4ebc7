package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ödeme tipi kodları: 1 direkt veresiye, 2 direkt nakit, 3 veresiye içeren
// karışık ödeme, 0 veresiyesiz karışık ödeme.
const (
	PaymentMixed        uint8 = 0
	PaymentDirectCredit uint8 = 1
	PaymentDirectCash   uint8 = 2
	PaymentMixedCredit  uint8 = 3
)

// InvoiceHeader: Fatura başlığı. TerInvNo lokasyon bazında tekil, 8 haneli
// sıra numarasıdır (8 hane dolunca uzar, kolon bu yüzden geniş) ve kayıttan
// sonra hiçbir alan değiştirilmez.
type InvoiceHeader struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	LocID         string          `gorm:"size:8;not null;uniqueIndex:idx_invoice_hdr_doc_no" json:"loc_id"`
	TerInvNo      string          `gorm:"size:12;not null;uniqueIndex:idx_invoice_hdr_doc_no" json:"ter_inv_no"`
	RefNo         string          `gorm:"size:24" json:"ref_no"`
	CusCode       string          `gorm:"size:8;index;not null" json:"cus_code"`
	SlpCode       string          `gorm:"size:8" json:"slp_code"`
	CreditOrCash  uint8           `gorm:"not null;default:0" json:"credit_or_cash"`
	InvDate       time.Time       `gorm:"index;not null" json:"inv_date"`
	NoOfItems     float64         `gorm:"not null;default:0" json:"no_of_items"` // Toplam kalem adedi (miktarların toplamı)
	SubTot        decimal.Decimal `gorm:"type:numeric(18,2)" json:"sub_tot"`
	InvoDis       decimal.Decimal `gorm:"type:numeric(18,2)" json:"invo_dis"` // Fatura geneli ekstra indirim
	NetAmount     decimal.Decimal `gorm:"type:numeric(18,2)" json:"net_amount"`
	CashPaidAmt   decimal.Decimal `gorm:"type:numeric(18,2)" json:"cash_paid_amt"`
	CreditAmt     decimal.Decimal `gorm:"type:numeric(18,2)" json:"credit_amt"`
	CardAmt       decimal.Decimal `gorm:"type:numeric(18,2)" json:"card_amt"`
	PriceCategory string          `gorm:"size:20" json:"price_category"`
	UserID        string          `gorm:"size:8" json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InvoiceDetail: Fatura kalemi. Satır numaraları 1'den başlar ve ardışıktır.
type InvoiceDetail struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	LocID     string          `gorm:"size:8;not null;uniqueIndex:idx_invoice_dtl_line" json:"loc_id"`
	TerInvNo  string          `gorm:"size:12;not null;uniqueIndex:idx_invoice_dtl_line" json:"ter_inv_no"`
	LineNo    int             `gorm:"not null;uniqueIndex:idx_invoice_dtl_line" json:"line_no"`
	ItemCode  string          `gorm:"size:8;index;not null" json:"item_code"`
	ItemQty   float64         `gorm:"not null" json:"item_qty"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(18,2)" json:"unit_price"`
	NetAmt    decimal.Decimal `gorm:"type:numeric(18,2)" json:"net_amt"`
	ItemCost  decimal.Decimal `gorm:"type:numeric(18,2)" json:"item_cost"` // Kalem maliyeti (alış fiyatı x miktar), kâr/zarar raporu için
	CreatedAt time.Time       `json:"created_at"`
}

// Arşiv tabloları: "upload" işlemi bekleyen faturaları buraya taşır.
// Kolonlar asıl tablolarla birebir aynıdır, index adları çakışmasın diye ayrıdır.

type ArchivedInvoiceHeader struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	LocID         string          `gorm:"size:8;not null;index:idx_arch_hdr_doc_no" json:"loc_id"`
	TerInvNo      string          `gorm:"size:12;not null;index:idx_arch_hdr_doc_no" json:"ter_inv_no"`
	RefNo         string          `gorm:"size:24" json:"ref_no"`
	CusCode       string          `gorm:"size:8;index" json:"cus_code"`
	SlpCode       string          `gorm:"size:8" json:"slp_code"`
	CreditOrCash  uint8           `json:"credit_or_cash"`
	InvDate       time.Time       `gorm:"index" json:"inv_date"`
	NoOfItems     float64         `json:"no_of_items"`
	SubTot        decimal.Decimal `gorm:"type:numeric(18,2)" json:"sub_tot"`
	InvoDis       decimal.Decimal `gorm:"type:numeric(18,2)" json:"invo_dis"`
	NetAmount     decimal.Decimal `gorm:"type:numeric(18,2)" json:"net_amount"`
	CashPaidAmt   decimal.Decimal `gorm:"type:numeric(18,2)" json:"cash_paid_amt"`
	CreditAmt     decimal.Decimal `gorm:"type:numeric(18,2)" json:"credit_amt"`
	CardAmt       decimal.Decimal `gorm:"type:numeric(18,2)" json:"card_amt"`
	PriceCategory string          `gorm:"size:20" json:"price_category"`
	UserID        string          `gorm:"size:8" json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UploadedAt    time.Time       `gorm:"index" json:"uploaded_at"`
}

type ArchivedInvoiceDetail struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	LocID      string          `gorm:"size:8;not null;index:idx_arch_dtl_line" json:"loc_id"`
	TerInvNo   string          `gorm:"size:12;not null;index:idx_arch_dtl_line" json:"ter_inv_no"`
	LineNo     int             `gorm:"not null" json:"line_no"`
	ItemCode   string          `gorm:"size:8;index" json:"item_code"`
	ItemQty    float64         `json:"item_qty"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(18,2)" json:"unit_price"`
	NetAmt     decimal.Decimal `gorm:"type:numeric(18,2)" json:"net_amt"`
	ItemCost   decimal.Decimal `gorm:"type:numeric(18,2)" json:"item_cost"`
	CreatedAt  time.Time       `json:"created_at"`
	UploadedAt time.Time       `gorm:"index" json:"uploaded_at"`
}
