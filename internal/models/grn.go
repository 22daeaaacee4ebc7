package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GrnHeader: Mal kabul fişi başlığı (Goods Received Note). GrnNo lokasyon
// bazında tekildir (GRN00001...).
type GrnHeader struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	LocID     string          `gorm:"size:8;not null;uniqueIndex:idx_grn_hdr_doc_no" json:"loc_id"`
	GrnNo     string          `gorm:"size:12;not null;uniqueIndex:idx_grn_hdr_doc_no" json:"grn_no"`
	GrnDate   time.Time       `gorm:"index;not null" json:"grn_date"`
	CateID    string          `gorm:"size:2;not null;default:'DI'" json:"cate_id"` // DI: direkt giriş
	SuppCode  string          `gorm:"size:20;index;not null" json:"supp_code"`
	RefNo     string          `gorm:"size:50" json:"ref_no"` // Tedarikçinin fatura/irsaliye numarası
	StaffCode string          `gorm:"size:8" json:"staff_code"`
	Remark    string          `gorm:"size:400" json:"remark"`
	GrossTot  decimal.Decimal `gorm:"type:numeric(18,2)" json:"gross_tot"`
	CreatedAt time.Time       `json:"created_at"`
}

type GrnDetail struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	LocID       string          `gorm:"size:8;not null;uniqueIndex:idx_grn_dtl_line" json:"loc_id"`
	GrnNo       string          `gorm:"size:12;not null;uniqueIndex:idx_grn_dtl_line" json:"grn_no"`
	LineNo      int             `gorm:"not null;uniqueIndex:idx_grn_dtl_line" json:"line_no"`
	ItemCode    string          `gorm:"size:8;index;not null" json:"item_code"`
	GoodQty     float64         `gorm:"not null" json:"good_qty"`
	PurPrice    decimal.Decimal `gorm:"type:numeric(18,2)" json:"pur_price"`
	TotPurPrice decimal.Decimal `gorm:"type:numeric(18,2)" json:"tot_pur_price"`
	CreatedAt   time.Time       `json:"created_at"`
}
