package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fiyat kategorileri: hangi satırda hangi fiyat kolonunun geçerli olduğunu seçer.
const (
	PriceCategoryCash      = "Cash Price"
	PriceCategoryWholeSale = "Whole Sale"
	PriceCategorySpecial   = "Special"
)

// ItemPrice: Ürün bazlı fiyat satırı. Aynı ürün için birden fazla satır
// olabilir; geçerli olan ActiveStatus=true ve en yeni EffectiveDate'li satırdır.
type ItemPrice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	LocID         string          `gorm:"size:8;index" json:"loc_id"`
	ItemCode      string          `gorm:"size:8;index;not null" json:"item_code"` // Item.SysID'ye bakar
	MarkPrice     decimal.Decimal `gorm:"type:numeric(18,2)" json:"mark_price"`   // Cash Price
	CredPrice     decimal.Decimal `gorm:"type:numeric(18,2)" json:"cred_price"`   // Whole Sale
	DisPrice      decimal.Decimal `gorm:"type:numeric(18,2)" json:"dis_price"`    // Special
	PurPrice      decimal.Decimal `gorm:"type:numeric(18,2)" json:"pur_price"`
	ActiveStatus  bool            `gorm:"not null;default:true" json:"active_status"`
	EffectiveDate time.Time       `gorm:"index" json:"effective_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
