package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item: Stok kartı. SysID sistemin ürettiği kod (ITM00001...), ItemCode ise
// barkod/tedarikçi kodu gibi serbest bir alan.
type Item struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	LocID          string          `gorm:"size:8;index;not null" json:"loc_id"`
	SysID          string          `gorm:"size:8;uniqueIndex;not null" json:"sys_id"`
	ItemCode       string          `gorm:"size:20;index" json:"item_code"`
	ItemName       string          `gorm:"size:100;not null" json:"item_name"`
	AvlQty         float64         `gorm:"not null;default:0" json:"avl_qty"` // Eldeki miktar; her belge kaydında güncellenir
	RetailPrice    decimal.Decimal `gorm:"type:numeric(18,2)" json:"retail_price"`
	PurchasedPrice decimal.Decimal `gorm:"type:numeric(18,2)" json:"purchased_price"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
