package models

import "time"

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LocID     string    `gorm:"size:8;index" json:"loc_id"`
	SysID     string    `gorm:"size:8;uniqueIndex;not null" json:"sys_id"`
	CusCode   string    `gorm:"size:8;index" json:"cus_code"`
	CusName   string    `gorm:"size:100;not null" json:"cus_name"`
	CusPoint  int       `gorm:"not null;default:0" json:"cus_point"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Supplier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LocID     string    `gorm:"size:8;index" json:"loc_id"`
	SysID     string    `gorm:"size:8;uniqueIndex;not null" json:"sys_id"`
	SuppCode  string    `gorm:"size:20;index" json:"supp_code"`
	SuppName  string    `gorm:"size:100;not null" json:"supp_name"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Staff: Satış personeli (SlpCode olarak faturalara yazılır).
type Staff struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LocID     string    `gorm:"size:8;index" json:"loc_id"`
	SysID     string    `gorm:"size:8;uniqueIndex;not null" json:"sys_id"` // SLP00001...
	Name      string    `gorm:"size:100;not null" json:"name"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Location: Satış noktası / terminal tanımı.
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LocID     string    `gorm:"size:8;uniqueIndex;not null" json:"loc_id"` // POS00001
	Name      string    `gorm:"size:100" json:"name"`
	TerID     string    `gorm:"size:2;not null;default:'00'" json:"ter_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
