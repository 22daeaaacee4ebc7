package models

import "time"

type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionArchive AuditAction = "archive"
)

// AuditLog: İşlem izi. Belge kayıtları değiştirilemez olduğu için undo yok;
// log sadece kim-ne-ne zaman sorusuna cevap verir.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Hangi lokasyon?
	LocID string `gorm:"size:8;index" json:"loc_id"`

	// Hangi kullanıcı? (terminalden gelen UserID, boş olabilir)
	UserID string `gorm:"size:8" json:"user_id"`

	// Hangi entity? (ör: "invoice", "grn", "item", "customer")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   string `gorm:"size:20;index" json:"entity_id"` // Belge numarası veya SysID

	Action AuditAction `gorm:"size:20" json:"action"`

	// Kısa özet
	Description string `gorm:"size:255" json:"description"`

	// Önceki ve sonraki hal (JSON)
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`
}
