package models

import "time"

// Belge tipi kodları (DocumentSequence.DocType).
const (
	DocTypeGrn     = "GRN"
	DocTypeInvoice = "INV"
)

// DocumentSequence: Belge numarası sayacı. Her (belge tipi, lokasyon) çifti
// için tek satır tutulur ve numara üretimi bu satır üzerinde atomik
// INSERT ... ON CONFLICT ... RETURNING ile yapılır. Mevcut kayıtların
// taranmasıyla numara üretmek yarış koşuluna açıktı; sayaç satırı bunu çözer.
type DocumentSequence struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DocType   string    `gorm:"size:8;not null;uniqueIndex:idx_doc_seq_scope" json:"doc_type"`
	LocID     string    `gorm:"size:8;not null;uniqueIndex:idx_doc_seq_scope" json:"loc_id"`
	LastValue int64     `gorm:"not null;default:0" json:"last_value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
