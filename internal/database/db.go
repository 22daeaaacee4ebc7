package database

import (
	"pos-backend/internal/config"
	"pos-backend/internal/logger"
	"pos-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	log := logger.New("database")

	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal().Err(err).Msg("Veritabanına bağlanılamadı")
	}

	err = DB.AutoMigrate(
		&models.Location{},
		&models.Item{},
		&models.ItemPrice{},
		&models.Customer{},
		&models.Supplier{},
		&models.Staff{},
		&models.InvoiceHeader{},
		&models.InvoiceDetail{},
		&models.ArchivedInvoiceHeader{},
		&models.ArchivedInvoiceDetail{},
		&models.GrnHeader{},
		&models.GrnDetail{},
		&models.DocumentSequence{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate hatası")
	}

	// Varsayılan lokasyon kaydı yoksa oluştur (terminal tek lokasyonla çalışır)
	var locCount int64
	DB.Model(&models.Location{}).Where("loc_id = ?", cfg.DefaultLocID).Count(&locCount)
	if locCount == 0 {
		loc := models.Location{LocID: cfg.DefaultLocID, Name: "Ana Terminal", TerID: "03"}
		if err := DB.Create(&loc).Error; err != nil {
			log.Fatal().Err(err).Msg("Varsayılan lokasyon oluşturulamadı")
		}
		log.Info().Str("loc_id", cfg.DefaultLocID).Msg("Varsayılan lokasyon oluşturuldu")
	}

	seedDocumentSequences(cfg.DefaultLocID)

	log.Info().Msg("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// seedDocumentSequences eski verideki en büyük belge numarasını tarayıp sayaç
// satırını ayarlar. Tarama SADECE migration sırasında yapılır; çalışma
// zamanında numara üretimi her zaman sayaç satırından geçer, yoksa eski
// max-scan yaklaşımındaki yarış koşulu geri gelir.
func seedDocumentSequences(locID string) {
	log := logger.New("database")

	// GRN: "GRN00042" -> 42
	var maxGrn int64
	DB.Raw(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(grn_no FROM 4) AS INTEGER)), 0)
		FROM grn_headers
		WHERE loc_id = ? AND grn_no LIKE 'GRN%' AND SUBSTRING(grn_no FROM 4) ~ '^[0-9]+$'
	`, locID).Scan(&maxGrn)

	// Fatura: 8 haneli terminal numarası, hem bekleyen hem arşivlenmiş tablolara bakılır
	var maxInv int64
	DB.Raw(`
		SELECT COALESCE(MAX(n), 0) FROM (
			SELECT MAX(CAST(ter_inv_no AS INTEGER)) AS n
			FROM invoice_headers
			WHERE loc_id = ? AND ter_inv_no ~ '^[0-9]+$'
			UNION ALL
			SELECT MAX(CAST(ter_inv_no AS INTEGER)) AS n
			FROM archived_invoice_headers
			WHERE loc_id = ? AND ter_inv_no ~ '^[0-9]+$'
		) AS m
	`, locID, locID).Scan(&maxInv)

	seed := func(docType string, lastValue int64) {
		err := DB.Exec(`
			INSERT INTO document_sequences (doc_type, loc_id, last_value, created_at, updated_at)
			VALUES (?, ?, ?, NOW(), NOW())
			ON CONFLICT (doc_type, loc_id) DO UPDATE
			SET last_value = GREATEST(document_sequences.last_value, EXCLUDED.last_value),
				updated_at = NOW()
		`, docType, locID, lastValue).Error
		if err != nil {
			log.Fatal().Err(err).Str("doc_type", docType).Msg("Belge sayacı hazırlanamadı")
		}
	}

	seed(models.DocTypeGrn, maxGrn)
	seed(models.DocTypeInvoice, maxInv)

	log.Info().
		Int64("grn_last", maxGrn).
		Int64("inv_last", maxInv).
		Str("loc_id", locID).
		Msg("Belge sayaçları hazır")
}
