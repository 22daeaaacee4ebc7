package sales

import (
	"fmt"

	"pos-backend/internal/audit"
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// POST /api/invoices/upload
// Bekleyen tüm faturaları (başlık + kalemler) arşiv tablolarına taşır ve
// asıl tabloları boşaltır. Taşıma TEK statement'tır: arşive yazılan satır
// kümesi doğrudan DELETE ... RETURNING'den gelir, bu yüzden kopyalama ile
// silme arasına giren bir fatura ne arşivlenmeden silinebilir ne de yarım
// taşınabilir. Eski sistem satır satır kopyalayıp sonra siliyordu; araya
// commit edilen faturayı kaybedebiliyordu.
func UploadInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := database.DB.Exec(`
			WITH moved_hdr AS (
				DELETE FROM invoice_headers
				RETURNING loc_id, ter_inv_no, ref_no, cus_code, slp_code, credit_or_cash,
					inv_date, no_of_items, sub_tot, invo_dis, net_amount, cash_paid_amt,
					credit_amt, card_amt, price_category, user_id, created_at
			), moved_dtl AS (
				DELETE FROM invoice_details d
				USING moved_hdr h
				WHERE d.loc_id = h.loc_id AND d.ter_inv_no = h.ter_inv_no
				RETURNING d.loc_id, d.ter_inv_no, d.line_no, d.item_code, d.item_qty,
					d.unit_price, d.net_amt, d.item_cost, d.created_at
			), ins_dtl AS (
				INSERT INTO archived_invoice_details
					(loc_id, ter_inv_no, line_no, item_code, item_qty, unit_price, net_amt,
					 item_cost, created_at, uploaded_at)
				SELECT loc_id, ter_inv_no, line_no, item_code, item_qty, unit_price, net_amt,
					 item_cost, created_at, NOW()
				FROM moved_dtl
			)
			INSERT INTO archived_invoice_headers
				(loc_id, ter_inv_no, ref_no, cus_code, slp_code, credit_or_cash, inv_date,
				 no_of_items, sub_tot, invo_dis, net_amount, cash_paid_amt, credit_amt,
				 card_amt, price_category, user_id, created_at, uploaded_at)
			SELECT loc_id, ter_inv_no, ref_no, cus_code, slp_code, credit_or_cash, inv_date,
				 no_of_items, sub_tot, invo_dis, net_amount, cash_paid_amt, credit_amt,
				 card_amt, price_category, user_id, created_at, NOW()
			FROM moved_hdr
		`)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Faturalar arşivlenemedi: %v", res.Error))
		}
		// Son INSERT taşınan başlık sayısını döner
		count := res.RowsAffected
		if count == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Yüklenecek fatura yok")
		}

		_ = audit.WriteLog(audit.LogOptions{
			EntityType:  "invoice",
			EntityID:    "upload",
			Action:      models.AuditActionArchive,
			Description: fmt.Sprintf("%d fatura arşive taşındı", count),
		})

		return c.JSON(fiber.Map{
			"success": true,
			"message": fmt.Sprintf("%d fatura başarıyla yüklendi", count),
		})
	}
}
