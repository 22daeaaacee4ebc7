package reports

import (
	"time"

	"pos-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type DailySummary struct {
	Date         string          `json:"date"`
	TotNumOfInvo int64           `json:"tot_num_of_invo"`
	TotInvoAmt   decimal.Decimal `json:"tot_invo_amt"` // Net tutar toplamı
	SubTotal     decimal.Decimal `json:"sub_total"`
	CashTotal    decimal.Decimal `json:"cash_total"`
	CreditTot    decimal.Decimal `json:"credit_tot"`
	CardTotal    decimal.Decimal `json:"card_total"`
	TotDis       decimal.Decimal `json:"tot_dis"`
}

// GET /api/reports/daily-summary?date=2025-01-01
// Gün sonu özeti doğrudan fatura defterinden hesaplanır; arşivlenmiş
// faturalar da dahildir.
func DailySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dateStr := c.Query("date")
		if dateStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "date zorunlu")
		}
		if _, err := time.Parse("2006-01-02", dateStr); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		var summary DailySummary
		err := database.DB.Raw(`
			SELECT
				COUNT(*)                          AS tot_num_of_invo,
				COALESCE(SUM(net_amount), 0)      AS tot_invo_amt,
				COALESCE(SUM(sub_tot), 0)         AS sub_total,
				COALESCE(SUM(cash_paid_amt), 0)   AS cash_total,
				COALESCE(SUM(credit_amt), 0)      AS credit_tot,
				COALESCE(SUM(card_amt), 0)        AS card_total,
				COALESCE(SUM(invo_dis), 0)        AS tot_dis
			FROM (
				SELECT net_amount, sub_tot, cash_paid_amt, credit_amt, card_amt, invo_dis
				FROM invoice_headers WHERE inv_date::date = ?::date
				UNION ALL
				SELECT net_amount, sub_tot, cash_paid_amt, credit_amt, card_amt, invo_dis
				FROM archived_invoice_headers WHERE inv_date::date = ?::date
			) AS day_rows
		`, dateStr, dateStr).Scan(&summary).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gün sonu özeti hesaplanamadı")
		}

		summary.Date = dateStr
		return c.JSON(summary)
	}
}
