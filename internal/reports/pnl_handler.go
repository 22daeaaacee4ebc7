package reports

import (
	"time"

	"pos-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PnlRow struct {
	ItemCode string          `json:"item_code"`
	ItemName string          `json:"item_name"`
	SoldQty  float64         `json:"sold_qty"`
	NetSale  decimal.Decimal `json:"net_sale"`
	ItemCost decimal.Decimal `json:"item_cost"`
	Profit   decimal.Decimal `json:"profit"`
}

type PnlResponse struct {
	FromDate  string          `json:"from_date"`
	ToDate    string          `json:"to_date"`
	Items     []PnlRow        `json:"items"`
	TotalSale decimal.Decimal `json:"total_sale"`
	TotalCost decimal.Decimal `json:"total_cost"`
	NetProfit decimal.Decimal `json:"net_profit"`
}

// GET /api/reports/pnl?fromDate=2025-01-01&toDate=2025-01-31
// Kalem bazında kâr/zarar: satış tutarı satırdaki net tutardan, maliyet
// satış anında dondurulan birim maliyetten gelir.
func PnlHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fromStr := c.Query("fromDate")
		toStr := c.Query("toDate")
		if fromStr == "" || toStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "fromDate ve toDate zorunlu")
		}
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}
		if to.Before(from) {
			return fiber.NewError(fiber.StatusBadRequest, "toDate fromDate'ten önce olamaz")
		}

		rows := []PnlRow{}
		err = database.DB.Raw(`
			SELECT
				d.item_code                    AS item_code,
				COALESCE(MAX(i.item_name), '') AS item_name,
				COALESCE(SUM(d.item_qty), 0)   AS sold_qty,
				COALESCE(SUM(d.net_amt), 0)    AS net_sale,
				COALESCE(SUM(d.item_cost), 0)  AS item_cost,
				COALESCE(SUM(d.net_amt), 0) - COALESCE(SUM(d.item_cost), 0) AS profit
			FROM (
				SELECT d.item_code, d.item_qty, d.net_amt, d.item_cost
				FROM invoice_details d
				JOIN invoice_headers h
					ON h.loc_id = d.loc_id AND h.ter_inv_no = d.ter_inv_no
				WHERE h.inv_date::date BETWEEN ?::date AND ?::date
				UNION ALL
				SELECT d.item_code, d.item_qty, d.net_amt, d.item_cost
				FROM archived_invoice_details d
				JOIN archived_invoice_headers h
					ON h.loc_id = d.loc_id AND h.ter_inv_no = d.ter_inv_no
				WHERE h.inv_date::date BETWEEN ?::date AND ?::date
			) AS d
			LEFT JOIN items i ON i.sys_id = d.item_code
			GROUP BY d.item_code
			ORDER BY profit DESC
		`, fromStr, toStr, fromStr, toStr).Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kâr/zarar raporu hesaplanamadı")
		}

		resp := PnlResponse{
			FromDate:  fromStr,
			ToDate:    toStr,
			Items:     rows,
			TotalSale: decimal.Zero,
			TotalCost: decimal.Zero,
		}
		for _, r := range rows {
			resp.TotalSale = resp.TotalSale.Add(r.NetSale)
			resp.TotalCost = resp.TotalCost.Add(r.ItemCost)
		}
		resp.NetProfit = resp.TotalSale.Sub(resp.TotalCost)
		return c.JSON(resp)
	}
}
