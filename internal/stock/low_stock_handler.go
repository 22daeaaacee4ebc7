package stock

import (
	"time"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	StockStatusOut = "Out of Stock"
	StockStatusLow = "Low Stock"
)

type LowStockRow struct {
	SysID       string  `json:"sys_id"`
	ItemName    string  `json:"item_name"`
	GoodQty     float64 `json:"good_qty"`
	StockStatus string  `json:"stock_status"`
}

// GET /api/items/low-stock?threshold=10
func LowStockHandler(defaultThreshold int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		threshold := c.QueryInt("threshold", defaultThreshold)
		if threshold < 0 {
			threshold = defaultThreshold
		}

		var items []models.Item
		if err := database.DB.
			Where("avl_qty <= ?", threshold).
			Order("avl_qty ASC, item_name ASC").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Düşük stok listesi alınamadı")
		}

		rows := make([]LowStockRow, 0, len(items))
		for _, item := range items {
			status := StockStatusLow
			if item.AvlQty <= 0 {
				status = StockStatusOut
			}
			rows = append(rows, LowStockRow{
				SysID:       item.SysID,
				ItemName:    item.ItemName,
				GoodQty:     item.AvlQty,
				StockStatus: status,
			})
		}

		return c.JSON(fiber.Map{
			"items":     rows,
			"threshold": threshold,
			"count":     len(rows),
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}
