package stock

import (
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// GET /api/items/price-categories
func PriceCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON([]string{
			models.PriceCategoryCash,
			models.PriceCategoryWholeSale,
			models.PriceCategorySpecial,
		})
	}
}

// GET /api/items/price?itemCode=ITM00001&priceCategory=Whole%20Sale
// Seçilen fiyat kategorisine göre geçerli satış fiyatını döner. Aktif fiyat
// satırı yoksa ürünün perakende fiyatına düşülür.
func ItemPriceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		itemCode := c.Query("itemCode")
		if itemCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "itemCode zorunlu")
		}
		priceCategory := c.Query("priceCategory", models.PriceCategoryCash)

		var priceRow models.ItemPrice
		err := database.DB.
			Where("item_code = ? AND active_status = true", itemCode).
			Order("effective_date DESC").
			First(&priceRow).Error
		if err == nil {
			return c.JSON(fiber.Map{
				"price":     SelectPrice(&priceRow, priceCategory),
				"markPrice": priceRow.MarkPrice,
				"credPrice": priceRow.CredPrice,
				"disPrice":  priceRow.DisPrice,
			})
		}

		// Aktif fiyat satırı yok; stok kartındaki perakende fiyat kullanılır
		var item models.Item
		if err := database.DB.First(&item, "sys_id = ?", itemCode).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}
		return c.JSON(fiber.Map{
			"price":     item.RetailPrice,
			"markPrice": item.RetailPrice,
			"credPrice": item.RetailPrice,
			"disPrice":  item.RetailPrice,
		})
	}
}

// SelectPrice fiyat kategorisini ilgili kolona eşler; bilinmeyen kategori
// Cash Price gibi davranır.
func SelectPrice(row *models.ItemPrice, priceCategory string) decimal.Decimal {
	switch priceCategory {
	case models.PriceCategoryWholeSale:
		return row.CredPrice
	case models.PriceCategorySpecial:
		return row.DisPrice
	default:
		return row.MarkPrice
	}
}
