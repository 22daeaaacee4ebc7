package stock

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pos-backend/internal/audit"
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ItemResponse struct {
	SysID        string          `json:"sys_id"`
	ItemName     string          `json:"item_name"`
	ItemCode     string          `json:"item_code"`
	GoodQty      float64         `json:"good_qty"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	PurPrice     decimal.Decimal `json:"pur_price"`
}

// GET /api/items?search=...
func ListItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Item{}).Order("item_name ASC")

		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			q = q.Where("item_name ILIKE ? OR sys_id ILIKE ? OR item_code ILIKE ?", like, like, like)
		}

		var items []models.Item
		if err := q.Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		resp := make([]ItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, ItemResponse{
				SysID:        item.SysID,
				ItemName:     item.ItemName,
				ItemCode:     item.ItemCode,
				GoodQty:      item.AvlQty,
				SellingPrice: item.RetailPrice,
				PurPrice:     item.PurchasedPrice,
			})
		}

		return c.JSON(resp)
	}
}

type CreateItemRequest struct {
	ItemName       string          `json:"item_name"`
	ItemCode       string          `json:"item_code"`
	AvlQty         float64         `json:"avl_qty"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	PurchasedPrice decimal.Decimal `json:"purchased_price"`
	CredPrice      decimal.Decimal `json:"cred_price"` // Whole Sale fiyatı (boşsa retail kullanılır)
	DisPrice       decimal.Decimal `json:"dis_price"`  // Special fiyatı
}

// POST /api/items
// Stok kartı + aktif fiyat satırını birlikte oluşturur.
func CreateItemHandler(defaultLocID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ItemName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "item_name zorunlu")
		}
		if body.AvlQty < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "avl_qty negatif olamaz")
		}
		if body.RetailPrice.IsNegative() || body.PurchasedPrice.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyatlar negatif olamaz")
		}

		sysID, err := nextItemSysID()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün kodu üretilemedi")
		}

		credPrice := body.CredPrice
		if credPrice.IsZero() {
			credPrice = body.RetailPrice
		}
		disPrice := body.DisPrice
		if disPrice.IsZero() {
			disPrice = body.RetailPrice
		}

		item := models.Item{
			LocID:          defaultLocID,
			SysID:          sysID,
			ItemCode:       body.ItemCode,
			ItemName:       body.ItemName,
			AvlQty:         body.AvlQty,
			RetailPrice:    body.RetailPrice,
			PurchasedPrice: body.PurchasedPrice,
		}
		price := models.ItemPrice{
			LocID:         defaultLocID,
			ItemCode:      sysID,
			MarkPrice:     body.RetailPrice,
			CredPrice:     credPrice,
			DisPrice:      disPrice,
			PurPrice:      body.PurchasedPrice,
			ActiveStatus:  true,
			EffectiveDate: time.Now(),
		}

		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşlem başlatılamadı")
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}
		if err := tx.Create(&price).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Fiyat satırı oluşturulamadı")
		}
		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşlem tamamlanamadı")
		}

		_ = audit.WriteLog(audit.LogOptions{
			LocID:       defaultLocID,
			EntityType:  "item",
			EntityID:    sysID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Stok kartı açıldı: %s - %s", sysID, item.ItemName),
			After:       item,
		})

		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// GET /api/items/next-code
// Kullanıcı elle kod yazmasın diye sıradaki ITM kodunu döner.
func NextItemCodeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sysID, err := nextItemSysID()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün kodu üretilemedi")
		}
		return c.JSON(sysID)
	}
}

// nextItemSysID en büyük mevcut ITM kodunu bulup bir artırır. Stok kartı
// açılışı nadir ve tek kullanıcılı bir işlem; belge numaralarının aksine
// sayaç satırı tutulmaz. Önce uzunluğa sonra değere bakılır, yoksa
// "ITM100000" < "ITM99999" gibi string sıralama hatasına düşülür.
func nextItemSysID() (string, error) {
	var maxSysID string
	err := database.DB.Raw(`
		SELECT sys_id FROM items
		WHERE sys_id LIKE 'ITM%'
		ORDER BY LENGTH(sys_id) DESC, sys_id DESC
		LIMIT 1
	`).Scan(&maxSysID).Error
	if err != nil {
		return "", err
	}
	return NextItemCode(maxSysID), nil
}

// NextItemCode "ITM00041" -> "ITM00042"; geçersiz ya da boş girişte "ITM00001".
func NextItemCode(maxSysID string) string {
	if strings.HasPrefix(maxSysID, "ITM") {
		if n, err := strconv.Atoi(maxSysID[3:]); err == nil && n >= 0 {
			return fmt.Sprintf("ITM%05d", n+1)
		}
	}
	return "ITM00001"
}
