package master

import (
	"pos-backend/internal/audit"
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/customers?search=
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		search := c.Query("search")

		query := database.DB.Model(&models.Customer{})
		if search != "" {
			like := "%" + search + "%"
			query = query.Where("cus_name ILIKE ? OR sys_id ILIKE ?", like, like)
		}

		customers := []models.Customer{}
		if err := query.Order("cus_name ASC").Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteriler alınamadı")
		}
		return c.JSON(customers)
	}
}

type customerSyncRequest struct {
	LocID     string `json:"locId"`
	Customers []struct {
		SysID    string `json:"sysId"`
		CusCode  string `json:"cusCode"`
		CusName  string `json:"cusName"`
		CusPoint int    `json:"cusPoint"`
	} `json:"customers"`
}

// POST /api/customers/sync
// Merkezden gelen müşteri listesi terminaldeki kopyanın yerine geçer.
// Silme ve ekleme tek transaction içinde yapılır; hata olursa eski
// liste olduğu gibi kalır.
func SyncCustomersHandler(defaultLocID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req customerSyncRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if req.LocID == "" {
			req.LocID = defaultLocID
		}
		if len(req.Customers) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri listesi boş")
		}
		for _, cu := range req.Customers {
			if cu.SysID == "" || cu.CusName == "" {
				return fiber.NewError(fiber.StatusBadRequest, "sysId ve cusName zorunlu")
			}
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("loc_id = ?", req.LocID).Delete(&models.Customer{}).Error; err != nil {
				return err
			}
			rows := make([]models.Customer, 0, len(req.Customers))
			for _, cu := range req.Customers {
				rows = append(rows, models.Customer{
					LocID:    req.LocID,
					SysID:    cu.SysID,
					CusCode:  cu.CusCode,
					CusName:  cu.CusName,
					CusPoint: cu.CusPoint,
				})
			}
			return tx.Create(&rows).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri listesi güncellenemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			LocID:       req.LocID,
			EntityType:  "customer",
			EntityID:    req.LocID,
			Action:      models.AuditActionUpdate,
			Description: "Müşteri listesi merkezden senkronize edildi",
		})

		return c.JSON(fiber.Map{"ok": true, "count": len(req.Customers)})
	}
}
