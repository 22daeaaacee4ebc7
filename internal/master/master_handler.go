package master

import (
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/suppliers
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		suppliers := []models.Supplier{}
		query := database.DB.Model(&models.Supplier{}).Where("active = ?", true)
		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			query = query.Where("supp_name ILIKE ? OR sys_id ILIKE ?", like, like)
		}
		if err := query.Order("supp_name ASC").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçiler alınamadı")
		}
		return c.JSON(suppliers)
	}
}

// GET /api/staff
func ListStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		staff := []models.Staff{}
		if err := database.DB.Where("active = ?", true).Order("name ASC").Find(&staff).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel listesi alınamadı")
		}
		return c.JSON(staff)
	}
}

// GET /api/locations
func ListLocationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		locations := []models.Location{}
		if err := database.DB.Order("loc_id ASC").Find(&locations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lokasyonlar alınamadı")
		}
		return c.JSON(locations)
	}
}
