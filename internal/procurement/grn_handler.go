package procurement

import (
	"fmt"
	"time"

	"pos-backend/internal/audit"
	"pos-backend/internal/database"
	"pos-backend/internal/models"
	"pos-backend/internal/posting"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type GrnItemRequest struct {
	ItemCode       string          `json:"itemCode"`
	Quantity       float64         `json:"quantity"`
	PurchasedPrice decimal.Decimal `json:"purchasedPrice"`
}

type GrnHeaderRequest struct {
	InvoiceNo string `json:"invoiceNo"` // Tedarikçinin fatura numarası (RefNo olarak saklanır)
	Location  string `json:"location"`
	Date      string `json:"date"` // "2025-01-01"
	Supplier  string `json:"supplier"`
	Staff     string `json:"staff"`
	Remark    string `json:"remark"`
}

type CreateGrnRequest struct {
	Header GrnHeaderRequest `json:"header"`
	Items  []GrnItemRequest `json:"items"`
}

// POST /api/grns
func PostGrnHandler(svc *posting.Service, defaultLocID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateGrnRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		locID := body.Header.Location
		if locID == "" {
			locID = defaultLocID
		}

		var grnDate time.Time
		if body.Header.Date != "" {
			d, err := time.Parse("2006-01-02", body.Header.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			grnDate = d
		}

		lines := make([]posting.Line, 0, len(body.Items))
		for _, item := range body.Items {
			lines = append(lines, posting.Line{
				ItemCode:  item.ItemCode,
				Quantity:  item.Quantity,
				UnitPrice: item.PurchasedPrice,
			})
		}

		result, err := svc.PostGrn(c.Context(), posting.GrnRequest{
			LocID:     locID,
			SuppCode:  body.Header.Supplier,
			RefNo:     body.Header.InvoiceNo,
			StaffCode: body.Header.Staff,
			Remark:    body.Header.Remark,
			Date:      grnDate,
			Lines:     lines,
		})
		if err != nil {
			return c.Status(posting.HTTPStatus(err)).JSON(fiber.Map{
				"ok":      false,
				"kind":    posting.Kind(err),
				"message": err.Error(),
			})
		}

		_ = audit.WriteLog(audit.LogOptions{
			LocID:       locID,
			EntityType:  "grn",
			EntityID:    result.GrnNo,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Mal kabul: %s, %d kalem, toplam %s", result.GrnNo, len(lines), result.GrossTot.StringFixed(2)),
			After:       body,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"ok":    true,
			"grnNo": result.GrnNo,
			"locId": result.LocID,
		})
	}
}

type GrnListRow struct {
	GrnNo    string          `json:"grn_no"`
	GrnDate  string          `json:"grn_date"`
	SuppCode string          `json:"supp_code"`
	SuppName string          `json:"supp_name"`
	RefNo    string          `json:"ref_no"`
	GrossTot decimal.Decimal `json:"gross_tot"`
}

// GET /api/grns
func ListGrnsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		if limit < 1 || limit > 500 {
			limit = 50
		}

		// Kayıt sırasına göre; grn_no üzerinden string sıralama numara
		// 5 haneyi aşınca yanlış sıralar
		var headers []models.GrnHeader
		if err := database.DB.Order("id DESC").Limit(limit).Find(&headers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "GRN listesi alınamadı")
		}

		// Tedarikçi adlarını tek sorguyla çek
		suppNames := make(map[string]string)
		var suppliers []models.Supplier
		if err := database.DB.Find(&suppliers).Error; err == nil {
			for _, s := range suppliers {
				suppNames[s.SysID] = s.SuppName
			}
		}

		rows := make([]GrnListRow, 0, len(headers))
		for _, h := range headers {
			rows = append(rows, GrnListRow{
				GrnNo:    h.GrnNo,
				GrnDate:  h.GrnDate.Format("2006-01-02"),
				SuppCode: h.SuppCode,
				SuppName: suppNames[h.SuppCode],
				RefNo:    h.RefNo,
				GrossTot: h.GrossTot,
			})
		}

		return c.JSON(rows)
	}
}
