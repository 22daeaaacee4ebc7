package sales

import (
	"fmt"

	"pos-backend/internal/audit"
	"pos-backend/internal/database"
	"pos-backend/internal/models"
	"pos-backend/internal/posting"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type InvoiceItemRequest struct {
	Code     string          `json:"code"`
	Quantity float64         `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type CreateInvoiceRequest struct {
	Customer      string               `json:"customer"`
	ReferenceNo   string               `json:"referenceNo"`
	PriceCategory string               `json:"priceCategory"`
	Staff         string               `json:"staff"`
	Items         []InvoiceItemRequest `json:"items"`

	// Terminalin hesapladığı toplamlar; sunucu doğrular, körü körüne yazmaz
	SubTotal      *decimal.Decimal `json:"subTotal"`
	NetTotal      *decimal.Decimal `json:"netTotal"`
	ExtraDiscount decimal.Decimal  `json:"extraDiscount"`
	CashPaid      decimal.Decimal  `json:"cashPaid"`
	CreditAmount  decimal.Decimal  `json:"creditAmount"`
	CardAmount    decimal.Decimal  `json:"cardAmount"`
}

// POST /api/invoices
func PostInvoiceHandler(svc *posting.Service, defaultLocID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		lines := make([]posting.Line, 0, len(body.Items))
		for _, item := range body.Items {
			lines = append(lines, posting.Line{
				ItemCode:  item.Code,
				Quantity:  item.Quantity,
				UnitPrice: item.Price,
			})
		}

		result, err := svc.PostInvoice(c.Context(), posting.InvoiceRequest{
			LocID:         defaultLocID,
			CusCode:       body.Customer,
			RefNo:         body.ReferenceNo,
			SlpCode:       body.Staff,
			PriceCategory: body.PriceCategory,
			Lines:         lines,
			Payment: posting.Payment{
				CashPaid:      body.CashPaid,
				CreditAmount:  body.CreditAmount,
				CardAmount:    body.CardAmount,
				ExtraDiscount: body.ExtraDiscount,
			},
			ClientSubTot:   body.SubTotal,
			ClientNetTotal: body.NetTotal,
		})
		if err != nil {
			return c.Status(posting.HTTPStatus(err)).JSON(fiber.Map{
				"success": false,
				"kind":    posting.Kind(err),
				"message": err.Error(),
			})
		}

		_ = audit.WriteLog(audit.LogOptions{
			LocID:       result.LocID,
			EntityType:  "invoice",
			EntityID:    result.InvoiceNumber,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Fatura: %s, %d kalem, net %s", result.InvoiceNumber, len(lines), result.NetTotal.StringFixed(2)),
			After:       body,
		})

		return c.JSON(fiber.Map{
			"success":       true,
			"invoiceNumber": result.InvoiceNumber,
			"subTotal":      result.SubTot,
			"netTotal":      result.NetTotal,
			"balance":       result.Balance,
			"creditOrCash":  result.CreditOrCash,
		})
	}
}

type InvoiceHistoryRow struct {
	ID           uint            `json:"id"`
	TerInvNo     string          `json:"ter_inv_no"`
	RefNo        string          `json:"ref_no"`
	InvDate      string          `json:"inv_date"`
	CusCode      string          `json:"cus_code"`
	CusName      string          `json:"cus_name"`
	NoOfItems    float64         `json:"no_of_items"`
	SubTot       decimal.Decimal `json:"sub_tot"`
	InvoDis      decimal.Decimal `json:"invo_dis"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	CashPaidAmt  decimal.Decimal `json:"cash_paid_amt"`
	CreditOrCash uint8           `json:"credit_or_cash"`
}

// GET /api/invoices
func InvoiceHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		if limit < 1 || limit > 500 {
			limit = 50
		}

		var rows []InvoiceHistoryRow
		err := database.DB.Model(&models.InvoiceHeader{}).
			Select(`invoice_headers.id, invoice_headers.ter_inv_no, invoice_headers.ref_no,
				to_char(invoice_headers.inv_date, 'YYYY-MM-DD') AS inv_date,
				invoice_headers.cus_code, COALESCE(customers.cus_name, '') AS cus_name,
				invoice_headers.no_of_items, invoice_headers.sub_tot, invoice_headers.invo_dis,
				invoice_headers.net_amount, invoice_headers.cash_paid_amt, invoice_headers.credit_or_cash`).
			Joins("LEFT JOIN customers ON customers.sys_id = invoice_headers.cus_code").
			Order("invoice_headers.id DESC").
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura geçmişi alınamadı")
		}

		return c.JSON(rows)
	}
}

type InvoiceDetailRow struct {
	LineNo    int             `json:"line_no"`
	ItemCode  string          `json:"item_code"`
	ItemName  string          `json:"item_name"`
	ItemQty   float64         `json:"item_qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	NetAmt    decimal.Decimal `json:"net_amt"`
}

// GET /api/invoices/:id
func GetInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz fatura ID")
		}

		var hdr models.InvoiceHeader
		if err := database.DB.First(&hdr, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
		}

		var details []InvoiceDetailRow
		err = database.DB.Model(&models.InvoiceDetail{}).
			Select(`invoice_details.line_no, invoice_details.item_code,
				COALESCE(items.item_name, '') AS item_name,
				invoice_details.item_qty, invoice_details.unit_price, invoice_details.net_amt`).
			Joins("LEFT JOIN items ON items.sys_id = invoice_details.item_code").
			Where("invoice_details.loc_id = ? AND invoice_details.ter_inv_no = ?", hdr.LocID, hdr.TerInvNo).
			Order("invoice_details.line_no").
			Scan(&details).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura kalemleri alınamadı")
		}

		var cusName string
		var customer models.Customer
		if err := database.DB.First(&customer, "sys_id = ?", hdr.CusCode).Error; err == nil {
			cusName = customer.CusName
		}

		return c.JSON(fiber.Map{
			"header":  hdr,
			"cusName": cusName,
			"details": details,
		})
	}
}

// GET /api/invoices/pending-count
// Sunucuya yüklenmeyi bekleyen fatura sayısı
func PendingCountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var count int64
		if err := database.DB.Model(&models.InvoiceHeader{}).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura sayısı alınamadı")
		}
		return c.JSON(fiber.Map{"count": count})
	}
}
