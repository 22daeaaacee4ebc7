package posting

import (
	"fmt"

	"pos-backend/internal/models"

	"github.com/shopspring/decimal"
)

// writeGrn başlık + kalemler + stok artışlarını çağıranın transaction'ı
// içinde yazar. Herhangi bir adım hata dönerse WithinTx her şeyi geri alır;
// yarım belge asla görünür olmaz.
func writeGrn(tx Tx, hdr *models.GrnHeader, lines []Line) error {
	if err := tx.InsertGrnHeader(hdr); err != nil {
		return fmt.Errorf("GRN başlığı yazılamadı: %w", err)
	}

	for i, line := range lines {
		qty := decimal.NewFromFloat(line.Quantity)
		dtl := models.GrnDetail{
			LocID:       hdr.LocID,
			GrnNo:       hdr.GrnNo,
			LineNo:      i + 1,
			ItemCode:    line.ItemCode,
			GoodQty:     line.Quantity,
			PurPrice:    line.UnitPrice,
			TotPurPrice: line.UnitPrice.Mul(qty).Round(2),
		}
		if err := tx.InsertGrnDetail(&dtl); err != nil {
			return fmt.Errorf("GRN kalemi yazılamadı (satır %d): %w", i+1, err)
		}
	}

	// Stok artışı kalem yazımından ayrı bir commit sınırı DEĞİLDİR
	for _, line := range lines {
		if err := adjustStock(tx, line.ItemCode, line.Quantity); err != nil {
			return err
		}
	}

	return nil
}

// writeInvoice fatura başlığı + kalemler + stok düşümlerini tek transaction
// içinde yazar.
func writeInvoice(tx Tx, hdr *models.InvoiceHeader, lines []Line) error {
	if err := tx.InsertInvoiceHeader(hdr); err != nil {
		return fmt.Errorf("fatura başlığı yazılamadı: %w", err)
	}

	for i, line := range lines {
		purPrice, err := tx.ItemPurchasePrice(line.ItemCode)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrItemNotFound, line.ItemCode)
		}

		qty := decimal.NewFromFloat(line.Quantity)
		dtl := models.InvoiceDetail{
			LocID:     hdr.LocID,
			TerInvNo:  hdr.TerInvNo,
			LineNo:    i + 1,
			ItemCode:  line.ItemCode,
			ItemQty:   line.Quantity,
			UnitPrice: line.UnitPrice,
			NetAmt:    line.UnitPrice.Mul(qty).Round(2),
			ItemCost:  purPrice.Mul(qty).Round(2),
		}
		if err := tx.InsertInvoiceDetail(&dtl); err != nil {
			return fmt.Errorf("fatura kalemi yazılamadı (satır %d): %w", i+1, err)
		}
	}

	for _, line := range lines {
		if err := adjustStock(tx, line.ItemCode, -line.Quantity); err != nil {
			return err
		}
	}

	return nil
}
