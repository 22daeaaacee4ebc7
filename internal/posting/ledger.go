package posting

import "fmt"

// adjustStock stok kartına işaretli deltayı uygular. GRN girişinde delta
// pozitif, fatura kesiminde negatiftir. Güncelleme hiçbir satırı
// etkilemediyse bu ölü bir referanstır ve transaction'ın tamamı iptal edilir;
// eski sistemin sessiz no-op davranışı bilinçli olarak terk edildi.
func adjustStock(tx Tx, itemCode string, delta float64) error {
	affected, err := tx.AdjustStock(itemCode, delta)
	if err != nil {
		return fmt.Errorf("stok güncellenemedi (%s): %w", itemCode, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemCode)
	}
	return nil
}
