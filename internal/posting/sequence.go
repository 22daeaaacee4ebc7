package posting

import (
	"fmt"
	"strconv"
	"strings"

	"pos-backend/internal/models"
)

// Numara biçimleri: GRN için "GRN" + 5 hane, fatura için 8 haneli terminal
// numarası. Genişlik dolunca (ör: GRN99999 sonrası) numara uzar; parse
// tarafı bunu tolere eder.

func FormatGrnNo(n int64) string {
	return fmt.Sprintf("GRN%05d", n)
}

func FormatInvoiceNo(n int64) string {
	return fmt.Sprintf("%08d", n)
}

// ParseGrnNo "GRN00042" -> 42. Biçim tutmuyorsa ok=false.
func ParseGrnNo(s string) (int64, bool) {
	if !strings.HasPrefix(s, "GRN") {
		return 0, false
	}
	n, err := strconv.ParseInt(s[3:], 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ParseInvoiceNo "00000042" -> 42.
func ParseInvoiceNo(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// nextGrnNo / nextInvoiceNo sayacı transaction içinde artırır; numara
// üretimi ile insert aynı commit sınırındadır. Ham sayaç değeri de döner,
// çakışma halinde sayaç bu değerin üzerine alınır.

func nextGrnNo(tx Tx, locID string) (int64, string, error) {
	n, err := tx.NextNumber(models.DocTypeGrn, locID)
	if err != nil {
		return 0, "", fmt.Errorf("GRN numarası üretilemedi: %w", err)
	}
	return n, FormatGrnNo(n), nil
}

func nextInvoiceNo(tx Tx, locID string) (int64, string, error) {
	n, err := tx.NextNumber(models.DocTypeInvoice, locID)
	if err != nil {
		return 0, "", fmt.Errorf("fatura numarası üretilemedi: %w", err)
	}
	return n, FormatInvoiceNo(n), nil
}
