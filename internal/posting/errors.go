package posting

import (
	"errors"
	"fmt"
)

// Sentinel hatalar: çağıran taraf errors.Is ile ayırt edebilsin diye.
var (
	ErrNoLines         = errors.New("belge en az bir kalem içermeli")
	ErrMissingLocation = errors.New("lokasyon zorunlu")
	ErrMissingSupplier = errors.New("tedarikçi zorunlu")
	ErrMissingCustomer = errors.New("müşteri zorunlu")
	ErrMissingItemCode = errors.New("kalem için ürün kodu zorunlu")
	ErrInvalidQuantity = errors.New("kalem miktarı sıfırdan büyük olmalı")
	ErrInvalidPrice    = errors.New("birim fiyat negatif olamaz")
	ErrInvalidRequest  = errors.New("belge isteği doğrulanamadı")
	ErrTotalsMismatch  = errors.New("gönderilen toplamlar sunucuda hesaplananla uyuşmuyor")

	// ErrItemNotFound: stok güncellemesi hiçbir satırı etkilemedi. Eski sistem
	// bunu sessizce yutuyordu; burada tüm transaction iptal edilir.
	ErrItemNotFound = errors.New("stok kartı bulunamadı")

	// ErrNumberingConflict: tekrar denemelere rağmen tekil belge numarası
	// üretilemedi.
	ErrNumberingConflict = errors.New("belge numarası çakışması çözülemedi")
)

// ValidationError bir sentinel hatayı kalem/alan detayıyla sarmalar.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func validationErr(err error, details string) error {
	return &ValidationError{Err: err, Details: details}
}

// Hata sınıfları: HTTP katmanına makine tarafından okunabilir "kind" olarak döner.
const (
	KindValidation      = "validation_error"
	KindNumbering       = "numbering_conflict"
	KindStockAdjustment = "stock_adjustment_failure"
	KindWriteFailure    = "write_failure"
)

// Kind hatayı taksonomideki sınıfına eşler.
func Kind(err error) string {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, ErrNoLines),
		errors.Is(err, ErrMissingLocation),
		errors.Is(err, ErrMissingSupplier),
		errors.Is(err, ErrMissingCustomer),
		errors.Is(err, ErrMissingItemCode),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrTotalsMismatch):
		return KindValidation
	case errors.Is(err, ErrNumberingConflict):
		return KindNumbering
	case errors.Is(err, ErrItemNotFound):
		return KindStockAdjustment
	default:
		return KindWriteFailure
	}
}

// HTTPStatus hata sınıfını durum koduna çevirir. Validasyon hataları 400,
// geri kalan her şey 500 sınıfıdır (transaction geri alınmıştır).
func HTTPStatus(err error) int {
	if Kind(err) == KindValidation {
		return 400
	}
	return 500
}
