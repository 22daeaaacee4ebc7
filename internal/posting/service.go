package posting

import (
	"context"
	"strconv"
	"time"

	"pos-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Numara çakışmasında en fazla kaç kez yeni numarayla denenir. Sayaç atomik
// olduğu için çakışma ancak eski (elle girilmiş) kayıtlarla olabilir.
const maxNumberingAttempts = 3

// Müşteri/terminal toplamları ile sunucu hesabı arasında tolere edilen fark.
var totalsTolerance = decimal.NewFromFloat(0.01)

type Line struct {
	ItemCode  string          `json:"itemCode" validate:"required"`
	Quantity  float64         `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type GrnRequest struct {
	LocID     string `validate:"required"`
	SuppCode  string `validate:"required"`
	RefNo     string
	StaffCode string
	Remark    string
	Date      time.Time
	Lines     []Line `validate:"dive"`
}

type GrnResult struct {
	GrnNo    string          `json:"grnNo"`
	LocID    string          `json:"locId"`
	GrossTot decimal.Decimal `json:"grossTot"`
}

type Payment struct {
	CashPaid      decimal.Decimal `json:"cashPaid"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	CardAmount    decimal.Decimal `json:"cardAmount"`
	ExtraDiscount decimal.Decimal `json:"extraDiscount"`
}

type InvoiceRequest struct {
	LocID         string `validate:"required"`
	CusCode       string `validate:"required"`
	RefNo         string
	SlpCode       string
	PriceCategory string
	UserID        string
	Lines         []Line `validate:"dive"`
	Payment       Payment

	// Terminalin hesapladığı toplamlar. Sunucu kendi hesabıyla karşılaştırır;
	// nil ise sadece sunucu hesabı kullanılır.
	ClientSubTot   *decimal.Decimal
	ClientNetTotal *decimal.Decimal
}

type InvoiceResult struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	LocID         string          `json:"locId"`
	SubTot        decimal.Decimal `json:"subTotal"`
	NetTotal      decimal.Decimal `json:"netTotal"`
	Balance       decimal.Decimal `json:"balance"`
	CreditOrCash  uint8           `json:"creditOrCash"`
}

// Service belge kayıt orkestratörü: doğrula -> numarala -> yaz -> sonucu dön.
// Tek giriş noktası budur; HTTP katmanı yalnızca istek/yanıt çevirir.
type Service struct {
	store    Store
	log      zerolog.Logger
	validate *validator.Validate
	timeout  time.Duration
}

func NewService(store Store, log zerolog.Logger, timeout time.Duration) *Service {
	return &Service{
		store:    store,
		log:      log,
		validate: validator.New(),
		timeout:  timeout,
	}
}

// PostGrn mal kabul fişini kaydeder. Başarıda üretilen GRN numarasını döner.
func (s *Service) PostGrn(ctx context.Context, req GrnRequest) (*GrnResult, error) {
	if err := s.validateGrn(&req); err != nil {
		return nil, err
	}

	grossTot := sumLines(req.Lines)
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var result *GrnResult
	var lastSeq int64
	for attempt := 1; attempt <= maxNumberingAttempts; attempt++ {
		err := s.store.WithinTx(ctx, func(tx Tx) error {
			seq, grnNo, err := nextGrnNo(tx, req.LocID)
			if err != nil {
				return err
			}
			lastSeq = seq

			hdr := models.GrnHeader{
				LocID:     req.LocID,
				GrnNo:     grnNo,
				GrnDate:   req.Date,
				CateID:    "DI",
				SuppCode:  req.SuppCode,
				RefNo:     req.RefNo,
				StaffCode: req.StaffCode,
				Remark:    req.Remark,
				GrossTot:  grossTot,
			}
			if err := writeGrn(tx, &hdr, req.Lines); err != nil {
				return err
			}

			result = &GrnResult{GrnNo: grnNo, LocID: req.LocID, GrossTot: grossTot}
			return nil
		})
		if err == nil {
			s.log.Info().
				Str("grn_no", result.GrnNo).
				Str("loc_id", req.LocID).
				Int("lines", len(req.Lines)).
				Str("gross_tot", grossTot.StringFixed(2)).
				Msg("GRN kaydedildi")
			return result, nil
		}
		if s.store.IsDuplicateNumber(err) {
			// Geri alınan transaction sayaç artışını da geri aldı; çakışan
			// numara ayrıca yakılmazsa bir sonraki deneme aynı numarayı üretir.
			s.log.Warn().Err(err).Int("attempt", attempt).Int64("seq", lastSeq).
				Msg("GRN numarası çakıştı, sayaç çakışan numaranın üzerine alınıyor")
			if bumpErr := s.store.BumpSequence(ctx, models.DocTypeGrn, req.LocID, lastSeq); bumpErr != nil {
				s.log.Error().Err(bumpErr).Str("loc_id", req.LocID).Msg("Belge sayacı ileri alınamadı")
				return nil, bumpErr
			}
			continue
		}
		s.log.Error().Err(err).Str("loc_id", req.LocID).Msg("GRN kaydedilemedi, transaction geri alındı")
		return nil, err
	}

	return nil, ErrNumberingConflict
}

// PostInvoice faturayı kaydeder. Toplamlar sunucuda yeniden hesaplanır;
// terminalin gönderdiği toplamlara güvenilmez.
func (s *Service) PostInvoice(ctx context.Context, req InvoiceRequest) (*InvoiceResult, error) {
	if err := s.validateInvoice(&req); err != nil {
		return nil, err
	}

	subTot := sumLines(req.Lines)
	netTotal := subTot.Sub(req.Payment.ExtraDiscount).Round(2)
	balance := netTotal.
		Sub(req.Payment.CashPaid).
		Sub(req.Payment.CreditAmount).
		Sub(req.Payment.CardAmount).
		Round(2)

	if req.ClientSubTot != nil && req.ClientSubTot.Sub(subTot).Abs().GreaterThan(totalsTolerance) {
		return nil, validationErr(ErrTotalsMismatch,
			"subTotal: gönderilen "+req.ClientSubTot.StringFixed(2)+", hesaplanan "+subTot.StringFixed(2))
	}
	if req.ClientNetTotal != nil && req.ClientNetTotal.Sub(netTotal).Abs().GreaterThan(totalsTolerance) {
		return nil, validationErr(ErrTotalsMismatch,
			"netTotal: gönderilen "+req.ClientNetTotal.StringFixed(2)+", hesaplanan "+netTotal.StringFixed(2))
	}

	noOfItems := 0.0
	for _, line := range req.Lines {
		noOfItems += line.Quantity
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := time.Now()
	var result *InvoiceResult
	var lastSeq int64
	for attempt := 1; attempt <= maxNumberingAttempts; attempt++ {
		err := s.store.WithinTx(ctx, func(tx Tx) error {
			seq, terInvNo, err := nextInvoiceNo(tx, req.LocID)
			if err != nil {
				return err
			}
			lastSeq = seq

			hdr := models.InvoiceHeader{
				LocID:         req.LocID,
				TerInvNo:      terInvNo,
				RefNo:         req.RefNo,
				CusCode:       req.CusCode,
				SlpCode:       req.SlpCode,
				CreditOrCash:  paymentCode(req.Payment),
				InvDate:       now,
				NoOfItems:     noOfItems,
				SubTot:        subTot,
				InvoDis:       req.Payment.ExtraDiscount,
				NetAmount:     netTotal,
				CashPaidAmt:   req.Payment.CashPaid,
				CreditAmt:     req.Payment.CreditAmount,
				CardAmt:       req.Payment.CardAmount,
				PriceCategory: req.PriceCategory,
				UserID:        req.UserID,
			}
			if err := writeInvoice(tx, &hdr, req.Lines); err != nil {
				return err
			}

			result = &InvoiceResult{
				InvoiceNumber: terInvNo,
				LocID:         req.LocID,
				SubTot:        subTot,
				NetTotal:      netTotal,
				Balance:       balance,
				CreditOrCash:  hdr.CreditOrCash,
			}
			return nil
		})
		if err == nil {
			s.log.Info().
				Str("ter_inv_no", result.InvoiceNumber).
				Str("loc_id", req.LocID).
				Int("lines", len(req.Lines)).
				Str("net_total", netTotal.StringFixed(2)).
				Msg("Fatura kaydedildi")
			return result, nil
		}
		if s.store.IsDuplicateNumber(err) {
			s.log.Warn().Err(err).Int("attempt", attempt).Int64("seq", lastSeq).
				Msg("Fatura numarası çakıştı, sayaç çakışan numaranın üzerine alınıyor")
			if bumpErr := s.store.BumpSequence(ctx, models.DocTypeInvoice, req.LocID, lastSeq); bumpErr != nil {
				s.log.Error().Err(bumpErr).Str("loc_id", req.LocID).Msg("Belge sayacı ileri alınamadı")
				return nil, bumpErr
			}
			continue
		}
		s.log.Error().Err(err).Str("loc_id", req.LocID).Msg("Fatura kaydedilemedi, transaction geri alındı")
		return nil, err
	}

	return nil, ErrNumberingConflict
}

func (s *Service) validateGrn(req *GrnRequest) error {
	if req.LocID == "" {
		return ErrMissingLocation
	}
	if req.SuppCode == "" {
		return ErrMissingSupplier
	}
	if len(req.Lines) == 0 {
		return ErrNoLines
	}
	if err := validateLines(req.Lines); err != nil {
		return err
	}
	if err := s.validate.Struct(req); err != nil {
		return validationErr(ErrInvalidRequest, err.Error())
	}
	return nil
}

func (s *Service) validateInvoice(req *InvoiceRequest) error {
	if req.LocID == "" {
		return ErrMissingLocation
	}
	if req.CusCode == "" {
		return ErrMissingCustomer
	}
	if len(req.Lines) == 0 {
		return ErrNoLines
	}
	if err := validateLines(req.Lines); err != nil {
		return err
	}
	if req.Payment.ExtraDiscount.IsNegative() {
		return validationErr(ErrInvalidPrice, "extraDiscount negatif olamaz")
	}
	if err := s.validate.Struct(req); err != nil {
		return validationErr(ErrInvalidRequest, err.Error())
	}
	return nil
}

func validateLines(lines []Line) error {
	for i, line := range lines {
		if line.ItemCode == "" {
			return validationErr(ErrMissingItemCode, "satır "+strconv.Itoa(i+1))
		}
		if line.Quantity <= 0 {
			return validationErr(ErrInvalidQuantity, "satır "+strconv.Itoa(i+1)+": "+line.ItemCode)
		}
		if line.UnitPrice.IsNegative() {
			return validationErr(ErrInvalidPrice, "satır "+strconv.Itoa(i+1)+": "+line.ItemCode)
		}
	}
	return nil
}

// sumLines kalem toplamını sunucu tarafında hesaplar (2 hane yuvarlama).
func sumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromFloat(line.Quantity)))
	}
	return total.Round(2)
}

// paymentCode ödeme karışımından tip kodunu türetir.
func paymentCode(p Payment) uint8 {
	hasCash := p.CashPaid.IsPositive()
	hasCard := p.CardAmount.IsPositive()
	hasCredit := p.CreditAmount.IsPositive()

	switch {
	case !hasCash && !hasCard && hasCredit:
		return models.PaymentDirectCredit
	case hasCash && !hasCard && !hasCredit:
		return models.PaymentDirectCash
	case hasCredit:
		return models.PaymentMixedCredit
	default:
		return models.PaymentMixed
	}
}
