package posting

import (
	"context"
	"sync"
	"testing"
	"time"

	"pos-backend/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(store *memStore) *Service {
	return NewService(store, zerolog.Nop(), 5*time.Second)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPostGrn(t *testing.T) {
	store := newMemStore()
	store.seedItem("ITM00001", 5, "10.00")
	store.seedItem("ITM00002", 0, "4.25")
	svc := newTestService(store)

	res, err := svc.PostGrn(context.Background(), GrnRequest{
		LocID:    "POS00001",
		SuppCode: "SUP00001",
		RefNo:    "INV-778",
		Lines: []Line{
			{ItemCode: "ITM00001", Quantity: 3, UnitPrice: dec("10.00")},
			{ItemCode: "ITM00002", Quantity: 2.5, UnitPrice: dec("4.25")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "GRN00001", res.GrnNo)
	assert.True(t, res.GrossTot.Equal(dec("40.63")), "gross: %s", res.GrossTot)

	require.Len(t, store.state.grnHdrs, 1)
	hdr := store.state.grnHdrs[0]
	assert.Equal(t, "GRN00001", hdr.GrnNo)
	assert.Equal(t, "DI", hdr.CateID)
	assert.Equal(t, "SUP00001", hdr.SuppCode)
	assert.True(t, hdr.GrossTot.Equal(dec("40.63")))

	require.Len(t, store.state.grnDtls, 2)
	assert.Equal(t, 1, store.state.grnDtls[0].LineNo)
	assert.Equal(t, 2, store.state.grnDtls[1].LineNo)
	assert.True(t, store.state.grnDtls[0].TotPurPrice.Equal(dec("30.00")))
	assert.True(t, store.state.grnDtls[1].TotPurPrice.Equal(dec("10.63")))

	// Stok girişi aynı transaction'da uygulanmış olmalı
	assert.InDelta(t, 8, store.itemQty("ITM00001"), 1e-9)
	assert.InDelta(t, 2.5, store.itemQty("ITM00002"), 1e-9)

	// İkinci fiş bir sonraki numarayı almalı
	res2, err := svc.PostGrn(context.Background(), GrnRequest{
		LocID:    "POS00001",
		SuppCode: "SUP00001",
		Lines:    []Line{{ItemCode: "ITM00001", Quantity: 1, UnitPrice: dec("10.00")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "GRN00002", res2.GrnNo)
}

func TestPostInvoice(t *testing.T) {
	store := newMemStore()
	store.seedItem("ITM00001", 10, "7.50")
	svc := newTestService(store)

	res, err := svc.PostInvoice(context.Background(), InvoiceRequest{
		LocID:         "POS00001",
		CusCode:       "CUS00001",
		SlpCode:       "SLP00001",
		PriceCategory: models.PriceCategoryCash,
		Lines:         []Line{{ItemCode: "ITM00001", Quantity: 2, UnitPrice: dec("12.00")}},
		Payment:       Payment{CashPaid: dec("24.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, "00000001", res.InvoiceNumber)
	assert.Len(t, res.InvoiceNumber, 8)
	assert.True(t, res.SubTot.Equal(dec("24.00")))
	assert.True(t, res.NetTotal.Equal(dec("24.00")))
	assert.True(t, res.Balance.IsZero(), "balance: %s", res.Balance)
	assert.Equal(t, models.PaymentDirectCash, res.CreditOrCash)

	require.Len(t, store.state.invHdrs, 1)
	hdr := store.state.invHdrs[0]
	assert.Equal(t, "00000001", hdr.TerInvNo)
	assert.InDelta(t, 2, hdr.NoOfItems, 1e-9)

	require.Len(t, store.state.invDtls, 1)
	dtl := store.state.invDtls[0]
	assert.Equal(t, 1, dtl.LineNo)
	assert.True(t, dtl.NetAmt.Equal(dec("24.00")))
	// Maliyet satış anındaki alış fiyatından dondurulur
	assert.True(t, dtl.ItemCost.Equal(dec("15.00")), "cost: %s", dtl.ItemCost)

	assert.InDelta(t, 8, store.itemQty("ITM00001"), 1e-9)
}

func TestPostInvoiceDiscountAndBalance(t *testing.T) {
	store := newMemStore()
	store.seedItem("ITM00001", 100, "1.00")
	svc := newTestService(store)

	res, err := svc.PostInvoice(context.Background(), InvoiceRequest{
		LocID:   "POS00001",
		CusCode: "CUS00001",
		Lines:   []Line{{ItemCode: "ITM00001", Quantity: 10, UnitPrice: dec("5.00")}},
		Payment: Payment{
			CashPaid:      dec("20.00"),
			CreditAmount:  dec("25.00"),
			ExtraDiscount: dec("5.00"),
		},
	})
	require.NoError(t, err)
	assert.True(t, res.SubTot.Equal(dec("50.00")))
	assert.True(t, res.NetTotal.Equal(dec("45.00")))
	assert.True(t, res.Balance.Equal(dec("0.00")), "balance: %s", res.Balance)
	assert.Equal(t, models.PaymentMixedCredit, res.CreditOrCash)
}

func TestPostInvoiceTotalsMismatch(t *testing.T) {
	store := newMemStore()
	store.seedItem("ITM00001", 10, "1.00")
	svc := newTestService(store)

	wrong := dec("99.99")
	_, err := svc.PostInvoice(context.Background(), InvoiceRequest{
		LocID:        "POS00001",
		CusCode:      "CUS00001",
		Lines:        []Line{{ItemCode: "ITM00001", Quantity: 1, UnitPrice: dec("10.00")}},
		Payment:      Payment{CashPaid: dec("10.00")},
		ClientSubTot: &wrong,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTotalsMismatch)
	assert.Equal(t, KindValidation, Kind(err))
	assert.Empty(t, store.state.invHdrs)
	assert.InDelta(t, 10, store.itemQty("ITM00001"), 1e-9)

	// Kuruş yuvarlama farkı tolere edilir
	close := dec("10.01")
	_, err = svc.PostInvoice(context.Background(), InvoiceRequest{
		LocID:        "POS00001",
		CusCode:      "CUS00001",
		Lines:        []Line{{ItemCode: "ITM00001", Quantity: 1, UnitPrice: dec("10.00")}},
		Payment:      Payment{CashPaid: dec("10.00")},
		ClientSubTot: &close,
	})
	require.NoError(t, err)
}

func TestValidationRejections(t *testing.T) {
	tests := []struct {
		name    string
		req     GrnRequest
		wantErr error
	}{
		{
			name:    "lokasyon eksik",
			req:     GrnRequest{SuppCode: "SUP00001", Lines: []Line{{ItemCode: "ITM00001", Quantity: 1}}},
			wantErr: ErrMissingLocation,
		},
		{
			name:    "tedarikçi eksik",
			req:     GrnRequest{LocID: "POS00001", Lines: []Line{{ItemCode: "ITM00001", Quantity: 1}}},
			wantErr: ErrMissingSupplier,
		},
		{
			name:    "kalem yok",
			req:     GrnRequest{LocID: "POS00001", SuppCode: "SUP00001"},
			wantErr: ErrNoLines,
		},
		{
			name:    "ürün kodu boş",
			req:     GrnRequest{LocID: "POS00001", SuppCode: "SUP00001", Lines: []Line{{Quantity: 1}}},
			wantErr: ErrMissingItemCode,
		},
		{
			name:    "miktar sıfır",
			req:     GrnRequest{LocID: "POS00001", SuppCode: "SUP00001", Lines: []Line{{ItemCode: "ITM00001"}}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "negatif fiyat",
			req: GrnRequest{LocID: "POS00001", SuppCode: "SUP00001",
				Lines: []Line{{ItemCode: "ITM00001", Quantity: 1, UnitPrice: dec("-1.00")}}},
			wantErr: ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.seedItem("ITM00001", 5, "1.00")
			svc := newTestService(store)

			_, err := svc.PostGrn(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, KindValidation, Kind(err))
			assert.Equal(t, 400, HTTPStatus(err))

			// Reddedilen istek hiçbir iz bırakmamalı
			assert.Empty(t, store.state.grnHdrs)
			assert.Empty(t, store.state.grnDtls)
			assert.InDelta(t, 5, store.itemQty("ITM00001"), 1e-9)
		})
	}
}

func TestInvoiceMissingCustomer(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, err := svc.PostInvoice(context.Background(), InvoiceRequest{
		LocID: "POS00001",
		Lines: []Line{{ItemCode: "ITM00001", Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCustomer)
}

func TestUnknownItemRollsBackWholeDocument(t *testing.T) {
	store := newMemStore()
	store.seedItem("ITM00001", 50, "2.00")
	svc := newTestService(store)

	// İkinci kalem stok kartında yok: başlık ve ilk kalem de yazılmamalı
	_, err := svc.PostGrn(context.Background(), GrnRequest{
		LocID:    "POS00001",
		SuppCode: "SUP00001",
		Lines: []Line{
			{ItemCode: "ITM00001", Quantity: 5, UnitPrice: dec("2.00")},
			{ItemCode: "ITM99999", Quantity: 1, UnitPrice: dec("1.00")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, KindStockAdjustment, Kind(err))
	assert.Equal(t, 500, HTTPStatus(err))

	assert.Empty(t, store.state.grnHdrs)
	assert.Empty(t, store.state.grnDtls)
	assert.InDelta(t, 50, store.itemQty("ITM00001"), 1e-9)

	_, err = svc.PostInvoice(context.Background(), InvoiceRequest{
		LocID:   "POS00001",
		CusCode: "CUS00001",
		Lines: []Line{
			{ItemCode: "ITM00001", Quantity: 1, UnitPrice: dec("3.00")},
			{ItemCode: "ITM99999", Quantity: 1, UnitPrice: dec("1.00")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Empty(t, store.state.invHdrs)
	assert.Empty(t, store.state.invDtls)
	assert.InDelta(t, 50, store.itemQty("ITM00001"), 1e-9)

	// Sayaç artışı da transaction'la birlikte geri alınmış olmalı
	assert.Zero(t, store.state.counters[models.DocTypeGrn+"/POS00001"])
	assert.Zero(t, store.state.counters[models.DocTypeInvoice+"/POS00001"])
}

func TestRetryAdvancesPastLegacyNumbers(t *testing.T) {
	store := newMemStore()
	store.seedItem("ITM00001", 10, "1.00")
	// Sayaç tohumundan sonra elle girilmiş eski kayıtlar: üretilen ilk numara
	// bunlarla çakışır. Çakışan numara yakılmazsa her deneme aynı numarayı
	// üretir ve denemeler boşa tükenir.
	store.state.grnHdrs = append(store.state.grnHdrs,
		models.GrnHeader{LocID: "POS00001", GrnNo: "GRN00001"})
	store.state.invHdrs = append(store.state.invHdrs,
		models.InvoiceHeader{LocID: "POS00001", TerInvNo: "00000001"})
	svc := newTestService(store)

	grn, err := svc.PostGrn(context.Background(), GrnRequest{
		LocID:    "POS00001",
		SuppCode: "SUP00001",
		Lines:    []Line{{ItemCode: "ITM00001", Quantity: 1, UnitPrice: dec("1.00")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "GRN00002", grn.GrnNo)
	assert.Len(t, store.state.grnHdrs, 2)

	inv, err := svc.PostInvoice(context.Background(), InvoiceRequest{
		LocID:   "POS00001",
		CusCode: "CUS00001",
		Lines:   []Line{{ItemCode: "ITM00001", Quantity: 1, UnitPrice: dec("2.00")}},
		Payment: Payment{CashPaid: dec("2.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, "00000002", inv.InvoiceNumber)
	assert.Len(t, store.state.invHdrs, 2)
}

func TestConcurrentInvoiceNumbersAreUnique(t *testing.T) {
	const workers = 25

	store := newMemStore()
	store.seedItem("ITM00001", 1000, "1.00")
	svc := newTestService(store)

	var wg sync.WaitGroup
	numbers := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.PostInvoice(context.Background(), InvoiceRequest{
				LocID:   "POS00001",
				CusCode: "CUS00001",
				Lines:   []Line{{ItemCode: "ITM00001", Quantity: 1, UnitPrice: dec("1.00")}},
				Payment: Payment{CashPaid: dec("1.00")},
			})
			if assert.NoError(t, err) {
				numbers <- res.InvoiceNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for no := range numbers {
		assert.False(t, seen[no], "numara iki kez üretildi: %s", no)
		seen[no] = true
	}
	assert.Len(t, seen, workers)
	assert.Len(t, store.state.invHdrs, workers)
	assert.InDelta(t, 1000-workers, store.itemQty("ITM00001"), 1e-9)
}

func TestDuplicateNumberRetry(t *testing.T) {
	store := newMemStore()
	store.seedItem("ITM00001", 10, "1.00")
	store.failDup = 2
	svc := newTestService(store)

	res, err := svc.PostGrn(context.Background(), GrnRequest{
		LocID:    "POS00001",
		SuppCode: "SUP00001",
		Lines:    []Line{{ItemCode: "ITM00001", Quantity: 1, UnitPrice: dec("1.00")}},
	})
	require.NoError(t, err)
	// İlk iki deneme çakıştı; her çakışmada sayaç çakışan numaranın üzerine
	// alındığı için üçüncü deneme yeni bir numarayla tutmuş olmalı
	assert.Equal(t, "GRN00003", res.GrnNo)
	assert.Len(t, store.state.grnHdrs, 1)
}

func TestNumberingConflictExhaustsRetries(t *testing.T) {
	store := newMemStore()
	store.seedItem("ITM00001", 10, "1.00")
	store.failDup = maxNumberingAttempts
	svc := newTestService(store)

	_, err := svc.PostGrn(context.Background(), GrnRequest{
		LocID:    "POS00001",
		SuppCode: "SUP00001",
		Lines:    []Line{{ItemCode: "ITM00001", Quantity: 1, UnitPrice: dec("1.00")}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNumberingConflict)
	assert.Equal(t, KindNumbering, Kind(err))
	assert.Empty(t, store.state.grnHdrs)
}

func TestPaymentCode(t *testing.T) {
	tests := []struct {
		name string
		p    Payment
		want uint8
	}{
		{"sadece veresiye", Payment{CreditAmount: dec("10")}, models.PaymentDirectCredit},
		{"sadece nakit", Payment{CashPaid: dec("10")}, models.PaymentDirectCash},
		{"nakit + veresiye", Payment{CashPaid: dec("5"), CreditAmount: dec("5")}, models.PaymentMixedCredit},
		{"kart + veresiye", Payment{CardAmount: dec("5"), CreditAmount: dec("5")}, models.PaymentMixedCredit},
		{"nakit + kart", Payment{CashPaid: dec("5"), CardAmount: dec("5")}, models.PaymentMixed},
		{"sadece kart", Payment{CardAmount: dec("10")}, models.PaymentMixed},
		{"ödeme yok", Payment{}, models.PaymentMixed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paymentCode(tt.p))
		})
	}
}

func TestGrnAndInvoiceCountersAreIndependent(t *testing.T) {
	store := newMemStore()
	store.seedItem("ITM00001", 100, "1.00")
	svc := newTestService(store)

	grn, err := svc.PostGrn(context.Background(), GrnRequest{
		LocID:    "POS00001",
		SuppCode: "SUP00001",
		Lines:    []Line{{ItemCode: "ITM00001", Quantity: 1, UnitPrice: dec("1.00")}},
	})
	require.NoError(t, err)

	inv, err := svc.PostInvoice(context.Background(), InvoiceRequest{
		LocID:   "POS00001",
		CusCode: "CUS00001",
		Lines:   []Line{{ItemCode: "ITM00001", Quantity: 1, UnitPrice: dec("2.00")}},
		Payment: Payment{CashPaid: dec("2.00")},
	})
	require.NoError(t, err)

	// İki belge tipi aynı lokasyonda ayrı sayaçlardan beslenir
	assert.Equal(t, "GRN00001", grn.GrnNo)
	assert.Equal(t, "00000001", inv.InvoiceNumber)
}
