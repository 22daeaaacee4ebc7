package posting

import (
	"context"
	"errors"
	"sync"

	"pos-backend/internal/models"

	"github.com/shopspring/decimal"
)

// errDupNumber bellek içi store'un tekillik ihlali sinyali; GormStore'daki
// SQLSTATE 23505 karşılığıdır.
var errDupNumber = errors.New("duplicate document number")

type memItem struct {
	qty      float64
	purPrice decimal.Decimal
}

type memState struct {
	counters map[string]int64
	items    map[string]*memItem
	grnHdrs  []models.GrnHeader
	grnDtls  []models.GrnDetail
	invHdrs  []models.InvoiceHeader
	invDtls  []models.InvoiceDetail
}

// memStore Store'un bellek içi implementasyonu. Transaction, state'in bir
// kopyası üzerinde çalışır; fn hata dönerse kopya atılır ve değişiklik
// görünmez. Mutex transaction boyunca tutulduğu için erişim serialize'dır.
type memStore struct {
	mu    sync.Mutex
	state memState

	// failDup > 0 iken commit aşamasında tekillik ihlali simüle edilir.
	failDup int
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			counters: map[string]int64{},
			items:    map[string]*memItem{},
		},
	}
}

func (s *memStore) seedItem(sysID string, qty float64, purPrice string) {
	s.state.items[sysID] = &memItem{qty: qty, purPrice: decimal.RequireFromString(purPrice)}
}

func (s *memStore) itemQty(sysID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it, ok := s.state.items[sysID]; ok {
		return it.qty
	}
	return 0
}

func (s *memStore) WithinTx(_ context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Postgres gibi: transaction başarısızsa sayaç artışı dahil hiçbir
	// değişiklik kalıcı olmaz.
	staged := cloneState(s.state)
	if err := fn(&memTx{state: &staged}); err != nil {
		return err
	}
	if s.failDup > 0 {
		s.failDup--
		return errDupNumber
	}
	s.state = staged
	return nil
}

func (s *memStore) IsDuplicateNumber(err error) bool {
	return errors.Is(err, errDupNumber)
}

func (s *memStore) BumpSequence(_ context.Context, docType, locID string, to int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := docType + "/" + locID
	if s.state.counters[key] < to {
		s.state.counters[key] = to
	}
	return nil
}

func cloneState(st memState) memState {
	out := memState{
		counters: make(map[string]int64, len(st.counters)),
		items:    make(map[string]*memItem, len(st.items)),
		grnHdrs:  append([]models.GrnHeader(nil), st.grnHdrs...),
		grnDtls:  append([]models.GrnDetail(nil), st.grnDtls...),
		invHdrs:  append([]models.InvoiceHeader(nil), st.invHdrs...),
		invDtls:  append([]models.InvoiceDetail(nil), st.invDtls...),
	}
	for k, v := range st.counters {
		out.counters[k] = v
	}
	for k, v := range st.items {
		cp := *v
		out.items[k] = &cp
	}
	return out
}

type memTx struct {
	state *memState
}

func (t *memTx) NextNumber(docType, locID string) (int64, error) {
	key := docType + "/" + locID
	t.state.counters[key]++
	return t.state.counters[key], nil
}

func (t *memTx) InsertGrnHeader(hdr *models.GrnHeader) error {
	for _, h := range t.state.grnHdrs {
		if h.LocID == hdr.LocID && h.GrnNo == hdr.GrnNo {
			return errDupNumber
		}
	}
	t.state.grnHdrs = append(t.state.grnHdrs, *hdr)
	return nil
}

func (t *memTx) InsertGrnDetail(dtl *models.GrnDetail) error {
	t.state.grnDtls = append(t.state.grnDtls, *dtl)
	return nil
}

func (t *memTx) InsertInvoiceHeader(hdr *models.InvoiceHeader) error {
	for _, h := range t.state.invHdrs {
		if h.LocID == hdr.LocID && h.TerInvNo == hdr.TerInvNo {
			return errDupNumber
		}
	}
	t.state.invHdrs = append(t.state.invHdrs, *hdr)
	return nil
}

func (t *memTx) InsertInvoiceDetail(dtl *models.InvoiceDetail) error {
	t.state.invDtls = append(t.state.invDtls, *dtl)
	return nil
}

func (t *memTx) AdjustStock(itemCode string, delta float64) (int64, error) {
	it, ok := t.state.items[itemCode]
	if !ok {
		return 0, nil
	}
	it.qty += delta
	return 1, nil
}

func (t *memTx) ItemPurchasePrice(itemCode string) (decimal.Decimal, error) {
	it, ok := t.state.items[itemCode]
	if !ok {
		return decimal.Zero, errors.New("record not found")
	}
	return it.purPrice, nil
}
