// Package memory provides an in-process ledger snapshot that implements the
// same repository contracts as the PostgreSQL store. It backs the demo mode
// and the service tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"agroledger/internal/core/tx"
	"agroledger/internal/domain/activity"
	"agroledger/internal/domain/ledger"
	"agroledger/internal/domain/reports"
)

var (
	_ reports.Repository  = (*Store)(nil)
	_ ledger.Repository   = (*Store)(nil)
	_ activity.Repository = (*Store)(nil)
	_ tx.Manager          = (*TxManager)(nil)
)

// Snapshot is the serialisable representation of the ledger state.
type Snapshot struct {
	Regions    []ledger.Region           `json:"regions"`
	Districts  []ledger.District         `json:"districts"`
	Massives   []ledger.Massive          `json:"massives"`
	Farmers    []ledger.Farmer           `json:"farmers"`
	Contracts  []ledger.Contract         `json:"contracts"`
	Units      []ledger.Unit             `json:"units"`
	Products   []ledger.Product          `json:"products"`
	Warehouses []ledger.Warehouse        `json:"warehouses"`
	Receipts   []ledger.Receipt          `json:"receipts"`
	Documents  []ledger.IssuanceDocument `json:"documents"`
	Items      []ledger.IssuanceItem     `json:"items"`
	BotUsers   []activity.User           `json:"botUsers"`
	Activities []activity.Activity       `json:"activities"`
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Regions:    slices.Clone(s.Regions),
		Districts:  slices.Clone(s.Districts),
		Massives:   slices.Clone(s.Massives),
		Farmers:    slices.Clone(s.Farmers),
		Contracts:  slices.Clone(s.Contracts),
		Units:      slices.Clone(s.Units),
		Products:   slices.Clone(s.Products),
		Warehouses: slices.Clone(s.Warehouses),
		Receipts:   slices.Clone(s.Receipts),
		Documents:  slices.Clone(s.Documents),
		Items:      slices.Clone(s.Items),
		BotUsers:   slices.Clone(s.BotUsers),
		Activities: slices.Clone(s.Activities),
	}
}

// Store is a concurrency-safe ledger snapshot.
type Store struct {
	mu    sync.RWMutex
	state Snapshot

	nextUserID     int64
	nextActivityID int64
}

// New creates a store over a copy of snap.
func New(snap Snapshot) *Store {
	s := &Store{state: snap.clone()}
	for _, u := range s.state.BotUsers {
		s.nextUserID = max(s.nextUserID, u.ID)
	}
	for _, a := range s.state.Activities {
		s.nextActivityID = max(s.nextActivityID, a.ID)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Ping always succeeds; it lets the store serve readiness checks.
func (s *Store) Ping(context.Context) error {
	return nil
}

// index resolves references by id. Callers hold at least the read lock.
type index struct {
	regions    map[int64]ledger.Region
	districts  map[int64]ledger.District
	massives   map[int64]ledger.Massive
	farmers    map[int64]ledger.Farmer
	products   map[int64]ledger.Product
	warehouses map[int64]ledger.Warehouse
	items      map[int64][]ledger.IssuanceItem
	users      map[int64]activity.User
}

func (s *Store) buildIndex() index {
	st := &s.state
	idx := index{
		regions:    make(map[int64]ledger.Region, len(st.Regions)),
		districts:  make(map[int64]ledger.District, len(st.Districts)),
		massives:   make(map[int64]ledger.Massive, len(st.Massives)),
		farmers:    make(map[int64]ledger.Farmer, len(st.Farmers)),
		products:   make(map[int64]ledger.Product, len(st.Products)),
		warehouses: make(map[int64]ledger.Warehouse, len(st.Warehouses)),
		items:      make(map[int64][]ledger.IssuanceItem, len(st.Documents)),
		users:      make(map[int64]activity.User, len(st.BotUsers)),
	}
	for _, v := range st.Regions {
		idx.regions[v.ID] = v
	}
	for _, v := range st.Districts {
		idx.districts[v.ID] = v
	}
	for _, v := range st.Massives {
		idx.massives[v.ID] = v
	}
	for _, v := range st.Farmers {
		idx.farmers[v.ID] = v
	}
	for _, v := range st.Products {
		idx.products[v.ID] = v
	}
	for _, v := range st.Warehouses {
		idx.warehouses[v.ID] = v
	}
	for _, v := range st.Items {
		idx.items[v.DocumentID] = append(idx.items[v.DocumentID], v)
	}
	for _, v := range st.BotUsers {
		idx.users[v.ID] = v
	}
	return idx
}

// farmerDistrict walks farmer→massive→district. nil when any link is missing.
func (idx index) farmerDistrict(farmerID *int64) *ledger.District {
	if farmerID == nil {
		return nil
	}
	f, ok := idx.farmers[*farmerID]
	if !ok || f.MassiveID == nil {
		return nil
	}
	m, ok := idx.massives[*f.MassiveID]
	if !ok || m.DistrictID == nil {
		return nil
	}
	d, ok := idx.districts[*m.DistrictID]
	if !ok {
		return nil
	}
	return &d
}

func (idx index) productName(id *int64) *string {
	if id == nil {
		return nil
	}
	if p, ok := idx.products[*id]; ok {
		return &p.Name
	}
	return nil
}

func (idx index) warehouseName(id *int64) *string {
	if id == nil {
		return nil
	}
	if w, ok := idx.warehouses[*id]; ok {
		return &w.Name
	}
	return nil
}

type txKey struct{}

// TxManager serializes transactional blocks against the store.
// Nested calls reuse the outer block.
type TxManager struct {
	mu sync.Mutex
}

// NewTxManager creates a transaction manager for a memory store.
func NewTxManager() *TxManager {
	return &TxManager{}
}

// RunInTransaction runs fn while holding the transaction lock.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}
