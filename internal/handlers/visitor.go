package handlers

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/sofialindqvist/garmentry/internal/cart"
	"github.com/sofialindqvist/garmentry/internal/catalog"
	"github.com/sofialindqvist/garmentry/internal/checkout"
	"github.com/sofialindqvist/garmentry/internal/store"
	"github.com/sofialindqvist/garmentry/internal/wishlist"
)

// Visitor is the state container for one storefront session: filter state,
// cart, wishlist, and the in-progress checkout. Cart and wishlist survive
// restarts through the snapshot store; filter and checkout state are
// form-entry state and live only in memory, like a browser tab.
type Visitor struct {
	mu sync.Mutex

	ID       string
	Filter   catalog.FilterState
	Cart     *cart.Ledger
	Wishlist *wishlist.Set
	Checkout *checkout.Workflow
}

// Lock serialises access to the visitor's state. There is one logical
// writer (the visitor), but nothing stops a browser from firing two
// requests at once.
func (v *Visitor) Lock()   { v.mu.Lock() }
func (v *Visitor) Unlock() { v.mu.Unlock() }

// Visitors is the registry of live visitor state, restored lazily from the
// snapshot store.
type Visitors struct {
	mu    sync.Mutex
	byID  map[string]*Visitor
	store *store.Store
}

func NewVisitors(st *store.Store) *Visitors {
	return &Visitors{byID: make(map[string]*Visitor), store: st}
}

// Get returns the visitor's state, creating and restoring it on first
// sight. Missing snapshots mean a fresh visitor; corrupt ones are logged
// and replaced with empty collections.
func (vs *Visitors) Get(id string) *Visitor {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if v, ok := vs.byID[id]; ok {
		return v
	}

	v := &Visitor{
		ID:       id,
		Filter:   catalog.NewFilterState(),
		Cart:     vs.restoreCart(id),
		Wishlist: vs.restoreWishlist(id),
		Checkout: checkout.New(),
	}
	vs.byID[id] = v
	return v
}

func (vs *Visitors) restoreCart(id string) *cart.Ledger {
	snap, err := vs.store.LoadSnapshot(store.CartKey(id))
	if errors.Is(err, store.ErrNotFound) {
		return cart.New()
	}
	if err != nil {
		slog.Warn("Error loading cart snapshot", "visitor", id, "error", err)
		return cart.New()
	}
	ledger, err := cart.Restore(snap)
	if err != nil {
		slog.Warn("Corrupt cart snapshot, starting empty", "visitor", id, "error", err)
	}
	return ledger
}

func (vs *Visitors) restoreWishlist(id string) *wishlist.Set {
	snap, err := vs.store.LoadSnapshot(store.WishlistKey(id))
	if errors.Is(err, store.ErrNotFound) {
		return wishlist.New()
	}
	if err != nil {
		slog.Warn("Error loading wishlist snapshot", "visitor", id, "error", err)
		return wishlist.New()
	}
	set, err := wishlist.Restore(snap)
	if err != nil {
		slog.Warn("Corrupt wishlist snapshot, starting empty", "visitor", id, "error", err)
	}
	return set
}
