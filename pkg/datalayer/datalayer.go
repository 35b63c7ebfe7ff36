package datalayer

import (
	"context"
	"sync"

	"github.com/unifiedtracking/datalayer/pkg/datalayer/config"
	dlerrors "github.com/unifiedtracking/datalayer/pkg/datalayer/errors"
)

// DataLayer is the facade over the domain modules. It owns the single
// Sequencer for a session; all modules emit through it, so the one-time
// context injection and previous-event ordering hold across modules.
type DataLayer struct {
	seq *Sequencer

	Page     *PageModule
	Display  *DisplayModule
	Listing  *ListingModule
	Cart     *CartModule
	Checkout *CheckoutModule
	Account  *AccountModule
	Wishlist *WishlistModule
	Order    *OrderModule
}

// New constructs a DataLayer and its domain modules.
func New(opts ...Option) *DataLayer {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	seq := NewSequencer(s.queue, s.env, s.logger, s.metrics, s.spans)
	if s.nullify != nil {
		seq.SetNullifiedProperties(s.nullify)
	}

	b := &base{
		seq:     seq,
		logger:  s.logger,
		metrics: seq.metrics,
	}

	cart := &CartModule{base: b, acc: newAccumulator()}
	return &DataLayer{
		seq:      seq,
		Page:     &PageModule{base: b},
		Display:  &DisplayModule{base: b},
		Listing:  &ListingModule{base: b},
		Cart:     cart,
		Checkout: &CheckoutModule{base: b, cart: cart},
		Account:  &AccountModule{base: b},
		Wishlist: &WishlistModule{base: b},
		Order:    &OrderModule{base: b, cart: cart},
	}
}

// Init supplies the required per-session site identity. It must be called
// before the first emit wherever a queue-bearing environment exists.
func (dl *DataLayer) Init(site config.SiteInfo) error {
	return dl.seq.Init(site)
}

// InitFromConfig initializes from a loaded configuration's "site" block.
func (dl *DataLayer) InitFromConfig(cfg config.Config) error {
	site, present := config.Site(cfg)
	if !present {
		return &dlerrors.ConfigurationError{Message: "config has no site block"}
	}
	return dl.seq.Init(site)
}

// InitFromFile initializes from the site block of a YAML or JSON config file.
func (dl *DataLayer) InitFromFile(path string) error {
	site, err := config.LoadSite(path)
	if err != nil {
		return &dlerrors.ConfigurationError{Message: err.Error()}
	}
	return dl.seq.Init(site)
}

// Sequencer exposes the underlying sequencer for advanced integrations
// (custom events, nullification tuning).
func (dl *DataLayer) Sequencer() *Sequencer {
	return dl.seq
}

// Emit sends a custom event through the full sequencing pipeline. Prefer
// the domain modules for the canonical events.
func (dl *DataLayer) Emit(ctx context.Context, eventName string, eventData Event) (Event, error) {
	return dl.seq.Emit(ctx, eventName, eventData)
}

// ClearProducts appends {products: null} directly to the queue.
func (dl *DataLayer) ClearProducts() {
	dl.seq.ClearProducts()
}

// ResetFirstEventFlag forces site/user context re-injection on the next emit.
func (dl *DataLayer) ResetFirstEventFlag() {
	dl.seq.ResetFirstEventFlag()
}

var (
	defaultMu sync.Mutex
	defaultDL *DataLayer
	defaultOp []Option
)

// SetDefaultOptions configures the options the lazily-created Default
// instance is built with. It must be called before the first Default call.
func SetDefaultOptions(opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultOp = opts
}

// Default returns the process-wide DataLayer, creating it on first use.
// Application composition roots that can pass an instance explicitly should
// prefer New; Default exists for hosts without a single wiring point.
func Default() *DataLayer {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultDL == nil {
		defaultDL = New(defaultOp...)
	}
	return defaultDL
}

// ResetDefault discards the process-wide instance so the next Default call
// builds a fresh one. Intended for test isolation.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultDL = nil
	defaultOp = nil
}
