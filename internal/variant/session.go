package variant

import (
	"errors"
	"sync"
	"time"

	"tire-service/internal/model"
)

var (
	// ErrClosed is returned when an operation needs an open session
	ErrClosed = errors.New("selection session is closed")
	// ErrUnknownDimension is returned for a dimension name outside width/profile/diameter
	ErrUnknownDimension = errors.New("unknown dimension")
)

// Selection is the mutable dimension triple of an open session
type Selection struct {
	Width    string `json:"width"`
	Profile  string `json:"profile"`
	Diameter string `json:"diameter"`
}

// State is a point-in-time view of a session for rendering. Everything in it
// is derived from the base product, the variant group and the current
// selection; nothing here survives the next edit.
type State struct {
	Open      bool           `json:"open"`
	Base      *model.Product `json:"base,omitempty"`
	Selection Selection      `json:"selection"`
	Widths    []string       `json:"widths,omitempty"`
	Profiles  []string       `json:"profiles,omitempty"`
	Diameters []string       `json:"diameters,omitempty"`
	Resolved  *model.Product `json:"resolved,omitempty"`
	Stock     *StockStatus   `json:"stock,omitempty"`
	Added     bool           `json:"added"`
}

// Session is the selection state machine behind the product modal. It is
// either closed or open on a base product with a dimension selection seeded
// from that product's own measurements. The resolved variant is never stored;
// it is recomputed from the group and the selection on every read.
type Session struct {
	mu         sync.Mutex
	confirmTTL time.Duration

	open  bool
	base  model.Product
	group []model.Product
	sel   Selection
	added bool

	// epoch guards timer callbacks: a confirmation timer armed before a
	// close or reopen must not touch the session that replaced it
	epoch uint64
	timer *time.Timer

	lastUsed time.Time
}

// NewSession returns a closed session whose confirmation flag self-clears
// after confirmTTL once an add-to-cart succeeds
func NewSession(confirmTTL time.Duration) *Session {
	return &Session{confirmTTL: confirmTTL, lastUsed: time.Now()}
}

// Open opens the session on base, replacing any prior state entirely. The
// selection starts from base's own dimensions and the confirmation flag is
// cleared.
func (s *Session) Open(base model.Product, catalog []model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invalidateTimerLocked()
	s.open = true
	s.base = base
	s.group = VariantsOf(catalog, base)
	s.sel = Selection{Width: base.Width, Profile: base.Profile, Diameter: base.Diameter}
	s.added = false
	s.lastUsed = time.Now()
}

// EditDimension replaces one field of the selection, leaving the others
// untouched. Returns ErrClosed on a closed session.
func (s *Session) EditDimension(d Dimension, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrClosed
	}
	switch d {
	case DimensionWidth:
		s.sel.Width = value
	case DimensionProfile:
		s.sel.Profile = value
	case DimensionDiameter:
		s.sel.Diameter = value
	default:
		return ErrUnknownDimension
	}
	s.lastUsed = time.Now()
	return nil
}

// Close clears the session back to its initial state
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	s.invalidateTimerLocked()
	s.open = false
	s.base = model.Product{}
	s.group = nil
	s.sel = Selection{}
	s.added = false
	s.lastUsed = time.Now()
}

func (s *Session) invalidateTimerLocked() {
	s.epoch++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// State derives the renderable view of the session: dimension options,
// resolved variant and its stock classification
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return State{}
	}

	base := s.base
	state := State{
		Open:      true,
		Base:      &base,
		Selection: s.sel,
		Widths:    DistinctSorted(s.group, DimensionWidth),
		Profiles:  DistinctSorted(s.group, DimensionProfile),
		Diameters: DistinctSorted(s.group, DimensionDiameter),
		Added:     s.added,
	}
	if resolved := Resolve(s.group, s.sel.Width, s.sel.Profile, s.sel.Diameter); resolved != nil {
		r := *resolved
		state.Resolved = &r
		stock := Classify(r.Stock)
		state.Stock = &stock
	}
	return state
}

// orderable returns a copy of the resolved variant when the session is open
// and the variant has stock, nil otherwise
func (s *Session) orderable() *model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	resolved := Resolve(s.group, s.sel.Width, s.sel.Profile, s.sel.Diameter)
	if resolved == nil || resolved.Stock <= 0 {
		return nil
	}
	r := *resolved
	return &r
}

// confirmAdded raises the confirmation flag and arms its auto-clear timer.
// When the timer fires it clears the flag and closes the session, unless the
// session was closed or reopened in the meantime.
func (s *Session) confirmAdded() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return
	}
	s.added = true
	s.lastUsed = time.Now()

	epoch := s.epoch
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.confirmTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.epoch != epoch {
			// stale timer from a previous session lifetime
			return
		}
		s.added = false
		s.closeLocked()
	})
}

// LastUsed reports when the session last saw activity, for idle sweeping
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}
