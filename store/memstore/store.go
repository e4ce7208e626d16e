package memstore

import (
	"context"
	"sync"

	expireoption "github.com/common-repository/real-category-library-lite"
)

type record struct {
	value    string
	autoload bool
}

// Store is an in-memory expireoption.OptionStore that mimics the host's
// stores: a per-tenant and a site-wide options table plus the matching
// volatile transient caches. It is safe for concurrent use.
type Store struct {
	mu             sync.RWMutex
	options        map[string]record
	siteOptions    map[string]record
	transients     map[string]string
	siteTransients map[string]string

	multiTenant bool
}

var _ expireoption.OptionStore = (*Store)(nil)

// New creates a new in-memory store. The store defaults to a single-tenant
// host; use WithMultiTenant to enable the site-wide stores.
func New(opts ...Option) *Store {
	options := defaultOptions()
	for _, opt := range opts {
		opt.apply(&options)
	}

	return &Store{
		options:        map[string]record{},
		siteOptions:    map[string]record{},
		transients:     map[string]string{},
		siteTransients: map[string]string{},
		multiTenant:    options.multiTenant,
	}
}

// ReadOption retrieves a persistent option by name.
func (s *Store) ReadOption(_ context.Context, name string, siteWide bool) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.table(siteWide)[name]
	return r.value, ok, nil
}

// WriteOption stores a persistent option, overwriting any existing record.
// The autoload hint is recorded for per-tenant options and can be
// inspected through Autoload.
func (s *Store) WriteOption(_ context.Context, name, value string, siteWide, autoload bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table(siteWide)[name] = record{value: value, autoload: autoload && !siteWide}
	return nil
}

// DeleteOption removes a persistent option by name.
// Deleting an absent record is not an error.
func (s *Store) DeleteOption(_ context.Context, name string, siteWide bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.table(siteWide), name)
	return nil
}

// ReadTransient retrieves a volatile cache entry by name.
func (s *Store) ReadTransient(_ context.Context, name string, siteWide bool) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.transientTable(siteWide)[name]
	return value, ok, nil
}

// DeleteTransient removes a volatile cache entry by name.
func (s *Store) DeleteTransient(_ context.Context, name string, siteWide bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.transientTable(siteWide), name)
	return nil
}

// MultiTenant reports whether the store simulates a multi-tenant host.
func (s *Store) MultiTenant() bool {
	return s.multiTenant
}

// SetTransient plants a volatile cache entry. It stands in for the host's
// transient write, which the OptionStore contract does not expose, and is
// intended for seeding migration scenarios in tests.
func (s *Store) SetTransient(name, value string, siteWide bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transientTable(siteWide)[name] = value
}

// Autoload reports the autoload hint recorded for the per-tenant option,
// or false if the option does not exist.
func (s *Store) Autoload(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.options[name].autoload
}

func (s *Store) table(siteWide bool) map[string]record {
	if siteWide {
		return s.siteOptions
	}
	return s.options
}

func (s *Store) transientTable(siteWide bool) map[string]string {
	if siteWide {
		return s.siteTransients
	}
	return s.transients
}
