package store

import (
	"context"

	"github.com/sourcegraph/conc/panics"

	expireoption "github.com/common-repository/real-category-library-lite"
)

var _ expireoption.OptionStore = (*SilentErrorStore)(nil)

// SilentErrorStore is a decorator for an expireoption.OptionStore that
// silently handles errors and panics during operations. Instead of
// propagating them, it calls the provided OnError function. Reads report
// the record as absent and writes report success, so a misbehaving host
// binding degrades to fallback values instead of failing requests.
type SilentErrorStore struct {
	// Store is the underlying store that this decorator wraps.
	Store expireoption.OptionStore

	// OnError is a function that is called when an error occurs during an
	// operation. Recovered panics are passed as *panics.ErrRecovered.
	OnError func(error)
}

// ReadOption reads the persistent option from the underlying store.
// If the read fails or panics, the error is passed to the OnError handler
// and the record is reported as absent.
func (s *SilentErrorStore) ReadOption(ctx context.Context, name string, siteWide bool) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.run(func() (err error) {
		value, found, err = s.Store.ReadOption(ctx, name, siteWide)
		return
	})
	if err != nil {
		return "", false, nil
	}
	return value, found, nil
}

// WriteOption writes the persistent option to the underlying store.
// If the write fails or panics, the error is passed to the OnError handler
// and the method itself returns nil.
func (s *SilentErrorStore) WriteOption(ctx context.Context, name, value string, siteWide, autoload bool) error {
	s.run(func() error {
		return s.Store.WriteOption(ctx, name, value, siteWide, autoload)
	})
	return nil
}

// DeleteOption deletes the persistent option from the underlying store.
// If the deletion fails or panics, the error is passed to the OnError
// handler and the method itself returns nil.
func (s *SilentErrorStore) DeleteOption(ctx context.Context, name string, siteWide bool) error {
	s.run(func() error {
		return s.Store.DeleteOption(ctx, name, siteWide)
	})
	return nil
}

// ReadTransient reads the volatile cache entry from the underlying store.
// If the read fails or panics, the error is passed to the OnError handler
// and the entry is reported as absent.
func (s *SilentErrorStore) ReadTransient(ctx context.Context, name string, siteWide bool) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.run(func() (err error) {
		value, found, err = s.Store.ReadTransient(ctx, name, siteWide)
		return
	})
	if err != nil {
		return "", false, nil
	}
	return value, found, nil
}

// DeleteTransient deletes the volatile cache entry from the underlying
// store. If the deletion fails or panics, the error is passed to the
// OnError handler and the method itself returns nil.
func (s *SilentErrorStore) DeleteTransient(ctx context.Context, name string, siteWide bool) error {
	s.run(func() error {
		return s.Store.DeleteTransient(ctx, name, siteWide)
	})
	return nil
}

// MultiTenant reports multi-tenancy from the underlying store.
// If the call panics, the error is passed to the OnError handler and the
// host is reported as single-tenant.
func (s *SilentErrorStore) MultiTenant() bool {
	var multi bool
	if err := s.run(func() error {
		multi = s.Store.MultiTenant()
		return nil
	}); err != nil {
		return false
	}
	return multi
}

// run invokes f, converting panics to errors, and routes any failure to
// the OnError handler.
func (s *SilentErrorStore) run(f func() error) error {
	var (
		err error
		c   panics.Catcher
	)
	c.Try(func() {
		err = f()
	})
	if r := c.Recovered(); r != nil {
		err = r.AsError()
	}
	if err != nil && s.OnError != nil {
		s.OnError(err)
	}
	return err
}

var _ expireoption.OptionStore = (*FunctionsStore)(nil)

// FunctionsStore is an expireoption.OptionStore implementation that uses
// functions to perform the store operations. It is the bridge for binding
// a host's store functions without writing a new type, and a convenient
// building block for tests.
//
// A nil function behaves as the neutral host: reads find nothing, writes
// and deletions succeed, and the host is single-tenant.
type FunctionsStore struct {
	// ReadOptionFunc retrieves a persistent option by name.
	ReadOptionFunc func(ctx context.Context, name string, siteWide bool) (string, bool, error)

	// WriteOptionFunc stores a persistent option.
	WriteOptionFunc func(ctx context.Context, name, value string, siteWide, autoload bool) error

	// DeleteOptionFunc removes a persistent option by name.
	DeleteOptionFunc func(ctx context.Context, name string, siteWide bool) error

	// ReadTransientFunc retrieves a volatile cache entry by name.
	ReadTransientFunc func(ctx context.Context, name string, siteWide bool) (string, bool, error)

	// DeleteTransientFunc removes a volatile cache entry by name.
	DeleteTransientFunc func(ctx context.Context, name string, siteWide bool) error

	// MultiTenantFunc reports whether the host serves multiple tenants.
	MultiTenantFunc func() bool
}

// ReadOption calls the ReadOptionFunc function.
func (s *FunctionsStore) ReadOption(ctx context.Context, name string, siteWide bool) (string, bool, error) {
	if s.ReadOptionFunc == nil {
		return "", false, nil
	}
	return s.ReadOptionFunc(ctx, name, siteWide)
}

// WriteOption calls the WriteOptionFunc function.
func (s *FunctionsStore) WriteOption(ctx context.Context, name, value string, siteWide, autoload bool) error {
	if s.WriteOptionFunc == nil {
		return nil
	}
	return s.WriteOptionFunc(ctx, name, value, siteWide, autoload)
}

// DeleteOption calls the DeleteOptionFunc function.
func (s *FunctionsStore) DeleteOption(ctx context.Context, name string, siteWide bool) error {
	if s.DeleteOptionFunc == nil {
		return nil
	}
	return s.DeleteOptionFunc(ctx, name, siteWide)
}

// ReadTransient calls the ReadTransientFunc function.
func (s *FunctionsStore) ReadTransient(ctx context.Context, name string, siteWide bool) (string, bool, error) {
	if s.ReadTransientFunc == nil {
		return "", false, nil
	}
	return s.ReadTransientFunc(ctx, name, siteWide)
}

// DeleteTransient calls the DeleteTransientFunc function.
func (s *FunctionsStore) DeleteTransient(ctx context.Context, name string, siteWide bool) error {
	if s.DeleteTransientFunc == nil {
		return nil
	}
	return s.DeleteTransientFunc(ctx, name, siteWide)
}

// MultiTenant calls the MultiTenantFunc function.
func (s *FunctionsStore) MultiTenant() bool {
	if s.MultiTenantFunc == nil {
		return false
	}
	return s.MultiTenantFunc()
}
