package memstore_test

import (
	"testing"

	"github.com/common-repository/real-category-library-lite/store/memstore"
	"github.com/common-repository/real-category-library-lite/store/storetest"
)

func TestStore(t *testing.T) {
	t.Parallel()

	storetest.TestStore(t, func() *storetest.Harness {
		s := memstore.New(memstore.WithMultiTenant())
		return &storetest.Harness{
			Store:         s,
			SeedTransient: s.SetTransient,
			Cleanup:       func() {},
		}
	})
}

func TestStore_SingleTenant(t *testing.T) {
	t.Parallel()

	if memstore.New().MultiTenant() {
		t.Error("store must default to a single-tenant host")
	}
	if !memstore.New(memstore.WithMultiTenant()).MultiTenant() {
		t.Error("WithMultiTenant not applied")
	}
}

func TestStore_Autoload(t *testing.T) {
	t.Parallel()

	s := memstore.New()
	if s.Autoload("missing") {
		t.Error("unexpected autoload hint for missing option")
	}

	if err := s.WriteOption(t.Context(), "eager", "v", false, true); err != nil {
		t.Fatal(err)
	}
	if !s.Autoload("eager") {
		t.Error("autoload hint not recorded")
	}

	if err := s.WriteOption(t.Context(), "lazy", "v", false, false); err != nil {
		t.Fatal(err)
	}
	if s.Autoload("lazy") {
		t.Error("unexpected autoload hint")
	}
}

func TestStore_TransientScopes(t *testing.T) {
	t.Parallel()

	s := memstore.New(memstore.WithMultiTenant())
	s.SetTransient("foo", "per-tenant", false)
	s.SetTransient("foo", "site-wide", true)

	if value, found, err := s.ReadTransient(t.Context(), "foo", false); err != nil || !found || value != "per-tenant" {
		t.Errorf("unexpected per-tenant transient: value=%q found=%v err=%v", value, found, err)
	}
	if value, found, err := s.ReadTransient(t.Context(), "foo", true); err != nil || !found || value != "site-wide" {
		t.Errorf("unexpected site-wide transient: value=%q found=%v err=%v", value, found, err)
	}

	if err := s.DeleteTransient(t.Context(), "foo", false); err != nil {
		t.Fatal(err)
	}
	if _, found, err := s.ReadTransient(t.Context(), "foo", true); err != nil || !found {
		t.Errorf("site-wide transient removed by per-tenant deletion: found=%v err=%v", found, err)
	}
}
