// storetest package provides generic test cases for OptionStore implementations.
package storetest

import (
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"

	expireoption "github.com/common-repository/real-category-library-lite"
)

// Harness bundles a store under test with the hooks the OptionStore
// contract does not expose.
type Harness struct {
	// Store is the store under test.
	Store expireoption.OptionStore

	// SeedTransient plants a volatile cache entry in the store.
	// It may be nil if the implementation cannot seed transients, in which
	// case the transient test cases are skipped.
	SeedTransient func(name, value string, siteWide bool)

	// Cleanup releases any resources held by the store.
	Cleanup func()
}

// TestStore runs the OptionStore conformance suite against the stores
// produced by provider. Each test case receives a fresh store.
func TestStore(t *testing.T, provider func() *Harness) {
	scopes := []struct {
		name     string
		siteWide bool
	}{
		{name: "PerTenant", siteWide: false},
		{name: "SiteWide", siteWide: true},
	}

	for _, scope := range scopes {
		t.Run(scope.name, func(t *testing.T) {
			t.Run("ReadMissingOption", func(t *testing.T) {
				h := provider()
				defer h.Cleanup()

				value, found, err := h.Store.ReadOption(t.Context(), "missing", scope.siteWide)
				if err != nil {
					t.Fatal(err)
				}
				if found {
					t.Errorf("unexpected record: %q", value)
				}
			})

			t.Run("WriteReadOption", func(t *testing.T) {
				h := provider()
				defer h.Cleanup()

				if err := h.Store.WriteOption(t.Context(), "greeting", "hello", scope.siteWide, true); err != nil {
					t.Fatal(err)
				}
				value, found, err := h.Store.ReadOption(t.Context(), "greeting", scope.siteWide)
				if err != nil {
					t.Fatal(err)
				}
				if !found {
					t.Fatal("record not found after write")
				}
				if value != "hello" {
					t.Errorf("unexpected value: got %q, want %q", value, "hello")
				}
			})

			t.Run("EmptyValueIsFound", func(t *testing.T) {
				h := provider()
				defer h.Cleanup()

				if err := h.Store.WriteOption(t.Context(), "empty", "", scope.siteWide, true); err != nil {
					t.Fatal(err)
				}
				value, found, err := h.Store.ReadOption(t.Context(), "empty", scope.siteWide)
				if err != nil {
					t.Fatal(err)
				}
				if !found {
					t.Error("empty record must be distinguishable from an absent one")
				}
				if value != "" {
					t.Errorf("unexpected value: %q", value)
				}
			})

			t.Run("OverwriteOption", func(t *testing.T) {
				h := provider()
				defer h.Cleanup()

				if err := h.Store.WriteOption(t.Context(), "greeting", "hello", scope.siteWide, true); err != nil {
					t.Fatal(err)
				}
				if err := h.Store.WriteOption(t.Context(), "greeting", "goodbye", scope.siteWide, false); err != nil {
					t.Fatal(err)
				}
				value, found, err := h.Store.ReadOption(t.Context(), "greeting", scope.siteWide)
				if err != nil {
					t.Fatal(err)
				}
				if !found || value != "goodbye" {
					t.Errorf("unexpected record: value=%q found=%v", value, found)
				}
			})

			t.Run("DeleteOption", func(t *testing.T) {
				h := provider()
				defer h.Cleanup()

				if err := h.Store.WriteOption(t.Context(), "greeting", "hello", scope.siteWide, true); err != nil {
					t.Fatal(err)
				}
				if err := h.Store.DeleteOption(t.Context(), "greeting", scope.siteWide); err != nil {
					t.Fatal(err)
				}
				if _, found, err := h.Store.ReadOption(t.Context(), "greeting", scope.siteWide); err != nil {
					t.Fatal(err)
				} else if found {
					t.Error("record still present after deletion")
				}

				// deleting an absent record is not an error
				if err := h.Store.DeleteOption(t.Context(), "greeting", scope.siteWide); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			})

			t.Run("Transient", func(t *testing.T) {
				h := provider()
				defer h.Cleanup()
				if h.SeedTransient == nil {
					t.Skip("store cannot seed transients")
				}

				if _, found, err := h.Store.ReadTransient(t.Context(), "cached", scope.siteWide); err != nil {
					t.Fatal(err)
				} else if found {
					t.Fatal("unexpected transient before seeding")
				}

				h.SeedTransient("cached", "payload", scope.siteWide)
				value, found, err := h.Store.ReadTransient(t.Context(), "cached", scope.siteWide)
				if err != nil {
					t.Fatal(err)
				}
				if !found || value != "payload" {
					t.Errorf("unexpected transient: value=%q found=%v", value, found)
				}

				if err := h.Store.DeleteTransient(t.Context(), "cached", scope.siteWide); err != nil {
					t.Fatal(err)
				}
				if _, found, err := h.Store.ReadTransient(t.Context(), "cached", scope.siteWide); err != nil {
					t.Fatal(err)
				} else if found {
					t.Error("transient still present after deletion")
				}
			})
		})
	}

	t.Run("ScopesAreIndependent", func(t *testing.T) {
		h := provider()
		defer h.Cleanup()
		if !h.Store.MultiTenant() {
			t.Skip("store is single-tenant")
		}

		if err := h.Store.WriteOption(t.Context(), "shared", "per-tenant", false, true); err != nil {
			t.Fatal(err)
		}
		if err := h.Store.WriteOption(t.Context(), "shared", "site-wide", true, false); err != nil {
			t.Fatal(err)
		}

		if value, _, err := h.Store.ReadOption(t.Context(), "shared", false); err != nil {
			t.Fatal(err)
		} else if value != "per-tenant" {
			t.Errorf("per-tenant record clobbered: %q", value)
		}
		if value, _, err := h.Store.ReadOption(t.Context(), "shared", true); err != nil {
			t.Fatal(err)
		} else if value != "site-wide" {
			t.Errorf("site-wide record clobbered: %q", value)
		}

		if err := h.Store.DeleteOption(t.Context(), "shared", false); err != nil {
			t.Fatal(err)
		}
		if _, found, err := h.Store.ReadOption(t.Context(), "shared", true); err != nil {
			t.Fatal(err)
		} else if !found {
			t.Error("site-wide record removed by per-tenant deletion")
		}
	})

	t.Run("ConcurrentWrites", func(t *testing.T) {
		h := provider()
		defer h.Cleanup()

		var eg errgroup.Group
		for i := 0; i < 16; i++ {
			name := fmt.Sprintf("option%d", i)
			value := fmt.Sprintf("value%d", i)
			eg.Go(func() error {
				return h.Store.WriteOption(t.Context(), name, value, false, true)
			})
		}
		if err := eg.Wait(); err != nil {
			t.Fatal(err)
		}

		for i := 0; i < 16; i++ {
			name := fmt.Sprintf("option%d", i)
			want := fmt.Sprintf("value%d", i)
			value, found, err := h.Store.ReadOption(t.Context(), name, false)
			if err != nil {
				t.Fatal(err)
			}
			if !found || value != want {
				t.Errorf("unexpected record for %s: value=%q found=%v", name, value, found)
			}
		}
	})
}
