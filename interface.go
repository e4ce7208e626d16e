package expireoption

import (
	"context"
)

// OptionStore is the contract to the host's key/value stores.
// It covers the persistent options store in both its per-tenant and
// site-wide variants, the volatile transient cache, and multi-tenancy
// detection. Implementations must distinguish "empty value" from
// "record absent" via the found result.
type OptionStore interface {
	// ReadOption retrieves the persistent option with the given name.
	// The siteWide flag selects the site-wide store on multi-tenant
	// hosts; single-tenant implementations may ignore it.
	// It returns found=false if no record exists for the name.
	ReadOption(ctx context.Context, name string, siteWide bool) (value string, found bool, err error)

	// WriteOption stores the persistent option with the given name,
	// overwriting any existing record. The autoload flag is a hint for
	// the per-tenant store to eagerly load the record on every request;
	// site-wide stores may ignore it.
	WriteOption(ctx context.Context, name, value string, siteWide, autoload bool) error

	// DeleteOption removes the persistent option with the given name.
	// Deleting an absent record is not an error.
	DeleteOption(ctx context.Context, name string, siteWide bool) error

	// ReadTransient retrieves the volatile cache entry with the given
	// name. It returns found=false if the entry does not exist or the
	// volatile cache has dropped it.
	ReadTransient(ctx context.Context, name string, siteWide bool) (value string, found bool, err error)

	// DeleteTransient removes the volatile cache entry with the given name.
	DeleteTransient(ctx context.Context, name string, siteWide bool) error

	// MultiTenant reports whether the host serves multiple tenants.
	// When false, the site-wide store variants are never used.
	MultiTenant() bool
}

// MigrationMode controls whether a never-persisted option recovers its
// value from the host's volatile transient cache on first read.
type MigrationMode int

const (
	// MigrationDisabled disables transient migration entirely.
	MigrationDisabled MigrationMode = iota

	// MigratePerSite migrates from the per-tenant transient cache and
	// removes the transient once migrated.
	MigratePerSite

	// MigrateSiteWide migrates from the site-wide transient cache.
	// The transient is left in place so other tenants can still
	// migrate from it.
	MigrateSiteWide
)

// String returns the mode name for diagnostics.
func (m MigrationMode) String() string {
	switch m {
	case MigrationDisabled:
		return "disabled"
	case MigratePerSite:
		return "per-site"
	case MigrateSiteWide:
		return "site-wide"
	default:
		return "unknown"
	}
}
