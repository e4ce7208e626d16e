package expireoption

import (
	"context"
	"strconv"
	"time"
)

// ExpireSuffix is appended to the option name to form the key of the
// companion expiration record.
const ExpireSuffix = "-expire"

// ExpireOption is a durable, expiring key/value cache entry persisted in
// the host's options store. It exists as a workaround for hosts where the
// volatile transient cache is unreliable under third-party cache-clearing
// tools: the value survives in the options store and expiry is tracked
// through a companion record holding a UNIX timestamp.
//
// Each logical entry is materialized as two records: the value record
// (key = name) and the expire record (key = name + ExpireSuffix). Both are
// written on every Set and removed together only by Delete. The two writes
// are not atomic; a concurrent reader can observe one record updated and
// the other not. This matches the host store's consistency level and is an
// accepted limitation for the intended request-scoped, low-concurrency use.
//
// An expire timestamp of 0 (record absent or unparseable) means the entry
// has never been persisted, which is distinct from being expired.
type ExpireOption struct {
	store OptionStore
	clock Clock

	name                 string
	siteWide             bool
	expiration           time.Duration
	keepValueAfterExpire bool
	migration            MigrationMode
}

// Option is the interface for ExpireOption configuration options.
type Option interface {
	apply(*ExpireOption)
}

type optionFunc func(*ExpireOption)

func (f optionFunc) apply(o *ExpireOption) {
	f(o)
}

// WithClock sets the clock used for expiration checks and new timestamps.
func WithClock(clock Clock) Option {
	return optionFunc(func(o *ExpireOption) {
		o.clock = clock
	})
}

// WithKeepValueAfterExpire keeps the expired value record in the store.
// Get still treats the entry as absent once expired, but the raw value
// stays readable through GetStale instead of being cleared.
func WithKeepValueAfterExpire() Option {
	return optionFunc(func(o *ExpireOption) {
		o.keepValueAfterExpire = true
	})
}

// New creates a new ExpireOption for the given option name.
// The siteWide flag requests the site-wide store on multi-tenant hosts
// (see IsSiteWide). The expiration is the default time-to-live applied by
// Set. Transient migration starts disabled. No I/O is performed.
func New(store OptionStore, name string, siteWide bool, expiration time.Duration, opts ...Option) *ExpireOption {
	o := &ExpireOption{
		store:      store,
		clock:      SystemClock,
		name:       name,
		siteWide:   siteWide,
		expiration: expiration,
		migration:  MigrationDisabled,
	}
	for _, opt := range opts {
		opt.apply(o)
	}
	return o
}

// Get retrieves the currently valid value, or fallback if the entry is
// absent, expired, or the store read fails.
//
// When the entry has expired and keep-value-after-expire is off, the value
// record is cleared (written as empty string) as a side effect. When the
// entry has never been persisted and transient migration is enabled, the
// value is recovered from the volatile transient cache and re-persisted;
// see EnableTransientMigration.
func (o *ExpireOption) Get(ctx context.Context, fallback string) string {
	expiresAt := o.expireTimestamp(ctx)
	if o.clock.Now().Unix() > expiresAt {
		if expiresAt == 0 && o.migration != MigrationDisabled {
			return o.migrate(ctx, fallback)
		}
		if !o.keepValueAfterExpire {
			// non-destructive for the expire record: the stale timestamp
			// stays in place until the next Set
			_ = o.store.WriteOption(ctx, o.name, "", o.IsSiteWide(), true)
		}
		return fallback
	}
	return o.readValue(ctx, fallback)
}

// GetStale retrieves the raw value record without any expiry logic or side
// effects, or fallback if it is absent or empty. It lets callers read a
// possibly-stale value to merge into a subsequent Set without first
// checking freshness.
func (o *ExpireOption) GetStale(ctx context.Context, fallback string) string {
	return o.readValue(ctx, fallback)
}

// migrate recovers a never-persisted entry from the volatile transient
// cache. The transient scope follows the migration mode, not the effective
// site-wideness of the options records. An empty Set is written when no
// transient exists, so migration runs at most once per entry.
func (o *ExpireOption) migrate(ctx context.Context, fallback string) string {
	siteWide := o.migration == MigrateSiteWide
	value, found, err := o.store.ReadTransient(ctx, o.name, siteWide)
	if err != nil || !found {
		_ = o.Set(ctx, "")
		return fallback
	}

	_ = o.Set(ctx, value)
	if !siteWide {
		// site-wide transients stay: they may still serve other tenants
		_ = o.store.DeleteTransient(ctx, o.name, false)
	}
	return value
}

// Set persists value together with a new expire timestamp computed from
// the configured default expiration. See SetWithTTL.
func (o *ExpireOption) Set(ctx context.Context, value string) error {
	return o.SetWithTTL(ctx, value, o.expiration)
}

// SetWithTTL persists value together with a new expire timestamp computed
// as now + ttl. A non-positive ttl falls back to the configured default.
// It returns the result of the value-record write; the expire-record write
// result is not surfaced. The two writes are not atomic.
//
// The empty string doubles as the "no value" sentinel, so Set("") makes
// the entry indistinguishable from an absent one on read while keeping its
// expire timestamp fresh. Use Delete to remove the entry entirely.
func (o *ExpireOption) SetWithTTL(ctx context.Context, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = o.expiration
	}
	siteWide := o.IsSiteWide()
	stamp := strconv.FormatInt(o.clock.Now().Add(ttl).Unix(), 10)
	_ = o.store.WriteOption(ctx, o.ExpireName(), stamp, siteWide, true)
	return o.store.WriteOption(ctx, o.name, value, siteWide, true)
}

// Delete removes both the expire record and the value record.
// It returns the result of the value-record deletion.
func (o *ExpireOption) Delete(ctx context.Context) error {
	siteWide := o.IsSiteWide()
	_ = o.store.DeleteOption(ctx, o.ExpireName(), siteWide)
	return o.store.DeleteOption(ctx, o.name, siteWide)
}

// EnableAutoload forces both records into existence with an empty value if
// the entry has never been persisted, so the host's autoload mechanism
// picks the option up on subsequent requests. It is a no-op once the entry
// has been persisted.
func (o *ExpireOption) EnableAutoload(ctx context.Context) {
	if o.expireTimestamp(ctx) == 0 {
		_ = o.Set(ctx, "")
	}
}

// EnableTransientMigration sets the migration mode and returns the option
// for chaining at construction time.
func (o *ExpireOption) EnableTransientMigration(mode MigrationMode) *ExpireOption {
	o.migration = mode
	return o
}

// SetKeepValueAfterExpire controls whether an expired value record is left
// in the store (true) or cleared by the Get that observes expiry (false).
func (o *ExpireOption) SetKeepValueAfterExpire(keep bool) {
	o.keepValueAfterExpire = keep
}

// KeepValueAfterExpire reports whether expired value records are kept.
func (o *ExpireOption) KeepValueAfterExpire() bool {
	return o.keepValueAfterExpire
}

// Name returns the option name.
func (o *ExpireOption) Name() string {
	return o.name
}

// ExpireName returns the key of the companion expiration record.
func (o *ExpireOption) ExpireName() string {
	return o.name + ExpireSuffix
}

// IsSiteWide reports whether the records live in the site-wide store.
// It is true only when the option was configured site-wide and the host is
// actually multi-tenant; single-tenant hosts never use the site-wide store.
func (o *ExpireOption) IsSiteWide() bool {
	return o.siteWide && o.store.MultiTenant()
}

// Expiration returns the configured default time-to-live.
func (o *ExpireOption) Expiration() time.Duration {
	return o.expiration
}

// TransientMigration returns the configured migration mode.
func (o *ExpireOption) TransientMigration() MigrationMode {
	return o.migration
}

// expireTimestamp reads the expiration record. Absent, empty, or
// unparseable records read as 0, meaning the entry was never persisted.
func (o *ExpireOption) expireTimestamp(ctx context.Context) int64 {
	value, found, err := o.store.ReadOption(ctx, o.ExpireName(), o.IsSiteWide())
	if err != nil || !found {
		return 0
	}
	stamp, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return stamp
}

// readValue reads the value record, mapping absence, emptiness, and read
// failures to fallback.
func (o *ExpireOption) readValue(ctx context.Context, fallback string) string {
	value, found, err := o.store.ReadOption(ctx, o.name, o.IsSiteWide())
	if err != nil || !found || value == "" {
		return fallback
	}
	return value
}
