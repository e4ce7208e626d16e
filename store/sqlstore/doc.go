// Package sqlstore provides a SQL-backed implementation of the
// expireoption.OptionStore contract.
//
// Options live in two tables mirroring the host's layout: "options" for
// per-tenant records (with an autoload column) and "site_options" for
// site-wide records. The volatile transient cache is process-local memory,
// matching the non-durable nature of the host's object cache.
package sqlstore
