// Package memstore provides an in-memory implementation of the
// expireoption.OptionStore contract.
//
// It mirrors the shape of the host's stores: separate per-tenant and
// site-wide options tables, separate volatile transient caches, and a
// multi-tenancy flag. It is primarily a test double, but also serves as a
// working store for single-process tools that have no host to bind to.
package memstore
