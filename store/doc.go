// Package store provides OptionStore adapters and utilities for the
// expireoption package.
//
// This package contains adapters such as SilentErrorStore, which wraps any
// OptionStore implementation to silently handle errors and panics, and
// FunctionsStore, which allows binding host store functions using function
// callbacks.
//
// This package also defines common error types for store operations:
// ErrRead, ErrWrite, and ErrDelete.
package store
