package expireoption

import (
	"context"
	"time"
)

// TypedOption wraps an ExpireOption with a typed payload, converting
// values through a ValueCodec on the way in and out. It is the analogue of
// the host store's automatic option serialization for non-string payloads.
//
// The wrapped entry keeps the empty-string sentinel: a value whose encoded
// form is empty reads back as absent.
type TypedOption[V any] struct {
	option *ExpireOption
	codec  ValueCodec[V]
}

// NewTyped creates a TypedOption over the given ExpireOption.
// A nil codec selects DefaultValueCodec for V.
func NewTyped[V any](option *ExpireOption, codec ValueCodec[V]) *TypedOption[V] {
	if codec == nil {
		codec = DefaultValueCodec[V]()
	}
	return &TypedOption[V]{option: option, codec: codec}
}

// Get retrieves the currently valid value, or fallback if the entry is
// absent, expired, or its payload fails to decode.
func (t *TypedOption[V]) Get(ctx context.Context, fallback V) V {
	return t.decode(t.option.Get(ctx, ""), fallback)
}

// GetStale retrieves the raw value without any expiry logic, or fallback
// if it is absent or fails to decode.
func (t *TypedOption[V]) GetStale(ctx context.Context, fallback V) V {
	return t.decode(t.option.GetStale(ctx, ""), fallback)
}

// Set encodes and persists the value with the configured default
// expiration.
func (t *TypedOption[V]) Set(ctx context.Context, value V) error {
	raw, err := t.codec.EncodeValue(value)
	if err != nil {
		return err
	}
	return t.option.Set(ctx, raw)
}

// SetWithTTL encodes and persists the value with an explicit time-to-live.
func (t *TypedOption[V]) SetWithTTL(ctx context.Context, value V, ttl time.Duration) error {
	raw, err := t.codec.EncodeValue(value)
	if err != nil {
		return err
	}
	return t.option.SetWithTTL(ctx, raw, ttl)
}

// Delete removes both records of the wrapped entry.
func (t *TypedOption[V]) Delete(ctx context.Context) error {
	return t.option.Delete(ctx)
}

// Option returns the wrapped ExpireOption.
func (t *TypedOption[V]) Option() *ExpireOption {
	return t.option
}

func (t *TypedOption[V]) decode(raw string, fallback V) V {
	if raw == "" {
		return fallback
	}
	v, err := t.codec.DecodeValue(raw)
	if err != nil {
		return fallback
	}
	return v
}
