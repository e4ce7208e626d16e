package sqlstore

// Option is the interface for the options of the SQL store.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) {
	f(o)
}

// WithMultiTenant makes the store report a multi-tenant host, enabling the
// site-wide options table.
func WithMultiTenant() Option {
	return optionFunc(func(o *options) {
		o.multiTenant = true
	})
}

type options struct {
	multiTenant bool
}

func defaultOptions() options {
	return options{}
}
