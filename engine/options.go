package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for Analyze()
// ============================================================================

// Option configures analysis behavior via functional options pattern.
type Option func(*config)

type config struct {
	TopVendors        int    // vendor buckets kept before folding the rest
	OtherLabel        string // label of the folded remainder bucket
	DefaultCurrency   string // currency assigned when no currency column exists
	OrderTypeFallback string // order code assigned when no order-code column exists
}

// WithTopVendors sets how many vendor buckets survive before the
// remainder fold. Zero or negative disables folding.
func WithTopVendors(n int) Option {
	return func(c *config) {
		c.TopVendors = n
	}
}

// WithOtherLabel sets the label of the folded vendor remainder bucket.
func WithOtherLabel(label string) Option {
	return func(c *config) {
		c.OtherLabel = label
	}
}

// WithDefaultCurrency sets the currency every row falls under when the
// dataset has no currency column at all.
func WithDefaultCurrency(code string) Option {
	return func(c *config) {
		c.DefaultCurrency = code
	}
}

// WithOrderTypeFallback supplies an order code ("1", "2" or "3") that
// classifies the whole dataset when no order-code column exists. This
// carries an upstream filter decision; leave it empty otherwise.
func WithOrderTypeFallback(code string) Option {
	return func(c *config) {
		c.OrderTypeFallback = code
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		TopVendors:      10,
		OtherLabel:      "Other Vendors",
		DefaultCurrency: "INR",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
