package selection

// ScanOption adjusts a single selection call.
type ScanOption func(*scanConfig)

type scanConfig struct {
	universe *universe
	progress func(msg string, args ...any)
}

// WithUniverse sets the initial feature universe explicitly instead of
// capturing it from the first record. Use it for forward traces that start
// from the empty set.
func WithUniverse(ids ...FeatureID) ScanOption {
	return func(c *scanConfig) {
		c.universe = newUniverse(ids)
	}
}

func withProgress(fn func(msg string, args ...any)) ScanOption {
	return func(c *scanConfig) {
		c.progress = fn
	}
}

func newScanConfig(opts []ScanOption) scanConfig {
	var c scanConfig
	for _, o := range opts {
		o(&c)
	}
	return c
}

func (c *scanConfig) emit(msg string, args ...any) {
	if c.progress != nil {
		c.progress(msg, args...)
	}
}

// universeFrom returns the explicit universe, or captures one from rec.
func (c *scanConfig) universeFrom(rec IterationRecord) *universe {
	if c.universe == nil {
		c.universe = newUniverse(rec.Keys())
	}
	return c.universe
}
