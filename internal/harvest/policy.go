package harvest

import "fmt"

// ZeroDayPolicy decides what a zero-day target does.
type ZeroDayPolicy string

const (
	// ZeroDayImmediate reports completion without any progress line.
	ZeroDayImmediate ZeroDayPolicy = "immediate"
	// ZeroDayForced counts exactly one day before completion.
	ZeroDayForced ZeroDayPolicy = "forced"
)

// NegativePolicy decides what a negative target does.
type NegativePolicy string

const (
	PolicyReject   NegativePolicy = "reject"
	PolicyComplete NegativePolicy = "complete"
)

// ParseZeroDayPolicy accepts the config spelling of a zero-day policy.
// An empty string selects the default.
func ParseZeroDayPolicy(s string) (ZeroDayPolicy, error) {
	switch ZeroDayPolicy(s) {
	case "", ZeroDayImmediate:
		return ZeroDayImmediate, nil
	case ZeroDayForced:
		return ZeroDayForced, nil
	}
	return "", fmt.Errorf("unknown zero-day policy %q (valid: immediate, forced)", s)
}

// ParseNegativePolicy accepts the config spelling of a negative-target policy.
func ParseNegativePolicy(s string) (NegativePolicy, error) {
	switch NegativePolicy(s) {
	case "", PolicyReject:
		return PolicyReject, nil
	case PolicyComplete:
		return PolicyComplete, nil
	}
	return "", fmt.Errorf("unknown negative policy %q (valid: reject, complete)", s)
}

type options struct {
	zeroDay  ZeroDayPolicy
	negative NegativePolicy
}

// Option configures a Session.
type Option func(*options)

// WithZeroDayPolicy sets the zero-day policy.
func WithZeroDayPolicy(p ZeroDayPolicy) Option {
	return func(o *options) { o.zeroDay = p }
}

// WithNegativePolicy sets the negative-target policy.
func WithNegativePolicy(p NegativePolicy) Option {
	return func(o *options) { o.negative = p }
}

func newOptions(opts []Option) options {
	o := options{zeroDay: ZeroDayImmediate, negative: PolicyReject}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
