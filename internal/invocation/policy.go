package invocation

import "fmt"

// CapabilityPolicy decides what happens to capability names that do not
// parse against the SPIR-V grammar.
type CapabilityPolicy int

const (
	// CapabilityDrop forgets unparsable names without reporting them.
	CapabilityDrop CapabilityPolicy = iota
	// CapabilityWarn forgets unparsable names and reports them.
	CapabilityWarn
	// CapabilityFail rejects the whole configuration.
	CapabilityFail
)

// CapabilityPolicies lists the accepted policy names.
var CapabilityPolicies = []string{"drop", "warn", "fail"}

// ParseCapabilityPolicy parses a policy name.
func ParseCapabilityPolicy(s string) (CapabilityPolicy, error) {
	switch s {
	case "drop":
		return CapabilityDrop, nil
	case "warn":
		return CapabilityWarn, nil
	case "fail":
		return CapabilityFail, nil
	}
	return 0, fmt.Errorf("invalid unknown-capability policy %q: must be one of %v", s, CapabilityPolicies)
}

func (p CapabilityPolicy) String() string {
	switch p {
	case CapabilityWarn:
		return "warn"
	case CapabilityFail:
		return "fail"
	default:
		return "drop"
	}
}

// Set implements pflag.Value.
func (p *CapabilityPolicy) Set(s string) error {
	v, err := ParseCapabilityPolicy(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Type implements pflag.Value.
func (p *CapabilityPolicy) Type() string {
	return "policy"
}
