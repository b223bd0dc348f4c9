package invocation

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainDescriptor prefixes descriptor fingerprints. The version suffix
// allows the fingerprint input to change without colliding with old rows.
const DomainDescriptor = "spvbuild/descriptor/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes the content-addressed identity of a descriptor.
// Two runs with the same resolved request produce the same fingerprint,
// whatever capability aliases were used to spell it.
func Fingerprint(d Descriptor) (string, error) {
	p := d.PanicStrategy()
	obj := map[string]any{
		"version":      DescriptorVersion,
		"source_path":  d.SourcePath(),
		"target":       d.Target(),
		"toolchain":    d.Toolchain(),
		"extensions":   d.Extensions(),
		"capabilities": d.CapabilityNames(),
		"panic_strategy": map[string]any{
			"kind":            int(p.Kind),
			"print_inputs":    p.PrintInputs,
			"print_backtrace": p.PrintBacktrace,
		},
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(DomainDescriptor, canonical), nil
}
