// Package validation provides unit tests for host format classification
// WHY: Every connection descriptor depends on the host check, so its accept/reject boundary must be pinned down
package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

// TestClassifyHost tests host classification across the three interpretations
// WHY: Operators write IPs and DNS names interchangeably in device files
func TestClassifyHost(t *testing.T) {
	tests := []struct {
		name        string
		host        string
		expectKind  HostKind
		shouldError bool
	}{
		{name: "ipv4_literal", host: "10.137.12.159", expectKind: HostIPv4},
		{name: "ipv4_zero", host: "0.0.0.0", expectKind: HostIPv4},
		{name: "fqdn_three_labels", host: "sjcx-smx04.calix.local", expectKind: HostFQDN},
		{name: "fqdn_trailing_dot", host: "smx.example.com.", expectKind: HostFQDN},
		{name: "ipv6_full", host: "2001:0db8:0000:0000:0000:ff00:0042:8329", expectKind: HostIPv6},
		{name: "ipv6_compressed", host: "fe80::1", expectKind: HostIPv6},
		{name: "ipv6_loopback", host: "::1", expectKind: HostIPv6},
		{name: "ipv4_mapped_ipv6", host: "::ffff:10.1.1.1", expectKind: HostIPv6},
		{name: "empty_string", host: "", shouldError: true},
		{name: "single_label", host: "localhost", shouldError: true},
		{name: "ipv4_octet_out_of_range", host: "256.1.1.1", shouldError: true},
		{name: "underscore_in_label", host: "smx_01.example.com", shouldError: true},
		{name: "label_ends_with_hyphen", host: "smx-.example.com", shouldError: true},
		{name: "label_starts_with_hyphen", host: "-smx.example.com", shouldError: true},
		{name: "empty_label", host: "smx..example.com", shouldError: true},
		{name: "label_too_long", host: strings.Repeat("a", 64) + ".example.com", shouldError: true},
		{name: "name_too_long", host: strings.Repeat("abcdefghi.", 26) + "com", shouldError: true},
		{name: "host_with_port", host: "10.1.1.1:830", shouldError: true},
		{name: "space_inside", host: "smx 01.example.com", shouldError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: Classify host
			kind, err := ClassifyHost(tt.host)

			// Then: Verify classification
			if tt.shouldError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "IPv4 address, FQDN, or IPv6 address", "Error should name all interpretations")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectKind, kind)
		})
	}
}

// TestValidateHost tests that accepted hosts come back unchanged
// WHY: The descriptor keeps the operator's spelling of the host
func TestValidateHost(t *testing.T) {
	host, err := ValidateHost("SMX.Example.COM")
	assert.NoError(t, err)
	assert.Equal(t, "SMX.Example.COM", host)

	host, err = ValidateHost("bad host")
	assert.Error(t, err)
	assert.Empty(t, host)
}

// TestClassifyHost_Properties checks literal addresses and illegal characters
// WHY: Table cases cannot cover the address space, generated literals can
func TestClassifyHost_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	octet := gen.IntRange(0, 255)
	group := gen.UInt16()

	properties.Property("every dotted quad is accepted as IPv4", prop.ForAll(
		func(a, b, c, d int) bool {
			kind, err := ClassifyHost(fmt.Sprintf("%d.%d.%d.%d", a, b, c, d))
			return err == nil && kind == HostIPv4
		},
		octet, octet, octet, octet,
	))

	properties.Property("every eight-group literal is accepted as IPv6", prop.ForAll(
		func(a, b, c, d, e, f, g, h uint16) bool {
			literal := fmt.Sprintf("%x:%x:%x:%x:%x:%x:%x:%x", a, b, c, d, e, f, g, h)
			kind, err := ClassifyHost(literal)
			return err == nil && kind == HostIPv6
		},
		group, group, group, group, group, group, group, group,
	))

	properties.Property("an illegal character anywhere in a name is rejected", prop.ForAll(
		func(bad string, pos int) bool {
			name := "smx04.calix.local"
			pos = pos % len(name)
			_, err := ClassifyHost(name[:pos] + bad + name[pos:])
			return err != nil
		},
		gen.OneConstOf("_", " ", "!", "@", "*", "/", "#", "$"),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
