package validation

import (
	"fmt"
	"strings"
)

// HostKind is the interpretation under which a host string was accepted
type HostKind string

const (
	HostIPv4 HostKind = "ipv4"
	HostFQDN HostKind = "fqdn"
	HostIPv6 HostKind = "ipv6"
)

const maxFQDNLength = 253

// hostMessage names all three accepted interpretations
const hostMessage = "must be a valid IPv4 address, FQDN, or IPv6 address"

// ClassifyHost reports how value parses as a host: IPv4 first, then FQDN,
// then IPv6. Names are checked structurally and never resolved.
func ClassifyHost(value string) (HostKind, error) {
	if value != "" && !strings.Contains(value, ":") && validate.Var(value, "ipv4") == nil {
		return HostIPv4, nil
	}
	if isFQDN(value) {
		return HostFQDN, nil
	}
	// "ipv6" rejects v4-mapped literals, "ip" does not
	if strings.Contains(value, ":") && validate.Var(value, "ip") == nil {
		return HostIPv6, nil
	}
	return "", fmt.Errorf("invalid host %q: %s", value, hostMessage)
}

// ValidateHost returns value unchanged when it is a valid IPv4 address, FQDN
// or IPv6 address
func ValidateHost(value string) (string, error) {
	if _, err := ClassifyHost(value); err != nil {
		return "", err
	}
	return value, nil
}

// isFQDN layers the length and hyphen rules the validator's fqdn pattern
// leaves out on top of it
func isFQDN(value string) bool {
	name := strings.TrimSuffix(value, ".")
	if name == "" || len(name) > maxFQDNLength {
		return false
	}
	if validate.Var(value, "fqdn") != nil {
		return false
	}
	labels := strings.Split(name, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if strings.HasSuffix(label, "-") {
			return false
		}
	}
	return true
}
