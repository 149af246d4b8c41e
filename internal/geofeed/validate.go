package geofeed

import (
	"net/netip"
	"strings"
)

// IsValidCIDR reports whether s is a CIDR network in RFC 8805 shape:
// dotted-quad IPv4 with /0-/32 or colon-form IPv6 (abbreviations allowed)
// with /0-/128. A bare address without a prefix length is rejected.
func IsValidCIDR(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		return false
	}
	_, err := netip.ParsePrefix(s)
	return err == nil
}
