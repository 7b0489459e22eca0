// Package privacy reduces client addresses to network prefixes before they
// reach logs.
package privacy

import (
	"fmt"
	"net"
	"net/http"
)

// AnonymizeIP truncates an address to its network: IPv4 to /24, IPv6 to /48.
// A trailing port, as in http.Request.RemoteAddr, is dropped first.
// Returns "invalid" for unparseable input and "unknown" for empty input.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "invalid"
	}

	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}

	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1],
		parsed[2], parsed[3],
		parsed[4], parsed[5])
}

// ClientNetwork returns the anonymized network of the request's peer.
func ClientNetwork(r *http.Request) string {
	return AnonymizeIP(r.RemoteAddr)
}
