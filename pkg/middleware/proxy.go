package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
)

// trusted holds the proxy networks whose forwarding headers are believed.
// Empty means forwarding headers are ignored.
var trusted atomic.Pointer[[]*net.IPNet]

// TrustProxies replaces the set of proxies allowed to report the client
// address through X-Forwarded-For or X-Real-Ip. Entries are CIDRs or bare
// IPs. Calling it with no entries trusts nobody.
func TrustProxies(proxies ...string) error {
	nets := make([]*net.IPNet, 0, len(proxies))
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return fmt.Errorf("middleware: invalid proxy address %q", p)
			}
			bits := 32
			if ip.To4() == nil {
				bits = 128
			}
			p = fmt.Sprintf("%s/%d", ip, bits)
		}
		_, n, err := net.ParseCIDR(p)
		if err != nil {
			return fmt.Errorf("middleware: invalid proxy network %q: %w", p, err)
		}
		nets = append(nets, n)
	}
	trusted.Store(&nets)
	return nil
}

func isTrusted(host string) bool {
	nets := trusted.Load()
	if nets == nil {
		return false
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, n := range *nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP returns the address of the client. Forwarding headers are only
// honoured when the direct peer is a trusted proxy; X-Forwarded-For is read
// right to left, skipping hops that are themselves trusted.
func ClientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !isTrusted(peer) {
		return peer
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		hops := strings.Split(fwd, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !isTrusted(hop) || i == 0 {
				return hop
			}
		}
	}
	if real := strings.TrimSpace(r.Header.Get("X-Real-Ip")); real != "" {
		return real
	}
	return peer
}
