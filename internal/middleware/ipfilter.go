// SPDX-License-Identifier: MIT
package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// IPFilterMiddleware blocks clients in any blocklist range and, when the
// allowlist is non-empty, every client outside it. Entries are CIDR ranges
// or bare addresses; unparseable entries are ignored.
func IPFilterMiddleware(blocklist, allowlist []string) gin.HandlerFunc {
	blocked := parseRanges(blocklist)
	allowed := parseRanges(allowlist)

	return func(c *gin.Context) {
		clientIP := extractIP(c)
		if clientIP == nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		if containsIP(blocked, clientIP) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		if len(allowed) > 0 && !containsIP(allowed, clientIP) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Next()
	}
}

func parseRanges(entries []string) []*net.IPNet {
	ranges := make([]*net.IPNet, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				continue
			}
			bits := 128
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 32
			}
			ranges = append(ranges, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		if _, ipNet, err := net.ParseCIDR(entry); err == nil {
			ranges = append(ranges, ipNet)
		}
	}
	return ranges
}

func containsIP(ranges []*net.IPNet, ip net.IP) bool {
	for _, ipNet := range ranges {
		if ipNet.Contains(ip) {
			return true
		}
	}
	return false
}

// extractIP extracts the client IP from the request
// Handles X-Forwarded-For header if behind proxy
func extractIP(c *gin.Context) net.IP {
	forwarded := c.GetHeader("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		return net.ParseIP(strings.TrimSpace(ips[0]))
	}

	// SplitHostPort handles bracketed IPv6 addresses
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}

	return net.ParseIP(host)
}
