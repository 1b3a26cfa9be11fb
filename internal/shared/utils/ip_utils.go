package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractClientIP returns the caller's address.
//
// Priority order:
// 1. X-Forwarded-For header (first hop)
// 2. X-Real-IP header
// 3. RemoteAddr
//
// Forwarded headers are only honoured when the direct peer is a private or
// loopback address, i.e. a reverse proxy we run.
func ExtractClientIP(c *gin.Context) string {
	remote := remoteIP(c.Request.RemoteAddr)

	if remote == "" || IsPrivateIP(remote) {
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if net.ParseIP(first) != nil {
				return first
			}
		}
		if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); net.ParseIP(xri) != nil {
			return xri
		}
	}

	if remote != "" {
		return remote
	}
	return "127.0.0.1"
}

func remoteIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	if net.ParseIP(host) == nil {
		return ""
	}
	return host
}

// IsPrivateIP reports RFC 1918 / RFC 4193 and loopback addresses
func IsPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsPrivate() || parsed.IsLoopback()
}
