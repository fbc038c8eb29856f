package app

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/studiowebux/nuuslees/internal/apperr"
)

// describeError turns a fetch or extraction failure into a short message for
// the info bar and the reader. The raw error still goes to the log.
func describeError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timeout - the site is slow, try increasing fetch_timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return "Request timeout - the site is slow, try increasing fetch_timeout"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if msg := describeNetError(opErr); msg != "" {
			return msg
		}
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return "TLS certificate signed by unknown authority"
	}

	if apperr.Is(err, apperr.KindFormat) {
		return "Unreadable content - " + err.Error()
	}

	return describeMessage(err.Error())
}

func describeNetError(e *net.OpError) string {
	if e.Timeout() {
		return "Connection timeout - the site took too long to respond"
	}

	var errno syscall.Errno
	if !errors.As(e.Err, &errno) {
		return ""
	}
	switch errno {
	case syscall.ECONNREFUSED:
		return "Connection refused - the site is down or unreachable"
	case syscall.ECONNRESET:
		return "Connection reset by the site"
	case syscall.ENETUNREACH:
		return "Network unreachable - check your connection"
	case syscall.EHOSTUNREACH:
		return "Host unreachable - check your connection"
	}
	return ""
}

// describeMessage categorizes errors that only survive as text
func describeMessage(msg string) string {
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "deadline exceeded"), strings.Contains(lower, "timed out"),
		strings.Contains(lower, "timeout"):
		return "Request timeout - the site is slow, try increasing fetch_timeout"
	case strings.Contains(lower, "no such host"), strings.Contains(lower, "dial tcp: lookup"):
		return "DNS resolution failed - check the link and your connection"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused - the site is down or unreachable"
	case strings.Contains(lower, "connection reset"):
		return "Connection reset by the site"
	case strings.Contains(lower, "network is unreachable"), strings.Contains(lower, "no route to host"):
		return "Network unreachable - check your connection"
	case strings.Contains(lower, "x509"), strings.Contains(lower, "certificate"), strings.Contains(lower, "tls"):
		return describeTLSMessage(lower, msg)
	case strings.Contains(lower, "stopped after") && strings.Contains(lower, "redirect"):
		return "Too many redirects"
	case strings.Contains(lower, "unsupported protocol"):
		return "Invalid link - only http and https are supported"
	case strings.Contains(lower, "unexpected eof"):
		return "Connection closed unexpectedly by the site"
	}
	return msg
}

func describeTLSMessage(lower, msg string) string {
	switch {
	case strings.Contains(lower, "unknown authority"):
		return "TLS certificate signed by unknown authority"
	case strings.Contains(lower, "expired"):
		return "TLS certificate has expired"
	case strings.Contains(lower, "is valid for"):
		return "TLS hostname mismatch - the certificate belongs to another site"
	case strings.Contains(lower, "handshake"):
		return "TLS handshake failed"
	}
	return "TLS error: " + msg
}
