package app

import (
	"context"
	"errors"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studiowebux/nuuslees/internal/apperr"
)

func TestDescribeError(t *testing.T) {
	refused := &url.Error{Op: "Get", URL: "https://example.com", Err: &net.OpError{
		Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED,
	}}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"deadline", apperr.Wrap(apperr.KindNetwork, context.DeadlineExceeded, "failed to fetch"),
			"Request timeout - the site is slow, try increasing fetch_timeout"},
		{"cancelled", context.Canceled, "Request cancelled"},
		{"refused errno", apperr.Wrap(apperr.KindNetwork, refused, "failed to fetch"),
			"Connection refused - the site is down or unreachable"},
		{"refused text", errors.New("dial tcp 127.0.0.1:9: connect: connection refused"),
			"Connection refused - the site is down or unreachable"},
		{"dns", errors.New("dial tcp: lookup nope.example: no such host"),
			"DNS resolution failed - check the link and your connection"},
		{"reset", errors.New("read: connection reset by peer"), "Connection reset by the site"},
		{"unknown authority", errors.New("x509: certificate signed by unknown authority"),
			"TLS certificate signed by unknown authority"},
		{"expired", errors.New("x509: certificate has expired or is not yet valid"), "TLS certificate has expired"},
		{"hostname", errors.New("x509: certificate is valid for a.com, not b.com"),
			"TLS hostname mismatch - the certificate belongs to another site"},
		{"redirects", errors.New(`Get "x": stopped after 10 redirects`), "Too many redirects"},
		{"format", apperr.New(apperr.KindFormat, "no article found"), "Unreadable content - format error: no article found"},
		{"unknown", errors.New("something odd"), "something odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeError(tt.err))
		})
	}
}
