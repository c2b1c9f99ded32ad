package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
)

// Common fetch errors
var (
	ErrTimeout    = errors.New("request timeout")
	ErrDNS        = errors.New("dns lookup failed")
	ErrTLS        = errors.New("tls handshake failed")
	ErrNetwork    = errors.New("network error")
	ErrNotHTML    = errors.New("content type is not html")
	ErrInvalidURL = errors.New("invalid URL")
)

// HTTPError is returned for non-2xx responses and carries the status code.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// GetStatusCode returns the HTTP status code of the failed response.
func (e *HTTPError) GetStatusCode() int {
	return e.StatusCode
}

// ErrorKind buckets a fetch failure for the crawl error list.
type ErrorKind string

const (
	KindHTTPStatus ErrorKind = "http-status"
	KindTimeout    ErrorKind = "timeout"
	KindDNS        ErrorKind = "dns"
	KindTLS        ErrorKind = "tls"
	KindNetwork    ErrorKind = "network"
)

// Classify maps an arbitrary fetch error onto the error taxonomy. Unknown
// errors fall through to KindNetwork.
func Classify(err error) ErrorKind {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return KindHTTPStatus
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrTimeout) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindDNS
	}

	var certErr *tls.CertificateVerificationError
	var unknownAuthority x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &unknownAuthority) || errors.As(err, &hostnameErr) {
		return KindTLS
	}

	return KindNetwork
}
