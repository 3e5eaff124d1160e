package faults

import (
	"errors"
	"net"
	"strings"
)

// Inspector provides methods for analyzing transport-level errors.
type Inspector interface {
	// IsTimeout returns true if the error represents a deadline or I/O timeout.
	IsTimeout(err error) bool

	// IsConnectionError returns true if the error represents a refused or
	// dropped connection.
	IsConnectionError(err error) bool

	// IsDNSError returns true if the error represents a name resolution failure.
	IsDNSError(err error) bool

	// IsNetworkError returns true if the error represents any network
	// connectivity failure worth retrying.
	IsNetworkError(err error) bool
}

// TransportErrorInspector implements the Inspector interface for errors
// surfaced by net/http round trips.
type TransportErrorInspector struct{}

// NewInspector creates a new TransportErrorInspector.
func NewInspector() Inspector {
	return &TransportErrorInspector{}
}

// IsTimeout checks if the error is a deadline or I/O timeout.
func (i *TransportErrorInspector) IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// IsConnectionError checks if the error is a refused or dropped connection.
func (i *TransportErrorInspector) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "dial tcp")
}

// IsDNSError checks if the error is a name resolution failure.
func (i *TransportErrorInspector) IsDNSError(err error) bool {
	if err == nil {
		return false
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "temporary failure in name resolution")
}

// IsNetworkError checks if the error is any network connectivity failure.
func (i *TransportErrorInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if i.IsTimeout(err) || i.IsConnectionError(err) || i.IsDNSError(err) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "eof")
}
