package errors

import (
	"fmt"
	"strings"
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// WrapNetworkError wraps transport failures against the portal API with
// user-friendly context. These surface as the generic inline network notice;
// session state is left untouched and retry is manual.
func WrapNetworkError(err error, baseURL, operation string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Could not reach the portal server for %s", operation),
		Reason:  extractNetworkReason(err),
		Hint:    fmt.Sprintf("The API at %s may be down, or you may be offline", baseURL),
		Try:     "Check connectivity, or run with mode: mock for offline use",
		Err:     err,
	}
}

// WrapConfigError wraps configuration errors with user-friendly context
func WrapConfigError(err error, configPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Configuration error in %s", configPath),
		Reason:  err.Error(),
		Hint:    "Config is YAML with top-level mode, api, mock and log sections",
		Try:     fmt.Sprintf("cattleport validate-config --config %s", configPath),
		Err:     err,
	}
}

func extractNetworkReason(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return "Request timed out - server may be overloaded or unreachable"
	}
	if strings.Contains(errStr, "connection refused") {
		return "Connection refused - nothing is listening at the configured address"
	}
	if strings.Contains(errStr, "no such host") {
		return "Host not found - the configured base URL does not resolve"
	}
	if strings.Contains(errStr, "no route to host") {
		return "No route to host - network routing issue or server unreachable"
	}
	if strings.Contains(errStr, "connection reset") {
		return "Connection reset - server closed the connection unexpectedly"
	}

	return "Network communication failed"
}
