package providers

import (
	"errors"
	"fmt"
)

// Kind classifies a ServiceError.
type Kind int

const (
	KindTransport Kind = iota
	KindAuth
	KindRateLimit
	KindServer
	KindRequest
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport error"
	case KindAuth:
		return "authentication error"
	case KindRateLimit:
		return "rate limited"
	case KindServer:
		return "server error"
	case KindRequest:
		return "request rejected"
	case KindResponse:
		return "invalid response"
	default:
		return "unknown error"
	}
}

// ServiceError is returned for every failure talking to a provider.
type ServiceError struct {
	Provider   string
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	msg := e.Provider + ": " + e.Kind.String()
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Retryable reports whether repeating the request could succeed.
func (e *ServiceError) Retryable() bool {
	return e.Kind == KindRateLimit || e.Kind == KindServer
}

func kindOf(err error) (Kind, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindAuth
}

// IsRateLimit reports whether err is a rate-limit response.
func IsRateLimit(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindRateLimit
}

func isRetryable(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Retryable()
}

func missingKey(provider, envVar string) error {
	return &ServiceError{
		Provider: provider,
		Kind:     KindAuth,
		Message:  envVar + " environment variable is not set",
	}
}

func malformed(provider, msg string) error {
	return &ServiceError{Provider: provider, Kind: KindResponse, Message: msg}
}
