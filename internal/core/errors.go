package core

// Error codes for domain errors.
const (
	ErrCodeRoomNotFound     = "room_not_found"
	ErrCodeRoomFull         = "room_full"
	ErrCodeAlreadyJoined    = "already_joined"
	ErrCodeQuotaExceeded    = "quota_exceeded"
	ErrCodeCapacityExceeded = "capacity_exceeded"

	// ErrCodeClientNotFound marks a contract violation: the transport must
	// register a client on connect before dispatching any other event.
	ErrCodeClientNotFound = "client_not_found"

	ErrCodeInternal = "internal"
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

// CodeOf extracts the domain error code, or ErrCodeInternal for
// anything that isn't a CoreError.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	if ce, ok := err.(*CoreError); ok {
		return ce.Code
	}
	return ErrCodeInternal
}

// IsContractViolation reports whether err indicates a broken invariant
// inside the server rather than bad user input.
func IsContractViolation(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeClientNotFound || code == ErrCodeInternal
}
