package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a domain error for a violated input bound.
// Validation errors are recoverable: the caller surfaces them to the UI and
// performs no mutation.
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: message}
}

// NewDataIntegrityError creates a domain error for malformed stored records.
// Integrity errors must be surfaced loudly, never swallowed: silently dropping a
// malformed rent charge would hide real arrears.
func NewDataIntegrityError(message string) *DomainError {
	return &DomainError{Code: CodeDataIntegrity, Message: message}
}

// NewPreconditionFailure creates a domain error for a stale snapshot detected at
// commit time. The caller must re-fetch and retry; nothing was applied.
func NewPreconditionFailure(message string) *DomainError {
	return &DomainError{Code: CodePreconditionFailed, Message: message}
}

// Error codes for the cross-layer error kinds
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeDataIntegrity      = "DATA_INTEGRITY"
	CodePreconditionFailed = "PRECONDITION_FAILED"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
