package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates client specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create a resource that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"

	// CodeConfiguration indicates a definition failed to load or validate
	CodeConfiguration Code = "configuration"

	// CodeSchedulingStalled indicates no schedulable entity became ready
	// within the spin cycle bound
	CodeSchedulingStalled Code = "scheduling_stalled"

	// CodeDisplayInvariant indicates the roster and schedule disagree
	CodeDisplayInvariant Code = "display_invariant"

	// CodeUnexpectedTermination indicates the combat loop ended without a result
	CodeUnexpectedTermination Code = "unexpected_termination"

	// CodeUnrecognizedActionKind indicates an action kind reached resolution
	// without a known effect
	CodeUnrecognizedActionKind Code = "unrecognized_action_kind"

	// CodeUnsupportedBuffTarget indicates a buff aimed at a stat that cannot be buffed
	CodeUnsupportedBuffTarget Code = "unsupported_buff_target"

	// CodeEmptyTargetPool indicates a command had no legal target
	CodeEmptyTargetPool Code = "empty_target_pool"
)

// Category groups codes the way callers react to them
type Category string

const (
	// CategoryConfiguration errors come from definition data and abort setup
	CategoryConfiguration Category = "configuration"

	// CategoryInvariant errors mean the scheduler broke one of its own rules
	CategoryInvariant Category = "invariant"

	// CategorySemantic errors are rule violations at the point of resolution
	CategorySemantic Category = "semantic"

	// CategoryRequest errors are bad calls from a collaborator
	CategoryRequest Category = "request"

	// CategoryUnknown covers everything else
	CategoryUnknown Category = "unknown"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// Keep the code of an error we already own
	var mineErr *Error
	if errors.As(err, &mineErr) {
		return &Error{
			Code:    mineErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(mineErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Configurationf creates a formatted configuration error
func Configurationf(format string, args ...any) *Error {
	return Newf(CodeConfiguration, format, args...)
}

// SchedulingStalledf creates a formatted scheduling stall error
func SchedulingStalledf(format string, args ...any) *Error {
	return Newf(CodeSchedulingStalled, format, args...)
}

// DisplayInvariantf creates a formatted display invariant error
func DisplayInvariantf(format string, args ...any) *Error {
	return Newf(CodeDisplayInvariant, format, args...)
}

// UnexpectedTermination creates an unexpected termination error
func UnexpectedTermination(message string) *Error {
	return New(CodeUnexpectedTermination, message)
}

// UnrecognizedActionKindf creates a formatted unrecognized action kind error
func UnrecognizedActionKindf(format string, args ...any) *Error {
	return Newf(CodeUnrecognizedActionKind, format, args...)
}

// UnsupportedBuffTargetf creates a formatted unsupported buff target error
func UnsupportedBuffTargetf(format string, args ...any) *Error {
	return Newf(CodeUnsupportedBuffTarget, format, args...)
}

// EmptyTargetPoolf creates a formatted empty target pool error
func EmptyTargetPoolf(format string, args ...any) *Error {
	return Newf(CodeEmptyTargetPool, format, args...)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var mineErr *Error
	if errors.As(err, &mineErr) {
		return mineErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsAlreadyExists checks if the error is an already exists error
func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}

// IsConfiguration checks if the error is a configuration error
func IsConfiguration(err error) bool {
	return Is(err, CodeConfiguration)
}

// IsSchedulingStalled checks if the error is a scheduling stall
func IsSchedulingStalled(err error) bool {
	return Is(err, CodeSchedulingStalled)
}

// IsDisplayInvariant checks if the error is a display invariant violation
func IsDisplayInvariant(err error) bool {
	return Is(err, CodeDisplayInvariant)
}

// IsUnexpectedTermination checks if the error is an unexpected termination
func IsUnexpectedTermination(err error) bool {
	return Is(err, CodeUnexpectedTermination)
}

// IsUnrecognizedActionKind checks if the error is an unrecognized action kind
func IsUnrecognizedActionKind(err error) bool {
	return Is(err, CodeUnrecognizedActionKind)
}

// IsUnsupportedBuffTarget checks if the error is an unsupported buff target
func IsUnsupportedBuffTarget(err error) bool {
	return Is(err, CodeUnsupportedBuffTarget)
}

// IsEmptyTargetPool checks if the error is an empty target pool
func IsEmptyTargetPool(err error) bool {
	return Is(err, CodeEmptyTargetPool)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var mineErr *Error
	if errors.As(err, &mineErr) {
		return mineErr.Code
	}
	return CodeUnknown
}

// GetCategory returns the taxonomy bucket of the error code
func GetCategory(err error) Category {
	switch GetCode(err) {
	case CodeConfiguration:
		return CategoryConfiguration
	case CodeSchedulingStalled, CodeDisplayInvariant, CodeUnexpectedTermination, CodeInternal:
		return CategoryInvariant
	case CodeUnrecognizedActionKind, CodeUnsupportedBuffTarget, CodeEmptyTargetPool:
		return CategorySemantic
	case CodeInvalidArgument, CodeNotFound, CodeAlreadyExists:
		return CategoryRequest
	default:
		return CategoryUnknown
	}
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var mineErr *Error
	if errors.As(err, &mineErr) {
		return mineErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
