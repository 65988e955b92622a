package response

import "net/http"

// Business error codes
const (
	// Fail is an internal failure
	Fail ResponseCode = 0
	// ParseError means the body could not be bound
	ParseError ResponseCode = 1
	// InvalidParameter means a field failed validation
	InvalidParameter ResponseCode = 2
	// Unauthorized covers every reason a caller has no identity
	Unauthorized ResponseCode = 3
	// Forbidden means the identity lacks the capability
	Forbidden ResponseCode = 4
	// NotFoundCode means the resource does not exist for this caller
	NotFoundCode ResponseCode = 5
	// ConflictCode means a uniqueness rule would be broken
	ConflictCode ResponseCode = 6
	// TooManyRequests means the caller hit a rate limit
	TooManyRequests ResponseCode = 7
)

// Messages shared by more than one handler. Callers compare responses
// byte for byte, so these must not be rebuilt ad hoc.
const (
	MsgNotSignedIn        = "User not signed in"
	MsgInvalidCredentials = "Invalid credentials"
	MsgInternal           = "Internal server error"
)

type BusinessError struct {
	Code ResponseCode
	Msg  string
	Err  error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
		Err:  nil,
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

// NotAuthenticated is returned for every reason authentication can fail.
func NotAuthenticated() *BusinessError {
	return NewBusinessError(WithErrorCode(Unauthorized), WithErrorMessage(MsgNotSignedIn))
}

// InvalidCredentials is shared by unknown-user and wrong-password logins.
func InvalidCredentials() *BusinessError {
	return NewBusinessError(WithErrorCode(Unauthorized), WithErrorMessage(MsgInvalidCredentials))
}

func NotFound(msg string) *BusinessError {
	return NewBusinessError(WithErrorCode(NotFoundCode), WithErrorMessage(msg))
}

func Conflict(msg string) *BusinessError {
	return NewBusinessError(WithErrorCode(ConflictCode), WithErrorMessage(msg))
}

func Invalid(msg string) *BusinessError {
	return NewBusinessError(WithErrorCode(InvalidParameter), WithErrorMessage(msg))
}

func Throttled(msg string) *BusinessError {
	return NewBusinessError(WithErrorCode(TooManyRequests), WithErrorMessage(msg))
}

func Denied(msg string) *BusinessError {
	return NewBusinessError(WithErrorCode(Forbidden), WithErrorMessage(msg))
}

// Internal wraps an unexpected failure. The wrapped error is for logs only.
func Internal(err error) *BusinessError {
	return NewBusinessError(WithErrorCode(Fail), WithErrorMessage(MsgInternal), WithError(err))
}

// HTTPStatus is the one place a business code becomes an HTTP status.
func HTTPStatus(code ResponseCode) int {
	switch code {
	case ParseError, InvalidParameter:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFoundCode:
		return http.StatusNotFound
	case ConflictCode:
		return http.StatusConflict
	case TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
