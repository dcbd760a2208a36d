package models

// APIError is the body of every non-2xx JSON response outside the token endpoint
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrBadRequest     = "BAD_REQUEST"
	ErrUnauthorized   = "UNAUTHORIZED"
	ErrForbidden      = "FORBIDDEN"
	ErrNotFound       = "NOT_FOUND"
	ErrConflict       = "CONFLICT"
	ErrInternalServer = "INTERNAL_SERVER_ERROR"
)

func NewAPIError(code, message string) APIError {
	return APIError{Code: code, Message: message}
}

// ErrUnsupportedGrantType is the RFC 6749 code for grants other than client_credentials
const ErrUnsupportedGrantType = "unsupported_grant_type"

// OAuth2Error is the RFC 6749 error body written by the token endpoint
type OAuth2Error struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func NewOAuth2Error(code, description string) OAuth2Error {
	return OAuth2Error{Error: code, ErrorDescription: description}
}
