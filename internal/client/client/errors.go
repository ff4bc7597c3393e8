package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors. Every *APIError matches exactly one kind sentinel via
// errors.Is; 404 responses additionally match ErrNotFound and client-side
// precondition failures additionally match ErrValidation.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrClientError  = errors.New("client error")
	ErrServerError  = errors.New("server error")
	ErrNetwork      = errors.New("network error")
	ErrDecode       = errors.New("decode error")

	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// Kind classifies a failed call.
type Kind int

const (
	KindUnauthorized Kind = iota + 1
	KindClient
	KindServer
	KindNetwork
	KindDecode
)

func (k Kind) sentinel() error {
	switch k {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindClient:
		return ErrClientError
	case KindServer:
		return ErrServerError
	case KindNetwork:
		return ErrNetwork
	default:
		return ErrDecode
	}
}

func (k Kind) String() string {
	return k.sentinel().Error()
}

// APIError is the error returned by every HTTPClient call.
type APIError struct {
	Kind    Kind
	Status  int    // HTTP status; 0 when no response was received
	Message string // server-provided message, if any
	Method  string
	Path    string
	Err     error // underlying cause (transport or decoding error)
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (%d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.Status == http.StatusNotFound {
		errs = append(errs, ErrNotFound)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewValidationError builds a client-side ClientError raised before any
// request is sent.
func NewValidationError(method, path, message string) *APIError {
	return &APIError{Kind: KindClient, Message: message, Method: method, Path: path, Err: ErrValidation}
}

// kindForStatus maps an HTTP status of a failed response to a Kind.
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status >= 500:
		return KindServer
	default:
		return KindClient
	}
}

// Describe renders a short localized message for err, suitable for showing
// to the user.
func Describe(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation) && errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, ErrUnauthorized):
		return "로그인이 필요합니다. 다시 로그인해주세요."
	case errors.Is(err, ErrNotFound):
		return "요청한 정보를 찾을 수 없습니다."
	case errors.Is(err, ErrClientError):
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return apiErr.Message
		}
		return "요청이 올바르지 않습니다."
	case errors.Is(err, ErrServerError):
		return "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	case errors.Is(err, ErrNetwork):
		return "서버에 연결할 수 없습니다. 네트워크 상태를 확인해주세요."
	case errors.Is(err, ErrDecode):
		return "서버 응답을 처리할 수 없습니다."
	default:
		return err.Error()
	}
}
