// Package errs defines the failure taxonomy shared by the cache service, its
// upstream clients and the HTTP layer.
package errs

import (
	"net/http"

	"github.com/jmgilman/go/errors"
)

const (
	// CodeFetch marks an unreachable upstream, a timeout, a non-2xx reply or an open breaker.
	CodeFetch errors.ErrorCode = "FETCH_ERROR"
	// CodeParse marks a malformed upstream payload.
	CodeParse errors.ErrorCode = "PARSE_ERROR"
	// CodeStore marks a local persistence failure.
	CodeStore errors.ErrorCode = "STORE_ERROR"
)

func Fetch(err error, message string) error {
	if err == nil {
		return errors.New(CodeFetch, message)
	}
	return errors.Wrap(err, CodeFetch, message)
}

func Fetchf(format string, args ...interface{}) error {
	return errors.Newf(CodeFetch, format, args...)
}

func Parse(err error, message string) error {
	if err == nil {
		return errors.New(CodeParse, message)
	}
	return errors.Wrap(err, CodeParse, message)
}

func Store(err error, message string) error {
	return errors.Wrap(err, CodeStore, message)
}

func NotFound(message string) error {
	return errors.New(errors.CodeNotFound, message)
}

func NotFoundf(format string, args ...interface{}) error {
	return errors.Newf(errors.CodeNotFound, format, args...)
}

func InvalidInput(message string) error {
	return errors.New(errors.CodeInvalidInput, message)
}

func InvalidInputf(format string, args ...interface{}) error {
	return errors.Newf(errors.CodeInvalidInput, format, args...)
}

// With attaches a context field, keeping the code of err.
func With(err error, key string, value interface{}) error {
	if err == nil {
		return nil
	}
	return errors.WithContext(err, key, value)
}

func IsFetch(err error) bool        { return errors.GetCode(err) == CodeFetch }
func IsParse(err error) bool        { return errors.GetCode(err) == CodeParse }
func IsStore(err error) bool        { return errors.GetCode(err) == CodeStore }
func IsNotFound(err error) bool     { return errors.GetCode(err) == errors.CodeNotFound }
func IsInvalidInput(err error) bool { return errors.GetCode(err) == errors.CodeInvalidInput }

// HTTPStatus maps an error to the status the API answers with.
func HTTPStatus(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	case CodeFetch, CodeParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Response is the flat error payload rendered to clients.
type Response struct {
	Error          string                 `json:"error"`
	Code           string                 `json:"code"`
	Classification string                 `json:"classification"`
	Context        map[string]interface{} `json:"context,omitempty"`
}

func ToResponse(err error) Response {
	if err == nil {
		return Response{}
	}

	var platformErr errors.PlatformError
	if !errors.As(err, &platformErr) {
		return Response{
			Error:          err.Error(),
			Code:           string(errors.CodeUnknown),
			Classification: string(errors.ClassificationPermanent),
		}
	}

	return Response{
		Error:          platformErr.Message(),
		Code:           string(platformErr.Code()),
		Classification: string(platformErr.Classification()),
		Context:        platformErr.Context(),
	}
}
