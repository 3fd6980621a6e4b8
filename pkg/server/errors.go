package server

import (
	"net/http"

	"github.com/matzehuels/graphedit/pkg/errors"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(err error) errorResponse {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errorResponse{Error: true, Code: string(code), Message: errors.UserMessage(err)}
}

// statusFor maps error codes to HTTP statuses. Rejected operations are
// conflicts with the current editor state; bad documents and events are the
// client's fault.
func statusFor(err error) int {
	switch code := errors.GetCode(err); {
	case errors.IsLookupMiss(err):
		return http.StatusNotFound
	case code == errors.ErrCodeInvalidInput, code == errors.ErrCodeInvalidFormat,
		code == errors.ErrCodeInvalidKey, code == errors.ErrCodeDanglingEdge,
		code == errors.ErrCodeSelfLoop, code == errors.ErrCodeDuplicateKey:
		return http.StatusBadRequest
	case code == errors.ErrCodeNothingSelected, code == errors.ErrCodeCopyEdge,
		code == errors.ErrCodeEmptyCopyBuffer, code == errors.ErrCodeDragInProgress,
		code == errors.ErrCodeNoActiveDrag:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
