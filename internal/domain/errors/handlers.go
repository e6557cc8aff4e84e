package errors

import "net/http"

// ErrorResponse is the JSON body rendered for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`             // User-facing error message
	Code    string `json:"code,omitempty"`    // Business error code, e.g. "INVALID_CREDENTIALS"
	Details string `json:"details,omitempty"` // Client errors only
}

// NewErrorResponse builds the body for an AppError. Details of server-side
// failures stay in the logs.
func NewErrorResponse(appErr AppError) ErrorResponse {
	resp := ErrorResponse{
		Error: appErr.Message(),
		Code:  appErr.ErrorCode(),
	}
	if appErr.HTTPCode() < http.StatusInternalServerError {
		resp.Details = appErr.Details()
	}

	return resp
}
