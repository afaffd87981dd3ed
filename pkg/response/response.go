package response

import "laundrybill/pkg/apperror"

// Response represents the standard API error format. Successful calls return
// endpoint-specific bodies.
type Response struct {
	Status     string                `json:"status"`      // "error"
	StatusCode int                   `json:"status_code"` // HTTP status code
	Message    string                `json:"message"`
	Errors     []apperror.FieldError `json:"errors,omitempty"`
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, message string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Message:    message,
	}
}

// FromAppError renders an AppError, including any field errors
func FromAppError(err *apperror.AppError) Response {
	resp := Error(err.Code, err.Message)
	resp.Errors = err.Errors
	return resp
}

// Message is the body of mutation endpoints: {"message": ...} plus optional fields.
func Message(message string) map[string]interface{} {
	return map[string]interface{}{"message": message}
}
