package dto

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func NewErrorResponse(detail string) *ErrorResponse {
	return &ErrorResponse{Detail: detail}
}

type HealthResponse struct {
	Status        string `json:"status"`
	APIConfigured bool   `json:"api_configured"`
}
