// Package response defines the uniform API envelope and the helpers
// that write it.
package response

// Keys stored in the gin context by middleware.
const (
	RequestIDKey = "request_id"
	UserIDKey    = "user_id"
)

// Response is the envelope for every API reply.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Code      string      `json:"code,omitempty"`
	Message   string      `json:"message,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// PaginatedResponse wraps a list payload with paging metadata.
type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

type Pagination struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}
