package api

// StudentRequest is the body of create and update calls.
type StudentRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Course string `json:"course"`
	Age    int    `json:"age"`
}

// ErrorResponse is what the backend sends along with a non-2xx status.
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
}

// AckResponse acknowledges a delete.
type AckResponse struct {
	Message string `json:"message,omitempty"`
}
