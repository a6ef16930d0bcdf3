package dto

// InjectFailureRequest represents a failure injection request
type InjectFailureRequest struct {
	Service string `json:"service" validate:"required"`
}
