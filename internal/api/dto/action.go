package dto

// ApproveActionRequest represents an action approval request
type ApproveActionRequest struct {
	ApprovedBy string `json:"approved_by" validate:"required"`
}
