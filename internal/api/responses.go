package api

type ErrorResponse struct {
	Message string `json:"message" example:"member not found"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type ValidationErrorResponse struct {
	Message string            `json:"message" example:"validation failed"`
	Details []ValidationError `json:"details"`
}
