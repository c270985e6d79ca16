package dto

// QueryRequest is a natural-language question about the meeting graph
type QueryRequest struct {
	Question string `json:"question" validate:"required"`
}
