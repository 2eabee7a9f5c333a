package models

// Request types

// PollRequest is the body of POST /polls and PUT /polls/{id}.
// IsPublished is accepted on the wire but ignored by create and update.
type PollRequest struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	IsPublished bool   `json:"isPublished"`
	StartsAt    Date   `json:"startsAt"`
	EndsAt      Date   `json:"endsAt"`
}

// Response types

type PollResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	IsPublished bool   `json:"isPublished"`
	StartsAt    Date   `json:"startsAt"`
	EndsAt      Date   `json:"endsAt"`
}

// Domain types

type Poll struct {
	ID          int64
	Title       string
	Summary     string
	IsPublished bool
	StartsAt    Date
	EndsAt      Date
}

// ToResponse projects a stored poll onto its wire shape.
func (p Poll) ToResponse() PollResponse {
	return PollResponse{
		ID:          p.ID,
		Title:       p.Title,
		Summary:     p.Summary,
		IsPublished: p.IsPublished,
		StartsAt:    p.StartsAt,
		EndsAt:      p.EndsAt,
	}
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message"`
	Errors  []FieldErrorResponse `json:"errors"`
}
