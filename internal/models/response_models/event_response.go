package response_models

type EventResponse struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	StartsAt          string `json:"starts_at"`
	EndsAt            string `json:"ends_at,omitempty"`
	CompanyID         string `json:"company"`
	CompanyName       string `json:"company_name,omitempty"`
	ParticipantsCount int    `json:"participants_count"`

	// Whether the caller already submitted feedback for this event; only
	// populated on the employee listing.
	HasFeedback *bool `json:"has_feedback,omitempty"`
}
