package request_models

type EventUpsertRequest struct {
	Title          string   `json:"title" binding:"required"`
	StartsAt       int64    `json:"starts_at" binding:"required"`
	EndsAt         *int64   `json:"ends_at"`
	ParticipantIDs []string `json:"participant_ids"`
}
