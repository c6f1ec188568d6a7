package response_models

type FeedbackCreatedResponse struct {
	ID      string `json:"id"`
	Emotion string `json:"emotion"`
}

type MyFeedbackResponse struct {
	ID         string   `json:"id"`
	Emotion    string   `json:"emotion"`
	Confidence *float64 `json:"confidence,omitempty"`
	EventID    *string  `json:"event_id,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

type PhotoLoginResponse struct {
	Verdict string `json:"verdict"`
	Detail  string `json:"detail"`
}
