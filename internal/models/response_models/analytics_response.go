package response_models

// FiltersEcho repeats the caller's filters in every analytics payload so
// dashboards can label what they are looking at.
type FiltersEcho struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	EventID    *string  `json:"event_id"`
	Department *string  `json:"department"`
	Emotions   []string `json:"emotions,omitempty"`
}

type EmotionMix struct {
	Emotion string  `json:"emotion"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

type OverviewReport struct {
	Total         int64        `json:"total"`
	AvgConfidence float64      `json:"avg_confidence"`
	TopEmotion    *string      `json:"top_emotion"`
	Emotions      []EmotionMix `json:"emotions"`
	Filters       FiltersEcho  `json:"filters"`
}

type TimelineBucket struct {
	Bucket   string           `json:"bucket"`
	Emotions map[string]int64 `json:"emotions"`
}

type TimelineReport struct {
	GroupBy string           `json:"group_by"`
	Series  []TimelineBucket `json:"series"`
	Filters FiltersEcho      `json:"filters"`
}

type UserStat struct {
	UserID        string  `json:"user_id"`
	Name          string  `json:"name"`
	Username      string  `json:"username"`
	Total         int64   `json:"total"`
	AvgConfidence float64 `json:"avg_confidence"`
	TopEmotion    *string `json:"top_emotion"`
}

type ByUserReport struct {
	Users   []UserStat  `json:"users"`
	Filters FiltersEcho `json:"filters"`
}
