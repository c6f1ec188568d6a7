package utils

import "time"

// Timestamps are stored as unix seconds (see db_models.BaseModel) and
// rendered as UTC RFC3339 at the API boundary.

func NowUnixSeconds() int64 { return time.Now().Unix() }

func FormatRFC3339(sec int64) string {
	if sec <= 0 {
		return ""
	}
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

func FormatRFC3339Ptr(sec *int64) string {
	if sec == nil {
		return ""
	}
	return FormatRFC3339(*sec)
}

// ParseDate accepts YYYY-MM-DD and returns the UTC midnight of that day.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// EndOfDay stretches a parsed date to its last second, so inclusive "to"
// filters cover the whole day.
func EndOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Second)
}
