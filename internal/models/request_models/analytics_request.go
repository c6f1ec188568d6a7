package request_models

type AnalyticsQuery struct {
	StartDate      string   `form:"start_date" binding:"required"`
	EndDate        string   `form:"end_date" binding:"required"`
	EventID        string   `form:"event_id"`
	HasEvent       *bool    `form:"has_event"`
	DepartmentID   string   `form:"department_id"`
	DepartmentName string   `form:"department"`
	Emotions       []string `form:"emotions"`
}

// MyStatsQuery is the employee-facing variant: both bounds are optional.
type MyStatsQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type TimelineQuery struct {
	AnalyticsQuery
	GroupBy string `form:"group_by,default=day"`
}

type ByUserQuery struct {
	AnalyticsQuery
	Limit int `form:"limit,default=20"`
}
