package services

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"

	"pulse/internal/models/request_models"
	"pulse/internal/models/response_models"
	"pulse/internal/repositories"
	"pulse/pkg/utils"
)

const defaultByUserLimit = 20

type AnalyticsServiceInterface interface {
	Overview(ctx context.Context, hrUserID string, query request_models.AnalyticsQuery) (*response_models.OverviewReport, error)
	Timeline(ctx context.Context, hrUserID string, query request_models.TimelineQuery) (*response_models.TimelineReport, error)
	ByUser(ctx context.Context, hrUserID string, query request_models.ByUserQuery) (*response_models.ByUserReport, error)

	// MyStats is the employee's own slice of the overview numbers.
	MyStats(ctx context.Context, userID string, query request_models.MyStatsQuery) (*response_models.OverviewReport, error)
}

type AnalyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	userRepo      repositories.UserRepository
}

func NewAnalyticsService(analyticsRepo repositories.AnalyticsRepository, userRepo repositories.UserRepository) AnalyticsServiceInterface {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		userRepo:      userRepo,
	}
}

func (s *AnalyticsService) Overview(ctx context.Context, hrUserID string, query request_models.AnalyticsQuery) (*response_models.OverviewReport, error) {
	filters, err := s.buildFilters(ctx, hrUserID, query)
	if err != nil {
		return nil, err
	}

	total, avgConf, err := s.analyticsRepo.CountAndAverage(ctx, *filters)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	rows, err := s.analyticsRepo.EmotionCounts(ctx, *filters)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	mix, top := emotionMix(rows, total)
	return &response_models.OverviewReport{
		Total:         total,
		AvgConfidence: avgConf,
		TopEmotion:    top,
		Emotions:      mix,
		Filters:       echoFilters(query),
	}, nil
}

func (s *AnalyticsService) MyStats(ctx context.Context, userID string, query request_models.MyStatsQuery) (*response_models.OverviewReport, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUserNotFound
	}

	filters := repositories.FeedbackFilters{UserID: &uid}
	if query.From != "" {
		start, err := utils.ParseDate(query.From)
		if err != nil {
			return nil, utils.ErrValidation
		}
		filters.Start = &start
	}
	if query.To != "" {
		end, err := utils.ParseDate(query.To)
		if err != nil {
			return nil, utils.ErrValidation
		}
		endOfDay := utils.EndOfDay(end)
		filters.End = &endOfDay
	}

	total, avgConf, err := s.analyticsRepo.CountAndAverage(ctx, filters)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	rows, err := s.analyticsRepo.EmotionCounts(ctx, filters)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	mix, top := emotionMix(rows, total)
	return &response_models.OverviewReport{
		Total:         total,
		AvgConfidence: avgConf,
		TopEmotion:    top,
		Emotions:      mix,
		Filters:       response_models.FiltersEcho{From: query.From, To: query.To},
	}, nil
}

// emotionMix turns raw counts into the percentage breakdown plus the leading
// emotion. Rows arrive ordered by count, so the first one is the top.
func emotionMix(rows []repositories.EmotionCountRow, total int64) ([]response_models.EmotionMix, *string) {
	mix := make([]response_models.EmotionMix, 0, len(rows))
	for _, r := range rows {
		percent := 0.0
		if total > 0 {
			percent = round2(float64(r.Count) * 100.0 / float64(total))
		}
		mix = append(mix, response_models.EmotionMix{
			Emotion: r.Emotion,
			Count:   r.Count,
			Percent: percent,
		})
	}

	var top *string
	if total > 0 && len(rows) > 0 {
		top = &rows[0].Emotion
	}
	return mix, top
}

func (s *AnalyticsService) Timeline(ctx context.Context, hrUserID string, query request_models.TimelineQuery) (*response_models.TimelineReport, error) {
	groupBy := query.GroupBy
	if groupBy == "" {
		groupBy = "day"
	}
	if groupBy != "day" && groupBy != "month" {
		return nil, utils.ErrValidation
	}

	filters, err := s.buildFilters(ctx, hrUserID, query.AnalyticsQuery)
	if err != nil {
		return nil, err
	}

	rows, err := s.analyticsRepo.TimelineCounts(ctx, *filters, groupBy)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	// pivot: bucket -> {emotion: count}
	buckets := make(map[string]map[string]int64)
	for _, r := range rows {
		key := r.Bucket.UTC().Format("2006-01-02")
		if buckets[key] == nil {
			buckets[key] = make(map[string]int64)
		}
		buckets[key][r.Emotion] = r.Count
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]response_models.TimelineBucket, 0, len(keys))
	for _, k := range keys {
		series = append(series, response_models.TimelineBucket{
			Bucket:   k,
			Emotions: buckets[k],
		})
	}

	return &response_models.TimelineReport{
		GroupBy: groupBy,
		Series:  series,
		Filters: echoFilters(query.AnalyticsQuery),
	}, nil
}

func (s *AnalyticsService) ByUser(ctx context.Context, hrUserID string, query request_models.ByUserQuery) (*response_models.ByUserReport, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultByUserLimit
	}

	filters, err := s.buildFilters(ctx, hrUserID, query.AnalyticsQuery)
	if err != nil {
		return nil, err
	}

	rows, err := s.analyticsRepo.UserTotals(ctx, *filters, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	users := make([]response_models.UserStat, 0, len(rows))
	for _, r := range rows {
		stat := response_models.UserStat{
			UserID:        r.UserID,
			Username:      r.Username,
			Name:          r.Name,
			Total:         r.Total,
			AvgConfidence: r.AvgConf,
		}
		if stat.Name == "" {
			stat.Name = r.Username
		}

		userID, err := uuid.Parse(r.UserID)
		if err == nil {
			top, err := s.analyticsRepo.TopEmotionForUser(ctx, *filters, userID)
			if err != nil {
				return nil, utils.ErrDatabaseError
			}
			if top != "" {
				stat.TopEmotion = &top
			}
		}
		users = append(users, stat)
	}

	return &response_models.ByUserReport{
		Users:   users,
		Filters: echoFilters(query.AnalyticsQuery),
	}, nil
}

// buildFilters resolves the HR's own company and parses the query; every
// aggregation is company-scoped, never wider.
func (s *AnalyticsService) buildFilters(ctx context.Context, hrUserID string, query request_models.AnalyticsQuery) (*repositories.FeedbackFilters, error) {
	hr, err := s.userRepo.FindById(ctx, hrUserID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if hr == nil {
		return nil, utils.ErrUserNotFound
	}
	if hr.CompanyID == nil {
		return nil, utils.ErrValidation
	}

	filters := &repositories.FeedbackFilters{
		CompanyID:      *hr.CompanyID,
		HasEvent:       query.HasEvent,
		DepartmentName: query.DepartmentName,
		Emotions:       query.Emotions,
	}

	if query.StartDate != "" {
		start, err := utils.ParseDate(query.StartDate)
		if err != nil {
			return nil, utils.ErrValidation
		}
		filters.Start = &start
	}
	if query.EndDate != "" {
		end, err := utils.ParseDate(query.EndDate)
		if err != nil {
			return nil, utils.ErrValidation
		}
		endOfDay := utils.EndOfDay(end)
		filters.End = &endOfDay
	}
	if query.EventID != "" && query.EventID != "0" {
		eventID, err := uuid.Parse(query.EventID)
		if err != nil {
			return nil, utils.ErrValidation
		}
		filters.EventID = &eventID
	}
	if query.DepartmentID != "" {
		departmentID, err := uuid.Parse(query.DepartmentID)
		if err != nil {
			return nil, utils.ErrValidation
		}
		filters.DepartmentID = &departmentID
	}

	return filters, nil
}

func echoFilters(query request_models.AnalyticsQuery) response_models.FiltersEcho {
	echo := response_models.FiltersEcho{
		From:     query.StartDate,
		To:       query.EndDate,
		Emotions: query.Emotions,
	}
	if query.EventID != "" {
		echo.EventID = &query.EventID
	}
	if query.DepartmentName != "" {
		echo.Department = &query.DepartmentName
	} else if query.DepartmentID != "" {
		echo.Department = &query.DepartmentID
	}
	return echo
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
