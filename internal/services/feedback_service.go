package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"pulse/internal/models/db_models"
	"pulse/internal/models/response_models"
	"pulse/internal/repositories"
	"pulse/pkg/aigateway"
	"pulse/pkg/imagenorm"
	"pulse/pkg/utils"
)

type FeedbackServiceInterface interface {
	// CreateFromPhoto runs the full synchronous pipeline: event check,
	// image normalization, AI prediction, persistence.
	CreateFromPhoto(ctx context.Context, userID uuid.UUID, data []byte, filename, eventIDRaw string) (*db_models.Feedback, error)

	// AnalyzeAndRecord takes an already-normalized image through prediction
	// and persistence. The deferred photo-login path enters here.
	AnalyzeAndRecord(ctx context.Context, userID uuid.UUID, img *imagenorm.Image, eventID *uuid.UUID) (*db_models.Feedback, error)

	// ListMyFeedback returns the caller's own feedback history, newest first.
	ListMyFeedback(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.MyFeedbackResponse, error)
}

type FeedbackService struct {
	feedbackRepo repositories.FeedbackRepositoryInterface
	eventRepo    repositories.EventRepository
	userRepo     repositories.UserRepository
	gateway      aigateway.GatewayInterface
}

func NewFeedbackService(
	feedbackRepo repositories.FeedbackRepositoryInterface,
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	gateway aigateway.GatewayInterface,
) FeedbackServiceInterface {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		gateway:      gateway,
	}
}

func (s *FeedbackService) CreateFromPhoto(ctx context.Context, userID uuid.UUID, data []byte, filename, eventIDRaw string) (*db_models.Feedback, error) {
	eventID, err := ParseEventID(eventIDRaw)
	if err != nil {
		return nil, err
	}

	if eventID != nil {
		event, err := s.eventRepo.FindEventById(ctx, eventID.String())
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if event == nil {
			return nil, utils.ErrEventNotFound
		}
		ok, err := s.eventRepo.IsParticipant(ctx, *eventID, userID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if !ok {
			return nil, utils.ErrNotParticipant
		}
	}

	img, err := imagenorm.Normalize(data, filename)
	if err != nil {
		return nil, utils.ErrInvalidImage
	}

	return s.AnalyzeAndRecord(ctx, userID, img, eventID)
}

func (s *FeedbackService) AnalyzeAndRecord(ctx context.Context, userID uuid.UUID, img *imagenorm.Image, eventID *uuid.UUID) (*db_models.Feedback, error) {
	prediction, err := s.gateway.Predict(ctx, aigateway.Part{
		Filename:    img.Filename,
		ContentType: img.ContentType,
		Data:        img.Data,
	})
	if err != nil {
		// No row may exist for a failed analysis.
		return nil, err
	}

	return s.record(ctx, userID, prediction, eventID)
}

func (s *FeedbackService) record(ctx context.Context, userID uuid.UUID, prediction *aigateway.Prediction, eventID *uuid.UUID) (*db_models.Feedback, error) {
	user, err := s.userRepo.FindById(ctx, userID.String())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	emotion := prediction.Emotion
	if emotion == "" {
		emotion = "unknown"
	}

	// Top3 is stored exactly as the AI service sent it.
	top3 := prediction.Top3
	if len(top3) == 0 {
		top3 = json.RawMessage("[]")
	}

	feedback := &db_models.Feedback{
		UserID:     userID,
		Emotion:    emotion,
		Confidence: prediction.Confidence,
		Top3:       datatypes.JSON(top3),
		EventID:    eventID,
		// Affiliation is copied from the user row read in this same call;
		// a concurrent affiliation change records the pre-change value.
		CompanyID:    user.CompanyID,
		DepartmentID: user.DepartmentID,
	}
	if user.Department != nil {
		feedback.DepartmentName = user.Department.Name
	}
	if prediction.Probs != nil {
		probsJSON, err := json.Marshal(prediction.Probs)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		feedback.Probs = datatypes.JSON(probsJSON)
	}
	if prediction.FaceBox != nil {
		boxJSON, err := json.Marshal(prediction.FaceBox)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		feedback.FaceBox = datatypes.JSON(boxJSON)
	}

	if err := s.feedbackRepo.CreateFeedback(ctx, feedback); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return feedback, nil
}

func (s *FeedbackService) ListMyFeedback(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.MyFeedbackResponse, error) {
	feedbacks, err := s.feedbackRepo.ListFeedbackForUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.MyFeedbackResponse, 0, len(feedbacks))
	for i := range feedbacks {
		f := &feedbacks[i]
		item := response_models.MyFeedbackResponse{
			ID:         f.ID.String(),
			Emotion:    f.Emotion,
			Confidence: f.Confidence,
			CreatedAt:  utils.FormatRFC3339(f.CreatedAt),
		}
		if f.EventID != nil {
			eventID := f.EventID.String()
			item.EventID = &eventID
		}
		result = append(result, item)
	}
	return result, nil
}

// ParseEventID normalizes the optional event reference. Absent, empty, "0"
// and the nil uuid all mean "no event".
func ParseEventID(raw string) (*uuid.UUID, error) {
	if raw == "" || raw == "0" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, utils.ErrValidation
	}
	if id == uuid.Nil {
		return nil, nil
	}
	return &id, nil
}
