package services

import (
	"context"
	"log"
	"path"

	"pulse/internal/infra"
	"pulse/internal/repositories"
	"pulse/pkg/aigateway"
	"pulse/pkg/imagenorm"
	"pulse/pkg/utils"
	"pulse/pkg/worker"
)

type FaceLoginServiceInterface interface {
	// VerifyPhoto compares the upload against the user's stored reference
	// photo. nil means the face matched; a successful match also queues the
	// deferred emotion feedback.
	VerifyPhoto(ctx context.Context, userID string, data []byte, filename string) error
}

type FaceLoginService struct {
	userRepo  repositories.UserRepository
	fileStore *infra.FileStore
	gateway   aigateway.GatewayInterface
	queue     worker.Enqueuer
}

func NewFaceLoginService(
	userRepo repositories.UserRepository,
	fileStore *infra.FileStore,
	gateway aigateway.GatewayInterface,
	queue worker.Enqueuer,
) FaceLoginServiceInterface {
	return &FaceLoginService{
		userRepo:  userRepo,
		fileStore: fileStore,
		gateway:   gateway,
		queue:     queue,
	}
}

func (s *FaceLoginService) VerifyPhoto(ctx context.Context, userID string, data []byte, filename string) error {
	user, err := s.userRepo.FindById(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrUserNotFound
	}
	if user.PhotoPath == "" {
		return utils.ErrNoReferencePhoto
	}

	stored, err := s.fileStore.Read(user.PhotoPath)
	if err != nil {
		log.Printf("reference photo %s unreadable: %v", user.PhotoPath, err)
		return utils.ErrNoReferencePhoto
	}

	uploaded, err := imagenorm.Normalize(data, filename)
	if err != nil {
		return utils.ErrInvalidImage
	}

	auth, err := s.gateway.Authorize(ctx,
		aigateway.Part{
			Filename:    path.Base(user.PhotoPath),
			ContentType: "image/jpeg",
			Data:        stored,
		},
		aigateway.Part{
			Filename:    uploaded.Filename,
			ContentType: uploaded.ContentType,
			Data:        uploaded.Data,
		},
	)
	if err != nil {
		// Upstream failures must stay distinguishable from a mismatch.
		return err
	}

	if auth.Verdict != aigateway.VerdictYes {
		// NO and RETRY collapse into one failure outcome.
		return utils.ErrFaceMismatch
	}

	s.queue.Enqueue(worker.FeedbackTask{
		UserID: user.ID,
		Image:  uploaded,
	})

	return nil
}
