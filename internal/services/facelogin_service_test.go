package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pulse/internal/infra"
	"pulse/internal/models/db_models"
	"pulse/pkg/aigateway"
	"pulse/pkg/utils"
	"pulse/pkg/worker"
)

func faceLoginFixture(t *testing.T, verdict aigateway.Verdict, gatewayErr error) (FaceLoginServiceInterface, *db_models.User, *mockGateway, *mockEnqueuer, *infra.FileStore) {
	t.Helper()

	userRepo := &mockUserRepo{}
	gateway := &mockGateway{}
	queue := &mockEnqueuer{}
	fileStore := testFileStore(t)

	user := testUser(db_models.RoleEmployee)
	path, err := fileStore.Save("photos", ".jpg", []byte("stored-reference"))
	require.NoError(t, err)
	user.PhotoPath = path

	userRepo.On("FindById", mock.Anything, user.ID.String()).Return(user, nil)

	if gatewayErr != nil {
		gateway.On("Authorize", mock.Anything, mock.Anything, mock.Anything).Return(nil, gatewayErr)
	} else {
		gateway.On("Authorize", mock.Anything, mock.Anything, mock.Anything).
			Return(&aigateway.Authorization{Verdict: verdict}, nil)
	}
	queue.On("Enqueue", mock.Anything).Return(true)

	svc := NewFaceLoginService(userRepo, fileStore, gateway, queue)
	return svc, user, gateway, queue, fileStore
}

func TestVerifyPhotoMatchQueuesDeferredFeedback(t *testing.T) {
	svc, user, _, queue, _ := faceLoginFixture(t, aigateway.VerdictYes, nil)

	err := svc.VerifyPhoto(context.Background(), user.ID.String(), testPNG(t), "selfie.png")
	require.NoError(t, err)

	queue.AssertCalled(t, "Enqueue", mock.MatchedBy(func(task worker.FeedbackTask) bool {
		return task.UserID == user.ID && task.Image != nil && len(task.Image.Data) > 0
	}))
}

func TestVerifyPhotoMismatch(t *testing.T) {
	for _, verdict := range []aigateway.Verdict{aigateway.VerdictNo, aigateway.VerdictRetry} {
		t.Run(string(verdict), func(t *testing.T) {
			svc, user, _, queue, _ := faceLoginFixture(t, verdict, nil)

			err := svc.VerifyPhoto(context.Background(), user.ID.String(), testPNG(t), "selfie.png")
			assert.ErrorIs(t, err, utils.ErrFaceMismatch)
			queue.AssertNotCalled(t, "Enqueue", mock.Anything)
		})
	}
}

func TestVerifyPhotoUpstreamFailureIsNotAMismatch(t *testing.T) {
	svc, user, _, queue, _ := faceLoginFixture(t, "", aigateway.ErrUnreachable)

	err := svc.VerifyPhoto(context.Background(), user.ID.String(), testPNG(t), "selfie.png")
	assert.NotErrorIs(t, err, utils.ErrFaceMismatch)
	assert.True(t, aigateway.IsUpstreamError(err))
	queue.AssertNotCalled(t, "Enqueue", mock.Anything)
}

func TestVerifyPhotoWithoutReferencePhoto(t *testing.T) {
	userRepo := &mockUserRepo{}
	gateway := &mockGateway{}
	queue := &mockEnqueuer{}

	user := testUser(db_models.RoleEmployee)
	user.PhotoPath = ""
	userRepo.On("FindById", mock.Anything, user.ID.String()).Return(user, nil)

	svc := NewFaceLoginService(userRepo, testFileStore(t), gateway, queue)
	err := svc.VerifyPhoto(context.Background(), user.ID.String(), testPNG(t), "selfie.png")

	assert.ErrorIs(t, err, utils.ErrNoReferencePhoto)
	gateway.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyPhotoRejectsBadUpload(t *testing.T) {
	svc, user, gateway, _, _ := faceLoginFixture(t, aigateway.VerdictYes, nil)

	err := svc.VerifyPhoto(context.Background(), user.ID.String(), []byte("not an image"), "a.txt")
	assert.ErrorIs(t, err, utils.ErrInvalidImage)
	gateway.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything, mock.Anything)
}
