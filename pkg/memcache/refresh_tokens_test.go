package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsumeIsSingleUse(t *testing.T) {
	store := NewRefreshTokens()
	store.Set("jti-1", "user-1", time.Minute)

	assert.Equal(t, "user-1", store.Consume("jti-1"))
	assert.Equal(t, "", store.Consume("jti-1"))
}

func TestConsumeUnknownToken(t *testing.T) {
	store := NewRefreshTokens()
	assert.Equal(t, "", store.Consume("never-set"))
}

func TestExpiredTokenIsNotReturned(t *testing.T) {
	store := NewRefreshTokens()
	store.Set("jti-2", "user-2", -time.Second)

	assert.Equal(t, "", store.Consume("jti-2"))
}

func TestRevokeUserDropsAllTokens(t *testing.T) {
	store := NewRefreshTokens()
	store.Set("jti-a", "user-1", time.Minute)
	store.Set("jti-b", "user-1", time.Minute)
	store.Set("jti-c", "user-2", time.Minute)

	store.RevokeUser("user-1")

	assert.Equal(t, "", store.Consume("jti-a"))
	assert.Equal(t, "", store.Consume("jti-b"))
	// other users keep theirs
	assert.Equal(t, "user-2", store.Consume("jti-c"))
}

func TestRevokeUnknownUserIsANoop(t *testing.T) {
	store := NewRefreshTokens()
	store.Set("jti-d", "user-3", time.Minute)

	store.RevokeUser("nobody")

	assert.Equal(t, "user-3", store.Consume("jti-d"))
}
