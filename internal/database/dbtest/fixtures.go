package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/runwayhq/runway/internal/database"
	"github.com/runwayhq/runway/internal/database/types"
)

// SeedUser inserts a user with the given role.
func SeedUser(t *testing.T, client database.Client, name string, role types.UserRole) *types.User {
	t.Helper()

	id := uuid.New().String()
	user := &types.User{
		ID:             id,
		Name:           name,
		Email:          name + "-" + id[:8] + "@example.com",
		Role:           role,
		WaitlistStatus: types.WaitlistStatusNone,
		CreatedAt:      time.Now(),
	}

	if err := client.Model().User().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	return user
}

// SeedSession inserts a session for the user and returns its bearer token.
func SeedSession(t *testing.T, client database.Client, userID string, expiresAt time.Time) string {
	t.Helper()

	session := &types.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	if err := client.Model().User().CreateSession(context.Background(), session); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	return session.Token
}

// SeedApplication inserts a pending application submitted at the given time.
func SeedApplication(
	t *testing.T, client database.Client, applicantID string, submittedAt time.Time,
) *types.DesignApplication {
	t.Helper()

	application := &types.DesignApplication{
		ID:          uuid.New().String(),
		ApplicantID: applicantID,
		DesignName:  "Design " + uuid.New().String()[:8],
		Status:      types.ApplicationStatusPending,
		SubmittedAt: submittedAt,
	}

	if err := client.Model().Application().Create(context.Background(), application); err != nil {
		t.Fatalf("failed to seed application: %v", err)
	}

	return application
}
