package usecase

import (
	"context"
	"io"
	"testing"

	"nomadnest/pkg/logger"
	"nomadnest/pkg/queue"
	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/repo"
	"nomadnest/services/forum/internal/repo/inmem"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event queue.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e queue.Event) bool { return e.Type == eventType })
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard)
}

// seedUser registers a user and applies the given role and status directly.
func seedUser(t *testing.T, store *repo.Store, email string, role entity.Role, status entity.Status) *entity.User {
	t.Helper()
	ctx := context.Background()

	user := &entity.User{Name: email, Email: email, Role: entity.RoleUser, Status: entity.StatusRegular}
	inserted, err := store.Users.InsertIfAbsent(ctx, user)
	require.NoError(t, err)
	require.True(t, inserted)

	_, err = store.Users.UpdateByEmail(ctx, email, entity.UserPatch{Role: &role, Status: &status})
	require.NoError(t, err)
	return user
}

func newStore() *repo.Store {
	return inmem.NewStore()
}
