package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/userkit/account-service/internal/domain/entity"
	"github.com/userkit/account-service/internal/domain/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func userArg(v any) *entity.User {
	if v == nil {
		return nil
	}
	return v.(*entity.User)
}

// fakeUOW hands out one repository and records checkpoint calls. The tests
// drive use cases directly, so the transaction lifecycle itself is out of
// scope here.
type fakeUOW struct {
	users      repository.UserRepository
	committed  bool
	rolledBack bool
}

func (f *fakeUOW) Users() repository.UserRepository { return f.users }
func (f *fakeUOW) Commit(context.Context) error     { f.committed = true; return nil }
func (f *fakeUOW) Rollback(context.Context) error   { f.rolledBack = true; return nil }

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (fakeHasher) Verify(hashed, plain string) bool  { return hashed == "hashed:"+plain }

type fakeIssuer struct {
	err error
}

func (f fakeIssuer) Issue(userID uuid.UUID, username, email string) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return "token-" + username, time.Now().Add(time.Hour), nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func makeUser(t *testing.T, username, email, password string) *entity.User {
	t.Helper()
	u, err := entity.NewUser(username, email)
	require.NoError(t, err)
	require.NoError(t, u.SetPassword("hashed:"+password))
	return u
}
