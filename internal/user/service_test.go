package user

import (
	"context"
	"strings"
	"testing"

	"bluestock_client/internal/common"
	"bluestock_client/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepository struct {
	users map[string]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[string]*User)}
}

func (r *fakeRepository) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) || existing.MobileNumber == u.MobileNumber {
			return common.ErrConflict.WithDetails("A user with this email or mobile number already exists.")
		}
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeRepository) FindByMobileNumber(_ context.Context, mobile string) (*User, error) {
	for _, u := range r.users {
		if u.MobileNumber == mobile {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeRepository) Update(_ context.Context, u *User) error {
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func janeDraft() shared.RegisterRequest {
	return shared.RegisterRequest{
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		MobileNumber: "9876543210",
		Gender:       shared.GenderFemale,
		Password:     "s3cret-pass",
	}
}

func TestService_CreateVerified(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo, zap.NewNop())

	u, err := svc.CreateVerified(ctx, janeDraft())
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.True(t, u.IsMobileVerified)
	assert.False(t, u.IsEmailVerified)
	assert.Equal(t, "f", u.Gender)

	// The stored credential is a hash, never the password itself.
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")))
}

func TestService_CreateVerifiedDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository(), zap.NewNop())

	_, err := svc.CreateVerified(ctx, janeDraft())
	require.NoError(t, err)

	_, err = svc.CreateVerified(ctx, janeDraft())
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 409, apiErr.StatusCode)
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo, zap.NewNop())

	created, err := svc.CreateVerified(ctx, janeDraft())
	require.NoError(t, err)
	require.Nil(t, created.LastLoginAt)

	u, err := svc.Authenticate(ctx, "jane@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.NotNil(t, u.LastLoginAt)
}

func TestService_AuthenticateBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository(), zap.NewNop())

	_, err := svc.CreateVerified(ctx, janeDraft())
	require.NoError(t, err)

	for name, attempt := range map[string][2]string{
		"wrong password": {"jane@example.com", "nope"},
		"unknown email":  {"ghost@example.com", "s3cret-pass"},
	} {
		_, err := svc.Authenticate(ctx, attempt[0], attempt[1])
		apiErr, ok := common.IsAPIError(err)
		require.True(t, ok, name)
		assert.Equal(t, 401, apiErr.StatusCode, name)
	}
}

func TestService_EmailTaken(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository(), zap.NewNop())

	taken, err := svc.EmailTaken(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.False(t, taken)

	_, err = svc.CreateVerified(ctx, janeDraft())
	require.NoError(t, err)

	taken, err = svc.EmailTaken(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestService_MobileTaken(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository(), zap.NewNop())

	taken, err := svc.MobileTaken(ctx, "9876543210")
	require.NoError(t, err)
	assert.False(t, taken)

	_, err = svc.CreateVerified(ctx, janeDraft())
	require.NoError(t, err)

	taken, err = svc.MobileTaken(ctx, "9876543210")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUser_ToIdentityOmitsCredential(t *testing.T) {
	u := &User{
		ID:               "user-1",
		Email:            "jane@example.com",
		PasswordHash:     "$2a$10$abcdefg",
		FullName:         "Jane Doe",
		MobileNumber:     "9876543210",
		Gender:           "f",
		IsMobileVerified: true,
	}
	identity := u.ToIdentity()
	assert.Equal(t, shared.GenderFemale, identity.Gender)
	assert.Equal(t, "Jane Doe", identity.FullName)
	assert.True(t, identity.IsMobileVerified)
}
