package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"bluestock_client/internal/common"
	"bluestock_client/internal/config"
	"bluestock_client/internal/shared"
	"bluestock_client/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memUserRepository is an in-memory user.Repository for service tests.
type memUserRepository struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: make(map[string]*user.User)}
}

func (r *memUserRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) || existing.MobileNumber == u.MobileNumber {
			return common.ErrConflict.WithDetails("A user with this email or mobile number already exists.")
		}
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *memUserRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepository) FindByID(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepository) FindByMobileNumber(_ context.Context, mobile string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.MobileNumber == mobile {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepository) Update(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func newTestService(t *testing.T) (*Service, *MemoryOTPStore, *memUserRepository) {
	t.Helper()
	repo := newMemUserRepository()
	users := user.NewService(repo, zap.NewNop())
	tokens, err := NewTokenService(&config.Config{
		JWTSecret:   "test-secret-key",
		JWTIssuer:   "bluestock-dev-gateway",
		JWTTokenTTL: time.Hour,
	})
	require.NoError(t, err)
	otps := NewMemoryOTPStore(5*time.Minute, zap.NewNop())
	return NewService(users, tokens, otps, zap.NewNop()), otps, repo
}

func registerAndVerify(t *testing.T, svc *Service, otps *MemoryOTPStore, req shared.RegisterRequest) *shared.AuthResult {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.StartRegistration(ctx, req))

	pending, err := otps.Get(ctx, req.MobileNumber)
	require.NoError(t, err)
	require.NotNil(t, pending)

	result, err := svc.VerifyOTP(ctx, req.MobileNumber, pending.Code)
	require.NoError(t, err)
	return result
}

func janeRequest() shared.RegisterRequest {
	return shared.RegisterRequest{
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		MobileNumber: "9876543210",
		Gender:       shared.GenderFemale,
		Password:     "s3cret-pass",
	}
}

func TestService_RegistrationThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, otps, _ := newTestService(t)

	created := registerAndVerify(t, svc, otps, janeRequest())
	assert.Equal(t, "Jane Doe", created.Identity.FullName)
	assert.True(t, created.Identity.IsMobileVerified)
	assert.False(t, created.Identity.IsEmailVerified)
	assert.NotEmpty(t, created.Token)

	result, err := svc.Login(ctx, "jane@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, created.Identity.ID, result.Identity.ID)
	assert.NotEmpty(t, result.Token)
}

func TestService_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, otps, _ := newTestService(t)
	registerAndVerify(t, svc, otps, janeRequest())

	_, err := svc.Login(ctx, "jane@example.com", "not-the-password")
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestService_LoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestService_StartRegistrationEmailTaken(t *testing.T) {
	ctx := context.Background()
	svc, otps, _ := newTestService(t)
	registerAndVerify(t, svc, otps, janeRequest())

	again := janeRequest()
	again.MobileNumber = "9999999999"
	err := svc.StartRegistration(ctx, again)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestService_StartRegistrationMobileTaken(t *testing.T) {
	ctx := context.Background()
	svc, otps, _ := newTestService(t)
	registerAndVerify(t, svc, otps, janeRequest())

	// New email, same mobile number. Rejected before any OTP goes out.
	again := janeRequest()
	again.Email = "john@example.com"
	err := svc.StartRegistration(ctx, again)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)

	pending, err := otps.Get(ctx, again.MobileNumber)
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestService_VerifyOTPConflictIsRejection(t *testing.T) {
	ctx := context.Background()
	svc, otps, _ := newTestService(t)
	registerAndVerify(t, svc, otps, janeRequest())

	// A draft staged before jane's account existed. The verify-time
	// uniqueness failure must come back 400-class, not as a server fault.
	stale := janeRequest()
	stale.Email = "john@example.com"
	require.NoError(t, otps.Put(ctx, PendingRegistration{Draft: stale, Code: "654321"}))

	_, err := svc.VerifyOTP(ctx, stale.MobileNumber, "654321")
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestService_VerifyOTPWrongCode(t *testing.T) {
	ctx := context.Background()
	svc, otps, _ := newTestService(t)
	req := janeRequest()
	require.NoError(t, svc.StartRegistration(ctx, req))

	pending, err := otps.Get(ctx, req.MobileNumber)
	require.NoError(t, err)
	require.NotNil(t, pending)

	wrong := "000000"
	if pending.Code == wrong {
		wrong = "000001"
	}
	_, err = svc.VerifyOTP(ctx, req.MobileNumber, wrong)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)

	// The draft survives a wrong guess; the right code still works.
	result, err := svc.VerifyOTP(ctx, req.MobileNumber, pending.Code)
	require.NoError(t, err)
	assert.Equal(t, req.Email, result.Identity.Email)
}

func TestService_VerifyOTPIsSingleUse(t *testing.T) {
	ctx := context.Background()
	svc, otps, _ := newTestService(t)
	req := janeRequest()
	require.NoError(t, svc.StartRegistration(ctx, req))

	pending, err := otps.Get(ctx, req.MobileNumber)
	require.NoError(t, err)
	require.NotNil(t, pending)

	_, err = svc.VerifyOTP(ctx, req.MobileNumber, pending.Code)
	require.NoError(t, err)

	_, err = svc.VerifyOTP(ctx, req.MobileNumber, pending.Code)
	assert.Error(t, err)
}

func TestService_VerifyOTPUnknownMobile(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.VerifyOTP(context.Background(), "0000000000", "123456")
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestService_RestagingReplacesDraft(t *testing.T) {
	ctx := context.Background()
	svc, otps, _ := newTestService(t)

	first := janeRequest()
	require.NoError(t, svc.StartRegistration(ctx, first))
	firstPending, err := otps.Get(ctx, first.MobileNumber)
	require.NoError(t, err)
	require.NotNil(t, firstPending)

	second := janeRequest()
	second.FullName = "Jane A. Doe"
	require.NoError(t, svc.StartRegistration(ctx, second))

	result := func() *shared.AuthResult {
		pending, err := otps.Get(ctx, second.MobileNumber)
		require.NoError(t, err)
		require.NotNil(t, pending)
		r, err := svc.VerifyOTP(ctx, second.MobileNumber, pending.Code)
		require.NoError(t, err)
		return r
	}()
	assert.Equal(t, "Jane A. Doe", result.Identity.FullName)
}

func TestService_Identity(t *testing.T) {
	ctx := context.Background()
	svc, otps, _ := newTestService(t)
	created := registerAndVerify(t, svc, otps, janeRequest())

	identity, err := svc.Identity(ctx, created.Identity.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Identity.Email, identity.Email)

	_, err = svc.Identity(ctx, "no-such-user")
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 401, apiErr.StatusCode)
}
