package integration

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"bluestock_client/internal/analytics"
	"bluestock_client/internal/app"
	"bluestock_client/internal/auth"
	"bluestock_client/internal/authflow"
	"bluestock_client/internal/company"
	"bluestock_client/internal/config"
	"bluestock_client/internal/gateway"
	"bluestock_client/internal/jobs"
	"bluestock_client/internal/platform/database"
	"bluestock_client/internal/session"
	"bluestock_client/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupGateway wires a full dev gateway on a throwaway sqlite database and
// serves it from an httptest server. The returned OTP store lets tests read
// the code a real user would receive by SMS.
func setupGateway(t *testing.T) (*httptest.Server, *auth.MemoryOTPStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	cfg := &config.Config{
		GinMode:       gin.TestMode,
		LogLevel:      "silent",
		DBDriver:      "sqlite",
		DBPath:        filepath.Join(t.TempDir(), "gateway.db"),
		JWTSecret:     "integration-test-secret",
		JWTIssuer:     "bluestock-dev-gateway",
		JWTTokenTTL:   time.Hour,
		OTPTTL:        5 * time.Minute,
		OTPSweepSpec:  "@every 1m",
		ServerTimeout: 10 * time.Second,
	}

	db, err := database.NewGORM(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseGORMDB(db) })
	require.NoError(t, user.Migrate(db))

	users := user.NewService(user.NewGORMRepository(db), logger)
	tokens, err := auth.NewTokenService(cfg)
	require.NoError(t, err)
	otps := auth.NewMemoryOTPStore(cfg.OTPTTL, logger)

	authService := auth.NewService(users, tokens, otps, logger)
	companies := company.NewStore()

	server, err := app.NewServer(
		cfg,
		logger,
		tokens,
		auth.NewHandler(authService, logger),
		company.NewHandler(companies, logger),
		analytics.NewHandler(companies),
		jobs.NewOTPExpiryJob(otps, logger, cfg),
	)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts, otps
}

// clientStack is the client core wired against a test gateway, the way the
// bluestock binary assembles it.
type clientStack struct {
	cfg      *config.Config
	store    *session.Store
	login    *authflow.LoginController
	register *authflow.RegistrationController
	authed   *http.Client
}

func setupClient(t *testing.T, gatewayURL string) *clientStack {
	t.Helper()
	logger := zap.NewNop()

	cfg := &config.Config{
		GatewayBaseURL: gatewayURL + "/api",
		RequestTimeout: 5 * time.Second,
		TokenFilePath:  filepath.Join(t.TempDir(), "token"),
	}

	store := session.NewStore(session.NewFileStorage(cfg.TokenFilePath), logger)
	gw := gateway.NewHTTPClient(cfg, logger)

	return &clientStack{
		cfg:      cfg,
		store:    store,
		login:    authflow.NewLoginController(gw, store, logger),
		register: authflow.NewRegistrationController(gw, store, logger),
		authed: &http.Client{
			Transport: gateway.NewAuthTransport(store, http.DefaultTransport, logger),
			Timeout:   cfg.RequestTimeout,
		},
	}
}
