package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/famly-backend/internal/adapter/handler"
	pgRepo "github.com/marcos-nsantos/famly-backend/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/database"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/observability"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/server"
	authUC "github.com/marcos-nsantos/famly-backend/internal/usecase/auth"
)

const (
	testDBUser     = "testuser"
	testDBPassword = "testpass"
	testDBName     = "testdb"
	testJWTSecret  = "test-secret-key-for-e2e-tests"
	apiBasePath    = "/api"
)

type TestApp struct {
	Server     *httptest.Server
	Pool       *pgxpool.Pool
	Container  testcontainers.Container
	BaseURL    string
	httpClient *http.Client
}

type appOptions struct {
	issueTokens bool
}

func setupTestApp(t *testing.T, opts appOptions) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping e2e test in short mode")
	}

	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	err = database.RunMigrations(ctx, pool)
	require.NoError(t, err)

	userRepo := pgRepo.NewUserRepo(pool)
	passwordHasher := auth.NewPasswordHasher(4) // Lower cost for faster tests

	var (
		tokenIssuer    authUC.TokenIssuer
		tokenValidator middleware.TokenValidator
	)
	if opts.issueTokens {
		jwtSvc := auth.NewJWTService(testJWTSecret, 15*time.Minute)
		tokenIssuer, tokenValidator = jwtSvc, jwtSvc
	}

	authSvc := authUC.NewService(userRepo, passwordHasher, tokenIssuer)
	metrics := observability.NewMetrics()

	logger, _ := zap.NewDevelopment()
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:    handler.NewAuthHandler(authSvc, metrics),
		HealthHandler:  handler.NewHealthHandler(userRepo),
		AuthMiddleware: middleware.NewAuthMiddleware(tokenValidator, middleware.DefaultPolicy()),
		Metrics:        metrics,
		Logger:         logger,
		Environment:    "test",
	})

	ts := httptest.NewServer(router.Engine())

	return &TestApp{
		Server:    ts,
		Pool:      pool,
		Container: pgContainer,
		BaseURL:   ts.URL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (app *TestApp) cleanup(t *testing.T) {
	t.Helper()

	app.Server.Close()
	app.Pool.Close()

	ctx := context.Background()
	if err := app.Container.Terminate(ctx); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) request(method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		bodyReader = bytes.NewBufferString(b)
	default:
		jsonBody, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, app.BaseURL+apiBasePath+path, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.httpClient.Do(req)
}

func (app *TestApp) get(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodGet, path, nil, headers)
}

func (app *TestApp) post(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPost, path, body, headers)
}

func (app *TestApp) countUsers(t *testing.T, email string) int {
	t.Helper()
	var n int
	err := app.Pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM users WHERE email = $1`, email).Scan(&n)
	require.NoError(t, err)
	return n
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func parseResponse(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	body := readBody(t, resp)

	if dest != nil {
		err := json.Unmarshal([]byte(body), dest)
		require.NoError(t, err, "response body: %s", body)
	}
}

func authHeader(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
	}
}
