package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/conveyancing-service/internal/api/http/handlers"
	"github.com/spec-kit/conveyancing-service/internal/auth"
	"github.com/spec-kit/conveyancing-service/internal/config"
	"github.com/spec-kit/conveyancing-service/internal/domain"
	"github.com/spec-kit/conveyancing-service/internal/observability"
	"github.com/spec-kit/conveyancing-service/internal/persistence"
	"github.com/spec-kit/conveyancing-service/internal/report"
	"github.com/spec-kit/conveyancing-service/internal/service"
)

const testSecret = "test-secret"

// -------- in-memory repositories --------

type memUserRepo struct {
	users map[string]*domain.User
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memCaseRepo struct {
	users *memUserRepo
	cases map[string]domain.Case
}

func (r *memCaseRepo) Create(_ context.Context, c *domain.Case) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.cases[c.ID] = *c
	return nil
}

func (r *memCaseRepo) ListAll(_ context.Context) ([]domain.CaseWithOwner, error) {
	var result []domain.CaseWithOwner
	for _, c := range r.cases {
		item := domain.CaseWithOwner{Case: c}
		if user, ok := r.users.users[c.CreatedBy]; ok {
			item.OwnerUsername = user.Username
		}
		result = append(result, item)
	}
	return result, nil
}

func (r *memCaseRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Case, error) {
	var result []domain.Case
	for _, c := range r.cases {
		if c.CreatedBy == ownerID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *memCaseRepo) GetByID(_ context.Context, id string) (*domain.Case, error) {
	c, ok := r.cases[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := c
	return &copied, nil
}

func (r *memCaseRepo) Update(_ context.Context, c *domain.Case) error {
	if _, ok := r.cases[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	c.UpdatedAt = time.Now()
	r.cases[c.ID] = *c
	return nil
}

func (r *memCaseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.cases[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.cases, id)
	return nil
}

type memMessageRepo struct {
	messages []domain.Message
}

func (r *memMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	msg.CreatedAt = time.Now()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *memMessageRepo) ListByCase(_ context.Context, caseID string) ([]domain.Message, error) {
	var result []domain.Message
	for _, msg := range r.messages {
		if msg.CaseID == caseID {
			result = append(result, msg)
		}
	}
	return result, nil
}

func (r *memMessageRepo) GetByID(_ context.Context, caseID, messageID string) (*domain.Message, error) {
	for _, msg := range r.messages {
		if msg.ID == messageID && msg.CaseID == caseID {
			copied := msg
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memMessageRepo) Delete(_ context.Context, id string) error {
	for i, msg := range r.messages {
		if msg.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

// -------- fixture --------

type testEnv struct {
	app    *fiber.App
	users  *memUserRepo
	tokens *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userRepo := &memUserRepo{users: map[string]*domain.User{}}
	caseRepo := &memCaseRepo{users: userRepo, cases: map[string]domain.Case{}}
	messageRepo := &memMessageRepo{}

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             testSecret,
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}

	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: userRepo})
	caseService := service.NewCaseService(caseRepo, nil)
	messageService := service.NewMessageService(messageRepo, caseRepo, nil)

	logger := zap.NewNop()
	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:   handlers.NewHealthHandler("test", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Users:    handlers.NewUsersHandler(authService),
		Cases:    handlers.NewCasesHandler(caseService),
		Messages: handlers.NewMessagesHandler(messageService),
		Reports: handlers.NewReportsHandler(caseService, report.NewGenerator(config.ReportConfig{
			TemplatePath: "testdata/absent.docx",
			Filename:     "Weekly_Report.docx",
		})),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
	})

	return &testEnv{app: app, users: userRepo, tokens: authService.TokenManager()}
}

func (e *testEnv) seedUser(t *testing.T, id, username string, isAdmin bool) string {
	t.Helper()
	e.users.users[id] = &domain.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		IsAdmin:  isAdmin,
	}
	token, _, err := e.tokens.GenerateToken(id)
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, target, token string, body any) *nethttp.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *nethttp.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return parsed
}

// -------- scenarios --------

func TestUpdateCase_AuthorizationMatrix(t *testing.T) {
	env := newTestEnv(t)
	aliceToken := env.seedUser(t, "user-a", "alice", false)
	bobToken := env.seedUser(t, "user-b", "bob", false)
	adminToken := env.seedUser(t, "user-r", "root", true)

	resp := env.request(t, "POST", "/api/cases", aliceToken, map[string]any{"reference": "REF-1"})
	require.Equal(t, 201, resp.StatusCode)
	created := decodeBody(t, resp)["data"].(map[string]any)
	caseID := created["id"].(string)
	assert.Equal(t, "user-a", created["createdBy"])

	resp = env.request(t, "PUT", "/api/cases/"+caseID, bobToken, map[string]any{"agency": "ACME"})
	assert.Equal(t, 403, resp.StatusCode)

	resp = env.request(t, "PUT", "/api/cases/"+caseID, adminToken, map[string]any{"agency": "ACME"})
	require.Equal(t, 200, resp.StatusCode)
	updated := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "ACME", updated["agency"])
	assert.Equal(t, "user-a", updated["createdBy"])
}

func TestMessages_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	aliceToken := env.seedUser(t, "user-a", "alice", false)

	resp := env.request(t, "POST", "/api/cases", aliceToken, map[string]any{})
	require.Equal(t, 201, resp.StatusCode)
	caseID := decodeBody(t, resp)["data"].(map[string]any)["id"].(string)

	resp = env.request(t, "POST", fmt.Sprintf("/api/cases/%s/messages", caseID), aliceToken,
		map[string]any{"content": "Hello"})
	require.Equal(t, 201, resp.StatusCode)

	resp = env.request(t, "GET", fmt.Sprintf("/api/cases/%s/messages", caseID), aliceToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	items := decodeBody(t, resp)["data"].([]any)
	require.Len(t, items, 1)
	msg := items[0].(map[string]any)
	assert.Equal(t, "Hello", msg["content"])
	assert.Equal(t, "alice", msg["username"])
}

func TestReport_UnknownCase(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, "user-a", "alice", false)

	resp := env.request(t, "GET", "/api/report/missing", token, nil)
	assert.Equal(t, 404, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["message"])
}

func TestAuthGuard_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-a", "alice", false)

	claims := &auth.Claims{
		UserID: "user-a",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-a",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-3 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp := env.request(t, "GET", "/api/cases", expired, nil)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthGuard_MissingToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "GET", "/api/cases", "", nil)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthGuard_DeletedAccountNotFound(t *testing.T) {
	env := newTestEnv(t)
	token, _, err := env.tokens.GenerateToken("ghost")
	require.NoError(t, err)

	// valid token, but the account behind it no longer exists
	resp := env.request(t, "GET", "/api/users/me", token, nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestAuthGuard_QueryTokenWithNonBearerHeader(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, "user-a", "alice", false)

	req := httptest.NewRequest("GET", "/api/users/me?token="+token, nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAuthGuard_QueryTokenFallback(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, "user-a", "alice", false)

	resp := env.request(t, "GET", "/api/users/me?token="+token, "", nil)
	require.Equal(t, 200, resp.StatusCode)
	me := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "alice", me["username"])
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/api/auth/register", "", map[string]any{"username": "alice"})
	assert.Equal(t, 400, resp.StatusCode)

	payload := map[string]any{"username": "alice", "email": "alice@example.com", "password": "pw"}
	resp = env.request(t, "POST", "/api/auth/register", "", payload)
	assert.Equal(t, 201, resp.StatusCode)

	resp = env.request(t, "POST", "/api/auth/register", "", payload)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestLoginAfterRegister(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{"username": "alice", "email": "alice@example.com", "password": "pw"}
	resp := env.request(t, "POST", "/api/auth/register", "", payload)
	require.Equal(t, 201, resp.StatusCode)

	resp = env.request(t, "POST", "/api/auth/login", "",
		map[string]any{"email": "alice@example.com", "password": "pw"})
	require.Equal(t, 200, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	authData := data["auth"].(map[string]any)
	assert.NotEmpty(t, authData["token"])

	resp = env.request(t, "POST", "/api/auth/login", "",
		map[string]any{"email": "alice@example.com", "password": "wrong"})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestListMine_FiltersOwnership(t *testing.T) {
	env := newTestEnv(t)
	aliceToken := env.seedUser(t, "user-a", "alice", false)
	bobToken := env.seedUser(t, "user-b", "bob", false)

	resp := env.request(t, "POST", "/api/cases", aliceToken, map[string]any{"reference": "A"})
	require.Equal(t, 201, resp.StatusCode)
	resp = env.request(t, "POST", "/api/cases", bobToken, map[string]any{"reference": "B"})
	require.Equal(t, 201, resp.StatusCode)

	resp = env.request(t, "GET", "/api/mycases", aliceToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	items := decodeBody(t, resp)["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "user-a", items[0].(map[string]any)["createdBy"])

	// list-all is unfiltered and joins the owner's name
	resp = env.request(t, "GET", "/api/cases", bobToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	all := decodeBody(t, resp)["data"].([]any)
	assert.Len(t, all, 2)
}
