package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/deppfellow/orderhub/internal/config"
	"github.com/deppfellow/orderhub/internal/errs"
	"github.com/deppfellow/orderhub/internal/handler"
	"github.com/deppfellow/orderhub/internal/middleware"
	"github.com/deppfellow/orderhub/internal/model"
	"github.com/deppfellow/orderhub/internal/repository"
	"github.com/deppfellow/orderhub/internal/seed"
	"github.com/deppfellow/orderhub/internal/server"
	"github.com/deppfellow/orderhub/internal/service"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router *echo.Echo
	repos  *repository.Repositories
	stats  seed.Stats
}

func newTestApp(t *testing.T, configure ...func(*config.Config)) *testApp {
	t.Helper()

	cfg := config.Default()
	data := filepath.Join("..", "..", "data")
	cfg.Seed = config.SeedConfig{
		UsersFile:  filepath.Join(data, "users.json"),
		OrdersFile: filepath.Join(data, "orders.json"),
		OffersFile: filepath.Join(data, "offers.json"),
	}
	for _, fn := range configure {
		fn(cfg)
	}

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.DB.Close() })

	stats, err := seed.Load(context.Background(), s.DB.DB, cfg.Seed, &logger)
	require.NoError(t, err)

	repos := repository.NewRepositories(s)
	services, err := service.NewService(s, repos)
	require.NoError(t, err)

	return &testApp{
		router: NewRouter(s, handler.NewHandlers(s, services), middleware.NewMiddlewares(s)),
		repos:  repos,
		stats:  stats,
	}
}

func (a *testApp) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestListReturnsSeededRows(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		path string
		want int
	}{
		{"/users", app.stats.Users},
		{"/orders", app.stats.Orders},
		{"/offers", app.stats.Offers},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := app.do(t, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Len(t, decode[[]map[string]interface{}](t, rec), tt.want)
		})
	}
}

func TestPutPatchesUser(t *testing.T) {
	app := newTestApp(t)

	before := decode[model.User](t, app.do(t, http.MethodGet, "/users/1", ""))
	require.Equal(t, 30, *before.Age)

	rec := app.do(t, http.MethodPut, "/users/1", `{"age": 31}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 31, *decode[model.User](t, rec).Age)

	rec = app.do(t, http.MethodGet, "/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	after := decode[model.User](t, rec)
	assert.Equal(t, 31, *after.Age)
	assert.Equal(t, "Ann", *after.FirstName)
	assert.Equal(t, before.LastName, after.LastName)
	assert.Equal(t, before.Email, after.Email)
	assert.Equal(t, before.Phone, after.Phone)
}

func TestPostOrderReturnsAssignedID(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/orders", `{"name": "Fix sink", "price": 100, "customer_id": 1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[model.Order](t, rec)
	assert.Greater(t, created.ID, app.stats.Orders)
	assert.Equal(t, 100, *created.Price)
	assert.Equal(t, 1, *created.CustomerID)
	assert.Nil(t, created.ExecutorID)

	rec = app.do(t, http.MethodGet, "/orders/"+strconv.Itoa(created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[model.Order](t, rec))
}

func TestPostOfferCreatesOffer(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/offers", `{"id": 50, "order_id": 2, "executor_id": 4}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id": 50, "order_id": 2, "executor_id": 4}`, rec.Body.String())

	n, err := app.repos.Offers.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(app.stats.Offers+1), n)
}

func TestDeleteConfirmsWithText(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodDelete, "/users/5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain)
	assert.Equal(t, "user 5 deleted", rec.Body.String())

	rec = app.do(t, http.MethodGet, "/users/5", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMissingOfferIsNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodDelete, "/offers/999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, "Offer not found", body.Message)

	n, err := app.repos.Offers.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(app.stats.Offers), n)
}

func TestMissingIDsAreNotFound(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		method  string
		path    string
		body    string
		message string
	}{
		{http.MethodGet, "/users/999", "", "User not found"},
		{http.MethodPut, "/orders/999", `{"price": 1}`, "Order not found"},
		{http.MethodDelete, "/orders/999", "", "Order not found"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := app.do(t, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, tt.message, decode[errs.HTTPError](t, rec).Message)
		})
	}
}

func TestBadRequests(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"non numeric id", http.MethodGet, "/users/abc", ""},
		{"zero id", http.MethodDelete, "/offers/0", ""},
		{"malformed json", http.MethodPost, "/users", `{"first_name":`},
		{"wrong type", http.MethodPut, "/users/1", `{"age": "old"}`},
		{"duplicate id", http.MethodPost, "/users", `{"id": 1, "first_name": "Dup"}`},
		{"negative body id", http.MethodPost, "/users", `{"id": -4, "first_name": "Neg"}`},
		{"zero body id", http.MethodPost, "/offers", `{"id": 0, "order_id": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, http.StatusBadRequest, decode[errs.HTTPError](t, rec).Status)
		})
	}

	user := decode[model.User](t, app.do(t, http.MethodGet, "/users/1", ""))
	assert.NotEqual(t, "Dup", *user.FirstName)

	users := decode[[]model.User](t, app.do(t, http.MethodGet, "/users", ""))
	assert.Len(t, users, app.stats.Users)
}

func TestCreateRejectsNonPositiveBodyID(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/orders", `{"id": -4, "name": "Fix sink"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, []errs.FieldError{{Field: "id", Error: "must be at least 1"}}, body.Errors)

	rec = app.do(t, http.MethodPost, "/orders", `{"id": null, "name": "Fix sink"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Positive(t, decode[model.Order](t, rec).ID)
}

func TestCancelledRequestKeepsStore(t *testing.T) {
	app := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPut, "/users/1", strings.NewReader(`{"age": 31}`)).WithContext(ctx)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	app.router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodDelete, "/offers/1", nil).WithContext(ctx)
	app.router.ServeHTTP(httptest.NewRecorder(), req)

	rec := app.do(t, http.MethodGet, "/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 31, *decode[model.User](t, rec).Age)

	rec = app.do(t, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]model.Order](t, rec), app.stats.Orders)

	n, err := app.repos.Offers.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(app.stats.Offers-1), n)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/customers", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode[errs.HTTPError](t, rec).Message)
}

func TestStatusReportsTableCounts(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
		Checks struct {
			Tables map[string]int `json:"tables"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, map[string]int{
		"users":  app.stats.Users,
		"orders": app.stats.Orders,
		"offers": app.stats.Offers,
	}, body.Checks.Tables)
}

func TestRequestIDIsEchoed(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(middleware.RequestIDHeader))
	assert.NotEmpty(t, app.do(t, http.MethodGet, "/users", "").Header().Get(middleware.RequestIDHeader))
}

func TestRateLimitRejectsBursts(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 1
	})

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/users", "").Code)

	rec := app.do(t, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decode[errs.HTTPError](t, rec).Code)
}
