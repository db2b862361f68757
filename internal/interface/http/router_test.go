package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/botalearn/plantcare/internal/domain/auth"
	"github.com/botalearn/plantcare/internal/domain/caretips"
	"github.com/botalearn/plantcare/internal/domain/plants"
	"github.com/botalearn/plantcare/internal/domain/sunlight"
	"github.com/botalearn/plantcare/internal/domain/weather"
	"github.com/botalearn/plantcare/internal/infra/config"
	apperrors "github.com/botalearn/plantcare/pkg/errors"
)

func TestRouter_SunlightReportSuccess(t *testing.T) {
	report := sunlight.Report{
		Date:            "2026-06-21",
		Sunrise:         "06:00:00",
		Sunset:          "18:00:00",
		DayLength:       "12:00:00",
		SunHours:        12.0,
		TotalLightHours: 13.3,
		Timezone:        "UTC",
	}
	deps := newStubDeps()
	deps.sun.estimateFn = func(ctx context.Context, query sunlight.Query) (sunlight.Report, error) {
		require.Equal(t, 1.3521, query.Latitude)
		require.Equal(t, 103.8198, query.Longitude)
		require.Nil(t, query.MeasuredLux)
		return report, nil
	}

	recorder := performGet("/api/v1/sunlight?lat=1.3521&lng=103.8198", "", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got sunlight.Report
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, report, got)
}

func TestRouter_SunlightReportForwardsMeasuredLux(t *testing.T) {
	deps := newStubDeps()
	deps.sun.estimateFn = func(ctx context.Context, query sunlight.Query) (sunlight.Report, error) {
		require.NotNil(t, query.MeasuredLux)
		require.Equal(t, 20000.0, *query.MeasuredLux)
		return sunlight.Report{}, nil
	}

	recorder := performGet("/api/v1/sunlight?lat=0&lng=0&lux=20000", "", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_SunlightReportRejectsMalformedQuery(t *testing.T) {
	deps := newStubDeps()

	recorder := performGet("/api/v1/sunlight?lat=abc&lng=0", "", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_SunlightReportUpstreamFailure(t *testing.T) {
	deps := newStubDeps()
	deps.sun.estimateFn = func(ctx context.Context, query sunlight.Query) (sunlight.Report, error) {
		return sunlight.Report{}, apperrors.Wrap("sun_data_error", "upstream returned ERROR", nil)
	}

	recorder := performGet("/api/v1/sunlight?lat=0&lng=0", "", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusBadGateway, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "sun_data_error", errBody["error"]["code"])
}

func TestRouter_ConditionsSuccess(t *testing.T) {
	deps := newStubDeps()
	deps.weather.currentFn = func(ctx context.Context, lat, lng float64) (weather.Conditions, error) {
		return weather.Conditions{TemperatureC: 28.4, Humidity: 81}, nil
	}

	recorder := performGet("/api/v1/conditions?lat=1.35&lng=103.82", "", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got weather.Conditions
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, 28.4, got.TemperatureC)
}

func TestRouter_LoginSuccess(t *testing.T) {
	deps := newStubDeps()
	deps.auth.loginFn = func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
		require.Equal(t, "fern@example.com", req.Email)
		return auth.LoginResponse{Token: "access", RefreshToken: "refresh"}, nil
	}

	recorder := performPost("/api/v1/auth/login", `{"email":"fern@example.com","password":"secret"}`, "", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got auth.LoginResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "access", got.Token)
}

func TestRouter_LoginInvalidCredentials(t *testing.T) {
	deps := newStubDeps()
	deps.auth.loginFn = func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
		return auth.LoginResponse{}, apperrors.Wrap("invalid_credentials", "invalid email or password", nil)
	}

	recorder := performPost("/api/v1/auth/login", `{"email":"fern@example.com","password":"wrong"}`, "", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_credentials", errBody["error"]["code"])
}

func TestRouter_PlantsRequireBearerToken(t *testing.T) {
	deps := newStubDeps()

	recorder := performGet("/api/v1/plants", "", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "unauthorized", errBody["error"]["code"])
}

func TestRouter_ListPlantsWithToken(t *testing.T) {
	deps := newStubDeps()
	deps.auth.validateFn = func(ctx context.Context, token string) (auth.Claims, error) {
		require.Equal(t, "valid-token", token)
		return auth.Claims{UserID: 42}, nil
	}
	deps.plants.listFn = func(ctx context.Context, userID int64) ([]plants.UserPlantView, error) {
		require.Equal(t, int64(42), userID)
		return []plants.UserPlantView{{Name: "Pothos", Type: "vine"}}, nil
	}

	recorder := performGet("/api/v1/plants", "valid-token", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string][]plants.UserPlantView
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body["plants"], 1)
	require.Equal(t, "Pothos", body["plants"][0].Name)
}

func TestRouter_InvalidTokenRejected(t *testing.T) {
	deps := newStubDeps()
	deps.auth.validateFn = func(ctx context.Context, token string) (auth.Claims, error) {
		return auth.Claims{}, apperrors.Wrap("invalid_token", "token is expired", nil)
	}

	recorder := performGet("/api/v1/plants", "expired-token", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusForbidden, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_token", errBody["error"]["code"])
}

func TestRouter_CareTipsSuccess(t *testing.T) {
	deps := newStubDeps()
	deps.auth.validateFn = func(ctx context.Context, token string) (auth.Claims, error) {
		return auth.Claims{UserID: 42}, nil
	}
	deps.caretips.generateFn = func(ctx context.Context, req caretips.Request) (caretips.Response, error) {
		require.Equal(t, "Monstera", req.PlantName)
		return caretips.Response{
			Temperature: caretips.Section{Status: "near optimal", Emoji: "✅", Tips: []string{"keep it up"}},
		}, nil
	}

	body := `{"plantName":"Monstera","latitude":1.35,"longitude":103.82,"optimalTempC":24,"optimalHumidity":60,"optimalSunHours":6}`
	recorder := performPost("/api/v1/care-tips", body, "valid-token", newRouterUnderTest(t, deps))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got caretips.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "near optimal", got.Temperature.Status)
}

func performGet(path, token string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func performPost(path, body, token string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

type stubDeps struct {
	auth     *stubAuthService
	plants   *stubPlantService
	sun      *stubSunService
	weather  *stubWeatherProvider
	caretips *stubCareTipsService
}

func newStubDeps() stubDeps {
	return stubDeps{
		auth:     &stubAuthService{},
		plants:   &stubPlantService{},
		sun:      &stubSunService{},
		weather:  &stubWeatherProvider{},
		caretips: &stubCareTipsService{},
	}
}

func newRouterUnderTest(t *testing.T, deps stubDeps) *http.Server {
	t.Helper()
	handler := NewHandler(deps.auth, deps.plants, deps.sun, deps.weather, deps.caretips, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return NewRouter(cfg, handler, deps.auth)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubAuthService struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) (auth.UserView, error)
	loginFn    func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	validateFn func(ctx context.Context, token string) (auth.Claims, error)
	refreshFn  func(ctx context.Context, refreshToken string) (auth.LoginResponse, error)
	profileFn  func(ctx context.Context, userID int64) (auth.UserView, error)
}

func (s *stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.UserView, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, req)
	}
	return auth.UserView{}, nil
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, req)
	}
	return auth.LoginResponse{}, nil
}

func (s *stubAuthService) ValidateToken(ctx context.Context, token string) (auth.Claims, error) {
	if s.validateFn != nil {
		return s.validateFn(ctx, token)
	}
	return auth.Claims{}, apperrors.Wrap("invalid_token", "token is invalid", nil)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	if s.refreshFn != nil {
		return s.refreshFn(ctx, refreshToken)
	}
	return auth.LoginResponse{}, nil
}

func (s *stubAuthService) Profile(ctx context.Context, userID int64) (auth.UserView, error) {
	if s.profileFn != nil {
		return s.profileFn(ctx, userID)
	}
	return auth.UserView{}, nil
}

type stubPlantService struct {
	createFn func(ctx context.Context, req plants.CreatePlantRequest) (plants.Plant, error)
	linkFn   func(ctx context.Context, userID int64, req plants.LinkPlantRequest) (plants.UserPlant, error)
	listFn   func(ctx context.Context, userID int64) ([]plants.UserPlantView, error)
}

func (s *stubPlantService) CreatePlant(ctx context.Context, req plants.CreatePlantRequest) (plants.Plant, error) {
	if s.createFn != nil {
		return s.createFn(ctx, req)
	}
	return plants.Plant{}, nil
}

func (s *stubPlantService) LinkPlant(ctx context.Context, userID int64, req plants.LinkPlantRequest) (plants.UserPlant, error) {
	if s.linkFn != nil {
		return s.linkFn(ctx, userID, req)
	}
	return plants.UserPlant{}, nil
}

func (s *stubPlantService) ListUserPlants(ctx context.Context, userID int64) ([]plants.UserPlantView, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID)
	}
	return nil, nil
}

type stubSunService struct {
	estimateFn func(ctx context.Context, query sunlight.Query) (sunlight.Report, error)
}

func (s *stubSunService) Estimate(ctx context.Context, query sunlight.Query) (sunlight.Report, error) {
	if s.estimateFn != nil {
		return s.estimateFn(ctx, query)
	}
	return sunlight.Report{}, nil
}

type stubWeatherProvider struct {
	currentFn func(ctx context.Context, lat, lng float64) (weather.Conditions, error)
}

func (s *stubWeatherProvider) Current(ctx context.Context, lat, lng float64) (weather.Conditions, error) {
	if s.currentFn != nil {
		return s.currentFn(ctx, lat, lng)
	}
	return weather.Conditions{}, nil
}

type stubCareTipsService struct {
	generateFn func(ctx context.Context, req caretips.Request) (caretips.Response, error)
}

func (s *stubCareTipsService) Generate(ctx context.Context, req caretips.Request) (caretips.Response, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, req)
	}
	return caretips.Response{}, nil
}
