package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/botalearn/plantcare/internal/domain/auth"
	"github.com/botalearn/plantcare/internal/domain/caretips"
	"github.com/botalearn/plantcare/internal/domain/plants"
	"github.com/botalearn/plantcare/internal/domain/sunlight"
	"github.com/botalearn/plantcare/internal/domain/weather"
	apperrors "github.com/botalearn/plantcare/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	authSvc     auth.Service
	plantSvc    plants.Service
	sunSvc      sunlight.Service
	weatherProv weather.Provider
	careTipsSvc caretips.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(authSvc auth.Service, plantSvc plants.Service, sunSvc sunlight.Service, weatherProv weather.Provider, careTipsSvc caretips.Service, logger *slog.Logger) *Handler {
	return &Handler{
		authSvc:     authSvc,
		plantSvc:    plantSvc,
		sunSvc:      sunSvc,
		weatherProv: weatherProv,
		careTipsSvc: careTipsSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// Register creates a new account.
func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "register_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "email_exists"), apperrors.IsCode(err, "username_exists"):
			status = http.StatusConflict
			code = appCode(err)
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for a token pair.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "login_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "invalid_credentials"):
			status = http.StatusUnauthorized
			code = "invalid_credentials"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh rotates an access token using a refresh token.
func (h *Handler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		status := http.StatusInternalServerError
		code := "refresh_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "invalid_token"):
			status = http.StatusUnauthorized
			code = "invalid_token"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Profile returns the authenticated user's account.
func (h *Handler) Profile(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	user, err := h.authSvc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		status := http.StatusInternalServerError
		code := "profile_failed"
		if apperrors.IsCode(err, "user_not_found") {
			status = http.StatusNotFound
			code = "user_not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreatePlant adds a catalog entry.
func (h *Handler) CreatePlant(c *gin.Context) {
	var req plants.CreatePlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	plant, err := h.plantSvc.CreatePlant(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "plant_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "plant_exists"):
			status = http.StatusConflict
			code = "plant_exists"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusCreated, plant)
}

// LinkPlant associates a catalog plant with the authenticated user.
func (h *Handler) LinkPlant(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	var req plants.LinkPlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	link, err := h.plantSvc.LinkPlant(c.Request.Context(), claims.UserID, req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "plant_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "plant_not_found"):
			status = http.StatusNotFound
			code = "plant_not_found"
		case apperrors.IsCode(err, "plant_already_linked"):
			status = http.StatusConflict
			code = "plant_already_linked"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusCreated, link)
}

// ListPlants returns the authenticated user's plants with catalog details.
func (h *Handler) ListPlants(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	views, err := h.plantSvc.ListUserPlants(c.Request.Context(), claims.UserID)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "plant_failed", errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"plants": views})
}

// SunlightReport computes the solar exposure report for a coordinate.
func (h *Handler) SunlightReport(c *gin.Context) {
	lat, lng, ok := h.bindCoordinates(c)
	if !ok {
		return
	}

	query := sunlight.Query{Latitude: lat, Longitude: lng}
	if raw := c.Query("lux"); raw != "" {
		lux, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "lux must be a number", err))
			return
		}
		query.MeasuredLux = &lux
	}

	report, err := h.sunSvc.Estimate(c.Request.Context(), query)
	if err != nil {
		status := http.StatusInternalServerError
		code := "sunlight_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "sun_data_error"):
			status = http.StatusBadGateway
			code = "sun_data_error"
		case apperrors.IsCode(err, "computation_error"):
			code = "computation_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, report)
}

// Conditions returns the current temperature and humidity for a coordinate.
func (h *Handler) Conditions(c *gin.Context) {
	lat, lng, ok := h.bindCoordinates(c)
	if !ok {
		return
	}

	conditions, err := h.weatherProv.Current(c.Request.Context(), lat, lng)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadGateway, "weather_error", errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, conditions)
}

// CareTips returns AI generated care suggestions for a plant.
func (h *Handler) CareTips(c *gin.Context) {
	var req caretips.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.careTipsSvc.Generate(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "care_tips_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "weather_error"), apperrors.IsCode(err, "sun_data_error"), apperrors.IsCode(err, "llm_error"):
			status = http.StatusBadGateway
			code = appCode(err)
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) bindCoordinates(c *gin.Context) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "lat must be a number", err))
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "lng must be a number", err))
		return 0, 0, false
	}
	return lat, lng, true
}

func appCode(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "internal_error"
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
