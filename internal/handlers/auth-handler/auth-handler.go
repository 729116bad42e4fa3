package auth_handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/Mandalorian7773/Collabie/internal/dtos/auth_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/handlers"
	"github.com/Mandalorian7773/Collabie/internal/middleware"
	"github.com/Mandalorian7773/Collabie/internal/queue"
	auth_service "github.com/Mandalorian7773/Collabie/internal/use-case/auth-case"
	"github.com/Mandalorian7773/Collabie/state"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type AuthHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  auth_service.AuthServiceContract
}

func NewAuthHandler(state *state.AppState) *AuthHandler {
	validate := validator.New()
	_ = validate.RegisterValidation("otpval", auth_dto.OTPValidator)
	return &AuthHandler{
		State:    state,
		Validate: validate,
		Service:  auth_service.NewAuthService(state, queue.NewProducer(state.Redis)),
	}
}

func setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  time.Now().Add(auth_service.RefreshTokenTTL),
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req auth_dto.RegisterRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, err := h.Service.Register(r.Context(), req)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusCreated, handlers.CreateResponse("user registered, verification code sent", *resp, handlers.RequestID(r)))
	return nil
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req auth_dto.VerifyEmailRequest
	defer r.Body.Close()

	userId := chi.URLParam(r, "userId")

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	verified, err := h.Service.VerifyEmail(r.Context(), req, userId)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("email verified", verified, handlers.RequestID(r)))
	return nil
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req auth_dto.LoginRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	device := middleware.DeviceInfoFromContext(r.Context())

	resp, err := h.Service.Login(r.Context(), req, device)
	if err != nil {
		return err
	}

	if resp.RefreshToken == nil || *resp.RefreshToken == "" {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to prepare refresh token", "server")
	}

	setRefreshCookie(w, *resp.RefreshToken)

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("login successful", *resp, handlers.RequestID(r)))
	return nil
}

// Refresh rotates the presented refresh token. The token comes from the body
// or, failing that, the cookie set at login.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req auth_dto.RefreshRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		cookie, cookieErr := r.Cookie("refresh_token")
		if cookieErr != nil || cookie.Value == "" {
			return app_error.NewAppError(http.StatusBadRequest, "Missing refresh token", "refresh_token")
		}
		req.RefreshToken = cookie.Value
	}

	device := middleware.DeviceInfoFromContext(r.Context())

	resp, err := h.Service.Refresh(r.Context(), req, device)
	if err != nil {
		return err
	}

	setRefreshCookie(w, resp.RefreshToken)

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("token refreshed", *resp, handlers.RequestID(r)))
	return nil
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req auth_dto.LogoutRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		cookie, cookieErr := r.Cookie("refresh_token")
		if cookieErr != nil || cookie.Value == "" {
			return app_error.NewAppError(http.StatusBadRequest, "Missing refresh token", "refresh_token")
		}
		req.RefreshToken = cookie.Value
	}

	if err := h.Service.Logout(r.Context(), req); err != nil {
		return err
	}

	clearRefreshCookie(w)

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("logged out", true, handlers.RequestID(r)))
	return nil
}

func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	resp, err := h.Service.LogoutAll(r.Context(), claims.Sub)
	if err != nil {
		return err
	}

	clearRefreshCookie(w)

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("all sessions revoked", *resp, handlers.RequestID(r)))
	return nil
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	var req auth_dto.ChangePasswordRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	if err := h.Service.ChangePassword(r.Context(), req, claims.Sub); err != nil {
		return err
	}

	clearRefreshCookie(w)

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("password changed, sessions revoked", true, handlers.RequestID(r)))
	return nil
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
