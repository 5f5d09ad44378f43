package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

// AuthHandler serves the register, login and session endpoints.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	logger      *logrus.Logger
}

// NewAuthHandler creates an AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		logger:      logger,
	}
}

func (h *AuthHandler) respond(w http.ResponseWriter, status int, resp types.AuthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.WithError(err).Error("Error encoding auth response")
	}
}

func (h *AuthHandler) fail(w http.ResponseWriter, status int, message string) {
	h.respond(w, status, types.AuthResponse{Success: false, Message: message})
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid registration data. Please check your input.")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid registration data. Please check your input.")
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusBadRequest {
			h.fail(w, status, "Invalid registration data. Please check your input.")
			return
		}
		if status == http.StatusInternalServerError {
			h.logger.WithError(err).Error("Registration error")
			h.fail(w, status, "Internal server error during registration")
			return
		}
		h.fail(w, status, err.Error())
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate token")
		h.fail(w, http.StatusInternalServerError, "Internal server error during registration")
		return
	}

	h.logger.WithField("username", user.Username).Info("User registered")
	h.respond(w, http.StatusCreated, types.AuthResponse{
		Success: true,
		Message: "User registered successfully",
		Data:    &types.AuthData{User: user, Token: token},
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid login data. Please check your input.")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid login data. Please check your input.")
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.WithError(err).Error("Login error")
			h.fail(w, status, "Internal server error during login")
			return
		}
		h.fail(w, status, err.Error())
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate token")
		h.fail(w, http.StatusInternalServerError, "Internal server error during login")
		return
	}

	h.respond(w, http.StatusOK, types.AuthResponse{
		Success: true,
		Message: "Login successful",
		Data:    &types.AuthData{User: user, Token: token},
	})
}

// Session handles GET /api/session. It must run behind middleware.OptionalAuth.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	info := types.SessionInfo{}
	if id, ok := middleware.IdentityFrom(r.Context()); ok {
		info.Authenticated = true
		info.Username = id.GetUsername()
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(info); err != nil {
		h.logger.WithError(err).Error("Error encoding session response")
	}
}

// Me handles GET /api/me. It must run behind middleware.AuthMiddleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := h.userService.Get(r.Context(), id.GetUserID())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load current user")
		h.fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		h.fail(w, http.StatusNotFound, "User not found")
		return
	}
	h.respond(w, http.StatusOK, types.AuthResponse{
		Success: true,
		Message: "OK",
		Data:    &types.AuthData{User: user},
	})
}
