package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"reliefsupply/service"

	"github.com/sirupsen/logrus"
)

// Authenticator is the auth flow the user routes depend on.
type Authenticator interface {
	Register(ctx context.Context, in service.RegisterInput) error
	Login(ctx context.Context, email, password string) (string, error)
}

type UserHandler struct {
	Auth Authenticator
	Log  logrus.FieldLogger
}

// Register handler
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if err := h.Auth.Register(r.Context(), in); err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			writeJSON(w, http.StatusBadRequest, ApiResponse{
				Success: false,
				Message: "User already exists",
			})
			return
		}
		if !errors.Is(err, service.ErrMissingCredentials) {
			h.Log.WithError(err).Error("registration failed")
		}
		writeFault(w, err, "registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "User registered successfully",
	})
}

// Login handler
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	token, err := h.Auth.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, ApiResponse{
				Success: false,
				Message: "Invalid email or password",
			})
			return
		}
		h.Log.WithError(err).Error("login failed")
		writeFault(w, err, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Login successful",
		Data:    map[string]string{"token": token},
	})
}
