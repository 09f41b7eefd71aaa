package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/authgate/authgate/internal/audit"
	"github.com/authgate/authgate/internal/auth"
)

// registerRequest is the request body for POST /api/auth/register.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// loginRequest is the request body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates a new user account.
//
// Required fields are name, email, and password. Role is optional and
// defaults to member. A duplicate email yields a 409 conflict.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Request body must be valid JSON")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeValidationError(w, "Please fill in all fields (name, email, password)")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("hashing password", "error", err)
		writeInternalError(w)
		return
	}

	user := &auth.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         auth.Role(req.Role),
	}

	// Uniqueness is enforced by the store's insert, not a separate
	// pre-check, so concurrent registrations cannot race past each other.
	if err := s.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			writeConflict(w, "Email already exists")
			return
		}
		s.logger.Error("creating user", "error", err, "email", req.Email)
		writeInternalError(w)
		return
	}

	s.auditLog(r.Context(), auditEvent{
		Action: audit.ActionRegister,
		UserID: user.ID,
		Email:  user.Email,
	})

	writeSuccess(w, http.StatusCreated, "User registered successfully", map[string]any{
		"id": user.ID,
	})
}

// handleLogin verifies credentials and issues a session token.
//
// Unknown email and wrong password produce identical responses so the
// endpoint never confirms whether an email is registered.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Request body must be valid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeValidationError(w, "Please fill in all fields (email, password)")
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			s.auditLog(r.Context(), auditEvent{
				Action: audit.ActionLoginDenied,
				Email:  req.Email,
			})
			writeInvalidCredentials(w)
			return
		}
		s.logger.Error("looking up user", "error", err, "email", req.Email)
		writeInternalError(w)
		return
	}

	ok, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("verifying password", "error", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}
	if !ok {
		s.auditLog(r.Context(), auditEvent{
			Action: audit.ActionLoginDenied,
			UserID: user.ID,
			Email:  req.Email,
		})
		writeInvalidCredentials(w)
		return
	}

	token, err := auth.GenerateAccessToken(user.ID, s.secCfg.JWT.Secret, s.secCfg.JWT.AccessTokenDuration())
	if err != nil {
		s.logger.Error("generating session token", "error", err, "user_id", user.ID)
		writeInternalError(w)
		return
	}

	s.auditLog(r.Context(), auditEvent{
		Action: audit.ActionLogin,
		UserID: user.ID,
		Email:  user.Email,
	})

	writeSuccess(w, http.StatusOK, "User logged in successfully", map[string]any{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"accessToken": token,
	})
}
