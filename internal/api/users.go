package api

import (
	"errors"
	"net/http"

	"github.com/authgate/authgate/internal/auth"
)

// handleCurrentUser returns the profile of the authenticated user.
func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeUnauthenticated(w, "Access token not found")
		return
	}

	user, err := s.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		// A valid token for a deleted account behaves like no token.
		if errors.Is(err, auth.ErrUserNotFound) {
			writeUnauthenticated(w, "This user is not found")
			return
		}
		s.logger.Error("loading current user", "error", err, "user_id", claims.UserID)
		writeInternalError(w)
		return
	}

	writeSuccess(w, http.StatusOK, "Current user data", map[string]any{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// handleAdminOnly confirms access to the admin-gated route.
func (s *Server) handleAdminOnly(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "Only admins can access this route!", nil)
}

// handleModeratorOnly confirms access to the moderator-gated route.
func (s *Server) handleModeratorOnly(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "Only admins and moderators can access this route!", nil)
}
