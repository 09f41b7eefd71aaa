package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/authgate/authgate/internal/auth"
)

func TestRegister_Success(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register",
		map[string]string{"name": "Ann", "email": "a@x.com", "password": "secret"}, "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("success = false, want true")
	}
	if env.Message != "User registered successfully" {
		t.Errorf("message = %q", env.Message)
	}
	if env.ErrorName != "" {
		t.Errorf("errorName = %q, want empty", env.ErrorName)
	}
	if id, _ := env.Meta["id"].(string); id == "" {
		t.Errorf("meta.id missing: %v", env.Meta)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	_, handler := newTestServer(t)

	tests := []map[string]string{
		{},
		{"name": "Ann"},
		{"name": "Ann", "email": "a@x.com"},
		{"email": "a@x.com", "password": "secret"},
	}
	for _, body := range tests {
		rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", body, "")
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("register %v: status = %d, want 422", body, rec.Code)
		}
		env := decodeEnvelope(t, rec)
		if env.ErrorName != ErrNameValidation {
			t.Errorf("register %v: errorName = %q, want %q", body, env.ErrorName, ErrNameValidation)
		}
		if env.Success {
			t.Errorf("register %v: success = true, want false", body)
		}
	}
}

func TestRegister_InvalidJSON(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "not an object", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, handler := newTestServer(t)

	registerUser(t, handler, "Ann", "a@x.com", "secret", "")

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register",
		map[string]string{"name": "Other Ann", "email": "a@x.com", "password": "other"}, "")

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.ErrorName != ErrNameConflict {
		t.Errorf("errorName = %q, want %q", env.ErrorName, ErrNameConflict)
	}
	if env.Message != "Email already exists" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestRegister_ExplicitRole(t *testing.T) {
	srv, handler := newTestServer(t)

	id := registerUser(t, handler, "Mod", "m@x.com", "secret", "moderator")

	user, err := srv.users.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if user.Role != auth.RoleModerator {
		t.Errorf("role = %q, want %q", user.Role, auth.RoleModerator)
	}
}

func TestLogin_Success(t *testing.T) {
	_, handler := newTestServer(t)

	id := registerUser(t, handler, "Ann", "a@x.com", "secret", "")

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "a@x.com", "password": "secret"}, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if env.Meta["id"] != id {
		t.Errorf("meta.id = %v, want %q", env.Meta["id"], id)
	}
	if env.Meta["name"] != "Ann" {
		t.Errorf("meta.name = %v, want Ann", env.Meta["name"])
	}
	if env.Meta["email"] != "a@x.com" {
		t.Errorf("meta.email = %v, want a@x.com", env.Meta["email"])
	}

	// The issued token resolves back to the user's id.
	token, _ := env.Meta["accessToken"].(string)
	claims, err := auth.ParseAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if claims.UserID != id {
		t.Errorf("token UserID = %q, want %q", claims.UserID, id)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	_, handler := newTestServer(t)

	for _, body := range []map[string]string{{}, {"email": "a@x.com"}, {"password": "secret"}} {
		rec := doJSON(t, handler, http.MethodPost, "/api/auth/login", body, "")
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("login %v: status = %d, want 422", body, rec.Code)
		}
	}
}

func TestLogin_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	_, handler := newTestServer(t)

	registerUser(t, handler, "Ann", "a@x.com", "secret", "")

	wrongPassword := doJSON(t, handler, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "a@x.com", "password": "wrong"}, "")
	unknownEmail := doJSON(t, handler, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "nobody@x.com", "password": "secret"}, "")

	if wrongPassword.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d, want 401", wrongPassword.Code)
	}
	if unknownEmail.Code != http.StatusUnauthorized {
		t.Errorf("unknown email: status = %d, want 401", unknownEmail.Code)
	}

	// Both failure modes must produce byte-identical envelopes so the
	// response never reveals whether the email is registered.
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Errorf("responses differ:\n wrong password: %s\n unknown email:  %s",
			wrongPassword.Body.String(), unknownEmail.Body.String())
	}

	env := decodeEnvelope(t, wrongPassword)
	if env.ErrorName != ErrNameInvalidCredentials {
		t.Errorf("errorName = %q, want %q", env.ErrorName, ErrNameInvalidCredentials)
	}
}
