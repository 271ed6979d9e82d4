package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	authtoken "github.com/just-abdullah-dev/pixel-art/internal/auth"
	"github.com/just-abdullah-dev/pixel-art/internal/storage"
)

// Handler serves account registration and login.
type Handler struct {
	Users  storage.UserStore
	Tokens *authtoken.TokenManager
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// Register creates an account and opens a session for it.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "Username and password cannot be empty", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Failed to register", http.StatusInternalServerError)
		return
	}

	acct, err := h.Users.CreateAccount(r.Context(), req.Username, string(hash))
	if errors.Is(err, storage.ErrUsernameTaken) {
		http.Error(w, "Username already taken", http.StatusConflict)
		return
	}
	if err != nil {
		log.Printf("[Auth] register failed: %v", err)
		http.Error(w, "Failed to register", http.StatusInternalServerError)
		return
	}

	h.openSession(w, acct.ID, acct, http.StatusCreated)
	log.Printf("[Auth] registered account %s (%s)", acct.Username, acct.ID)
}

// Login verifies credentials and opens a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	acct, err := h.Users.GetByUsername(r.Context(), req.Username)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Printf("[Auth] login lookup failed: %v", err)
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	h.openSession(w, acct.ID, acct, http.StatusOK)
	log.Printf("[Auth] account %s logged in", acct.Username)
}

// Me returns the authenticated account, mirroring the client's
// session check on page load.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	accountID, ok := authtoken.AccountID(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}
	acct, err := h.Users.GetByID(r.Context(), accountID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Printf("[Auth] me lookup failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"user": acct})
}

func (h *Handler) openSession(w http.ResponseWriter, accountID string, acct any, status int) {
	token, err := h.Tokens.Issue(accountID)
	if err != nil {
		log.Printf("[Auth] issue token: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authtoken.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(sessionResponse{Token: token, User: acct})
}
