package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/skhartaye/SMOKI/internal/auth"
	"github.com/skhartaye/SMOKI/internal/config"
	"github.com/skhartaye/SMOKI/internal/dto"
	"github.com/skhartaye/SMOKI/internal/logger"
	"github.com/skhartaye/SMOKI/internal/middleware"
	"github.com/skhartaye/SMOKI/internal/repository"
)

// LoginHandler handles POST /api/auth/login by validating credentials against
// the user store and issuing an access token.
func LoginHandler(users repository.UserRepository, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := users.GetByUsername(req.Username)
		if err != nil {
			logger.Error("Error looking up user %s: %v", req.Username, err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if user == nil || !auth.CheckPassword(req.Password, user.HashedPassword) {
			http.Error(w, "Incorrect username or password", http.StatusUnauthorized)
			return
		}

		ttl := time.Duration(cfg.TokenTTLMinutes) * time.Minute
		token, err := auth.GenerateToken(cfg.JWTSecret, user.Username, user.Role, ttl)
		if err != nil {
			logger.Error("Error generating token for %s: %v", user.Username, err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, dto.Token{
			AccessToken: token,
			TokenType:   "bearer",
			Role:        user.Role,
			Username:    user.Username,
		})
	}
}

// MeHandler handles GET /api/auth/me by echoing the verified identity.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"username": claims.Username,
			"role":     claims.Role,
		})
	}
}
