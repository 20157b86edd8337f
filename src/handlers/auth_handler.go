package handlers

import (
	db "centsible-server/src/db/sql"
	"centsible-server/src/models"
	"centsible-server/src/util"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func Register(pool *pgxpool.Pool, logger *zap.Logger, requireInvite bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode register request body", zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		req.Username = strings.TrimSpace(req.Username)

		if requireInvite {
			allowed, err := db.IsEmailWhitelisted(r.Context(), pool, req.Email)
			if err != nil {
				logger.Error("failed to check invite whitelist", zap.Error(err))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !allowed {
				logger.Warn("registration denied for non-invited email", zap.String("email", req.Email))
				http.Error(w, "registration is restricted to invited emails", http.StatusForbidden)
				return
			}
		}

		if !util.ValidateEmail(req.Email) {
			logger.Warn("email validation failed during registration", zap.String("email", req.Email))
			http.Error(w, "invalid email format", http.StatusBadRequest)
			return
		}

		if !util.ValidateUsername(req.Username) {
			logger.Warn("username validation failed during registration", zap.String("username", req.Username))
			http.Error(w, "username must be between 3 and 30 characters", http.StatusBadRequest)
			return
		}

		if !util.ValidatePassword(req.Password) {
			logger.Warn("password validation failed during registration", zap.String("username", req.Username))
			http.Error(w, "password must be at least 8 characters with uppercase, lowercase, digit, and special character", http.StatusBadRequest)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("failed to hash password", zap.String("username", req.Username), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp, err := db.CreateUser(r.Context(), pool, req, string(hashedPassword))
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				logger.Warn("registration failed, email or username already exists",
					zap.String("email", req.Email), zap.String("username", req.Username))
				http.Error(w, "email or username already exists", http.StatusConflict)
				return
			}
			logger.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		logger.Info("user registered", zap.String("username", resp.Username), zap.Int("user_id", resp.ID))

		tokenString, err := signToken(resp.ID, resp.Username, resp.SuperAdmin)
		if err != nil {
			logger.Error("failed to generate token", zap.String("username", resp.Username), zap.Error(err))
			http.Error(w, "error generating token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"token": tokenString,
		})
	}
}

func Login(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials struct {
			UsernameOrEmail string `json:"username"`
			Password        string `json:"password"`
		}

		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			logger.Error("failed to decode login request body", zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		login := strings.ToLower(credentials.UsernameOrEmail)
		user, err := db.GetUserByUsername(r.Context(), pool, login)
		if err != nil {
			user, err = db.GetUserByEmail(r.Context(), pool, login)
			if err != nil {
				logger.Warn("login failed, user not found", zap.String("login", credentials.UsernameOrEmail))
				http.Error(w, "user not found", http.StatusUnauthorized)
				return
			}
		}

		if user.Locked {
			logger.Warn("locked user attempted login", zap.String("username", user.Username))
			http.Error(w, "user account is locked", http.StatusForbidden)
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(credentials.Password)); err != nil {
			logger.Warn("invalid password attempt",
				zap.String("login", credentials.UsernameOrEmail),
				zap.String("remote_addr", r.RemoteAddr))
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		tokenString, err := signToken(user.ID, user.Username, user.SuperAdmin)
		if err != nil {
			logger.Error("failed to generate token", zap.String("username", user.Username), zap.Error(err))
			http.Error(w, "error generating token", http.StatusInternalServerError)
			return
		}

		if err := db.UpdateUserLastLogin(r.Context(), pool, user.ID); err != nil {
			logger.Error("failed to update last_login", zap.String("username", user.Username), zap.Error(err))
		}

		logger.Info("user logged in", zap.String("username", user.Username), zap.Int("user_id", user.ID))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"token": tokenString,
		})
	}
}

// signToken issues a 7-day HS256 session token.
func signToken(userID int, username string, superAdmin bool) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":     userID,
		"username":    username,
		"super_admin": superAdmin,
		"exp":         time.Now().Add(time.Hour * 168).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
