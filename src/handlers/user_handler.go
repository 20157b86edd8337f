package handlers

import (
	db "centsible-server/src/db/sql"
	"centsible-server/src/util"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func GetUser(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		requestedUserID := chi.URLParam(r, "user_id")

		parsedUserID, err := strconv.ParseInt(requestedUserID, 10, 64)
		if err != nil {
			logger.Warn("invalid user_id param", zap.String("user_id", requestedUserID))
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		if userID != parsedUserID {
			logger.Warn("unauthorized user access attempt",
				zap.Int64("authenticated_user", userID), zap.Int64("requested_user", parsedUserID))
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		user, err := db.GetUserByID(r.Context(), pool, int(userID))
		if err != nil {
			logger.Error("failed to get user", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	}
}

func UpdateUser(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var req struct {
			Email     string `json:"email"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode update user request body", zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if !util.ValidateEmail(req.Email) {
			logger.Warn("email validation failed during user update",
				zap.String("email", req.Email), zap.Int64("user_id", userID))
			http.Error(w, "invalid email format", http.StatusBadRequest)
			return
		}

		if err := db.UpdateUserProfile(r.Context(), pool, userID, req.Email, req.FirstName, req.LastName); err != nil {
			logger.Error("failed to update user profile", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		logger.Info("user profile updated", zap.Int64("user_id", userID))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "profile updated successfully",
		})
	}
}

func ChangePassword(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var req struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode change password request body", zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		user, err := db.GetUserByID(r.Context(), pool, int(userID))
		if err != nil {
			logger.Error("failed to get user for password change", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.CurrentPassword)); err != nil {
			logger.Warn("invalid current password attempt", zap.Int64("user_id", userID))
			http.Error(w, "current password is incorrect", http.StatusUnauthorized)
			return
		}

		if !util.ValidatePassword(req.NewPassword) {
			logger.Warn("password validation failed during change password", zap.Int64("user_id", userID))
			http.Error(w, "password must be at least 8 characters with uppercase, lowercase, digit, and special character", http.StatusBadRequest)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("failed to hash new password", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if err := db.UpdateUserPassword(r.Context(), pool, userID, string(hashedPassword)); err != nil {
			logger.Error("failed to update user password", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		logger.Info("user password changed", zap.Int64("user_id", userID))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "password changed successfully",
		})
	}
}

func DeleteUser(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		// Only allow a user to delete themselves; the body must repeat the id.
		var req struct {
			UserID int64 `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode delete user request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.UserID != userID {
			logger.Warn("forbidden delete attempt",
				zap.Int64("authenticated_user", userID), zap.Int64("requested_user", req.UserID))
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := db.DeleteUser(r.Context(), pool, int(userID)); err != nil {
			logger.Error("failed to delete user", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to delete user", http.StatusInternalServerError)
			return
		}

		logger.Info("user deleted", zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message":  "user deleted",
			"redirect": "/register",
		})
	}
}

// Admin handlers below operate on arbitrary users and sit behind
// SuperAdminMiddleware.

func GetAllUsers(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := db.GetAllUsers(r.Context(), pool)
		if err != nil {
			logger.Error("failed to get users", zap.Error(err))
			http.Error(w, "failed to get users", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(users)
	}
}

func AdminUpdateUser(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetIDStr := chi.URLParam(r, "user_id")
		targetID, err := strconv.ParseInt(targetIDStr, 10, 64)
		if err != nil {
			logger.Warn("invalid user_id param", zap.String("user_id", targetIDStr))
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		var req struct {
			Email     string `json:"email"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode admin update user request body", zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if !util.ValidateEmail(req.Email) {
			http.Error(w, "invalid email format", http.StatusBadRequest)
			return
		}

		if err := db.UpdateUserProfile(r.Context(), pool, targetID, req.Email, req.FirstName, req.LastName); err != nil {
			logger.Error("failed to admin-update user", zap.Int64("target_user", targetID), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		logger.Info("admin updated user", zap.Int64("target_user", targetID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "user updated"})
	}
}

func AdminDeleteUser(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetIDStr := chi.URLParam(r, "user_id")
		targetID, err := strconv.Atoi(targetIDStr)
		if err != nil {
			logger.Warn("invalid user_id param", zap.String("user_id", targetIDStr))
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteUser(r.Context(), pool, targetID); err != nil {
			logger.Error("failed to admin-delete user", zap.Int("target_user", targetID), zap.Error(err))
			http.Error(w, "failed to delete user", http.StatusInternalServerError)
			return
		}

		logger.Info("admin deleted user", zap.Int("target_user", targetID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "user deleted"})
	}
}

func LockUser(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return setUserLocked(pool, logger, true)
}

func UnlockUser(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return setUserLocked(pool, logger, false)
}

func setUserLocked(pool *pgxpool.Pool, logger *zap.Logger, locked bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetIDStr := chi.URLParam(r, "user_id")
		targetID, err := strconv.Atoi(targetIDStr)
		if err != nil {
			logger.Warn("invalid user_id param", zap.String("user_id", targetIDStr))
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		if err := db.SetUserLocked(r.Context(), pool, targetID, locked); err != nil {
			logger.Error("failed to change user lock state",
				zap.Int("target_user", targetID), zap.Bool("locked", locked), zap.Error(err))
			http.Error(w, "failed to update user", http.StatusInternalServerError)
			return
		}

		logger.Info("user lock state changed", zap.Int("target_user", targetID), zap.Bool("locked", locked))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"locked": locked})
	}
}
