package handlers

import (
	db "centsible-server/src/db/sql"
	"centsible-server/src/util"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Whitelisted emails gate registration when invite mode is on. All three
// handlers sit behind SuperAdminMiddleware.

func CreateWhitelistedEmail(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode whitelist email request body", zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		if !util.ValidateEmail(req.Email) {
			http.Error(w, "invalid email format", http.StatusBadRequest)
			return
		}

		entry, err := db.CreateWhitelistedEmail(r.Context(), pool, req.Email)
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				http.Error(w, "email is already whitelisted", http.StatusConflict)
				return
			}
			logger.Error("failed to whitelist email", zap.String("email", req.Email), zap.Error(err))
			http.Error(w, "failed to whitelist email", http.StatusInternalServerError)
			return
		}

		logger.Info("email whitelisted", zap.String("email", entry.Email))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entry)
	}
}

func GetAllWhitelistedEmails(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		emails, err := db.GetAllWhitelistedEmails(r.Context(), pool)
		if err != nil {
			logger.Error("failed to get whitelisted emails", zap.Error(err))
			http.Error(w, "failed to get whitelisted emails", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(emails)
	}
}

func DeleteWhitelistedEmail(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			logger.Warn("invalid whitelist id param", zap.String("id", idStr))
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteWhitelistedEmail(r.Context(), pool, id); err != nil {
			logger.Error("failed to delete whitelisted email", zap.Int64("id", id), zap.Error(err))
			http.Error(w, "whitelisted email not found", http.StatusNotFound)
			return
		}

		logger.Info("whitelisted email deleted", zap.Int64("id", id))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "whitelisted email deleted"})
	}
}
