package handlers

import (
	db "centsible-server/src/db/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func GetAllCategories(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categories, err := db.GetCategoriesForUser(r.Context(), pool, int(userID))
		if err != nil {
			logger.Error("failed to get categories", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to get categories", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categories)
	}
}

func CreateCategory(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			logger.Error("failed to decode create category request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		category, err := db.CreateCategory(r.Context(), pool, int(userID), strings.TrimSpace(req.Name))
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				http.Error(w, "category already exists", http.StatusConflict)
				return
			}
			logger.Error("failed to create category", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to create category", http.StatusInternalServerError)
			return
		}

		logger.Info("category created",
			zap.Int("category_id", category.ID), zap.Int64("user_id", userID), zap.String("name", category.Name))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(category)
	}
}

func UpdateCategory(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryIDStr := chi.URLParam(r, "category_id")
		categoryID, err := strconv.Atoi(categoryIDStr)
		if err != nil {
			logger.Warn("invalid category id param", zap.String("category_id", categoryIDStr))
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}

		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			logger.Error("failed to decode update category request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		category, err := db.UpdateCategory(r.Context(), pool, int(userID), categoryID, strings.TrimSpace(req.Name))
		if err != nil {
			logger.Error("failed to update category",
				zap.Int("category_id", categoryID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(category)
	}
}

func DeleteCategory(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryIDStr := chi.URLParam(r, "category_id")
		categoryID, err := strconv.Atoi(categoryIDStr)
		if err != nil {
			logger.Warn("invalid category id param", zap.String("category_id", categoryIDStr))
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteCategory(r.Context(), pool, int(userID), categoryID); err != nil {
			logger.Error("failed to delete category",
				zap.Int("category_id", categoryID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to delete category", http.StatusInternalServerError)
			return
		}

		logger.Info("category deleted", zap.Int("category_id", categoryID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "category deleted"})
	}
}
