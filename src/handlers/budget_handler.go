package handlers

import (
	db "centsible-server/src/db/sql"
	"centsible-server/src/insights"
	"centsible-server/src/models"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type budgetRequest struct {
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Allocations []struct {
		CategoryID int     `json:"category_id"`
		Percent    float64 `json:"percent"`
	} `json:"allocations"`
}

func (req budgetRequest) allocationInputs() []insights.AllocationInput {
	out := make([]insights.AllocationInput, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		out = append(out, insights.AllocationInput{CategoryID: a.CategoryID, Percent: a.Percent})
	}
	return out
}

func (req budgetRequest) toModel(userID, budgetID int) *models.Budget {
	budget := &models.Budget{
		ID:     budgetID,
		UserID: userID,
		Name:   req.Name,
		Amount: req.Amount,
	}
	for _, a := range req.Allocations {
		budget.Allocations = append(budget.Allocations, models.BudgetAllocation{
			CategoryID: a.CategoryID,
			Percent:    a.Percent,
		})
	}
	return budget
}

func CreateBudget(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req budgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode create budget request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.Amount <= 0 {
			http.Error(w, "name and a positive amount are required", http.StatusBadRequest)
			return
		}
		if err := insights.ValidateAllocations(req.allocationInputs()); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		created, err := db.CreateBudget(r.Context(), pool, req.toModel(int(userID), 0))
		if err != nil {
			logger.Error("failed to create budget", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to create budget", http.StatusInternalServerError)
			return
		}

		logger.Info("budget created",
			zap.Int("budget_id", created.ID), zap.Int64("user_id", userID), zap.String("name", created.Name))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetBudgetByID(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetIDStr := chi.URLParam(r, "budget_id")
		budgetID, err := strconv.Atoi(budgetIDStr)
		if err != nil {
			logger.Warn("invalid budget id param", zap.String("budget_id", budgetIDStr))
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}

		budget, err := db.GetBudgetByID(r.Context(), pool, int(userID), budgetID)
		if err != nil {
			logger.Warn("budget not found",
				zap.Int("budget_id", budgetID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(budget)
	}
}

func GetAllBudgets(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgets, err := db.GetAllBudgetsForUser(r.Context(), pool, int(userID))
		if err != nil {
			logger.Error("failed to get budgets", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to get budgets", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(budgets)
	}
}

func UpdateBudget(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetIDStr := chi.URLParam(r, "budget_id")
		budgetID, err := strconv.Atoi(budgetIDStr)
		if err != nil {
			logger.Warn("invalid budget id param", zap.String("budget_id", budgetIDStr))
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}

		var req budgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode update budget request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.Amount <= 0 {
			http.Error(w, "name and a positive amount are required", http.StatusBadRequest)
			return
		}
		if err := insights.ValidateAllocations(req.allocationInputs()); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateBudget(r.Context(), pool, req.toModel(int(userID), budgetID))
		if err != nil {
			logger.Error("failed to update budget",
				zap.Int("budget_id", budgetID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to update budget", http.StatusInternalServerError)
			return
		}

		logger.Info("budget updated", zap.Int("budget_id", updated.ID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteBudget(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetIDStr := chi.URLParam(r, "budget_id")
		budgetID, err := strconv.Atoi(budgetIDStr)
		if err != nil {
			logger.Warn("invalid budget id param", zap.String("budget_id", budgetIDStr))
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteBudget(r.Context(), pool, int(userID), budgetID); err != nil {
			logger.Error("failed to delete budget",
				zap.Int("budget_id", budgetID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to delete budget", http.StatusInternalServerError)
			return
		}

		logger.Info("budget deleted", zap.Int("budget_id", budgetID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "budget deleted"})
	}
}

// GetBudgetSummary reports allocated vs actual spend per category for one
// month. Defaults to the current month when no month param is given.
func GetBudgetSummary(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		budgetIDStr := chi.URLParam(r, "budget_id")
		budgetID, err := strconv.Atoi(budgetIDStr)
		if err != nil {
			logger.Warn("invalid budget id param", zap.String("budget_id", budgetIDStr))
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}

		month := time.Now()
		if monthStr := r.URL.Query().Get("month"); monthStr != "" {
			month, err = time.Parse("2006-01", monthStr)
			if err != nil {
				http.Error(w, "invalid month, expected YYYY-MM", http.StatusBadRequest)
				return
			}
		}

		summary, err := db.GetBudgetSummary(r.Context(), pool, int(userID), budgetID, month)
		if err != nil {
			logger.Error("failed to get budget summary",
				zap.Int("budget_id", budgetID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to get budget summary", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}
