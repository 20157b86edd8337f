package handlers

import (
	db "centsible-server/src/db/sql"
	"centsible-server/src/models"
	"centsible-server/src/rules"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type goalRequest struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
	SavedAmount  float64 `json:"saved_amount"`
	TargetDate   string  `json:"target_date"`
	CategoryID   *int    `json:"category_id"`
}

func (req goalRequest) toModel(userID, goalID int) (*models.Goal, error) {
	goal := &models.Goal{
		ID:           goalID,
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		SavedAmount:  req.SavedAmount,
		CategoryID:   req.CategoryID,
	}
	if req.TargetDate != "" {
		date, err := time.Parse("2006-01-02", req.TargetDate)
		if err != nil {
			return nil, err
		}
		goal.TargetDate = &date
	}
	return goal, nil
}

// goalResponse decorates a goal with its computed progress.
type goalResponse struct {
	models.Goal
	ProgressPercent float64 `json:"progress_percent"`
}

func withProgress(g models.Goal) goalResponse {
	return goalResponse{Goal: g, ProgressPercent: g.ProgressPercent()}
}

func CreateGoal(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req goalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode create goal request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.TargetAmount <= 0 {
			http.Error(w, "name and a positive target_amount are required", http.StatusBadRequest)
			return
		}
		if req.SavedAmount < 0 {
			http.Error(w, "saved_amount cannot be negative", http.StatusBadRequest)
			return
		}

		goal, err := req.toModel(int(userID), 0)
		if err != nil {
			http.Error(w, "invalid target_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		if goal.CategoryID == nil {
			goal.CategoryID = autoCategorize(r.Context(), pool, logger, int(userID),
				rules.TypeGoal, rules.Record{rules.FieldGoalName: goal.Name})
		}

		created, err := db.CreateGoal(r.Context(), pool, goal)
		if err != nil {
			logger.Error("failed to create goal", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to create goal", http.StatusInternalServerError)
			return
		}

		logger.Info("goal created",
			zap.Int("goal_id", created.ID), zap.Int64("user_id", userID), zap.String("name", created.Name))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(withProgress(*created))
	}
}

func GetGoalByID(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalIDStr := chi.URLParam(r, "goal_id")
		goalID, err := strconv.Atoi(goalIDStr)
		if err != nil {
			logger.Warn("invalid goal id param", zap.String("goal_id", goalIDStr))
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}

		goal, err := db.GetGoalByID(r.Context(), pool, int(userID), goalID)
		if err != nil {
			logger.Warn("goal not found",
				zap.Int("goal_id", goalID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(withProgress(*goal))
	}
}

func GetAllGoals(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goals, err := db.GetAllGoalsForUser(r.Context(), pool, int(userID))
		if err != nil {
			logger.Error("failed to get goals", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to get goals", http.StatusInternalServerError)
			return
		}

		out := make([]goalResponse, 0, len(goals))
		for _, g := range goals {
			out = append(out, withProgress(g))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	}
}

func UpdateGoal(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalIDStr := chi.URLParam(r, "goal_id")
		goalID, err := strconv.Atoi(goalIDStr)
		if err != nil {
			logger.Warn("invalid goal id param", zap.String("goal_id", goalIDStr))
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}

		var req goalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode update goal request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.TargetAmount <= 0 {
			http.Error(w, "name and a positive target_amount are required", http.StatusBadRequest)
			return
		}
		if req.SavedAmount < 0 {
			http.Error(w, "saved_amount cannot be negative", http.StatusBadRequest)
			return
		}

		goal, err := req.toModel(int(userID), goalID)
		if err != nil {
			http.Error(w, "invalid target_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateGoal(r.Context(), pool, goal)
		if err != nil {
			logger.Error("failed to update goal",
				zap.Int("goal_id", goalID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to update goal", http.StatusInternalServerError)
			return
		}

		logger.Info("goal updated", zap.Int("goal_id", updated.ID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(withProgress(*updated))
	}
}

// ContributeToGoal adds a positive amount to the goal's saved total.
func ContributeToGoal(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalIDStr := chi.URLParam(r, "goal_id")
		goalID, err := strconv.Atoi(goalIDStr)
		if err != nil {
			logger.Warn("invalid goal id param", zap.String("goal_id", goalIDStr))
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}

		var req struct {
			Amount float64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode contribute request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Amount <= 0 {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}

		goal, err := db.AddGoalContribution(r.Context(), pool, int(userID), goalID, req.Amount)
		if err != nil {
			logger.Error("failed to add goal contribution",
				zap.Int("goal_id", goalID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}

		logger.Info("goal contribution added",
			zap.Int("goal_id", goal.ID), zap.Int64("user_id", userID), zap.Float64("amount", req.Amount))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(withProgress(*goal))
	}
}

func DeleteGoal(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalIDStr := chi.URLParam(r, "goal_id")
		goalID, err := strconv.Atoi(goalIDStr)
		if err != nil {
			logger.Warn("invalid goal id param", zap.String("goal_id", goalIDStr))
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteGoal(r.Context(), pool, int(userID), goalID); err != nil {
			logger.Error("failed to delete goal",
				zap.Int("goal_id", goalID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to delete goal", http.StatusInternalServerError)
			return
		}

		logger.Info("goal deleted", zap.Int("goal_id", goalID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "goal deleted"})
	}
}
