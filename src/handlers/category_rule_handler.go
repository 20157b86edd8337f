package handlers

import (
	db "centsible-server/src/db/sql"
	"centsible-server/src/models"
	"centsible-server/src/rules"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type categoryRuleRequest struct {
	Name          string   `json:"name"`
	MatchField    string   `json:"match_field"`
	MatchOperator string   `json:"match_operator"`
	MatchValue    string   `json:"match_value"`
	CategoryID    int      `json:"category_id"`
	AppliesTo     []string `json:"applies_to"`
	Priority      int      `json:"priority"`
	IsActive      *bool    `json:"is_active"`
}

func (req categoryRuleRequest) validate() error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !rules.ValidField(req.MatchField) {
		return fmt.Errorf("invalid match_field %q", req.MatchField)
	}
	if !rules.ValidOperator(req.MatchOperator) {
		return fmt.Errorf("invalid match_operator %q", req.MatchOperator)
	}
	if req.MatchValue == "" {
		return fmt.Errorf("match_value is required")
	}
	if req.CategoryID == 0 {
		return fmt.Errorf("category_id is required")
	}
	if len(req.AppliesTo) == 0 {
		return fmt.Errorf("applies_to must name at least one transaction type")
	}
	for _, t := range req.AppliesTo {
		if !rules.ValidTransactionType(t) {
			return fmt.Errorf("invalid transaction type %q in applies_to", t)
		}
	}
	return nil
}

func (req categoryRuleRequest) toModel(userID, ruleID int) *models.CategoryRule {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &models.CategoryRule{
		ID:            ruleID,
		UserID:        userID,
		Name:          req.Name,
		MatchField:    req.MatchField,
		MatchOperator: req.MatchOperator,
		MatchValue:    req.MatchValue,
		CategoryID:    req.CategoryID,
		AppliesTo:     req.AppliesTo,
		Priority:      req.Priority,
		IsActive:      active,
	}
}

func CreateCategoryRule(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req categoryRuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode create rule request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := req.validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		created, err := db.CreateCategoryRule(r.Context(), pool, req.toModel(int(userID), 0))
		if err != nil {
			logger.Error("failed to create category rule", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to create category rule", http.StatusInternalServerError)
			return
		}

		logger.Info("category rule created",
			zap.Int("rule_id", created.ID), zap.Int64("user_id", userID), zap.String("name", created.Name))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetCategoryRuleByID(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		ruleIDStr := chi.URLParam(r, "rule_id")
		ruleID, err := strconv.Atoi(ruleIDStr)
		if err != nil {
			logger.Warn("invalid rule id param", zap.String("rule_id", ruleIDStr))
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}

		rule, err := db.GetCategoryRuleByID(r.Context(), pool, int(userID), ruleID)
		if err != nil {
			logger.Warn("category rule not found",
				zap.Int("rule_id", ruleID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "category rule not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rule)
	}
}

func GetAllCategoryRules(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		ruleList, err := db.GetAllCategoryRules(r.Context(), pool, int(userID))
		if err != nil {
			logger.Error("failed to get category rules", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to get category rules", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ruleList)
	}
}

func UpdateCategoryRule(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		ruleIDStr := chi.URLParam(r, "rule_id")
		ruleID, err := strconv.Atoi(ruleIDStr)
		if err != nil {
			logger.Warn("invalid rule id param", zap.String("rule_id", ruleIDStr))
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}

		var req categoryRuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode update rule request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := req.validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateCategoryRule(r.Context(), pool, req.toModel(int(userID), ruleID))
		if err != nil {
			logger.Error("failed to update category rule",
				zap.Int("rule_id", ruleID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to update category rule", http.StatusInternalServerError)
			return
		}

		logger.Info("category rule updated", zap.Int("rule_id", updated.ID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteCategoryRule(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		ruleIDStr := chi.URLParam(r, "rule_id")
		ruleID, err := strconv.Atoi(ruleIDStr)
		if err != nil {
			logger.Warn("invalid rule id param", zap.String("rule_id", ruleIDStr))
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteCategoryRule(r.Context(), pool, int(userID), ruleID); err != nil {
			logger.Error("failed to delete category rule",
				zap.Int("rule_id", ruleID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to delete category rule", http.StatusInternalServerError)
			return
		}

		logger.Info("category rule deleted", zap.Int("rule_id", ruleID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "category rule deleted"})
	}
}

// TriggerCategoryRules re-runs the rule set over all of the user's
// transactions. Unlike auto-categorization on create, a failure here is a
// hard error so the client can tell a broken matcher from "nothing matched".
func TriggerCategoryRules(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		adjusted, err := db.RecategorizeExpenses(r.Context(), pool, int(userID))
		if err != nil {
			logger.Error("failed to trigger category rules", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to trigger category rules", http.StatusInternalServerError)
			return
		}

		logger.Info("category rules triggered",
			zap.Int64("user_id", userID), zap.Int("adjusted", len(adjusted)))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"adjusted":    len(adjusted),
			"adjustments": adjusted,
		})
	}
}

// PreviewCategoryRules evaluates a candidate record without writing
// anything, so the UI can show which category a rule set would pick.
func PreviewCategoryRules(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req struct {
			TransactionType string            `json:"transaction_type"`
			Fields          map[string]string `json:"fields"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode preview request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if !rules.ValidTransactionType(req.TransactionType) {
			http.Error(w, "invalid transaction type", http.StatusBadRequest)
			return
		}

		record := rules.Record{}
		for field, value := range req.Fields {
			if !rules.ValidField(field) {
				http.Error(w, fmt.Sprintf("invalid field %q", field), http.StatusBadRequest)
				return
			}
			record[rules.Field(field)] = value
		}

		categoryID, matched, err := db.ApplyCategoryRules(r.Context(), pool, int(userID), rules.TransactionType(req.TransactionType), record)
		if err != nil {
			logger.Error("failed to preview category rules", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to evaluate category rules", http.StatusInternalServerError)
			return
		}

		resp := map[string]interface{}{"matched": matched}
		if matched {
			resp["category_id"] = categoryID
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
