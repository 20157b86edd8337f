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

var billingCycles = map[string]bool{
	"weekly":  true,
	"monthly": true,
	"yearly":  true,
}

type subscriptionRequest struct {
	Name            string  `json:"name"`
	Merchant        string  `json:"merchant"`
	Amount          float64 `json:"amount"`
	BillingCycle    string  `json:"billing_cycle"`
	NextBillingDate string  `json:"next_billing_date"`
	UsesPerMonth    int     `json:"uses_per_month"`
	IsActive        *bool   `json:"is_active"`
	CategoryID      *int    `json:"category_id"`
}

func (req subscriptionRequest) toModel(userID, subID int) (*models.Subscription, error) {
	nextBilling, err := time.Parse("2006-01-02", req.NextBillingDate)
	if err != nil {
		return nil, err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &models.Subscription{
		ID:              subID,
		UserID:          userID,
		Name:            req.Name,
		Merchant:        req.Merchant,
		Amount:          req.Amount,
		BillingCycle:    req.BillingCycle,
		NextBillingDate: nextBilling,
		UsesPerMonth:    req.UsesPerMonth,
		IsActive:        active,
		CategoryID:      req.CategoryID,
	}, nil
}

func CreateSubscription(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req subscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode create subscription request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.Amount <= 0 {
			http.Error(w, "name and a positive amount are required", http.StatusBadRequest)
			return
		}
		if !billingCycles[req.BillingCycle] {
			http.Error(w, "billing_cycle must be weekly, monthly, or yearly", http.StatusBadRequest)
			return
		}

		sub, err := req.toModel(int(userID), 0)
		if err != nil {
			http.Error(w, "invalid next_billing_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		created, err := db.CreateSubscription(r.Context(), pool, sub)
		if err != nil {
			logger.Error("failed to create subscription", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to create subscription", http.StatusInternalServerError)
			return
		}

		logger.Info("subscription created",
			zap.Int("subscription_id", created.ID), zap.Int64("user_id", userID), zap.String("name", created.Name))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetSubscriptionByID(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		subIDStr := chi.URLParam(r, "subscription_id")
		subID, err := strconv.Atoi(subIDStr)
		if err != nil {
			logger.Warn("invalid subscription id param", zap.String("subscription_id", subIDStr))
			http.Error(w, "invalid subscription id", http.StatusBadRequest)
			return
		}

		sub, err := db.GetSubscriptionByID(r.Context(), pool, int(userID), subID)
		if err != nil {
			logger.Warn("subscription not found",
				zap.Int("subscription_id", subID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "subscription not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sub)
	}
}

func GetAllSubscriptions(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		subs, err := db.GetAllSubscriptionsForUser(r.Context(), pool, int(userID))
		if err != nil {
			logger.Error("failed to get subscriptions", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to get subscriptions", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(subs)
	}
}

func UpdateSubscription(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		subIDStr := chi.URLParam(r, "subscription_id")
		subID, err := strconv.Atoi(subIDStr)
		if err != nil {
			logger.Warn("invalid subscription id param", zap.String("subscription_id", subIDStr))
			http.Error(w, "invalid subscription id", http.StatusBadRequest)
			return
		}

		var req subscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode update subscription request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.Amount <= 0 {
			http.Error(w, "name and a positive amount are required", http.StatusBadRequest)
			return
		}
		if !billingCycles[req.BillingCycle] {
			http.Error(w, "billing_cycle must be weekly, monthly, or yearly", http.StatusBadRequest)
			return
		}

		sub, err := req.toModel(int(userID), subID)
		if err != nil {
			http.Error(w, "invalid next_billing_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateSubscription(r.Context(), pool, sub)
		if err != nil {
			logger.Error("failed to update subscription",
				zap.Int("subscription_id", subID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to update subscription", http.StatusInternalServerError)
			return
		}

		logger.Info("subscription updated", zap.Int("subscription_id", updated.ID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteSubscription(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		subIDStr := chi.URLParam(r, "subscription_id")
		subID, err := strconv.Atoi(subIDStr)
		if err != nil {
			logger.Warn("invalid subscription id param", zap.String("subscription_id", subIDStr))
			http.Error(w, "invalid subscription id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteSubscription(r.Context(), pool, int(userID), subID); err != nil {
			logger.Error("failed to delete subscription",
				zap.Int("subscription_id", subID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to delete subscription", http.StatusInternalServerError)
			return
		}

		logger.Info("subscription deleted", zap.Int("subscription_id", subID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "subscription deleted"})
	}
}

// GetSubscriptionROI scores every active subscription by cost per use.
func GetSubscriptionROI(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		subs, err := db.GetAllSubscriptionsForUser(r.Context(), pool, int(userID))
		if err != nil {
			logger.Error("failed to get subscriptions for roi", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to get subscriptions", http.StatusInternalServerError)
			return
		}

		scores := make([]insights.ROIScore, 0, len(subs))
		for _, s := range subs {
			if !s.IsActive {
				continue
			}
			scores = append(scores, insights.ScoreSubscription(s.ID, s.Name, s.Amount, s.BillingCycle, s.UsesPerMonth))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(scores)
	}
}

// GetDuplicateSubscriptions flags subscriptions that look like the same
// service billed more than once.
func GetDuplicateSubscriptions(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		subs, err := db.GetAllSubscriptionsForUser(r.Context(), pool, int(userID))
		if err != nil {
			logger.Error("failed to get subscriptions for duplicate check", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to get subscriptions", http.StatusInternalServerError)
			return
		}

		refs := make([]insights.SubscriptionRef, 0, len(subs))
		for _, s := range subs {
			if !s.IsActive {
				continue
			}
			refs = append(refs, insights.SubscriptionRef{ID: s.ID, Name: s.Name, Merchant: s.Merchant})
		}
		groups := insights.FindDuplicates(refs)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"duplicates": groups,
			"count":      len(groups),
		})
	}
}
