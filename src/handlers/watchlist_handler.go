package handlers

import (
	db "centsible-server/src/db/sql"
	"centsible-server/src/models"
	"centsible-server/src/rules"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var investmentTypes = map[string]bool{
	"stock":  true,
	"etf":    true,
	"crypto": true,
	"fund":   true,
}

type watchlistItemRequest struct {
	Symbol         string   `json:"symbol"`
	Name           string   `json:"name"`
	InvestmentType string   `json:"investment_type"`
	TargetPrice    *float64 `json:"target_price"`
	Notes          string   `json:"notes"`
	CategoryID     *int     `json:"category_id"`
}

func (req watchlistItemRequest) toModel(userID, itemID int) *models.WatchlistItem {
	return &models.WatchlistItem{
		ID:             itemID,
		UserID:         userID,
		Symbol:         strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Name:           req.Name,
		InvestmentType: req.InvestmentType,
		TargetPrice:    req.TargetPrice,
		Notes:          req.Notes,
		CategoryID:     req.CategoryID,
	}
}

func CreateWatchlistItem(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req watchlistItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode create watchlist item request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Symbol) == "" {
			http.Error(w, "symbol is required", http.StatusBadRequest)
			return
		}
		if !investmentTypes[req.InvestmentType] {
			http.Error(w, "investment_type must be stock, etf, crypto, or fund", http.StatusBadRequest)
			return
		}

		item := req.toModel(int(userID), 0)
		if item.CategoryID == nil {
			item.CategoryID = autoCategorize(r.Context(), pool, logger, int(userID),
				rules.TypeInvestment, rules.Record{rules.FieldInvestmentType: item.InvestmentType})
		}

		created, err := db.CreateWatchlistItem(r.Context(), pool, item)
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				http.Error(w, "symbol is already on the watchlist", http.StatusConflict)
				return
			}
			logger.Error("failed to create watchlist item", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to create watchlist item", http.StatusInternalServerError)
			return
		}

		logger.Info("watchlist item created",
			zap.Int("item_id", created.ID), zap.Int64("user_id", userID), zap.String("symbol", created.Symbol))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetWatchlistItemByID(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		itemIDStr := chi.URLParam(r, "item_id")
		itemID, err := strconv.Atoi(itemIDStr)
		if err != nil {
			logger.Warn("invalid watchlist item id param", zap.String("item_id", itemIDStr))
			http.Error(w, "invalid item id", http.StatusBadRequest)
			return
		}

		item, err := db.GetWatchlistItemByID(r.Context(), pool, int(userID), itemID)
		if err != nil {
			logger.Warn("watchlist item not found",
				zap.Int("item_id", itemID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "watchlist item not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(item)
	}
}

func GetWatchlist(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		items, err := db.GetAllWatchlistItemsForUser(r.Context(), pool, int(userID))
		if err != nil {
			logger.Error("failed to get watchlist", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to get watchlist", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}

func UpdateWatchlistItem(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		itemIDStr := chi.URLParam(r, "item_id")
		itemID, err := strconv.Atoi(itemIDStr)
		if err != nil {
			logger.Warn("invalid watchlist item id param", zap.String("item_id", itemIDStr))
			http.Error(w, "invalid item id", http.StatusBadRequest)
			return
		}

		var req watchlistItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode update watchlist item request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Symbol) == "" {
			http.Error(w, "symbol is required", http.StatusBadRequest)
			return
		}
		if !investmentTypes[req.InvestmentType] {
			http.Error(w, "investment_type must be stock, etf, crypto, or fund", http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateWatchlistItem(r.Context(), pool, req.toModel(int(userID), itemID))
		if err != nil {
			logger.Error("failed to update watchlist item",
				zap.Int("item_id", itemID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to update watchlist item", http.StatusInternalServerError)
			return
		}

		logger.Info("watchlist item updated", zap.Int("item_id", updated.ID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteWatchlistItem(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		itemIDStr := chi.URLParam(r, "item_id")
		itemID, err := strconv.Atoi(itemIDStr)
		if err != nil {
			logger.Warn("invalid watchlist item id param", zap.String("item_id", itemIDStr))
			http.Error(w, "invalid item id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteWatchlistItem(r.Context(), pool, int(userID), itemID); err != nil {
			logger.Error("failed to delete watchlist item",
				zap.Int("item_id", itemID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to delete watchlist item", http.StatusInternalServerError)
			return
		}

		logger.Info("watchlist item deleted", zap.Int("item_id", itemID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "watchlist item deleted"})
	}
}
