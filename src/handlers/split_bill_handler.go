package handlers

import (
	db "centsible-server/src/db/sql"
	"centsible-server/src/models"
	"centsible-server/src/rules"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Participant shares must add up to the bill total within a cent.
const shareTolerance = 0.01

type splitBillRequest struct {
	Name         string  `json:"name"`
	TotalAmount  float64 `json:"total_amount"`
	Date         string  `json:"date"`
	CategoryID   *int    `json:"category_id"`
	Participants []struct {
		Name        string  `json:"name"`
		ShareAmount float64 `json:"share_amount"`
	} `json:"participants"`
}

func (req splitBillRequest) validate() string {
	if req.Name == "" || req.TotalAmount <= 0 {
		return "name and a positive total_amount are required"
	}
	if len(req.Participants) == 0 {
		return "at least one participant is required"
	}
	total := 0.0
	for _, p := range req.Participants {
		if p.Name == "" {
			return "participant name is required"
		}
		if p.ShareAmount <= 0 {
			return "participant share_amount must be positive"
		}
		total += p.ShareAmount
	}
	if math.Abs(total-req.TotalAmount) > shareTolerance+1e-9 {
		return "participant shares must add up to total_amount"
	}
	return ""
}

func CreateSplitBill(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req splitBillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode create split bill request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if msg := req.validate(); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		bill := &models.SplitBill{
			UserID:      int(userID),
			Name:        req.Name,
			TotalAmount: req.TotalAmount,
			Date:        date,
			ShareToken:  uuid.NewString(),
			CategoryID:  req.CategoryID,
		}
		for _, p := range req.Participants {
			bill.Participants = append(bill.Participants, models.SplitBillParticipant{
				Name:        p.Name,
				ShareAmount: p.ShareAmount,
			})
		}

		if bill.CategoryID == nil {
			bill.CategoryID = autoCategorize(r.Context(), pool, logger, int(userID),
				rules.TypeBill, rules.Record{rules.FieldBillName: bill.Name})
		}

		created, err := db.CreateSplitBill(r.Context(), pool, bill)
		if err != nil {
			logger.Error("failed to create split bill", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to create split bill", http.StatusInternalServerError)
			return
		}

		logger.Info("split bill created",
			zap.Int("bill_id", created.ID), zap.Int64("user_id", userID), zap.String("name", created.Name))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetSplitBillByID(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		billIDStr := chi.URLParam(r, "bill_id")
		billID, err := strconv.Atoi(billIDStr)
		if err != nil {
			logger.Warn("invalid bill id param", zap.String("bill_id", billIDStr))
			http.Error(w, "invalid bill id", http.StatusBadRequest)
			return
		}

		bill, err := db.GetSplitBillByID(r.Context(), pool, int(userID), billID)
		if err != nil {
			logger.Warn("split bill not found",
				zap.Int("bill_id", billID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "split bill not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(bill)
	}
}

func GetAllSplitBills(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		bills, err := db.GetAllSplitBillsForUser(r.Context(), pool, int(userID))
		if err != nil {
			logger.Error("failed to get split bills", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to get split bills", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(bills)
	}
}

// GetSharedSplitBill serves the unauthenticated share link. The token is
// the only credential; owner identity is not revealed beyond the user id
// already embedded in the bill.
func GetSharedSplitBill(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")
		if _, err := uuid.Parse(token); err != nil {
			http.Error(w, "invalid share token", http.StatusBadRequest)
			return
		}

		bill, err := db.GetSplitBillByShareToken(r.Context(), pool, token)
		if err != nil {
			logger.Warn("shared split bill not found", zap.Error(err))
			http.Error(w, "split bill not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(bill)
	}
}

func SettleSplitBillParticipant(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		billIDStr := chi.URLParam(r, "bill_id")
		billID, err := strconv.Atoi(billIDStr)
		if err != nil {
			logger.Warn("invalid bill id param", zap.String("bill_id", billIDStr))
			http.Error(w, "invalid bill id", http.StatusBadRequest)
			return
		}
		participantIDStr := chi.URLParam(r, "participant_id")
		participantID, err := strconv.Atoi(participantIDStr)
		if err != nil {
			logger.Warn("invalid participant id param", zap.String("participant_id", participantIDStr))
			http.Error(w, "invalid participant id", http.StatusBadRequest)
			return
		}

		if err := db.SettleParticipant(r.Context(), pool, int(userID), billID, participantID); err != nil {
			logger.Warn("failed to settle participant",
				zap.Int("bill_id", billID), zap.Int("participant_id", participantID),
				zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "participant not found", http.StatusNotFound)
			return
		}

		logger.Info("split bill participant settled",
			zap.Int("bill_id", billID), zap.Int("participant_id", participantID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "participant settled"})
	}
}

func DeleteSplitBill(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		billIDStr := chi.URLParam(r, "bill_id")
		billID, err := strconv.Atoi(billIDStr)
		if err != nil {
			logger.Warn("invalid bill id param", zap.String("bill_id", billIDStr))
			http.Error(w, "invalid bill id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteSplitBill(r.Context(), pool, int(userID), billID); err != nil {
			logger.Error("failed to delete split bill",
				zap.Int("bill_id", billID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to delete split bill", http.StatusInternalServerError)
			return
		}

		logger.Info("split bill deleted", zap.Int("bill_id", billID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "split bill deleted"})
	}
}
