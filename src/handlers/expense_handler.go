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

type expenseRequest struct {
	Kind       string  `json:"kind"`
	Amount     float64 `json:"amount"`
	Merchant   string  `json:"merchant"`
	Note       string  `json:"note"`
	Tag        string  `json:"tag"`
	Location   string  `json:"location"`
	CategoryID *int    `json:"category_id"`
	Date       string  `json:"date"`
}

func (req expenseRequest) toModel(userID, expenseID int) (*models.Expense, error) {
	kind := req.Kind
	if kind == "" {
		kind = string(rules.TypeExpense)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}
	return &models.Expense{
		ID:         expenseID,
		UserID:     userID,
		Kind:       kind,
		Amount:     req.Amount,
		Merchant:   req.Merchant,
		Note:       req.Note,
		Tag:        req.Tag,
		Location:   req.Location,
		CategoryID: req.CategoryID,
		Date:       date,
	}, nil
}

func (req expenseRequest) record() rules.Record {
	return rules.Record{
		rules.FieldMerchant: req.Merchant,
		rules.FieldNote:     req.Note,
		rules.FieldTag:      req.Tag,
		rules.FieldLocation: req.Location,
	}
}

func CreateExpense(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req expenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode create expense request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Amount <= 0 {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}
		if req.Kind != "" && req.Kind != string(rules.TypeExpense) && req.Kind != string(rules.TypeIncome) {
			http.Error(w, "kind must be expense or income", http.StatusBadRequest)
			return
		}

		expense, err := req.toModel(int(userID), 0)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		if expense.CategoryID == nil {
			expense.CategoryID = autoCategorize(r.Context(), pool, logger, int(userID),
				rules.TransactionType(expense.Kind), req.record())
		}

		created, err := db.CreateExpense(r.Context(), pool, expense)
		if err != nil {
			logger.Error("failed to create expense", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to create expense", http.StatusInternalServerError)
			return
		}

		logger.Info("expense created",
			zap.Int("expense_id", created.ID), zap.Int64("user_id", userID), zap.String("kind", created.Kind))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetExpenseByID(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		expenseIDStr := chi.URLParam(r, "expense_id")
		expenseID, err := strconv.Atoi(expenseIDStr)
		if err != nil {
			logger.Warn("invalid expense id param", zap.String("expense_id", expenseIDStr))
			http.Error(w, "invalid expense id", http.StatusBadRequest)
			return
		}

		expense, err := db.GetExpenseByID(r.Context(), pool, int(userID), expenseID)
		if err != nil {
			logger.Warn("expense not found",
				zap.Int("expense_id", expenseID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expense)
	}
}

func GetAllExpenses(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var filter db.ExpenseFilter
		filter.Kind = r.URL.Query().Get("kind")
		if categoryStr := r.URL.Query().Get("category_id"); categoryStr != "" {
			categoryID, err := strconv.Atoi(categoryStr)
			if err != nil {
				http.Error(w, "invalid category_id", http.StatusBadRequest)
				return
			}
			filter.CategoryID = categoryID
		}
		if monthStr := r.URL.Query().Get("month"); monthStr != "" {
			month, err := time.Parse("2006-01", monthStr)
			if err != nil {
				http.Error(w, "invalid month, expected YYYY-MM", http.StatusBadRequest)
				return
			}
			filter.Month = month
		}

		expenses, err := db.GetAllExpensesForUser(r.Context(), pool, int(userID), filter)
		if err != nil {
			logger.Error("failed to get expenses", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to get expenses", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expenses)
	}
}

func UpdateExpense(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		expenseIDStr := chi.URLParam(r, "expense_id")
		expenseID, err := strconv.Atoi(expenseIDStr)
		if err != nil {
			logger.Warn("invalid expense id param", zap.String("expense_id", expenseIDStr))
			http.Error(w, "invalid expense id", http.StatusBadRequest)
			return
		}

		var req expenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode update expense request body", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Amount <= 0 {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}
		if req.Kind != "" && req.Kind != string(rules.TypeExpense) && req.Kind != string(rules.TypeIncome) {
			http.Error(w, "kind must be expense or income", http.StatusBadRequest)
			return
		}

		expense, err := req.toModel(int(userID), expenseID)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		if expense.CategoryID == nil {
			expense.CategoryID = autoCategorize(r.Context(), pool, logger, int(userID),
				rules.TransactionType(expense.Kind), req.record())
		}

		updated, err := db.UpdateExpense(r.Context(), pool, expense)
		if err != nil {
			logger.Error("failed to update expense",
				zap.Int("expense_id", expenseID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to update expense", http.StatusInternalServerError)
			return
		}

		logger.Info("expense updated", zap.Int("expense_id", updated.ID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteExpense(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		expenseIDStr := chi.URLParam(r, "expense_id")
		expenseID, err := strconv.Atoi(expenseIDStr)
		if err != nil {
			logger.Warn("invalid expense id param", zap.String("expense_id", expenseIDStr))
			http.Error(w, "invalid expense id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteExpense(r.Context(), pool, int(userID), expenseID); err != nil {
			logger.Error("failed to delete expense",
				zap.Int("expense_id", expenseID), zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to delete expense", http.StatusInternalServerError)
			return
		}

		logger.Info("expense deleted", zap.Int("expense_id", expenseID), zap.Int64("user_id", userID))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "expense deleted"})
	}
}
