package api

import (
	"centsible-server/src/config"
	"centsible-server/src/handlers"
	"centsible-server/src/middleware"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func NewRouter(pool *pgxpool.Pool, logger *zap.Logger, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.DemoModeMiddleware(cfg.DemoMode))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", handlers.Login(pool, logger))
		r.Post("/register", handlers.Register(pool, logger, cfg.RequireInvite))

		// Share links work without a session; the token is the credential.
		r.Get("/split-bills/shared/{token}", handlers.GetSharedSplitBill(pool, logger))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			// User
			r.Get("/user/{user_id}", handlers.GetUser(pool, logger))
			r.Put("/user", handlers.UpdateUser(pool, logger))
			r.Post("/user/change-password", handlers.ChangePassword(pool, logger))
			r.Delete("/user", handlers.DeleteUser(pool, logger))

			// Categories
			r.Get("/categories", handlers.GetAllCategories(pool, logger))
			r.Post("/categories", handlers.CreateCategory(pool, logger))
			r.Put("/categories/{category_id}", handlers.UpdateCategory(pool, logger))
			r.Delete("/categories/{category_id}", handlers.DeleteCategory(pool, logger))

			// Category Rules
			r.Post("/category-rules", handlers.CreateCategoryRule(pool, logger))
			r.Get("/category-rules", handlers.GetAllCategoryRules(pool, logger))
			r.Get("/category-rules/{rule_id}", handlers.GetCategoryRuleByID(pool, logger))
			r.Put("/category-rules/{rule_id}", handlers.UpdateCategoryRule(pool, logger))
			r.Delete("/category-rules/{rule_id}", handlers.DeleteCategoryRule(pool, logger))
			r.Post("/category-rules/trigger", handlers.TriggerCategoryRules(pool, logger))
			r.Post("/category-rules/preview", handlers.PreviewCategoryRules(pool, logger))

			// Expenses and income
			r.Post("/expenses", handlers.CreateExpense(pool, logger))
			r.Get("/expenses", handlers.GetAllExpenses(pool, logger))
			r.Get("/expenses/{expense_id}", handlers.GetExpenseByID(pool, logger))
			r.Put("/expenses/{expense_id}", handlers.UpdateExpense(pool, logger))
			r.Delete("/expenses/{expense_id}", handlers.DeleteExpense(pool, logger))

			// Budgets
			r.Post("/budgets", handlers.CreateBudget(pool, logger))
			r.Get("/budgets", handlers.GetAllBudgets(pool, logger))
			r.Get("/budgets/{budget_id}", handlers.GetBudgetByID(pool, logger))
			r.Get("/budgets/{budget_id}/summary", handlers.GetBudgetSummary(pool, logger))
			r.Put("/budgets/{budget_id}", handlers.UpdateBudget(pool, logger))
			r.Delete("/budgets/{budget_id}", handlers.DeleteBudget(pool, logger))

			// Subscriptions
			r.Post("/subscriptions", handlers.CreateSubscription(pool, logger))
			r.Get("/subscriptions", handlers.GetAllSubscriptions(pool, logger))
			r.Get("/subscriptions/roi", handlers.GetSubscriptionROI(pool, logger))
			r.Get("/subscriptions/duplicates", handlers.GetDuplicateSubscriptions(pool, logger))
			r.Get("/subscriptions/{subscription_id}", handlers.GetSubscriptionByID(pool, logger))
			r.Put("/subscriptions/{subscription_id}", handlers.UpdateSubscription(pool, logger))
			r.Delete("/subscriptions/{subscription_id}", handlers.DeleteSubscription(pool, logger))

			// Watchlist
			r.Post("/watchlist", handlers.CreateWatchlistItem(pool, logger))
			r.Get("/watchlist", handlers.GetWatchlist(pool, logger))
			r.Get("/watchlist/{item_id}", handlers.GetWatchlistItemByID(pool, logger))
			r.Put("/watchlist/{item_id}", handlers.UpdateWatchlistItem(pool, logger))
			r.Delete("/watchlist/{item_id}", handlers.DeleteWatchlistItem(pool, logger))

			// Goals
			r.Post("/goals", handlers.CreateGoal(pool, logger))
			r.Get("/goals", handlers.GetAllGoals(pool, logger))
			r.Get("/goals/{goal_id}", handlers.GetGoalByID(pool, logger))
			r.Put("/goals/{goal_id}", handlers.UpdateGoal(pool, logger))
			r.Post("/goals/{goal_id}/contribute", handlers.ContributeToGoal(pool, logger))
			r.Delete("/goals/{goal_id}", handlers.DeleteGoal(pool, logger))

			// Split Bills
			r.Post("/split-bills", handlers.CreateSplitBill(pool, logger))
			r.Get("/split-bills", handlers.GetAllSplitBills(pool, logger))
			r.Get("/split-bills/{bill_id}", handlers.GetSplitBillByID(pool, logger))
			r.Post("/split-bills/{bill_id}/participants/{participant_id}/settle", handlers.SettleSplitBillParticipant(pool, logger))
			r.Delete("/split-bills/{bill_id}", handlers.DeleteSplitBill(pool, logger))
		})

		// Super Admin Routes
		r.With(middleware.JWTAuthMiddleware, middleware.SuperAdminMiddleware).Group(func(r chi.Router) {
			// User
			r.Get("/admin/users", handlers.GetAllUsers(pool, logger))
			r.Put("/admin/user/{user_id}", handlers.AdminUpdateUser(pool, logger))
			r.Delete("/admin/user/{user_id}", handlers.AdminDeleteUser(pool, logger))
			r.Post("/admin/user/lock/{user_id}", handlers.LockUser(pool, logger))
			r.Post("/admin/user/unlock/{user_id}", handlers.UnlockUser(pool, logger))

			// Cache
			r.Post("/admin/cache/clear/{cache_name}", handlers.ClearCache(logger))

			// Whitelisted Emails
			r.Post("/admin/whitelisted-emails", handlers.CreateWhitelistedEmail(pool, logger))
			r.Get("/admin/whitelisted-emails", handlers.GetAllWhitelistedEmails(pool, logger))
			r.Delete("/admin/whitelisted-emails/{id}", handlers.DeleteWhitelistedEmail(pool, logger))
		})
	})

	return r
}
