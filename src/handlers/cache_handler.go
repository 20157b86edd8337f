package handlers

import (
	"centsible-server/src/db"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ClearCache drops one cache family by name. Admin-only escape hatch for
// when cached rule sets or summaries are suspected stale.
func ClearCache(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cacheName := chi.URLParam(r, "cache_name")
		switch cacheName {
		case "rules":
			db.ClearAllRuleCaches()
		case "summaries":
			db.ClearAllSummaryCaches()
		default:
			http.Error(w, "unknown cache, expected rules or summaries", http.StatusBadRequest)
			return
		}

		logger.Info("cache cleared", zap.String("cache", cacheName))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "cache cleared", "cache": cacheName})
	}
}
