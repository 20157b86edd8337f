package insights

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Normalized names within this edit distance are considered the same
// service ("Netflix" vs "Netflx", "Spotify AB" vs "Spotify").
const duplicateDistance = 2

// SubscriptionRef is the minimal view of a subscription needed for
// duplicate detection.
type SubscriptionRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Merchant string `json:"merchant"`
}

// DuplicateGroup is a set of two or more subscriptions that appear to be
// the same service.
type DuplicateGroup struct {
	Key           string            `json:"key"`
	Subscriptions []SubscriptionRef `json:"subscriptions"`
}

// NormalizeName lowercases and strips everything but letters and digits, so
// "Disney+ " and "disney plus" style variants compare closely.
func NormalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FindDuplicates groups subscriptions whose normalized names (or merchants)
// are equal or within a small edit distance. Each subscription lands in at
// most one group; groups keep input order.
func FindDuplicates(subs []SubscriptionRef) []DuplicateGroup {
	used := make([]bool, len(subs))
	var groups []DuplicateGroup

	for i := range subs {
		if used[i] {
			continue
		}
		group := DuplicateGroup{Key: NormalizeName(subs[i].Name), Subscriptions: []SubscriptionRef{subs[i]}}
		for j := i + 1; j < len(subs); j++ {
			if used[j] {
				continue
			}
			if sameService(subs[i], subs[j]) {
				used[j] = true
				group.Subscriptions = append(group.Subscriptions, subs[j])
			}
		}
		if len(group.Subscriptions) > 1 {
			used[i] = true
			groups = append(groups, group)
		}
	}
	return groups
}

func sameService(a, b SubscriptionRef) bool {
	if closeEnough(NormalizeName(a.Name), NormalizeName(b.Name)) {
		return true
	}
	am, bm := NormalizeName(a.Merchant), NormalizeName(b.Merchant)
	return am != "" && bm != "" && closeEnough(am, bm)
}

func closeEnough(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return levenshtein.ComputeDistance(a, b) <= duplicateDistance
}
