package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "netflix", NormalizeName("Netflix"))
	assert.Equal(t, "disney", NormalizeName("Disney+ "))
	assert.Equal(t, "hbomax", NormalizeName("HBO Max"))
	assert.Equal(t, "", NormalizeName("++ --"))
}

func TestFindDuplicatesExactAndFuzzy(t *testing.T) {
	subs := []SubscriptionRef{
		{ID: 1, Name: "Netflix"},
		{ID: 2, Name: "netflix "},
		{ID: 3, Name: "Netflx"},
		{ID: 4, Name: "Spotify"},
	}
	groups := FindDuplicates(subs)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Subscriptions, 3)
	assert.Equal(t, "netflix", groups[0].Key)
}

func TestFindDuplicatesByMerchant(t *testing.T) {
	subs := []SubscriptionRef{
		{ID: 1, Name: "Music", Merchant: "Spotify AB"},
		{ID: 2, Name: "Streaming", Merchant: "SpotifyAB"},
	}
	groups := FindDuplicates(subs)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Subscriptions, 2)
}

func TestFindDuplicatesNoFalsePositives(t *testing.T) {
	subs := []SubscriptionRef{
		{ID: 1, Name: "Netflix"},
		{ID: 2, Name: "Spotify"},
		{ID: 3, Name: "iCloud"},
	}
	assert.Empty(t, FindDuplicates(subs))
}

func TestFindDuplicatesEachSubscriptionInOneGroup(t *testing.T) {
	subs := []SubscriptionRef{
		{ID: 1, Name: "Netflix"},
		{ID: 2, Name: "Netflix"},
		{ID: 3, Name: "Netflix"},
	}
	groups := FindDuplicates(subs)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Subscriptions, 3)
}

func TestFindDuplicatesEmptyNamesDoNotMatch(t *testing.T) {
	subs := []SubscriptionRef{
		{ID: 1, Name: "++"},
		{ID: 2, Name: "--"},
	}
	assert.Empty(t, FindDuplicates(subs))
}
