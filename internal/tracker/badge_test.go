package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckForBadges(t *testing.T) {
	tests := []struct {
		name         string
		profile      Profile
		completedAll bool
		want         []string
		wantBadges   []string
	}{
		{
			name:       "nothing unlocks on a fresh profile",
			profile:    Profile{Badges: []string{}},
			want:       []string{},
			wantBadges: []string{},
		},
		{
			name:         "perfect day only",
			profile:      Profile{Badges: []string{}},
			completedAll: true,
			want:         []string{BadgePerfectDay},
			wantBadges:   []string{BadgePerfectDay},
		},
		{
			name:       "streak thresholds",
			profile:    Profile{CurrentStreak: 7, Badges: []string{}},
			want:       []string{BadgeStreak3, BadgeStreak7},
			wantBadges: []string{BadgeStreak3, BadgeStreak7},
		},
		{
			name:       "momentum thresholds in evaluation order",
			profile:    Profile{MomentumScore: 100, Badges: []string{BadgePerfectDay}},
			want:       []string{BadgeMomentum50, BadgeMomentum100},
			wantBadges: []string{BadgePerfectDay, BadgeMomentum50, BadgeMomentum100},
		},
		{
			name:         "owned badges are skipped",
			profile:      Profile{CurrentStreak: 3, MomentumScore: 50, Badges: []string{BadgeStreak3, BadgeMomentum50}},
			completedAll: true,
			want:         []string{BadgePerfectDay},
			wantBadges:   []string{BadgeStreak3, BadgeMomentum50, BadgePerfectDay},
		},
		{
			name:       "just below thresholds",
			profile:    Profile{CurrentStreak: 2, MomentumScore: 49, Badges: nil},
			want:       []string{},
			wantBadges: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := tt.profile
			got := CheckForBadges(&profile, tt.completedAll)

			assert.Equal(t, tt.want, badgeIDs(got))
			assert.Equal(t, tt.wantBadges, profile.Badges)
		})
	}
}

func TestBadgeCatalog(t *testing.T) {
	catalog := BadgeCatalog()

	assert.Equal(t,
		[]string{BadgeStreak3, BadgeStreak7, BadgeMomentum50, BadgeMomentum100, BadgePerfectDay},
		badgeIDs(catalog),
	)
	for _, b := range catalog {
		assert.NotEmpty(t, b.Name)
		assert.NotEmpty(t, b.Description)
	}

	_, ok := BadgeByID("unknown")
	assert.False(t, ok)
}
