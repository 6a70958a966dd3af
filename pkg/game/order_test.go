package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func players(present map[string]bool) map[string]*Player {
	p := make(map[string]*Player, len(present))
	for id, isPresent := range present {
		p[id] = &Player{ID: id, Present: isPresent}
	}

	return p
}

func TestRebuildPlayerOrder(t *testing.T) {
	tests := []struct {
		name     string
		oldOrder []string
		present  map[string]bool
		want     []string
	}{
		{
			name:    "first round sorts by ID",
			present: map[string]bool{"c": true, "a": true, "b": true},
			want:    []string{"a", "b", "c"},
		},
		{
			name:     "keeps relative order",
			oldOrder: []string{"c", "a", "b"},
			present:  map[string]bool{"c": true, "a": true, "b": true},
			want:     []string{"c", "a", "b"},
		},
		{
			name:     "drops absent players",
			oldOrder: []string{"c", "a", "b"},
			present:  map[string]bool{"c": true, "a": false, "b": true},
			want:     []string{"c", "b"},
		},
		{
			name:     "appends joiners sorted",
			oldOrder: []string{"c", "a"},
			present:  map[string]bool{"c": true, "a": true, "z": true, "b": true, "y": false},
			want:     []string{"c", "a", "b", "z"},
		},
		{
			name:     "returning players go to the back",
			oldOrder: []string{"c", "b"},
			present:  map[string]bool{"c": true, "b": true, "a": true},
			want:     []string{"c", "b", "a"},
		},
		{
			name:     "nobody left",
			oldOrder: []string{"a", "b"},
			present:  map[string]bool{"a": false, "b": false},
			want:     []string{},
		},
		{
			name:     "unknown IDs are ignored",
			oldOrder: []string{"gone", "a"},
			present:  map[string]bool{"a": true},
			want:     []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RebuildPlayerOrder(tt.oldOrder, players(tt.present)))
		})
	}
}

func TestNextDealerIndex(t *testing.T) {
	tests := []struct {
		name     string
		oldOrder []string
		dealer   int
		newOrder []string
		want     int
	}{
		{
			name:     "everybody stays",
			oldOrder: []string{"a", "b", "c", "d"},
			dealer:   1,
			newOrder: []string{"a", "b", "c", "d"},
			want:     2,
		},
		{
			name:     "wraps around",
			oldOrder: []string{"a", "b", "c", "d"},
			dealer:   3,
			newOrder: []string{"a", "b", "c", "d"},
			want:     0,
		},
		{
			name:     "dealer leaves",
			oldOrder: []string{"a", "b", "c", "d"},
			dealer:   3,
			newOrder: []string{"a", "b", "c"},
			want:     0,
		},
		{
			name:     "player before the dealer leaves",
			oldOrder: []string{"a", "b", "c", "d"},
			dealer:   2,
			newOrder: []string{"a", "c", "d"},
			want:     2,
		},
		{
			name:     "next seat leaves",
			oldOrder: []string{"a", "b", "c", "d"},
			dealer:   0,
			newOrder: []string{"a", "c", "d"},
			want:     1,
		},
		{
			name:     "joiners are dealt to after the old order",
			oldOrder: []string{"a", "b", "c"},
			dealer:   2,
			newOrder: []string{"b", "c", "z"},
			want:     0,
		},
		{
			name:     "only the dealer is left",
			oldOrder: []string{"a", "b", "c"},
			dealer:   1,
			newOrder: []string{"b", "z"},
			want:     0,
		},
		{
			name:     "nobody from the old order",
			oldOrder: []string{"a", "b"},
			dealer:   0,
			newOrder: []string{"y", "z"},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDealerIndex(tt.oldOrder, tt.dealer, tt.newOrder))
		})
	}
}
