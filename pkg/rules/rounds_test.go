package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"upanddown-server/pkg/snapshot"
)

func TestNumRounds(t *testing.T) {
	assert.Equal(t, 1, NumRounds(1))
	assert.Equal(t, 9, NumRounds(5))
	assert.Equal(t, 19, NumRounds(10))
}

func TestNextNumCards(t *testing.T) {
	n, desc := NextNumCards(3, true)
	assert.Equal(t, 2, n)
	assert.True(t, desc)

	n, desc = NextNumCards(1, true)
	assert.Equal(t, 2, n)
	assert.False(t, desc)

	n, desc = NextNumCards(4, false)
	assert.Equal(t, 5, n)
	assert.False(t, desc)
}

func TestSchedule(t *testing.T) {
	assert.Equal(t, []int{5, 4, 3, 2, 1, 2, 3, 4, 5}, Schedule(5))
	assert.Equal(t, []int{2, 1, 2}, Schedule(2))
	assert.Equal(t, []int{1}, Schedule(1))
	assert.Equal(t, []int{}, Schedule(0))

	for k := 1; k <= 17; k++ {
		schedule := Schedule(k)
		assert.Equal(t, 2*k-1, len(schedule))
		for i := range schedule {
			assert.Equal(t, schedule[i], schedule[len(schedule)-1-i], "symmetric")
		}
		assert.Equal(t, 1, schedule[k-1])
	}
}

func TestMaxNumCards(t *testing.T) {
	assert.Equal(t, 25, MaxNumCards(2))
	assert.Equal(t, 17, MaxNumCards(3))
	assert.Equal(t, 10, MaxNumCards(5))
	assert.Equal(t, 7, MaxNumCards(7))
	assert.Equal(t, 0, MaxNumCards(0))
}

func TestTricksWon(t *testing.T) {
	a := TricksWon([]string{"p1", "p2", "p1", ""})
	b := TricksWon([]string{"", "p1", "p1", "p2"})

	assert.Equal(t, map[string]int{"p1": 2, "p2": 1}, a)
	assert.Equal(t, a, b)
}

func TestMaxNumCards_Snapshot(t *testing.T) {
	type capacity struct {
		Players     int `json:"players"`
		MaxNumCards int `json:"maxNumCards"`
		NumRounds   int `json:"numRounds"`
	}

	table := make([]capacity, 0)
	for n := 2; n <= 10; n++ {
		max := MaxNumCards(n)
		table = append(table, capacity{Players: n, MaxNumCards: max, NumRounds: NumRounds(max)})
	}

	snapshot.ValidateSnapshot(t, table, 0)
}
