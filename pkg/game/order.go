package game

import "sort"

// RebuildPlayerOrder returns the turn order for the next round
// Absent players are dropped, remaining players keep their relative order, and players who were not
// in the old order are appended sorted by ID. The result may be empty.
func RebuildPlayerOrder(oldOrder []string, players map[string]*Player) []string {
	order := make([]string, 0, len(players))
	seen := make(map[string]bool, len(oldOrder))
	for _, id := range oldOrder {
		seen[id] = true

		if player, ok := players[id]; ok && player.Present {
			order = append(order, id)
		}
	}

	joined := make([]string, 0)
	for id, player := range players {
		if !seen[id] && player.Present {
			joined = append(joined, id)
		}
	}

	sort.Strings(joined)
	return append(order, joined...)
}

// NextDealerIndex returns the index in newOrder of the first player after the old dealer who is still playing
// The old dealer is only picked again if nobody else from the old order is left. Returns 0 if no one from the
// old order made it into newOrder.
func NextDealerIndex(oldOrder []string, oldDealerIndex int, newOrder []string) int {
	index := make(map[string]int, len(newOrder))
	for i, id := range newOrder {
		index[id] = i
	}

	n := len(oldOrder)
	for step := 1; step <= n; step++ {
		if i, ok := index[oldOrder[(oldDealerIndex+step)%n]]; ok {
			return i
		}
	}

	return 0
}
