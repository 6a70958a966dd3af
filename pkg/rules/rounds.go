package rules

import "upanddown-server/pkg/deck"

// MinNumCards is the smallest hand that is ever dealt
const MinNumCards = 1

// NumRounds returns how many rounds are played for an opening hand size
func NumRounds(openingNumCards int) int {
	return openingNumCards*2 - 1
}

// NextNumCards returns the hand size for the following round
// Hand sizes shrink by one until they reach 1, then grow by one.
func NextNumCards(numCards int, descending bool) (int, bool) {
	if descending {
		if numCards-1 < MinNumCards {
			return numCards + 1, false
		}

		return numCards - 1, true
	}

	return numCards + 1, false
}

// Schedule returns the hand size of every round for the opening hand size
func Schedule(openingNumCards int) []int {
	n := NumRounds(openingNumCards)
	if n <= 0 {
		return []int{}
	}

	schedule := make([]int, 0, n)
	numCards, descending := openingNumCards, true
	for i := 0; i < n; i++ {
		schedule = append(schedule, numCards)
		numCards, descending = NextNumCards(numCards, descending)
	}

	return schedule
}

// MaxNumCards returns the largest hand that can be dealt to numPlayers
// One card is reserved for the trump card.
func MaxNumCards(numPlayers int) int {
	if numPlayers <= 0 {
		return 0
	}

	return (deck.Size - 1) / numPlayers
}

// TricksWon counts the tricks won by each player. Tricks without a winner are ignored.
func TricksWon(winners []string) map[string]int {
	won := make(map[string]int)
	for _, winner := range winners {
		if winner != "" {
			won[winner]++
		}
	}

	return won
}
