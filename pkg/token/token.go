package token

import (
	"crypto/rand"
	"math/big"
)

// GameCodeAlphabet excludes vowels and look-alike characters (0/o, 1/l)
const GameCodeAlphabet = "bcdfghjkmnpqrstvwxz23456789"

// GameCode returns a crypto-secure random game code of length n
func GameCode(n int) (string, error) {
	max := big.NewInt(int64(len(GameCodeAlphabet)))

	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}

		b[i] = GameCodeAlphabet[idx.Int64()]
	}

	return string(b), nil
}
