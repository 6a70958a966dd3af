package util

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomName(t *testing.T) {
	random = rand.New(rand.NewSource(0)) // nolint:gosec
	n1 := GetRandomName()
	n2 := GetRandomName()

	random = rand.New(rand.NewSource(0)) // nolint:gosec
	assert.Equal(t, n1, GetRandomName())
	assert.Equal(t, n2, GetRandomName())
	assert.Regexp(t, `^\w+ \w+$`, n1)
}
