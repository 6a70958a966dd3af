package docstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var cbg = context.Background()

type doc struct {
	Name string `json:"name"`
}

func TestMemory_SetGetList(t *testing.T) {
	a := assert.New(t)
	m := NewMemory()

	err := m.RunTransaction(cbg, "game/1", func(ctx context.Context, tx Tx) error {
		tx.Set("game/1/players/a", doc{Name: "Alice"})
		tx.Set("game/1/players/b", doc{Name: "Bob"})
		tx.Set("game/1/state", doc{Name: "state"})

		// staged writes are not visible yet
		var d doc
		a.Equal(ErrNotFound, tx.Get(ctx, "game/1/players/a", &d))
		return nil
	})
	a.NoError(err)

	err = m.RunTransaction(cbg, "game/1", func(ctx context.Context, tx Tx) error {
		var d doc
		a.NoError(tx.Get(ctx, "game/1/players/a", &d))
		a.Equal("Alice", d.Name)

		docs, err := tx.List(ctx, "game/1/players/")
		a.NoError(err)
		a.Equal(2, len(docs))
		a.JSONEq(`{"name":"Bob"}`, string(docs["game/1/players/b"]))
		return nil
	})
	a.NoError(err)
}

func TestMemory_Rollback(t *testing.T) {
	m := NewMemory()
	errFailed := errors.New("failed")

	err := m.RunTransaction(cbg, "game/1", func(ctx context.Context, tx Tx) error {
		tx.Set("game/1/state", doc{Name: "x"})
		return errFailed
	})
	assert.Equal(t, errFailed, err)

	_ = m.RunTransaction(cbg, "game/1", func(ctx context.Context, tx Tx) error {
		var d doc
		assert.Equal(t, ErrNotFound, tx.Get(ctx, "game/1/state", &d))
		return nil
	})
}

func TestMemory_WriteOutsideRoot(t *testing.T) {
	m := NewMemory()
	err := m.RunTransaction(cbg, "game/1", func(ctx context.Context, tx Tx) error {
		tx.Set("game/1/state", doc{})
		tx.Set("game/10/state", doc{})
		return nil
	})

	assert.EqualError(t, err, "write outside of transaction root: game/10/state")
	assert.Equal(t, 0, len(m.docs))
}

func TestMemory_Delete(t *testing.T) {
	m := NewMemory()
	_ = m.RunTransaction(cbg, "game/1", func(ctx context.Context, tx Tx) error {
		tx.Set("game/1/players/a", doc{})
		tx.Set("game/1/players/a/hands/r1/cards/c1", doc{})
		tx.Set("game/1/players/ab", doc{})
		return nil
	})

	_ = m.RunTransaction(cbg, "game/1", func(ctx context.Context, tx Tx) error {
		tx.Delete("game/1/players/a")
		return nil
	})

	_ = m.RunTransaction(cbg, "game/1", func(ctx context.Context, tx Tx) error {
		docs, _ := tx.List(ctx, "game/1/")
		assert.Equal(t, 1, len(docs))
		_, ok := docs["game/1/players/ab"]
		assert.True(t, ok)
		return nil
	})
}

func TestMemory_IncrementIsSerialized(t *testing.T) {
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.RunTransaction(cbg, "game/1", func(ctx context.Context, tx Tx) error {
				tx.Increment("game/1/players/a/score", 2)
				return nil
			})
		}()
	}
	wg.Wait()

	_ = m.RunTransaction(cbg, "game/1", func(ctx context.Context, tx Tx) error {
		var score int
		assert.NoError(t, tx.Get(ctx, "game/1/players/a/score", &score))
		assert.Equal(t, 100, score)
		return nil
	})
}

func TestMemory_CanceledContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(cbg)
	cancel()

	called := false
	err := m.RunTransaction(ctx, "game/1", func(ctx context.Context, tx Tx) error {
		called = true
		return nil
	})

	assert.Equal(t, context.Canceled, err)
	assert.False(t, called)
}

func TestWithinRoot(t *testing.T) {
	assert.True(t, WithinRoot("game/1", "game/1"))
	assert.True(t, WithinRoot("game/1", "game/1/state"))
	assert.False(t, WithinRoot("game/1", "game/10"))
	assert.Equal(t, "game/1/state", Join("game", "1", "state"))
}
