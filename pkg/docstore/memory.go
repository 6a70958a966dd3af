package docstore

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
)

// Memory is an in-memory Store
// It is suitable for tests and single process deployments.
type Memory struct {
	lock  sync.RWMutex
	docs  map[string]json.RawMessage
	roots sync.Map // map[string]*sync.Mutex
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		docs: make(map[string]json.RawMessage),
	}
}

func (m *Memory) rootLock(root string) *sync.Mutex {
	lock, _ := m.roots.LoadOrStore(root, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// RunTransaction runs fn while holding the lock for root
func (m *Memory) RunTransaction(ctx context.Context, root string, fn func(ctx context.Context, tx Tx) error) error {
	lock := m.rootLock(root)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memoryTx{store: m}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.batch.Validate(root); err != nil {
		return err
	}

	return m.apply(tx.batch.Ops)
}

func (m *Memory) apply(ops []Op) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	// validate increments first so a bad batch is not partially applied
	for _, op := range ops {
		if op.Kind != OpIncrement {
			continue
		}

		if raw, ok := m.docs[op.Path]; ok {
			if _, err := strconv.Atoi(string(raw)); err != nil {
				return err
			}
		}
	}

	for _, op := range ops {
		switch op.Kind {
		case OpSet:
			m.docs[op.Path] = op.Value
		case OpDelete:
			for path := range m.docs {
				if WithinRoot(op.Path, path) {
					delete(m.docs, path)
				}
			}
		case OpIncrement:
			current := 0
			if raw, ok := m.docs[op.Path]; ok {
				current, _ = strconv.Atoi(string(raw))
			}

			m.docs[op.Path] = json.RawMessage(strconv.Itoa(current + op.Delta))
		}
	}

	return nil
}

type memoryTx struct {
	store *Memory
	batch Batch
}

func (t *memoryTx) Get(ctx context.Context, path string, v interface{}) error {
	t.store.lock.RLock()
	raw, ok := t.store.docs[path]
	t.store.lock.RUnlock()

	if !ok {
		return ErrNotFound
	}

	return json.Unmarshal(raw, v)
}

func (t *memoryTx) List(ctx context.Context, prefix string) (map[string]json.RawMessage, error) {
	t.store.lock.RLock()
	defer t.store.lock.RUnlock()

	docs := make(map[string]json.RawMessage)
	for path, raw := range t.store.docs {
		if strings.HasPrefix(path, prefix) {
			docs[path] = raw
		}
	}

	return docs, nil
}

func (t *memoryTx) Set(path string, v interface{}) {
	t.batch.Set(path, v)
}

func (t *memoryTx) Delete(path string) {
	t.batch.Delete(path)
}

func (t *memoryTx) Increment(path string, delta int) {
	t.batch.Increment(path, delta)
}
