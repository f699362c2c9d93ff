package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoreBeginComplete(t *testing.T) {
	store := NewStore()

	gen := store.Begin("leads:stale:re-001")
	assert.True(t, store.Complete("leads:stale:re-001", gen, "snapshot-1"))

	value, fresh, ok := store.Get("leads:stale:re-001", time.Minute)
	assert.True(t, ok)
	assert.True(t, fresh)
	assert.Equal(t, "snapshot-1", value)
}

func TestStoreSupersededFetchIsDiscarded(t *testing.T) {
	store := NewStore()

	gen1 := store.Begin("dashboard:stats:re-001")
	gen2 := store.Begin("dashboard:stats:re-001")

	// O fetch mais novo termina primeiro.
	assert.True(t, store.Complete("dashboard:stats:re-001", gen2, "novo"))

	// A resposta atrasada do fetch antigo não sobrescreve.
	assert.False(t, store.Complete("dashboard:stats:re-001", gen1, "velho"))

	value, _, ok := store.Get("dashboard:stats:re-001", time.Minute)
	assert.True(t, ok)
	assert.Equal(t, "novo", value)
}

func TestStoreStaleButAvailable(t *testing.T) {
	store := NewStore()

	gen := store.Begin("leads:stale:re-001")
	store.Complete("leads:stale:re-001", gen, "velho-mas-util")

	// TTL zero: o snapshot já nasce vencido, mas continua disponível.
	value, fresh, ok := store.Get("leads:stale:re-001", 0)
	assert.True(t, ok)
	assert.False(t, fresh)
	assert.Equal(t, "velho-mas-util", value)
}

func TestStoreInvalidateByPrefix(t *testing.T) {
	store := NewStore()

	for _, key := range []string{"leads:stale:re-001", "leads:board:re-001", "dashboard:stats:re-001"} {
		gen := store.Begin(key)
		store.Complete(key, gen, key)
	}

	store.Invalidate("leads")

	_, _, ok := store.Get("leads:stale:re-001", time.Minute)
	assert.False(t, ok)
	_, _, ok = store.Get("leads:board:re-001", time.Minute)
	assert.False(t, ok)

	// Outras visões ficam.
	_, _, ok = store.Get("dashboard:stats:re-001", time.Minute)
	assert.True(t, ok)
}

func TestStoreGetMissingKey(t *testing.T) {
	store := NewStore()

	value, fresh, ok := store.Get("nada", time.Minute)
	assert.Nil(t, value)
	assert.False(t, fresh)
	assert.False(t, ok)
}
