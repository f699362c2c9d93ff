// Package cache guarda o último snapshot bom de cada visão do dashboard.
// Cada fetch é um snapshot consistente; duas buscas em voo para a mesma
// visão nunca se misturam — a mais nova vence, a superada é descartada.
package cache

import (
	"strings"
	"sync"
	"time"
)

type snapshot struct {
	value      interface{}
	fetchedAt  time.Time
	generation uint64
}

// Store é um cache por descritor de visão ("leads:stale:<tenant>",
// "dashboard:stats:<tenant>", ...). Invalidate recebe prefixo para derrubar
// todas as visões de uma entidade de uma vez.
type Store struct {
	mu        sync.Mutex
	snapshots map[string]*snapshot
	inflight  map[string]uint64
}

func NewStore() *Store {
	return &Store{
		snapshots: make(map[string]*snapshot),
		inflight:  make(map[string]uint64),
	}
}

// Begin registra uma busca em voo e devolve o token de geração. Um Begin
// posterior para a mesma chave invalida o token anterior.
func (s *Store) Begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflight[key]++
	return s.inflight[key]
}

// Complete grava o resultado só se nenhuma busca mais nova foi iniciada.
// Resposta atrasada de um fetch superado nunca sobrescreve dado fresco.
func (s *Store) Complete(key string, generation uint64, value interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight[key] != generation {
		return false
	}

	if existing, ok := s.snapshots[key]; ok && existing.generation > generation {
		return false
	}

	s.snapshots[key] = &snapshot{
		value:      value,
		fetchedAt:  time.Now(),
		generation: generation,
	}
	return true
}

// Get devolve o snapshot e se ele ainda está dentro do TTL. Snapshot vencido
// continua sendo devolvido (stale-but-available): em caso de falha no fetch
// o chamador mostra o último dado bom.
func (s *Store) Get(key string, ttl time.Duration) (value interface{}, fresh bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, found := s.snapshots[key]
	if !found {
		return nil, false, false
	}

	return snap.value, time.Since(snap.fetchedAt) < ttl, true
}

// Invalidate derruba todas as visões cujo descritor começa com o prefixo.
// Chamado pelos usecases depois de qualquer mutação bem sucedida.
func (s *Store) Invalidate(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.snapshots {
		if strings.HasPrefix(key, prefix) {
			delete(s.snapshots, key)
		}
	}
}
