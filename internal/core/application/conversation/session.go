package conversation

import (
	"context"
	"maps"
	"sync"
	"time"

	"tracker/internal/core/ports"
)

const sessionShards = 16

var _ ports.SessionStore = (*MemorySessionStore)(nil)

type sessionEntry struct {
	session ports.Session
	expires time.Time
}

type sessionShard struct {
	mu      sync.Mutex
	entries map[int64]sessionEntry
}

// MemorySessionStore keeps sessions in process, spread over a fixed number of
// lock shards. An entry expires ttl after its last Save.
type MemorySessionStore struct {
	shards [sessionShards]*sessionShard
	ttl    time.Duration
	now    func() time.Time
}

// NewMemorySessionStore returns a store whose sessions live for ttl; a
// non-positive ttl keeps them until cleared.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	s := &MemorySessionStore{ttl: ttl, now: time.Now}
	for i := range s.shards {
		s.shards[i] = &sessionShard{entries: make(map[int64]sessionEntry)}
	}
	return s
}

func (s *MemorySessionStore) shard(chatID int64) *sessionShard {
	idx := chatID % sessionShards
	if idx < 0 {
		idx = -idx
	}
	return s.shards[idx]
}

func (s *MemorySessionStore) Get(ctx context.Context, chatID int64) (ports.Session, error) {
	if err := ctx.Err(); err != nil {
		return ports.Session{}, err
	}

	sh := s.shard(chatID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[chatID]
	if !ok {
		return ports.Session{}, nil
	}
	if s.expired(e) {
		delete(sh.entries, chatID)
		return ports.Session{}, nil
	}
	return copySession(e.session), nil
}

func (s *MemorySessionStore) Save(ctx context.Context, chatID int64, session ports.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sh := s.shard(chatID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e := sessionEntry{session: copySession(session)}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	sh.entries[chatID] = e
	return nil
}

func (s *MemorySessionStore) Clear(ctx context.Context, chatID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sh := s.shard(chatID)
	sh.mu.Lock()
	delete(sh.entries, chatID)
	sh.mu.Unlock()
	return nil
}

// EvictExpired drops every expired session and returns how many were removed.
func (s *MemorySessionStore) EvictExpired() int {
	removed := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for id, e := range sh.entries {
			if s.expired(e) {
				delete(sh.entries, id)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemorySessionStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += len(sh.entries)
		sh.mu.Unlock()
	}
	return n
}

func (s *MemorySessionStore) expired(e sessionEntry) bool {
	return !e.expires.IsZero() && !s.now().Before(e.expires)
}

func copySession(in ports.Session) ports.Session {
	out := ports.Session{Mode: in.Mode}
	if len(in.Buffer) > 0 {
		out.Buffer = maps.Clone(in.Buffer)
	}
	return out
}
