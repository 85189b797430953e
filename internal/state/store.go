package state

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/five82/pagetrack/internal/books"
	"github.com/five82/pagetrack/internal/kv"
)

// Snapshot represents the latest collection available to readers.
type Snapshot struct {
	Books               []books.Book
	Loaded              bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed loads or writes
}

// IsDegraded returns true when storage has failed repeatedly.
func (s Snapshot) IsDegraded() bool {
	return s.ConsecutiveFailures >= 2
}

// Find returns the book with id from the snapshot.
func (s Snapshot) Find(id string) (books.Book, bool) {
	if i := books.IndexOf(s.Books, id); i >= 0 {
		return s.Books[i], true
	}
	return books.Book{}, false
}

// Store owns the book collection and persists it to a kv.Store under a single
// key. Every mutation rewrites the whole collection.
type Store struct {
	kv  kv.Store
	key string

	mu       sync.RWMutex
	snapshot Snapshot

	subMu  sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
}

// New returns a Store persisting into backend.
func New(backend kv.Store) *Store {
	return &Store{
		kv:   backend,
		key:  books.StorageKey,
		subs: make(map[int]chan Snapshot),
	}
}

// Load replaces the in-memory collection with the stored one. A missing key is
// an empty collection. When reading or decoding fails the previous data is
// kept and the error is recorded.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		s.recordFailure(err)
		s.publishLocked()
		return err
	}
	s.replaceLocked(list)
	s.publishLocked()
	return nil
}

// SaveAll overwrites the stored collection with list. Nothing is written when
// two books share an id.
func (s *Store) SaveAll(ctx context.Context, list []books.Book) error {
	if err := books.CheckIDs(list); err != nil {
		return err
	}
	return s.mutate(ctx, func([]books.Book) ([]books.Book, bool, error) {
		return books.Clone(list), true, nil
	})
}

// Create validates fields and appends a new book with a fresh id.
func (s *Store) Create(ctx context.Context, fields books.Fields) (books.Book, error) {
	if err := fields.Validate(); err != nil {
		return books.Book{}, err
	}
	created := fields.Apply(books.Book{ID: books.NewID()})
	err := s.mutate(ctx, func(list []books.Book) ([]books.Book, bool, error) {
		return append(list, created), true, nil
	})
	if err != nil {
		return books.Book{}, err
	}
	log.Printf("book created: %s %q", created.ID, created.Title)
	return created, nil
}

// Update validates fields and replaces every editable field of the book with
// id. It reports false without writing when no such book exists.
func (s *Store) Update(ctx context.Context, id string, fields books.Fields) (bool, error) {
	if err := fields.Validate(); err != nil {
		return false, err
	}
	return s.modify(ctx, id, "updated", func(b books.Book) books.Book {
		return fields.Apply(b)
	})
}

// Delete removes the book with id. It reports false when no such book exists.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := s.mutate(ctx, func(list []books.Book) ([]books.Book, bool, error) {
		i := books.IndexOf(list, id)
		if i < 0 {
			return list, false, nil
		}
		found = true
		return append(list[:i], list[i+1:]...), true, nil
	})
	if err != nil {
		return false, err
	}
	if found {
		log.Printf("book deleted: %s", id)
	}
	return found, nil
}

// IncrementPages adds one page read. A book already at or past its total is
// left as it is.
func (s *Store) IncrementPages(ctx context.Context, id string) (bool, error) {
	return s.modify(ctx, id, "incremented", func(b books.Book) books.Book {
		if b.PagesRead < b.TotalPages {
			b.PagesRead++
		}
		return b
	})
}

// DecrementPages removes one page read. A book at or below zero is left as it
// is.
func (s *Store) DecrementPages(ctx context.Context, id string) (bool, error) {
	return s.modify(ctx, id, "decremented", func(b books.Book) books.Book {
		if b.PagesRead > 0 {
			b.PagesRead--
		}
		return b
	})
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneLocked()
}

// Find returns the book with id from the in-memory collection.
func (s *Store) Find(id string) (books.Book, bool) {
	return s.Snapshot().Find(id)
}

// Subscribe returns a channel that receives the snapshot after every load or
// mutation. Only the latest pending snapshot is kept, so slow readers never
// block writers. Call the returned func to unsubscribe.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.subMu.Lock()
	if s.subs == nil {
		s.subs = make(map[int]chan Snapshot)
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) modify(ctx context.Context, id, verb string, fn func(books.Book) books.Book) (bool, error) {
	found := false
	err := s.mutate(ctx, func(list []books.Book) ([]books.Book, bool, error) {
		i := books.IndexOf(list, id)
		if i < 0 {
			return list, false, nil
		}
		found = true
		list[i] = fn(list[i])
		return list, true, nil
	})
	if err != nil {
		return false, err
	}
	if found {
		log.Printf("book %s: %s", verb, id)
	}
	return found, nil
}

// mutate runs a read-modify-write cycle against storage while holding the
// write lock. fn receives a private copy of the stored collection and reports
// whether anything changed.
func (s *Store) mutate(ctx context.Context, fn func([]books.Book) ([]books.Book, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(ctx)
	if err != nil {
		s.recordFailure(err)
		s.publishLocked()
		return err
	}

	next, changed, err := fn(books.Clone(current))
	if err != nil {
		return err
	}
	if !changed {
		// still pick up whatever another process wrote
		s.replaceLocked(current)
		s.publishLocked()
		return nil
	}

	if err := s.write(ctx, next); err != nil {
		s.recordFailure(err)
		s.publishLocked()
		return err
	}
	s.replaceLocked(next)
	s.publishLocked()
	return nil
}

func (s *Store) read(ctx context.Context) ([]books.Book, error) {
	if s.kv == nil {
		return nil, errors.New("store has no storage backend")
	}
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []books.Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read books: %w", err)
	}
	return books.Decode(data)
}

func (s *Store) write(ctx context.Context, list []books.Book) error {
	data, err := books.Encode(list)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write books: %w", err)
	}
	return nil
}

func (s *Store) replaceLocked(list []books.Book) {
	s.snapshot.Books = books.Clone(list)
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

func (s *Store) recordFailure(err error) {
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

func (s *Store) cloneLocked() Snapshot {
	snap := s.snapshot
	snap.Books = books.Clone(s.snapshot.Books)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// publishLocked hands the current snapshot to every subscriber. Callers hold
// s.mu so subscribers observe snapshots in mutation order.
func (s *Store) publishLocked() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		// drop a stale pending snapshot so the newest one fits
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s.cloneLocked():
		default:
		}
	}
}
