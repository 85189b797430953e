package books

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	ulid "github.com/oklog/ulid/v2"
)

// Fields holds raw editor input. Page counts stay as typed until Apply.
type Fields struct {
	Title      string
	Author     string
	PagesRead  string
	TotalPages string
}

// Validate reports ErrMissingFields when any field is blank. Page values are
// not range-checked.
func (f Fields) Validate() error {
	for _, v := range []string{f.Title, f.Author, f.PagesRead, f.TotalPages} {
		if strings.TrimSpace(v) == "" {
			return ErrMissingFields
		}
	}
	return nil
}

// Apply replaces every editable field of b. The id is kept.
func (f Fields) Apply(b Book) Book {
	b.Title = strings.TrimSpace(f.Title)
	b.Author = strings.TrimSpace(f.Author)
	b.PagesRead = ParsePages(f.PagesRead)
	b.TotalPages = ParsePages(f.TotalPages)
	return b
}

// FieldsOf pre-fills editor input from an existing book.
func FieldsOf(b Book) Fields {
	return Fields{
		Title:      b.Title,
		Author:     b.Author,
		PagesRead:  b.PagesRead.String(),
		TotalPages: b.TotalPages.String(),
	}
}

var (
	idMu      sync.Mutex
	idEntropy = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a time-ordered unique identifier. IDs generated within the
// same millisecond still sort in creation order.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), idEntropy).String()
}
