package books

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StorageKey is the key the collection is persisted under.
const StorageKey = "books"

// ErrMissingFields is returned when a form is submitted with an empty field.
var ErrMissingFields = errors.New("fill in all fields")

// ErrDuplicateID is returned when a collection holds the same id twice.
var ErrDuplicateID = errors.New("duplicate book id")

// Book is a single tracked book.
type Book struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Author     string `json:"author" yaml:"author"`
	PagesRead  Pages  `json:"pagesRead" yaml:"pagesRead"`
	TotalPages Pages  `json:"totalPages" yaml:"totalPages"`
}

// Pages is a page count. It decodes from either a JSON number or a numeric
// string and always encodes as a number.
type Pages int

// UnmarshalJSON accepts numbers, numeric strings, and null. Anything that does
// not start with an integer decodes as zero.
func (p *Pages) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*p = 0
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode pages: %w", err)
		}
		*p = ParsePages(s)
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			*p = 0
			return nil
		}
		*p = Pages(int(math.Trunc(f)))
	}
	return nil
}

// ParsePages reads the leading integer of s, ignoring surrounding whitespace
// and anything after the digits. "12abc" is 12, "abc" and "" are 0.
func ParsePages(s string) Pages {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	sign := 1
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return Pages(sign * n)
}

func (p Pages) String() string {
	return strconv.Itoa(int(p))
}

// Decode parses a stored collection. An empty blob or null is an empty
// collection.
func Decode(data []byte) ([]Book, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Book{}, nil
	}
	var list []Book
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	if list == nil {
		list = []Book{}
	}
	return list, nil
}

// Encode serializes the collection as a JSON array.
func Encode(list []Book) ([]byte, error) {
	if list == nil {
		list = []Book{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode books: %w", err)
	}
	return data, nil
}

// Clone returns a copy of list that shares no backing array.
func Clone(list []Book) []Book {
	if list == nil {
		return nil
	}
	dup := make([]Book, len(list))
	copy(dup, list)
	return dup
}

// IndexOf returns the position of the book with id, or -1.
func IndexOf(list []Book, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// CheckIDs reports ErrDuplicateID, naming the id, when two books in list
// share one.
func CheckIDs(list []Book) error {
	seen := make(map[string]struct{}, len(list))
	for _, b := range list {
		if _, ok := seen[b.ID]; ok {
			return fmt.Errorf("%w %q", ErrDuplicateID, b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}
