// Package auth holds the entry gate shown before the main screens.
//
// pagetrack has no accounts. NoopGate accepts every credential set and is not
// a security boundary; the Gate interface only marks where a real check would
// plug in.
package auth

import (
	"context"
	"log"
	"strings"
)

// Credentials is what the entry screen collects.
type Credentials struct {
	Email    string
	Password string
	Confirm  string
	Register bool
}

// Mode names the entry screen mode for display and logging.
func (c Credentials) Mode() string {
	if c.Register {
		return "register"
	}
	return "login"
}

// Gate decides whether the user may continue past the entry screen.
type Gate interface {
	Enter(ctx context.Context, c Credentials) error
}

// NoopGate lets everyone in.
type NoopGate struct{}

// Enter always succeeds. Nothing is stored or compared.
func (NoopGate) Enter(_ context.Context, c Credentials) error {
	log.Printf("entry: %s (email set: %t)", c.Mode(), strings.TrimSpace(c.Email) != "")
	return nil
}
