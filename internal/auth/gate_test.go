package auth

import (
	"context"
	"testing"
)

func TestNoopGate_AcceptsAnything(t *testing.T) {
	cases := []Credentials{
		{},
		{Email: "reader@example.com", Password: "secret"},
		{Email: "", Password: "a", Confirm: "b", Register: true},
	}
	var gate Gate = NoopGate{}
	for _, c := range cases {
		if err := gate.Enter(context.Background(), c); err != nil {
			t.Fatalf("Enter(%+v) = %v, want nil", c, err)
		}
	}
}

func TestCredentials_Mode(t *testing.T) {
	if got := (Credentials{}).Mode(); got != "login" {
		t.Fatalf("Mode() = %q, want %q", got, "login")
	}
	if got := (Credentials{Register: true}).Mode(); got != "register" {
		t.Fatalf("Mode() = %q, want %q", got, "register")
	}
}
