package auth

import (
	"context"
	"errors"
	"testing"
)

func TestWithIdentity_IdentityFromCtx(t *testing.T) {
	want := Identity{ID: "user-42", DisplayName: "Ravi", Email: "ravi@example.com"}
	ctx := WithIdentity(context.Background(), want)

	got, err := IdentityFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestIdentityFromCtx_EmptyContext(t *testing.T) {
	_, err := IdentityFromCtx(context.Background())
	if !errors.Is(err, ErrNoIdentity) {
		t.Fatalf("expected ErrNoIdentity, got %v", err)
	}
}

func TestIdentityFromCtx_BlankID(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{DisplayName: "no id"})
	_, err := IdentityFromCtx(ctx)
	if !errors.Is(err, ErrNoIdentity) {
		t.Fatalf("expected ErrNoIdentity for blank id, got %v", err)
	}
}
