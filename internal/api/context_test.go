package api

import (
	"context"
	"testing"

	"github.com/hollowaylabs/vitrine/internal/history"
)

// TestWithSession_SessionFromContext_RoundTrip verifies a session can be added and extracted from context.
func TestWithSession_SessionFromContext_RoundTrip(t *testing.T) {
	session := history.NewBrowsingHistory()
	ctx := context.Background()

	ctx = WithSession(ctx, session)

	got, err := SessionFromContext(ctx)
	if err != nil {
		t.Fatalf("SessionFromContext returned error: %v", err)
	}

	if got != session {
		t.Errorf("got different session instance, want same instance")
	}
}

// TestSessionFromContext_NoSession verifies error when no session in context.
func TestSessionFromContext_NoSession(t *testing.T) {
	ctx := context.Background()

	_, err := SessionFromContext(ctx)
	if err != ErrNoSessionInContext {
		t.Errorf("error = %v, want ErrNoSessionInContext", err)
	}
}

// TestSessionFromContext_NilSession verifies error when nil session in context.
func TestSessionFromContext_NilSession(t *testing.T) {
	ctx := context.Background()
	ctx = WithSession(ctx, nil)

	_, err := SessionFromContext(ctx)
	if err != ErrNoSessionInContext {
		t.Errorf("error = %v, want ErrNoSessionInContext", err)
	}
}

// TestMustSessionFromContext_Panics verifies panic when no session in context.
func TestMustSessionFromContext_Panics(t *testing.T) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustSessionFromContext did not panic")
		}
	}()

	MustSessionFromContext(ctx)
}

// TestMustSessionFromContext_Success verifies successful extraction.
func TestMustSessionFromContext_Success(t *testing.T) {
	session := history.NewBrowsingHistory()
	ctx := WithSession(context.Background(), session)

	got := MustSessionFromContext(ctx)
	if got != session {
		t.Errorf("got different session instance")
	}
}

// TestSessionIDFromContext_Empty verifies empty value when no session ID.
func TestSessionIDFromContext_Empty(t *testing.T) {
	ctx := context.Background()

	got := SessionIDFromContext(ctx)
	if got != "" {
		t.Errorf("SessionIDFromContext() = %q, want empty", got)
	}
}

// TestSessionIDFromContext_Custom verifies session ID extraction.
func TestSessionIDFromContext_Custom(t *testing.T) {
	ctx := context.Background()
	ctx = WithSessionID(ctx, "01HV3E9P7S2J8Q4B6T0D5F1G9K")

	got := SessionIDFromContext(ctx)
	if got != "01HV3E9P7S2J8Q4B6T0D5F1G9K" {
		t.Errorf("SessionIDFromContext() = %q, want the stored ID", got)
	}
}

// TestSessionContext_ValuesAreIndependent verifies ID and session keys do not collide.
func TestSessionContext_ValuesAreIndependent(t *testing.T) {
	session := history.NewBrowsingHistory()
	ctx := context.Background()
	ctx = WithSessionID(ctx, "01HV3E9P7S2J8Q4B6T0D5F1G9K")
	ctx = WithSession(ctx, session)

	if SessionIDFromContext(ctx) != "01HV3E9P7S2J8Q4B6T0D5F1G9K" {
		t.Error("SessionIDFromContext should still return the stored ID")
	}
	if _, err := SessionFromContext(ctx); err != nil {
		t.Errorf("SessionFromContext returned error: %v", err)
	}
}
