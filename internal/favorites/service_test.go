package favorites

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, 5)

	got, err := svc.Toggle(context.Background(), "user", "s1")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"s1"}) {
		t.Fatalf("expected [s1], got %v", got)
	}

	got, err = svc.Toggle(context.Background(), "user", "s1")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty set after toggle off, got %v", got)
	}
}

func TestToggleSixthFavoriteFailsWithoutWrite(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, 5)

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		if _, err := svc.Toggle(context.Background(), "user", id); err != nil {
			t.Fatalf("setup toggle %s failed: %v", id, err)
		}
	}
	writesBefore := repo.Writes

	got, err := svc.Toggle(context.Background(), "user", "f")
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("set changed on capacity error: %v", got)
	}
	if repo.Writes != writesBefore {
		t.Fatal("capacity error must not write")
	}
}

func TestToggleRemovalWorksOnFullSet(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, 5)

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		if _, err := svc.Toggle(context.Background(), "user", id); err != nil {
			t.Fatalf("setup toggle failed: %v", err)
		}
	}

	got, err := svc.Toggle(context.Background(), "user", "c")
	if err != nil {
		t.Fatalf("removal from full set failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 favorites, got %v", got)
	}
}

func TestToggleWriteFailureReturnsConfirmedSet(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, 5)

	if _, err := svc.Toggle(context.Background(), "user", "a"); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	repo.FailWrite = errors.New("network down")
	got, err := svc.Toggle(context.Background(), "user", "b")
	if err == nil {
		t.Fatal("expected write failure to surface")
	}
	// The caller sees the last confirmed set, not the attempted one.
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("expected confirmed set [a], got %v", got)
	}

	stored, _ := svc.List(context.Background(), "user")
	if !reflect.DeepEqual(stored, []string{"a"}) {
		t.Fatalf("remote set changed after failed write: %v", stored)
	}
}
