package store

import (
	"context"
	"testing"
	"time"

	"github.com/strandlab/rnaplot/pkg/errors"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	d := &Drawing{
		Structure:   "(((...)))",
		Format:      "svg",
		Artifact:    []byte("<svg/>"),
		Nucleotides: 9,
		Pairs:       3,
	}
	if err := s.Put(ctx, d); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if d.ID == "" {
		t.Fatal("Put should assign an ID")
	}
	if d.CreatedAt.IsZero() {
		t.Fatal("Put should assign a creation time")
	}

	got, err := s.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Structure != d.Structure || string(got.Artifact) != "<svg/>" {
		t.Errorf("Get returned wrong drawing: %+v", got)
	}

	// Mutating the returned drawing must not affect the stored copy
	got.Structure = "mutated"
	again, err := s.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if again.Structure != "(((...)))" {
		t.Error("Store should hand out copies")
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "nope")
	if err == nil {
		t.Fatal("Get of missing drawing should fail")
	}
	if !errors.Is(err, errors.ErrCodeDrawingNotFound) {
		t.Errorf("Error code = %v, want DRAWING_NOT_FOUND", errors.GetCode(err))
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		d := &Drawing{
			ID:        NewID(),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Structure: "(((...)))",
			Format:    "svg",
			Artifact:  []byte("<svg/>"),
		}
		if err := s.Put(ctx, d); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}

	list, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List should honor limit, got %d", len(list))
	}
	if !list[0].CreatedAt.After(list[1].CreatedAt) {
		t.Error("List should return newest first")
	}
	for _, d := range list {
		if d.Artifact != nil {
			t.Error("List should omit artifact payloads")
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	d := &Drawing{Structure: ".", Format: "json"}
	if err := s.Put(ctx, d); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, d.ID); err == nil {
		t.Error("Get after Delete should fail")
	}

	err := s.Delete(ctx, d.ID)
	if !errors.Is(err, errors.ErrCodeDrawingNotFound) {
		t.Errorf("Deleting a missing drawing should report DRAWING_NOT_FOUND, got %v", err)
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || a == b {
		t.Errorf("NewID should return unique non-empty IDs: %q %q", a, b)
	}
}
