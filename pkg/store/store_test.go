package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/causeway/pkg/graphio"
)

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	l := &Layout{
		ID:   "id-1",
		Name: "build-order",
		Graph: graphio.Graph{
			Events:       []graphio.Event{{ID: "a"}, {ID: "b"}},
			Dependencies: []graphio.Dependency{{From: "a", To: "b"}},
		},
		DOT:       "digraph causal_graph {}",
		SVG:       "<svg/>",
		CreatedAt: time.Now(),
	}

	if err := s.Put(ctx, l); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "id-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "build-order" || len(got.Graph.Events) != 2 {
		t.Errorf("Get returned %+v", got)
	}

	// Put replaces.
	l.Name = "renamed"
	if err := s.Put(ctx, l); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	got, _ = s.Get(ctx, "id-1")
	if got.Name != "renamed" {
		t.Errorf("Name after replace = %s", got.Name)
	}

	if err := s.Delete(ctx, "id-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "id-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
	// Deleting again is a no-op.
	if err := s.Delete(ctx, "id-1"); err != nil {
		t.Errorf("Delete absent: %v", err)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now()
	for i, id := range []string{"old", "mid", "new"} {
		err := s.Put(ctx, &Layout{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		if err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	layouts, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(layouts) != 3 {
		t.Fatalf("List returned %d layouts, want 3", len(layouts))
	}
	if layouts[0].ID != "new" || layouts[2].ID != "old" {
		t.Errorf("List order = [%s %s %s], want newest first",
			layouts[0].ID, layouts[1].ID, layouts[2].ID)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	l := &Layout{ID: "x", Name: "orig"}
	if err := s.Put(ctx, l); err != nil {
		t.Fatal(err)
	}
	l.Name = "mutated"

	got, _ := s.Get(ctx, "x")
	if got.Name != "orig" {
		t.Error("store shares memory with caller values")
	}
}
