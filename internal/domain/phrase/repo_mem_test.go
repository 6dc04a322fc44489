package phrase

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	p := &Phrase{Name: "Physical exam", Shortcut: ".pe", Content: "NAD."}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Fatal("Create did not assign an ID")
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("Create did not set timestamps")
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Physical exam" {
		t.Errorf("GetByID name = %q", got.Name)
	}

	byShortcut, err := repo.GetByShortcut(ctx, ".pe")
	if err != nil {
		t.Fatalf("GetByShortcut: %v", err)
	}
	if byShortcut.ID != p.ID {
		t.Errorf("GetByShortcut returned %s, want %s", byShortcut.ID, p.ID)
	}

	updated := &Phrase{ID: p.ID, Name: "Physical exam, adult", Shortcut: ".pe", Content: "NAD. A&O x3."}
	if err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = repo.GetByID(ctx, p.ID)
	if got.Name != "Physical exam, adult" {
		t.Errorf("after Update name = %q", got.Name)
	}
	if !got.CreatedAt.Equal(p.CreatedAt) {
		t.Error("Update changed CreatedAt")
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, p.ID); err == nil {
		t.Error("GetByID after Delete should fail")
	}
}

func TestMemoryRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	if _, err := repo.GetByID(ctx, uuid.New()); err == nil {
		t.Error("GetByID on empty repo should fail")
	}
	if _, err := repo.GetByShortcut(ctx, ".nope"); err == nil {
		t.Error("GetByShortcut on empty repo should fail")
	}
	if err := repo.Update(ctx, &Phrase{ID: uuid.New()}); err == nil {
		t.Error("Update of unknown phrase should fail")
	}
	if err := repo.Delete(ctx, uuid.New()); err == nil {
		t.Error("Delete of unknown phrase should fail")
	}
}

func TestMemoryRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	names := []string{"first", "second", "third", "fourth"}
	for _, n := range names {
		if err := repo.Create(ctx, &Phrase{Name: n, Content: n}); err != nil {
			t.Fatalf("Create %q: %v", n, err)
		}
	}

	page, total, err := repo.List(ctx, 2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
	if len(page) != 2 || page[0].Name != "first" || page[1].Name != "second" {
		t.Errorf("page 1 = %v", pageNames(page))
	}

	page, _, _ = repo.List(ctx, 2, 2)
	if len(page) != 2 || page[0].Name != "third" {
		t.Errorf("page 2 = %v", pageNames(page))
	}

	page, total, _ = repo.List(ctx, 10, 10)
	if len(page) != 0 || total != 4 {
		t.Errorf("out-of-range page = %v, total %d", pageNames(page), total)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 4 || all[3].Name != "fourth" {
		t.Errorf("All = %v, want insertion order", pageNames(all))
	}
}

func pageNames(phrases []*Phrase) []string {
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = p.Name
	}
	return out
}
