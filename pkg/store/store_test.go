package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/commute/pkg/errors"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFileStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rec := &Record{Name: "triangle", Diagram: "{f}{A}{B}\n", Equations: []string{"{g}{f} = {h}"}}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Save() did not assign an ID")
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("Save() did not set timestamps")
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Name != rec.Name || got.Diagram != rec.Diagram || len(got.Equations) != 1 {
		t.Errorf("Get() = %+v, want %+v", got, rec)
	}

	created := rec.CreatedAt
	rec.Diagram = "{g}{B}{C}\n"
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save() update error: %v", err)
	}
	if !rec.CreatedAt.Equal(created) {
		t.Error("update changed CreatedAt")
	}
	got, _ = s.Get(ctx, rec.ID)
	if got.Diagram != "{g}{B}{C}\n" {
		t.Errorf("Diagram after update = %q", got.Diagram)
	}
}

func TestFileStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v, want NOT_FOUND", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Delete(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestFileStoreValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tests := []struct {
		name string
		rec  *Record
	}{
		{"empty name", &Record{}},
		{"path in name", &Record{Name: "a/b"}},
		{"bad id", &Record{ID: "../escape", Name: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Save(ctx, tt.rec); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Save() error = %v, want INVALID_INPUT", err)
			}
		})
	}
	if _, err := s.Get(ctx, "../x"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Get(../x) error = %v, want INVALID_INPUT", err)
	}
}

func TestFileStoreListDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first := &Record{Name: "first"}
	second := &Record{Name: "second"}
	if err := s.Save(ctx, first); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if err := s.Save(ctx, second); err != nil {
		t.Fatal(err)
	}
	// Stray files are ignored.
	_ = os.WriteFile(s.Path()+"/notes.txt", []byte("x"), 0600)

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 2 || list[0].Name != "second" || list[1].Name != "first" {
		t.Errorf("List() = %v, want [second first]", names(list))
	}

	if err := s.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	list, _ = s.List(ctx)
	if len(list) != 1 || list[0].ID != second.ID {
		t.Errorf("List() after Delete = %v", names(list))
	}
}

func names(recs []*Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}
