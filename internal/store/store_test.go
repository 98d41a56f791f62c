package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openStores(t *testing.T) map[string]AnswerStore {
	t.Helper()

	sqliteStore, err := Open(filepath.Join(t.TempDir(), "answers.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]AnswerStore{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
	}
}

func testRecord() Record {
	return Record{
		Key:         Key{Project: "skyfall", Model: "gpt-4o", Question: "Who is Aria?"},
		Signature:   "a1b2c3d4",
		Answer:      "Aria is a pilot.",
		Model:       "gpt-4o",
		TokenBudget: 16000,
		TotalTokens: 420,
		CreatedAt:   time.Date(2024, 4, 1, 10, 0, 0, 123_456_789, time.UTC),
	}
}

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put(ctx, testRecord()); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			got, err := s.Get(ctx, Key{Project: "skyfall", Model: "GPT-4o", Question: "  who is   aria? "})
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Signature != "a1b2c3d4" || got.Answer != "Aria is a pilot." {
				t.Errorf("unexpected record: %+v", got)
			}
			if got.TokenBudget != 16000 || got.TotalTokens != 420 {
				t.Errorf("unexpected token counts: %+v", got)
			}
			want := time.Date(2024, 4, 1, 10, 0, 0, 123_000_000, time.UTC)
			if !got.CreatedAt.Equal(want) {
				t.Errorf("created at = %v, want %v", got.CreatedAt, want)
			}
		})
	}
}

func TestStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put(ctx, testRecord()); err != nil {
				t.Fatal(err)
			}
			updated := testRecord()
			updated.Signature = "ffff0000"
			updated.Answer = "Aria is a smuggler."
			if err := s.Put(ctx, updated); err != nil {
				t.Fatal(err)
			}

			got, err := s.Get(ctx, updated.Key)
			if err != nil {
				t.Fatal(err)
			}
			if got.Signature != "ffff0000" || got.Answer != "Aria is a smuggler." {
				t.Errorf("expected replacement, got %+v", got)
			}
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, Key{Project: "p", Model: "m", Question: "q"})
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			rec := testRecord()
			if err := s.Put(ctx, rec); err != nil {
				t.Fatal(err)
			}
			if err := s.Delete(ctx, rec.Key); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := s.Get(ctx, rec.Key); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}
			if err := s.Delete(ctx, rec.Key); err != nil {
				t.Errorf("deleting a missing key should succeed, got %v", err)
			}
		})
	}
}

func TestStore_PutValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr error
	}{
		{name: "missing project", mutate: func(r *Record) { r.Key.Project = " " }, wantErr: ErrInvalidKey},
		{name: "missing model", mutate: func(r *Record) { r.Key.Model = "" }, wantErr: ErrInvalidKey},
		{name: "missing question", mutate: func(r *Record) { r.Key.Question = "\n" }, wantErr: ErrInvalidKey},
		{name: "missing signature", mutate: func(r *Record) { r.Signature = "" }, wantErr: ErrMissingValue},
	}

	for name, s := range openStores(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				rec := testRecord()
				tt.mutate(&rec)
				if err := s.Put(ctx, rec); !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}
	}
}

func TestSQLiteStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "answers.db")

	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Put(ctx, testRecord()); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	got, err := second.Get(ctx, testRecord().Key)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Signature != "a1b2c3d4" {
		t.Errorf("unexpected signature %s", got.Signature)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestMemoryStore_Closed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Close()

	if err := s.Put(ctx, testRecord()); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed, got %v", err)
	}
	if _, err := s.Get(ctx, testRecord().Key); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed, got %v", err)
	}
}

func TestStore_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put(ctx, testRecord()); !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		})
	}
}
