package status

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

// stores under test share one behavior suite.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "status.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestCreateAndGet(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			rec := &Record{ID: "curr_1", Email: "teacher@example.com"}
			if err := store.Create(rec); err != nil {
				t.Fatalf("Create: %v", err)
			}
			got, err := store.Get("curr_1")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.State != StateProcessing {
				t.Errorf("expected state processing, got %s", got.State)
			}
			if got.Email != "teacher@example.com" {
				t.Errorf("unexpected email %q", got.Email)
			}
			if got.StartedAt.IsZero() {
				t.Error("expected StartedAt to be set")
			}
			if got.CompletedAt != nil {
				t.Error("expected no CompletedAt on a fresh record")
			}
		})
	}
}

func TestGetMissing(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestCompleteIsWriteOnce(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Create(&Record{ID: "curr_2", Email: "t@example.com"}); err != nil {
				t.Fatalf("Create: %v", err)
			}
			result := json.RawMessage(`{"success":true}`)
			if err := store.Complete("curr_2", result); err != nil {
				t.Fatalf("Complete: %v", err)
			}
			got, err := store.Get("curr_2")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.State != StateCompleted {
				t.Errorf("expected completed, got %s", got.State)
			}
			if got.CompletedAt == nil {
				t.Error("expected CompletedAt to be set")
			}
			if string(got.Result) != `{"success":true}` {
				t.Errorf("unexpected result %s", got.Result)
			}
			if err := store.Complete("curr_2", result); !errors.Is(err, ErrTerminal) {
				t.Errorf("expected ErrTerminal on second Complete, got %v", err)
			}
			if err := store.Fail("curr_2", "late failure"); !errors.Is(err, ErrTerminal) {
				t.Errorf("expected ErrTerminal on Fail after Complete, got %v", err)
			}
		})
	}
}

func TestFail(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Create(&Record{ID: "curr_3", Email: "t@example.com"}); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if err := store.Fail("curr_3", "provider exploded"); err != nil {
				t.Fatalf("Fail: %v", err)
			}
			got, err := store.Get("curr_3")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.State != StateFailed {
				t.Errorf("expected failed, got %s", got.State)
			}
			if got.Error != "provider exploded" {
				t.Errorf("unexpected error message %q", got.Error)
			}
		})
	}
}

func TestSetProgress(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Create(&Record{ID: "curr_4", Email: "t@example.com"}); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if err := store.SetProgress("curr_4", "generating syllabus (3/11)"); err != nil {
				t.Fatalf("SetProgress: %v", err)
			}
			got, _ := store.Get("curr_4")
			if got.Progress != "generating syllabus (3/11)" {
				t.Errorf("unexpected progress %q", got.Progress)
			}
			if err := store.Complete("curr_4", nil); err != nil {
				t.Fatalf("Complete: %v", err)
			}
			if err := store.SetProgress("curr_4", "late"); !errors.Is(err, ErrTerminal) {
				t.Errorf("expected ErrTerminal, got %v", err)
			}
		})
	}
}

func TestDuplicateCreate(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Create(&Record{ID: "curr_5", Email: "t@example.com"}); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if err := store.Create(&Record{ID: "curr_5", Email: "t@example.com"}); err == nil {
				t.Error("expected error on duplicate create")
			}
		})
	}
}

func TestList(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"curr_a", "curr_b", "curr_c"} {
				if err := store.Create(&Record{ID: id, Email: "t@example.com"}); err != nil {
					t.Fatalf("Create %s: %v", id, err)
				}
			}
			recs, err := store.List()
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(recs) != 3 {
				t.Errorf("expected 3 records, got %d", len(recs))
			}
		})
	}
}
