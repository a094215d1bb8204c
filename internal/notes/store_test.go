package notes

import (
	"sync"
	"testing"

	"leadlens/internal/core"
)

func TestStoreReplacesContents(t *testing.T) {
	s := NewStore()
	s.SetData([]core.NoteRow{{Title: "first"}, {Title: "second"}})
	s.SetData([]core.NoteRow{{Title: "third"}})

	got := s.GetData()
	if len(got) != 1 || got[0].Title != "third" {
		t.Fatalf("expected last write to win, got %+v", got)
	}
	if s.Len() != 1 {
		t.Fatalf("expected length 1, got %d", s.Len())
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore()
	in := []core.NoteRow{{Title: "original"}}
	s.SetData(in)
	in[0].Title = "mutated input"

	got := s.GetData()
	if got[0].Title != "original" {
		t.Fatalf("store aliased caller slice: %+v", got)
	}

	got[0].Title = "mutated output"
	if again := s.GetData(); again[0].Title != "original" {
		t.Fatalf("store aliased returned slice: %+v", again)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetData([]core.NoteRow{{Title: "a"}, {Title: "b"}})
		}()
		go func() {
			defer wg.Done()
			_ = s.GetData()
		}()
	}
	wg.Wait()
	if s.Len() != 2 {
		t.Fatalf("expected 2 rows after writes, got %d", s.Len())
	}
}
