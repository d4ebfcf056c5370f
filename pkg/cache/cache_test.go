package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_LoadMissingFileReturnsNilNoError(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "does-not-exist"))
	freqs, err := s.Load(0xABCDE, 0x123)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if freqs != nil {
		t.Errorf("freqs = %v, want nil", freqs)
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	want := []int64{851125000, 851250000, 851375000}

	if err := s.Save(0xABCDE, 0x123, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(0xABCDE, 0x123)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestStore_LoadSkipsCommentsAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	content := "# a comment\n\n851125000\n  # indented comment\n851250000 # trailing comment\nnot-a-number\n"
	path := filepath.Join(dir, "abcde-123.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := s.Load(0xABCDE, 0x123)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []int64{851125000, 851250000}
	if len(got) != len(want) {
		t.Fatalf("got = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestStore_AddDeduplicatesAndAppends(t *testing.T) {
	s := NewStore(t.TempDir())

	if err := s.Add(1, 2, 100); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(1, 2, 200); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(1, 2, 100); err != nil {
		t.Fatalf("Add (dup): %v", err)
	}

	got, err := s.Load(1, 2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2 (no duplicate)", len(got))
	}
}

func TestStore_KeysDifferentSystemsToDifferentFiles(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Save(1, 1, []int64{111}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(2, 2, []int64{222}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	a, err := s.Load(1, 1)
	if err != nil || len(a) != 1 || a[0] != 111 {
		t.Fatalf("Load(1,1) = %v, %v", a, err)
	}
	b, err := s.Load(2, 2)
	if err != nil || len(b) != 1 || b[0] != 222 {
		t.Fatalf("Load(2,2) = %v, %v", b, err)
	}
}
