package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/geotech-lab/scholarsync/internal/report"
)

func snapshotAt(id, user string, ts time.Time, cites int, counts *report.Counts) Snapshot {
	return Snapshot{
		ID:        id,
		FetchedAt: report.FormatTimestamp(ts),
		UserID:    user,
		Provider:  "library",
		Citations: cites,
		HIndex:    cites / 10,
		Counts:    counts,
	}
}

func TestNewSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	summary := report.NewSummary(now, 300, 9, "url")
	counts := &report.Counts{International: 3, Korean: 2}

	a := NewSnapshot(now, "u1", "library", summary, counts)
	b := NewSnapshot(now, "u1", "library", summary, nil)

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("snapshot IDs should be unique and non-empty: %q, %q", a.ID, b.ID)
	}
	if a.FetchedAt != "2025-06-01T12:00:00.000000Z" {
		t.Errorf("FetchedAt = %q", a.FetchedAt)
	}
	if a.Citations != 300 || a.HIndex != 9 {
		t.Errorf("metrics = (%d, %d), want (300, 9)", a.Citations, a.HIndex)
	}
	if a.Counts == nil || a.Counts.Total() != 5 {
		t.Errorf("Counts = %+v", a.Counts)
	}
	if b.Counts != nil {
		t.Errorf("Counts = %+v, want nil", b.Counts)
	}
}

func TestReadAll_MissingFile(t *testing.T) {
	snaps, err := ReadAll(filepath.Join(t.TempDir(), "none.jsonl"))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("ReadAll() = %d snapshots, want 0", len(snaps))
	}
}

func TestAppendAndReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	want := []Snapshot{
		snapshotAt("a", "u1", base, 100, &report.Counts{International: 1}),
		snapshotAt("b", "u1", base.Add(24*time.Hour), 110, nil),
	}
	for _, s := range want {
		if err := Append(path, s); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadAll() = %d snapshots, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("order = %q, %q", got[0].ID, got[1].ID)
	}
	if got[0].Counts == nil || got[0].Counts.International != 1 {
		t.Errorf("got[0].Counts = %+v", got[0].Counts)
	}
	if got[1].Counts != nil {
		t.Errorf("got[1].Counts = %+v, want nil", got[1].Counts)
	}
}

func TestReadAll_SkipsBlankLinesAndRejectsGarbage(t *testing.T) {
	dir := t.TempDir()

	ok := filepath.Join(dir, "ok.jsonl")
	if err := os.WriteFile(ok, []byte("{\"id\":\"a\"}\n\n{\"id\":\"b\"}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	snaps, err := ReadAll(ok)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(snaps) != 2 {
		t.Errorf("ReadAll() = %d snapshots, want 2", len(snaps))
	}

	bad := filepath.Join(dir, "bad.jsonl")
	if err := os.WriteFile(bad, []byte("{\"id\":\"a\"}\nnot json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadAll(bad); err == nil {
		t.Error("ReadAll() expected error for malformed line")
	}
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func writeHistory(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.jsonl")
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, s := range []Snapshot{
		snapshotAt("a", "u1", base, 100, &report.Counts{International: 4, Korean: 2, Conference: 1}),
		snapshotAt("b", "u2", base.Add(time.Hour), 50, nil),
		snapshotAt("c", "u1", base.Add(48*time.Hour), 120, &report.Counts{International: 5, Korean: 2, Conference: 1}),
		snapshotAt("d", "u1", base.Add(24*time.Hour), 110, nil),
	} {
		if err := Append(path, s); err != nil {
			t.Fatalf("Append(%d) error = %v", i, err)
		}
	}
	return path
}

func TestRebuildFromJSONL(t *testing.T) {
	db := openTestDB(t)
	path := writeHistory(t)

	n, err := db.RebuildFromJSONL(path)
	if err != nil {
		t.Fatalf("RebuildFromJSONL() error = %v", err)
	}
	if n != 4 {
		t.Errorf("RebuildFromJSONL() = %d, want 4", n)
	}

	// Rebuilding again replaces rather than duplicates.
	if _, err := db.RebuildFromJSONL(path); err != nil {
		t.Fatalf("second RebuildFromJSONL() error = %v", err)
	}
	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 4 {
		t.Errorf("Count() = %d, want 4", count)
	}
}

func TestList(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.RebuildFromJSONL(writeHistory(t)); err != nil {
		t.Fatal(err)
	}

	all, err := db.List("", 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	ids := ""
	for _, s := range all {
		ids += s.ID
	}
	if ids != "cdba" {
		t.Errorf("List() order = %q, want newest first cdba", ids)
	}

	u1, err := db.List("u1", 2)
	if err != nil {
		t.Fatalf("List(u1) error = %v", err)
	}
	if len(u1) != 2 || u1[0].ID != "c" || u1[1].ID != "d" {
		t.Fatalf("List(u1, 2) = %+v", u1)
	}
	if u1[0].Counts == nil || u1[0].Counts.International != 5 {
		t.Errorf("c.Counts = %+v", u1[0].Counts)
	}
	if u1[1].Counts != nil {
		t.Errorf("d.Counts = %+v, want nil", u1[1].Counts)
	}
}

func TestMemoryDB(t *testing.T) {
	db, err := OpenDB(MemoryDB)
	if err != nil {
		t.Fatalf("OpenDB(memory) error = %v", err)
	}
	defer db.Close()

	if _, err := db.RebuildFromJSONL(writeHistory(t)); err != nil {
		t.Fatalf("RebuildFromJSONL() error = %v", err)
	}
	n, err := db.Count()
	if err != nil || n != 4 {
		t.Errorf("Count() = %d, %v; want 4", n, err)
	}
}
