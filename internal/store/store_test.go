package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"crewdesk/internal/db"
	"crewdesk/internal/domain"
	"crewdesk/internal/migrate"
	"crewdesk/internal/store"
)

func newTestStore(t *testing.T) *store.SQLite {
	t.Helper()
	dir := t.TempDir()
	conn, err := db.Open(db.Config{Workspace: dir})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.NewSQLite(conn)
}

func TestLoadMissingKey(t *testing.T) {
	s := newTestStore(t)
	var companies []domain.Company
	err := s.Load(context.Background(), store.KeyCompanies, &companies)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 9, 30, 0, 250_000_000, time.UTC) // 250ms
	in := []domain.ScheduleEntry{{
		ID:        "en-1",
		CompanyID: "c1",
		JobID:     "j1",
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
		Status:    domain.EntryScheduled,
		Notes:     "first visit",
		CreatedAt: start,
		UpdatedAt: start,
	}}
	if err := s.Save(ctx, store.KeyEntries, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	var out []domain.ScheduleEntry
	if err := s.Load(ctx, store.KeyEntries, &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want 1 entry, got %d", len(out))
	}
	if !out[0].StartTime.Equal(in[0].StartTime) || !out[0].EndTime.Equal(in[0].EndTime) {
		t.Fatalf("timestamps changed across the round trip: %v vs %v", out[0].StartTime, in[0].StartTime)
	}
	if out[0].Hours() != in[0].Hours() {
		t.Fatalf("hours changed: %v vs %v", out[0].Hours(), in[0].Hours())
	}
	if out[0].Notes != "first visit" {
		t.Fatalf("notes = %q", out[0].Notes)
	}
}

func TestSaveReplacesWholeValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, store.KeyTags, []domain.Tag{{ID: "t1", Name: "urgent"}, {ID: "t2", Name: "hvac"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, store.KeyTags, []domain.Tag{{ID: "t2", Name: "hvac"}}); err != nil {
		t.Fatalf("save again: %v", err)
	}
	var out []domain.Tag
	if err := s.Load(ctx, store.KeyTags, &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].ID != "t2" {
		t.Fatalf("second save should replace the collection, got %+v", out)
	}
}
