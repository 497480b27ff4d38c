package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"crewdesk/internal/domain"
)

func TestCompaniesJoinsTags(t *testing.T) {
	rate := 95.5
	var buf bytes.Buffer
	err := Companies(&buf, []domain.Company{{
		ID:         "c1",
		Name:       "Dana",
		Company:    "Acme HVAC",
		Tags:       []string{"hvac", "priority"},
		HourlyRate: &rate,
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want header + 1 row, got %d", len(rows))
	}
	row := rows[1]
	if row[7] != "hvac;priority" {
		t.Fatalf("tags column = %q", row[7])
	}
	if row[6] != "95.5" {
		t.Fatalf("rate column = %q", row[6])
	}
	if row[9] != "2024-01-01T00:00:00Z" {
		t.Fatalf("created column = %q", row[9])
	}
}

func TestEntriesResolvesDanglingReferences(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := Entries(&buf, []domain.ScheduleEntry{{
		ID:        "e1",
		CompanyID: "gone",
		JobID:     "also-gone",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Status:    domain.EntryScheduled,
	}}, nil, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, domain.UnknownCompany) || !strings.Contains(out, domain.UnknownService) {
		t.Fatalf("missing placeholders: %s", out)
	}
}

func TestReportTotals(t *testing.T) {
	rate := 100.0
	companies := []domain.Company{{ID: "c1", Name: "Dana", HourlyRate: &rate}}
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []domain.ScheduleEntry{
		{ID: "e1", CompanyID: "c1", JobID: "j1", StartTime: start, EndTime: start.Add(2 * time.Hour)},
		{ID: "e2", CompanyID: "missing", JobID: "j1", StartTime: start, EndTime: start.Add(3 * time.Hour)},
	}
	var buf bytes.Buffer
	if err := Report(&buf, entries, companies, nil); err != nil {
		t.Fatalf("export: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	total := rows[len(rows)-1]
	if total[0] != "Total" {
		t.Fatalf("last row = %v", total)
	}
	if total[3] != "5.00" {
		t.Fatalf("total hours = %q, want 5.00", total[3])
	}
	if total[5] != "200.00" {
		t.Fatalf("total revenue = %q, want 200.00 (dangling entry contributes zero)", total[5])
	}
}
