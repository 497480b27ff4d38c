package stats

import (
	"testing"
	"time"

	"crewdesk/internal/domain"
)

func rate(v float64) *float64 { return &v }

func entry(companyID string, start time.Time, hours float64, status domain.EntryStatus) domain.ScheduleEntry {
	return domain.ScheduleEntry{
		ID:        "en-" + start.Format("20060102"),
		CompanyID: companyID,
		JobID:     "job-1",
		StartTime: start,
		EndTime:   start.Add(time.Duration(hours * float64(time.Hour))),
		Status:    status,
	}
}

func TestCompletionRateEmpty(t *testing.T) {
	if got := CompletionRate(nil); got != 0 {
		t.Fatalf("completion rate of empty schedule = %v, want 0", got)
	}
}

func TestCompletionRate(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []domain.ScheduleEntry{
		entry("c1", start, 8, domain.EntryCompleted),
		entry("c1", start.AddDate(0, 0, 1), 8, domain.EntryScheduled),
		entry("c1", start.AddDate(0, 0, 2), 8, domain.EntryCancelled),
		entry("c1", start.AddDate(0, 0, 3), 8, domain.EntryCompleted),
	}
	if got := CompletionRate(entries); got != 0.5 {
		t.Fatalf("completion rate = %v, want 0.5", got)
	}
}

func TestRevenueDanglingCompany(t *testing.T) {
	companies := []domain.Company{{ID: "c1", HourlyRate: rate(100)}}
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []domain.ScheduleEntry{
		entry("c1", start, 2, domain.EntryCompleted),
		entry("deleted", start, 8, domain.EntryCompleted),
	}
	if got := Revenue(entries, companies); got != 200 {
		t.Fatalf("revenue = %v, want 200 (dangling entry contributes zero)", got)
	}
}

func TestRevenueNoRate(t *testing.T) {
	companies := []domain.Company{{ID: "c1"}}
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []domain.ScheduleEntry{entry("c1", start, 8, domain.EntryCompleted)}
	if got := Revenue(entries, companies); got != 0 {
		t.Fatalf("revenue without a rate = %v, want 0", got)
	}
}

func TestScheduledHoursNegativeUnclamped(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []domain.ScheduleEntry{
		entry("c1", start, 8, domain.EntryScheduled),
		entry("c1", start, -2, domain.EntryScheduled),
	}
	if got := ScheduledHours(entries); got != 6 {
		t.Fatalf("hours = %v, want 6", got)
	}
}

func TestScheduledHoursMillisecondPrecision(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []domain.ScheduleEntry{{
		CompanyID: "c1",
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
	}}
	if got := ScheduledHours(entries); got != 1.5 {
		t.Fatalf("hours = %v, want 1.5", got)
	}
}

func TestMonthlyBucketsYearIsolation(t *testing.T) {
	companies := []domain.Company{{ID: "c1", HourlyRate: rate(50)}}
	entries := []domain.ScheduleEntry{
		entry("c1", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), 4, domain.EntryCompleted),
		entry("c1", time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC), 2, domain.EntryCompleted),
		entry("c1", time.Date(2023, 3, 10, 9, 0, 0, 0, time.UTC), 8, domain.EntryCompleted),
	}
	buckets := MonthlyBuckets(entries, companies, 2024)
	if len(buckets) != 12 {
		t.Fatalf("want 12 buckets, got %d", len(buckets))
	}
	march := buckets[2]
	if march.Month != time.March || march.Entries != 2 || march.Hours != 6 || march.Revenue != 300 {
		t.Fatalf("march bucket = %+v", march)
	}
	for i, b := range buckets {
		if i != 2 && b.Entries != 0 {
			t.Errorf("bucket %s has %d entries, want 0", b.Month, b.Entries)
		}
	}
}

func TestYearsPresent(t *testing.T) {
	if got := YearsPresent(nil); len(got) != 0 {
		t.Fatalf("years of empty schedule = %v, want empty", got)
	}
	entries := []domain.ScheduleEntry{
		entry("c1", time.Date(2023, 5, 1, 9, 0, 0, 0, time.UTC), 1, domain.EntryScheduled),
		entry("c1", time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC), 1, domain.EntryScheduled),
		entry("c1", time.Date(2023, 8, 1, 9, 0, 0, 0, time.UTC), 1, domain.EntryScheduled),
	}
	got := YearsPresent(entries)
	if len(got) != 2 || got[0] != 2025 || got[1] != 2023 {
		t.Fatalf("years = %v, want [2025 2023]", got)
	}
}

func TestPerCompanyPerformance(t *testing.T) {
	companies := []domain.Company{
		{ID: "c1", Name: "Ann", HourlyRate: rate(100)},
		{ID: "c2", Name: "Bob", HourlyRate: rate(10)},
		{ID: "c3", Name: "Idle"},
	}
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []domain.ScheduleEntry{
		entry("c1", start, 2, domain.EntryCompleted),
		entry("c2", start, 8, domain.EntryCompleted),
		entry("c2", start.AddDate(0, 0, 1), 8, domain.EntryScheduled),
	}
	byRevenue := PerCompanyPerformance(companies, entries, SortByRevenue)
	if len(byRevenue) != 2 {
		t.Fatalf("companies with no entries should be omitted, got %d rows", len(byRevenue))
	}
	if byRevenue[0].CompanyID != "c1" {
		t.Fatalf("revenue sort: first = %s, want c1", byRevenue[0].CompanyID)
	}
	byRate := PerCompanyPerformance(companies, entries, SortByCompletionRate)
	if byRate[0].CompanyID != "c1" || byRate[0].CompletionRate != 1 {
		t.Fatalf("rate sort: first = %+v", byRate[0])
	}
	if byRate[1].CompletionRate != 0.5 {
		t.Fatalf("c2 completion rate = %v, want 0.5", byRate[1].CompletionRate)
	}
}

func TestSpecialtyBreakdown(t *testing.T) {
	companies := []domain.Company{
		{ID: "c1", Specialty: "HVAC"},
		{ID: "c2", Specialty: "Plumbing"},
		{ID: "c3", Specialty: "HVAC"},
	}
	got := SpecialtyBreakdown(companies)
	if len(got) != 2 {
		t.Fatalf("want 2 specialties, got %d", len(got))
	}
	if got[0].Specialty != "HVAC" || got[0].Count != 2 || got[0].Percentage != 67 {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].Specialty != "Plumbing" || got[1].Percentage != 33 {
		t.Fatalf("second = %+v", got[1])
	}
}

func TestSummarizeYear(t *testing.T) {
	companies := []domain.Company{{ID: "c1", HourlyRate: rate(100)}, {ID: "c2", HourlyRate: rate(50)}}
	entries := []domain.ScheduleEntry{
		entry("c1", time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC), 4, domain.EntryCompleted),
		entry("c2", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), 2, domain.EntryCancelled),
		entry("c1", time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC), 8, domain.EntryCompleted),
	}
	sum := SummarizeYear(entries, companies, 2024)
	if sum.Entries != 2 || sum.Hours != 6 || sum.Revenue != 500 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.UniqueCompanies != 2 || sum.Completed != 1 || sum.Cancelled != 1 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestAnnualPlanMonths(t *testing.T) {
	jobs := []domain.Job{
		{ID: "j1", Title: "Quarterly service", Tags: []string{"HVAC"},
			Frequency: &domain.JobFrequency{Interval: 3, Unit: "month"}},
		{ID: "j2", Title: "Annual inspection",
			Frequency: &domain.JobFrequency{Interval: 1, Unit: "year"}},
		{ID: "j3", Title: "No cadence"},
	}
	rows := AnnualPlan(jobs, nil, nil)
	if len(rows) != 2 {
		t.Fatalf("jobs without a cadence should be omitted, got %d rows", len(rows))
	}
	q := rows[0]
	if q.Frequency != "Quarterly" || q.Category != "HVAC" {
		t.Fatalf("quarterly row = %+v", q)
	}
	wantMonths := [12]bool{true, false, false, true, false, false, true, false, false, true, false, false}
	if q.Months != wantMonths {
		t.Fatalf("quarterly months = %v", q.Months)
	}
	a := rows[1]
	if a.Frequency != "Annual" || !a.Months[0] {
		t.Fatalf("annual row = %+v", a)
	}
	if a.Company != domain.UnknownCompany {
		t.Fatalf("company = %q, want unknown placeholder", a.Company)
	}
}

func TestAnnualPlanCompanyFromEntries(t *testing.T) {
	companies := []domain.Company{{ID: "c1", Company: "Acme HVAC"}}
	jobs := []domain.Job{{ID: "j1", Title: "Service",
		Frequency: &domain.JobFrequency{Interval: 1, Unit: "month"}}}
	entries := []domain.ScheduleEntry{
		entry("c1", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 2, domain.EntryScheduled),
	}
	entries[0].JobID = "j1"
	rows := AnnualPlan(jobs, entries, companies)
	if len(rows) != 1 || rows[0].Company != "Acme HVAC" {
		t.Fatalf("rows = %+v", rows)
	}
}
