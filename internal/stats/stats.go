// Package stats computes derived dashboard views over the raw collections.
// Every function is pure and deterministic. Hours, revenue and rates are
// returned at full float precision; only the specialty percentages are
// rounded, matching how they are displayed.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"crewdesk/internal/domain"
)

type Counts struct {
	Companies int `json:"companies"`
	Jobs      int `json:"jobs"`
}

func TotalCounts(companies []domain.Company, jobs []domain.Job) Counts {
	return Counts{Companies: len(companies), Jobs: len(jobs)}
}

func StatusBreakdown(jobs []domain.Job) map[domain.JobStatus]int {
	out := map[domain.JobStatus]int{}
	for _, j := range jobs {
		out[j.Status]++
	}
	return out
}

func PriorityBreakdown(jobs []domain.Job) map[domain.Priority]int {
	out := map[domain.Priority]int{}
	for _, j := range jobs {
		out[j.Priority]++
	}
	return out
}

// ScheduledHours sums entry durations in hours. Entries whose end precedes
// their start contribute negative hours; the sum is not clamped.
func ScheduledHours(entries []domain.ScheduleEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours()
	}
	return total
}

// Revenue sums rate x duration per entry. Entries whose company reference
// does not resolve, or whose company carries no hourly rate, contribute
// zero.
func Revenue(entries []domain.ScheduleEntry, companies []domain.Company) float64 {
	rates := rateIndex(companies)
	var total float64
	for _, e := range entries {
		if rate, ok := rates[e.CompanyID]; ok {
			total += rate * e.Hours()
		}
	}
	return total
}

// CompletionRate is completed entries over all entries, 0 for empty input.
func CompletionRate(entries []domain.ScheduleEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	completed := 0
	for _, e := range entries {
		if e.Status == domain.EntryCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(entries))
}

type SortKey string

const (
	SortByCompletionRate SortKey = "completion_rate"
	SortByRevenue        SortKey = "revenue"
)

type CompanyPerformance struct {
	CompanyID      string  `json:"company_id"`
	Name           string  `json:"name"`
	Company        string  `json:"company"`
	Entries        int     `json:"entries"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
	Hours          float64 `json:"hours"`
	Revenue        float64 `json:"revenue"`
}

// PerCompanyPerformance reports matched entry counts, hours, revenue and
// completion rate per company, sorted descending by the given key.
// Companies with no matching entries are omitted.
func PerCompanyPerformance(companies []domain.Company, entries []domain.ScheduleEntry, key SortKey) []CompanyPerformance {
	var out []CompanyPerformance
	for _, c := range companies {
		perf := CompanyPerformance{CompanyID: c.ID, Name: c.Name, Company: c.Company}
		for _, e := range entries {
			if e.CompanyID != c.ID {
				continue
			}
			perf.Entries++
			perf.Hours += e.Hours()
			if e.Status == domain.EntryCompleted {
				perf.Completed++
			}
		}
		if perf.Entries == 0 {
			continue
		}
		perf.CompletionRate = float64(perf.Completed) / float64(perf.Entries)
		if c.HourlyRate != nil {
			perf.Revenue = perf.Hours * *c.HourlyRate
		}
		out = append(out, perf)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if key == SortByCompletionRate {
			return out[i].CompletionRate > out[j].CompletionRate
		}
		return out[i].Revenue > out[j].Revenue
	})
	return out
}

type MonthBucket struct {
	Month   time.Month `json:"month"`
	Entries int        `json:"entries"`
	Hours   float64    `json:"hours"`
	Revenue float64    `json:"revenue"`
}

// MonthlyBuckets returns twelve January..December buckets holding entry
// count, hours and revenue for entries whose start date falls in the given
// year and month.
func MonthlyBuckets(entries []domain.ScheduleEntry, companies []domain.Company, year int) []MonthBucket {
	rates := rateIndex(companies)
	out := make([]MonthBucket, 12)
	for i := range out {
		out[i].Month = time.Month(i + 1)
	}
	for _, e := range entries {
		if e.StartTime.Year() != year {
			continue
		}
		b := &out[int(e.StartTime.Month())-1]
		b.Entries++
		b.Hours += e.Hours()
		if rate, ok := rates[e.CompanyID]; ok {
			b.Revenue += rate * e.Hours()
		}
	}
	return out
}

// YearsPresent lists the distinct calendar years of entry start dates,
// newest first. Empty input yields an empty list, not the current year.
func YearsPresent(entries []domain.ScheduleEntry) []int {
	seen := map[int]bool{}
	var years []int
	for _, e := range entries {
		y := e.StartTime.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

type SpecialtyCount struct {
	Specialty  string `json:"specialty"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// SpecialtyBreakdown groups companies by specialty in first-seen order with
// integer percentages of the total.
func SpecialtyBreakdown(companies []domain.Company) []SpecialtyCount {
	var out []SpecialtyCount
	index := map[string]int{}
	for _, c := range companies {
		if i, ok := index[c.Specialty]; ok {
			out[i].Count++
			continue
		}
		index[c.Specialty] = len(out)
		out = append(out, SpecialtyCount{Specialty: c.Specialty, Count: 1})
	}
	if len(companies) > 0 {
		for i := range out {
			out[i].Percentage = int(math.Round(float64(out[i].Count) / float64(len(companies)) * 100))
		}
	}
	return out
}

type YearSummary struct {
	Year            int     `json:"year"`
	Entries         int     `json:"entries"`
	Hours           float64 `json:"hours"`
	Revenue         float64 `json:"revenue"`
	UniqueCompanies int     `json:"unique_companies"`
	Completed       int     `json:"completed"`
	Cancelled       int     `json:"cancelled"`
}

// SummarizeYear aggregates the entries whose start date falls in year.
func SummarizeYear(entries []domain.ScheduleEntry, companies []domain.Company, year int) YearSummary {
	rates := rateIndex(companies)
	sum := YearSummary{Year: year}
	seen := map[string]bool{}
	for _, e := range entries {
		if e.StartTime.Year() != year {
			continue
		}
		sum.Entries++
		sum.Hours += e.Hours()
		if rate, ok := rates[e.CompanyID]; ok {
			sum.Revenue += rate * e.Hours()
		}
		if !seen[e.CompanyID] {
			seen[e.CompanyID] = true
			sum.UniqueCompanies++
		}
		switch e.Status {
		case domain.EntryCompleted:
			sum.Completed++
		case domain.EntryCancelled:
			sum.Cancelled++
		}
	}
	return sum
}

type JobBreakdown struct {
	JobID   string  `json:"job_id"`
	Title   string  `json:"title"`
	Entries int     `json:"entries"`
	Revenue float64 `json:"revenue"`
}

// PerJobBreakdown counts entries and revenue per job for the given year.
// Jobs with no matching entries are omitted.
func PerJobBreakdown(jobs []domain.Job, entries []domain.ScheduleEntry, companies []domain.Company, year int) []JobBreakdown {
	rates := rateIndex(companies)
	var out []JobBreakdown
	for _, j := range jobs {
		row := JobBreakdown{JobID: j.ID, Title: j.Title}
		for _, e := range entries {
			if e.JobID != j.ID || e.StartTime.Year() != year {
				continue
			}
			row.Entries++
			if rate, ok := rates[e.CompanyID]; ok {
				row.Revenue += rate * e.Hours()
			}
		}
		if row.Entries > 0 {
			out = append(out, row)
		}
	}
	return out
}

type PlanRow struct {
	JobID     string   `json:"job_id"`
	Service   string   `json:"service"`
	Company   string   `json:"company"`
	Category  string   `json:"category"`
	Location  string   `json:"location"`
	Frequency string   `json:"frequency"`
	Months    [12]bool `json:"months"`
}

// AnnualPlan lays out one row per job that carries a frequency, with the
// months the cadence touches in a calendar year. Weekly and daily cadences
// are folded into months using average month lengths (4.33 weeks, 30.44
// days), which is how a wall-calendar plan is usually drawn.
func AnnualPlan(jobs []domain.Job, entries []domain.ScheduleEntry, companies []domain.Company) []PlanRow {
	byID := make(map[string]domain.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}
	var out []PlanRow
	for _, j := range jobs {
		if j.Frequency == nil || j.Frequency.Interval < 1 {
			continue
		}
		row := PlanRow{
			JobID:     j.ID,
			Service:   j.Title,
			Company:   domain.UnknownCompany,
			Category:  "General",
			Location:  j.Location,
			Frequency: frequencyLabel(*j.Frequency),
			Months:    planMonths(*j.Frequency),
		}
		if len(j.Tags) > 0 {
			row.Category = j.Tags[0]
		}
		if c, ok := byID[planCompanyID(j, entries)]; ok {
			row.Company = c.Company
		}
		out = append(out, row)
	}
	return out
}

// planCompanyID resolves the company behind a plan row: the job's own
// company reference when set, otherwise the company of the first schedule
// entry that references the job.
func planCompanyID(j domain.Job, entries []domain.ScheduleEntry) string {
	if j.CompanyID != "" {
		return j.CompanyID
	}
	for _, e := range entries {
		if e.JobID == j.ID {
			return e.CompanyID
		}
	}
	return ""
}

func frequencyLabel(f domain.JobFrequency) string {
	switch f.Unit {
	case "month":
		switch f.Interval {
		case 1:
			return "Monthly"
		case 3:
			return "Quarterly"
		case 6:
			return "Bi-Annual"
		}
		return fmt.Sprintf("Every %d months", f.Interval)
	case "year":
		if f.Interval == 1 {
			return "Annual"
		}
		return fmt.Sprintf("Every %d years", f.Interval)
	case "week":
		switch f.Interval {
		case 1:
			return "Weekly"
		case 2:
			return "Bi-Weekly"
		}
		return fmt.Sprintf("Every %d weeks", f.Interval)
	case "day":
		if f.Interval == 1 {
			return "Daily"
		}
		return fmt.Sprintf("Every %d days", f.Interval)
	}
	return fmt.Sprintf("Every %d %s", f.Interval, f.Unit)
}

func planMonths(f domain.JobFrequency) [12]bool {
	var months [12]bool
	stride := 0
	switch f.Unit {
	case "month":
		stride = f.Interval
	case "year":
		// Multi-year cadences still occupy one slot in a single-year grid.
		months[0] = true
		return months
	case "week":
		stride = int(math.Ceil(float64(f.Interval) / 4.33))
	case "day":
		stride = int(math.Ceil(float64(f.Interval) / 30.44))
	default:
		return months
	}
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < 12; i += stride {
		months[i] = true
	}
	return months
}

func rateIndex(companies []domain.Company) map[string]float64 {
	rates := make(map[string]float64, len(companies))
	for _, c := range companies {
		if c.HourlyRate != nil {
			rates[c.ID] = *c.HourlyRate
		}
	}
	return rates
}
