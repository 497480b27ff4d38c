// Package engine holds the application operations behind both the HTTP API
// and the CLI. Collections are loaded whole from the store, mutated in
// memory, and written back whole.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"crewdesk/internal/domain"
	"crewdesk/internal/logging"
	"crewdesk/internal/recur"
	"crewdesk/internal/stats"
	"crewdesk/internal/store"
)

var ErrNotFound = errors.New("not found")

type Engine struct {
	Store store.Store
	Log   *logging.Logger
	Now   func() time.Time
}

func New(st store.Store, log *logging.Logger) Engine {
	if log == nil {
		log = logging.Nop()
	}
	return Engine{Store: st, Log: log, Now: time.Now}
}

func (e Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// save writes a collection back and logs on failure instead of returning
// the error. A failed write does not undo the in-memory mutation: the
// caller still gets the updated result, and the store simply lags until the
// next successful save.
func (e Engine) save(ctx context.Context, key string, value any) {
	if err := e.Store.Save(ctx, key, value); err != nil {
		e.Log.Error("save failed", "key", key, "error", err)
	}
}

func load[T any](ctx context.Context, e Engine, key string) ([]T, error) {
	var out []T
	err := e.Store.Load(ctx, key, &out)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ---- companies ----

func (e Engine) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return load[domain.Company](ctx, e, store.KeyCompanies)
}

func (e Engine) GetCompany(ctx context.Context, id string) (domain.Company, error) {
	companies, err := e.ListCompanies(ctx)
	if err != nil {
		return domain.Company{}, err
	}
	for _, c := range companies {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Company{}, fmt.Errorf("company %s: %w", id, ErrNotFound)
}

func (e Engine) CreateCompany(ctx context.Context, c domain.Company) (domain.Company, error) {
	if strings.TrimSpace(c.Name) == "" {
		return domain.Company{}, errors.New("company name is required")
	}
	companies, err := e.ListCompanies(ctx)
	if err != nil {
		return domain.Company{}, err
	}
	now := e.now()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	companies = append(companies, c)
	e.save(ctx, store.KeyCompanies, companies)
	return c, nil
}

func (e Engine) UpdateCompany(ctx context.Context, id string, c domain.Company) (domain.Company, error) {
	if strings.TrimSpace(c.Name) == "" {
		return domain.Company{}, errors.New("company name is required")
	}
	companies, err := e.ListCompanies(ctx)
	if err != nil {
		return domain.Company{}, err
	}
	for i := range companies {
		if companies[i].ID != id {
			continue
		}
		c.ID = id
		c.CreatedAt = companies[i].CreatedAt
		c.UpdatedAt = e.now()
		companies[i] = c
		e.save(ctx, store.KeyCompanies, companies)
		return c, nil
	}
	return domain.Company{}, fmt.Errorf("company %s: %w", id, ErrNotFound)
}

// DeleteCompany removes the record only. Schedule entries, jobs and
// patterns that reference it keep their ids and become dangling references,
// which the read paths tolerate.
func (e Engine) DeleteCompany(ctx context.Context, id string) error {
	companies, err := e.ListCompanies(ctx)
	if err != nil {
		return err
	}
	for i := range companies {
		if companies[i].ID == id {
			companies = append(companies[:i], companies[i+1:]...)
			e.save(ctx, store.KeyCompanies, companies)
			return nil
		}
	}
	return fmt.Errorf("company %s: %w", id, ErrNotFound)
}

// ---- jobs ----

func (e Engine) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return load[domain.Job](ctx, e, store.KeyJobs)
}

func (e Engine) GetJob(ctx context.Context, id string) (domain.Job, error) {
	jobs, err := e.ListJobs(ctx)
	if err != nil {
		return domain.Job{}, err
	}
	for _, j := range jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return domain.Job{}, fmt.Errorf("job %s: %w", id, ErrNotFound)
}

func validateJob(j *domain.Job) error {
	if strings.TrimSpace(j.Title) == "" {
		return errors.New("job title is required")
	}
	if j.Priority == "" {
		j.Priority = domain.PriorityMedium
	}
	if !j.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", j.Priority)
	}
	if j.Status == "" {
		j.Status = domain.JobPending
	}
	if !j.Status.Valid() {
		return fmt.Errorf("invalid status %q", j.Status)
	}
	if j.Frequency != nil && j.Frequency.Interval < 1 {
		return errors.New("invalid frequency interval")
	}
	return nil
}

func (e Engine) CreateJob(ctx context.Context, j domain.Job) (domain.Job, error) {
	if err := validateJob(&j); err != nil {
		return domain.Job{}, err
	}
	jobs, err := e.ListJobs(ctx)
	if err != nil {
		return domain.Job{}, err
	}
	now := e.now()
	j.ID = uuid.NewString()
	j.CreatedAt = now
	j.UpdatedAt = now
	jobs = append(jobs, j)
	e.save(ctx, store.KeyJobs, jobs)
	return j, nil
}

func (e Engine) UpdateJob(ctx context.Context, id string, j domain.Job) (domain.Job, error) {
	if err := validateJob(&j); err != nil {
		return domain.Job{}, err
	}
	jobs, err := e.ListJobs(ctx)
	if err != nil {
		return domain.Job{}, err
	}
	for i := range jobs {
		if jobs[i].ID != id {
			continue
		}
		j.ID = id
		j.CreatedAt = jobs[i].CreatedAt
		j.UpdatedAt = e.now()
		jobs[i] = j
		e.save(ctx, store.KeyJobs, jobs)
		return j, nil
	}
	return domain.Job{}, fmt.Errorf("job %s: %w", id, ErrNotFound)
}

func (e Engine) DeleteJob(ctx context.Context, id string) error {
	jobs, err := e.ListJobs(ctx)
	if err != nil {
		return err
	}
	for i := range jobs {
		if jobs[i].ID == id {
			jobs = append(jobs[:i], jobs[i+1:]...)
			e.save(ctx, store.KeyJobs, jobs)
			return nil
		}
	}
	return fmt.Errorf("job %s: %w", id, ErrNotFound)
}

// ---- schedule entries ----

func (e Engine) ListEntries(ctx context.Context) ([]domain.ScheduleEntry, error) {
	return load[domain.ScheduleEntry](ctx, e, store.KeyEntries)
}

func (e Engine) GetEntry(ctx context.Context, id string) (domain.ScheduleEntry, error) {
	entries, err := e.ListEntries(ctx)
	if err != nil {
		return domain.ScheduleEntry{}, err
	}
	for _, en := range entries {
		if en.ID == id {
			return en, nil
		}
	}
	return domain.ScheduleEntry{}, fmt.Errorf("entry %s: %w", id, ErrNotFound)
}

func validateEntry(en *domain.ScheduleEntry) error {
	if en.CompanyID == "" {
		return errors.New("company is required")
	}
	if en.JobID == "" {
		return errors.New("job is required")
	}
	if en.StartTime.IsZero() || en.EndTime.IsZero() {
		return errors.New("start and end times are required")
	}
	if en.Status == "" {
		en.Status = domain.EntryScheduled
	}
	if !en.Status.Valid() {
		return fmt.Errorf("invalid status %q", en.Status)
	}
	return nil
}

// CreateEntry accepts entries whose end precedes their start; the negative
// duration flows through the analytics unclamped.
func (e Engine) CreateEntry(ctx context.Context, en domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	if err := validateEntry(&en); err != nil {
		return domain.ScheduleEntry{}, err
	}
	entries, err := e.ListEntries(ctx)
	if err != nil {
		return domain.ScheduleEntry{}, err
	}
	now := e.now()
	en.ID = uuid.NewString()
	en.CreatedAt = now
	en.UpdatedAt = now
	entries = append(entries, en)
	e.save(ctx, store.KeyEntries, entries)
	return en, nil
}

func (e Engine) UpdateEntry(ctx context.Context, id string, en domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	if err := validateEntry(&en); err != nil {
		return domain.ScheduleEntry{}, err
	}
	entries, err := e.ListEntries(ctx)
	if err != nil {
		return domain.ScheduleEntry{}, err
	}
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		en.ID = id
		en.CreatedAt = entries[i].CreatedAt
		en.UpdatedAt = e.now()
		entries[i] = en
		e.save(ctx, store.KeyEntries, entries)
		return en, nil
	}
	return domain.ScheduleEntry{}, fmt.Errorf("entry %s: %w", id, ErrNotFound)
}

func (e Engine) DeleteEntry(ctx context.Context, id string) error {
	entries, err := e.ListEntries(ctx)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			e.save(ctx, store.KeyEntries, entries)
			return nil
		}
	}
	return fmt.Errorf("entry %s: %w", id, ErrNotFound)
}

// ---- tags ----

func (e Engine) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return load[domain.Tag](ctx, e, store.KeyTags)
}

func (e Engine) CreateTag(ctx context.Context, t domain.Tag) (domain.Tag, error) {
	if strings.TrimSpace(t.Name) == "" {
		return domain.Tag{}, errors.New("tag name is required")
	}
	tags, err := e.ListTags(ctx)
	if err != nil {
		return domain.Tag{}, err
	}
	for _, existing := range tags {
		if strings.EqualFold(existing.Name, t.Name) {
			return domain.Tag{}, fmt.Errorf("tag %q already exists", existing.Name)
		}
	}
	t.ID = uuid.NewString()
	tags = append(tags, t)
	e.save(ctx, store.KeyTags, tags)
	return t, nil
}

func (e Engine) UpdateTag(ctx context.Context, id string, t domain.Tag) (domain.Tag, error) {
	if strings.TrimSpace(t.Name) == "" {
		return domain.Tag{}, errors.New("tag name is required")
	}
	tags, err := e.ListTags(ctx)
	if err != nil {
		return domain.Tag{}, err
	}
	for _, existing := range tags {
		if existing.ID != id && strings.EqualFold(existing.Name, t.Name) {
			return domain.Tag{}, fmt.Errorf("tag %q already exists", existing.Name)
		}
	}
	for i := range tags {
		if tags[i].ID != id {
			continue
		}
		t.ID = id
		tags[i] = t
		e.save(ctx, store.KeyTags, tags)
		return t, nil
	}
	return domain.Tag{}, fmt.Errorf("tag %s: %w", id, ErrNotFound)
}

func (e Engine) DeleteTag(ctx context.Context, id string) error {
	tags, err := e.ListTags(ctx)
	if err != nil {
		return err
	}
	for i := range tags {
		if tags[i].ID == id {
			tags = append(tags[:i], tags[i+1:]...)
			e.save(ctx, store.KeyTags, tags)
			return nil
		}
	}
	return fmt.Errorf("tag %s: %w", id, ErrNotFound)
}

// ---- recurring patterns ----

func (e Engine) ListPatterns(ctx context.Context) ([]domain.RecurringPattern, error) {
	return load[domain.RecurringPattern](ctx, e, store.KeyPatterns)
}

func (e Engine) GetPattern(ctx context.Context, id string) (domain.RecurringPattern, error) {
	patterns, err := e.ListPatterns(ctx)
	if err != nil {
		return domain.RecurringPattern{}, err
	}
	for _, p := range patterns {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.RecurringPattern{}, fmt.Errorf("pattern %s: %w", id, ErrNotFound)
}

func validatePattern(p *domain.RecurringPattern) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("pattern name is required")
	}
	if p.CompanyID == "" {
		return errors.New("company is required")
	}
	if p.JobID == "" {
		return errors.New("job is required")
	}
	if !p.Frequency.Valid() {
		return fmt.Errorf("invalid frequency %q", p.Frequency)
	}
	if p.Interval < 1 {
		return errors.New("invalid interval: must be at least 1")
	}
	if p.StartDate.IsZero() {
		return errors.New("start date is required")
	}
	return nil
}

func (e Engine) CreatePattern(ctx context.Context, p domain.RecurringPattern) (domain.RecurringPattern, error) {
	if err := validatePattern(&p); err != nil {
		return domain.RecurringPattern{}, err
	}
	patterns, err := e.ListPatterns(ctx)
	if err != nil {
		return domain.RecurringPattern{}, err
	}
	now := e.now()
	p.ID = uuid.NewString()
	p.Active = true
	p.CreatedAt = now
	p.UpdatedAt = now
	patterns = append(patterns, p)
	e.save(ctx, store.KeyPatterns, patterns)
	return p, nil
}

func (e Engine) UpdatePattern(ctx context.Context, id string, p domain.RecurringPattern) (domain.RecurringPattern, error) {
	if err := validatePattern(&p); err != nil {
		return domain.RecurringPattern{}, err
	}
	patterns, err := e.ListPatterns(ctx)
	if err != nil {
		return domain.RecurringPattern{}, err
	}
	for i := range patterns {
		if patterns[i].ID != id {
			continue
		}
		p.ID = id
		p.CreatedAt = patterns[i].CreatedAt
		p.UpdatedAt = e.now()
		patterns[i] = p
		e.save(ctx, store.KeyPatterns, patterns)
		return p, nil
	}
	return domain.RecurringPattern{}, fmt.Errorf("pattern %s: %w", id, ErrNotFound)
}

func (e Engine) DeletePattern(ctx context.Context, id string) error {
	patterns, err := e.ListPatterns(ctx)
	if err != nil {
		return err
	}
	for i := range patterns {
		if patterns[i].ID == id {
			patterns = append(patterns[:i], patterns[i+1:]...)
			e.save(ctx, store.KeyPatterns, patterns)
			return nil
		}
	}
	return fmt.Errorf("pattern %s: %w", id, ErrNotFound)
}

// TogglePattern flips the active flag. Inactive patterns are skipped by
// ApplyPatterns but keep their definition.
func (e Engine) TogglePattern(ctx context.Context, id string) (domain.RecurringPattern, error) {
	patterns, err := e.ListPatterns(ctx)
	if err != nil {
		return domain.RecurringPattern{}, err
	}
	for i := range patterns {
		if patterns[i].ID != id {
			continue
		}
		patterns[i].Active = !patterns[i].Active
		patterns[i].UpdatedAt = e.now()
		e.save(ctx, store.KeyPatterns, patterns)
		return patterns[i], nil
	}
	return domain.RecurringPattern{}, fmt.Errorf("pattern %s: %w", id, ErrNotFound)
}

// PreviewPattern expands a pattern without touching the schedule.
func (e Engine) PreviewPattern(ctx context.Context, id string) ([]domain.ScheduleEntry, error) {
	p, err := e.GetPattern(ctx, id)
	if err != nil {
		return nil, err
	}
	return recur.Expand(p, recur.PreviewCount, e.now())
}

// ApplyPatterns regenerates the schedule from all active patterns: every
// previously generated entry is removed, then each active pattern
// contributes a fresh batch. Manually created entries are untouched.
// Applying twice in a row yields the same schedule.
func (e Engine) ApplyPatterns(ctx context.Context) (int, error) {
	patterns, err := e.ListPatterns(ctx)
	if err != nil {
		return 0, err
	}
	entries, err := e.ListEntries(ctx)
	if err != nil {
		return 0, err
	}
	kept := entries[:0]
	for _, en := range entries {
		if !recur.IsGenerated(en) {
			kept = append(kept, en)
		}
	}
	generated := 0
	now := e.now()
	for _, p := range patterns {
		if !p.Active {
			continue
		}
		batch, err := recur.Expand(p, recur.ApplyCount, now)
		if err != nil {
			return 0, fmt.Errorf("pattern %s: %w", p.ID, err)
		}
		kept = append(kept, batch...)
		generated += len(batch)
	}
	e.save(ctx, store.KeyEntries, kept)
	return generated, nil
}

// ---- settings ----

func (e Engine) GetSettings(ctx context.Context) (domain.Settings, error) {
	var s domain.Settings
	err := e.Store.Load(ctx, store.KeySettings, &s)
	if errors.Is(err, store.ErrNotFound) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}

func (e Engine) UpdateSettings(ctx context.Context, s domain.Settings) (domain.Settings, error) {
	if s.ReminderHours < 0 {
		return domain.Settings{}, errors.New("invalid reminder hours")
	}
	if s.ThemeName == "" {
		s.ThemeName = domain.DefaultSettings().ThemeName
	}
	e.save(ctx, store.KeySettings, s)
	return s, nil
}

// ---- search ----

type SearchResults struct {
	Companies []domain.Company       `json:"companies"`
	Jobs      []domain.Job           `json:"jobs"`
	Entries   []domain.ScheduleEntry `json:"entries"`
}

// Search runs a case-insensitive substring match across companies, jobs and
// schedule entries. An empty query matches nothing.
func (e Engine) Search(ctx context.Context, query string) (SearchResults, error) {
	var res SearchResults
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return res, nil
	}
	companies, err := e.ListCompanies(ctx)
	if err != nil {
		return res, err
	}
	jobs, err := e.ListJobs(ctx)
	if err != nil {
		return res, err
	}
	entries, err := e.ListEntries(ctx)
	if err != nil {
		return res, err
	}
	names := make(map[string]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name + " " + c.Company
		if matchAny(q, c.Name, c.Company, c.Email, c.Phone, c.Specialty, strings.Join(c.Tags, " ")) {
			res.Companies = append(res.Companies, c)
		}
	}
	titles := make(map[string]string, len(jobs))
	for _, j := range jobs {
		titles[j.ID] = j.Title
		if matchAny(q, j.Title, j.Description, j.Location, j.Notes, strings.Join(j.Tags, " ")) {
			res.Jobs = append(res.Jobs, j)
		}
	}
	for _, en := range entries {
		if matchAny(q, en.Notes, names[en.CompanyID], titles[en.JobID]) {
			res.Entries = append(res.Entries, en)
		}
	}
	return res, nil
}

func matchAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// ---- bulk operations ----

// BulkDeleteEntries removes every listed entry and reports how many were
// actually present. Unknown ids are skipped, not errors.
func (e Engine) BulkDeleteEntries(ctx context.Context, ids []string) (int, error) {
	entries, err := e.ListEntries(ctx)
	if err != nil {
		return 0, err
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := entries[:0]
	removed := 0
	for _, en := range entries {
		if drop[en.ID] {
			removed++
			continue
		}
		kept = append(kept, en)
	}
	if removed > 0 {
		e.save(ctx, store.KeyEntries, kept)
	}
	return removed, nil
}

// BulkDuplicateEntries clones the listed entries with fresh ids and
// timestamps. Times and references are copied as-is.
func (e Engine) BulkDuplicateEntries(ctx context.Context, ids []string) ([]domain.ScheduleEntry, error) {
	entries, err := e.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	now := e.now()
	var clones []domain.ScheduleEntry
	for _, en := range entries {
		if !want[en.ID] {
			continue
		}
		clone := en
		clone.ID = uuid.NewString()
		clone.CreatedAt = now
		clone.UpdatedAt = now
		clones = append(clones, clone)
	}
	if len(clones) > 0 {
		e.save(ctx, store.KeyEntries, append(entries, clones...))
	}
	return clones, nil
}

// BulkSetEntryStatus moves every listed entry to the given status and
// reports how many changed.
func (e Engine) BulkSetEntryStatus(ctx context.Context, ids []string, status domain.EntryStatus) (int, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("invalid status %q", status)
	}
	entries, err := e.ListEntries(ctx)
	if err != nil {
		return 0, err
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	changed := 0
	now := e.now()
	for i := range entries {
		if !want[entries[i].ID] {
			continue
		}
		entries[i].Status = status
		entries[i].UpdatedAt = now
		changed++
	}
	if changed > 0 {
		e.save(ctx, store.KeyEntries, entries)
	}
	return changed, nil
}

// ---- analytics ----

type Summary struct {
	Counts         stats.Counts             `json:"counts"`
	StatusCounts   map[domain.JobStatus]int `json:"status_counts"`
	PriorityCounts map[domain.Priority]int  `json:"priority_counts"`
	ScheduledHours float64                  `json:"scheduled_hours"`
	Revenue        float64                  `json:"revenue"`
	CompletionRate float64                  `json:"completion_rate"`
	Specialties    []stats.SpecialtyCount   `json:"specialties"`
}

func (e Engine) AnalyticsSummary(ctx context.Context) (Summary, error) {
	companies, jobs, entries, err := e.loadAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Counts:         stats.TotalCounts(companies, jobs),
		StatusCounts:   stats.StatusBreakdown(jobs),
		PriorityCounts: stats.PriorityBreakdown(jobs),
		ScheduledHours: stats.ScheduledHours(entries),
		Revenue:        stats.Revenue(entries, companies),
		CompletionRate: stats.CompletionRate(entries),
		Specialties:    stats.SpecialtyBreakdown(companies),
	}, nil
}

func (e Engine) CompanyPerformance(ctx context.Context, key stats.SortKey) ([]stats.CompanyPerformance, error) {
	companies, _, entries, err := e.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return stats.PerCompanyPerformance(companies, entries, key), nil
}

func (e Engine) MonthlyBuckets(ctx context.Context, year int) ([]stats.MonthBucket, error) {
	companies, _, entries, err := e.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return stats.MonthlyBuckets(entries, companies, year), nil
}

func (e Engine) Years(ctx context.Context) ([]int, error) {
	entries, err := e.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	return stats.YearsPresent(entries), nil
}

type AnnualReport struct {
	Summary   stats.YearSummary          `json:"summary"`
	Monthly   []stats.MonthBucket        `json:"monthly"`
	Companies []stats.CompanyPerformance `json:"companies"`
	Jobs      []stats.JobBreakdown       `json:"jobs"`
}

func (e Engine) AnnualReportFor(ctx context.Context, year int) (AnnualReport, error) {
	companies, jobs, entries, err := e.loadAll(ctx)
	if err != nil {
		return AnnualReport{}, err
	}
	var inYear []domain.ScheduleEntry
	for _, en := range entries {
		if en.StartTime.Year() == year {
			inYear = append(inYear, en)
		}
	}
	return AnnualReport{
		Summary:   stats.SummarizeYear(entries, companies, year),
		Monthly:   stats.MonthlyBuckets(entries, companies, year),
		Companies: stats.PerCompanyPerformance(companies, inYear, stats.SortByRevenue),
		Jobs:      stats.PerJobBreakdown(jobs, entries, companies, year),
	}, nil
}

func (e Engine) AnnualPlan(ctx context.Context) ([]stats.PlanRow, error) {
	companies, jobs, entries, err := e.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return stats.AnnualPlan(jobs, entries, companies), nil
}

func (e Engine) loadAll(ctx context.Context) ([]domain.Company, []domain.Job, []domain.ScheduleEntry, error) {
	companies, err := e.ListCompanies(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	jobs, err := e.ListJobs(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	entries, err := e.ListEntries(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return companies, jobs, entries, nil
}
