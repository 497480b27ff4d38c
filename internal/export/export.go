// Package export renders collections as CSV. Multi-valued fields are joined
// with ";" and timestamps are written in RFC 3339, so a file re-imported by
// a spreadsheet keeps sortable values.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"crewdesk/internal/domain"
	"crewdesk/internal/stats"
)

func Companies(w io.Writer, companies []domain.Company) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Name", "Company", "Email", "Phone", "Specialty", "Hourly Rate", "Tags", "Notes", "Created At"}); err != nil {
		return err
	}
	for _, c := range companies {
		rate := ""
		if c.HourlyRate != nil {
			rate = strconv.FormatFloat(*c.HourlyRate, 'f', -1, 64)
		}
		if err := cw.Write([]string{
			c.ID, c.Name, c.Company, c.Email, c.Phone, c.Specialty,
			rate, strings.Join(c.Tags, ";"), c.Notes, timestamp(c.CreatedAt),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func Jobs(w io.Writer, jobs []domain.Job) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Title", "Description", "Location", "Estimated Duration", "Priority", "Status", "Tags", "Notes", "Created At"}); err != nil {
		return err
	}
	for _, j := range jobs {
		if err := cw.Write([]string{
			j.ID, j.Title, j.Description, j.Location,
			strconv.FormatFloat(j.EstimatedDuration, 'f', -1, 64),
			string(j.Priority), string(j.Status),
			strings.Join(j.Tags, ";"), j.Notes, timestamp(j.CreatedAt),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Entries resolves company and job references for display; dangling
// references render as the Unknown placeholders rather than failing the
// export.
func Entries(w io.Writer, entries []domain.ScheduleEntry, companies []domain.Company, jobs []domain.Job) error {
	companyNames, jobTitles := nameIndexes(companies, jobs)
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Company", "Job", "Start Time", "End Time", "Hours", "Status", "Notes"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{
			e.ID,
			resolve(companyNames, e.CompanyID, domain.UnknownCompany),
			resolve(jobTitles, e.JobID, domain.UnknownService),
			timestamp(e.StartTime), timestamp(e.EndTime),
			strconv.FormatFloat(e.Hours(), 'f', 2, 64),
			string(e.Status), e.Notes,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func Tags(w io.Writer, tags []domain.Tag) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Name", "Color", "Description"}); err != nil {
		return err
	}
	for _, t := range tags {
		if err := cw.Write([]string{t.ID, t.Name, t.Color, t.Description}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Report is the combined billing view: one row per entry with the resolved
// rate and revenue, followed by a totals row.
func Report(w io.Writer, entries []domain.ScheduleEntry, companies []domain.Company, jobs []domain.Job) error {
	companyNames, jobTitles := nameIndexes(companies, jobs)
	rates := make(map[string]float64, len(companies))
	for _, c := range companies {
		if c.HourlyRate != nil {
			rates[c.ID] = *c.HourlyRate
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Company", "Job", "Hours", "Rate", "Revenue", "Status"}); err != nil {
		return err
	}
	for _, e := range entries {
		rate, hasRate := rates[e.CompanyID]
		rateCol, revenueCol := "", "0.00"
		if hasRate {
			rateCol = strconv.FormatFloat(rate, 'f', 2, 64)
			revenueCol = strconv.FormatFloat(rate*e.Hours(), 'f', 2, 64)
		}
		if err := cw.Write([]string{
			timestamp(e.StartTime),
			resolve(companyNames, e.CompanyID, domain.UnknownCompany),
			resolve(jobTitles, e.JobID, domain.UnknownService),
			strconv.FormatFloat(e.Hours(), 'f', 2, 64),
			rateCol, revenueCol, string(e.Status),
		}); err != nil {
			return err
		}
	}
	total := []string{
		"Total", "", "",
		strconv.FormatFloat(stats.ScheduledHours(entries), 'f', 2, 64),
		"",
		strconv.FormatFloat(stats.Revenue(entries, companies), 'f', 2, 64),
		fmt.Sprintf("%d entries", len(entries)),
	}
	if err := cw.Write(total); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func nameIndexes(companies []domain.Company, jobs []domain.Job) (map[string]string, map[string]string) {
	companyNames := make(map[string]string, len(companies))
	for _, c := range companies {
		companyNames[c.ID] = c.Name
	}
	jobTitles := make(map[string]string, len(jobs))
	for _, j := range jobs {
		jobTitles[j.ID] = j.Title
	}
	return companyNames, jobTitles
}

func resolve(names map[string]string, id, fallback string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fallback
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
