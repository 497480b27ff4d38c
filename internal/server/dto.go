package server

import (
	"time"

	"crewdesk/internal/domain"
)

// Request payloads

type CompanyRequest struct {
	Name       string   `json:"name"`
	Company    string   `json:"company,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Specialty  string   `json:"specialty,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

func (r CompanyRequest) model() domain.Company {
	return domain.Company{
		Name:       r.Name,
		Company:    r.Company,
		Email:      r.Email,
		Phone:      r.Phone,
		Specialty:  r.Specialty,
		Tags:       r.Tags,
		HourlyRate: r.HourlyRate,
		Notes:      r.Notes,
	}
}

type JobFrequencyRequest struct {
	Interval int    `json:"interval"`
	Unit     string `json:"unit" enum:"day,week,month,year"`
}

type JobRequest struct {
	Title             string               `json:"title"`
	Description       string               `json:"description,omitempty"`
	Location          string               `json:"location,omitempty"`
	EstimatedDuration float64              `json:"estimated_duration,omitempty"`
	Priority          string               `json:"priority,omitempty" enum:"low,medium,high"`
	Status            string               `json:"status,omitempty" enum:"pending,in-progress,completed,cancelled"`
	Tags              []string             `json:"tags,omitempty"`
	Notes             string               `json:"notes,omitempty"`
	CompanyID         string               `json:"company_id,omitempty"`
	Frequency         *JobFrequencyRequest `json:"frequency,omitempty"`
}

func (r JobRequest) model() domain.Job {
	j := domain.Job{
		Title:             r.Title,
		Description:       r.Description,
		Location:          r.Location,
		EstimatedDuration: r.EstimatedDuration,
		Priority:          domain.Priority(r.Priority),
		Status:            domain.JobStatus(r.Status),
		Tags:              r.Tags,
		Notes:             r.Notes,
		CompanyID:         r.CompanyID,
	}
	if r.Frequency != nil {
		j.Frequency = &domain.JobFrequency{Interval: r.Frequency.Interval, Unit: r.Frequency.Unit}
	}
	return j
}

type EntryRequest struct {
	CompanyID string    `json:"company_id"`
	JobID     string    `json:"job_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status,omitempty" enum:"scheduled,in-progress,completed,cancelled"`
	Notes     string    `json:"notes,omitempty"`
}

func (r EntryRequest) model() domain.ScheduleEntry {
	return domain.ScheduleEntry{
		CompanyID: r.CompanyID,
		JobID:     r.JobID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    domain.EntryStatus(r.Status),
		Notes:     r.Notes,
	}
}

type TagRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

func (r TagRequest) model() domain.Tag {
	return domain.Tag{Name: r.Name, Color: r.Color, Description: r.Description}
}

type PatternRequest struct {
	Name       string     `json:"name"`
	CompanyID  string     `json:"company_id"`
	JobID      string     `json:"job_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Frequency  string     `json:"frequency" enum:"daily,weekly,monthly,yearly"`
	Interval   int        `json:"interval"`
	DaysOfWeek []int      `json:"days_of_week,omitempty"`
	DayOfMonth int        `json:"day_of_month,omitempty"`
	Active     *bool      `json:"active,omitempty"`
}

func (r PatternRequest) model() domain.RecurringPattern {
	p := domain.RecurringPattern{
		Name:       r.Name,
		CompanyID:  r.CompanyID,
		JobID:      r.JobID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Frequency:  domain.Frequency(r.Frequency),
		Interval:   r.Interval,
		DaysOfWeek: r.DaysOfWeek,
		DayOfMonth: r.DayOfMonth,
	}
	if r.Active != nil {
		p.Active = *r.Active
	}
	return p
}

type BulkIDsRequest struct {
	IDs []string `json:"ids"`
}

type BulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status" enum:"scheduled,in-progress,completed,cancelled"`
}
