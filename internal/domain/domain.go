package domain

import "time"

// Placeholder labels used wherever a dangling company/job reference is
// resolved for display.
const (
	UnknownCompany = "Unknown Company"
	UnknownService = "Unknown Service"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobInProgress JobStatus = "in-progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobPending, JobInProgress, JobCompleted, JobCancelled:
		return true
	}
	return false
}

type EntryStatus string

const (
	EntryScheduled  EntryStatus = "scheduled"
	EntryInProgress EntryStatus = "in-progress"
	EntryCompleted  EntryStatus = "completed"
	EntryCancelled  EntryStatus = "cancelled"
)

func (s EntryStatus) Valid() bool {
	switch s {
	case EntryScheduled, EntryInProgress, EntryCompleted, EntryCancelled:
		return true
	}
	return false
}

type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Company is a service-providing business with contact info and an optional
// billing rate. No uniqueness is enforced on any field beyond ID.
type Company struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Company    string    `json:"company"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Specialty  string    `json:"specialty"`
	Tags       []string  `json:"tags"`
	HourlyRate *float64  `json:"hourly_rate,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// JobFrequency is the simple cadence attached to a Job catalog entry,
// distinct from the standalone RecurringPattern rules.
type JobFrequency struct {
	Interval int    `json:"interval"`
	Unit     string `json:"unit"` // day, week, month, year
}

// Job is a catalog definition of a service type, not a scheduled instance.
type Job struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	Location          string        `json:"location"`
	EstimatedDuration float64       `json:"estimated_duration"` // hours
	Priority          Priority      `json:"priority"`
	Status            JobStatus     `json:"status"`
	Tags              []string      `json:"tags"`
	Notes             string        `json:"notes,omitempty"`
	CompanyID         string        `json:"company_id,omitempty"`
	Frequency         *JobFrequency `json:"frequency,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// ScheduleEntry is a concrete calendar appointment. CompanyID and JobID are
// weak references: the records they name may have been deleted, and every
// consumer must tolerate that. Duration is always derived as EndTime minus
// StartTime; it is never stored.
type ScheduleEntry struct {
	ID        string      `json:"id"`
	CompanyID string      `json:"company_id"`
	JobID     string      `json:"job_id"`
	StartTime time.Time   `json:"start_time"`
	EndTime   time.Time   `json:"end_time"`
	Status    EntryStatus `json:"status"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Hours returns the entry duration in hours from millisecond timestamp
// subtraction. Entries with EndTime before StartTime yield a negative value;
// callers sum it unclamped.
func (e ScheduleEntry) Hours() float64 {
	return float64(e.EndTime.UnixMilli()-e.StartTime.UnixMilli()) / 3_600_000
}

type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

// RecurringPattern is a standalone automation rule that generates
// ScheduleEntry instances on a cadence.
type RecurringPattern struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	CompanyID  string     `json:"company_id"`
	JobID      string     `json:"job_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Frequency  Frequency  `json:"frequency"`
	Interval   int        `json:"interval"`
	DaysOfWeek []int      `json:"days_of_week,omitempty"` // 0=Sunday..6=Saturday, weekly only
	DayOfMonth int        `json:"day_of_month,omitempty"` // 1-31, monthly only
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Settings is the singleton preferences record behind the notifications and
// theming tabs of the dashboard.
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"`
	ReminderHours        int    `json:"reminder_hours"`
	DailyDigest          bool   `json:"daily_digest"`
	NotifyAddress        string `json:"notify_address,omitempty"`
	ThemeName            string `json:"theme_name"`
	AccentColor          string `json:"accent_color"`
}

// DefaultSettings mirrors the dashboard's initial preferences.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: true,
		ReminderHours:        24,
		ThemeName:            "default",
		AccentColor:          "#3B82F6",
	}
}
