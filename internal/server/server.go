// Package server exposes the scheduling engine over HTTP. Every error
// response uses a single envelope: {"error":{"code","message","details"}}.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"crewdesk/internal/domain"
	"crewdesk/internal/engine"
	"crewdesk/internal/export"
	"crewdesk/internal/stats"
)

// Config for the HTTP API handler.
type Config struct {
	Engine   engine.Engine
	BasePath string
	Auth     AuthConfig
}

type apiErrorBody struct {
	Code    string         `json:"code" example:"not_found"`
	Message string         `json:"message" example:"company abc: not found"`
	Details map[string]any `json:"details,omitempty" jsonschema:"type=object,additionalProperties=true"`
}

// apiError models the error envelope.
type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

// New returns an HTTP handler exposing the CrewDesk API.
func New(cfg Config) (http.Handler, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/v1"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	huma.DefaultArrayNullable = false
	// Route Huma's own errors through the envelope.
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newAPIError(status, "", msg, nil)
	}
	huma.NewErrorWithContext = func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity && strings.Contains(strings.ToLower(msg), "validation") {
			// Schema/request validation errors should be 400 bad_request
			status = http.StatusBadRequest
		}
		var details map[string]any
		if len(errs) > 0 {
			details = map[string]any{"errors": errs}
		}
		return newAPIError(status, "", msg, details)
	}

	router := chi.NewRouter()
	router.Use(newAuthMiddleware(basePath, cfg.Auth))
	hcfg := huma.DefaultConfig("CrewDesk API", "0.1.0")
	hcfg.OpenAPIPath = "/openapi"
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, basePath)

	registerHealth(group)
	registerCompanies(group, cfg.Engine)
	registerJobs(group, cfg.Engine)
	registerEntries(group, cfg.Engine)
	registerTags(group, cfg.Engine)
	registerPatterns(group, cfg.Engine)
	registerAnalytics(group, cfg.Engine)
	registerSearch(group, cfg.Engine)
	registerBulk(group, cfg.Engine)
	registerSettings(group, cfg.Engine)
	registerExport(router, basePath, cfg.Engine)

	return router, nil
}

func newAPIError(status int, code, message string, details map[string]any) huma.StatusError {
	if code == "" {
		code = defaultCodeForStatus(status)
	}
	return &apiError{
		status: status,
		Body: apiErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

func handleError(err error) huma.StatusError {
	if err == nil {
		return nil
	}
	if errors.Is(err, engine.ErrNotFound) {
		return newAPIError(http.StatusNotFound, "not_found", err.Error(), nil)
	}
	msg := err.Error()
	lowered := strings.ToLower(msg)
	switch {
	case strings.Contains(lowered, "already exists"):
		return newAPIError(http.StatusConflict, "conflict", msg, nil)
	case strings.Contains(lowered, "invalid") || strings.Contains(lowered, "required"):
		return newAPIError(http.StatusBadRequest, "bad_request", msg, nil)
	default:
		return newAPIError(http.StatusInternalServerError, "internal_error", "internal error", map[string]any{"error": msg})
	}
}

func defaultCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusInternalServerError:
		return "internal_error"
	default:
		return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string `json:"body"`
	}, error) {
		return &struct {
			Body map[string]string `json:"body"`
		}{Body: map[string]string{"status": "ok"}}, nil
	})
}

func registerCompanies(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-company",
		Method:        http.MethodPost,
		Path:          "/companies",
		Summary:       "Create company",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body CompanyRequest `json:"body"`
	}) (*struct {
		Body domain.Company `json:"body"`
	}, error) {
		c, err := e.CreateCompany(ctx, input.Body.model())
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Company `json:"body"`
		}{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-companies",
		Method:      http.MethodGet,
		Path:        "/companies",
		Summary:     "List companies",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []domain.Company `json:"body"`
	}, error) {
		items, err := e.ListCompanies(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body []domain.Company `json:"body"`
		}{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-company",
		Method:      http.MethodGet,
		Path:        "/companies/{company_id}",
		Summary:     "Get company",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		CompanyID string `path:"company_id"`
	}) (*struct {
		Body domain.Company `json:"body"`
	}, error) {
		c, err := e.GetCompany(ctx, input.CompanyID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Company `json:"body"`
		}{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-company",
		Method:      http.MethodPut,
		Path:        "/companies/{company_id}",
		Summary:     "Update company",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		CompanyID string         `path:"company_id"`
		Body      CompanyRequest `json:"body"`
	}) (*struct {
		Body domain.Company `json:"body"`
	}, error) {
		c, err := e.UpdateCompany(ctx, input.CompanyID, input.Body.model())
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Company `json:"body"`
		}{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-company",
		Method:        http.MethodDelete,
		Path:          "/companies/{company_id}",
		Summary:       "Delete company",
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		CompanyID string `path:"company_id"`
	}) (*struct{}, error) {
		if err := e.DeleteCompany(ctx, input.CompanyID); err != nil {
			return nil, handleError(err)
		}
		return &struct{}{}, nil
	})
}

func registerJobs(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-job",
		Method:        http.MethodPost,
		Path:          "/jobs",
		Summary:       "Create job",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body JobRequest `json:"body"`
	}) (*struct {
		Body domain.Job `json:"body"`
	}, error) {
		j, err := e.CreateJob(ctx, input.Body.model())
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Job `json:"body"`
		}{Body: j}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-jobs",
		Method:      http.MethodGet,
		Path:        "/jobs",
		Summary:     "List jobs",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []domain.Job `json:"body"`
	}, error) {
		items, err := e.ListJobs(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body []domain.Job `json:"body"`
		}{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-job",
		Method:      http.MethodGet,
		Path:        "/jobs/{job_id}",
		Summary:     "Get job",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		JobID string `path:"job_id"`
	}) (*struct {
		Body domain.Job `json:"body"`
	}, error) {
		j, err := e.GetJob(ctx, input.JobID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Job `json:"body"`
		}{Body: j}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-job",
		Method:      http.MethodPut,
		Path:        "/jobs/{job_id}",
		Summary:     "Update job",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		JobID string     `path:"job_id"`
		Body  JobRequest `json:"body"`
	}) (*struct {
		Body domain.Job `json:"body"`
	}, error) {
		j, err := e.UpdateJob(ctx, input.JobID, input.Body.model())
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Job `json:"body"`
		}{Body: j}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-job",
		Method:        http.MethodDelete,
		Path:          "/jobs/{job_id}",
		Summary:       "Delete job",
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		JobID string `path:"job_id"`
	}) (*struct{}, error) {
		if err := e.DeleteJob(ctx, input.JobID); err != nil {
			return nil, handleError(err)
		}
		return &struct{}{}, nil
	})
}

func registerEntries(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-entry",
		Method:        http.MethodPost,
		Path:          "/entries",
		Summary:       "Create schedule entry",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body EntryRequest `json:"body"`
	}) (*struct {
		Body domain.ScheduleEntry `json:"body"`
	}, error) {
		en, err := e.CreateEntry(ctx, input.Body.model())
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.ScheduleEntry `json:"body"`
		}{Body: en}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-entries",
		Method:      http.MethodGet,
		Path:        "/entries",
		Summary:     "List schedule entries",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []domain.ScheduleEntry `json:"body"`
	}, error) {
		items, err := e.ListEntries(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body []domain.ScheduleEntry `json:"body"`
		}{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-entry",
		Method:      http.MethodGet,
		Path:        "/entries/{entry_id}",
		Summary:     "Get schedule entry",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		EntryID string `path:"entry_id"`
	}) (*struct {
		Body domain.ScheduleEntry `json:"body"`
	}, error) {
		en, err := e.GetEntry(ctx, input.EntryID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.ScheduleEntry `json:"body"`
		}{Body: en}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-entry",
		Method:      http.MethodPut,
		Path:        "/entries/{entry_id}",
		Summary:     "Update schedule entry",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		EntryID string       `path:"entry_id"`
		Body    EntryRequest `json:"body"`
	}) (*struct {
		Body domain.ScheduleEntry `json:"body"`
	}, error) {
		en, err := e.UpdateEntry(ctx, input.EntryID, input.Body.model())
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.ScheduleEntry `json:"body"`
		}{Body: en}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-entry",
		Method:        http.MethodDelete,
		Path:          "/entries/{entry_id}",
		Summary:       "Delete schedule entry",
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		EntryID string `path:"entry_id"`
	}) (*struct{}, error) {
		if err := e.DeleteEntry(ctx, input.EntryID); err != nil {
			return nil, handleError(err)
		}
		return &struct{}{}, nil
	})
}

func registerTags(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-tag",
		Method:        http.MethodPost,
		Path:          "/tags",
		Summary:       "Create tag",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusConflict},
	}, func(ctx context.Context, input *struct {
		Body TagRequest `json:"body"`
	}) (*struct {
		Body domain.Tag `json:"body"`
	}, error) {
		t, err := e.CreateTag(ctx, input.Body.model())
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Tag `json:"body"`
		}{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tags",
		Method:      http.MethodGet,
		Path:        "/tags",
		Summary:     "List tags",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []domain.Tag `json:"body"`
	}, error) {
		items, err := e.ListTags(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body []domain.Tag `json:"body"`
		}{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-tag",
		Method:      http.MethodPut,
		Path:        "/tags/{tag_id}",
		Summary:     "Update tag",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict},
	}, func(ctx context.Context, input *struct {
		TagID string     `path:"tag_id"`
		Body  TagRequest `json:"body"`
	}) (*struct {
		Body domain.Tag `json:"body"`
	}, error) {
		t, err := e.UpdateTag(ctx, input.TagID, input.Body.model())
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Tag `json:"body"`
		}{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-tag",
		Method:        http.MethodDelete,
		Path:          "/tags/{tag_id}",
		Summary:       "Delete tag",
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		TagID string `path:"tag_id"`
	}) (*struct{}, error) {
		if err := e.DeleteTag(ctx, input.TagID); err != nil {
			return nil, handleError(err)
		}
		return &struct{}{}, nil
	})
}

func registerPatterns(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-pattern",
		Method:        http.MethodPost,
		Path:          "/patterns",
		Summary:       "Create recurring pattern",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body PatternRequest `json:"body"`
	}) (*struct {
		Body domain.RecurringPattern `json:"body"`
	}, error) {
		p, err := e.CreatePattern(ctx, input.Body.model())
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.RecurringPattern `json:"body"`
		}{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-patterns",
		Method:      http.MethodGet,
		Path:        "/patterns",
		Summary:     "List recurring patterns",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []domain.RecurringPattern `json:"body"`
	}, error) {
		items, err := e.ListPatterns(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body []domain.RecurringPattern `json:"body"`
		}{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-pattern",
		Method:      http.MethodGet,
		Path:        "/patterns/{pattern_id}",
		Summary:     "Get recurring pattern",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		PatternID string `path:"pattern_id"`
	}) (*struct {
		Body domain.RecurringPattern `json:"body"`
	}, error) {
		p, err := e.GetPattern(ctx, input.PatternID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.RecurringPattern `json:"body"`
		}{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-pattern",
		Method:      http.MethodPut,
		Path:        "/patterns/{pattern_id}",
		Summary:     "Update recurring pattern",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		PatternID string         `path:"pattern_id"`
		Body      PatternRequest `json:"body"`
	}) (*struct {
		Body domain.RecurringPattern `json:"body"`
	}, error) {
		p, err := e.UpdatePattern(ctx, input.PatternID, input.Body.model())
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.RecurringPattern `json:"body"`
		}{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-pattern",
		Method:        http.MethodDelete,
		Path:          "/patterns/{pattern_id}",
		Summary:       "Delete recurring pattern",
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		PatternID string `path:"pattern_id"`
	}) (*struct{}, error) {
		if err := e.DeletePattern(ctx, input.PatternID); err != nil {
			return nil, handleError(err)
		}
		return &struct{}{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "toggle-pattern",
		Method:      http.MethodPost,
		Path:        "/patterns/{pattern_id}/toggle",
		Summary:     "Toggle pattern active flag",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		PatternID string `path:"pattern_id"`
	}) (*struct {
		Body domain.RecurringPattern `json:"body"`
	}, error) {
		p, err := e.TogglePattern(ctx, input.PatternID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.RecurringPattern `json:"body"`
		}{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "preview-pattern",
		Method:      http.MethodGet,
		Path:        "/patterns/{pattern_id}/preview",
		Summary:     "Preview pattern expansion",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		PatternID string `path:"pattern_id"`
	}) (*struct {
		Body []domain.ScheduleEntry `json:"body"`
	}, error) {
		items, err := e.PreviewPattern(ctx, input.PatternID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body []domain.ScheduleEntry `json:"body"`
		}{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "apply-patterns",
		Method:      http.MethodPost,
		Path:        "/patterns/apply",
		Summary:     "Regenerate schedule from active patterns",
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]int `json:"body"`
	}, error) {
		n, err := e.ApplyPatterns(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body map[string]int `json:"body"`
		}{Body: map[string]int{"generated": n}}, nil
	})
}

func registerAnalytics(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "analytics-summary",
		Method:      http.MethodGet,
		Path:        "/analytics/summary",
		Summary:     "Overall dashboard summary",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body engine.Summary `json:"body"`
	}, error) {
		s, err := e.AnalyticsSummary(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body engine.Summary `json:"body"`
		}{Body: s}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "analytics-companies",
		Method:      http.MethodGet,
		Path:        "/analytics/companies",
		Summary:     "Per-company performance",
	}, func(ctx context.Context, input *struct {
		Sort string `query:"sort" enum:"completion_rate,revenue" default:"revenue"`
	}) (*struct {
		Body []stats.CompanyPerformance `json:"body"`
	}, error) {
		items, err := e.CompanyPerformance(ctx, stats.SortKey(input.Sort))
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body []stats.CompanyPerformance `json:"body"`
		}{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "analytics-monthly",
		Method:      http.MethodGet,
		Path:        "/analytics/monthly",
		Summary:     "Monthly buckets for a year",
	}, func(ctx context.Context, input *struct {
		Year int `query:"year"`
	}) (*struct {
		Body []stats.MonthBucket `json:"body"`
	}, error) {
		items, err := e.MonthlyBuckets(ctx, input.Year)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body []stats.MonthBucket `json:"body"`
		}{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "analytics-years",
		Method:      http.MethodGet,
		Path:        "/analytics/years",
		Summary:     "Years present in the schedule",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []int `json:"body"`
	}, error) {
		years, err := e.Years(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body []int `json:"body"`
		}{Body: years}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "analytics-annual",
		Method:      http.MethodGet,
		Path:        "/analytics/annual",
		Summary:     "Annual report for a year",
	}, func(ctx context.Context, input *struct {
		Year int `query:"year"`
	}) (*struct {
		Body engine.AnnualReport `json:"body"`
	}, error) {
		rep, err := e.AnnualReportFor(ctx, input.Year)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body engine.AnnualReport `json:"body"`
		}{Body: rep}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "analytics-plan",
		Method:      http.MethodGet,
		Path:        "/analytics/plan",
		Summary:     "Annual maintenance plan grid",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []stats.PlanRow `json:"body"`
	}, error) {
		rows, err := e.AnnualPlan(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body []stats.PlanRow `json:"body"`
		}{Body: rows}, nil
	})
}

func registerSearch(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/search",
		Summary:     "Search companies, jobs and entries",
	}, func(ctx context.Context, input *struct {
		Q string `query:"q"`
	}) (*struct {
		Body engine.SearchResults `json:"body"`
	}, error) {
		res, err := e.Search(ctx, input.Q)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body engine.SearchResults `json:"body"`
		}{Body: res}, nil
	})
}

func registerBulk(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "bulk-delete-entries",
		Method:      http.MethodPost,
		Path:        "/bulk/entries/delete",
		Summary:     "Delete several entries",
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body BulkIDsRequest `json:"body"`
	}) (*struct {
		Body map[string]int `json:"body"`
	}, error) {
		n, err := e.BulkDeleteEntries(ctx, input.Body.IDs)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body map[string]int `json:"body"`
		}{Body: map[string]int{"deleted": n}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "bulk-duplicate-entries",
		Method:      http.MethodPost,
		Path:        "/bulk/entries/duplicate",
		Summary:     "Duplicate several entries",
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body BulkIDsRequest `json:"body"`
	}) (*struct {
		Body []domain.ScheduleEntry `json:"body"`
	}, error) {
		clones, err := e.BulkDuplicateEntries(ctx, input.Body.IDs)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body []domain.ScheduleEntry `json:"body"`
		}{Body: clones}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "bulk-entry-status",
		Method:      http.MethodPost,
		Path:        "/bulk/entries/status",
		Summary:     "Set status on several entries",
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body BulkStatusRequest `json:"body"`
	}) (*struct {
		Body map[string]int `json:"body"`
	}, error) {
		n, err := e.BulkSetEntryStatus(ctx, input.Body.IDs, domain.EntryStatus(input.Body.Status))
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body map[string]int `json:"body"`
		}{Body: map[string]int{"updated": n}}, nil
	})
}

func registerSettings(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "get-settings",
		Method:      http.MethodGet,
		Path:        "/settings",
		Summary:     "Get settings",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body domain.Settings `json:"body"`
	}, error) {
		s, err := e.GetSettings(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Settings `json:"body"`
		}{Body: s}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-settings",
		Method:      http.MethodPut,
		Path:        "/settings",
		Summary:     "Replace settings",
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body domain.Settings `json:"body"`
	}) (*struct {
		Body domain.Settings `json:"body"`
	}, error) {
		s, err := e.UpdateSettings(ctx, input.Body)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Settings `json:"body"`
		}{Body: s}, nil
	})
}

// registerExport serves CSV downloads straight from chi; these endpoints
// return files, not JSON, so they live outside the OpenAPI surface.
func registerExport(r chi.Router, basePath string, e engine.Engine) {
	serve := func(name string, write func(w http.ResponseWriter, req *http.Request) error) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
			if err := write(w, req); err != nil {
				respondStatusError(w, handleError(err))
			}
		}
	}

	r.Get(path.Join(basePath, "export/companies.csv"), serve("companies.csv", func(w http.ResponseWriter, req *http.Request) error {
		companies, err := e.ListCompanies(req.Context())
		if err != nil {
			return err
		}
		return export.Companies(w, companies)
	}))

	r.Get(path.Join(basePath, "export/jobs.csv"), serve("jobs.csv", func(w http.ResponseWriter, req *http.Request) error {
		jobs, err := e.ListJobs(req.Context())
		if err != nil {
			return err
		}
		return export.Jobs(w, jobs)
	}))

	r.Get(path.Join(basePath, "export/entries.csv"), serve("entries.csv", func(w http.ResponseWriter, req *http.Request) error {
		entries, err := e.ListEntries(req.Context())
		if err != nil {
			return err
		}
		companies, err := e.ListCompanies(req.Context())
		if err != nil {
			return err
		}
		jobs, err := e.ListJobs(req.Context())
		if err != nil {
			return err
		}
		return export.Entries(w, entries, companies, jobs)
	}))

	r.Get(path.Join(basePath, "export/tags.csv"), serve("tags.csv", func(w http.ResponseWriter, req *http.Request) error {
		tags, err := e.ListTags(req.Context())
		if err != nil {
			return err
		}
		return export.Tags(w, tags)
	}))

	r.Get(path.Join(basePath, "export/report.csv"), serve("report.csv", func(w http.ResponseWriter, req *http.Request) error {
		entries, err := e.ListEntries(req.Context())
		if err != nil {
			return err
		}
		companies, err := e.ListCompanies(req.Context())
		if err != nil {
			return err
		}
		jobs, err := e.ListJobs(req.Context())
		if err != nil {
			return err
		}
		if yearParam := req.URL.Query().Get("year"); yearParam != "" {
			year, err := strconv.Atoi(yearParam)
			if err != nil {
				return fmt.Errorf("invalid year %q", yearParam)
			}
			filtered := entries[:0:0]
			for _, en := range entries {
				if en.StartTime.Year() == year {
					filtered = append(filtered, en)
				}
			}
			entries = filtered
		}
		return export.Report(w, entries, companies, jobs)
	}))
}
