package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"crewdesk/internal/config"
	"crewdesk/internal/db"
	"crewdesk/internal/domain"
	"crewdesk/internal/engine"
	"crewdesk/internal/export"
	"crewdesk/internal/logging"
	"crewdesk/internal/migrate"
	"crewdesk/internal/server"
	"crewdesk/internal/stats"
	"crewdesk/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "crewdesk",
	Short: "CrewDesk CLI",
	Long: `CrewDesk schedules service work across companies.
- Workspace: the .crewdesk directory holding the database.
- Companies: the service businesses you book.
- Jobs: the catalog of service types with priority and cadence.
- Entries: concrete calendar appointments; hours and revenue derive from them.
- Patterns: recurrence rules that generate entries ('crewdesk pattern apply').
- Analytics: summaries, per-company performance, monthly and annual views.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workspace := viper.GetString("workspace")
		if _, err := db.EnsureWorkspace(workspace); err != nil {
			return err
		}
		return nil
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("CREWDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(companyCmd())
	rootCmd.AddCommand(jobCmd())
	rootCmd.AddCommand(entryCmd())
	rootCmd.AddCommand(tagCmd())
	rootCmd.AddCommand(patternCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(annualCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(serveCmd())
}

// ---- companies ----

func companyCmd() *cobra.Command {
	c := &cobra.Command{Use: "company", Short: "Manage companies"}
	c.AddCommand(companyListCmd())
	c.AddCommand(companyAddCmd())
	c.AddCommand(companyShowCmd())
	c.AddCommand(companyDeleteCmd())
	return c
}

func companyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				items, err := e.ListCompanies(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Company", "Specialty", "Rate"})
				for _, c := range items {
					rate := ""
					if c.HourlyRate != nil {
						rate = strconv.FormatFloat(*c.HourlyRate, 'f', 2, 64)
					}
					tw.AppendRow(table.Row{c.ID, c.Name, c.Company, c.Specialty, rate})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func companyAddCmd() *cobra.Command {
	var c domain.Company
	var rate float64
	var tags []string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add company",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				c.Tags = tags
				if cmd.Flags().Changed("rate") {
					c.HourlyRate = &rate
				}
				created, err := e.CreateCompany(ctx, c)
				if err != nil {
					return err
				}
				return printJSONOrTable(created)
			})
		},
	}
	cmd.Flags().StringVar(&c.Name, "name", "", "contact name")
	cmd.Flags().StringVar(&c.Company, "company", "", "company name")
	cmd.Flags().StringVar(&c.Email, "email", "", "email address")
	cmd.Flags().StringVar(&c.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&c.Specialty, "specialty", "", "specialty")
	cmd.Flags().Float64Var(&rate, "rate", 0, "hourly rate")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tags")
	cmd.Flags().StringVar(&c.Notes, "notes", "", "notes")
	return cmd
}

func companyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				c, err := e.GetCompany(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSONOrTable(c)
			})
		},
	}
}

func companyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				return e.DeleteCompany(ctx, args[0])
			})
		},
	}
}

// ---- jobs ----

func jobCmd() *cobra.Command {
	c := &cobra.Command{Use: "job", Short: "Manage the job catalog"}
	c.AddCommand(jobListCmd())
	c.AddCommand(jobAddCmd())
	c.AddCommand(jobDeleteCmd())
	return c
}

func jobListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				items, err := e.ListJobs(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Title", "Priority", "Status", "Location"})
				for _, j := range items {
					tw.AppendRow(table.Row{j.ID, j.Title, j.Priority, j.Status, j.Location})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func jobAddCmd() *cobra.Command {
	var title, desc, location, priority, status, notes, companyID, freqUnit string
	var duration float64
	var freqInterval int
	var tags []string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add job",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				j := domain.Job{
					Title:             title,
					Description:       desc,
					Location:          location,
					EstimatedDuration: duration,
					Priority:          domain.Priority(priority),
					Status:            domain.JobStatus(status),
					Tags:              tags,
					Notes:             notes,
					CompanyID:         companyID,
				}
				if freqUnit != "" {
					j.Frequency = &domain.JobFrequency{Interval: freqInterval, Unit: freqUnit}
				}
				created, err := e.CreateJob(ctx, j)
				if err != nil {
					return err
				}
				return printJSONOrTable(created)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "job title")
	cmd.Flags().StringVar(&desc, "description", "", "description")
	cmd.Flags().StringVar(&location, "location", "", "location")
	cmd.Flags().Float64Var(&duration, "duration", 0, "estimated duration in hours")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (low|medium|high)")
	cmd.Flags().StringVar(&status, "status", "", "status (pending|in-progress|completed|cancelled)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tags")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	cmd.Flags().StringVar(&companyID, "company", "", "company id")
	cmd.Flags().IntVar(&freqInterval, "every", 1, "cadence interval")
	cmd.Flags().StringVar(&freqUnit, "unit", "", "cadence unit (day|week|month|year)")
	return cmd
}

func jobDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				return e.DeleteJob(ctx, args[0])
			})
		},
	}
}

// ---- schedule entries ----

func entryCmd() *cobra.Command {
	c := &cobra.Command{Use: "entry", Short: "Manage schedule entries"}
	c.AddCommand(entryListCmd())
	c.AddCommand(entryAddCmd())
	c.AddCommand(entryStatusCmd())
	c.AddCommand(entryDeleteCmd())
	return c
}

func entryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schedule entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				items, err := e.ListEntries(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Start", "End", "Hours", "Status"})
				for _, en := range items {
					tw.AppendRow(table.Row{
						en.ID,
						en.StartTime.Format(time.RFC3339),
						en.EndTime.Format(time.RFC3339),
						strconv.FormatFloat(en.Hours(), 'f', 2, 64),
						en.Status,
					})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func entryAddCmd() *cobra.Command {
	var companyID, jobID, start, end, status, notes string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add schedule entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime, err := time.Parse(time.RFC3339, start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			endTime, err := time.Parse(time.RFC3339, end)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				created, err := e.CreateEntry(ctx, domain.ScheduleEntry{
					CompanyID: companyID,
					JobID:     jobID,
					StartTime: startTime,
					EndTime:   endTime,
					Status:    domain.EntryStatus(status),
					Notes:     notes,
				})
				if err != nil {
					return err
				}
				return printJSONOrTable(created)
			})
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "company id")
	cmd.Flags().StringVar(&jobID, "job", "", "job id")
	cmd.Flags().StringVar(&start, "start", "", "start time (RFC 3339)")
	cmd.Flags().StringVar(&end, "end", "", "end time (RFC 3339)")
	cmd.Flags().StringVar(&status, "status", "", "status")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	return cmd
}

func entryStatusCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "status <id>...",
		Short: "Set status on one or more entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				n, err := e.BulkSetEntryStatus(ctx, args, domain.EntryStatus(status))
				if err != nil {
					return err
				}
				fmt.Printf("updated %d entries\n", n)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&status, "to", "", "target status (scheduled|in-progress|completed|cancelled)")
	return cmd
}

func entryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete one or more entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				n, err := e.BulkDeleteEntries(ctx, args)
				if err != nil {
					return err
				}
				fmt.Printf("deleted %d entries\n", n)
				return nil
			})
		},
	}
}

// ---- tags ----

func tagCmd() *cobra.Command {
	c := &cobra.Command{Use: "tag", Short: "Manage tags"}
	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				items, err := e.ListTags(ctx)
				if err != nil {
					return err
				}
				return printJSONOrTable(items)
			})
		},
	})
	var color, desc string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				t, err := e.CreateTag(ctx, domain.Tag{Name: args[0], Color: color, Description: desc})
				if err != nil {
					return err
				}
				return printJSONOrTable(t)
			})
		},
	}
	add.Flags().StringVar(&color, "color", "", "display color")
	add.Flags().StringVar(&desc, "description", "", "description")
	c.AddCommand(add)
	c.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				return e.DeleteTag(ctx, args[0])
			})
		},
	})
	return c
}

// ---- recurring patterns ----

func patternCmd() *cobra.Command {
	c := &cobra.Command{Use: "pattern", Short: "Manage recurring patterns"}
	c.AddCommand(patternListCmd())
	c.AddCommand(patternAddCmd())
	c.AddCommand(patternPreviewCmd())
	c.AddCommand(patternToggleCmd())
	c.AddCommand(patternApplyCmd())
	c.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				return e.DeletePattern(ctx, args[0])
			})
		},
	})
	return c
}

func patternListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				items, err := e.ListPatterns(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Frequency", "Interval", "Active"})
				for _, p := range items {
					tw.AppendRow(table.Row{p.ID, p.Name, p.Frequency, p.Interval, p.Active})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func patternAddCmd() *cobra.Command {
	var name, companyID, jobID, start, end, frequency string
	var interval, dayOfMonth int
	var daysOfWeek []int
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add recurring pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			p := domain.RecurringPattern{
				Name:       name,
				CompanyID:  companyID,
				JobID:      jobID,
				StartDate:  startDate,
				Frequency:  domain.Frequency(frequency),
				Interval:   interval,
				DaysOfWeek: daysOfWeek,
				DayOfMonth: dayOfMonth,
			}
			if end != "" {
				endDate, err := time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("invalid --end: %w", err)
				}
				p.EndDate = &endDate
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				created, err := e.CreatePattern(ctx, p)
				if err != nil {
					return err
				}
				return printJSONOrTable(created)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "pattern name")
	cmd.Flags().StringVar(&companyID, "company", "", "company id")
	cmd.Flags().StringVar(&jobID, "job", "", "job id")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&frequency, "frequency", "", "daily|weekly|monthly|yearly")
	cmd.Flags().IntVar(&interval, "interval", 1, "repeat every N periods")
	cmd.Flags().IntSliceVar(&daysOfWeek, "weekday", nil, "weekdays for weekly patterns (0=Sunday)")
	cmd.Flags().IntVar(&dayOfMonth, "day-of-month", 0, "day of month for monthly patterns")
	return cmd
}

func patternPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <id>",
		Short: "Preview pattern expansion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				items, err := e.PreviewPattern(ctx, args[0])
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				for _, en := range items {
					fmt.Printf("%s  %s - %s\n", en.StartTime.Format("2006-01-02"),
						en.StartTime.Format("15:04"), en.EndTime.Format("15:04"))
				}
				return nil
			})
		},
	}
}

func patternToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle pattern active flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				p, err := e.TogglePattern(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSONOrTable(p)
			})
		},
	}
}

func patternApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Regenerate schedule from active patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				n, err := e.ApplyPatterns(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("generated %d entries\n", n)
				return nil
			})
		},
	}
}

// ---- analytics ----

func statsCmd() *cobra.Command {
	c := &cobra.Command{Use: "stats", Short: "Dashboard analytics"}
	c.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Overall summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				s, err := e.AnalyticsSummary(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(s)
				}
				fmt.Printf("Companies: %d\n", s.Counts.Companies)
				fmt.Printf("Jobs: %d\n", s.Counts.Jobs)
				fmt.Printf("Scheduled hours: %.2f\n", s.ScheduledHours)
				fmt.Printf("Revenue: %.2f\n", s.Revenue)
				fmt.Printf("Completion rate: %.0f%%\n", s.CompletionRate*100)
				return nil
			})
		},
	})
	var sortKey string
	companies := &cobra.Command{
		Use:   "companies",
		Short: "Per-company performance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				items, err := e.CompanyPerformance(ctx, stats.SortKey(sortKey))
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Company", "Entries", "Completed", "Rate", "Hours", "Revenue"})
				for _, p := range items {
					tw.AppendRow(table.Row{
						p.Name, p.Entries, p.Completed,
						fmt.Sprintf("%.0f%%", p.CompletionRate*100),
						fmt.Sprintf("%.2f", p.Hours),
						fmt.Sprintf("%.2f", p.Revenue),
					})
				}
				tw.Render()
				return nil
			})
		},
	}
	companies.Flags().StringVar(&sortKey, "sort", string(stats.SortByRevenue), "sort key (completion_rate|revenue)")
	c.AddCommand(companies)
	var year int
	monthly := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly buckets for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				items, err := e.MonthlyBuckets(ctx, year)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Month", "Entries", "Hours", "Revenue"})
				for _, b := range items {
					tw.AppendRow(table.Row{b.Month.String(), b.Entries,
						fmt.Sprintf("%.2f", b.Hours), fmt.Sprintf("%.2f", b.Revenue)})
				}
				tw.Render()
				return nil
			})
		},
	}
	monthly.Flags().IntVar(&year, "year", time.Now().Year(), "calendar year")
	c.AddCommand(monthly)
	c.AddCommand(&cobra.Command{
		Use:   "years",
		Short: "Years present in the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				years, err := e.Years(ctx)
				if err != nil {
					return err
				}
				return printJSONOrTable(years)
			})
		},
	})
	return c
}

func annualCmd() *cobra.Command {
	c := &cobra.Command{Use: "annual", Short: "Annual overview"}
	var year int
	report := &cobra.Command{
		Use:   "report",
		Short: "Annual report for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				rep, err := e.AnnualReportFor(ctx, year)
				if err != nil {
					return err
				}
				return printJSONOrTable(rep)
			})
		},
	}
	report.Flags().IntVar(&year, "year", time.Now().Year(), "calendar year")
	c.AddCommand(report)
	c.AddCommand(&cobra.Command{
		Use:   "plan",
		Short: "Annual maintenance plan grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				rows, err := e.AnnualPlan(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(rows)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				header := table.Row{"Service", "Company", "Frequency"}
				for m := time.January; m <= time.December; m++ {
					header = append(header, m.String()[:3])
				}
				tw.AppendHeader(header)
				for _, row := range rows {
					r := table.Row{row.Service, row.Company, row.Frequency}
					for _, on := range row.Months {
						mark := ""
						if on {
							mark = "x"
						}
						r = append(r, mark)
					}
					tw.AppendRow(r)
				}
				tw.Render()
				return nil
			})
		},
	})
	return c
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search companies, jobs and entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				res, err := e.Search(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSONOrTable(res)
			})
		},
	}
}

// ---- export ----

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <companies|jobs|entries|tags|report>",
		Short: "Export a collection as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				w := os.Stdout
				if out != "" {
					f, err := os.Create(out)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}
				switch args[0] {
				case "companies":
					companies, err := e.ListCompanies(ctx)
					if err != nil {
						return err
					}
					return export.Companies(w, companies)
				case "jobs":
					jobs, err := e.ListJobs(ctx)
					if err != nil {
						return err
					}
					return export.Jobs(w, jobs)
				case "tags":
					tags, err := e.ListTags(ctx)
					if err != nil {
						return err
					}
					return export.Tags(w, tags)
				case "entries", "report":
					entries, err := e.ListEntries(ctx)
					if err != nil {
						return err
					}
					companies, err := e.ListCompanies(ctx)
					if err != nil {
						return err
					}
					jobs, err := e.ListJobs(ctx)
					if err != nil {
						return err
					}
					if args[0] == "entries" {
						return export.Entries(w, entries, companies, jobs)
					}
					return export.Report(w, entries, companies, jobs)
				default:
					return fmt.Errorf("unknown collection %q", args[0])
				}
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

// ---- settings ----

func settingsCmd() *cobra.Command {
	c := &cobra.Command{Use: "settings", Short: "Manage settings"}
	c.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				s, err := e.GetSettings(ctx)
				if err != nil {
					return err
				}
				return printJSONOrTable(s)
			})
		},
	})
	var notifications, digest bool
	var reminder int
	var theme, accent, address string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				s, err := e.GetSettings(ctx)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("notifications") {
					s.NotificationsEnabled = notifications
				}
				if cmd.Flags().Changed("daily-digest") {
					s.DailyDigest = digest
				}
				if cmd.Flags().Changed("reminder-hours") {
					s.ReminderHours = reminder
				}
				if cmd.Flags().Changed("theme") {
					s.ThemeName = theme
				}
				if cmd.Flags().Changed("accent") {
					s.AccentColor = accent
				}
				if cmd.Flags().Changed("notify-address") {
					s.NotifyAddress = address
				}
				updated, err := e.UpdateSettings(ctx, s)
				if err != nil {
					return err
				}
				return printJSONOrTable(updated)
			})
		},
	}
	set.Flags().BoolVar(&notifications, "notifications", true, "enable notifications")
	set.Flags().BoolVar(&digest, "daily-digest", false, "enable daily digest")
	set.Flags().IntVar(&reminder, "reminder-hours", 24, "reminder lead time in hours")
	set.Flags().StringVar(&theme, "theme", "", "theme name")
	set.Flags().StringVar(&accent, "accent", "", "accent color")
	set.Flags().StringVar(&address, "notify-address", "", "notification address")
	c.AddCommand(set)
	return c
}

// ---- serve ----

func serveCmd() *cobra.Command {
	var addr, basePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := viper.GetString("workspace")
			cfg, err := config.Load(workspace)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("base-path") {
				cfg.Server.BasePath = basePath
			}
			if secret := os.Getenv("CREWDESK_JWT_SECRET"); secret != "" {
				cfg.Auth.Secret = secret
			}
			conn, err := db.Open(db.Config{Workspace: workspace})
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := migrate.Migrate(conn); err != nil {
				return err
			}
			log := logging.New(cfg.Log.Level)
			defer log.Sync()
			e := engine.New(store.NewSQLite(conn), log)
			handler, err := server.New(server.Config{
				Engine:   e,
				BasePath: cfg.Server.BasePath,
				Auth:     server.AuthConfig{Secret: cfg.Auth.Secret},
			})
			if err != nil {
				return err
			}
			srv := &http.Server{Addr: cfg.Server.Addr, Handler: handler}
			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()
			log.Info("serving", "addr", cfg.Server.Addr, "base_path", cfg.Server.BasePath)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&basePath, "base-path", "/v1", "API base path")
	return cmd
}

// ---- helpers ----

func withEngine(ctx context.Context, fn func(context.Context, engine.Engine) error) error {
	workspace := viper.GetString("workspace")
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := migrate.Migrate(conn); err != nil {
		return err
	}
	cfg, err := config.Load(workspace)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log.Level)
	defer log.Sync()
	e := engine.New(store.NewSQLite(conn), log)
	return fn(ctx, e)
}

func printJSONOrTable(v any) error {
	if viper.GetBool("json") {
		return printJSON(v)
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
