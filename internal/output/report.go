package output

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/treecmp/internal/version"
	"github.com/AndreyAkinshin/treecmp/pkg/treecmp"
)

// Report is the outcome of one CLI run, as written in JSON format.
type Report struct {
	RunID             string                    `json:"run_id"`
	Tool              string                    `json:"tool"`
	Version           string                    `json:"version"`
	Expected          string                    `json:"expected"`
	UnderTest         string                    `json:"under_test"`
	Description       string                    `json:"description,omitempty"`
	Match             bool                      `json:"match"`
	Total             int                       `json:"total"`
	Passed            int                       `json:"passed"`
	Failed            int                       `json:"failed"`
	PassRate          *float64                  `json:"pass_rate"`
	Miscompares       []MiscompareGroup         `json:"miscompares"`
	MoreMiscompares   int                       `json:"more_miscompares,omitempty"`
	Incompatibilities []treecmp.Incompatibility `json:"incompatibilities"`
	Mismatches        []string                  `json:"mismatches"`
	Aborted           string                    `json:"aborted,omitempty"`
}

// MiscompareGroup is a miscompare group with a JSON-safe magnitude: null
// stands for NaN (zero on one side).
type MiscompareGroup struct {
	Magnitude    *float64 `json:"magnitude"`
	Descriptions []string `json:"descriptions"`
}

// ReportOptions describes a run for NewReport.
type ReportOptions struct {
	Expected    string
	UnderTest   string
	Description string
	// Top limits the miscompare groups listed; 0 lists all of them.
	Top int
	// Mismatches are the lines received by the comparator's sink.
	Mismatches []string
	// Aborted is the fail-fast error, if the run stopped early.
	Aborted error
}

// NewReport builds a report from a comparison result.
func NewReport(res *treecmp.Result, opts ReportOptions) *Report {
	md, _ := version.Current()
	r := &Report{
		RunID:             uuid.NewString(),
		Tool:              md.Name,
		Version:           md.Version,
		Expected:          opts.Expected,
		UnderTest:         opts.UnderTest,
		Description:       opts.Description,
		Match:             res.Match() && opts.Aborted == nil,
		Total:             res.Total(),
		Passed:            res.Passed(),
		Incompatibilities: res.Incompatibilities(),
		Mismatches:        append([]string{}, opts.Mismatches...),
	}
	r.Failed = r.Total - r.Passed
	if rate, err := res.PassRate(); err == nil {
		r.PassRate = &rate
	}
	if opts.Aborted != nil {
		r.Aborted = opts.Aborted.Error()
	}
	if r.Incompatibilities == nil {
		r.Incompatibilities = []treecmp.Incompatibility{}
	}

	groups := res.Miscompares()
	if opts.Top > 0 && len(groups) > opts.Top {
		r.MoreMiscompares = len(groups) - opts.Top
		groups = groups[:opts.Top]
	}
	r.Miscompares = make([]MiscompareGroup, 0, len(groups))
	for _, g := range groups {
		entry := MiscompareGroup{Descriptions: g.Descriptions}
		if !math.IsNaN(g.Magnitude) {
			m := g.Magnitude
			entry.Magnitude = &m
		}
		r.Miscompares = append(r.Miscompares, entry)
	}
	return r
}

// WriteJSON writes the report as indented JSON to stdout.
func (w *Writer) WriteJSON(r *Report) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteSummary prints the report for a human reader. Quiet mode keeps only
// the final verdict.
func (w *Writer) WriteSummary(r *Report) {
	if r.Match {
		w.FinalSuccess("pass")
		w.Hint("%s leaf comparisons matched", w.Count(r.Total))
		return
	}

	if !w.quiet {
		title := cases.Title(language.English)
		w.Section(title.String("comparison summary"))
		w.SummaryItem("Expected", r.Expected)
		w.SummaryItem("Under test", r.UnderTest)
		if r.Description != "" {
			w.SummaryItem("Description", r.Description)
		}
		w.SummaryItem("Leaves", w.Count(r.Total))
		w.SummaryPassed("Passed", w.Count(r.Passed))
		w.SummaryFailed("Failed", w.Count(r.Failed))
		w.SummaryItem("Pass rate", formatPassRate(r.PassRate))
		if n := len(r.Incompatibilities); n > 0 {
			w.SummaryFailed("Incompatible", w.Count(n))
		}
		if r.Aborted != "" {
			w.SummaryFailed("Stopped early", r.Aborted)
		}

		if len(r.Miscompares) > 0 {
			w.Section(title.String("largest miscompares"))
			rows := make([][]string, 0, len(r.Miscompares))
			for _, g := range r.Miscompares {
				example := ""
				if len(g.Descriptions) > 0 {
					example = g.Descriptions[0]
				}
				rows = append(rows, []string{formatMagnitude(g.Magnitude), w.Count(len(g.Descriptions)), example})
			}
			w.Table([]string{"Rel. error", "Leaves", "First occurrence"}, rows)
			if r.MoreMiscompares > 0 {
				w.Hint("... and %s more groups", w.Count(r.MoreMiscompares))
			}
		}
		w.Println("")
	}
	w.FinalFailure("fail")
}

func formatPassRate(rate *float64) string {
	if rate == nil {
		return "n/a (nothing compared)"
	}
	return fmt.Sprintf("%.2f%%", *rate*100)
}

func formatMagnitude(m *float64) string {
	if m == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.3e", *m)
}
