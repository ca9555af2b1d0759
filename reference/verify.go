package reference

import (
	"time"

	"github.com/crytic/cheatsheet/logging"
	"github.com/crytic/cheatsheet/logging/colors"
	"github.com/crytic/cheatsheet/snippet"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"golang.org/x/net/context"
)

// SnippetChecker verifies code examples against real toolchains. harness.Checker implements it.
type SnippetChecker interface {
	CheckCompiles(language snippet.Language, code string) error
	CheckSnippet(ctx context.Context, language snippet.Language, s snippet.Snippet, name string) error
	CheckVersion(language snippet.Language, expected string) error
}

// VerifyOptions controls which checks Verify runs.
type VerifyOptions struct {
	// Languages restricts verification to the listed languages. If empty, every language is verified.
	Languages []snippet.Language

	// FailFast stops verification at the first failing check.
	FailFast bool

	// SkipVersions skips version checks, for toolchains other than the pinned ones.
	SkipVersions bool
}

// CheckResult is the outcome of a single cell check.
type CheckResult struct {
	// Section is the title of the section holding the checked entry.
	Section string

	// Feature is the feature name of the checked entry.
	Feature string

	// Language is the language of the checked cell.
	Language snippet.Language

	// Kind is the kind of check that ran.
	Kind CheckKind

	// Err is nil if the check passed.
	Err error

	// Duration is the time the check took.
	Duration time.Duration
}

// Passed indicates whether the check passed.
func (r CheckResult) Passed() bool {
	return r.Err == nil
}

// Report collects the outcome of a verification run.
type Report struct {
	// RunID identifies the verification run in logs.
	RunID uuid.UUID

	// Results holds one result per check that ran, in document order.
	Results []CheckResult

	// Skipped counts checks excluded by the options.
	Skipped int
}

// Passed returns the number of passing checks.
func (r *Report) Passed() int {
	passed := 0
	for _, result := range r.Results {
		if result.Passed() {
			passed++
		}
	}
	return passed
}

// Failed returns the number of failing checks.
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// Failures returns the failing results, in document order.
func (r *Report) Failures() []CheckResult {
	failures := make([]CheckResult, 0)
	for _, result := range r.Results {
		if !result.Passed() {
			failures = append(failures, result)
		}
	}
	return failures
}

// PassRate returns the percentage of checks that passed, rounded to two decimal places. A run without checks has a
// pass rate of zero.
func (r *Report) PassRate() decimal.Decimal {
	if len(r.Results) == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(r.Passed())).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(len(r.Results)))).
		Round(2)
}

// Succeeded indicates whether every check that ran passed.
func (r *Report) Succeeded() bool {
	return r.Failed() == 0
}

// Verify runs every cell check of the reference in document order and reports their outcomes. Failures do not stop
// verification unless opts.FailFast is set. A cancelled context stops verification before the next check.
func Verify(ctx context.Context, checker SnippetChecker, ref *Reference, opts VerifyOptions) *Report {
	logger := logging.GlobalLogger.NewSubLogger("module", logging.REFERENCE_SERVICE)
	report := &Report{RunID: uuid.New(), Results: make([]CheckResult, 0)}
	logger.Info("Verifying ", colors.Bold, ref.CheckCount(), colors.Reset, " checks of ", colors.Bold, ref.Title, colors.Reset,
		" (run ", report.RunID.String(), ")")

	for _, section := range ref.Sections {
		for _, entry := range section.Entries {
			for _, language := range snippet.Languages {
				cell := entry.Cell(language)
				if cell == nil || cell.Check == nil {
					continue
				}
				if !selected(opts, language, cell.Check.Kind) {
					report.Skipped++
					continue
				}
				if err := ctx.Err(); err != nil {
					logger.Warn("Verification cancelled", err)
					return report
				}

				start := time.Now()
				result := CheckResult{
					Section:  section.Title,
					Feature:  entry.Feature,
					Language: language,
					Kind:     cell.Check.Kind,
					Err:      runCheck(ctx, checker, ref, language, cell),
				}
				result.Duration = time.Since(start)
				report.Results = append(report.Results, result)
				logResult(logger, report.RunID, result)

				if !result.Passed() && opts.FailFast {
					return report
				}
			}
		}
	}
	return report
}

// selected indicates whether the options include a check.
func selected(opts VerifyOptions, language snippet.Language, kind CheckKind) bool {
	if opts.SkipVersions && kind == CheckKindVersion {
		return false
	}
	return len(opts.Languages) == 0 || slices.Contains(opts.Languages, language)
}

// runCheck runs the check of a single cell.
func runCheck(ctx context.Context, checker SnippetChecker, ref *Reference, language snippet.Language, cell *Cell) error {
	switch cell.Check.Kind {
	case CheckKindVersion:
		return checker.CheckVersion(language, ref.Versions.ForLanguage(language))
	case CheckKindCompiles:
		return checker.CheckCompiles(language, cell.CheckedText())
	}

	s, err := cell.Snippet()
	if err != nil {
		return errors.WithStack(err)
	}
	return checker.CheckSnippet(ctx, language, s, cell.Check.Contract)
}

// logResult logs a check outcome with a structured record of the check.
func logResult(logger *logging.Logger, runID uuid.UUID, result CheckResult) {
	info := logging.StructuredLogInfo{
		logging.CHECK_RESULT: map[string]any{
			"run":      runID.String(),
			"section":  result.Section,
			"feature":  result.Feature,
			"language": result.Language.String(),
			"kind":     string(result.Kind),
			"passed":   result.Passed(),
			"duration": result.Duration.String(),
		},
	}

	if result.Passed() {
		logger.Info(colors.GreenBold, colors.CHECK_MARK, " ", colors.Reset, result.Language.DisplayName(), " ",
			colors.Bold, result.Feature, colors.Reset, " ", colors.DarkGray, "(", string(result.Kind), ")", info)
		return
	}
	logger.Error(colors.RedBold, colors.CROSS_MARK, " ", colors.Reset, result.Language.DisplayName(), " ",
		colors.Bold, result.Feature, colors.Reset, " ", colors.DarkGray, "(", string(result.Kind), ")", info, result.Err)
}
