package telemetry

import (
	"fmt"
	"strings"
	"time"
)

// GenerateInsights turns stats into short suggestions for the stats command.
func GenerateInsights(stats Stats) []Insight {
	var insights []Insight

	if stats.TotalRuns == 0 {
		return insights
	}

	if stats.SuccessRate < 80 {
		insights = append(insights, Insight{
			Type:        "success_rate",
			Title:       "Low Success Rate",
			Description: fmt.Sprintf("Only %.1f%% of generation runs succeeded. Check common errors below.", stats.SuccessRate),
			Severity:    "high",
		})
	}

	for _, e := range stats.CommonErrors {
		if e.Count < 3 {
			continue
		}
		insights = append(insights, Insight{
			Type:        "errors",
			Title:       "Frequent Error: " + e.ErrorType,
			Description: fmt.Sprintf("Seen %d times. %s", e.Count, errorFix(e.ErrorType)),
			Severity:    e.severityFromCount(),
		})
	}

	if stats.AvgRunDuration > 2*time.Minute {
		insights = append(insights, Insight{
			Type:        "performance",
			Title:       "Slow Runs",
			Description: "Runs take over two minutes on average. Lower runtime.probe_timeout if version probes hang.",
			Severity:    "low",
		})
	}

	if stats.SuccessRate >= 90 && len(stats.CommonErrors) == 0 {
		insights = append(insights, Insight{
			Type:        "success",
			Title:       "Excellent",
			Description: "Over 90% of runs succeeded with no errors recorded.",
			Severity:    "low",
		})
	}

	return insights
}

func errorFix(errType string) string {
	fixes := map[string]string{
		"precondition_conflict":    "Remove or move the existing Dockerfile, compose and deploy files before generating.",
		"missing_manifest":         "Run the generator from the project root next to package.json or composer.json.",
		"unsupported_project_type": "That project type is not available yet; pick another.",
		"write_failure":            "Check directory permissions and free disk space.",
		"invalid_profile":          "Project names must be lowercase letters, digits, '.', '_' or '-'.",
		"aborted":                  "Input ended before all questions were answered.",
	}

	if fix, ok := fixes[errType]; ok {
		return fix
	}

	return "Run with --verbose for details."
}

func (e *ErrorStat) severityFromCount() string {
	if e.Count > 20 {
		return "high"
	} else if e.Count > 10 {
		return "medium"
	}
	return "low"
}

// FormatInsight formats an insight for display
func FormatInsight(insight Insight) string {
	return fmt.Sprintf("[%s] %s: %s", insight.Severity, insight.Title, insight.Description)
}

// GetSummary returns a text summary of statistics
func GetSummary(stats Stats, days int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Usage Statistics (Last %d Days)\n", days)
	fmt.Fprintf(&b, "- Generation runs: %d\n", stats.TotalRuns)
	fmt.Fprintf(&b, "- Success rate: %.1f%%\n", stats.SuccessRate)
	fmt.Fprintf(&b, "- Average run: %s\n", stats.AvgRunDuration.Round(time.Millisecond))

	if len(stats.TopProjectTypes) > 0 {
		b.WriteString("\nProject Types:\n")
		for i, pt := range stats.TopProjectTypes {
			fmt.Fprintf(&b, "  %d. %s: %d runs (%.1f%% success)\n", i+1, pt.ProjectType, pt.Count, pt.SuccessRate)
		}
	}

	if len(stats.TopCommands) > 0 {
		b.WriteString("\nCommands:\n")
		for i, cmd := range stats.TopCommands {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "  %s: %d\n", cmd.Command, cmd.Count)
		}
	}

	if len(stats.CommonErrors) > 0 {
		b.WriteString("\nCommon Errors:\n")
		for i, err := range stats.CommonErrors {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "  %d. %s: %d occurrences\n", i+1, err.ErrorType, err.Count)
		}
	}

	return b.String()
}
