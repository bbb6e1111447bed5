package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmoss/sprout/internal/estimator"
	"github.com/kmoss/sprout/internal/packs"
	"github.com/kmoss/sprout/internal/units"
)

// Result rendering constants.
const (
	resultBoxWidth       = 58
	resultTitlePadding   = 4 // Padding for title separator line
	optimalMarker        = "★"
	recommendationIndent = "  "
)

// renderResult renders a calculation result, styled when stdout is a
// terminal, plain otherwise.
func renderResult(result *estimator.Result) string {
	if isTerminal(os.Stdout) {
		return renderStyledResult(result)
	}
	return renderPlainResult(result)
}

// renderStyledResult renders a boxed representation of the calculation
// using Lip Gloss.
func renderStyledResult(result *estimator.Result) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("42"))

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("33"))

	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(resultBoxWidth)

	var content strings.Builder

	content.WriteString(titleStyle.Render("DOSAGE ESTIMATE"))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("═", resultBoxWidth-resultTitlePadding))
	content.WriteString("\n\n")

	content.WriteString(sectionStyle.Render("MIXTURE"))
	content.WriteString("\n")
	content.WriteString(renderMixtureLines(result))
	content.WriteString("\n")

	if len(result.Recommendations) > 0 {
		content.WriteString(sectionStyle.Render("PACKAGES"))
		content.WriteString("\n")
		content.WriteString(renderRecommendationLines(result.Recommendations, result.Currency, true))
	}

	content.WriteString("\n")
	content.WriteString(sectionStyle.Render("BREAKDOWN"))
	content.WriteString("\n")
	content.WriteString(renderBreakdownLines(result))

	return borderStyle.Render(content.String()) + "\n"
}

// renderPlainResult renders the calculation as plain text for pipes and
// redirected output.
func renderPlainResult(result *estimator.Result) string {
	var content strings.Builder

	content.WriteString("DOSAGE ESTIMATE\n")
	content.WriteString("===============\n")
	content.WriteString(renderMixtureLines(result))
	content.WriteString("\n")

	if len(result.Recommendations) > 0 {
		content.WriteString("PACKAGES\n")
		content.WriteString("--------\n")
		content.WriteString(renderRecommendationLines(result.Recommendations, result.Currency, false))
		content.WriteString("\n")
	}

	content.WriteString("BREAKDOWN\n")
	content.WriteString("---------\n")
	content.WriteString(renderBreakdownLines(result))

	return content.String()
}

// renderMixtureLines builds the concentrate/mixture/coverage/cost lines
// shared by the styled and plain renderers.
func renderMixtureLines(result *estimator.Result) string {
	var content strings.Builder

	fmt.Fprintf(&content, "  Concentrate: %s\n", result.RequiredConcentrate.Formatted)
	fmt.Fprintf(&content, "  Total mix:   %s\n", result.TotalMixture.Formatted)
	fmt.Fprintf(&content, "  Coverage:    %s\n", result.Coverage.Formatted)
	if result.EstimatedCost > 0 {
		fmt.Fprintf(&content, "  Est. cost:   %s\n",
			units.FormatCurrency(result.EstimatedCost, result.Currency))
	}

	return content.String()
}

// renderRecommendationLines lists ranked package options, cheapest
// effective option first. The optimal row carries a marker; the marker
// is styled only when styled is true.
func renderRecommendationLines(recs []packs.Recommendation, currency string, styled bool) string {
	var content strings.Builder

	optimalStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))

	for _, rec := range recs {
		marker := " "
		if rec.IsOptimal {
			marker = optimalMarker
			if styled {
				marker = optimalStyle.Render(optimalMarker)
			}
		}
		fmt.Fprintf(&content, "%s%s %d × %-12s %s\n",
			recommendationIndent,
			marker,
			rec.Quantity,
			rec.PackageID,
			units.FormatCurrency(rec.TotalCost, currency))
	}

	return content.String()
}

// renderBreakdownLines lists the calculation steps with their formulas.
func renderBreakdownLines(result *estimator.Result) string {
	var content strings.Builder

	for _, step := range result.Breakdown.Steps {
		fmt.Fprintf(&content, "  %-22s %s\n", step.Name, step.Formula)
	}
	for _, assumption := range result.Breakdown.Assumptions {
		fmt.Fprintf(&content, "  note: %s\n", assumption)
	}

	return content.String()
}

// renderRecommendations renders a standalone package ranking for the
// packages command.
func renderRecommendations(recs []packs.Recommendation, currency string) string {
	var content strings.Builder

	content.WriteString("PACKAGES\n")
	content.WriteString("--------\n")
	content.WriteString(renderRecommendationLines(recs, currency, isTerminal(os.Stdout)))

	return content.String()
}
