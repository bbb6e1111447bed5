package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmoss/sprout/internal/realtime"
	"github.com/kmoss/sprout/internal/units"
)

// View layout constants.
const (
	formLabelWidth  = 22
	resultBoxWidth  = 52
	focusMarker     = "▸"
	optimalPackMark = "★"
)

// Shared styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(formLabelWidth)

	focusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("42")).
				Width(formLabelWidth)

	selectorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	stateStyle = lipgloss.NewStyle().
			Faint(true)

	resultBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(resultBoxWidth)

	helpStyle = lipgloss.NewStyle().
			Faint(true)
)

// formRow is one rendered form line.
type formRow struct {
	label string
	value string
	// text marks rows backed by a text input, which carry their own
	// cursor and never get the selector chevrons.
	text bool
}

// RenderFormHeader renders the form title.
func RenderFormHeader() string {
	return headerStyle.Render("SPROUT DOSAGE ESTIMATOR")
}

// RenderFormRows renders the form rows with the focused row marked.
func RenderFormRows(rows []formRow, focused int) string {
	var output strings.Builder

	for i, row := range rows {
		marker := " "
		label := labelStyle.Render(row.label)
		if i == focused {
			marker = focusMarker
			label = focusedLabelStyle.Render(row.label)
		}

		value := row.value
		if !row.text {
			value = selectorStyle.Render("‹ " + value + " ›")
		}

		fmt.Fprintf(&output, "%s %s %s\n", marker, label, value)
	}

	return output.String()
}

// RenderInputError renders an inline validation message under the form.
func RenderInputError(message string) string {
	return errorStyle.Render("✗ " + message)
}

// RenderSnapshot renders the controller's current snapshot: the state
// line, then the last successful result if one exists, then the last
// error. A stale result stays visible while a new one is computed.
func RenderSnapshot(snapshot realtime.Snapshot) string {
	var output strings.Builder

	switch snapshot.State {
	case realtime.Idle:
		output.WriteString(stateStyle.Render("waiting for input"))
		output.WriteString("\n")
	case realtime.PendingDebounce, realtime.Calculating:
		output.WriteString(stateStyle.Render("calculating…"))
		output.WriteString("\n")
	case realtime.Succeeded:
		// Result box below carries the full state.
	case realtime.Failed:
		output.WriteString(errorStyle.Render("✗ " + snapshot.Err))
		output.WriteString("\n")
	}

	if snapshot.Result != nil {
		output.WriteString(renderResultBox(snapshot))
		output.WriteString("\n")
	}

	return output.String()
}

// renderResultBox renders the last successful calculation.
func renderResultBox(snapshot realtime.Snapshot) string {
	result := snapshot.Result

	var content strings.Builder
	fmt.Fprintf(&content, "Concentrate  %s\n", result.RequiredConcentrate.Formatted)
	fmt.Fprintf(&content, "Total mix    %s\n", result.TotalMixture.Formatted)
	fmt.Fprintf(&content, "Coverage     %s\n", result.Coverage.Formatted)
	if result.EstimatedCost > 0 {
		fmt.Fprintf(&content, "Est. cost    %s\n",
			units.FormatCurrency(result.EstimatedCost, result.Currency))
	}

	for _, rec := range result.Recommendations {
		if !rec.IsOptimal {
			continue
		}
		fmt.Fprintf(&content, "%s %d × %s", optimalPackMark, rec.Quantity, rec.PackageID)
		break
	}

	box := resultBoxStyle.Render(strings.TrimRight(content.String(), "\n"))
	if snapshot.State == realtime.PendingDebounce || snapshot.State == realtime.Calculating {
		box = lipgloss.NewStyle().Faint(true).Render(box)
	}
	return box
}

// RenderFormHelp renders the key binding hints.
func RenderFormHelp() string {
	return helpStyle.Render("tab/↓ next · shift+tab/↑ prev · ←/→ change · esc quit")
}
