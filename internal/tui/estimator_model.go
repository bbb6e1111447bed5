// Package tui implements the interactive estimator form on Bubble Tea.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmoss/sprout/internal/dosage"
	"github.com/kmoss/sprout/internal/estimator"
	"github.com/kmoss/sprout/internal/realtime"
	"github.com/kmoss/sprout/internal/units"
)

// FormState represents the current state of the estimator TUI.
type FormState int

const (
	// FormStateEditing indicates the user is editing inputs.
	FormStateEditing FormState = iota
	// FormStateQuitting indicates the application is exiting.
	FormStateQuitting
)

// Form field indices, in focus order.
const (
	fieldArea = iota
	fieldAreaUnit
	fieldWeedSize
	fieldRate
	fieldRateUnit
	fieldSystem
	fieldCount
)

// Default dimensions for the estimator model.
const (
	estimatorDefaultWidth  = 80
	estimatorDefaultHeight = 24
)

// snapshotMsg carries a controller state change into the update loop.
type snapshotMsg struct {
	snapshot realtime.Snapshot
}

// Cycle orders for the selector fields.
var (
	areaUnitCycle = []units.AreaUnit{units.SquareFeet, units.SquareMeters, units.Acres, units.Hectares}
	weedSizeCycle = []dosage.WeedSize{dosage.Small, dosage.Medium, dosage.Large, dosage.ExtraLarge}
	rateUnitCycle = []units.VolumeUnit{units.FluidOunces, units.Milliliters}
	systemCycle   = []units.System{units.Imperial, units.Metric}
)

// EstimatorModel is the Bubble Tea model for the interactive estimator.
// Text fields feed a realtime controller; results arrive asynchronously
// as snapshot messages so typing never blocks on a calculation.
type EstimatorModel struct {
	ctx        context.Context
	controller *realtime.Controller

	areaInput textinput.Model
	rateInput textinput.Model

	inputs     dosage.Inputs
	focused    int
	inputError string

	snapshot realtime.Snapshot
	state    FormState

	width  int
	height int
}

// NewEstimatorModel creates an EstimatorModel with imperial defaults.
// The controller is attached by Run after the program exists, because
// its change callback needs the program to send messages to.
func NewEstimatorModel(ctx context.Context) *EstimatorModel {
	inputs := dosage.DefaultInputs(units.Imperial)

	areaInput := textinput.New()
	areaInput.Placeholder = "1000"
	areaInput.CharLimit = 12
	areaInput.Width = 14
	areaInput.SetValue(strconv.FormatFloat(inputs.Area, 'f', -1, 64))
	areaInput.Focus()

	rateInput := textinput.New()
	rateInput.Placeholder = "2"
	rateInput.CharLimit = 8
	rateInput.Width = 14
	rateInput.SetValue(strconv.FormatFloat(inputs.ApplicationRate, 'f', -1, 64))

	return &EstimatorModel{
		ctx:       ctx,
		areaInput: areaInput,
		rateInput: rateInput,
		inputs:    inputs,
		state:     FormStateEditing,
		width:     estimatorDefaultWidth,
		height:    estimatorDefaultHeight,
	}
}

// SetController attaches the realtime controller and submits the
// initial inputs so the form opens with a result.
func (m *EstimatorModel) SetController(c *realtime.Controller) {
	m.controller = c
	c.SetInputs(m.inputs)
}

// Init initializes the model.
func (m *EstimatorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m *EstimatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.snapshot = msg.snapshot
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleKeyMsg processes keyboard input.
//
//nolint:exhaustive // Only handling relevant key types for form navigation.
func (m *EstimatorModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.state = FormStateQuitting
		return m, tea.Quit

	case tea.KeyTab, tea.KeyDown:
		m.setFocus((m.focused + 1) % fieldCount)
		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		m.setFocus((m.focused + fieldCount - 1) % fieldCount)
		return m, nil

	case tea.KeyLeft:
		if !m.isTextField() {
			m.cycleField(-1)
			m.submitInputs()
			return m, nil
		}

	case tea.KeyRight, tea.KeyEnter:
		if !m.isTextField() {
			m.cycleField(1)
			m.submitInputs()
			return m, nil
		}

	case tea.KeyRunes:
		if string(msg.Runes) == "q" && !m.isTextField() {
			m.state = FormStateQuitting
			return m, tea.Quit
		}
	}

	// Everything else goes to the focused text field.
	if m.isTextField() {
		cmd := m.updateTextField(msg)
		m.submitInputs()
		return m, cmd
	}

	return m, nil
}

// isTextField reports whether the focused field takes typed input.
func (m *EstimatorModel) isTextField() bool {
	return m.focused == fieldArea || m.focused == fieldRate
}

// setFocus moves focus between fields, toggling text input focus.
func (m *EstimatorModel) setFocus(field int) {
	m.focused = field
	m.areaInput.Blur()
	m.rateInput.Blur()

	switch field {
	case fieldArea:
		m.areaInput.Focus()
	case fieldRate:
		m.rateInput.Focus()
	}
}

// updateTextField forwards a key to the focused text input.
func (m *EstimatorModel) updateTextField(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focused {
	case fieldArea:
		m.areaInput, cmd = m.areaInput.Update(msg)
	case fieldRate:
		m.rateInput, cmd = m.rateInput.Update(msg)
	}
	return cmd
}

// cycleField advances a selector field by direction (+1 or -1).
func (m *EstimatorModel) cycleField(direction int) {
	switch m.focused {
	case fieldAreaUnit:
		m.inputs.AreaUnit = cycle(areaUnitCycle, m.inputs.AreaUnit, direction)
	case fieldWeedSize:
		m.inputs.WeedSize = cycle(weedSizeCycle, m.inputs.WeedSize, direction)
	case fieldRateUnit:
		m.inputs.ApplicationUnit = cycle(rateUnitCycle, m.inputs.ApplicationUnit, direction)
	case fieldSystem:
		m.inputs.UnitSystem = cycle(systemCycle, m.inputs.UnitSystem, direction)
	}
}

// cycle returns the element before or after current in order, wrapping
// at either end. Unknown values restart at the first element.
func cycle[T comparable](order []T, current T, direction int) T {
	for i, v := range order {
		if v == current {
			return order[(i+direction+len(order))%len(order)]
		}
	}
	return order[0]
}

// submitInputs parses the text fields and pushes the full input set to
// the controller. Unparseable numbers keep the last good value and
// surface an inline message instead of submitting.
func (m *EstimatorModel) submitInputs() {
	m.inputError = ""

	area, err := strconv.ParseFloat(m.areaInput.Value(), 64)
	if err != nil {
		m.inputError = "area must be a number"
		return
	}
	rate, err := strconv.ParseFloat(m.rateInput.Value(), 64)
	if err != nil {
		m.inputError = "application rate must be a number"
		return
	}

	m.inputs.Area = area
	m.inputs.ApplicationRate = rate

	if m.controller != nil {
		m.controller.SetInputs(m.inputs)
	}
}

// View renders the current view.
func (m *EstimatorModel) View() string {
	if m.state == FormStateQuitting {
		return ""
	}

	var output string
	output += RenderFormHeader()
	output += "\n\n"
	output += m.renderFields()
	output += "\n"

	if m.inputError != "" {
		output += RenderInputError(m.inputError)
		output += "\n"
	}

	output += RenderSnapshot(m.snapshot)
	output += "\n"
	output += RenderFormHelp()

	return output
}

// renderFields renders the six form rows with the focused one marked.
func (m *EstimatorModel) renderFields() string {
	rows := []formRow{
		{label: "Area", value: m.areaInput.View(), text: true},
		{label: "Area unit", value: m.inputs.AreaUnit.Label()},
		{label: "Weed size", value: m.inputs.WeedSize.String()},
		{label: "Rate per 1,000 sq ft", value: m.rateInput.View(), text: true},
		{label: "Rate unit", value: m.inputs.ApplicationUnit.Label()},
		{label: "Unit system", value: m.inputs.UnitSystem.String()},
	}
	return RenderFormRows(rows, m.focused)
}

// Run drives the interactive estimator until the user quits.
func Run(ctx context.Context, engine *estimator.Engine) error {
	model := NewEstimatorModel(ctx)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	controller := realtime.New(ctx, engine, realtime.WithOnChange(func(s realtime.Snapshot) {
		program.Send(snapshotMsg{snapshot: s})
	}))
	defer controller.Close()

	model.SetController(controller)

	_, err := program.Run()
	return err
}
