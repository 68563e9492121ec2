// Package tui implements the (ADDED) inspect browser of SPEC_FULL §2: a
// read-only Bubble Tea list/viewport over a completed parse run's
// targets, inference rules, variables, and diagnostics. This module
// never runs a recipe (SPEC_FULL §1), so there is no execution state,
// confirmation dialog, or multi-workspace switcher to drive — only a
// list/viewport shell browsing parser output.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pane identifies one of the browser's tabs.
type Pane int

const (
	PaneTargets Pane = iota
	PaneRules
	PaneVariables
	PaneDiagnostics
	paneCount
)

func (p Pane) String() string {
	switch p {
	case PaneTargets:
		return "Targets"
	case PaneRules:
		return "Inference Rules"
	case PaneVariables:
		return "Variables"
	case PaneDiagnostics:
		return "Diagnostics"
	default:
		return "?"
	}
}

// Snapshot is everything the browser renders, assembled once after a
// parse run completes (the browser never re-parses or executes).
type Snapshot struct {
	Targets     []TargetRow
	Rules       []RuleRow
	Variables   []VariableRow
	Diagnostics []DiagnosticRow
}

// TargetRow is one target's display row plus the detail text shown in
// the viewport when it is selected.
type TargetRow struct {
	Name, Scope, Recipe string
	Dependencies        []string
	InferencePseudo     bool
}

// RuleRow is one inference rule's display row.
type RuleRow struct {
	FromDir, FromExt, ToDir, ToExt string
}

// VariableRow is one scope-qualified variable.
type VariableRow struct {
	Scope, Name, Value string
}

// DiagnosticRow is one advisory diagnostic (lint finding, !MESSAGE
// output, undefined-variable warning).
type DiagnosticRow struct {
	Severity, Target, File string
	Line                   int
	Message                string
}

// Model is the top-level Bubble Tea model: one list.Model per pane
// (populated by NewModel) and a shared viewport for the selected item's
// detail text.
type Model struct {
	snapshot Snapshot
	lists    [paneCount]list.Model
	detail   viewport.Model

	active Pane
	width  int
	height int
}

// NewModel builds a Model over snap, one list per pane populated up
// front so tab switches are instant.
func NewModel(snap Snapshot) Model {
	m := Model{snapshot: snap}
	m.lists[PaneTargets] = newList("Targets", targetItems(snap.Targets))
	m.lists[PaneRules] = newList("Inference Rules", ruleItems(snap.Rules))
	m.lists[PaneVariables] = newList("Variables", variableItems(snap.Variables))
	m.lists[PaneDiagnostics] = newList("Diagnostics", diagnosticItems(snap.Diagnostics))
	m.detail = viewport.New(0, 0)
	return m
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, NewItemDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	return l
}

func targetItems(rows []TargetRow) []list.Item {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		title := r.Name
		if r.InferencePseudo {
			title += " (inference)"
		}
		desc := fmt.Sprintf("%s · %d dep(s)", r.Scope, len(r.Dependencies))
		detail := r.Recipe
		if detail == "" {
			detail = "(no recipe)"
		}
		if len(r.Dependencies) > 0 {
			detail = "deps: " + strings.Join(r.Dependencies, ", ") + "\n\n" + detail
		}
		items[i] = item{title: title, desc: desc, detail: detail}
	}
	return items
}

func ruleItems(rows []RuleRow) []list.Item {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		title := fmt.Sprintf("{%s}.%s -> {%s}.%s", r.FromDir, r.FromExt, r.ToDir, r.ToExt)
		items[i] = item{title: title, desc: "inference rule", detail: title}
	}
	return items
}

func variableItems(rows []VariableRow) []list.Item {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = item{title: r.Name, desc: r.Scope, detail: r.Value}
	}
	return items
}

func diagnosticItems(rows []DiagnosticRow) []list.Item {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		title := fmt.Sprintf("[%s] %s", r.Severity, r.Target)
		desc := r.File
		if r.Line > 0 {
			desc = fmt.Sprintf("%s(%d)", r.File, r.Line)
		}
		items[i] = item{title: title, desc: desc, detail: r.Message}
	}
	return items
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.active = (m.active + 1) % paneCount
			m.syncDetail()
			return m, nil
		case "shift+tab":
			m.active = (m.active - 1 + paneCount) % paneCount
			m.syncDetail()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.lists[m.active], cmd = m.lists[m.active].Update(msg)
	m.syncDetail()
	return m, cmd
}

func (m *Model) layout() {
	listWidth := m.width / 2
	if listWidth < 20 {
		listWidth = m.width
	}
	detailWidth := m.width - listWidth
	bodyHeight := m.height - 4
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	for i := range m.lists {
		m.lists[i].SetSize(listWidth, bodyHeight)
	}
	m.detail.Width = detailWidth
	m.detail.Height = bodyHeight
}

func (m *Model) syncDetail() {
	sel, ok := m.lists[m.active].SelectedItem().(item)
	if !ok {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(sel.detail)
}

// View implements tea.Model.
func (m Model) View() string {
	var tabs strings.Builder
	for p := Pane(0); p < paneCount; p++ {
		style := TabInactiveStyle
		if p == m.active {
			style = TabActiveStyle
		}
		tabs.WriteString(style.Render(p.String()))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.lists[m.active].View(), m.detail.View())
	status := renderStatusBar(m.width, fmt.Sprintf("pane %d/%d", m.active+1, paneCount), "tab: switch pane · q: quit")

	return tabs.String() + "\n" + body + "\n" + status
}
