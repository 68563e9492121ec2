package tui

import (
	"github.com/charmbracelet/bubbles/list"
)

// item is a generic list.DefaultItem: every pane (targets, inference
// rules, variables, diagnostics) renders through the same delegate.
type item struct {
	title string
	desc  string
	// detail is the full text shown in the viewport when this item is
	// selected (a recipe body, a diagnostic message, a variable value).
	detail string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + " " + i.desc }

// NewItemDelegate returns a bubbles list.DefaultDelegate styled with this
// package's palette.
func NewItemDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(PrimaryColor).
		BorderForeground(PrimaryColor)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(SecondaryColor).
		BorderForeground(PrimaryColor)
	d.Styles.NormalTitle = d.Styles.NormalTitle.Foreground(TextColor)
	d.Styles.NormalDesc = d.Styles.NormalDesc.Foreground(MutedColor)
	d.Styles.DimmedTitle = d.Styles.DimmedTitle.Foreground(MutedColor)
	d.Styles.DimmedDesc = d.Styles.DimmedDesc.Foreground(MutedColor)
	d.Styles.FilterMatch = d.Styles.FilterMatch.Foreground(WarningColor).Bold(true)

	return d
}
