package ui

import (
	"github.com/marcus/stickies/internal/modal"
)

// Modal widths shared across dialogs.
const (
	ModalWidthSmall  = 40
	ModalWidthMedium = 50
	ModalWidthLarge  = 70
)

// ConfirmDialog is a reusable confirmation modal with interactive buttons.
type ConfirmDialog struct {
	Title        string
	Message      string
	ConfirmLabel string // e.g., " Confirm ", " Quit ", " Yes "
	CancelLabel  string // e.g., " Cancel ", " No "
	Danger       bool   // Draw the dialog and confirm button in the error color
	Width        int
}

// NewConfirmDialog creates a dialog with sensible defaults.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		Width:        ModalWidthMedium,
	}
}

// ToModal adapts the dialog configuration into a modal.Modal instance.
// Its actions are "confirm" and "cancel".
func (d *ConfirmDialog) ToModal() *modal.Modal {
	variant := modal.VariantDefault
	confirm := modal.Btn(d.ConfirmLabel, "confirm")
	if d.Danger {
		variant = modal.VariantDanger
		confirm = modal.DangerBtn(d.ConfirmLabel, "confirm")
	}

	m := modal.New(d.Title,
		modal.WithWidth(d.Width),
		modal.WithVariant(variant),
		modal.WithHints(false),
	).
		AddSection(modal.Text(d.Message)).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(confirm, modal.Btn(d.CancelLabel, "cancel")))
	m.FocusFirst()
	return m
}
