package view

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// Options are the client settings shared by the views.
type Options struct {
	ToastTTL       time.Duration
	ExportDir      string
	ConfirmDecline bool
}
