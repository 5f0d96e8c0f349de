package view

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/voucherdesk/internal/api"
	"github.com/MrJamesThe3rd/voucherdesk/internal/lifecycle"
)

type uploadFields struct {
	title           string
	description     string
	category        string
	transactionType string
	paths           string
}

// splitPaths splits the comma separated file list, dropping blanks.
func splitPaths(s string) []string {
	var out []string

	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

func validatePaths(s string) error {
	paths := splitPaths(s)
	if len(paths) == 0 {
		return errors.New("at least one file is required")
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("%s: file not found", p)
		}

		if info.IsDir() {
			return fmt.Errorf("%s is a directory", p)
		}
	}

	return nil
}

func newUploadForm(f *uploadFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("files").
				Title("Files").
				Description("Comma separated paths").
				Placeholder("./receipt.pdf, ./invoice.png").
				Value(&f.paths).
				Validate(validatePaths),

			huh.NewInput().
				Key("title").
				Title("Title").
				Description("Defaults to the first file name").
				Value(&f.title),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&f.description),

			huh.NewInput().
				Key("category").
				Title("Category").
				Placeholder("Travel").
				Value(&f.category),

			huh.NewSelect[string]().
				Key("transaction_type").
				Title("Transaction Type").
				Options(
					huh.NewOption("Not set", ""),
					huh.NewOption("Expense", "expense"),
					huh.NewOption("Income", "income"),
				).
				Value(&f.transactionType),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (f *uploadFields) request() api.UploadRequest {
	return api.UploadRequest{
		Title:           strings.TrimSpace(f.title),
		Description:     strings.TrimSpace(f.description),
		Category:        strings.TrimSpace(f.category),
		TransactionType: f.transactionType,
	}
}

type uploadResultMsg struct {
	title   string
	skipped bool
	err     error
}

// uploadCmd opens the files and uploads them as one voucher. Without a
// signed-in user nothing is sent.
func uploadCmd(ctrl *lifecycle.Controller, client *api.Client, req api.UploadRequest, paths []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		req.UserID = ctrl.UserID(ctx)
		if req.UserID == "" {
			return uploadResultMsg{skipped: true}
		}

		for _, p := range paths {
			f, err := os.Open(p)
			if err != nil {
				return uploadResultMsg{err: err}
			}
			defer f.Close()

			req.Files = append(req.Files, api.UploadFile{Name: filepath.Base(p), Content: f})
		}

		v, err := client.UploadVouchers(ctx, req)
		if err != nil {
			return uploadResultMsg{err: err}
		}

		return uploadResultMsg{title: v.Title}
	}
}
