package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

// Account and entry type names of the entries the service books.
const (
	AccountBank     = "Bank"
	AccountExpenses = "Expenses"
	AccountIncome   = "Income"
	TypeVoucher     = "voucher"
	TypeBank        = "bank"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	ListEntries(ctx context.Context, filter ListFilter) ([]*JournalEntry, error)
	CreateEntries(ctx context.Context, entries []*JournalEntry) error
}

type ListFilter struct {
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*JournalEntry, error) {
	return s.repo.ListEntries(ctx, filter)
}

// Rows lists the entries matching filter already flattened for export.
func (s *Service) Rows(ctx context.Context, filter ListFilter) ([]Row, error) {
	entries, err := s.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, err
	}

	return Flatten(entries), nil
}

// PostVoucher books an approved voucher: its category (or Expenses) is debited
// and the bank credited. Vouchers without an amount have nothing to book.
func (s *Service) PostVoucher(ctx context.Context, v *voucher.Voucher) error {
	if v.Amount == nil || v.Amount.IsZero() {
		return nil
	}

	account := v.Category
	if account == "" {
		account = AccountExpenses
	}

	date := v.Date
	if date.IsZero() {
		date = s.now()
	}

	entry := &JournalEntry{
		Date:        date,
		Description: v.Title,
		Type:        TypeVoucher,
		VoucherID:   v.ID,
		Lines: []Line{
			{Account: account, Debit: *v.Amount, Credit: decimal.Zero},
			{Account: AccountBank, Debit: decimal.Zero, Credit: *v.Amount},
		},
	}

	if err := s.repo.CreateEntries(ctx, []*JournalEntry{entry}); err != nil {
		return fmt.Errorf("posting voucher %s: %w", v.ID, err)
	}

	return nil
}

// Import stores entries parsed from an export file. Every entry must balance;
// nothing is stored when one does not.
func (s *Service) Import(ctx context.Context, entries []*JournalEntry) (int, error) {
	for i, e := range entries {
		if len(e.Lines) == 0 {
			return 0, fmt.Errorf("entry %d has no lines: %w", i+1, ErrUnbalanced)
		}

		if !e.Balanced() {
			return 0, fmt.Errorf("entry %d (%s): %w", i+1, e.Description, ErrUnbalanced)
		}
	}

	if len(entries) == 0 {
		return 0, nil
	}

	if err := s.repo.CreateEntries(ctx, entries); err != nil {
		return 0, fmt.Errorf("storing entries: %w", err)
	}

	return len(entries), nil
}
