package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListEntries returns the matching entries with their lines, oldest first.
func (s *Store) ListEntries(ctx context.Context, filter ledger.ListFilter) ([]*ledger.JournalEntry, error) {
	query := `
		SELECT e.id, e.date, e.description, e.type, COALESCE(e.voucher_id::text, ''),
		       l.account, l.debit, l.credit
		FROM journal_entries e
		JOIN journal_lines l ON l.entry_id = e.id
		WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.Type != "" && filter.Type != ledger.AllTypes {
		query += fmt.Sprintf(" AND e.type = $%d", argIdx)

		args = append(args, filter.Type)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND e.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND e.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY e.date ASC, e.created_at ASC, e.id, l.position ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.JournalEntry

	var current *ledger.JournalEntry

	for rows.Next() {
		var e ledger.JournalEntry

		var l ledger.Line

		if err := rows.Scan(&e.ID, &e.Date, &e.Description, &e.Type, &e.VoucherID, &l.Account, &l.Debit, &l.Credit); err != nil {
			return nil, fmt.Errorf("scanning journal line: %w", err)
		}

		if current == nil || current.ID != e.ID {
			current = &e
			entries = append(entries, current)
		}

		current.Lines = append(current.Lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal lines: %w", err)
	}

	return entries, nil
}

// CreateEntries inserts all entries and their lines in a single database transaction.
func (s *Store) CreateEntries(ctx context.Context, entries []*ledger.JournalEntry) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	entryQuery := `
		INSERT INTO journal_entries (date, description, type, voucher_id)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid)
		RETURNING id
	`

	lineQuery := `
		INSERT INTO journal_lines (entry_id, position, account, debit, credit)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, e := range entries {
		if err := dbTx.QueryRowContext(ctx, entryQuery, e.Date, e.Description, e.Type, e.VoucherID).Scan(&e.ID); err != nil {
			return fmt.Errorf("creating journal entry: %w", err)
		}

		for i, l := range e.Lines {
			if _, err := dbTx.ExecContext(ctx, lineQuery, e.ID, i, l.Account, l.Debit, l.Credit); err != nil {
				return fmt.Errorf("creating journal line: %w", err)
			}
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
