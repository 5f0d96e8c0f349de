package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanVoucher reads a voucher row from the scanner.
// Expected column order: id, title, description, category, amount, status, ocr_status, approver_id, created_at
func scanVoucher(s scanner) (*voucher.Voucher, error) {
	var v voucher.Voucher

	var status string

	var amount decimal.NullDecimal

	if err := s.Scan(
		&v.ID, &v.Title, &v.Description, &v.Category, &amount,
		&status, &v.OCRStatus, &v.ApproverID, &v.Date,
	); err != nil {
		return nil, err
	}

	v.Status = voucher.Status(status)

	if amount.Valid {
		v.Amount = &amount.Decimal
	}

	return &v, nil
}

const selectVoucherColumns = `
	v.id, v.title, v.description, v.category, v.amount,
	v.status, v.ocr_status, v.approver_id, v.created_at
`

func (s *Store) ListByUser(ctx context.Context, userID string) ([]*voucher.Voucher, error) {
	query := `SELECT ` + selectVoucherColumns + `
		FROM vouchers v
		WHERE v.user_id = $1
		ORDER BY v.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing vouchers: %w", err)
	}
	defer rows.Close()

	var out []*voucher.Voucher

	byID := make(map[string]*voucher.Voucher)

	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning voucher: %w", err)
		}

		out = append(out, v)
		byID[v.ID] = v
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vouchers: %w", err)
	}

	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(out))
	for _, v := range out {
		ids = append(ids, v.ID)
	}

	if err := s.loadFiles(ctx, ids, byID); err != nil {
		return nil, err
	}

	if err := s.loadRejections(ctx, ids, byID); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (*voucher.Voucher, error) {
	query := `SELECT ` + selectVoucherColumns + `
		FROM vouchers v
		WHERE v.id = $1`

	v, err := scanVoucher(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, voucher.ErrNotFound
		}

		return nil, fmt.Errorf("getting voucher: %w", err)
	}

	byID := map[string]*voucher.Voucher{v.ID: v}

	if err := s.loadFiles(ctx, []string{v.ID}, byID); err != nil {
		return nil, err
	}

	if err := s.loadRejections(ctx, []string{v.ID}, byID); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *Store) loadFiles(ctx context.Context, ids []string, byID map[string]*voucher.Voucher) error {
	query := `
		SELECT voucher_id, name, file_url
		FROM voucher_files
		WHERE voucher_id = ANY($1::uuid[])
		ORDER BY voucher_id, position
	`

	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("listing voucher files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var voucherID string

		var f voucher.File

		if err := rows.Scan(&voucherID, &f.Name, &f.URL); err != nil {
			return fmt.Errorf("scanning voucher file: %w", err)
		}

		if v, ok := byID[voucherID]; ok {
			v.Files = append(v.Files, f)
		}
	}

	return rows.Err()
}

func (s *Store) loadRejections(ctx context.Context, ids []string, byID map[string]*voucher.Voucher) error {
	query := `
		SELECT voucher_id, reason, rejected_by, rejected_at
		FROM voucher_rejections
		WHERE voucher_id = ANY($1::uuid[])
		ORDER BY voucher_id, rejected_at
	`

	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("listing rejections: %w", err)
	}
	defer rows.Close()

	history := make(map[string][]voucher.RejectionRecord)

	for rows.Next() {
		var voucherID string

		var rec voucher.RejectionRecord

		if err := rows.Scan(&voucherID, &rec.Reason, &rec.By, &rec.At); err != nil {
			return fmt.Errorf("scanning rejection: %w", err)
		}

		history[voucherID] = append(history[voucherID], rec)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rejections: %w", err)
	}

	for id, recs := range history {
		if v, ok := byID[id]; ok {
			v.Rejections = voucher.NewRejections(recs...)
		}
	}

	return nil
}

// Create inserts the voucher and its files in one database transaction.
func (s *Store) Create(ctx context.Context, v *voucher.Voucher, userID, transactionType string) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO vouchers (user_id, title, description, category, transaction_type, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id
	`

	var amount decimal.NullDecimal
	if v.Amount != nil {
		amount = decimal.NullDecimal{Decimal: *v.Amount, Valid: true}
	}

	createdAt := v.Date
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	if err := dbTx.QueryRowContext(ctx, query,
		userID,
		v.Title,
		v.Description,
		v.Category,
		transactionType,
		amount,
		v.Status,
		createdAt,
	).Scan(&v.ID); err != nil {
		return fmt.Errorf("creating voucher: %w", err)
	}

	fileQuery := `
		INSERT INTO voucher_files (voucher_id, position, name, file_url)
		VALUES ($1, $2, $3, $4)
	`

	for i, f := range v.Files {
		if _, err := dbTx.ExecContext(ctx, fileQuery, v.ID, i, f.Name, f.URL); err != nil {
			return fmt.Errorf("creating voucher file: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id string, status voucher.Status) error {
	query := `
		UPDATE vouchers
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return voucher.ErrNotFound
	}

	return nil
}

// MarkOCR sets the OCR status on the user's vouchers among ids and moves
// pending ones to processed. It returns the number of vouchers touched.
func (s *Store) MarkOCR(ctx context.Context, userID string, ids []string, ocrStatus string) (int, error) {
	query := `
		UPDATE vouchers
		SET ocr_status = $1,
		    status = CASE WHEN status = 'pending' THEN 'processed' ELSE status END,
		    updated_at = NOW()
		WHERE user_id = $2 AND id = ANY($3::uuid[])
	`

	res, err := s.db.ExecContext(ctx, query, ocrStatus, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("marking ocr: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting updated vouchers: %w", err)
	}

	return int(n), nil
}

// RequestApproval assigns the approver and moves every non-paid voucher among
// ids to awaiting_approval.
func (s *Store) RequestApproval(ctx context.Context, ids []string, approverID string) (int, error) {
	query := `
		UPDATE vouchers
		SET approver_id = $1, status = 'awaiting_approval', updated_at = NOW()
		WHERE id = ANY($2::uuid[]) AND status <> 'paid'
	`

	res, err := s.db.ExecContext(ctx, query, approverID, ids)
	if err != nil {
		return 0, fmt.Errorf("requesting approval: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting updated vouchers: %w", err)
	}

	return int(n), nil
}

func (s *Store) AddRejection(ctx context.Context, id string, rec voucher.RejectionRecord) error {
	query := `
		INSERT INTO voucher_rejections (voucher_id, reason, rejected_by, rejected_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := s.db.ExecContext(ctx, query, id, rec.Reason, rec.By, rec.At); err != nil {
		return fmt.Errorf("adding rejection: %w", err)
	}

	return nil
}
