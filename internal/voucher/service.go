package voucher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=voucher
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*Voucher, error)
	Get(ctx context.Context, id string) (*Voucher, error)
	Create(ctx context.Context, v *Voucher, userID, transactionType string) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	MarkOCR(ctx context.Context, userID string, ids []string, ocrStatus string) (int, error)
	RequestApproval(ctx context.Context, ids []string, approverID string) (int, error)
	AddRejection(ctx context.Context, id string, rec RejectionRecord) error
}

// JournalPoster books an approved voucher into the ledger.
type JournalPoster interface {
	PostVoucher(ctx context.Context, v *Voucher) error
}

type Service struct {
	repo    Repository
	journal JournalPoster
	now     func() time.Time
}

func NewService(repo Repository, journal JournalPoster) *Service {
	return &Service{repo: repo, journal: journal, now: time.Now}
}

type UploadParams struct {
	UserID          string
	Title           string
	Description     string
	Category        string
	TransactionType string
	Amount          *decimal.Decimal
	Files           []File
}

func (s *Service) List(ctx context.Context, userID string) ([]*Voucher, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalid)
	}

	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id string) (*Voucher, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Upload(ctx context.Context, params UploadParams) (*Voucher, error) {
	if params.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalid)
	}

	if len(params.Files) == 0 {
		return nil, fmt.Errorf("%w: at least one file is required", ErrInvalid)
	}

	title := strings.TrimSpace(params.Title)
	if title == "" {
		title = params.Files[0].Name
	}

	v := &Voucher{
		Status:      StatusPending,
		Amount:      params.Amount,
		Title:       title,
		Description: params.Description,
		Category:    params.Category,
		Date:        s.now(),
		Files:       params.Files,
	}

	if err := s.repo.Create(ctx, v, params.UserID, params.TransactionType); err != nil {
		return nil, fmt.Errorf("create voucher: %w", err)
	}

	return v, nil
}

// RunOCR queues OCR for the user's vouchers. The reference backend has no OCR
// engine, so the vouchers are marked processed straight away.
func (s *Service) RunOCR(ctx context.Context, userID string, ids []string) (int, error) {
	if userID == "" || len(ids) == 0 {
		return 0, fmt.Errorf("%w: user_id and voucher_ids are required", ErrInvalid)
	}

	n, err := s.repo.MarkOCR(ctx, userID, ids, "completed")
	if err != nil {
		return 0, fmt.Errorf("mark ocr: %w", err)
	}

	return n, nil
}

func (s *Service) SendForRequest(ctx context.Context, ids []string, approverID string) (int, error) {
	if approverID == "" || len(ids) == 0 {
		return 0, fmt.Errorf("%w: voucher_ids and approver_id are required", ErrInvalid)
	}

	n, err := s.repo.RequestApproval(ctx, ids, approverID)
	if err != nil {
		return 0, fmt.Errorf("request approval: %w", err)
	}

	return n, nil
}

// Approve marks the voucher paid and books it into the journal.
func (s *Service) Approve(ctx context.Context, id string) (*Voucher, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if v.Status.Terminal() {
		return nil, ErrAlreadyPaid
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusPaid); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	v.Status = StatusPaid

	if err := s.journal.PostVoucher(ctx, v); err != nil {
		return nil, fmt.Errorf("post journal entry: %w", err)
	}

	return v, nil
}

func (s *Service) Decline(ctx context.Context, id, reason, by string) (*Voucher, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if v.Status.Terminal() {
		return nil, ErrAlreadyPaid
	}

	rec := RejectionRecord{Reason: reason, At: s.now(), By: by}
	if err := s.repo.AddRejection(ctx, id, rec); err != nil {
		return nil, fmt.Errorf("add rejection: %w", err)
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusRejected); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	v.Status = StatusRejected
	v.Rejections.Append(rec)

	return v, nil
}
