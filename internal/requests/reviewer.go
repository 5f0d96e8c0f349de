package requests

import (
	"context"

	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

// VoucherAPI is the part of the API client the reviewer needs.
type VoucherAPI interface {
	ApproveVoucher(ctx context.Context, id string) (*voucher.Voucher, error)
	DeclineVoucher(ctx context.Context, id, reason string) (*voucher.Voucher, error)
}

type apiReviewer struct {
	client VoucherAPI
}

// NewAPIReviewer reviews vouchers through the voucher API. The backend marks
// approved vouchers paid and books them into the journal.
func NewAPIReviewer(client VoucherAPI) Reviewer {
	return apiReviewer{client: client}
}

func (r apiReviewer) Approve(ctx context.Context, id string) error {
	_, err := r.client.ApproveVoucher(ctx, id)
	return err
}

func (r apiReviewer) Decline(ctx context.Context, id, reason string) error {
	_, err := r.client.DeclineVoucher(ctx, id, reason)
	return err
}
