package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

func (c *Client) ListUserVouchers(ctx context.Context, userID string) ([]*voucher.Voucher, error) {
	var resp struct {
		Vouchers []*voucher.Voucher `json:"vouchers"`
	}

	if err := c.getJSON(ctx, "vouchers", url.Values{"user_id": {userID}}, &resp); err != nil {
		return nil, err
	}

	return resp.Vouchers, nil
}

// UploadFile is one file of an upload. Content is read once.
type UploadFile struct {
	Name    string
	Content io.Reader
}

type UploadRequest struct {
	UserID          string
	Title           string
	Description     string
	Category        string
	TransactionType string
	Files           []UploadFile
}

// UploadVouchers sends the files as one multipart request and returns the
// created voucher.
func (c *Client) UploadVouchers(ctx context.Context, in UploadRequest) (*voucher.Voucher, error) {
	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"user_id", in.UserID},
		{"title", in.Title},
		{"description", in.Description},
		{"category", in.Category},
	}

	if in.TransactionType != "" {
		fields = append(fields, [2]string{"transaction_type", in.TransactionType})
	}

	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("writing field %s: %w", f[0], err)
		}
	}

	for _, f := range in.Files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("creating form file: %w", err)
		}

		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, fmt.Errorf("copying %s: %w", f.Name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	var v voucher.Voucher
	if err := c.do(ctx, http.MethodPost, "vouchers", nil, &buf, mw.FormDataContentType(), &v); err != nil {
		return nil, err
	}

	return &v, nil
}

func (c *Client) RunVoucherOCR(ctx context.Context, userID string, voucherIDs []string) (Ack, error) {
	var ack Ack

	err := c.postJSON(ctx, "vouchers/ocr", map[string]any{
		"user_id":     userID,
		"voucher_ids": voucherIDs,
	}, &ack)

	return ack, err
}

func (c *Client) SendVouchersForRequest(ctx context.Context, voucherIDs []string, approverID string) (Ack, error) {
	var ack Ack

	err := c.postJSON(ctx, "vouchers/requests", map[string]any{
		"voucher_ids": voucherIDs,
		"approver_id": approverID,
	}, &ack)

	return ack, err
}

func (c *Client) ApproveVoucher(ctx context.Context, id string) (*voucher.Voucher, error) {
	var v voucher.Voucher
	if err := c.postJSON(ctx, "vouchers/"+url.PathEscape(id)+"/approve", struct{}{}, &v); err != nil {
		return nil, err
	}

	return &v, nil
}

func (c *Client) DeclineVoucher(ctx context.Context, id, reason string) (*voucher.Voucher, error) {
	var v voucher.Voucher
	if err := c.postJSON(ctx, "vouchers/"+url.PathEscape(id)+"/decline", map[string]string{"reason": reason}, &v); err != nil {
		return nil, err
	}

	return &v, nil
}
