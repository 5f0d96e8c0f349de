// Package dashboard computes the read-only aggregates of the dashboard and
// notifications pages.
package dashboard

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

type Summary struct {
	Total            int
	ByStatus         map[voucher.Status]int
	Amount           decimal.Decimal
	PaidAmount       decimal.Decimal
	AwaitingApproval int
	OCRPending       int
	Rejected         int
}

// Summarize aggregates vouchers. Vouchers without an amount count towards the
// totals by number only.
func Summarize(vouchers []*voucher.Voucher) Summary {
	s := Summary{ByStatus: make(map[voucher.Status]int)}

	for _, v := range vouchers {
		s.Total++
		s.ByStatus[v.Status]++

		if v.Amount != nil {
			s.Amount = s.Amount.Add(*v.Amount)

			if v.Status == voucher.StatusPaid {
				s.PaidAmount = s.PaidAmount.Add(*v.Amount)
			}
		}

		switch v.Status {
		case voucher.StatusAwaitingApproval, voucher.StatusRequested:
			s.AwaitingApproval++
		case voucher.StatusRejected, voucher.StatusDeclined:
			s.Rejected++
		}

		if !v.HasOCR() && v.Status == voucher.StatusPending {
			s.OCRPending++
		}
	}

	return s
}

// Notification is the latest rejection of a voucher.
type Notification struct {
	VoucherID string
	Title     string
	Reason    string
	By        string
	At        time.Time
	Count     int
}

// Notifications lists one entry per voucher with rejections, newest first.
// Entries without a date sort last.
func Notifications(vouchers []*voucher.Voucher) []Notification {
	var out []Notification

	for _, v := range vouchers {
		latest, ok := v.Rejections.Latest()
		if !ok {
			continue
		}

		out = append(out, Notification{
			VoucherID: v.ID,
			Title:     v.Title,
			Reason:    latest.Reason,
			By:        latest.By,
			At:        latest.At,
			Count:     v.Rejections.Count(),
		})
	}

	slices.SortStableFunc(out, func(a, b Notification) int {
		return b.At.Compare(a.At)
	})

	return out
}

// Recent returns up to n vouchers, most recent first.
func Recent(vouchers []*voucher.Voucher, n int) []*voucher.Voucher {
	out := slices.Clone(vouchers)

	slices.SortStableFunc(out, func(a, b *voucher.Voucher) int {
		return b.Date.Compare(a.Date)
	})

	if n >= 0 && len(out) > n {
		out = out[:n]
	}

	return out
}
