// Package requests sequences approval and decline of vouchers awaiting a
// decision. Approval always goes through a confirmation step; declining does
// too when the workflow is built with WithDeclineConfirmation.
package requests

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MrJamesThe3rd/voucherdesk/internal/selection"
	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

//go:generate mockgen -source=workflow.go -destination=reviewer_mock.go -package=requests
type Reviewer interface {
	Approve(ctx context.Context, id string) error
	Decline(ctx context.Context, id, reason string) error
}

type Action int

const (
	ActionNone Action = iota
	ActionApprove
	ActionDecline
)

func (a Action) String() string {
	switch a {
	case ActionApprove:
		return "approve"
	case ActionDecline:
		return "decline"
	default:
		return "none"
	}
}

type Option func(*Workflow)

// WithDeclineConfirmation routes declines through the same confirmation as approvals.
func WithDeclineConfirmation() Option {
	return func(w *Workflow) {
		w.confirmDecline = true
	}
}

type Workflow struct {
	reviewer       Reviewer
	confirmDecline bool

	mu        sync.Mutex
	vouchers  map[string]*voucher.Voucher
	requested map[string]struct{}
	selection selection.Set
	pending   []string
	action    Action
	reason    string
}

func New(reviewer Reviewer, opts ...Option) *Workflow {
	w := &Workflow{
		reviewer:  reviewer,
		vouchers:  make(map[string]*voucher.Voucher),
		requested: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// SetVouchers replaces the known vouchers. Every voucher that can still be
// reviewed is part of the requested set.
func (w *Workflow) SetVouchers(vouchers []*voucher.Voucher) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.vouchers = make(map[string]*voucher.Voucher, len(vouchers))
	w.requested = make(map[string]struct{})

	for _, v := range vouchers {
		w.vouchers[v.ID] = v

		if CanReview(v) {
			w.requested[v.ID] = struct{}{}
		}
	}
}

// CanReview reports whether approve and decline apply to v.
func CanReview(v *voucher.Voucher) bool {
	return v != nil && !v.Status.Terminal()
}

func (w *Workflow) IsRequested(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, ok := w.requested[id]

	return ok
}

// Toggle flips id in the selection.
func (w *Workflow) Toggle(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.selection.Toggle(id)
}

func (w *Workflow) ToggleAll(visible []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.selection.ToggleAll(visible)
}

func (w *Workflow) AllSelected(visible []string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.selection.AllSelected(visible)
}

func (w *Workflow) Selected(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.selection.Has(id)
}

func (w *Workflow) SelectedIDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.selection.IDs()
}

// Request stages ids for approval. Nothing is sent until Confirm. Unknown and
// paid vouchers are skipped. It returns the staged ids.
func (w *Workflow) Request(ids ...string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stageLocked(ActionApprove, "", ids)

	return append([]string(nil), w.pending...)
}

func (w *Workflow) stageLocked(action Action, reason string, ids []string) {
	w.pending = nil
	w.action = ActionNone
	w.reason = ""

	for _, id := range ids {
		if CanReview(w.vouchers[id]) {
			w.pending = append(w.pending, id)
		}
	}

	if len(w.pending) > 0 {
		w.action = action
		w.reason = reason
	}
}

// Pending returns the staged ids and what confirming them will do.
func (w *Workflow) Pending() ([]string, Action) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]string(nil), w.pending...), w.action
}

// Cancel drops the staged ids without calling anything.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = nil
	w.action = ActionNone
	w.reason = ""
}

// Confirm runs the staged action once per id, then clears the staged set and
// removes the ids from the selection and the requested set. Local state is
// cleared whether or not the calls succeed; their errors are joined.
func (w *Workflow) Confirm(ctx context.Context) error {
	w.mu.Lock()
	ids, action, reason := w.pending, w.action, w.reason
	w.pending, w.action, w.reason = nil, ActionNone, ""
	w.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}

	return w.run(ctx, action, reason, ids)
}

// Decline declines ids straight away, or stages them when declines need
// confirmation. It reports whether the ids were only staged.
func (w *Workflow) Decline(ctx context.Context, reason string, ids ...string) (bool, error) {
	w.mu.Lock()

	if w.confirmDecline {
		w.stageLocked(ActionDecline, reason, ids)
		staged := len(w.pending) > 0
		w.mu.Unlock()

		return staged, nil
	}

	var targets []string

	for _, id := range ids {
		if CanReview(w.vouchers[id]) {
			targets = append(targets, id)
		}
	}
	w.mu.Unlock()

	if len(targets) == 0 {
		return false, nil
	}

	return false, w.run(ctx, ActionDecline, reason, targets)
}

func (w *Workflow) run(ctx context.Context, action Action, reason string, ids []string) error {
	var errs []error

	for _, id := range ids {
		var err error

		switch action {
		case ActionApprove:
			err = w.reviewer.Approve(ctx, id)
		case ActionDecline:
			err = w.reviewer.Decline(ctx, id, reason)
		}

		if err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", action, id, err))
		}
	}

	w.mu.Lock()
	w.selection.Remove(ids...)

	for _, id := range ids {
		delete(w.requested, id)
	}
	w.mu.Unlock()

	return errors.Join(errs...)
}
