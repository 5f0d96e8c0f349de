// Package lifecycle owns a view's voucher collection together with the
// optimistic overlays layered on it while OCR and approval requests are in
// flight. It is independent of the UI: actions return Jobs for the caller to
// run asynchronously and Finish settles their results.
//
// A refetch that resolves after a newer optimistic update overwrites it
// (last write wins). Nothing orders independent requests.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/voucherdesk/internal/api"
	"github.com/MrJamesThe3rd/voucherdesk/internal/jobs"
	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

//go:generate mockgen -source=controller.go -destination=api_mock.go -package=lifecycle
type VoucherAPI interface {
	ListUserVouchers(ctx context.Context, userID string) ([]*voucher.Voucher, error)
	RunVoucherOCR(ctx context.Context, userID string, voucherIDs []string) (api.Ack, error)
	SendVouchersForRequest(ctx context.Context, voucherIDs []string, approverID string) (api.Ack, error)
}

type Identity interface {
	UserID(ctx context.Context) string
}

// Kind tells Finish which action a result belongs to.
type Kind int

const (
	KindFetch Kind = iota
	KindOCR
	KindBulkOCR
	KindSend
)

// Result is what a Job reports back.
type Result struct {
	Kind     Kind
	Gen      uint64
	IDs      []string
	Vouchers []*voucher.Voucher
	Err      error
}

// Job performs the network part of an action.
type Job func(ctx context.Context) Result

// Outcome tells the caller what to do after Finish.
type Outcome struct {
	// Stale results belong to a closed view and were dropped.
	Stale bool
	// Refetch asks for a reconciling fetch after Delay.
	Refetch bool
	Delay   time.Duration
	// Message is a transient notification; Failed marks it as an error.
	Message string
	Failed  bool
}

type Controller struct {
	api      VoucherAPI
	identity Identity
	ocr      *jobs.Tracker
	send     *jobs.Tracker

	mu            sync.Mutex
	gen           uint64
	vouchers      []*voucher.Voucher
	localStatuses map[string]voucher.Status
	notice        error
	loaded        bool
}

func New(client VoucherAPI, identity Identity, delay time.Duration) *Controller {
	return &Controller{
		api:           client,
		identity:      identity,
		ocr:           jobs.NewTracker(delay),
		send:          jobs.NewTracker(delay),
		localStatuses: make(map[string]voucher.Status),
	}
}

// UserID is the current user, "" when there is none. Without a user every
// action is a no-op.
func (c *Controller) UserID(ctx context.Context) string {
	return c.identity.UserID(ctx)
}

func (c *Controller) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.gen
}

// Fetch returns a job listing the user's vouchers, or nil without a user.
func (c *Controller) Fetch(ctx context.Context) Job {
	userID := c.UserID(ctx)
	if userID == "" {
		return nil
	}

	gen := c.generation()

	return func(ctx context.Context) Result {
		vouchers, err := c.api.ListUserVouchers(ctx, userID)
		return Result{Kind: KindFetch, Gen: gen, Vouchers: vouchers, Err: err}
	}
}

// Replace swaps in a freshly fetched collection and clears the overlays.
// In-flight submissions keep their flags.
func (c *Controller) Replace(vouchers []*voucher.Voucher) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.replaceLocked(vouchers)
}

func (c *Controller) replaceLocked(vouchers []*voucher.Voucher) {
	c.vouchers = vouchers
	c.localStatuses = make(map[string]voucher.Status)
	c.notice = nil
	c.loaded = true
	c.ocr.ClearSettled()
}

// SubmitOCR marks id as submitting and returns the job, or nil when there is
// no user or id already has a submission in flight.
func (c *Controller) SubmitOCR(ctx context.Context, id string) Job {
	userID := c.UserID(ctx)
	if userID == "" || !c.ocr.Begin(id) {
		return nil
	}

	gen := c.generation()

	return func(ctx context.Context) Result {
		_, err := c.api.RunVoucherOCR(ctx, userID, []string{id})
		return Result{Kind: KindOCR, Gen: gen, IDs: []string{id}, Err: err}
	}
}

// SubmitBulkOCR raises the bulk flag only; row flags are left alone.
func (c *Controller) SubmitBulkOCR(ctx context.Context, ids []string) Job {
	userID := c.UserID(ctx)
	if userID == "" || len(ids) == 0 || !c.ocr.BeginBulk() {
		return nil
	}

	gen := c.generation()
	ids = append([]string(nil), ids...)

	return func(ctx context.Context) Result {
		_, err := c.api.RunVoucherOCR(ctx, userID, ids)
		return Result{Kind: KindBulkOCR, Gen: gen, IDs: ids, Err: err}
	}
}

// SendForApproval shows the vouchers as awaiting approval straight away and
// returns the job submitting them to approverID.
func (c *Controller) SendForApproval(ctx context.Context, ids []string, approverID string) Job {
	if c.UserID(ctx) == "" || len(ids) == 0 || approverID == "" || !c.send.BeginBulk() {
		return nil
	}

	ids = append([]string(nil), ids...)

	c.mu.Lock()
	gen := c.gen

	for _, id := range ids {
		c.localStatuses[id] = voucher.StatusAwaitingApproval
	}
	c.mu.Unlock()

	return func(ctx context.Context) Result {
		_, err := c.api.SendVouchersForRequest(ctx, ids, approverID)
		return Result{Kind: KindSend, Gen: gen, IDs: ids, Err: err}
	}
}

// Finish settles a job result.
func (c *Controller) Finish(res Result) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Gen != c.gen {
		return Outcome{Stale: true}
	}

	switch res.Kind {
	case KindFetch:
		if res.Err != nil {
			c.notice = res.Err
			return Outcome{}
		}

		c.replaceLocked(res.Vouchers)

		return Outcome{}

	case KindOCR:
		id := res.IDs[0]

		if res.Err != nil {
			c.ocr.Fail(id)
			return Outcome{Message: api.UserMessage(res.Err, "Failed to start OCR"), Failed: true}
		}

		c.ocr.Succeed(id)

		return Outcome{Refetch: true, Delay: c.ocr.Delay(), Message: "OCR started"}

	case KindBulkOCR:
		c.ocr.EndBulk()

		if res.Err != nil {
			return Outcome{Message: api.UserMessage(res.Err, "Failed to start OCR"), Failed: true}
		}

		return Outcome{
			Refetch: true,
			Delay:   c.ocr.Delay(),
			Message: fmt.Sprintf("OCR started for %d vouchers", len(res.IDs)),
		}

	case KindSend:
		c.send.EndBulk()

		if res.Err != nil {
			for _, id := range res.IDs {
				delete(c.localStatuses, id)
			}

			return Outcome{Message: api.UserMessage(res.Err, "Failed to send vouchers for approval"), Failed: true}
		}

		return Outcome{
			Refetch: true,
			Delay:   c.send.Delay(),
			Message: fmt.Sprintf("Sent %d vouchers for approval", len(res.IDs)),
		}
	}

	return Outcome{}
}

// Close marks the view as left. Results of jobs started before Close are
// dropped and every flag is reset.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.localStatuses = make(map[string]voucher.Status)
	c.ocr.Reset()
	c.send.Reset()
}

// Rows returns the collection with local status overlays applied. The
// returned vouchers are copies.
func (c *Controller) Rows() []*voucher.Voucher {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := make([]*voucher.Voucher, 0, len(c.vouchers))

	for _, v := range c.vouchers {
		cp := *v
		if s, ok := c.localStatuses[v.ID]; ok {
			cp.Status = s
		}

		rows = append(rows, &cp)
	}

	return rows
}

// Loaded reports whether a fetch has succeeded since the controller was created.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loaded
}

// Notice is the last fetch error, cleared by the next successful fetch.
func (c *Controller) Notice() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.notice
}

func (c *Controller) OCRState(id string) jobs.State {
	return c.ocr.State(id)
}

func (c *Controller) BulkOCRSubmitting() bool {
	return c.ocr.BulkSubmitting()
}

func (c *Controller) Sending() bool {
	return c.send.BulkSubmitting()
}

func (c *Controller) Delay() time.Duration {
	return c.ocr.Delay()
}
