package requests_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/voucherdesk/internal/requests"
	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

func vouchers() []*voucher.Voucher {
	return []*voucher.Voucher{
		{ID: "A", Status: voucher.StatusAwaitingApproval},
		{ID: "B", Status: voucher.StatusRequested},
		{ID: "C", Status: voucher.StatusAwaitingApproval},
		{ID: "P", Status: voucher.StatusPaid},
	}
}

func newWorkflow(t *testing.T, opts ...requests.Option) (*requests.Workflow, *requests.MockReviewer) {
	t.Helper()

	reviewer := requests.NewMockReviewer(gomock.NewController(t))
	w := requests.New(reviewer, opts...)
	w.SetVouchers(vouchers())

	return w, reviewer
}

func TestWorkflow_ApproveFlow(t *testing.T) {
	ctx := context.Background()
	w, reviewer := newWorkflow(t)

	w.Toggle("A")
	w.Toggle("B")
	w.Toggle("C")

	staged := w.Request("A", "B")
	assert.Equal(t, []string{"A", "B"}, staged)

	ids, action := w.Pending()
	assert.Equal(t, []string{"A", "B"}, ids)
	assert.Equal(t, requests.ActionApprove, action)

	reviewer.EXPECT().Approve(gomock.Any(), "A").Return(nil).Times(1)
	reviewer.EXPECT().Approve(gomock.Any(), "B").Return(nil).Times(1)

	require.NoError(t, w.Confirm(ctx))

	ids, action = w.Pending()
	assert.Empty(t, ids)
	assert.Equal(t, requests.ActionNone, action)
	assert.Equal(t, []string{"C"}, w.SelectedIDs())
	assert.False(t, w.IsRequested("A"))
	assert.False(t, w.IsRequested("B"))
	assert.True(t, w.IsRequested("C"))
}

func TestWorkflow_RequestMakesNoCalls(t *testing.T) {
	w, _ := newWorkflow(t)

	w.Request("A")
	w.Cancel()

	ids, _ := w.Pending()
	assert.Empty(t, ids)
	assert.NoError(t, w.Confirm(context.Background()))
}

func TestWorkflow_PaidIsNeverStaged(t *testing.T) {
	w, _ := newWorkflow(t)

	assert.Empty(t, w.Request("P", "unknown"))
	assert.False(t, w.IsRequested("P"))
	assert.False(t, requests.CanReview(&voucher.Voucher{Status: voucher.StatusPaid}))
	assert.True(t, requests.CanReview(&voucher.Voucher{Status: voucher.StatusAwaitingApproval}))
}

func TestWorkflow_ConfirmClearsStateOnError(t *testing.T) {
	w, reviewer := newWorkflow(t)

	w.ToggleAll([]string{"A", "B"})
	w.Request("A", "B")

	reviewer.EXPECT().Approve(gomock.Any(), "A").Return(errors.New("insufficient funds"))
	reviewer.EXPECT().Approve(gomock.Any(), "B").Return(nil)

	err := w.Confirm(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approve A: insufficient funds")

	ids, _ := w.Pending()
	assert.Empty(t, ids)
	assert.Empty(t, w.SelectedIDs())
}

func TestWorkflow_DeclineIsImmediate(t *testing.T) {
	w, reviewer := newWorkflow(t)

	w.Toggle("A")
	w.Toggle("C")

	reviewer.EXPECT().Decline(gomock.Any(), "A", "blurry scan").Return(nil)

	staged, err := w.Decline(context.Background(), "blurry scan", "A", "P")
	require.NoError(t, err)
	assert.False(t, staged)
	assert.Equal(t, []string{"C"}, w.SelectedIDs())
	assert.False(t, w.IsRequested("A"))
}

func TestWorkflow_DeclineWithConfirmation(t *testing.T) {
	ctx := context.Background()
	w, reviewer := newWorkflow(t, requests.WithDeclineConfirmation())

	staged, err := w.Decline(ctx, "duplicate", "B")
	require.NoError(t, err)
	assert.True(t, staged)

	ids, action := w.Pending()
	assert.Equal(t, []string{"B"}, ids)
	assert.Equal(t, requests.ActionDecline, action)

	reviewer.EXPECT().Decline(gomock.Any(), "B", "duplicate").Return(nil)
	require.NoError(t, w.Confirm(ctx))
	assert.False(t, w.IsRequested("B"))
}

func TestWorkflow_SelectAll(t *testing.T) {
	w, _ := newWorkflow(t)

	visible := []string{"A", "B"}
	assert.False(t, w.AllSelected(visible))

	w.ToggleAll(visible)
	assert.True(t, w.AllSelected(visible))
	assert.True(t, w.Selected("A"))

	w.ToggleAll(visible)
	assert.False(t, w.Selected("A"))
}

type fakeAPI struct {
	approved []string
	declined map[string]string
}

func (f *fakeAPI) ApproveVoucher(_ context.Context, id string) (*voucher.Voucher, error) {
	f.approved = append(f.approved, id)
	return &voucher.Voucher{ID: id, Status: voucher.StatusPaid}, nil
}

func (f *fakeAPI) DeclineVoucher(_ context.Context, id, reason string) (*voucher.Voucher, error) {
	if f.declined == nil {
		f.declined = make(map[string]string)
	}

	f.declined[id] = reason

	return &voucher.Voucher{ID: id, Status: voucher.StatusRejected}, nil
}

func TestAPIReviewer(t *testing.T) {
	ctx := context.Background()
	client := &fakeAPI{}
	r := requests.NewAPIReviewer(client)

	require.NoError(t, r.Approve(ctx, "A"))
	require.NoError(t, r.Decline(ctx, "B", "late"))

	assert.Equal(t, []string{"A"}, client.approved)
	assert.Equal(t, map[string]string{"B": "late"}, client.declined)
}
