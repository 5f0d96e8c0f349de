package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

func TestService_PostVoucher(t *testing.T) {
	amount := dec("42.10")

	type args struct {
		v *voucher.Voucher
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *ledger.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "BooksCategoryAgainstBank",
			args: args{v: &voucher.Voucher{
				ID:       "v1",
				Title:    "Taxi",
				Category: "Travel",
				Amount:   &amount,
				Date:     time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			}},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateEntries(gomock.Any(), gomock.Len(1)).
					DoAndReturn(func(_ context.Context, entries []*ledger.JournalEntry) error {
						e := entries[0]
						assert.Equal(t, "v1", e.VoucherID)
						assert.Equal(t, "Taxi", e.Description)
						assert.Equal(t, ledger.TypeVoucher, e.Type)
						require.Len(t, e.Lines, 2)
						assert.Equal(t, "Travel", e.Lines[0].Account)
						assert.True(t, e.Lines[0].Debit.Equal(amount))
						assert.Equal(t, ledger.AccountBank, e.Lines[1].Account)
						assert.True(t, e.Lines[1].Credit.Equal(amount))
						assert.True(t, e.Balanced())
						return nil
					})
			},
		},
		{
			name: "DefaultsToExpenses",
			args: args{v: &voucher.Voucher{ID: "v2", Amount: &amount}},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateEntries(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entries []*ledger.JournalEntry) error {
						assert.Equal(t, ledger.AccountExpenses, entries[0].Lines[0].Account)
						assert.False(t, entries[0].Date.IsZero())
						return nil
					})
			},
		},
		{
			name: "NoAmountNothingBooked",
			args: args{v: &voucher.Voucher{ID: "v3"}},
		},
		{
			name: "RepoError",
			args: args{v: &voucher.Voucher{ID: "v4", Amount: &amount}},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().CreateEntries(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			err := ledger.NewService(repo).PostVoucher(context.Background(), tt.args.v)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_Import(t *testing.T) {
	balanced := &ledger.JournalEntry{Description: "ok", Lines: []ledger.Line{
		{Account: "Meals", Debit: dec("5")},
		{Account: "Bank", Credit: dec("5")},
	}}
	unbalanced := &ledger.JournalEntry{Description: "bad", Lines: []ledger.Line{
		{Account: "Meals", Debit: dec("5")},
	}}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := ledger.NewMockRepository(ctrl)
		repo.EXPECT().CreateEntries(gomock.Any(), []*ledger.JournalEntry{balanced}).Return(nil)

		n, err := ledger.NewService(repo).Import(context.Background(), []*ledger.JournalEntry{balanced})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("Unbalanced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := ledger.NewMockRepository(ctrl)

		_, err := ledger.NewService(repo).Import(context.Background(), []*ledger.JournalEntry{balanced, unbalanced})
		assert.ErrorIs(t, err, ledger.ErrUnbalanced)
	})

	t.Run("Empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := ledger.NewMockRepository(ctrl)

		n, err := ledger.NewService(repo).Import(context.Background(), nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
