package voucher_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

func decode(t *testing.T, body string) voucher.Voucher {
	t.Helper()

	var v voucher.Voucher
	require.NoError(t, json.Unmarshal([]byte(body), &v))

	return v
}

func TestRejections_ZeroCountHidesHistory(t *testing.T) {
	v := decode(t, `{
		"id": "v1",
		"rejection_count": 0,
		"rejection_history": [
			{"rejection_reason": "stale", "rejected_at": "2024-01-02T10:00:00Z", "rejected_by": "mgr-1"}
		]
	}`)

	assert.Equal(t, 0, v.Rejections.Count())
	assert.Empty(t, v.Rejections.Items())

	_, ok := v.Rejections.Latest()
	assert.False(t, ok)
}

func TestRejections_FlatFieldsSynthesizeOneRecord(t *testing.T) {
	v := decode(t, `{"id": "v1", "rejection_reason": "blurry scan", "rejected_by": "mgr-1"}`)

	items := v.Rejections.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "blurry scan", items[0].Reason)
	assert.Equal(t, "mgr-1", items[0].By)
	assert.Equal(t, 1, v.Rejections.Count())
}

func TestRejections_FlatAliases(t *testing.T) {
	v := decode(t, `{
		"id": "v1",
		"rejection_reason": "missing VAT",
		"updated_at": "2024-05-01T09:00:00Z",
		"approver_id": 42
	}`)

	items := v.Rejections.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "42", items[0].By)
	assert.True(t, items[0].At.Equal(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)))
}

func TestRejections_UpdatedAtAloneIsNotARejection(t *testing.T) {
	v := decode(t, `{"id": "v1", "updated_at": "2024-05-01T09:00:00Z", "approver_id": "mgr-2"}`)

	assert.Equal(t, 0, v.Rejections.Count())
	assert.Empty(t, v.Rejections.Items())
}

func TestRejections_HistoryWinsOverFlat(t *testing.T) {
	v := decode(t, `{
		"id": "v1",
		"rejection_reason": "flat",
		"rejection_history": [{"rejection_reason": "a"}, {"rejection_reason": "b"}]
	}`)

	assert.Equal(t, 2, v.Rejections.Count())
	assert.Equal(t, "a", v.Rejections.Items()[0].Reason)
}

func TestRejections_NonNumericCountFallsBackToLength(t *testing.T) {
	v := decode(t, `{
		"id": "v1",
		"rejection_count": "3",
		"rejection_history": [{"rejection_reason": "a"}]
	}`)

	assert.Equal(t, 1, v.Rejections.Count())
}

func TestRejections_ExplicitCountWins(t *testing.T) {
	v := decode(t, `{
		"id": "v1",
		"rejection_count": 5,
		"rejection_history": [{"rejection_reason": "a"}]
	}`)

	assert.Equal(t, 5, v.Rejections.Count())
	assert.Len(t, v.Rejections.Items(), 1)
}

func TestRejections_Latest(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name       string
		records    []voucher.RejectionRecord
		wantReason string
	}

	tests := []testCase{
		{
			name: "LatestDateWins",
			records: []voucher.RejectionRecord{
				{Reason: "second", At: feb},
				{Reason: "first", At: jan},
			},
			wantReason: "second",
		},
		{
			name: "TieGoesToLastInOrder",
			records: []voucher.RejectionRecord{
				{Reason: "a", At: feb},
				{Reason: "b", At: feb},
			},
			wantReason: "b",
		},
		{
			name: "NoDatesFallsBackToLast",
			records: []voucher.RejectionRecord{
				{Reason: "a"},
				{Reason: "b"},
			},
			wantReason: "b",
		},
		{
			name: "UndatedEntriesIgnoredWhenSomeAreDated",
			records: []voucher.RejectionRecord{
				{Reason: "dated", At: jan},
				{Reason: "undated"},
			},
			wantReason: "dated",
		},
		{
			name: "MixedDatesLatestDatedWins",
			records: []voucher.RejectionRecord{
				{Reason: "undated-first"},
				{Reason: "feb", At: feb},
				{Reason: "jan", At: jan},
				{Reason: "undated-last"},
			},
			wantReason: "feb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := voucher.NewRejections(tt.records...)

			got, ok := r.Latest()
			require.True(t, ok)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

func TestRejections_AppendKeepsExplicitCount(t *testing.T) {
	v := decode(t, `{"id": "v1", "rejection_count": 1, "rejection_history": [{"rejection_reason": "a"}]}`)

	v.Rejections.Append(voucher.RejectionRecord{Reason: "b"})

	assert.Equal(t, 2, v.Rejections.Count())
	assert.Len(t, v.Rejections.Items(), 2)
}
