package journal_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/voucherdesk/internal/http/journal"
	"github.com/MrJamesThe3rd/voucherdesk/internal/importer"
	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
)

func sampleEntries() []*ledger.JournalEntry {
	return []*ledger.JournalEntry{
		{
			ID:          "e1",
			Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Description: "Office chair",
			Type:        "voucher",
			Lines: []ledger.Line{
				{Account: "Furniture", Debit: decimal.RequireFromString("150")},
				{Account: "Bank", Credit: decimal.RequireFromString("150")},
			},
		},
		{
			ID:          "e2",
			Date:        time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			Description: "Coffee",
			Type:        "manual",
			Lines: []ledger.Line{
				{Account: "Meals", Debit: decimal.RequireFromString("4.5")},
				{Account: "Bank", Credit: decimal.RequireFromString("4.5")},
			},
		},
	}
}

func newRouter(t *testing.T) (*ledger.MockRepository, chi.Router) {
	t.Helper()

	repo := ledger.NewMockRepository(gomock.NewController(t))

	r := chi.NewRouter()
	r.Route("/journal", journal.NewHandler(ledger.NewService(repo), importer.NewService()).Routes)

	return repo, r
}

func TestHandler_List(t *testing.T) {
	repo, r := newRouter(t)

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().
		ListEntries(gomock.Any(), ledger.ListFilter{Type: "voucher", StartDate: &start}).
		Return(sampleEntries()[:1], nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/journal?type=voucher&start_date=2024-05-01&end_date=bad", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Journal []*ledger.JournalEntry `json:"journal"`
	}

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Journal, 1)
	assert.Equal(t, "Office chair", body.Journal[0].Description)
	assert.True(t, body.Journal[0].Balanced())
}

func TestHandler_ExportCSV(t *testing.T) {
	repo, r := newRouter(t)

	repo.EXPECT().ListEntries(gomock.Any(), ledger.ListFilter{}).Return(sampleEntries(), nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/journal/export.csv?q=coffee", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="ledger.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t,
		"Date,Description,Type,Account,Debit,Credit\n"+
			`"2024-05-02","Coffee","manual","Meals",4.5,0`+"\n"+
			`"2024-05-02","Coffee","manual","Bank",0,4.5`+"\n",
		rec.Body.String())
}

func TestHandler_ExportXLSX(t *testing.T) {
	repo, r := newRouter(t)

	repo.EXPECT().ListEntries(gomock.Any(), ledger.ListFilter{}).Return(sampleEntries(), nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/journal/export.xlsx", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="ledger.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.NotZero(t, rec.Body.Len())
}

func multipartFile(t *testing.T, content []byte, format string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	if format != "" {
		require.NoError(t, mw.WriteField("format", format))
	}

	part, err := mw.CreateFormFile("file", "ledger.csv")
	require.NoError(t, err)

	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestHandler_Import(t *testing.T) {
	var exported bytes.Buffer
	require.NoError(t, ledger.WriteCSV(&exported, ledger.Flatten(sampleEntries())))

	unbalanced := "Date,Description,Type,Account,Debit,Credit\n" +
		`"2024-05-02","Coffee","manual","Meals",4.5,0` + "\n"

	type testCase struct {
		name       string
		content    []byte
		format     string
		setupMock  func(m *ledger.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:    "Success",
			content: exported.Bytes(),
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().CreateEntries(gomock.Any(), gomock.Len(2)).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"count":2`,
		},
		{
			name:       "Unbalanced",
			content:    []byte(unbalanced),
			wantStatus: http.StatusBadRequest,
			wantBody:   "does not balance",
		},
		{
			name:    "BankStatement",
			content: []byte("Data mov.;Descrição;Montante\n30-01-2026;PAGAMENTO TSU;-608,13\n"),
			format:  "bank-csv",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().CreateEntries(gomock.Any(), gomock.Len(1)).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"count":1`,
		},
		{
			name:       "UnknownFormat",
			content:    exported.Bytes(),
			format:     "ofx",
			wantStatus: http.StatusBadRequest,
			wantBody:   "unknown import format",
		},
		{
			name:       "NotALedger",
			content:    []byte("foo,bar\n1,2\n"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"detail"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, r := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			body, contentType := multipartFile(t, tt.content, tt.format)

			req := httptest.NewRequest(http.MethodPost, "/journal/import", body)
			req.Header.Set("Content-Type", contentType)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
