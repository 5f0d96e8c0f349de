package journal

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/voucherdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/voucherdesk/internal/importer"
	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc       *ledger.Service
	importSvc *importer.Service
}

func NewHandler(svc *ledger.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/export.csv", h.export(ledger.CSVFileName, "text/csv; charset=utf-8", ledger.WriteCSV))
	r.Get("/export.xlsx", h.export(ledger.XLSXFileName, xlsxContentType, ledger.WriteXLSX))
	r.Post("/import", h.importFile)
}

func parseFilter(r *http.Request) ledger.ListFilter {
	q := r.URL.Query()

	filter := ledger.ListFilter{}

	if s := q.Get("type"); s != "" && s != ledger.AllTypes {
		filter.Type = s
	}

	if s := q.Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := q.Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	return filter
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context(), parseFilter(r))
	if err != nil {
		slog.Error("failed to list journal", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	if entries == nil {
		entries = []*ledger.JournalEntry{}
	}

	respond.JSON(w, http.StatusOK, map[string]any{"journal": entries})
}

// export streams the filtered rows. The q parameter narrows them like the
// ledger view's search box.
func (h *Handler) export(name, contentType string, write func(w io.Writer, rows []ledger.Row) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.svc.Rows(r.Context(), parseFilter(r))
		if err != nil {
			slog.Error("failed to load journal rows", "error", err)
			respond.Error(w, http.StatusInternalServerError, "internal error")

			return
		}

		rows = ledger.Filter(rows, ledger.AllTypes, r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)

		if err := write(w, rows); err != nil {
			slog.Error("failed to write export", "file", name, "error", err)
		}
	}
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	entries, err := h.importSvc.Import(importer.Format(r.FormValue("format")), file)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.svc.Import(r.Context(), entries)
	if err != nil {
		if errors.Is(err, ledger.ErrUnbalanced) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("failed to import journal", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{"status": "imported", "count": n})
}
