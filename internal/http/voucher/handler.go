package voucher

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/voucherdesk/internal/http/middleware"
	"github.com/MrJamesThe3rd/voucherdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/voucherdesk/internal/storage"
	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

const maxUploadSize = 32 << 20

type Handler struct {
	svc     *voucher.Service
	files   *storage.Store
	fileURL string
}

// NewHandler serves the voucher API. Stored files are linked as
// fileURL + "/" + key.
func NewHandler(svc *voucher.Service, files *storage.Store, fileURL string) *Handler {
	return &Handler{svc: svc, files: files, fileURL: strings.TrimSuffix(fileURL, "/")}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.upload)
	r.Post("/ocr", h.runOCR)
	r.Post("/requests", h.sendForRequest)
	r.Get("/{id}", h.get)
	r.Post("/{id}/approve", h.approve)
	r.Post("/{id}/decline", h.decline)
}

type ackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count"`
}

// userID prefers the authenticated user. A different explicit user is refused.
func userID(w http.ResponseWriter, r *http.Request, claimed string) (string, bool) {
	authed := middleware.UserID(r.Context())
	if authed == "" {
		return claimed, true
	}

	if claimed != "" && claimed != authed {
		respond.Error(w, http.StatusForbidden, "user_id does not match the authenticated user")
		return "", false
	}

	return authed, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r, r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	vouchers, err := h.svc.List(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	if vouchers == nil {
		vouchers = []*voucher.Voucher{}
	}

	respond.JSON(w, http.StatusOK, map[string]any{"vouchers": vouchers})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, v)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	uid, ok := userID(w, r, r.FormValue("user_id"))
	if !ok {
		return
	}

	params := voucher.UploadParams{
		UserID:          uid,
		Title:           r.FormValue("title"),
		Description:     r.FormValue("description"),
		Category:        r.FormValue("category"),
		TransactionType: r.FormValue("transaction_type"),
	}

	if s := r.FormValue("amount"); s != "" {
		amount, err := decimal.NewFromString(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid amount")
			return
		}

		params.Amount = &amount
	}

	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "failed to read file "+fh.Filename)
			return
		}

		key, err := h.files.Save(fh.Filename, f)
		f.Close()

		if err != nil {
			slog.Error("failed to store upload", "file", fh.Filename, "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to store file")

			return
		}

		params.Files = append(params.Files, voucher.File{Name: fh.Filename, URL: h.fileURL + "/" + key})
	}

	v, err := h.svc.Upload(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, v)
}

type ocrRequest struct {
	UserID     string   `json:"user_id"`
	VoucherIDs []string `json:"voucher_ids"`
}

func (h *Handler) runOCR(w http.ResponseWriter, r *http.Request) {
	var req ocrRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	uid, ok := userID(w, r, req.UserID)
	if !ok {
		return
	}

	n, err := h.svc.RunOCR(r.Context(), uid, req.VoucherIDs)
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusAccepted, ackResponse{Status: "queued", Count: n})
}

type sendRequest struct {
	VoucherIDs []string `json:"voucher_ids"`
	ApproverID string   `json:"approver_id"`
}

func (h *Handler) sendForRequest(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.svc.SendForRequest(r.Context(), req.VoucherIDs, req.ApproverID)
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, ackResponse{Status: "sent", Count: n})
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, v)
}

type declineRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) decline(w http.ResponseWriter, r *http.Request) {
	var req declineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.svc.Decline(r.Context(), chi.URLParam(r, "id"), req.Reason, middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, voucher.ErrInvalid):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, voucher.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "voucher not found")
	case errors.Is(err, voucher.ErrAlreadyPaid):
		respond.Error(w, http.StatusConflict, "voucher is already paid")
	default:
		slog.Error("voucher request failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}
