package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Phronesis2025/wcs-basketball-go/internal/api/request"
	"github.com/Phronesis2025/wcs-basketball-go/internal/api/response"
	"github.com/Phronesis2025/wcs-basketball-go/internal/dependencies/clock"
	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/billing"
	"github.com/Phronesis2025/wcs-basketball-go/internal/storage"
)

// GuardianHandler handles guardian accounts and their billing reads
type GuardianHandler struct {
	storage        storage.Storage
	billingService *billing.Service
	clock          clock.Clock
}

// NewGuardianHandler creates a new guardian handler
func NewGuardianHandler(storage storage.Storage, billingService *billing.Service, clock clock.Clock) *GuardianHandler {
	return &GuardianHandler{
		storage:        storage,
		billingService: billingService,
		clock:          clock,
	}
}

// Create handles POST /api/v1/guardians
func (h *GuardianHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGuardianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}

	guardian := &model.Guardian{
		ID:        model.GuardianID("gu_" + uuid.NewString()),
		Email:     req.Email,
		CreatedAt: h.clock.Now(),
	}

	if err := h.storage.SaveGuardian(r.Context(), guardian); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GuardianFromModel(guardian))
}

// Get handles GET /api/v1/guardians/{id}
func (h *GuardianHandler) Get(w http.ResponseWriter, r *http.Request) {
	guardianID := model.GuardianID(mux.Vars(r)["id"])

	guardian, err := h.storage.GetGuardian(r.Context(), guardianID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuardianFromModel(guardian))
}

// Players handles GET /api/v1/guardians/{id}/players
func (h *GuardianHandler) Players(w http.ResponseWriter, r *http.Request) {
	guardianID := model.GuardianID(mux.Vars(r)["id"])

	if _, err := h.storage.GetGuardian(r.Context(), guardianID); err != nil {
		WriteError(w, err)
		return
	}

	players, err := h.storage.GetPlayersByGuardian(r.Context(), guardianID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModels(players))
}

// Balance handles GET /api/v1/guardians/{id}/balance
func (h *GuardianHandler) Balance(w http.ResponseWriter, r *http.Request) {
	guardianID := model.GuardianID(mux.Vars(r)["id"])

	summary, err := h.billingService.GuardianBalance(r.Context(), guardianID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BalanceFromSummary(summary))
}

// Invoice handles GET /api/v1/guardians/{id}/invoice
func (h *GuardianHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	guardianID := model.GuardianID(mux.Vars(r)["id"])

	lines, err := h.billingService.GuardianInvoice(r.Context(), guardianID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.InvoiceLinesFromModels(lines))
}
