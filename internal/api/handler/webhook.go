package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Phronesis2025/wcs-basketball-go/internal/api/request"
	"github.com/Phronesis2025/wcs-basketball-go/internal/api/response"
	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/ledger"
)

// WebhookHandler receives payment processor deliveries
type WebhookHandler struct {
	ledgerService *ledger.Service
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(ledgerService *ledger.Service) *WebhookHandler {
	return &WebhookHandler{
		ledgerService: ledgerService,
	}
}

// Payment handles POST /api/v1/webhooks/payments
func (h *WebhookHandler) Payment(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if req.Amount == "" {
		WriteError(w, NewInvalidRequestError("amount is required"))
		return
	}

	payment, err := h.ledgerService.RecordPayment(r.Context(), ledger.WebhookEvent{
		PaymentID:  req.PaymentID,
		PlayerID:   model.PlayerID(req.PlayerID),
		GuardianID: model.GuardianID(req.GuardianID),
		Amount:     req.Amount,
		Kind:       model.PaymentKind(req.Kind),
		Status:     req.Status,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PaymentFromModel(payment))
}
