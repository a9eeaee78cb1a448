package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Phronesis2025/wcs-basketball-go/internal/api/request"
	"github.com/Phronesis2025/wcs-basketball-go/internal/api/response"
	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/registration"
)

// RegistrationHandler handles player registration and transition endpoints
type RegistrationHandler struct {
	controller *registration.Controller
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(controller *registration.Controller) *RegistrationHandler {
	return &RegistrationHandler{
		controller: controller,
	}
}

// Register handles POST /api/v1/players
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}
	if req.GuardianID == "" {
		WriteError(w, NewInvalidRequestError("guardian_id is required"))
		return
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		WriteError(w, NewInvalidRequestError("date_of_birth must be YYYY-MM-DD"))
		return
	}

	player, err := h.controller.Register(r.Context(), registration.RegisterInput{
		DisplayName: req.DisplayName,
		DateOfBirth: dob,
		Grade:       req.Grade,
		Gender:      req.Gender,
		GuardianID:  model.GuardianID(req.GuardianID),
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Get handles GET /api/v1/players/{id}
func (h *RegistrationHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["id"])

	player, err := h.controller.GetPlayer(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Approve handles POST /api/v1/players/{id}/approve
func (h *RegistrationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["id"])

	var req request.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.TeamID == "" {
		WriteError(w, NewInvalidRequestError("team_id is required"))
		return
	}

	player, err := h.controller.Approve(r.Context(), playerID, model.TeamID(req.TeamID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Hold handles POST /api/v1/players/{id}/hold
func (h *RegistrationHandler) Hold(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["id"])

	var req request.ReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.controller.Hold(r.Context(), playerID, req.Reason)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Reject handles POST /api/v1/players/{id}/reject
func (h *RegistrationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["id"])

	var req request.ReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.controller.Reject(r.Context(), playerID, req.Reason)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Revert handles POST /api/v1/players/{id}/revert
func (h *RegistrationHandler) Revert(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["id"])

	player, err := h.controller.Revert(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
