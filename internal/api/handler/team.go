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
	"github.com/Phronesis2025/wcs-basketball-go/internal/storage"
)

// TeamHandler handles team endpoints
type TeamHandler struct {
	storage storage.Storage
	clock   clock.Clock
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(storage storage.Storage, clock clock.Clock) *TeamHandler {
	return &TeamHandler{
		storage: storage,
		clock:   clock,
	}
}

// Create handles POST /api/v1/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	team := &model.Team{
		ID:        model.TeamID("tm_" + uuid.NewString()),
		Name:      req.Name,
		Season:    req.Season,
		CreatedAt: h.clock.Now(),
	}

	if err := h.storage.SaveTeam(r.Context(), team); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TeamFromModel(team))
}

// List handles GET /api/v1/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.storage.ListTeams(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamsFromModels(teams))
}

// Get handles GET /api/v1/teams/{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamID := model.TeamID(mux.Vars(r)["id"])

	team, err := h.storage.GetTeam(r.Context(), teamID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamFromModel(team))
}
