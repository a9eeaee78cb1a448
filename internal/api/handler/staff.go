package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Phronesis2025/wcs-basketball-go/internal/api/middleware"
	"github.com/Phronesis2025/wcs-basketball-go/internal/api/request"
	"github.com/Phronesis2025/wcs-basketball-go/internal/api/response"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/auth"
)

// StaffHandler handles staff account endpoints
type StaffHandler struct {
	authService *auth.Service
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(authService *auth.Service) *StaffHandler {
	return &StaffHandler{
		authService: authService,
	}
}

// Register handles POST /api/v1/staff/register
func (h *StaffHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}
	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	session, err := h.authService.RegisterStaff(r.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/staff/login
func (h *StaffHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// GetMe handles GET /api/v1/staff/me
func (h *StaffHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	staff := middleware.MustGetStaff(r.Context())
	response.JSON(w, http.StatusOK, response.AuthResponse{
		StaffID:     string(staff.ID),
		Username:    staff.Username,
		DisplayName: staff.DisplayName,
	})
}
