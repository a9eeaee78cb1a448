package response

import (
	"time"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/auth"
)

// AuthResponse is returned from login and staff registration
type AuthResponse struct {
	Token       string    `json:"token"`
	StaffID     string    `json:"staff_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthResponseFromSession converts a session to an AuthResponse
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Token:       s.Token,
		StaffID:     string(s.StaffID),
		Username:    s.Staff.Username,
		DisplayName: s.Staff.DisplayName,
		ExpiresAt:   s.ExpiresAt,
	}
}

// PlayerResponse is the API shape of a player
type PlayerResponse struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	DateOfBirth  string    `json:"date_of_birth"`
	Grade        string    `json:"grade"`
	Gender       string    `json:"gender"`
	GuardianID   string    `json:"guardian_id"`
	TeamID       string    `json:"team_id,omitempty"`
	Status       string    `json:"status"`
	StatusReason string    `json:"status_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PlayerFromModel converts a player to its API shape
func PlayerFromModel(p *model.Player) PlayerResponse {
	return PlayerResponse{
		ID:           string(p.ID),
		DisplayName:  p.DisplayName,
		DateOfBirth:  p.DateOfBirth.Format("2006-01-02"),
		Grade:        p.Grade,
		Gender:       p.Gender,
		GuardianID:   string(p.GuardianID),
		TeamID:       string(p.TeamID),
		Status:       string(p.Status),
		StatusReason: p.StatusReason,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// PlayersFromModels converts a player list
func PlayersFromModels(players []*model.Player) []PlayerResponse {
	out := make([]PlayerResponse, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerFromModel(p))
	}
	return out
}

// GuardianResponse is the API shape of a guardian
type GuardianResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// GuardianFromModel converts a guardian to its API shape
func GuardianFromModel(g *model.Guardian) GuardianResponse {
	return GuardianResponse{
		ID:        string(g.ID),
		Email:     g.Email,
		CreatedAt: g.CreatedAt,
	}
}

// TeamResponse is the API shape of a team
type TeamResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Season    string    `json:"season"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamFromModel converts a team to its API shape
func TeamFromModel(t *model.Team) TeamResponse {
	return TeamResponse{
		ID:        string(t.ID),
		Name:      t.Name,
		Season:    t.Season,
		CreatedAt: t.CreatedAt,
	}
}

// TeamsFromModels converts a team list
func TeamsFromModels(teams []*model.Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamFromModel(t))
	}
	return out
}

// BalanceResponse carries a guardian's aggregate figures. Amounts are
// decimal strings; Partial warns that corrupt ledger rows were excluded and
// the figures are not authoritative.
type BalanceResponse struct {
	TotalPaid string `json:"total_paid"`
	TotalDue  string `json:"total_due"`
	Remaining string `json:"remaining"`
	Partial   bool   `json:"partial"`
	Excluded  int    `json:"excluded_entries,omitempty"`
}

// BalanceFromSummary converts a balance summary to its API shape
func BalanceFromSummary(s model.BalanceSummary) BalanceResponse {
	return BalanceResponse{
		TotalPaid: s.TotalPaid.StringFixed(2),
		TotalDue:  s.TotalDue.StringFixed(2),
		Remaining: s.Remaining.StringFixed(2),
		Partial:   s.ExcludedEntries > 0,
		Excluded:  s.ExcludedEntries,
	}
}

// InvoiceLineResponse is one derived invoice row
type InvoiceLineResponse struct {
	PaymentID  string    `json:"payment_id"`
	Period     string    `json:"period"`
	Kind       string    `json:"kind"`
	UnitPrice  string    `json:"unit_price"`
	Quantity   int       `json:"quantity"`
	AmountPaid string    `json:"amount_paid"`
	PaidAt     time.Time `json:"paid_at"`
}

// InvoiceLinesFromModels converts derived invoice lines
func InvoiceLinesFromModels(lines []model.InvoiceLine) []InvoiceLineResponse {
	out := make([]InvoiceLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, InvoiceLineResponse{
			PaymentID:  string(l.PaymentID),
			Period:     l.Period,
			Kind:       string(l.Kind),
			UnitPrice:  l.UnitPrice.StringFixed(2),
			Quantity:   l.Quantity,
			AmountPaid: l.AmountPaid.StringFixed(2),
			PaidAt:     l.PaidAt,
		})
	}
	return out
}

// PaymentResponse is the API shape of a ledger entry
type PaymentResponse struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	Amount    string    `json:"amount"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentFromModel converts a payment to its API shape
func PaymentFromModel(p *model.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        string(p.ID),
		PlayerID:  string(p.PlayerID),
		Amount:    p.Amount,
		Kind:      string(p.Kind),
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}
