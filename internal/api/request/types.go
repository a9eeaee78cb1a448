package request

// RegisterStaffRequest is the request body for creating a staff account
type RegisterStaffRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterPlayerRequest is the request body for submitting a registration
type RegisterPlayerRequest struct {
	DisplayName string `json:"display_name"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	Grade       string `json:"grade"`
	Gender      string `json:"gender"`
	GuardianID  string `json:"guardian_id"`
}

// ApproveRequest is the request body for approving a pending player
type ApproveRequest struct {
	TeamID string `json:"team_id"`
}

// ReasonRequest is the request body for hold and reject transitions
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// CreateGuardianRequest is the request body for creating a guardian
type CreateGuardianRequest struct {
	Email string `json:"email"`
}

// CreateTeamRequest is the request body for creating a team
type CreateTeamRequest struct {
	Name   string `json:"name"`
	Season string `json:"season"`
}

// PaymentWebhookRequest is the payment processor's delivery format
type PaymentWebhookRequest struct {
	PaymentID  string `json:"payment_id"`
	PlayerID   string `json:"player_id"`
	GuardianID string `json:"guardian_id,omitempty"`
	Amount     string `json:"amount"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`
}
