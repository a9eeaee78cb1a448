package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case Guardian:
		o.printGuardian(v)
	case Team:
		o.printTeam(v)
	case []Team:
		o.printTeams(v)
	case Balance:
		o.printBalance(v)
	case []InvoiceLine:
		o.printInvoice(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AuthResult response type (matches API)
type AuthResult struct {
	Token       string `json:"token"`
	StaffID     string `json:"staff_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	ExpiresAt   string `json:"expires_at"`
}

// Player response type
type Player struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	DateOfBirth  string `json:"date_of_birth"`
	Grade        string `json:"grade"`
	Gender       string `json:"gender"`
	GuardianID   string `json:"guardian_id"`
	TeamID       string `json:"team_id,omitempty"`
	Status       string `json:"status"`
	StatusReason string `json:"status_reason,omitempty"`
}

// Guardian response type
type Guardian struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Team response type
type Team struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Season string `json:"season"`
}

// Balance response type
type Balance struct {
	TotalPaid string `json:"total_paid"`
	TotalDue  string `json:"total_due"`
	Remaining string `json:"remaining"`
	Partial   bool   `json:"partial"`
	Excluded  int    `json:"excluded_entries,omitempty"`
}

// InvoiceLine response type
type InvoiceLine struct {
	PaymentID  string `json:"payment_id"`
	Period     string `json:"period"`
	Kind       string `json:"kind"`
	UnitPrice  string `json:"unit_price"`
	Quantity   int    `json:"quantity"`
	AmountPaid string `json:"amount_paid"`
	PaidAt     string `json:"paid_at"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("Staff: %s (%s)\n", a.DisplayName, a.StaffID)
	fmt.Printf("Username: %s\n", a.Username)
	fmt.Printf("Token: %s\n", a.Token)
	fmt.Printf("Expires: %s\n", a.ExpiresAt)
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Status: %s\n", p.Status)
	if p.StatusReason != "" {
		fmt.Printf("Reason: %s\n", p.StatusReason)
	}
	fmt.Printf("Born: %s\n", p.DateOfBirth)
	fmt.Printf("Grade: %s\n", p.Grade)
	fmt.Printf("Guardian: %s\n", p.GuardianID)
	if p.TeamID != "" {
		fmt.Printf("Team: %s\n", p.TeamID)
	}
}

func (o *Output) printPlayers(players []Player) {
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		teamStr := ""
		if p.TeamID != "" {
			teamStr = " team=" + p.TeamID
		}
		fmt.Printf("  - %s (%s) - %s%s\n", p.DisplayName, p.ID, p.Status, teamStr)
	}
}

func (o *Output) printGuardian(g Guardian) {
	fmt.Printf("Guardian: %s\n", g.ID)
	fmt.Printf("Email: %s\n", g.Email)
}

func (o *Output) printTeam(t Team) {
	fmt.Printf("Team: %s (%s)\n", t.Name, t.ID)
	fmt.Printf("Season: %s\n", t.Season)
}

func (o *Output) printTeams(teams []Team) {
	fmt.Printf("Teams (%d):\n", len(teams))
	for _, t := range teams {
		fmt.Printf("  - %s (%s) - %s\n", t.Name, t.ID, t.Season)
	}
}

func (o *Output) printBalance(b Balance) {
	fmt.Printf("Total Due:  %s\n", b.TotalDue)
	fmt.Printf("Total Paid: %s\n", b.TotalPaid)
	fmt.Printf("Remaining:  %s\n", b.Remaining)
	if b.Partial {
		fmt.Printf("Warning: %d ledger entries were unreadable; figures are partial\n", b.Excluded)
	}
}

func (o *Output) printInvoice(lines []InvoiceLine) {
	fmt.Printf("Invoice lines (%d):\n", len(lines))
	for _, l := range lines {
		fmt.Printf("  %s  %-9s  %s x%d  paid %s  (%s)\n",
			l.Period, l.Kind, l.UnitPrice, l.Quantity, l.AmountPaid, l.PaymentID)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
