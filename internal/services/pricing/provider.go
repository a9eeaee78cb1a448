package pricing

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
)

// monthlyFee is fixed in code, not configuration. The three fees are sourced
// three different ways on purpose (annual from config, quarterly from the
// remote price lookup, monthly here); unifying them would change observable
// behavior, so the asymmetry lives behind this one provider instead.
var monthlyFee = decimal.NewFromInt(35)

// fallbackQuarterlyFee is used whenever the price lookup is unreachable or
// returns garbage
var fallbackQuarterlyFee = decimal.NewFromInt(100)

// Provider supplies the current fee schedule. Implementations must always
// return a usable schedule; a lookup failure degrades to defaults rather
// than erroring, because every consumer is a read-side page that has to
// render something.
type Provider interface {
	Fees(ctx context.Context) model.FeeSchedule
}

// Config holds configuration for the service
type Config struct {
	// AnnualFeePerChild is the statically configured annual fee
	AnnualFeePerChild decimal.Decimal
	// QuarterlyLookupURL points at the external price lookup. Empty disables
	// the lookup and the fallback constant is used.
	QuarterlyLookupURL string
	// LookupTimeout bounds each lookup call
	LookupTimeout time.Duration
}

// DefaultConfig returns sensible defaults for pricing configuration
func DefaultConfig() Config {
	return Config{
		AnnualFeePerChild: decimal.NewFromInt(360),
		LookupTimeout:     5 * time.Second,
	}
}

// Service is the production Provider. Annual comes from configuration,
// monthly is the built-in constant, quarterly is fetched remotely with a
// fallback.
type Service struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new pricing service
func New(cfg Config, logger *slog.Logger) *Service {
	if cfg.LookupTimeout == 0 {
		cfg.LookupTimeout = DefaultConfig().LookupTimeout
	}
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.LookupTimeout,
		},
		logger: logger,
	}
}

// Ensure Service implements the interface
var _ Provider = (*Service)(nil)

// Fees returns the current fee schedule
func (s *Service) Fees(ctx context.Context) model.FeeSchedule {
	return model.FeeSchedule{
		Annual:    s.cfg.AnnualFeePerChild,
		Monthly:   monthlyFee,
		Quarterly: s.quarterlyFee(ctx),
	}
}

// quarterlyLookupResponse is the price lookup's wire format
type quarterlyLookupResponse struct {
	QuarterlyFee string `json:"quarterly_fee"`
}

func (s *Service) quarterlyFee(ctx context.Context) decimal.Decimal {
	if s.cfg.QuarterlyLookupURL == "" {
		return fallbackQuarterlyFee
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.QuarterlyLookupURL, nil)
	if err != nil {
		s.logger.Warn("price lookup request failed", slog.String("error", err.Error()))
		return fallbackQuarterlyFee
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("price lookup unreachable", slog.String("error", err.Error()))
		return fallbackQuarterlyFee
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("price lookup returned non-200", slog.Int("status", resp.StatusCode))
		return fallbackQuarterlyFee
	}

	var body quarterlyLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		s.logger.Warn("price lookup returned invalid body", slog.String("error", err.Error()))
		return fallbackQuarterlyFee
	}

	fee, err := decimal.NewFromString(body.QuarterlyFee)
	if err != nil || fee.IsNegative() {
		s.logger.Warn("price lookup returned invalid fee", slog.String("fee", body.QuarterlyFee))
		return fallbackQuarterlyFee
	}

	return fee
}

// Static is a Provider that returns a fixed schedule. Used in tests and
// anywhere the remote lookup is undesirable.
type Static struct {
	Schedule model.FeeSchedule
}

// Fees returns the fixed schedule
func (s Static) Fees(ctx context.Context) model.FeeSchedule {
	return s.Schedule
}

var _ Provider = Static{}
