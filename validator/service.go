package validator

import (
	"context"
	"fmt"
	"time"

	"github.com/jonanatree/cardcheck/internal/cardcheck"
	"github.com/jonanatree/cardcheck/internal/expiry"
	"github.com/jonanatree/cardcheck/internal/middleware"
	"github.com/jonanatree/cardcheck/validator/models"
	"golang.org/x/exp/slog"
)

var ErrNotFound = fmt.Errorf("not found")

// Service validates what a shopper types into the checkout card form.
// It holds no state between calls.
type Service struct {
	logger *slog.Logger
	key    []byte
	loc    *time.Location
	now    func() time.Time
}

// NewService resolves cfg.ExpiryTZ once; an unknown zone falls back to UTC.
func NewService(logger *slog.Logger, cfg *Config) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	loc := time.UTC
	if cfg.ExpiryTZ != "" {
		l, err := time.LoadLocation(cfg.ExpiryTZ)
		if err != nil {
			logger.Info("invalid ExpiryTZ; using default UTC", slog.String("tz", cfg.ExpiryTZ), slog.Any("err", err))
		} else {
			loc = l
		}
	}

	return &Service{
		logger: logger,
		key:    []byte(cfg.FingerprintKey),
		loc:    loc,
		now:    time.Now,
	}
}

func (s *Service) ValidateNumber(ctx context.Context, raw string) models.NumberResult {
	res := cardcheck.Validate(raw)
	digits := cardcheck.Normalize(raw)

	if l := middleware.LoggerFrom(ctx, s.logger); l.Enabled(ctx, slog.LevelDebug) {
		l.DebugContext(ctx, "card number checked",
			slog.String("brand", string(res.Brand)),
			slog.Bool("valid", res.IsValid),
			slog.Int("digits", len(digits)),
			slog.String("fingerprint", cardcheck.Fingerprint(digits, s.key)),
		)
	}

	return models.NumberResult{
		Brand:     res.Brand,
		IsValid:   res.IsValid,
		Formatted: cardcheck.Format(digits),
		Masked:    cardcheck.MaskPAN(digits),
		Last4:     cardcheck.LastN(digits, 4),
	}
}

// ValidateCheckout checks the three card fields of the checkout form. Each
// field gets a single verdict; IsValid requires all of them.
func (s *Service) ValidateCheckout(ctx context.Context, req models.CheckoutRequest) models.CheckoutResult {
	number := s.ValidateNumber(ctx, req.Number)
	rule, _ := cardcheck.RuleFor(number.Brand)

	out := models.CheckoutResult{
		Number:            number,
		SecurityCodeValid: cardcheck.CheckSecurityCode(number.Brand, req.SecurityCode),
		SecurityCodeName:  rule.CodeName,
	}

	_, expired, err := expiry.Check(req.Expiry, s.now(), s.loc)
	if err != nil {
		middleware.LoggerFrom(ctx, s.logger).DebugContext(ctx, "expiry rejected", slog.Any("err", err))
	} else {
		out.ExpiryValid = true
		out.Expired = expired
	}

	out.IsValid = number.IsValid && out.ExpiryValid && !out.Expired && out.SecurityCodeValid
	return out
}

// Brands lists the brand table in the order brands are matched.
func (s *Service) Brands() []models.Brand {
	rules := cardcheck.Rules()
	out := make([]models.Brand, 0, len(rules))
	for _, r := range rules {
		out = append(out, brandModel(r))
	}
	return out
}

// Brand looks up one brand by name. UNKNOWN has no rule and is reported as
// not found.
func (s *Service) Brand(name string) (models.Brand, error) {
	b, err := cardcheck.ParseBrand(name)
	if err != nil {
		return models.Brand{}, fmt.Errorf("finding brand: %w", ErrNotFound)
	}
	r, ok := cardcheck.RuleFor(b)
	if !ok {
		return models.Brand{}, fmt.Errorf("finding brand %s: %w", b, ErrNotFound)
	}
	return brandModel(r), nil
}

func brandModel(r cardcheck.BrandRule) models.Brand {
	return models.Brand{
		Name:             r.Brand,
		Pattern:          r.Pattern.String(),
		Lengths:          r.Lengths,
		Groups:           r.Groups,
		SecurityCodeName: r.CodeName,
		SecurityCodeSize: r.CodeSize,
	}
}
