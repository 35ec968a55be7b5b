package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/centsible/centsible_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// exchangeRateService provides business logic for exchange rates and
// conversions.
type exchangeRateService struct {
	rateRepo    portsrepo.ExchangeRateRepository
	currencySvc portssvc.CurrencyReaderSvc
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepository, currencySvc portssvc.CurrencyReaderSvc) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:    rateRepo,
		currencySvc: currencySvc,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// UpsertExchangeRate stores the current rate for the ordered (from,to) pair.
// The inverse pair is never auto-populated; callers store it explicitly if
// they need it.
func (s *exchangeRateService) UpsertExchangeRate(ctx context.Context, req dto.UpsertExchangeRateRequest) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	fromCode := strings.ToUpper(req.FromCurrencyCode)
	toCode := strings.ToUpper(req.ToCurrencyCode)
	if fromCode == toCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	// Both endpoints must be known currencies.
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, fromCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'from' currency code '%s' not found", apperrors.ErrValidation, fromCode)
		}
		return nil, fmt.Errorf("failed to validate 'from' currency '%s': %w", fromCode, err)
	}
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, toCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'to' currency code '%s' not found", apperrors.ErrValidation, toCode)
		}
		return nil, fmt.Errorf("failed to validate 'to' currency '%s': %w", toCode, err)
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             req.Rate,
		Source:           req.Source,
		UpdatedAt:        now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.rateRepo.UpsertExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to upsert exchange rate in service: %w", err)
	}

	return &rate, nil
}

// GetExchangeRate retrieves the current rate for the ordered pair.
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// Convert converts an amount between currencies. Lookup order: identity for
// equal codes, the direct pair, then the inverse pair as 1/rate. When
// neither exists the amount is returned unconverted: a degraded but valid
// result, never an error, and never a third-currency bridge. Convert is a
// pure read; usage counters move only on the transaction write path.
func (s *exchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) decimal.Decimal {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if fromCode == toCode {
		return amount
	}

	if rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode); err == nil {
		return amount.Mul(rate.Rate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		middleware.GetLoggerFromCtx(ctx).Warn("exchange rate lookup failed, falling back",
			slog.String("from", fromCode), slog.String("to", toCode), slog.String("error", err.Error()))
	}

	if inverse, err := s.rateRepo.FindExchangeRate(ctx, toCode, fromCode); err == nil && !inverse.Rate.IsZero() {
		return amount.Div(inverse.Rate)
	}

	return amount
}
