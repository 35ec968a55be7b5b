package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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

// transactionService drives the transaction lifecycle: creation, the
// pending→executed/cancelled state machine, recurring-instance generation
// and series-aware deletes.
type transactionService struct {
	txnRepo       portsrepo.TransactionRepositoryFacade
	accountRepo   portsrepo.AccountReader
	converter     portssvc.CurrencyConverter
	balanceSvc    portssvc.BalanceSvcFacade
	reminders     portssvc.ReminderScheduler
	usage         portssvc.UsageTracker
	horizonMonths int
}

// NewTransactionService creates a new transaction service. horizonMonths is
// the default generation horizon for recurring templates.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	converter portssvc.CurrencyConverter,
	balanceSvc portssvc.BalanceSvcFacade,
	reminders portssvc.ReminderScheduler,
	usage portssvc.UsageTracker,
	horizonMonths int,
) portssvc.TransactionSvcFacade {
	if horizonMonths < 1 {
		horizonMonths = 3
	}
	return &transactionService{
		txnRepo:       txnRepo,
		accountRepo:   accountRepo,
		converter:     converter,
		balanceSvc:    balanceSvc,
		reminders:     reminders,
		usage:         usage,
		horizonMonths: horizonMonths,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// GetTransactionByID retrieves a specific transaction.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction in service: %w", err)
	}
	return txn, nil
}

// ListTransactionsByAccount returns a page of transactions touching the account.
func (s *transactionService) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	txns, token, err := s.txnRepo.ListTransactionsByAccount(ctx, accountID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}
	return txns, token, nil
}

// CreateTransaction validates the request, resolves the destination amount and
// snapshot rate, and persists the transaction. Validation failures reject
// the whole request before any mutation.
//
// A scheduled transaction whose date is already in the past is created
// directly executed, regardless of the automatic flag.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	account, destAccount, err := s.validateSpec(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:          uuid.NewString(),
		Type:                   req.Type,
		Amount:                 req.Amount,
		CurrencyCode:           req.CurrencyCode,
		InterestAmount:         req.InterestAmount,
		AccountID:              req.AccountID,
		DestinationAccountID:   req.DestinationAccountID,
		CategoryID:             req.CategoryID,
		Notes:                  req.Notes,
		Date:                   req.Date,
		IsScheduled:            req.IsScheduled,
		IsAutomatic:            req.IsAutomatic,
		ScheduledDate:          req.ScheduledDate,
		IsRecurring:            req.IsRecurring,
		RecurrenceEndDate:      req.RecurrenceEndDate,
		AdjustToWorkingDay:     req.AdjustToWorkingDay,
		IncludeStartDayInCount: req.IncludeStartDayInCount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if req.RecurrenceRule != nil {
		txn.RecurrenceRule = &domain.RecurrenceRule{
			Interval: req.RecurrenceRule.Interval,
			Unit:     req.RecurrenceRule.Unit,
		}
	}

	s.resolveDestination(ctx, &txn, account, destAccount, req.DestinationAmount)

	// Status at creation.
	txn.Status = domain.StatusExecuted
	if req.IsScheduled {
		scheduled := req.Date
		if req.ScheduledDate != nil {
			scheduled = *req.ScheduledDate
		}
		txn.ScheduledDate = &scheduled
		txn.Date = scheduled
		if scheduled.After(now) {
			txn.Status = domain.StatusPending
		}
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction in service: %w", err)
	}

	switch txn.Status {
	case domain.StatusExecuted:
		s.recordUsage(ctx, &txn)
		if err := s.balanceSvc.RecomputeBalances(ctx, txn.AffectedAccountIDs()); err != nil {
			return nil, err
		}
	case domain.StatusPending:
		s.reminders.ScheduleReminder(ctx, txn.TransactionID, *txn.ScheduledDate)
	}

	// Expanding a multi-month horizon is not worth blocking the save; the
	// generator rechecks the template still exists when it runs.
	if txn.IsTemplate() {
		templateID := txn.TransactionID
		go func() {
			bg := context.Background()
			if _, err := s.GenerateRecurringInstances(bg, templateID, s.horizonMonths); err != nil {
				slog.Default().Error("background recurring generation failed",
					slog.String("template_id", templateID), slog.String("error", err.Error()))
			}
		}()
	}

	return &txn, nil
}

// validateSpec rejects invalid transaction specs before any mutation.
func (s *transactionService) validateSpec(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Account, *domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: account '%s' not found", apperrors.ErrValidation, req.AccountID)
		}
		return nil, nil, fmt.Errorf("failed to validate account: %w", err)
	}

	if req.Type == domain.TypeAdjustment {
		if req.Amount.IsZero() {
			return nil, nil, fmt.Errorf("%w: adjustment amount cannot be zero", apperrors.ErrValidation)
		}
	} else if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	var destAccount *domain.Account
	if req.Type == domain.TypeTransfer {
		if req.DestinationAccountID == nil {
			return nil, nil, fmt.Errorf("%w: transfer requires a destination account", apperrors.ErrValidation)
		}
		if *req.DestinationAccountID == req.AccountID {
			return nil, nil, fmt.Errorf("%w: transfer endpoints must be different accounts", apperrors.ErrValidation)
		}
		destAccount, err = s.accountRepo.FindAccountByID(ctx, *req.DestinationAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil, fmt.Errorf("%w: destination account '%s' not found", apperrors.ErrValidation, *req.DestinationAccountID)
			}
			return nil, nil, fmt.Errorf("failed to validate destination account: %w", err)
		}
	}

	if req.InterestAmount != nil {
		if req.Type != domain.TypeLiabilityPayment {
			return nil, nil, fmt.Errorf("%w: interest amount is only valid for liability payments", apperrors.ErrValidation)
		}
		if req.InterestAmount.IsNegative() {
			return nil, nil, fmt.Errorf("%w: interest amount cannot be negative", apperrors.ErrValidation)
		}
	}

	if req.IsRecurring {
		if req.RecurrenceRule == nil {
			return nil, nil, fmt.Errorf("%w: recurring transaction requires a recurrence rule", apperrors.ErrValidation)
		}
		rule := domain.RecurrenceRule{Interval: req.RecurrenceRule.Interval, Unit: req.RecurrenceRule.Unit}
		if !rule.Valid() {
			return nil, nil, fmt.Errorf("%w: recurrence interval must be a positive number of %s", apperrors.ErrValidation, req.RecurrenceRule.Unit)
		}
	}

	return account, destAccount, nil
}

// resolveDestination fixes the destination amount and the snapshot rate at
// creation time. Once set, the snapshot is immutable: balance derivation for
// past dates reads the stored figures, never a fresh rate.
func (s *transactionService) resolveDestination(ctx context.Context, txn *domain.Transaction, account, destAccount *domain.Account, customAmount *decimal.Decimal) {
	targetCurrency := account.CurrencyCode
	if txn.Type == domain.TypeTransfer && destAccount != nil {
		targetCurrency = destAccount.CurrencyCode
	}

	if customAmount != nil {
		amount := *customAmount
		txn.DestinationAmount = &amount
		txn.IsCustomRate = true
		if !txn.Amount.IsZero() {
			rate := amount.Div(txn.Amount)
			txn.ExchangeRateSnapshot = &rate
		}
		return
	}

	if txn.CurrencyCode == targetCurrency {
		return
	}

	converted := s.converter.Convert(ctx, txn.Amount, txn.CurrencyCode, targetCurrency)
	txn.DestinationAmount = &converted
	if !txn.Amount.IsZero() {
		rate := converted.Div(txn.Amount)
		txn.ExchangeRateSnapshot = &rate
	}
}

// ConfirmPending moves a pending transaction to executed. Missing ids and
// already-terminal transactions are silent no-ops: the end state is what
// the caller asked for.
func (s *transactionService) ConfirmPending(ctx context.Context, transactionID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load transaction for confirm: %w", err)
	}
	if txn.Status != domain.StatusPending {
		return nil
	}

	now := time.Now()
	txn.Status = domain.StatusExecuted
	txn.Date = txn.EffectiveScheduledDate()
	if txn.Date.IsZero() {
		txn.Date = now
	}
	txn.LastUpdatedAt = now

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return fmt.Errorf("failed to confirm transaction: %w", err)
	}

	s.recordUsage(ctx, txn)
	s.reminders.CancelReminder(ctx, txn.TransactionID)
	return s.balanceSvc.RecomputeBalances(ctx, txn.AffectedAccountIDs())
}

// CancelPending moves a pending transaction to cancelled. A cancelled
// transaction never contributed to a balance, so nothing is recomputed.
func (s *transactionService) CancelPending(ctx context.Context, transactionID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load transaction for cancel: %w", err)
	}
	if txn.Status != domain.StatusPending {
		return nil
	}

	txn.Status = domain.StatusCancelled
	txn.LastUpdatedAt = time.Now()

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return fmt.Errorf("failed to cancel transaction: %w", err)
	}

	s.reminders.CancelReminder(ctx, txn.TransactionID)
	return nil
}

// GenerateRecurringInstances materializes instances of a recurring template
// up to horizonMonths ahead, bounded by the template's recurrence end date
// (exclusive). Occurrence dates that already have an instance are skipped,
// so re-triggering is safe. A missing template is a no-op: it may have been
// deleted between queueing and execution.
func (s *transactionService) GenerateRecurringInstances(ctx context.Context, templateID string, horizonMonths int) ([]domain.Transaction, error) {
	template, err := s.txnRepo.FindTransactionByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load recurring template: %w", err)
	}
	if !template.IsTemplate() {
		return nil, fmt.Errorf("%w: transaction '%s' is not a recurring template", apperrors.ErrValidation, templateID)
	}
	if template.RecurrenceRule == nil || !template.RecurrenceRule.Valid() {
		return nil, fmt.Errorf("%w: recurring template '%s' has no usable recurrence rule", apperrors.ErrValidation, templateID)
	}

	if horizonMonths < 1 {
		horizonMonths = s.horizonMonths
	}
	now := time.Now()
	horizon := now.AddDate(0, horizonMonths, 0)

	existing, err := s.txnRepo.ListInstancesByTemplateID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing instances: %w", err)
	}
	taken := make(map[string]struct{}, len(existing))
	for i := range existing {
		taken[existing[i].EffectiveScheduledDate().Format(time.RFC3339)] = struct{}{}
	}

	rule := *template.RecurrenceRule
	var created []domain.Transaction
	var executedAccounts []string

	cur := template.Date
	for {
		next, ok := rule.NextOccurrence(cur, template.IncludeStartDayInCount, template.AdjustToWorkingDay)
		if !ok || !next.After(cur) {
			// No forward progress means the rule cannot enumerate a series.
			break
		}
		if next.After(horizon) {
			break
		}
		if template.RecurrenceEndDate != nil && !next.Before(*template.RecurrenceEndDate) {
			break
		}
		cur = next

		if _, dup := taken[next.Format(time.RFC3339)]; dup {
			continue
		}

		instance := s.materializeInstance(template, next, now)
		created = append(created, instance)
		if instance.Status == domain.StatusExecuted {
			executedAccounts = append(executedAccounts, instance.AffectedAccountIDs()...)
		}
	}

	if len(created) == 0 {
		return []domain.Transaction{}, nil
	}

	if err := s.txnRepo.SaveTransactions(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to save generated instances: %w", err)
	}

	for i := range created {
		if created[i].Status == domain.StatusPending {
			s.reminders.ScheduleReminder(ctx, created[i].TransactionID, *created[i].ScheduledDate)
			continue
		}
		s.recordUsage(ctx, &created[i])
	}
	if len(executedAccounts) > 0 {
		if err := s.balanceSvc.RecomputeBalances(ctx, executedAccounts); err != nil {
			return nil, err
		}
	}

	middleware.GetLoggerFromCtx(ctx).Info("generated recurring instances",
		slog.String("template_id", templateID), slog.Int("count", len(created)))
	return created, nil
}

// materializeInstance builds one occurrence of a template. Instances inherit
// the money and account fields but own their schedule, start pending, and
// auto-execute when the occurrence date is already past.
func (s *transactionService) materializeInstance(template *domain.Transaction, occurrence, now time.Time) domain.Transaction {
	scheduled := occurrence
	instance := domain.Transaction{
		TransactionID:                uuid.NewString(),
		Type:                         template.Type,
		Amount:                       template.Amount,
		CurrencyCode:                 template.CurrencyCode,
		DestinationAmount:            template.DestinationAmount,
		ExchangeRateSnapshot:         template.ExchangeRateSnapshot,
		IsCustomRate:                 template.IsCustomRate,
		InterestAmount:               template.InterestAmount,
		AccountID:                    template.AccountID,
		DestinationAccountID:         template.DestinationAccountID,
		CategoryID:                   template.CategoryID,
		Notes:                        template.Notes,
		Date:                         occurrence,
		Status:                       domain.StatusPending,
		IsScheduled:                  true,
		IsAutomatic:                  template.IsAutomatic,
		ScheduledDate:                &scheduled,
		ParentRecurringTransactionID: &template.TransactionID,
		AdjustToWorkingDay:           template.AdjustToWorkingDay,
		IncludeStartDayInCount:       template.IncludeStartDayInCount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if !occurrence.After(now) {
		instance.Status = domain.StatusExecuted
	}
	return instance
}

// DeleteTransaction removes a transaction with series-aware scope and
// recomputes every affected account exactly once. A target that is already
// gone is a no-op: a concurrent series operation got there first.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, scope domain.DeleteScope) error {
	anchor, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load transaction for delete: %w", err)
	}

	// Series scopes degrade to single delete for one-off transactions.
	templateID := anchor.SeriesTemplateID()
	if templateID == "" {
		scope = domain.DeleteThisOnly
	}

	var doomed []domain.Transaction
	switch scope {
	case domain.DeleteThisOnly:
		doomed = []domain.Transaction{*anchor}

	case domain.DeleteAll:
		series, err := s.loadSeries(ctx, templateID)
		if err != nil {
			return err
		}
		doomed = series

	case domain.DeleteThisAndFuture:
		series, err := s.loadSeries(ctx, templateID)
		if err != nil {
			return err
		}
		pivot := anchor.EffectiveScheduledDate()
		for i := range series {
			member := series[i]
			if member.IsTemplate() {
				// The template goes only when it is the anchor itself.
				if member.TransactionID == anchor.TransactionID {
					doomed = append(doomed, member)
				}
				continue
			}
			if !member.EffectiveScheduledDate().Before(pivot) {
				doomed = append(doomed, member)
			}
		}

	case domain.DeleteStopHere:
		return s.stopRecurrenceAt(ctx, anchor, templateID)

	default:
		return fmt.Errorf("%w: unknown delete scope '%s'", apperrors.ErrValidation, scope)
	}

	return s.deleteAndRecompute(ctx, doomed)
}

// stopRecurrenceAt truncates a series at the anchor: the template's end date
// moves to the day before the anchor's scheduled date and strictly later
// instances are removed. The anchor itself survives. This is the only series
// operation that mutates a rule in place instead of deleting wholesale.
func (s *transactionService) stopRecurrenceAt(ctx context.Context, anchor *domain.Transaction, templateID string) error {
	pivot := anchor.EffectiveScheduledDate()

	template, err := s.txnRepo.FindTransactionByID(ctx, templateID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to load template for stop: %w", err)
	}
	if template != nil {
		endDate := pivot.AddDate(0, 0, -1)
		template.RecurrenceEndDate = &endDate
		template.LastUpdatedAt = time.Now()
		if err := s.txnRepo.UpdateTransaction(ctx, *template); err != nil {
			return fmt.Errorf("failed to update template end date: %w", err)
		}
	}

	instances, err := s.txnRepo.ListInstancesByTemplateID(ctx, templateID)
	if err != nil {
		return fmt.Errorf("failed to list instances for stop: %w", err)
	}
	var doomed []domain.Transaction
	for i := range instances {
		if instances[i].EffectiveScheduledDate().After(pivot) {
			doomed = append(doomed, instances[i])
		}
	}
	return s.deleteAndRecompute(ctx, doomed)
}

// loadSeries returns the template (when it still exists) plus all of its
// instances.
func (s *transactionService) loadSeries(ctx context.Context, templateID string) ([]domain.Transaction, error) {
	var series []domain.Transaction

	template, err := s.txnRepo.FindTransactionByID(ctx, templateID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load series template: %w", err)
	}
	if template != nil {
		series = append(series, *template)
	}

	instances, err := s.txnRepo.ListInstancesByTemplateID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list series instances: %w", err)
	}
	return append(series, instances...), nil
}

// deleteAndRecompute removes the doomed transactions, cancels their
// reminders, and recomputes each affected account exactly once.
func (s *transactionService) deleteAndRecompute(ctx context.Context, doomed []domain.Transaction) error {
	if len(doomed) == 0 {
		return nil
	}

	ids := make([]string, len(doomed))
	affected := make(map[string]struct{})
	for i := range doomed {
		ids[i] = doomed[i].TransactionID
		for _, accountID := range doomed[i].AffectedAccountIDs() {
			affected[accountID] = struct{}{}
		}
	}

	if err := s.txnRepo.DeleteTransactions(ctx, ids); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}

	for _, id := range ids {
		s.reminders.CancelReminder(ctx, id)
	}

	accountIDs := make([]string, 0, len(affected))
	for id := range affected {
		accountIDs = append(accountIDs, id)
	}
	return s.balanceSvc.RecomputeBalances(ctx, accountIDs)
}

// recordUsage feeds the best-effort usage sink; failures stay inside it.
func (s *transactionService) recordUsage(ctx context.Context, txn *domain.Transaction) {
	if txn.CategoryID != nil {
		s.usage.RecordCategoryUsage(ctx, *txn.CategoryID)
	}
	s.usage.RecordCurrencyUsage(ctx, txn.CurrencyCode)
}
