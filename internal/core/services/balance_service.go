package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/centsible/centsible_app/internal/apperrors"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/middleware"
	"github.com/centsible/centsible_app/internal/utils/ledger"
	"github.com/shopspring/decimal"
)

// balanceService derives account balances from the transaction log. It is a
// pure read path over the repositories plus the currency converter; the only
// write it ever performs is persisting a freshly recomputed cached figure.
type balanceService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionReader
	converter   portssvc.CurrencyConverter
}

// NewBalanceService creates a new balance derivation service.
func NewBalanceService(accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionReader, converter portssvc.CurrencyConverter) portssvc.BalanceSvcFacade {
	return &balanceService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		converter:   converter,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// BalanceAsOf folds the account's executed transactions up to asOf into a
// signed balance, starting from the fixed initial balance. Pending and
// cancelled transactions never contribute; the repositories only surface
// records that still exist, so deleted entries are excluded by construction.
func (s *balanceService) BalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load account for balance derivation: %w", err)
	}

	// An account has no balance before it existed, not even its initial one.
	if !account.CreatedBefore(asOf) {
		return decimal.Zero, nil
	}

	convert := func(amount decimal.Decimal, from, to string) decimal.Decimal {
		return s.converter.Convert(ctx, amount, from, to)
	}

	balance := account.InitialBalance

	outgoing, err := s.txnRepo.ListExecutedByAccount(ctx, accountID, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list transactions for balance derivation: %w", err)
	}
	for i := range outgoing {
		balance = balance.Add(ledger.SourceEffect(outgoing[i], account.CurrencyCode, convert))
	}

	incoming, err := s.txnRepo.ListExecutedTransfersToAccount(ctx, accountID, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list incoming transfers for balance derivation: %w", err)
	}
	for i := range incoming {
		balance = balance.Add(ledger.DestinationEffect(incoming[i], account.CurrencyCode, convert))
	}

	return balance, nil
}

// RecomputeBalance derives the balance as of now and persists it as the
// account's cached figure. The cache is only ever written whole; nothing
// increments it.
func (s *balanceService) RecomputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	now := time.Now()
	balance, err := s.BalanceAsOf(ctx, accountID, now)
	if err != nil {
		return decimal.Zero, err
	}

	if err := s.accountRepo.UpdateAccountBalance(ctx, accountID, balance, now); err != nil {
		return decimal.Zero, fmt.Errorf("failed to persist recomputed balance: %w", err)
	}
	return balance, nil
}

// RecomputeBalances recomputes each listed account exactly once. The
// accounts are loaded as a batch first; ids that vanished under a cascading
// delete are skipped, not failed: recomputation is idempotent and
// re-triggerable, so the next caller with a live account wins.
func (s *balanceService) RecomputeBalances(ctx context.Context, accountIDs []string) error {
	seen := make(map[string]struct{}, len(accountIDs))
	unique := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		if _, done := seen[id]; done {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, unique)
	if err != nil {
		return fmt.Errorf("failed to load accounts for balance recompute: %w", err)
	}

	for _, id := range unique {
		if _, live := accounts[id]; !live {
			middleware.GetLoggerFromCtx(ctx).Info("skipping balance recompute for deleted account",
				slog.String("account_id", id))
			continue
		}
		if _, err := s.RecomputeBalance(ctx, id); err != nil {
			// Deleted between the batch load and the recompute.
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return err
		}
	}
	return nil
}
