package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/google/uuid"
)

// accountService provides business logic for accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionReader
	currencySvc portssvc.CurrencyReaderSvc
	balanceSvc  portssvc.BalanceSvcFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionReader, currencySvc portssvc.CurrencyReaderSvc, balanceSvc portssvc.BalanceSvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		currencySvc: currencySvc,
		balanceSvc:  balanceSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account. The cached balance
// starts at the initial balance; there is no transaction log to fold yet.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, fmt.Errorf("failed to validate account currency: %w", err)
	}
	if req.CreditLimit != nil && req.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Name:           req.Name,
		AccountType:    req.AccountType,
		CurrencyCode:   req.CurrencyCode,
		InitialBalance: req.InitialBalance,
		CreditLimit:    req.CreditLimit,
		Balance:        req.InitialBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account in service: %w", err)
	}
	return &account, nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account in service: %w", err)
	}
	return account, nil
}

// ListAccounts retrieves all accounts.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts in service: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount edits account details. An initial-balance edit triggers a
// whole recomputation of the cached balance, never an incremental patch.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account for update: %w", err)
	}

	initialBalanceChanged := false
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
		}
		account.CreditLimit = req.CreditLimit
	}
	if req.InitialBalance != nil && !req.InitialBalance.Equal(account.InitialBalance) {
		account.InitialBalance = *req.InitialBalance
		initialBalanceChanged = true
	}
	account.LastUpdatedAt = time.Now()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account in service: %w", err)
	}

	if initialBalanceChanged {
		balance, err := s.balanceSvc.RecomputeBalance(ctx, accountID)
		if err != nil {
			return nil, err
		}
		account.Balance = balance
	}
	return account, nil
}

// DeleteAccount removes an account; the schema cascades to its transactions.
// Transfer counterparts are recomputed afterwards so their incoming sides
// stop reflecting the deleted account's transfers. Deleting a missing
// account is a no-op.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load account for delete: %w", err)
	}

	// Collect counterpart accounts before the cascade removes the evidence.
	counterparts := make(map[string]struct{})
	transfers, err := s.txnRepo.ListExecutedByAccount(ctx, accountID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to list transactions before account delete: %w", err)
	}
	for i := range transfers {
		if transfers[i].DestinationAccountID != nil {
			counterparts[*transfers[i].DestinationAccountID] = struct{}{}
		}
	}
	incoming, err := s.txnRepo.ListExecutedTransfersToAccount(ctx, accountID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to list incoming transfers before account delete: %w", err)
	}
	for i := range incoming {
		counterparts[incoming[i].AccountID] = struct{}{}
	}
	delete(counterparts, account.AccountID)

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account in service: %w", err)
	}

	ids := make([]string, 0, len(counterparts))
	for id := range counterparts {
		ids = append(ids, id)
	}
	return s.balanceSvc.RecomputeBalances(ctx, ids)
}
