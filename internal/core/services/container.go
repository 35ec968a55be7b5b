package services

import (
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/platform/config"
)

// Repositories bundles the persistence dependencies the services need.
type Repositories struct {
	Account      portsrepo.AccountRepositoryFacade
	Transaction  portsrepo.TransactionRepositoryFacade
	Currency     portsrepo.CurrencyRepository
	ExchangeRate portsrepo.ExchangeRateRepository
}

// Collaborators bundles the external collaborators injected into the core.
type Collaborators struct {
	Reminders portssvc.ReminderScheduler
	Usage     portssvc.UsageTracker
}

// NewServiceContainer wires the service graph. The engine holds no
// process-wide mutable state: everything is dependency-injected here.
func NewServiceContainer(cfg *config.Config, repos Repositories, collab Collaborators) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.Currency)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRate, container.Currency)
	container.Balance = NewBalanceService(repos.Account, repos.Transaction, container.ExchangeRate)
	container.Account = NewAccountService(repos.Account, repos.Transaction, container.Currency, container.Balance)
	container.Transaction = NewTransactionService(
		repos.Transaction,
		repos.Account,
		container.ExchangeRate,
		container.Balance,
		collab.Reminders,
		collab.Usage,
		cfg.RecurrenceHorizonMonths,
	)

	return container
}
