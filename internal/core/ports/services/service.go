package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
// The engine holds no process-wide mutable state: every collaborator is
// injected here.
type ServiceContainer struct {
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Account      AccountSvcFacade
	Balance      BalanceSvcFacade
	Transaction  TransactionSvcFacade
}
