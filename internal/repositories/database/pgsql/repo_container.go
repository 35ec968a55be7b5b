package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryContainer holds the pgx-backed implementations of every
// persistence port.
type RepositoryContainer struct {
	Account      *PgxAccountRepository
	Transaction  *PgxTransactionRepository
	Currency     *PgxCurrencyRepository
	ExchangeRate *PgxExchangeRateRepository
	Usage        *PgxUsageRepository
}

// NewRepositoryContainer builds all repositories over a shared pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		Account:      NewPgxAccountRepository(pool),
		Transaction:  NewPgxTransactionRepository(pool),
		Currency:     NewPgxCurrencyRepository(pool),
		ExchangeRate: NewPgxExchangeRateRepository(pool),
		Usage:        NewPgxUsageRepository(pool),
	}
}
