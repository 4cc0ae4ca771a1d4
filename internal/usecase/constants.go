package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds one ledger write, retries included.
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultStatsCacheTTL bounds how long a cached statistics snapshot is served.
	DefaultStatsCacheTTL = 5 * time.Minute
)

