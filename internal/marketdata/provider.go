// Package marketdata retrieves daily OHLCV history for instruments.
package marketdata

import (
	"context"

	"github.com/wonny/stockbot/internal/contracts"
)

// Provider returns ordered OHLCV history for a symbol. An empty result means
// "no data" and is not an error; errors are reserved for transport and
// decode failures.
type Provider interface {
	DailyBars(ctx context.Context, ticker string) ([]contracts.Bar, error)
}
