package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// SettingsRepository configuración del sitio editable por el administrador.
type SettingsRepository interface {
	// GetDefaultVATPercent devuelve nil si el sitio no tiene IVA configurado.
	GetDefaultVATPercent(ctx context.Context) (*decimal.Decimal, error)
}
