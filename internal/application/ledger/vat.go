package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
	ledgercore "github.com/jhoicas/Obras-api/internal/domain/ledger"
	"github.com/jhoicas/Obras-api/internal/domain/repository"
)

// VATResolver resuelve el IVA por defecto: primero la configuración del sitio, luego la de la app.
type VATResolver struct {
	settings repository.SettingsRepository
	fallback decimal.Decimal
}

// NewVATResolver construye el resolver. settings puede ser nil (solo se usa fallback).
func NewVATResolver(settings repository.SettingsRepository, fallback decimal.Decimal) *VATResolver {
	return &VATResolver{settings: settings, fallback: fallback}
}

// Default devuelve el IVA por defecto vigente.
func (r *VATResolver) Default(ctx context.Context) (decimal.Decimal, error) {
	if r.settings == nil {
		return r.fallback, nil
	}
	v, err := r.settings.GetDefaultVATPercent(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("vat: leer configuración: %w", err)
	}
	if v == nil || v.IsNegative() {
		return r.fallback, nil
	}
	return *v, nil
}

// ForPurchaseOrder IVA de la orden si lo tiene; si no (o sin orden) el IVA por defecto.
func (r *VATResolver) ForPurchaseOrder(ctx context.Context, po *entity.PurchaseOrder) (decimal.Decimal, error) {
	def, err := r.Default(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if po == nil {
		return def, nil
	}
	return ledgercore.ResolveVATPercent(po.VATPercent, def), nil
}
