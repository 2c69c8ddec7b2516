package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obras-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

const settingDefaultVAT = "default_vat_percent"

// SettingsRepo configuración del sitio en la tabla clave/valor site_settings.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

func (r *SettingsRepo) GetDefaultVATPercent(ctx context.Context) (*decimal.Decimal, error) {
	var raw string
	err := r.q.QueryRow(ctx, `SELECT value FROM site_settings WHERE key = $1`, settingDefaultVAT).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default vat: %w", err)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("default vat %q: %w", raw, err)
	}
	return &v, nil
}

// SetDefaultVATPercent guarda el IVA del sitio; nil lo borra.
func (r *SettingsRepo) SetDefaultVATPercent(ctx context.Context, v *decimal.Decimal) error {
	if v == nil {
		if _, err := r.q.Exec(ctx, `DELETE FROM site_settings WHERE key = $1`, settingDefaultVAT); err != nil {
			return fmt.Errorf("delete default vat: %w", err)
		}
		return nil
	}
	query := `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, settingDefaultVAT, v.String()); err != nil {
		return fmt.Errorf("upsert default vat: %w", err)
	}
	return nil
}
