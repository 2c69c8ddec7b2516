package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obras-api/internal/application/dto"
	"github.com/jhoicas/Obras-api/internal/domain"
	"github.com/jhoicas/Obras-api/internal/domain/entity"
	ledgercore "github.com/jhoicas/Obras-api/internal/domain/ledger"
	"github.com/jhoicas/Obras-api/pkg/logger"
)

// PaymentUseCase registro de pagos a proveedores. Toda escritura recalcula, en la misma
// transacción, el estado de cada factura afectada (las de la versión anterior y la nueva).
type PaymentUseCase struct {
	tx        TxRunner
	repos     Repos
	vat       *VATResolver
	recompute *RecomputeUseCase
	log       *logger.Logger
	now       func() time.Time
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(tx TxRunner, repos Repos, vat *VATResolver, recompute *RecomputeUseCase, log *logger.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		tx:        tx,
		repos:     repos,
		vat:       vat,
		recompute: recompute,
		log:       log.WithComponent("payments"),
		now:       time.Now,
	}
}

// SetClock reemplaza el reloj.
func (uc *PaymentUseCase) SetClock(now func() time.Time) { uc.now = now }

// Create registra el pago y sus líneas.
func (uc *PaymentUseCase) Create(ctx context.Context, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	d, err := toPaymentDraft("", in)
	if err != nil {
		return nil, err
	}
	d.ID = uuid.New().String()

	now := uc.now()
	var saved entity.Payment
	var statuses map[string]entity.InvoiceStatus
	err = uc.tx.RunLedger(ctx, func(repos Repos) error {
		p, err := buildPayment(ctx, repos, d)
		if err != nil {
			return err
		}
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := repos.Payments.Create(ctx, &p); err != nil {
			return fmt.Errorf("crear pago: %w", err)
		}
		statuses, err = uc.recompute.InTx(ctx, repos, ledgercore.AffectedInvoiceIDs(nil, &p))
		if err != nil {
			return err
		}
		saved = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("payment_id", saved.ID).
		Str("method", string(saved.PaymentMethod)).
		Str("gross", saved.Gross().StringFixed(2)).
		Int("invoices", len(saved.Lines)).
		Msg("pago registrado")
	return toPaymentResponse(&saved, statuses), nil
}

// Update reemplaza el pago. Se recalculan también las facturas que salieron del pago.
func (uc *PaymentUseCase) Update(ctx context.Context, id string, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	d, err := toPaymentDraft(id, in)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var saved entity.Payment
	var statuses map[string]entity.InvoiceStatus
	err = uc.tx.RunLedger(ctx, func(repos Repos) error {
		before, err := repos.Payments.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener pago: %w", err)
		}
		if before == nil {
			return domain.ErrNotFound
		}
		p, err := buildPayment(ctx, repos, d)
		if err != nil {
			return err
		}
		p.CreatedAt = before.CreatedAt
		p.UpdatedAt = now
		if err := repos.Payments.Update(ctx, &p); err != nil {
			return fmt.Errorf("actualizar pago: %w", err)
		}
		statuses, err = uc.recompute.InTx(ctx, repos, ledgercore.AffectedInvoiceIDs(before, &p))
		if err != nil {
			return err
		}
		saved = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("payment_id", id).Int("recomputed", len(statuses)).Msg("pago actualizado")
	return toPaymentResponse(&saved, statuses), nil
}

// Delete elimina el pago y recalcula las facturas que cubría.
func (uc *PaymentUseCase) Delete(ctx context.Context, id string) (map[string]entity.InvoiceStatus, error) {
	var statuses map[string]entity.InvoiceStatus
	err := uc.tx.RunLedger(ctx, func(repos Repos) error {
		before, err := repos.Payments.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener pago: %w", err)
		}
		if before == nil {
			return domain.ErrNotFound
		}
		if err := repos.Payments.Delete(ctx, id); err != nil {
			return fmt.Errorf("eliminar pago: %w", err)
		}
		statuses, err = uc.recompute.InTx(ctx, repos, ledgercore.AffectedInvoiceIDs(before, nil))
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("payment_id", id).Int("recomputed", len(statuses)).Msg("pago eliminado")
	return statuses, nil
}

// SetLiquidated marca o desmarca un pago posfechado como cobrado. Dispara el mismo
// recálculo que una edición completa.
func (uc *PaymentUseCase) SetLiquidated(ctx context.Context, id string, liquidated bool) (*dto.PaymentResponse, error) {
	var saved *entity.Payment
	var statuses map[string]entity.InvoiceStatus
	err := uc.tx.RunLedger(ctx, func(repos Repos) error {
		p, err := repos.Payments.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener pago: %w", err)
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.PaymentMethod != entity.PaymentMethodPostDated {
			return ledgercore.NewValidationError(ledgercore.ReasonInvalidAmount, "liquidated",
				"solo los pagos posfechados se pueden marcar como liquidados")
		}
		if err := repos.Payments.SetLiquidated(ctx, id, liquidated); err != nil {
			return fmt.Errorf("marcar liquidación: %w", err)
		}
		p.Liquidated = liquidated
		statuses, err = uc.recompute.InTx(ctx, repos, p.InvoiceIDs())
		if err != nil {
			return err
		}
		saved = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("payment_id", id).Bool("liquidated", liquidated).Msg("liquidación de pago actualizada")
	return toPaymentResponse(saved, statuses), nil
}

// Get devuelve el pago con sus líneas.
func (uc *PaymentUseCase) Get(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := uc.repos.Payments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener pago: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPaymentResponse(p, nil), nil
}

// SuggestLine propone una línea de pago por el saldo pendiente de la factura, separada en
// base e IVA con el IVA de su orden, la de sus GRNs o el IVA por defecto.
func (uc *PaymentUseCase) SuggestLine(ctx context.Context, invoiceID string) (*dto.PaymentSuggestionResponse, error) {
	inv, err := uc.repos.Invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.repos.Payments.ListLinesByInvoiceIDs(ctx, []string{invoiceID})
	if err != nil {
		return nil, fmt.Errorf("obtener pagos de la factura: %w", err)
	}

	vat, err := invoiceVATPercent(ctx, uc.repos, uc.vat, inv)
	if err != nil {
		return nil, err
	}

	s := ledgercore.SuggestPaymentLine(*inv, lines, vat)
	return &dto.PaymentSuggestionResponse{
		InvoiceID:     inv.ID,
		Remaining:     decimal.Max(decimal.Zero, inv.TotalAmount.Sub(ledgercore.TotalPaid(lines))),
		PaymentAmount: s.PaymentAmount,
		VATAmount:     s.VATAmount,
	}, nil
}

// buildPayment carga las facturas cubiertas y sus pagos previos, valida y arma el pago con IDs de línea.
func buildPayment(ctx context.Context, repos Repos, d ledgercore.PaymentDraft) (entity.Payment, error) {
	ids := make([]string, 0, len(d.Lines))
	for _, l := range d.Lines {
		ids = append(ids, l.InvoiceID)
	}
	ids = uniqueIDs(ids)

	var invoices []entity.Invoice
	var existing []entity.PaymentInvoice
	if len(ids) > 0 {
		found, err := repos.Invoices.ListByIDs(ctx, ids)
		if err != nil {
			return entity.Payment{}, fmt.Errorf("cargar facturas del pago: %w", err)
		}
		invoices = values(found)
		existing, err = repos.Payments.ListLinesByInvoiceIDs(ctx, ids)
		if err != nil {
			return entity.Payment{}, fmt.Errorf("cargar pagos previos: %w", err)
		}
	}

	p, err := ledgercore.BuildPayment(d, invoices, existing)
	if err != nil {
		return entity.Payment{}, err
	}
	for i := range p.Lines {
		p.Lines[i].ID = uuid.New().String()
	}
	return p, nil
}
