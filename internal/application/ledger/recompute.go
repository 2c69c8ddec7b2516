package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
	ledgercore "github.com/jhoicas/Obras-api/internal/domain/ledger"
	"github.com/jhoicas/Obras-api/pkg/logger"
)

// RecomputeUseCase punto de entrada único para recalcular y persistir estados de facturas.
// Los casos de uso de facturas y pagos lo invocan dentro de su propia transacción.
type RecomputeUseCase struct {
	tx  TxRunner
	log *logger.Logger
}

// NewRecomputeUseCase construye el caso de uso.
func NewRecomputeUseCase(tx TxRunner, log *logger.Logger) *RecomputeUseCase {
	return &RecomputeUseCase{tx: tx, log: log.WithComponent("recompute")}
}

// RecomputeAndPersist recalcula el estado de las facturas indicadas en una transacción propia.
func (uc *RecomputeUseCase) RecomputeAndPersist(ctx context.Context, invoiceIDs []string) (map[string]entity.InvoiceStatus, error) {
	var statuses map[string]entity.InvoiceStatus
	err := uc.tx.RunLedger(ctx, func(repos Repos) error {
		var err error
		statuses, err = uc.InTx(ctx, repos, invoiceIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

// InTx recalcula con los repos de una transacción ya abierta.
// Solo escribe las facturas cuyo estado cambió; devuelve el estado de todas.
func (uc *RecomputeUseCase) InTx(ctx context.Context, repos Repos, invoiceIDs []string) (map[string]entity.InvoiceStatus, error) {
	ids := uniqueIDs(invoiceIDs)
	if len(ids) == 0 {
		return map[string]entity.InvoiceStatus{}, nil
	}

	invoices, err := repos.Invoices.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("recompute: cargar facturas: %w", err)
	}
	lines, err := repos.Payments.ListLinesByInvoiceIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("recompute: cargar líneas de pago: %w", err)
	}

	statuses, err := ledgercore.RecomputeStatuses(values(invoices), lines)
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		next := statuses[inv.ID]
		if inv.Status == next {
			continue
		}
		if err := repos.Invoices.UpdateStatus(ctx, inv.ID, next); err != nil {
			return nil, fmt.Errorf("recompute: guardar estado de %s: %w", inv.ID, err)
		}
		uc.log.Debug().
			Str("invoice_id", inv.ID).
			Str("from", string(inv.Status)).
			Str("to", string(next)).
			Msg("estado de factura actualizado")
	}
	return statuses, nil
}
