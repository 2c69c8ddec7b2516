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

// InvoiceUseCase alta, edición, baja y consulta de facturas de proveedor.
type InvoiceUseCase struct {
	tx        TxRunner
	repos     Repos
	vat       *VATResolver
	recompute *RecomputeUseCase
	log       *logger.Logger
	now       func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. repos se usan para lecturas fuera de transacción.
func NewInvoiceUseCase(tx TxRunner, repos Repos, vat *VATResolver, recompute *RecomputeUseCase, log *logger.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{
		tx:        tx,
		repos:     repos,
		vat:       vat,
		recompute: recompute,
		log:       log.WithComponent("invoices"),
		now:       time.Now,
	}
}

// SetClock reemplaza el reloj (tests y CLI con fecha de corte).
func (uc *InvoiceUseCase) SetClock(now func() time.Time) { uc.now = now }

// Preview calcula los montos del borrador aplicando todas las reglas, sin persistir.
// editingID excluye la propia factura de las reglas de unicidad al editar.
func (uc *InvoiceUseCase) Preview(ctx context.Context, editingID string, in dto.InvoiceRequest) (*dto.InvoicePreviewResponse, error) {
	d, err := toInvoiceDraft(editingID, in)
	if err != nil {
		return nil, err
	}
	inv, vat, err := uc.build(ctx, uc.repos, d)
	if err != nil {
		return nil, err
	}
	return &dto.InvoicePreviewResponse{
		InvoiceAmount: inv.InvoiceAmount,
		Deductions:    toDeductionsDTO(invoiceDeductions(&inv)),
		NetAmount:     inv.NetAmount,
		VATPercent:    vat,
		VATAmount:     inv.VATAmount,
		TotalAmount:   inv.TotalAmount,
	}, nil
}

// Create valida, calcula y guarda la factura con sus GRNs/change orders y su estado, en una transacción.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	d, err := toInvoiceDraft("", in)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var saved entity.Invoice
	err = uc.tx.RunLedger(ctx, func(repos Repos) error {
		inv, _, err := uc.build(ctx, repos, d)
		if err != nil {
			return err
		}
		inv.ID = uuid.New().String()
		inv.CreatedAt = now
		inv.UpdatedAt = now
		if err := repos.Invoices.Create(ctx, &inv); err != nil {
			return fmt.Errorf("crear factura: %w", err)
		}
		statuses, err := uc.recompute.InTx(ctx, repos, []string{inv.ID})
		if err != nil {
			return err
		}
		inv.Status = statuses[inv.ID]
		saved = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", saved.ID).
		Str("invoice_number", saved.InvoiceNumber).
		Str("payment_type", string(saved.PaymentType)).
		Str("total", saved.TotalAmount.StringFixed(2)).
		Msg("factura creada")
	resp := toInvoiceResponse(&saved, nil, now)
	return &resp, nil
}

// Update reemplaza la factura. Los montos se recalculan y el estado se vuelve a derivar
// de los pagos existentes; el nuevo total no puede quedar por debajo de lo pagado.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	d, err := toInvoiceDraft(id, in)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var saved entity.Invoice
	var lines []entity.PaymentInvoice
	err = uc.tx.RunLedger(ctx, func(repos Repos) error {
		existing, err := repos.Invoices.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener factura: %w", err)
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		lines, err = repos.Payments.ListLinesByInvoiceIDs(ctx, []string{id})
		if err != nil {
			return fmt.Errorf("obtener pagos de la factura: %w", err)
		}
		if len(lines) > 0 && (existing.ProjectID != d.ProjectID || existing.SupplierID != d.SupplierID) {
			return fmt.Errorf("%w: la factura tiene pagos; no se puede cambiar la obra ni el proveedor", domain.ErrConflict)
		}

		inv, _, err := uc.build(ctx, repos, d)
		if err != nil {
			return err
		}
		if err := ledgercore.ValidateInvoiceTotal(inv, lines); err != nil {
			return err
		}
		inv.Status = existing.Status
		inv.CreatedAt = existing.CreatedAt
		inv.UpdatedAt = now
		if err := repos.Invoices.Update(ctx, &inv); err != nil {
			return fmt.Errorf("actualizar factura: %w", err)
		}
		statuses, err := uc.recompute.InTx(ctx, repos, []string{id})
		if err != nil {
			return err
		}
		inv.Status = statuses[id]
		saved = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("invoice_id", id).Str("status", string(saved.Status)).Msg("factura actualizada")
	resp := toInvoiceResponse(&saved, lines, now)
	return &resp, nil
}

// Delete elimina la factura. Una factura con pagos aplicados no se puede eliminar.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	err := uc.tx.RunLedger(ctx, func(repos Repos) error {
		existing, err := repos.Invoices.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener factura: %w", err)
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		lines, err := repos.Payments.ListLinesByInvoiceIDs(ctx, []string{id})
		if err != nil {
			return fmt.Errorf("obtener pagos de la factura: %w", err)
		}
		if len(lines) > 0 {
			return fmt.Errorf("%w: la factura %s tiene %d pago(s) aplicados", domain.ErrConflict, existing.InvoiceNumber, len(lines))
		}
		if err := repos.Invoices.Delete(ctx, id); err != nil {
			return fmt.Errorf("eliminar factura: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("invoice_id", id).Msg("factura eliminada")
	return nil
}

// Get devuelve la factura con pagado, saldo y días al vencimiento.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.repos.Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.repos.Payments.ListLinesByInvoiceIDs(ctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("obtener pagos de la factura: %w", err)
	}
	resp := toInvoiceResponse(inv, lines, uc.now())
	return &resp, nil
}

// ListByProject lista las facturas de una obra, paginadas en el orden del repositorio.
func (uc *InvoiceUseCase) ListByProject(ctx context.Context, projectID string, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	invoices, err := uc.repos.Invoices.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}

	out := &dto.InvoiceListResponse{Items: []dto.InvoiceResponse{}, Limit: page.Limit, Offset: page.Offset, Total: len(invoices)}
	if page.Offset >= len(invoices) {
		return out, nil
	}
	end := min(page.Offset+page.Limit, len(invoices))
	window := invoices[page.Offset:end]

	ids := make([]string, 0, len(window))
	for _, inv := range window {
		ids = append(ids, inv.ID)
	}
	lines, err := uc.repos.Payments.ListLinesByInvoiceIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("obtener pagos: %w", err)
	}
	byInvoice := ledgercore.LinesByInvoice(lines)
	today := uc.now()
	for _, inv := range window {
		out.Items = append(out.Items, toInvoiceResponse(inv, byInvoice[inv.ID], today))
	}
	return out, nil
}

// AvailableGRNs GRNs de la orden que aún se pueden facturar. editingInvoiceID conserva los
// GRNs de la factura que se está editando.
func (uc *InvoiceUseCase) AvailableGRNs(ctx context.Context, poID, editingInvoiceID string) ([]dto.GRNResponse, error) {
	po, err := uc.repos.PurchaseOrders.GetByID(ctx, poID)
	if err != nil {
		return nil, fmt.Errorf("obtener orden: %w", err)
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	grns, err := uc.repos.GRNs.ListByPurchaseOrders(ctx, []string{po.ID})
	if err != nil {
		return nil, fmt.Errorf("listar GRNs: %w", err)
	}
	invoices, err := uc.repos.Invoices.ListByProject(ctx, po.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}

	available := ledgercore.AvailableGRNs(values(grns), values(invoices), editingInvoiceID)
	out := make([]dto.GRNResponse, 0, len(available))
	for _, g := range available {
		out = append(out, toGRNResponse(g))
	}
	return out, nil
}

// build completa el tipo de contraparte, carga el contexto, resuelve el IVA y arma la factura.
func (uc *InvoiceUseCase) build(ctx context.Context, repos Repos, d ledgercore.InvoiceDraft) (entity.Invoice, decimal.Decimal, error) {
	if d.PartyKind == "" && d.SupplierID != "" {
		supplier, err := repos.Suppliers.GetByID(ctx, d.SupplierID)
		if err != nil {
			return entity.Invoice{}, decimal.Zero, fmt.Errorf("obtener proveedor: %w", err)
		}
		if supplier == nil {
			return entity.Invoice{}, decimal.Zero, ledgercore.NewValidationError(ledgercore.ReasonForeignReference,
				"supplier_id", "proveedor %s no encontrado", d.SupplierID)
		}
		d.PartyKind = supplier.Kind
	}
	ic, err := loadInvoiceContext(ctx, repos, d)
	if err != nil {
		return entity.Invoice{}, decimal.Zero, err
	}
	def, err := uc.vat.Default(ctx)
	if err != nil {
		return entity.Invoice{}, decimal.Zero, err
	}
	vat, err := ledgercore.InvoiceVATPercent(d, ic, def)
	if err != nil {
		return entity.Invoice{}, decimal.Zero, err
	}
	inv, err := ledgercore.BuildInvoice(d, ic, vat)
	if err != nil {
		return entity.Invoice{}, decimal.Zero, err
	}
	return inv, vat, nil
}

// loadInvoiceContext carga los registros que las reglas de factura consultan.
func loadInvoiceContext(ctx context.Context, repos Repos, d ledgercore.InvoiceDraft) (ledgercore.InvoiceContext, error) {
	var ic ledgercore.InvoiceContext

	if d.PurchaseOrderID != "" {
		po, err := repos.PurchaseOrders.GetByID(ctx, d.PurchaseOrderID)
		if err != nil {
			return ic, fmt.Errorf("obtener orden: %w", err)
		}
		ic.PurchaseOrder = po
		if po != nil {
			cos, err := repos.ChangeOrders.ListByPurchaseOrder(ctx, po.ID)
			if err != nil {
				return ic, fmt.Errorf("listar change orders: %w", err)
			}
			ic.ChangeOrders = values(cos)
		}
	}

	if d.ProjectID != "" && d.SupplierID != "" {
		pos, grns, err := loadSupplierGRNs(ctx, repos, d.ProjectID, d.SupplierID)
		if err != nil {
			return ic, err
		}
		ic.PurchaseOrders = pos
		ic.GRNs = grns
	}

	if d.ProjectID != "" {
		invoices, err := repos.Invoices.ListByProject(ctx, d.ProjectID)
		if err != nil {
			return ic, fmt.Errorf("listar facturas de la obra: %w", err)
		}
		ic.ProjectInvoices = values(invoices)
	}
	if d.SupplierID != "" {
		invoices, err := repos.Invoices.ListBySupplier(ctx, d.SupplierID)
		if err != nil {
			return ic, fmt.Errorf("listar facturas del proveedor: %w", err)
		}
		ic.SupplierInvoices = values(invoices)
	}
	return ic, nil
}

// loadSupplierGRNs órdenes del proveedor en la obra y sus GRNs.
func loadSupplierGRNs(ctx context.Context, repos Repos, projectID, supplierID string) ([]entity.PurchaseOrder, []entity.GRN, error) {
	pos, err := repos.PurchaseOrders.ListByProjectSupplier(ctx, projectID, supplierID)
	if err != nil {
		return nil, nil, fmt.Errorf("listar órdenes: %w", err)
	}
	poIDs := make([]string, 0, len(pos))
	for _, po := range pos {
		poIDs = append(poIDs, po.ID)
	}
	grns, err := repos.GRNs.ListByPurchaseOrders(ctx, poIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("listar GRNs: %w", err)
	}
	return values(pos), values(grns), nil
}

// invoiceVATPercent IVA con el que se calculó una factura guardada.
func invoiceVATPercent(ctx context.Context, repos Repos, vat *VATResolver, inv *entity.Invoice) (decimal.Decimal, error) {
	def, err := vat.Default(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	d := ledgercore.InvoiceDraft{PurchaseOrderID: inv.PurchaseOrderID, GRNIDs: inv.GRNIDs}
	var ic ledgercore.InvoiceContext
	if inv.PurchaseOrderID != "" {
		if ic.PurchaseOrder, err = repos.PurchaseOrders.GetByID(ctx, inv.PurchaseOrderID); err != nil {
			return decimal.Zero, fmt.Errorf("obtener orden: %w", err)
		}
	} else if len(inv.GRNIDs) > 0 {
		if ic.PurchaseOrders, ic.GRNs, err = loadSupplierGRNs(ctx, repos, inv.ProjectID, inv.SupplierID); err != nil {
			return decimal.Zero, err
		}
	}
	return ledgercore.InvoiceVATPercent(d, ic, def)
}
