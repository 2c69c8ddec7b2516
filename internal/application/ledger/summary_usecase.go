package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Obras-api/internal/application/dto"
	"github.com/jhoicas/Obras-api/internal/domain"
	"github.com/jhoicas/Obras-api/internal/domain/entity"
	ledgercore "github.com/jhoicas/Obras-api/internal/domain/ledger"
)

// SummaryUseCase cifras agregadas de órdenes, facturas y pagos (solo lectura).
type SummaryUseCase struct {
	repos Repos
	vat   *VATResolver
	now   func() time.Time
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(repos Repos, vat *VATResolver) *SummaryUseCase {
	return &SummaryUseCase{repos: repos, vat: vat, now: time.Now}
}

// SetClock reemplaza el reloj (define "hoy" para el monto vencido).
func (uc *SummaryUseCase) SetClock(now func() time.Time) { uc.now = now }

// SupplierSummary resumen de un proveedor en una obra.
func (uc *SummaryUseCase) SupplierSummary(ctx context.Context, projectID, supplierID string) (*dto.SupplierSummaryResponse, error) {
	supplier, err := uc.repos.Suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("obtener proveedor: %w", err)
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	in, err := uc.supplierInput(ctx, projectID, supplierID)
	if err != nil {
		return nil, err
	}
	s, err := ledgercore.ComputeSupplierSummary(in)
	if err != nil {
		return nil, err
	}
	return &dto.SupplierSummaryResponse{
		ProjectID:    projectID,
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		PartyKind:    string(supplier.Kind),
		Summary:      toSummaryResponse(s),
	}, nil
}

// ProjectSummary resumen de la obra completa y desglose por cada proveedor con movimiento.
func (uc *SummaryUseCase) ProjectSummary(ctx context.Context, projectID string) (*dto.ProjectSummaryResponse, error) {
	project, err := uc.repos.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("obtener obra: %w", err)
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	pos, err := uc.repos.PurchaseOrders.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes: %w", err)
	}
	grns, err := uc.repos.GRNs.ListByPurchaseOrders(ctx, poIDs(pos))
	if err != nil {
		return nil, fmt.Errorf("listar GRNs: %w", err)
	}
	invoices, err := uc.repos.Invoices.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	payments, err := uc.repos.Payments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listar pagos: %w", err)
	}
	vat, err := uc.vat.Default(ctx)
	if err != nil {
		return nil, err
	}
	today := uc.now()

	total, err := ledgercore.ComputeSupplierSummary(ledgercore.SummaryInput{
		PurchaseOrders:    values(pos),
		GRNs:              values(grns),
		Invoices:          values(invoices),
		Payments:          values(payments),
		DefaultVATPercent: vat,
		Today:             today,
	})
	if err != nil {
		return nil, err
	}

	bySupplier := groupBySupplier(values(pos), values(grns), values(invoices), values(payments))
	rows := make([]dto.SupplierSummaryResponse, 0, len(bySupplier))
	for supplierID, in := range bySupplier {
		in.DefaultVATPercent = vat
		in.Today = today
		s, err := ledgercore.ComputeSupplierSummary(in)
		if err != nil {
			return nil, err
		}
		row := dto.SupplierSummaryResponse{ProjectID: projectID, SupplierID: supplierID, Summary: toSummaryResponse(s)}
		if supplier, err := uc.repos.Suppliers.GetByID(ctx, supplierID); err == nil && supplier != nil {
			row.SupplierName = supplier.Name
			row.PartyKind = string(supplier.Kind)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SupplierName != rows[j].SupplierName {
			return rows[i].SupplierName < rows[j].SupplierName
		}
		return rows[i].SupplierID < rows[j].SupplierID
	})

	return &dto.ProjectSummaryResponse{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Summary:     toSummaryResponse(total),
		Suppliers:   rows,
	}, nil
}

// POAggregate valor con IVA, entregado y saldo LPO de una orden.
func (uc *SummaryUseCase) POAggregate(ctx context.Context, poID string) (*dto.POAggregateResponse, error) {
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
	vat, err := uc.vat.ForPurchaseOrder(ctx, po)
	if err != nil {
		return nil, err
	}
	agg, err := ledgercore.ComputePOAggregate(*po, values(grns), vat)
	if err != nil {
		return nil, err
	}
	return &dto.POAggregateResponse{
		PurchaseOrderID:   po.ID,
		LPONumber:         po.LPONumber,
		VATPercent:        vat,
		LPOValue:          agg.LPOValue,
		LPOValueWithVAT:   agg.LPOValueWithVAT,
		DeliveredBase:     agg.DeliveredBase,
		DeliveredWithVAT:  agg.DeliveredWithVAT,
		LPOBalanceWithVAT: agg.LPOBalanceWithVAT,
	}, nil
}

// supplierInput carga los registros de un proveedor en una obra.
func (uc *SummaryUseCase) supplierInput(ctx context.Context, projectID, supplierID string) (ledgercore.SummaryInput, error) {
	var in ledgercore.SummaryInput

	pos, err := uc.repos.PurchaseOrders.ListByProjectSupplier(ctx, projectID, supplierID)
	if err != nil {
		return in, fmt.Errorf("listar órdenes: %w", err)
	}
	grns, err := uc.repos.GRNs.ListByPurchaseOrders(ctx, poIDs(pos))
	if err != nil {
		return in, fmt.Errorf("listar GRNs: %w", err)
	}
	invoices, err := uc.repos.Invoices.ListByProjectSupplier(ctx, projectID, supplierID)
	if err != nil {
		return in, fmt.Errorf("listar facturas: %w", err)
	}
	payments, err := uc.repos.Payments.ListByProjectSupplier(ctx, projectID, supplierID)
	if err != nil {
		return in, fmt.Errorf("listar pagos: %w", err)
	}
	vat, err := uc.vat.Default(ctx)
	if err != nil {
		return in, err
	}

	in.PurchaseOrders = values(pos)
	in.GRNs = values(grns)
	in.Invoices = values(invoices)
	in.Payments = values(payments)
	in.DefaultVATPercent = vat
	in.Today = uc.now()
	return in, nil
}

func poIDs(pos []*entity.PurchaseOrder) []string {
	ids := make([]string, 0, len(pos))
	for _, po := range pos {
		ids = append(ids, po.ID)
	}
	return ids
}

// groupBySupplier reparte los registros de la obra por proveedor. Los GRNs siguen a su orden.
func groupBySupplier(pos []entity.PurchaseOrder, grns []entity.GRN, invoices []entity.Invoice, payments []entity.Payment) map[string]ledgercore.SummaryInput {
	out := make(map[string]ledgercore.SummaryInput)
	poSupplier := make(map[string]string, len(pos))
	for _, po := range pos {
		poSupplier[po.ID] = po.SupplierID
		in := out[po.SupplierID]
		in.PurchaseOrders = append(in.PurchaseOrders, po)
		out[po.SupplierID] = in
	}
	for _, g := range grns {
		sid := poSupplier[g.PurchaseOrderID]
		in := out[sid]
		in.GRNs = append(in.GRNs, g)
		out[sid] = in
	}
	for _, inv := range invoices {
		in := out[inv.SupplierID]
		in.Invoices = append(in.Invoices, inv)
		out[inv.SupplierID] = in
	}
	for _, p := range payments {
		in := out[p.SupplierID]
		in.Payments = append(in.Payments, p)
		out[p.SupplierID] = in
	}
	return out
}
