package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obras-api/internal/application/dto"
	appledger "github.com/jhoicas/Obras-api/internal/application/ledger"
	"github.com/jhoicas/Obras-api/internal/domain"
	"github.com/jhoicas/Obras-api/internal/domain/entity"
	ledgercore "github.com/jhoicas/Obras-api/internal/domain/ledger"
	"github.com/jhoicas/Obras-api/internal/infrastructure/memory"
	"github.com/jhoicas/Obras-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func money(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, dec(want).StringFixed(2), got.StringFixed(2))
}

type fixture struct {
	store     *memory.Store
	invoices  *appledger.InvoiceUseCase
	payments  *appledger.PaymentUseCase
	summary   *appledger.SummaryUseCase
	recompute *appledger.RecomputeUseCase
	ctx       context.Context
}

// newFixture obra p1 con un proveedor de materiales (s1, orden po1 con GRNs g1 y g2)
// y un subcontratista (s2, orden po2). Hoy es 2024-03-10.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()

	require.NoError(t, repos.Projects.Create(ctx, &entity.Project{ID: "p1", Code: "OB-01", Name: "Torre Norte"}))
	require.NoError(t, repos.Suppliers.Create(ctx, &entity.Supplier{ID: "s1", Name: "Cementos SA", Kind: entity.PartySupplier}))
	require.NoError(t, repos.Suppliers.Create(ctx, &entity.Supplier{ID: "s2", Name: "Montajes Ltda", Kind: entity.PartySubcontractor}))
	require.NoError(t, repos.PurchaseOrders.Create(ctx, &entity.PurchaseOrder{
		ID: "po1", ProjectID: "p1", SupplierID: "s1", LPONumber: "LPO-1", LPODate: day("2024-01-05"), LPOValue: dec("10000"),
	}))
	require.NoError(t, repos.PurchaseOrders.Create(ctx, &entity.PurchaseOrder{
		ID: "po2", ProjectID: "p1", SupplierID: "s2", LPONumber: "LPO-2", LPODate: day("2024-01-06"), LPOValue: dec("50000"),
	}))
	require.NoError(t, repos.GRNs.Create(ctx, &entity.GRN{
		ID: "g1", PurchaseOrderID: "po1", GRNRefNo: "GRN-1", GRNDate: day("2024-01-20"), DeliveredAmount: dec("1000"),
	}))
	require.NoError(t, repos.GRNs.Create(ctx, &entity.GRN{
		ID: "g2", PurchaseOrderID: "po1", GRNRefNo: "GRN-2", GRNDate: day("2024-01-25"), DeliveredAmount: dec("2000"),
	}))

	log := logger.Nop()
	clock := func() time.Time { return day("2024-03-10") }
	vat := appledger.NewVATResolver(store.Settings(), ledgercore.DefaultVATPercent)
	recompute := appledger.NewRecomputeUseCase(store, log)

	invoices := appledger.NewInvoiceUseCase(store, repos, vat, recompute, log)
	invoices.SetClock(clock)
	payments := appledger.NewPaymentUseCase(store, repos, vat, recompute, log)
	payments.SetClock(clock)
	summary := appledger.NewSummaryUseCase(repos, vat)
	summary.SetClock(clock)

	return &fixture{store: store, invoices: invoices, payments: payments, summary: summary, recompute: recompute, ctx: ctx}
}

func (f *fixture) progressInvoice(t *testing.T, number string, grnIDs ...string) *dto.InvoiceResponse {
	t.Helper()
	resp, err := f.invoices.Create(f.ctx, dto.InvoiceRequest{
		ProjectID:       "p1",
		SupplierID:      "s1",
		InvoiceNumber:   number,
		InvoiceDate:     "2024-02-01",
		DueDate:         "2024-03-01",
		PaymentType:     "ProgressPayment",
		PurchaseOrderID: "po1",
		GRNIDs:          grnIDs,
	})
	require.NoError(t, err)
	return resp
}

func currentPayment(invoiceID, amount, vat string) dto.PaymentRequest {
	return dto.PaymentRequest{
		ProjectID:     "p1",
		SupplierID:    "s1",
		PaymentMethod: "CurrentDated",
		PaymentDate:   "2024-02-15",
		Lines:         []dto.PaymentLineRequest{{InvoiceID: invoiceID, PaymentAmount: dec(amount), VATAmount: dec(vat)}},
	}
}

func (f *fixture) status(t *testing.T, invoiceID string) entity.InvoiceStatus {
	t.Helper()
	inv, err := f.store.Repos().Invoices.GetByID(f.ctx, invoiceID)
	require.NoError(t, err)
	require.NotNil(t, inv)
	return inv.Status
}

func TestInvoiceUseCase_CrearAvanceProveedor(t *testing.T) {
	f := newFixture(t)

	inv := f.progressInvoice(t, "F-001", "g1", "g2")

	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, "supplier", inv.PartyKind)
	money(t, "3000", inv.InvoiceAmount)
	money(t, "150", inv.VATAmount)
	money(t, "3150", inv.TotalAmount)
	money(t, "3150", inv.Balance)
	assert.Equal(t, string(entity.InvoiceStatusUnpaid), inv.Status)
	require.NotNil(t, inv.DueDays)
	assert.Equal(t, -9, *inv.DueDays)
}

func TestInvoiceUseCase_GRNNoSeFacturaDosVeces(t *testing.T) {
	f := newFixture(t)
	f.progressInvoice(t, "F-001", "g1")

	_, err := f.invoices.Create(f.ctx, dto.InvoiceRequest{
		ProjectID: "p1", SupplierID: "s1", InvoiceNumber: "F-002", InvoiceDate: "2024-02-02",
		PaymentType: "ProgressPayment", PurchaseOrderID: "po1", GRNIDs: []string{"g1"},
	})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	verr, ok := ledgercore.AsValidationError(err)
	require.True(t, ok)
	assert.True(t, verr.Has(ledgercore.ReasonGRNAlreadyInvoiced))

	grns, err := f.invoices.AvailableGRNs(f.ctx, "po1", "")
	require.NoError(t, err)
	require.Len(t, grns, 1)
	assert.Equal(t, "g2", grns[0].ID)
}

func TestInvoiceUseCase_NumeroDuplicadoPorProveedor(t *testing.T) {
	f := newFixture(t)
	f.progressInvoice(t, "F-001", "g1")

	_, err := f.invoices.Create(f.ctx, dto.InvoiceRequest{
		ProjectID: "p1", SupplierID: "s1", InvoiceNumber: "f-001", InvoiceDate: "2024-02-02",
		PaymentType: "ProgressPayment", PurchaseOrderID: "po1", GRNIDs: []string{"g2"},
	})
	verr, ok := ledgercore.AsValidationError(err)
	require.True(t, ok)
	assert.True(t, verr.Has(ledgercore.ReasonDuplicateInvoiceNumber))
}

func TestInvoiceUseCase_PreviewAvanceSubcontrato(t *testing.T) {
	f := newFixture(t)

	preview, err := f.invoices.Preview(f.ctx, "", dto.InvoiceRequest{
		ProjectID: "p1", SupplierID: "s2", InvoiceNumber: "SC-1", InvoiceDate: "2024-02-10",
		PaymentType: "ProgressPayment", PurchaseOrderID: "po2", BaseAmount: dec("10000"),
	})
	require.NoError(t, err)

	money(t, "10000", preview.InvoiceAmount)
	money(t, "1000", preview.Deductions.AdvanceRecovery)
	money(t, "1000", preview.Deductions.Retention)
	money(t, "8000", preview.NetAmount)
	money(t, "400", preview.VATAmount)
	money(t, "8400", preview.TotalAmount)

	list, err := f.invoices.ListByProject(f.ctx, "p1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestInvoiceUseCase_FechaInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.invoices.Create(f.ctx, dto.InvoiceRequest{
		ProjectID: "p1", SupplierID: "s1", InvoiceNumber: "F-9", InvoiceDate: "01/02/2024",
		PaymentType: "ProgressPayment", GRNIDs: []string{"g1"},
	})
	verr, ok := ledgercore.AsValidationError(err)
	require.True(t, ok)
	assert.True(t, verr.Has(ledgercore.ReasonInvalidDate))
}

// withVATOrders agrega a s1 las órdenes po3 (IVA 10, GRN g3 por 1,000) y po4 (IVA 10, GRN g4 por 500).
func (f *fixture) withVATOrders(t *testing.T) {
	t.Helper()
	repos := f.store.Repos()
	ten := dec("10")
	for _, po := range []*entity.PurchaseOrder{
		{ID: "po3", ProjectID: "p1", SupplierID: "s1", LPONumber: "LPO-3", LPODate: day("2024-01-07"), LPOValue: dec("5000"), VATPercent: &ten},
		{ID: "po4", ProjectID: "p1", SupplierID: "s1", LPONumber: "LPO-4", LPODate: day("2024-01-08"), LPOValue: dec("5000"), VATPercent: &ten},
	} {
		require.NoError(t, repos.PurchaseOrders.Create(f.ctx, po))
	}
	require.NoError(t, repos.GRNs.Create(f.ctx, &entity.GRN{
		ID: "g3", PurchaseOrderID: "po3", GRNRefNo: "GRN-3", GRNDate: day("2024-01-26"), DeliveredAmount: dec("1000"),
	}))
	require.NoError(t, repos.GRNs.Create(f.ctx, &entity.GRN{
		ID: "g4", PurchaseOrderID: "po4", GRNRefNo: "GRN-4", GRNDate: day("2024-01-27"), DeliveredAmount: dec("500"),
	}))
}

func TestInvoiceUseCase_IVADeLaOrden(t *testing.T) {
	tests := []struct {
		name       string
		poID       string
		grnIDs     []string
		vatPercent string
		vat        string
		total      string
		mixed      bool
	}{
		{name: "con orden", poID: "po3", grnIDs: []string{"g3"}, vatPercent: "10", vat: "100", total: "1100"},
		{name: "sin orden toma la de los GRNs", grnIDs: []string{"g3"}, vatPercent: "10", vat: "100", total: "1100"},
		{name: "sin orden y orden sin IVA propio", grnIDs: []string{"g1"}, vatPercent: "5", vat: "50", total: "1050"},
		{name: "dos órdenes con el mismo IVA", grnIDs: []string{"g3", "g4"}, vatPercent: "10", vat: "150", total: "1650"},
		{name: "órdenes con IVA distinto", grnIDs: []string{"g1", "g3"}, mixed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.withVATOrders(t)

			preview, err := f.invoices.Preview(f.ctx, "", dto.InvoiceRequest{
				ProjectID: "p1", SupplierID: "s1", InvoiceNumber: "F-IVA", InvoiceDate: "2024-02-01",
				PaymentType: "ProgressPayment", PurchaseOrderID: tt.poID, GRNIDs: tt.grnIDs,
			})
			if tt.mixed {
				require.ErrorIs(t, err, domain.ErrInvalidInput)
				verr, ok := ledgercore.AsValidationError(err)
				require.True(t, ok)
				assert.True(t, verr.Has(ledgercore.ReasonMixedVATRates))
				return
			}
			require.NoError(t, err)
			money(t, tt.vatPercent, preview.VATPercent)
			money(t, tt.vat, preview.VATAmount)
			money(t, tt.total, preview.TotalAmount)
		})
	}
}

func TestPaymentUseCase_SugerenciaConIVADeLosGRNs(t *testing.T) {
	f := newFixture(t)
	f.withVATOrders(t)

	inv, err := f.invoices.Create(f.ctx, dto.InvoiceRequest{
		ProjectID: "p1", SupplierID: "s1", InvoiceNumber: "F-IVA", InvoiceDate: "2024-02-01",
		PaymentType: "ProgressPayment", GRNIDs: []string{"g3"},
	})
	require.NoError(t, err)
	money(t, "1100", inv.TotalAmount)

	suggestion, err := f.payments.SuggestLine(f.ctx, inv.ID)
	require.NoError(t, err)
	money(t, "1100", suggestion.Remaining)
	money(t, "1000", suggestion.PaymentAmount)
	money(t, "100", suggestion.VATAmount)
}

func TestPaymentUseCase_ParcialLuegoPagada(t *testing.T) {
	f := newFixture(t)
	inv := f.progressInvoice(t, "F-001", "g1") // 1,050 con IVA

	first, err := f.payments.Create(f.ctx, currentPayment(inv.ID, "500", "25"))
	require.NoError(t, err)
	assert.Equal(t, string(entity.InvoiceStatusPartiallyPaid), first.InvoiceStatuses[inv.ID])
	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, f.status(t, inv.ID))

	suggestion, err := f.payments.SuggestLine(f.ctx, inv.ID)
	require.NoError(t, err)
	money(t, "525", suggestion.Remaining)
	money(t, "500", suggestion.PaymentAmount)
	money(t, "25", suggestion.VATAmount)

	second, err := f.payments.Create(f.ctx, currentPayment(inv.ID, "500", "25"))
	require.NoError(t, err)
	assert.Equal(t, string(entity.InvoiceStatusPaid), second.InvoiceStatuses[inv.ID])

	got, err := f.invoices.Get(f.ctx, inv.ID)
	require.NoError(t, err)
	money(t, "1050", got.TotalPaid)
	money(t, "0", got.Balance)
	require.NotNil(t, got.DueDays)
	assert.Equal(t, 15, *got.DueDays)
}

func TestPaymentUseCase_SobrepagoRevierte(t *testing.T) {
	f := newFixture(t)
	inv := f.progressInvoice(t, "F-001", "g1")
	_, err := f.payments.Create(f.ctx, currentPayment(inv.ID, "1000", "50"))
	require.NoError(t, err)

	_, err = f.payments.Create(f.ctx, currentPayment(inv.ID, "10", "0.50"))
	verr, ok := ledgercore.AsValidationError(err)
	require.True(t, ok)
	assert.True(t, verr.Has(ledgercore.ReasonPaymentExceedsInvoice))

	payments, err := f.store.Repos().Payments.ListByProject(f.ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestPaymentUseCase_EditarRecalculaFacturaRetirada(t *testing.T) {
	f := newFixture(t)
	a := f.progressInvoice(t, "F-001", "g1")
	b := f.progressInvoice(t, "F-002", "g2")

	p, err := f.payments.Create(f.ctx, currentPayment(a.ID, "1000", "50"))
	require.NoError(t, err)
	require.Equal(t, entity.InvoiceStatusPaid, f.status(t, a.ID))

	updated, err := f.payments.Update(f.ctx, p.ID, currentPayment(b.ID, "1000", "50"))
	require.NoError(t, err)

	assert.Equal(t, string(entity.InvoiceStatusUnpaid), updated.InvoiceStatuses[a.ID])
	assert.Equal(t, string(entity.InvoiceStatusPartiallyPaid), updated.InvoiceStatuses[b.ID])
	assert.Equal(t, entity.InvoiceStatusUnpaid, f.status(t, a.ID))
	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, f.status(t, b.ID))
}

func TestPaymentUseCase_EditarExcluyeLineasPropias(t *testing.T) {
	f := newFixture(t)
	inv := f.progressInvoice(t, "F-001", "g1")

	p, err := f.payments.Create(f.ctx, currentPayment(inv.ID, "1000", "50"))
	require.NoError(t, err)

	// reescribir el mismo pago por el total no cuenta sus líneas anteriores
	_, err = f.payments.Update(f.ctx, p.ID, currentPayment(inv.ID, "1000", "50"))
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, f.status(t, inv.ID))
}

func TestPaymentUseCase_EliminarRecalcula(t *testing.T) {
	f := newFixture(t)
	inv := f.progressInvoice(t, "F-001", "g1")
	p, err := f.payments.Create(f.ctx, currentPayment(inv.ID, "1000", "50"))
	require.NoError(t, err)

	statuses, err := f.payments.Delete(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusUnpaid, statuses[inv.ID])
	assert.Equal(t, entity.InvoiceStatusUnpaid, f.status(t, inv.ID))

	_, err = f.payments.Delete(f.ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentUseCase_MarcarLiquidado(t *testing.T) {
	f := newFixture(t)
	inv := f.progressInvoice(t, "F-001", "g1")

	pdc, err := f.payments.Create(f.ctx, dto.PaymentRequest{
		ProjectID: "p1", SupplierID: "s1", PaymentMethod: "PostDated", InstrumentType: "PDC",
		PaymentDate: "2024-02-20", DueDate: "2024-04-20",
		Lines: []dto.PaymentLineRequest{{InvoiceID: inv.ID, PaymentAmount: dec("1000"), VATAmount: dec("50")}},
	})
	require.NoError(t, err)
	assert.False(t, pdc.Liquidated)

	s, err := f.summary.SupplierSummary(f.ctx, "p1", "s1")
	require.NoError(t, err)
	money(t, "0", s.Summary.TotalPaid)
	money(t, "1050", s.Summary.CommittedPayments)

	_, err = f.payments.SetLiquidated(f.ctx, pdc.ID, true)
	require.NoError(t, err)

	s, err = f.summary.SupplierSummary(f.ctx, "p1", "s1")
	require.NoError(t, err)
	money(t, "1050", s.Summary.TotalPaid)
	money(t, "0", s.Summary.CommittedPayments)
}

func TestPaymentUseCase_LiquidadoSoloPosfechados(t *testing.T) {
	f := newFixture(t)
	inv := f.progressInvoice(t, "F-001", "g1")
	p, err := f.payments.Create(f.ctx, currentPayment(inv.ID, "500", "25"))
	require.NoError(t, err)

	_, err = f.payments.SetLiquidated(f.ctx, p.ID, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceUseCase_EliminarConPagosEsConflicto(t *testing.T) {
	f := newFixture(t)
	inv := f.progressInvoice(t, "F-001", "g1")
	p, err := f.payments.Create(f.ctx, currentPayment(inv.ID, "500", "25"))
	require.NoError(t, err)

	err = f.invoices.Delete(f.ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.payments.Delete(f.ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, f.invoices.Delete(f.ctx, inv.ID))

	_, err = f.invoices.Get(f.ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceUseCase_EditarRecalculaEstado(t *testing.T) {
	f := newFixture(t)
	inv := f.progressInvoice(t, "F-001", "g1")
	_, err := f.payments.Create(f.ctx, currentPayment(inv.ID, "1000", "50"))
	require.NoError(t, err)
	require.Equal(t, entity.InvoiceStatusPaid, f.status(t, inv.ID))

	// al sumar g2 el total sube a 3,150 y la factura queda parcialmente pagada
	updated, err := f.invoices.Update(f.ctx, inv.ID, dto.InvoiceRequest{
		ProjectID: "p1", SupplierID: "s1", InvoiceNumber: "F-001", InvoiceDate: "2024-02-01",
		PaymentType: "ProgressPayment", PurchaseOrderID: "po1", GRNIDs: []string{"g1", "g2"},
	})
	require.NoError(t, err)
	money(t, "3150", updated.TotalAmount)
	assert.Equal(t, string(entity.InvoiceStatusPartiallyPaid), updated.Status)
	assert.Nil(t, updated.DueDays)
}

func TestInvoiceUseCase_EditarNoBajaDelTotalPagado(t *testing.T) {
	f := newFixture(t)
	inv := f.progressInvoice(t, "F-001", "g1", "g2") // 3,150 con IVA
	_, err := f.payments.Create(f.ctx, currentPayment(inv.ID, "2000", "100"))
	require.NoError(t, err)

	_, err = f.invoices.Update(f.ctx, inv.ID, dto.InvoiceRequest{
		ProjectID: "p1", SupplierID: "s1", InvoiceNumber: "F-001", InvoiceDate: "2024-02-01",
		PaymentType: "ProgressPayment", PurchaseOrderID: "po1", GRNIDs: []string{"g1"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	verr, ok := ledgercore.AsValidationError(err)
	require.True(t, ok)
	assert.True(t, verr.Has(ledgercore.ReasonTotalBelowPaid))

	got, err := f.invoices.Get(f.ctx, inv.ID)
	require.NoError(t, err)
	money(t, "3150", got.TotalAmount)
	assert.Equal(t, string(entity.InvoiceStatusPartiallyPaid), got.Status)
}

func TestInvoiceUseCase_EditarNoCambiaProveedorConPagos(t *testing.T) {
	f := newFixture(t)
	inv := f.progressInvoice(t, "F-001", "g1")
	_, err := f.payments.Create(f.ctx, currentPayment(inv.ID, "500", "25"))
	require.NoError(t, err)

	_, err = f.invoices.Update(f.ctx, inv.ID, dto.InvoiceRequest{
		ProjectID: "p1", SupplierID: "s2", InvoiceNumber: "F-001", InvoiceDate: "2024-02-01",
		PaymentType: "ProgressPayment", PurchaseOrderID: "po2", BaseAmount: dec("1000"),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRecomputeUseCase_CorrigeEstadoDesactualizado(t *testing.T) {
	f := newFixture(t)
	inv := f.progressInvoice(t, "F-001", "g1")
	_, err := f.payments.Create(f.ctx, currentPayment(inv.ID, "1000", "50"))
	require.NoError(t, err)

	require.NoError(t, f.store.Repos().Invoices.UpdateStatus(f.ctx, inv.ID, entity.InvoiceStatusUnpaid))

	statuses, err := f.recompute.RecomputeAndPersist(f.ctx, []string{inv.ID, inv.ID})
	require.NoError(t, err)
	assert.Equal(t, map[string]entity.InvoiceStatus{inv.ID: entity.InvoiceStatusPaid}, statuses)
	assert.Equal(t, entity.InvoiceStatusPaid, f.status(t, inv.ID))
}

func TestSummaryUseCase_ProveedorYObra(t *testing.T) {
	f := newFixture(t)
	inv := f.progressInvoice(t, "F-001", "g1")
	_, err := f.payments.Create(f.ctx, currentPayment(inv.ID, "500", "25"))
	require.NoError(t, err)

	s, err := f.summary.SupplierSummary(f.ctx, "p1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Cementos SA", s.SupplierName)
	money(t, "10500", s.Summary.TotalPOAmounts)
	money(t, "3150", s.Summary.TotalDelivered)
	money(t, "7350", s.Summary.LPOBalance)
	money(t, "1050", s.Summary.TotalInvoiced)
	money(t, "525", s.Summary.TotalPaid)
	money(t, "525", s.Summary.BalanceToBePaid)
	money(t, "525", s.Summary.DueAmount)

	ps, err := f.summary.ProjectSummary(f.ctx, "p1")
	require.NoError(t, err)
	money(t, "63000", ps.Summary.TotalPOAmounts)
	require.Len(t, ps.Suppliers, 2)
	assert.Equal(t, "Cementos SA", ps.Suppliers[0].SupplierName)
	assert.Equal(t, "Montajes Ltda", ps.Suppliers[1].SupplierName)

	agg, err := f.summary.POAggregate(f.ctx, "po1")
	require.NoError(t, err)
	money(t, "7350", agg.LPOBalanceWithVAT)

	_, err = f.summary.SupplierSummary(f.ctx, "p1", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVATResolver_ConfiguracionDelSitioPrevalece(t *testing.T) {
	f := newFixture(t)
	seven := dec("7")
	require.NoError(t, f.store.Settings().SetDefaultVATPercent(f.ctx, &seven))

	inv := f.progressInvoice(t, "F-001", "g1")
	money(t, "70", inv.VATAmount)
	money(t, "1070", inv.TotalAmount)
}

type fakeStatementPDF struct {
	got *appledger.Statement
	err error
}

func (g *fakeStatementPDF) GenerateStatement(_ context.Context, st *appledger.Statement) ([]byte, error) {
	g.got = st
	return []byte("%PDF-fake"), g.err
}

func TestStatementUseCase_EstadoDeCuenta(t *testing.T) {
	f := newFixture(t)
	a := f.progressInvoice(t, "F-001", "g1")
	f.progressInvoice(t, "F-002", "g2")
	_, err := f.payments.Create(f.ctx, currentPayment(a.ID, "500", "25"))
	require.NoError(t, err)

	gen := &fakeStatementPDF{}
	uc := appledger.NewStatementUseCase(f.summary, gen, "AED")

	pdf, filename, err := uc.DownloadPDF(f.ctx, "p1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.Equal(t, "estado-cuenta-OB-01-Cementos_SA.pdf", filename)

	require.NotNil(t, gen.got)
	require.Len(t, gen.got.Invoices, 2)
	byNumber := map[string]appledger.StatementInvoice{}
	for _, row := range gen.got.Invoices {
		byNumber[row.Invoice.InvoiceNumber] = row
	}
	money(t, "525", byNumber["F-001"].TotalPaid)
	money(t, "525", byNumber["F-001"].Balance)
	money(t, "2100", byNumber["F-002"].Balance)
	money(t, "2625", gen.got.Summary.BalanceToBePaid)
	assert.Len(t, gen.got.Payments, 1)

	gen.err = errors.New("sin fuentes")
	_, _, err = uc.DownloadPDF(f.ctx, "p1", "s1")
	assert.Error(t, err)

	_, err = uc.Build(f.ctx, "p1", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
