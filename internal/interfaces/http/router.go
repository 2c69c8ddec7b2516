package http

import (
	"github.com/gofiber/fiber/v2"

	appledger "github.com/jhoicas/Obras-api/internal/application/ledger"
	"github.com/jhoicas/Obras-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Invoices  *appledger.InvoiceUseCase
	Payments  *appledger.PaymentUseCase
	Summary   *appledger.SummaryUseCase
	Statement *appledger.StatementUseCase
	Recompute *appledger.RecomputeUseCase
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	if deps.Log != nil {
		api.Use(RequestLogger(deps.Log.WithComponent("http")))
	}

	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.Payments, deps.Recompute)
	paymentHandler := NewPaymentHandler(deps.Payments)
	summaryHandler := NewSummaryHandler(deps.Summary, deps.Invoices, deps.Statement)

	// Facturas (las rutas fijas antes que /:id)
	invoices := api.Group("/invoices")
	invoices.Post("/preview", invoiceHandler.Preview)
	invoices.Post("/recompute", invoiceHandler.Recompute)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/payment-suggestion", invoiceHandler.PaymentSuggestion)

	// Pagos
	payments := api.Group("/payments")
	payments.Post("/", paymentHandler.Create)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Put("/:id", paymentHandler.Update)
	payments.Delete("/:id", paymentHandler.Delete)
	payments.Patch("/:id/liquidated", paymentHandler.SetLiquidated)

	// Órdenes de compra
	pos := api.Group("/purchase-orders")
	pos.Get("/:id/aggregate", summaryHandler.POAggregate)
	pos.Get("/:id/available-grns", summaryHandler.AvailableGRNs)

	// Obras
	projects := api.Group("/projects")
	projects.Get("/:id/invoices", invoiceHandler.ListByProject)
	projects.Get("/:id/summary", summaryHandler.ProjectSummary)
	projects.Get("/:id/suppliers/:supplierId/summary", summaryHandler.SupplierSummary)
	projects.Get("/:id/suppliers/:supplierId/statement.pdf", summaryHandler.Statement)
}
