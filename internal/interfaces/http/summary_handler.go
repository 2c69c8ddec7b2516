package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appledger "github.com/jhoicas/Obras-api/internal/application/ledger"
)

// SummaryHandler resúmenes de obra y proveedor, órdenes de compra y estado de cuenta.
type SummaryHandler struct {
	summary   *appledger.SummaryUseCase
	invoices  *appledger.InvoiceUseCase
	statement *appledger.StatementUseCase
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(summary *appledger.SummaryUseCase, invoices *appledger.InvoiceUseCase, statement *appledger.StatementUseCase) *SummaryHandler {
	return &SummaryHandler{summary: summary, invoices: invoices, statement: statement}
}

// POAggregate godoc
// @Summary      Valor, entregado y saldo de una orden de compra
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.POAggregateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/aggregate [get]
func (h *SummaryHandler) POAggregate(c *fiber.Ctx) error {
	out, err := h.summary.POAggregate(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "orden de compra no encontrada")
	}
	return c.JSON(out)
}

// AvailableGRNs godoc
// @Summary      GRNs de la orden que aún no están facturados
// @Tags         purchase-orders
// @Produce      json
// @Param        id          path   string  true   "ID de la orden"
// @Param        invoice_id  query  string  false  "factura en edición (sus GRNs siguen disponibles)"
// @Success      200  {array}   dto.GRNResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/available-grns [get]
func (h *SummaryHandler) AvailableGRNs(c *fiber.Ctx) error {
	out, err := h.invoices.AvailableGRNs(c.UserContext(), c.Params("id"), c.Query("invoice_id"))
	if err != nil {
		return writeError(c, err, "orden de compra no encontrada")
	}
	return c.JSON(out)
}

// ProjectSummary godoc
// @Summary      Resumen de la obra y de cada proveedor
// @Tags         summaries
// @Produce      json
// @Param        id   path      string  true  "ID de la obra"
// @Success      200  {object}  dto.ProjectSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/summary [get]
func (h *SummaryHandler) ProjectSummary(c *fiber.Ctx) error {
	out, err := h.summary.ProjectSummary(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "obra no encontrada")
	}
	return c.JSON(out)
}

// SupplierSummary godoc
// @Summary      Resumen de un proveedor en una obra
// @Tags         summaries
// @Produce      json
// @Param        id          path  string  true  "ID de la obra"
// @Param        supplierId  path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/suppliers/{supplierId}/summary [get]
func (h *SummaryHandler) SupplierSummary(c *fiber.Ctx) error {
	out, err := h.summary.SupplierSummary(c.UserContext(), c.Params("id"), c.Params("supplierId"))
	if err != nil {
		return writeError(c, err, "obra o proveedor no encontrado")
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Estado de cuenta del proveedor en PDF
// @Tags         summaries
// @Produce      application/pdf
// @Param        id          path  string  true  "ID de la obra"
// @Param        supplierId  path  string  true  "ID del proveedor"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/suppliers/{supplierId}/statement.pdf [get]
func (h *SummaryHandler) Statement(c *fiber.Ctx) error {
	pdf, filename, err := h.statement.DownloadPDF(c.UserContext(), c.Params("id"), c.Params("supplierId"))
	if err != nil {
		return writeError(c, err, "obra o proveedor no encontrado")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
