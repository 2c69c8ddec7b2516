package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Obras-api/internal/application/dto"
	appledger "github.com/jhoicas/Obras-api/internal/application/ledger"
)

// InvoiceHandler maneja las facturas de proveedores y subcontratistas.
type InvoiceHandler struct {
	uc        *appledger.InvoiceUseCase
	payments  *appledger.PaymentUseCase
	recompute *appledger.RecomputeUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *appledger.InvoiceUseCase, payments *appledger.PaymentUseCase, recompute *appledger.RecomputeUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, payments: payments, recompute: recompute}
}

// Preview godoc
// @Summary      Calcular montos de una factura sin guardarla
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice_id  query  string              false  "factura en edición (se excluye de las validaciones)"
// @Param        body        body   dto.InvoiceRequest  true   "borrador de factura"
// @Success      200  {object}  dto.InvoicePreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Preview(c.UserContext(), c.Query("invoice_id"), in)
	if err != nil {
		return writeError(c, err, "obra, proveedor u orden no encontrada")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvoiceRequest  true  "factura"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "obra, proveedor u orden no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura con pagado, saldo y días al vencimiento
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la factura"
// @Param        body  body  dto.InvoiceRequest  true  "factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura sin pagos
// @Tags         invoices
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByProject godoc
// @Summary      Listar facturas de una obra
// @Tags         invoices
// @Produce      json
// @Param        id      path   string  true   "ID de la obra"
// @Param        limit   query  int     false  "máximo de resultados (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.InvoiceListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/invoices [get]
func (h *InvoiceHandler) ListByProject(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "limit u offset inválidos"})
	}
	out, err := h.uc.ListByProject(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return writeError(c, err, "obra no encontrada")
	}
	return c.JSON(out)
}

// PaymentSuggestion godoc
// @Summary      Línea de pago sugerida por el saldo pendiente
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.PaymentSuggestionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/payment-suggestion [get]
func (h *InvoiceHandler) PaymentSuggestion(c *fiber.Ctx) error {
	out, err := h.payments.SuggestLine(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	return c.JSON(out)
}

// Recompute godoc
// @Summary      Recalcular y guardar el estado de las facturas
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecomputeRequest  true  "IDs de facturas"
// @Success      200  {object}  dto.RecomputeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/recompute [post]
func (h *InvoiceHandler) Recompute(c *fiber.Ctx) error {
	var in dto.RecomputeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	statuses, err := h.recompute.RecomputeAndPersist(c.UserContext(), in.InvoiceIDs)
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	out := dto.RecomputeResponse{Statuses: make(map[string]string, len(statuses))}
	for id, st := range statuses {
		out.Statuses[id] = string(st)
	}
	return c.JSON(out)
}
