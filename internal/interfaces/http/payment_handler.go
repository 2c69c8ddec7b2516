package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Obras-api/internal/application/dto"
	appledger "github.com/jhoicas/Obras-api/internal/application/ledger"
)

// PaymentHandler maneja los pagos a proveedores.
type PaymentHandler struct {
	uc *appledger.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *appledger.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar pago (una o varias facturas)
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentRequest  true  "pago con sus líneas"
// @Success      201  {object}  dto.PaymentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "obra, proveedor o factura no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pago
// @Tags         payments
// @Produce      json
// @Param        id   path      string  true  "ID del pago"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [get]
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "pago no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar pago
// @Description  Reemplaza cabecera y líneas; recalcula las facturas antes y después de la edición.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del pago"
// @Param        body  body  dto.PaymentRequest  true  "pago con sus líneas"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [put]
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "pago no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pago
// @Tags         payments
// @Produce      json
// @Param        id   path      string  true  "ID del pago"
// @Success      200  {object}  dto.RecomputeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	statuses, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "pago no encontrado")
	}
	out := dto.RecomputeResponse{Statuses: make(map[string]string, len(statuses))}
	for id, st := range statuses {
		out.Statuses[id] = string(st)
	}
	return c.JSON(out)
}

// SetLiquidated godoc
// @Summary      Marcar pago posfechado como liquidado
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del pago"
// @Param        body  body  dto.SetLiquidatedRequest  true  "liquidated"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/liquidated [patch]
func (h *PaymentHandler) SetLiquidated(c *fiber.Ctx) error {
	var in dto.SetLiquidatedRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetLiquidated(c.UserContext(), c.Params("id"), in.Liquidated)
	if err != nil {
		return writeError(c, err, "pago no encontrado")
	}
	return c.JSON(out)
}
