package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/Obras-api/internal/domain"
)

// ErrInvariant indica datos inconsistentes entregados por el llamador (error de programación).
// El núcleo falla de inmediato en lugar de corregirlos.
var ErrInvariant = errors.New("ledger: invariante violada")

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}

// Reason motivo enumerado de una falla de validación.
type Reason string

const (
	ReasonMissingField           Reason = "missing_field"
	ReasonInvalidDate            Reason = "invalid_date"
	ReasonInvalidAmount          Reason = "invalid_amount"
	ReasonUnsupportedPaymentType Reason = "unsupported_payment_type"
	ReasonDuplicateInvoiceNumber Reason = "duplicate_invoice_number"
	ReasonDownPaymentExists      Reason = "down_payment_exists"
	ReasonAdvanceExists          Reason = "advance_exists"
	ReasonGRNAlreadyInvoiced     Reason = "grn_already_invoiced"
	ReasonForeignReference       Reason = "foreign_reference"
	ReasonDuplicateSelection     Reason = "duplicate_selection"
	ReasonPaymentExceedsInvoice  Reason = "payment_exceeds_invoice"
	ReasonMixedVATRates          Reason = "mixed_vat_rates"
	ReasonTotalBelowPaid         Reason = "total_below_paid"
)

// Violation una regla incumplida, con el campo afectado y un mensaje para el usuario.
type Violation struct {
	Reason  Reason
	Field   string
	Message string
}

// ValidationError agrupa todas las reglas incumplidas de una operación (no solo la primera).
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validación: " + strings.Join(msgs, "; ")
}

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidInput
}

// Has indica si alguna violación tiene el motivo dado.
func (e *ValidationError) Has(r Reason) bool {
	for _, v := range e.Violations {
		if v.Reason == r {
			return true
		}
	}
	return false
}

// Messages devuelve los mensajes en orden.
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Message)
	}
	return out
}

// violations acumulador usado por los validadores.
type violations []Violation

func (vs *violations) add(r Reason, field, format string, args ...any) {
	*vs = append(*vs, Violation{Reason: r, Field: field, Message: fmt.Sprintf(format, args...)})
}

// NewValidationError construye un error de una sola violación (para adaptadores que
// validan formato antes de llegar al núcleo).
func NewValidationError(r Reason, field, format string, args ...any) *ValidationError {
	var vs violations
	vs.add(r, field, format, args...)
	return &ValidationError{Violations: vs}
}

func (vs violations) err() error {
	if len(vs) == 0 {
		return nil
	}
	return &ValidationError{Violations: vs}
}

// AsValidationError extrae el ValidationError de una cadena de errores.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
