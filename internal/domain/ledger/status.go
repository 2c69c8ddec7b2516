package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
)

// TotalPaid suma (monto + IVA) de las líneas de pago de una factura.
func TotalPaid(lines []entity.PaymentInvoice) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Gross())
	}
	return Round(total)
}

// ComputeInvoiceStatus deriva el estado de cobro de una factura a partir de sus líneas de pago.
// Se evalúa primero "paid", así una factura de total cero queda pagada.
func ComputeInvoiceStatus(invoiceTotal decimal.Decimal, lines []entity.PaymentInvoice) entity.InvoiceStatus {
	return statusFor(invoiceTotal, TotalPaid(lines))
}

func statusFor(total, paid decimal.Decimal) entity.InvoiceStatus {
	switch {
	case paid.GreaterThanOrEqual(total.Sub(Tolerance)):
		return entity.InvoiceStatusPaid
	case paid.LessThanOrEqual(Tolerance):
		return entity.InvoiceStatusUnpaid
	default:
		return entity.InvoiceStatusPartiallyPaid
	}
}

// RecomputeStatuses calcula el estado de cada factura con las líneas dadas.
// Una línea que referencia una factura fuera del conjunto es un error de invariante.
func RecomputeStatuses(invoices []entity.Invoice, lines []entity.PaymentInvoice) (map[string]entity.InvoiceStatus, error) {
	byInvoice := make(map[string][]entity.PaymentInvoice, len(invoices))
	for _, inv := range invoices {
		byInvoice[inv.ID] = nil
	}
	for _, l := range lines {
		if _, ok := byInvoice[l.InvoiceID]; !ok {
			return nil, invariantf("línea de pago %s referencia la factura %s fuera del conjunto", l.ID, l.InvoiceID)
		}
		byInvoice[l.InvoiceID] = append(byInvoice[l.InvoiceID], l)
	}
	out := make(map[string]entity.InvoiceStatus, len(invoices))
	for _, inv := range invoices {
		out[inv.ID] = ComputeInvoiceStatus(inv.TotalAmount, byInvoice[inv.ID])
	}
	return out, nil
}

// ComputeDueDays días calendario entre la fecha de referencia y el vencimiento
// (positivo = aún no vence, negativo = vencida). La referencia es today, salvo que la
// factura esté pagada: entonces es la fecha del último pago. ok=false si no hay vencimiento.
func ComputeDueDays(dueDate *time.Time, status entity.InvoiceStatus, paymentDates []time.Time, today time.Time) (days int, ok bool) {
	if dueDate == nil || dueDate.IsZero() {
		return 0, false
	}
	ref := today
	if status == entity.InvoiceStatusPaid {
		if latest, found := latestDate(paymentDates); found {
			ref = latest
		}
	}
	return daysBetween(ref, *dueDate), true
}

func latestDate(dates []time.Time) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	return latest, found
}

// daysBetween to - from en días calendario; la hora del día se ignora.
func daysBetween(from, to time.Time) int {
	f := dateOnly(from)
	t := dateOnly(to)
	return int((t.Unix() - f.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LinesByInvoice agrupa líneas de pago por factura.
func LinesByInvoice(lines []entity.PaymentInvoice) map[string][]entity.PaymentInvoice {
	out := make(map[string][]entity.PaymentInvoice)
	for _, l := range lines {
		out[l.InvoiceID] = append(out[l.InvoiceID], l)
	}
	return out
}

// PaymentDates fechas de pago de las líneas (para ComputeDueDays).
func PaymentDates(lines []entity.PaymentInvoice) []time.Time {
	out := make([]time.Time, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.PaymentDate)
	}
	return out
}
