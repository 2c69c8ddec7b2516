package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder representa una orden de compra local (LPO) emitida a un proveedor en una obra.
// LPOValue va sin IVA; VATPercent nil significa "usar el IVA por defecto del sitio".
type PurchaseOrder struct {
	ID         string
	ProjectID  string
	SupplierID string
	LPONumber  string
	LPODate    time.Time
	LPOValue   decimal.Decimal
	VATPercent *decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GRN (Goods Received Note) registra una entrega parcial o total contra una orden de compra.
type GRN struct {
	ID              string
	PurchaseOrderID string
	GRNRefNo        string
	GRNDate         time.Time
	DeliveredAmount decimal.Decimal // sin IVA
	CreatedAt       time.Time
}

// ChangeOrder amplía el alcance de una orden de compra de subcontrato.
type ChangeOrder struct {
	ID              string
	PurchaseOrderID string
	CONumber        string
	CODate          time.Time
	Amount          decimal.Decimal
	CreatedAt       time.Time
}
