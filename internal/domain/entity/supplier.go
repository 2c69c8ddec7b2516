package entity

import "time"

// PartyKind distingue proveedores de materiales y subcontratistas.
// Las reglas de factura (anticipos, retenciones) dependen del tipo.
type PartyKind string

const (
	PartySupplier      PartyKind = "supplier"
	PartySubcontractor PartyKind = "subcontractor"
)

// Valid indica si el tipo es uno de los conocidos.
func (k PartyKind) Valid() bool {
	return k == PartySupplier || k == PartySubcontractor
}

// Supplier representa un proveedor o subcontratista.
type Supplier struct {
	ID        string
	Name      string
	Kind      PartyKind
	TRN       string // registro tributario (VAT)
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
