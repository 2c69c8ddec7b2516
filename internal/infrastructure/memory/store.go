// Package memory implementa los puertos de persistencia del libro de proveedores en memoria.
// Lo usan la CLI (sobre un snapshot JSON) y los tests de casos de uso.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	appledger "github.com/jhoicas/Obras-api/internal/application/ledger"
	"github.com/jhoicas/Obras-api/internal/domain/entity"
)

var _ appledger.TxRunner = (*Store)(nil)

// tables estado completo del store; se copia entero para revertir una transacción.
type tables struct {
	projects  map[string]entity.Project
	suppliers map[string]entity.Supplier
	pos       map[string]entity.PurchaseOrder
	grns      map[string]entity.GRN
	cos       map[string]entity.ChangeOrder
	invoices  map[string]entity.Invoice
	payments  map[string]entity.Payment
	vat       *decimal.Decimal
}

func newTables() tables {
	return tables{
		projects:  make(map[string]entity.Project),
		suppliers: make(map[string]entity.Supplier),
		pos:       make(map[string]entity.PurchaseOrder),
		grns:      make(map[string]entity.GRN),
		cos:       make(map[string]entity.ChangeOrder),
		invoices:  make(map[string]entity.Invoice),
		payments:  make(map[string]entity.Payment),
	}
}

// clone copia los mapas. Los slices de las filas no se comparten porque cada escritura
// guarda copias nuevas (ver copyInvoice y copyPayment).
func (t tables) clone() tables {
	return tables{
		projects:  maps.Clone(t.projects),
		suppliers: maps.Clone(t.suppliers),
		pos:       maps.Clone(t.pos),
		grns:      maps.Clone(t.grns),
		cos:       maps.Clone(t.cos),
		invoices:  maps.Clone(t.invoices),
		payments:  maps.Clone(t.payments),
		vat:       t.vat,
	}
}

// Store base de datos en memoria. Las transacciones se serializan: RunLedger toma txMu,
// trabaja sobre una copia de las tablas y la publica solo si fn termina sin error. Las
// lecturas fuera de transacción ven únicamente datos confirmados y las escrituras fuera de
// transacción esperan a que termine la transacción en curso.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	t    tables
	// inTx marca la copia de trabajo de una transacción.
	inTx bool
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{t: newTables()}
}

// Repos devuelve los repositorios del store.
func (s *Store) Repos() appledger.Repos {
	return appledger.Repos{
		Projects:       &ProjectRepo{s: s},
		Suppliers:      &SupplierRepo{s: s},
		PurchaseOrders: &PurchaseOrderRepo{s: s},
		GRNs:           &GRNRepo{s: s},
		ChangeOrders:   &ChangeOrderRepo{s: s},
		Invoices:       &InvoiceRepo{s: s},
		Payments:       &PaymentRepo{s: s},
	}
}

// Settings repositorio de configuración del sitio.
func (s *Store) Settings() *SettingsRepo {
	return &SettingsRepo{s: s}
}

// RunLedger ejecuta fn con repos sobre una copia de las tablas; si fn devuelve error la
// copia se descarta. No es reentrante: fn no debe escribir con los repos de s.
func (s *Store) RunLedger(ctx context.Context, fn func(repos appledger.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	tx := &Store{t: s.t.clone(), inTx: true}
	s.mu.RUnlock()

	if err := fn(tx.Repos()); err != nil {
		return err
	}

	tx.mu.RLock()
	committed := tx.t
	tx.mu.RUnlock()

	s.mu.Lock()
	s.t = committed
	s.mu.Unlock()
	return nil
}

func (s *Store) read(ctx context.Context, fn func(t *tables)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.t)
	return nil
}

func (s *Store) write(ctx context.Context, fn func(t *tables) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.inTx {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.t)
}

// ── orden estable de los listados ─────────────────────────────────────────────

func sortInvoices(out []*entity.Invoice) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].InvoiceDate.Equal(out[j].InvoiceDate) {
			return out[i].InvoiceDate.Before(out[j].InvoiceDate)
		}
		return out[i].ID < out[j].ID
	})
}

func sortPayments(out []*entity.Payment) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].PaymentDate.Before(out[j].PaymentDate)
		}
		return out[i].ID < out[j].ID
	})
}

func copyInvoice(inv entity.Invoice) entity.Invoice {
	inv.GRNIDs = append([]string(nil), inv.GRNIDs...)
	inv.ChangeOrderIDs = append([]string(nil), inv.ChangeOrderIDs...)
	if inv.DueDate != nil {
		d := *inv.DueDate
		inv.DueDate = &d
	}
	return inv
}

// copyPayment copia el pago y sus líneas; cada línea toma la fecha del pago.
func copyPayment(p entity.Payment) entity.Payment {
	lines := make([]entity.PaymentInvoice, len(p.Lines))
	for i, l := range p.Lines {
		l.PaymentID = p.ID
		l.PaymentDate = p.PaymentDate
		lines[i] = l
	}
	p.Lines = lines
	if p.DueDate != nil {
		d := *p.DueDate
		p.DueDate = &d
	}
	return p
}

func sortByKey[T any](out []T, key func(T) string) {
	sort.Slice(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
}

func containsString(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
