package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ledgerJSON = `{
  "default_vat_percent": "5",
  "projects": [{"id": "p1", "code": "OB-01", "name": "Torre Norte"}],
  "suppliers": [{"id": "s1", "name": "Cementos SA", "kind": "supplier"}],
  "purchase_orders": [{"id": "po1", "project_id": "p1", "supplier_id": "s1", "lpo_number": "LPO-1",
    "lpo_date": "2024-01-10", "lpo_value": "10000"}],
  "grns": [
    {"id": "g1", "purchase_order_id": "po1", "grn_ref_no": "GRN-1", "grn_date": "2024-01-20", "delivered_amount": "1000"},
    {"id": "g2", "purchase_order_id": "po1", "grn_ref_no": "GRN-2", "grn_date": "2024-01-25", "delivered_amount": "2000"}
  ],
  "change_orders": [],
  "invoices": [{"id": "i1", "project_id": "p1", "supplier_id": "s1", "invoice_number": "F-1",
    "invoice_date": "2024-02-01", "payment_type": "ProgressPayment", "purchase_order_id": "po1",
    "grn_ids": ["g1"], "invoice_amount": "1000", "down_payment_recovery": "0", "advance_recovery": "0",
    "retention": "0", "contra_charges_amount": "0", "net_amount": "1000", "vat_amount": "50",
    "total_amount": "1050", "due_date": "2024-03-05"}],
  "payments": [{"id": "pay1", "project_id": "p1", "supplier_id": "s1", "payment_method": "CurrentDated",
    "payment_date": "2024-02-15", "lines": [{"invoice_id": "i1", "payment_amount": "500", "vat_amount": "25"}]}]
}`

func writeLedger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "libro.json")
	require.NoError(t, os.WriteFile(path, []byte(ledgerJSON), 0o600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSummary_Proveedor(t *testing.T) {
	out, err := run(t, "", "summary", "-s", writeLedger(t), "--project", "p1", "--supplier", "s1", "--today", "2024-03-10")
	require.NoError(t, err)

	assert.Contains(t, out, "Cementos SA (supplier)")
	assert.Regexp(t, `Total LPO\s+10,500.00`, out)
	assert.Regexp(t, `Entregado\s+3,150.00`, out)
	assert.Regexp(t, `Facturado\s+1,050.00`, out)
	assert.Regexp(t, `Pagado\s+525.00`, out)
	assert.Regexp(t, `Vencido\s+525.00`, out)
}

func TestSummary_ObraJSON(t *testing.T) {
	out, err := run(t, "", "summary", "-s", writeLedger(t), "--project", "p1", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"project_name": "Torre Norte"`)
	assert.Contains(t, out, `"supplier_id": "s1"`)
}

func TestPreviewInvoice_DesdeStdin(t *testing.T) {
	draft := `{"project_id": "p1", "supplier_id": "s1", "invoice_number": "F-2", "invoice_date": "2024-03-01",
	  "payment_type": "ProgressPayment", "purchase_order_id": "po1", "grn_ids": ["g2"]}`
	out, err := run(t, draft, "preview-invoice", "-s", writeLedger(t))
	require.NoError(t, err)

	assert.Regexp(t, `Neto\s+2,000.00`, out)
	assert.Regexp(t, `IVA 5%\s+100.00`, out)
	assert.Regexp(t, `Total\s+2,100.00`, out)
}

func TestPreviewInvoice_GRNYaFacturado(t *testing.T) {
	draft := `{"project_id": "p1", "supplier_id": "s1", "invoice_number": "F-2", "invoice_date": "2024-03-01",
	  "payment_type": "ProgressPayment", "purchase_order_id": "po1", "grn_ids": ["g1"]}`
	_, err := run(t, draft, "preview-invoice", "-s", writeLedger(t))
	assert.Error(t, err)
}

func TestDueDays(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"por factura", []string{"--invoice", "i1"}, "-5 días"},
		{"por obra", []string{"--project", "p1"}, "partially_paid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"due-days", "-s", writeLedger(t), "--today", "2024-03-10"}, tt.args...)
			out, err := run(t, "", args...)
			require.NoError(t, err)
			assert.Contains(t, out, "F-1")
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestDueDays_RequiereFacturaUObra(t *testing.T) {
	_, err := run(t, "", "due-days", "-s", writeLedger(t))
	assert.Error(t, err)
}

func TestStatement_EscribePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estado.pdf")
	out, err := run(t, "", "statement", "-s", writeLedger(t), "--project", "p1", "--supplier", "s1", "-o", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	pdf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRoot_SinSnapshot(t *testing.T) {
	_, err := run(t, "", "summary", "--project", "p1")
	assert.Error(t, err)
}
