package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Obras-api/internal/application/dto"
)

func newPreviewInvoiceCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview-invoice",
		Short: "Calcula deducciones, IVA y total de una factura sin guardarla",
		Long: `Lee un borrador de factura en JSON (mismo formato que POST /api/invoices) y
muestra el monto, las deducciones, el neto, el IVA y el total. Con --file - lee de stdin.`,
		Example: `  ledgerctl preview-invoice -s libro.json --file borrador.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("file")
			editing, _ := cmd.Flags().GetString("invoice-id")

			var r io.Reader = cmd.InOrStdin()
			if path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("abrir borrador: %w", err)
				}
				defer f.Close()
				r = f
			}
			var in dto.InvoiceRequest
			if err := json.NewDecoder(r).Decode(&in); err != nil {
				return fmt.Errorf("leer borrador: %w", err)
			}

			p, err := a.invoices.Preview(cmd.Context(), editing, in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.asJSON {
				return writeJSON(out, p)
			}
			a.row(out, "Monto", p.InvoiceAmount)
			a.row(out, "Rec. anticipo", p.Deductions.DownPaymentRecovery)
			a.row(out, "Rec. avance", p.Deductions.AdvanceRecovery)
			a.row(out, "Retención", p.Deductions.Retention)
			a.row(out, "Contracargos", p.Deductions.ContraCharges)
			a.row(out, "Neto", p.NetAmount)
			a.row(out, "IVA "+p.VATPercent.String()+"%", p.VATAmount)
			a.row(out, "Total", p.TotalAmount)
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "-", "borrador JSON (- para stdin)")
	cmd.Flags().String("invoice-id", "", "factura en edición (se excluye de las validaciones)")
	return cmd
}
