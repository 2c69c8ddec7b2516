package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Obras-api/internal/application/dto"
)

func newSummaryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Resumen de una obra o de un proveedor en la obra",
		Example: `  ledgerctl summary -s libro.json --project p1
  ledgerctl summary -s libro.json --project p1 --supplier s1 --today 2024-03-10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, _ := cmd.Flags().GetString("project")
			supplierID, _ := cmd.Flags().GetString("supplier")
			out := cmd.OutOrStdout()

			if supplierID != "" {
				s, err := a.summary.SupplierSummary(cmd.Context(), projectID, supplierID)
				if err != nil {
					return err
				}
				if a.asJSON {
					return writeJSON(out, s)
				}
				fmt.Fprintf(out, "%s (%s)\n", s.SupplierName, s.PartyKind)
				a.printSummary(out, s.Summary)
				return nil
			}

			p, err := a.summary.ProjectSummary(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(out, p)
			}
			fmt.Fprintf(out, "Obra %s\n", p.ProjectName)
			a.printSummary(out, p.Summary)
			for _, s := range p.Suppliers {
				fmt.Fprintf(out, "\n%s (%s)\n", s.SupplierName, s.PartyKind)
				a.printSummary(out, s.Summary)
			}
			return nil
		},
	}
	cmd.Flags().String("project", "", "ID de la obra")
	cmd.Flags().String("supplier", "", "ID del proveedor (opcional)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func (a *app) printSummary(w io.Writer, s dto.SummaryResponse) {
	a.row(w, "Total LPO", s.TotalPOAmounts)
	a.row(w, "Entregado", s.TotalDelivered)
	a.row(w, "Saldo LPO", s.LPOBalance)
	a.row(w, "Facturado", s.TotalInvoiced)
	a.row(w, "Pagado", s.TotalPaid)
	a.row(w, "Comprometido", s.CommittedPayments)
	a.row(w, "Saldo por pagar", s.BalanceToBePaid)
	a.row(w, "Vencido", s.DueAmount)
}
