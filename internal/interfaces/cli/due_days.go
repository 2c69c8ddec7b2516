package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Obras-api/internal/application/dto"
)

func newDueDaysCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due-days",
		Short: "Días al vencimiento de una factura o de todas las de una obra",
		Long: `Muestra los días entre la fecha de referencia (--today) y el vencimiento. Negativo
indica factura vencida; una factura pagada cuenta hasta la fecha de su último pago.`,
		Example: `  ledgerctl due-days -s libro.json --invoice i1 --today 2024-03-10
  ledgerctl due-days -s libro.json --project p1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			invoiceID, _ := cmd.Flags().GetString("invoice")
			projectID, _ := cmd.Flags().GetString("project")
			out := cmd.OutOrStdout()

			var items []dto.InvoiceResponse
			switch {
			case invoiceID != "":
				inv, err := a.invoices.Get(cmd.Context(), invoiceID)
				if err != nil {
					return err
				}
				items = append(items, *inv)
			case projectID != "":
				list, err := a.invoices.ListByProject(cmd.Context(), projectID, dto.PageRequest{Limit: 1 << 30})
				if err != nil {
					return err
				}
				items = list.Items
			default:
				return fmt.Errorf("indique --invoice o --project")
			}

			if a.asJSON {
				return writeJSON(out, items)
			}
			for _, inv := range items {
				printDueDays(out, inv)
			}
			return nil
		},
	}
	cmd.Flags().String("invoice", "", "ID de la factura")
	cmd.Flags().String("project", "", "ID de la obra")
	cmd.MarkFlagsMutuallyExclusive("invoice", "project")
	return cmd
}

func printDueDays(w io.Writer, inv dto.InvoiceResponse) {
	days := "sin vencimiento"
	if inv.DueDays != nil {
		days = fmt.Sprintf("%d días", *inv.DueDays)
	}
	fmt.Fprintf(w, "%-16s %-15s %s\n", inv.InvoiceNumber, inv.Status, days)
}
