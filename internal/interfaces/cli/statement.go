package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newStatementCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "statement",
		Short:   "Genera el estado de cuenta en PDF de un proveedor en una obra",
		Example: `  ledgerctl statement -s libro.json --project p1 --supplier s1 --out estado.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, _ := cmd.Flags().GetString("project")
			supplierID, _ := cmd.Flags().GetString("supplier")
			path, _ := cmd.Flags().GetString("out")

			pdf, filename, err := a.statement.DownloadPDF(cmd.Context(), projectID, supplierID)
			if err != nil {
				return err
			}
			if path == "" {
				path = filename
			}
			if err := os.WriteFile(path, pdf, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", path, err)
			}
			a.log.Info().Str("file", path).Int("bytes", len(pdf)).Msg("estado de cuenta generado")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().String("project", "", "ID de la obra")
	cmd.Flags().String("supplier", "", "ID del proveedor")
	cmd.Flags().StringP("out", "o", "", "archivo de salida (default: nombre sugerido)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("supplier")
	return cmd
}
