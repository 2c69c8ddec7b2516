// Package cli implementa ledgerctl: consultas del libro de proveedores sobre un snapshot JSON.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Obras-api/internal/application/dto"
	appledger "github.com/jhoicas/Obras-api/internal/application/ledger"
	"github.com/jhoicas/Obras-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Obras-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Obras-api/pkg/config"
	"github.com/jhoicas/Obras-api/pkg/logger"
)

var version = "1.0.0"

// app casos de uso armados sobre el snapshot cargado.
type app struct {
	store     *memory.Store
	invoices  *appledger.InvoiceUseCase
	payments  *appledger.PaymentUseCase
	summary   *appledger.SummaryUseCase
	statement *appledger.StatementUseCase
	log       *logger.Logger
	printer   *message.Printer
	today     time.Time
	asJSON    bool
}

// NewRootCommand arma ledgerctl con sus subcomandos.
func NewRootCommand() *cobra.Command {
	a := &app{printer: message.NewPrinter(language.English)}

	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Consultas del libro de proveedores y subcontratistas",
		Long: `ledgerctl carga un snapshot JSON del libro (obras, proveedores, órdenes, GRNs,
facturas y pagos), recalcula los estados de las facturas y responde consultas:
resúmenes, vista previa de facturas, días al vencimiento y estados de cuenta en PDF.

Variables de entorno (o .env): LEDGER_DEFAULT_VAT_PERCENT, LEDGER_CURRENCY, LOG_LEVEL.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringP("snapshot", "s", "", "archivo JSON con el libro (requerido)")
	root.PersistentFlags().String("today", "", "fecha de referencia YYYY-MM-DD (default: hoy)")
	root.PersistentFlags().Bool("json", false, "salida en JSON")
	_ = root.MarkPersistentFlagRequired("snapshot")

	root.AddCommand(
		newSummaryCommand(a),
		newPreviewInvoiceCommand(a),
		newDueDaysCommand(a),
		newStatementCommand(a),
	)
	return root
}

// Execute ejecuta ledgerctl con los argumentos del proceso.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.log = logger.NewWithWriter(logger.Config{Env: "development", Level: cfg.Log.Level}, cmd.ErrOrStderr()).
		WithComponent("ledgerctl")

	flags := cmd.Flags()
	path, _ := flags.GetString("snapshot")
	todayStr, _ := flags.GetString("today")
	a.asJSON, _ = flags.GetBool("json")

	a.today = time.Now()
	if todayStr != "" {
		t, err := time.Parse(dto.DateLayout, todayStr)
		if err != nil {
			return fmt.Errorf("--today debe tener formato YYYY-MM-DD: %w", err)
		}
		a.today = t
	}

	store, err := memory.LoadFile(path)
	if err != nil {
		return err
	}
	a.store = store
	a.log.Debug().Str("snapshot", path).Str("today", a.today.Format(dto.DateLayout)).Msg("snapshot cargado")

	clock := func() time.Time { return a.today }
	repos := store.Repos()
	vat := appledger.NewVATResolver(store.Settings(), cfg.Ledger.DefaultVATPercent)
	recompute := appledger.NewRecomputeUseCase(store, a.log)

	a.invoices = appledger.NewInvoiceUseCase(store, repos, vat, recompute, a.log)
	a.invoices.SetClock(clock)
	a.payments = appledger.NewPaymentUseCase(store, repos, vat, recompute, a.log)
	a.payments.SetClock(clock)
	a.summary = appledger.NewSummaryUseCase(repos, vat)
	a.summary.SetClock(clock)
	a.statement = appledger.NewStatementUseCase(a.summary, infrapdf.NewMarotoStatementGenerator(), cfg.Ledger.Currency)
	return nil
}

// money 12345.6 → "12,345.60".
func (a *app) money(d decimal.Decimal) string {
	return a.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func (a *app) row(w io.Writer, label string, v decimal.Decimal) {
	fmt.Fprintf(w, "  %-22s %18s\n", label, a.money(v))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
