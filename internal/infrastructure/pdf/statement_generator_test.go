package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/jhoicas/Obras-api/internal/application/ledger"
	"github.com/jhoicas/Obras-api/internal/domain/entity"
	ledgercore "github.com/jhoicas/Obras-api/internal/domain/ledger"
)

func TestMarotoStatementGenerator_GenerateStatement(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	days := -9
	st := &appledger.Statement{
		Project:     entity.Project{ID: "p1", Code: "OB-01", Name: "Torre Norte"},
		Supplier:    entity.Supplier{ID: "s1", Name: "Cementos SA", Kind: entity.PartySupplier},
		Currency:    "AED",
		GeneratedAt: date,
		Summary: ledgercore.Summary{
			TotalInvoiced:   decimal.NewFromInt(3150),
			BalanceToBePaid: decimal.NewFromInt(3150),
		},
		Invoices: []appledger.StatementInvoice{{
			Invoice: entity.Invoice{
				InvoiceNumber: "F-001", InvoiceDate: date, PaymentType: entity.PaymentTypeProgress,
				TotalAmount: decimal.NewFromInt(3150),
			},
			TotalPaid: decimal.Zero,
			Balance:   decimal.NewFromInt(3150),
			DueDays:   &days,
		}},
		Payments: []entity.Payment{{
			PaymentMethod: entity.PaymentMethodPostDated, InstrumentType: entity.InstrumentPDC,
			PaymentDate: date, TotalPaymentAmount: decimal.NewFromInt(500), TotalVATAmount: decimal.NewFromInt(25),
		}},
	}

	out, err := NewMarotoStatementGenerator().GenerateStatement(context.Background(), st)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMarotoStatementGenerator_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoStatementGenerator().GenerateStatement(ctx, &appledger.Statement{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMoney(t *testing.T) {
	g := NewMarotoStatementGenerator()
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"1050", "1,050.00"},
		{"1234567.891", "1,234,567.89"},
		{"-25.5", "-25.50"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, g.money(decimal.RequireFromString(tt.in)))
		})
	}
}
