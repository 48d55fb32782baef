package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation/store"
)

func resultWith(ledger, accounting string) store.ResultRow {
	r := store.ResultRow{CodigoFornecedor: "X"}
	if ledger != "" {
		r.SaldoFinanceiro = decimal.NewNullDecimal(decimal.RequireFromString(ledger))
	}
	if accounting != "" {
		r.SaldoContabil = decimal.NewNullDecimal(decimal.RequireFromString(accounting))
	}
	return r
}

func TestClassify(t *testing.T) {
	tolerance := decimal.NewFromFloat(3)

	tests := []struct {
		name       string
		ledger     string
		accounting string
		wantStatus string
		wantDiff   string
	}{
		{name: "equal totals", ledger: "1000.00", accounting: "1000.00", wantStatus: constants.StatusMatched, wantDiff: "0.00"},
		{name: "inside tolerance", ledger: "1000.00", accounting: "980.00", wantStatus: constants.StatusMatched, wantDiff: "20.00"},
		{name: "exactly on the limit", ledger: "1000.00", accounting: "970.00", wantStatus: constants.StatusMatched, wantDiff: "30.00"},
		{name: "just past the limit", ledger: "1000.00", accounting: "969.99", wantStatus: constants.StatusDivergent, wantDiff: "30.01"},
		{name: "well past the limit", ledger: "1000.00", accounting: "800.00", wantStatus: constants.StatusDivergent, wantDiff: "200.00"},
		{name: "limit follows the larger side", ledger: "970.00", accounting: "1000.00", wantStatus: constants.StatusMatched, wantDiff: "-30.00"},
		{name: "ledger only", ledger: "500.00", accounting: "", wantStatus: constants.StatusPending, wantDiff: "500.00"},
		{name: "accounting only", ledger: "", accounting: "300.00", wantStatus: constants.StatusPending, wantDiff: "-300.00"},
		{name: "ledger positive accounting zero", ledger: "500.00", accounting: "0", wantStatus: constants.StatusPending, wantDiff: "500.00"},
		{name: "both missing", ledger: "", accounting: "", wantStatus: constants.StatusPending, wantDiff: "0.00"},
		{name: "both zero", ledger: "0", accounting: "0", wantStatus: constants.StatusPending, wantDiff: "0.00"},
		{name: "matching negatives", ledger: "-100.00", accounting: "-100.00", wantStatus: constants.StatusMatched, wantDiff: "0.00"},
		{name: "ledger zero accounting negative", ledger: "0", accounting: "-50.00", wantStatus: constants.StatusDivergent, wantDiff: "50.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resultWith(tt.ledger, tt.accounting)
			classify(&r, tolerance)
			assert.Equal(t, tt.wantStatus, r.Status)
			assert.Equal(t, tt.wantDiff, r.Diferenca.StringFixed(2))
		})
	}
}

func TestRankDenseWithSharedTies(t *testing.T) {
	diffs := []string{"300.00", "-200.00", "200.00", "50.00", "0.00"}
	rows := make([]store.ResultRow, len(diffs))
	for i, d := range diffs {
		rows[i] = store.ResultRow{Diferenca: decimal.RequireFromString(d)}
	}

	rank(rows)

	// Rank = number of rows whose |difference| is at least this row's.
	assert.Equal(t, 1, rows[0].OrdemImportancia)
	assert.Equal(t, 3, rows[1].OrdemImportancia)
	assert.Equal(t, 3, rows[2].OrdemImportancia)
	assert.Equal(t, 4, rows[3].OrdemImportancia)
	assert.Equal(t, 5, rows[4].OrdemImportancia)
}

func TestExplainPerStatus(t *testing.T) {
	items := []store.ItemLine{
		{ContaContabil: "2.01.123", DescricaoItem: "NF 1", SaldoAtual: decimal.RequireFromString("80.00")},
		{ContaContabil: "2.01.123", DescricaoItem: "NF 2", SaldoAtual: decimal.RequireFromString("120.00")},
		{ContaContabil: "2.01.999", DescricaoItem: "OUTRA", SaldoAtual: decimal.RequireFromString("999.00")},
	}

	matched := resultWith("100.00", "100.00")
	matched.Status = constants.StatusMatched
	matched.Detalhes = "whatever the matcher wrote"

	divergent := resultWith("1000.00", "800.00")
	divergent.CodigoFornecedor = "123"
	divergent.Status = constants.StatusDivergent
	divergent.Diferenca = decimal.RequireFromString("200.00")

	orphan := resultWith("1000.00", "500.00")
	orphan.CodigoFornecedor = "777"
	orphan.Status = constants.StatusDivergent

	pending := resultWith("500.00", "")
	pending.Status = constants.StatusPending
	pending.Diferenca = decimal.RequireFromString("500.00")

	rows := []store.ResultRow{matched, divergent, orphan, pending}
	explain(rows, items, 5)

	assert.Equal(t, constants.DetailPerfectMatch, rows[0].Detalhes)

	assert.Contains(t, rows[1].Detalhes, "NF 1")
	assert.Contains(t, rows[1].Detalhes, "NF 2")
	assert.NotContains(t, rows[1].Detalhes, "OUTRA")

	assert.Contains(t, rows[2].Detalhes, constants.DetailManualInvestigation)

	assert.Contains(t, rows[3].Detalhes, "500.00")
	assert.Contains(t, rows[3].Detalhes, constants.DetailEmptyAmount)
}

func TestExplainCapsItemEvidence(t *testing.T) {
	items := make([]store.ItemLine, 10)
	for i := range items {
		items[i] = store.ItemLine{ContaContabil: "2.01.123", DescricaoItem: "NF", SaldoAtual: decimal.Zero}
	}
	row := resultWith("1000.00", "800.00")
	row.CodigoFornecedor = "123"
	row.Status = constants.StatusDivergent

	rows := []store.ResultRow{row}
	explain(rows, items, 3)

	// Three entries, separated by the detail separator.
	assert.Equal(t, 3, countOccurrences(rows[0].Detalhes, "2.01.123"))
}

func countOccurrences(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}

func TestCheckBatchInvariants(t *testing.T) {
	okRow := func(code, ledger string) store.ResultRow {
		r := resultWith(ledger, ledger)
		r.CodigoFornecedor = code
		r.Status = constants.StatusMatched
		r.Detalhes = constants.DetailPerfectMatch
		return r
	}
	aggOf := func(code, saldo string) store.LedgerAggregate {
		return agg(code, code, saldo)
	}

	t.Run("healthy batch passes", func(t *testing.T) {
		rows := []store.ResultRow{okRow("111", "100.00"), okRow("222", "50.00")}
		aggs := []store.LedgerAggregate{aggOf("111", "100.00"), aggOf("222", "50.00")}
		require.NoError(t, checkBatch(rows, aggs))
	})

	t.Run("duplicate counterparty", func(t *testing.T) {
		rows := []store.ResultRow{okRow("111", "100.00"), okRow("111", "100.00")}
		err := checkBatch(rows, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "111")
	})

	t.Run("pending with totals on both sides", func(t *testing.T) {
		r := resultWith("100.00", "90.00")
		r.CodigoFornecedor = "111"
		r.Status = constants.StatusPending
		err := checkBatch([]store.ResultRow{r}, []store.LedgerAggregate{aggOf("111", "100.00")})
		require.Error(t, err)
	})

	t.Run("divergence without detail", func(t *testing.T) {
		r := resultWith("100.00", "10.00")
		r.CodigoFornecedor = "111"
		r.Status = constants.StatusDivergent
		err := checkBatch([]store.ResultRow{r}, []store.LedgerAggregate{aggOf("111", "100.00")})
		require.Error(t, err)
	})

	t.Run("ledger total must be conserved", func(t *testing.T) {
		rows := []store.ResultRow{okRow("111", "100.00")}
		aggs := []store.LedgerAggregate{aggOf("111", "100.00"), aggOf("222", "50.00")}
		err := checkBatch(rows, aggs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "150.00")
	})
}
