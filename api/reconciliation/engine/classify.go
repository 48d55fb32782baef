package engine

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation/store"
)

var hundred = decimal.NewFromInt(100)

// classify fills diferenca and status from the two totals. Sign
// convention: ledger minus accounting, rounded to cents. A missing or
// zero side never produces a divergence verdict on its own; it stays
// Pending when the other side is positive.
func classify(r *store.ResultRow, tolerancePercent decimal.Decimal) {
	ledger := nullableValue(r.SaldoFinanceiro)
	accounting := nullableValue(r.SaldoContabil)
	r.Diferenca = ledger.Sub(accounting).Round(2)

	ledgerEmpty := !r.SaldoFinanceiro.Valid || ledger.IsZero()
	accountingEmpty := !r.SaldoContabil.Valid || accounting.IsZero()

	switch {
	case ledgerEmpty && accountingEmpty:
		r.Status = constants.StatusPending
	case ledgerEmpty && accounting.IsPositive():
		r.Status = constants.StatusPending
	case accountingEmpty && ledger.IsPositive():
		r.Status = constants.StatusPending
	default:
		limit := decimal.Max(ledger.Abs(), accounting.Abs()).Mul(tolerancePercent).Div(hundred)
		if r.Diferenca.Abs().LessThanOrEqual(limit) {
			r.Status = constants.StatusMatched
		} else {
			r.Status = constants.StatusDivergent
		}
	}
}

func nullableValue(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// rank assigns ordem_importancia: the count of rows whose absolute
// difference is at least this row's. The largest divergence ranks 1;
// ties share their group's rank.
func rank(results []store.ResultRow) {
	idx := make([]int, len(results))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return results[idx[a]].Diferenca.Abs().GreaterThan(results[idx[b]].Diferenca.Abs())
	})

	for start := 0; start < len(idx); {
		end := start
		for end+1 < len(idx) &&
			results[idx[end+1]].Diferenca.Abs().Equal(results[idx[start]].Diferenca.Abs()) {
			end++
		}
		for i := start; i <= end; i++ {
			results[idx[i]].OrdemImportancia = end + 1
		}
		start = end + 1
	}
}

// explain finalizes the detail text per status: perfect-match text for
// OK rows, item-level evidence (or the manual-investigation marker)
// appended for divergences, the totals summary for pending rows.
func explain(results []store.ResultRow, items []store.ItemLine, maxLines int) {
	for i := range results {
		r := &results[i]
		switch r.Status {
		case constants.StatusMatched:
			r.Detalhes = constants.DetailPerfectMatch
		case constants.StatusDivergent:
			lines := itemEntries(r.CodigoFornecedor, items, maxLines)
			if len(lines) == 0 {
				appendDetail(r, constants.DetailManualInvestigation)
				continue
			}
			for _, l := range lines {
				appendDetail(r, l)
			}
		default:
			r.Detalhes = totalsSummary(r)
		}
	}
}

func totalsSummary(r *store.ResultRow) string {
	return constants.FormatError(constants.DetailTotalsSummary,
		nullableText(r.SaldoFinanceiro), nullableText(r.SaldoContabil),
		r.Diferenca.StringFixed(2))
}

func nullableText(d decimal.NullDecimal) string {
	if !d.Valid {
		return constants.DetailEmptyAmount
	}
	return d.Decimal.StringFixed(2)
}

// itemEntries picks up to max item lines whose account code contains
// the counterparty code, mirroring the workbook's item sheet join.
func itemEntries(code string, items []store.ItemLine, max int) []string {
	if code == "" {
		return nil
	}
	var out []string
	for _, item := range items {
		if !strings.Contains(item.ContaContabil, code) {
			continue
		}
		out = append(out, constants.FormatError(constants.DetailItemEntry,
			item.ContaContabil, item.DescricaoItem, item.SaldoAtual.StringFixed(2)))
		if len(out) == max {
			break
		}
	}
	return out
}
