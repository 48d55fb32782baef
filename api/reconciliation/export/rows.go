package export

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation/store"
	"ConciliacaoFornecedores/internal/config"
)

// Converters from store rows to sheet rows. Monetary values go in as
// floats so the number format applies; NULL amounts stay empty cells.

func summaryTable(sheet string, rows []store.ResultRow) table {
	t := table{headers: sheetHeaders[sheet], rows: make([][]interface{}, 0, len(rows))}
	for _, r := range rows {
		t.rows = append(t.rows, []interface{}{
			r.CodigoFornecedor,
			r.DescricaoFornecedor,
			nullableCell(r.SaldoContabil),
			nullableCell(r.SaldoFinanceiro),
			r.Diferenca.InexactFloat64(),
			diffType(r.Diferenca),
			r.Status,
			r.Detalhes,
		})
	}
	return t
}

func diffType(d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return constants.DiffTypeLedgerOver
	case d.IsNegative():
		return constants.DiffTypeAccountingOver
	default:
		return constants.DiffTypeNone
	}
}

func nullableCell(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}

func dateCell(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(constants.DateFormatBR)
}

func textCell(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func ledgerTable(rows []store.LedgerRow) table {
	t := table{headers: sheetHeaders[constants.SheetLedger], rows: make([][]interface{}, 0, len(rows))}
	for _, r := range rows {
		t.rows = append(t.rows, []interface{}{
			r.Fornecedor,
			r.Titulo,
			r.Parcela,
			r.TipoTitulo,
			dateCell(r.DataEmissao),
			dateCell(r.DataVencimento),
			r.ValorOriginal.InexactFloat64(),
			r.SaldoDevedor.InexactFloat64(),
			r.Situacao,
			r.ContaContabil,
			r.CentroCusto,
		})
	}
	return t
}

func balanceTable(rows []store.BalanceRow) table {
	t := table{headers: sheetHeaders[constants.SheetTrialBalance], rows: make([][]interface{}, 0, len(rows))}
	for _, r := range rows {
		t.rows = append(t.rows, []interface{}{
			r.ContaContabil,
			r.Descricao,
			textCell(r.CodigoFornecedor),
			textCell(r.DescricaoFornecedor),
			r.SaldoAnterior.InexactFloat64(),
			r.Debito.InexactFloat64(),
			r.Credito.InexactFloat64(),
			r.SaldoAtual.InexactFloat64(),
			r.TipoFornecedor,
		})
	}
	return t
}

func itemTable(rows []store.ItemDetailRow) table {
	t := table{headers: sheetHeaders[constants.SheetItems], rows: make([][]interface{}, 0, len(rows))}
	for _, r := range rows {
		t.rows = append(t.rows, []interface{}{
			r.CodigoFornecedor,
			r.DescricaoFornecedor,
			r.ContaContabil,
			r.Item,
			r.DescricaoItem,
			r.Quantidade.InexactFloat64(),
			r.ValorUnitario.InexactFloat64(),
			r.ValorTotal.InexactFloat64(),
			r.SaldoAtual.InexactFloat64(),
		})
	}
	return t
}

// metadataRows assembles the run facts: identity, window, per-status
// counts of both passes, aggregate totals, and the two conventions the
// report reader needs to interpret the numbers.
func (ex *Exporter) metadataRows(ctx context.Context, run store.Run) (table, error) {
	t := table{headers: sheetHeaders[constants.SheetMetadata]}

	primaryCounts, err := ex.store.StatusCounts(ctx, config.TableResults)
	if err != nil {
		return t, err
	}
	advanceCounts, err := ex.store.StatusCounts(ctx, config.TableAdvanceResults)
	if err != nil {
		return t, err
	}
	primaryLedger, primaryAccounting, err := ex.store.ResultTotals(ctx, config.TableResults)
	if err != nil {
		return t, err
	}
	advanceLedger, advanceAccounting, err := ex.store.ResultTotals(ctx, config.TableAdvanceResults)
	if err != nil {
		return t, err
	}

	add := func(label string, value interface{}) {
		t.rows = append(t.rows, []interface{}{label, value})
	}
	add("Identificador da execução", run.ID.String())
	add("Executado em", run.StartedAt.Format(constants.DateTimeFormat))
	add("Período de referência", fmt.Sprintf("%s a %s",
		run.ReferenceStart.Format(constants.DateFormatBR),
		run.ReferenceEnd.Format(constants.DateFormatBR)))

	for _, status := range []string{constants.StatusMatched, constants.StatusDivergent, constants.StatusPending} {
		add(fmt.Sprintf("Resultados %s (principal)", status), primaryCounts[status])
		add(fmt.Sprintf("Resultados %s (adiantamentos)", status), advanceCounts[status])
	}

	add("Total financeiro (principal)", primaryLedger.InexactFloat64())
	add("Total contábil (principal)", primaryAccounting.InexactFloat64())
	add("Total financeiro (adiantamentos)", advanceLedger.InexactFloat64())
	add("Total contábil (adiantamentos)", advanceAccounting.InexactFloat64())

	add("Tolerância", fmt.Sprintf("%.2f%% sobre o maior saldo absoluto", ex.tolerancePercent))
	add("Convenção de sinal", "Diferença = saldo financeiro - saldo contábil")
	return t, nil
}
