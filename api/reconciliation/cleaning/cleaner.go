// Package cleaning turns mapped import records into typed staging rows.
// Every rule is total: bad values coerce to zero or NULL per column
// contract, and the only way a row disappears is being fully empty or
// an exact duplicate.
package cleaning

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ConciliacaoFornecedores/api/reconciliation/store"
	"ConciliacaoFornecedores/internal/config"
)

// Record is one imported row keyed by canonical column name, the shape
// the header resolver emits.
type Record map[string]string

// scrub trims every field and maps null markers; reports whether
// anything non-empty survived.
func scrub(rec Record) (Record, bool) {
	any := false
	out := make(Record, len(rec))
	for k, v := range rec {
		c := CleanCell(v)
		out[k] = c
		if c != "" {
			any = true
		}
	}
	return out, any
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CleanLedger applies the ledger rules: code extraction from the
// combined counterparty field, installment and account-code defaults,
// date and amount coercion, advance flagging, then deduplication.
func CleanLedger(records []Record, advanceTypes []string) []store.LedgerRow {
	seen := make(map[string]struct{}, len(records))
	out := make([]store.LedgerRow, 0, len(records))
	for _, raw := range records {
		rec, ok := scrub(raw)
		if !ok {
			continue
		}
		row := store.LedgerRow{
			Fornecedor:    rec["fornecedor"],
			Titulo:        rec["titulo"],
			Parcela:       rec["parcela"],
			TipoTitulo:    rec["tipo_titulo"],
			Situacao:      rec["situacao"],
			ContaContabil: rec["conta_contabil"],
			CentroCusto:   rec["centro_custo"],
		}
		row.CodigoFornecedor = CodeOrRaw(row.Fornecedor)
		if row.Parcela == "" {
			row.Parcela = TrailingDigits(row.Titulo)
		}
		if row.ContaContabil == "" {
			row.ContaContabil = config.DefaultAccountCode
		}
		row.DataEmissao = ParseDate(rec["data_emissao"])
		row.DataVencimento = ParseDate(rec["data_vencimento"])
		row.ValorOriginal = ParseAmount(rec["valor_original"])
		row.SaldoDevedor = ParseAmount(rec["saldo_devedor"])
		row.Excluido = IsAdvanceType(row.TipoTitulo, advanceTypes)

		key := ledgerKey(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}

// CleanTrialBalance applies the accounting rules: counterparty class
// from the account description, code extraction when the explicit
// column is empty, amount coercion, deduplication.
func CleanTrialBalance(records []Record) []store.BalanceRow {
	return cleanBalance(records, "descricao_conta")
}

// CleanAdvances is the advance-extract variant: same shape, but the
// description lives in the item-description column.
func CleanAdvances(records []Record) []store.BalanceRow {
	return cleanBalance(records, "descricao_item")
}

func cleanBalance(records []Record, descColumn string) []store.BalanceRow {
	seen := make(map[string]struct{}, len(records))
	out := make([]store.BalanceRow, 0, len(records))
	for _, raw := range records {
		rec, ok := scrub(raw)
		if !ok {
			continue
		}
		row := store.BalanceRow{
			ContaContabil:       rec["conta_contabil"],
			Descricao:           rec[descColumn],
			DescricaoFornecedor: nullable(rec["descricao_fornecedor"]),
			SaldoAnterior:       ParseAmount(rec["saldo_anterior"]),
			Debito:              ParseAmount(rec["debito"]),
			Credito:             ParseAmount(rec["credito"]),
			MovimentoPeriodo:    ParseAmount(rec["movimento_periodo"]),
			SaldoAtual:          ParseAmount(rec["saldo_atual"]),
		}
		code := rec["codigo_fornecedor"]
		if code == "" {
			code = ExtractCode(row.Descricao)
		}
		row.CodigoFornecedor = nullable(code)
		row.TipoFornecedor = SupplierClass(row.Descricao)

		key := balanceKey(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}

// CleanAccountItems applies the item-detail rules, including the
// item-name, quantity and unit-value defaults.
func CleanAccountItems(records []Record) []store.ItemRow {
	seen := make(map[string]struct{}, len(records))
	out := make([]store.ItemRow, 0, len(records))
	for _, raw := range records {
		rec, ok := scrub(raw)
		if !ok {
			continue
		}
		row := store.ItemRow{
			ContaContabil:       rec["conta_contabil"],
			DescricaoItem:       rec["descricao_item"],
			DescricaoFornecedor: nullable(rec["descricao_fornecedor"]),
			SaldoAnterior:       ParseAmount(rec["saldo_anterior"]),
			Debito:              ParseAmount(rec["debito"]),
			Credito:             ParseAmount(rec["credito"]),
			MovimentoPeriodo:    ParseAmount(rec["movimento_periodo"]),
			SaldoAtual:          ParseAmount(rec["saldo_atual"]),
		}
		code := rec["codigo_fornecedor"]
		if code == "" {
			code = ExtractCode(row.DescricaoItem)
		}
		row.CodigoFornecedor = nullable(code)

		row.Item = rec["item"]
		if row.Item == "" {
			row.Item = ItemName(row.DescricaoItem)
		}
		if q := rec["quantidade"]; q != "" {
			row.Quantidade = ParseAmount(q)
		} else {
			row.Quantidade = decimal.NewFromInt(1)
		}
		if v := rec["valor_unitario"]; v != "" {
			row.ValorUnitario = ParseAmount(v)
		} else {
			row.ValorUnitario = row.SaldoAtual
		}
		if v := rec["valor_total"]; v != "" {
			row.ValorTotal = ParseAmount(v)
		} else {
			row.ValorTotal = row.SaldoAtual
		}

		key := itemKey(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}

func ledgerKey(r store.LedgerRow) string {
	return strings.Join([]string{
		r.Fornecedor, r.CodigoFornecedor, r.Titulo, r.Parcela, r.TipoTitulo,
		dateKey(r.DataEmissao), dateKey(r.DataVencimento),
		r.ValorOriginal.String(), r.SaldoDevedor.String(),
		r.Situacao, r.ContaContabil, r.CentroCusto,
	}, "\x1f")
}

func balanceKey(r store.BalanceRow) string {
	return strings.Join([]string{
		r.ContaContabil, r.Descricao, deref(r.CodigoFornecedor), deref(r.DescricaoFornecedor),
		r.SaldoAnterior.String(), r.Debito.String(), r.Credito.String(),
		r.MovimentoPeriodo.String(), r.SaldoAtual.String(), r.TipoFornecedor,
	}, "\x1f")
}

func itemKey(r store.ItemRow) string {
	return strings.Join([]string{
		r.ContaContabil, r.DescricaoItem, deref(r.CodigoFornecedor), deref(r.DescricaoFornecedor),
		r.SaldoAnterior.String(), r.Debito.String(), r.Credito.String(),
		r.MovimentoPeriodo.String(), r.SaldoAtual.String(),
		r.Item, r.Quantidade.String(), r.ValorUnitario.String(), r.ValorTotal.String(),
	}, "\x1f")
}

func dateKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
