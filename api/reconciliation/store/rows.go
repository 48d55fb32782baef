package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Typed rows mirror the tables one to one. The cleaner produces them,
// ReplaceSourceRows copies them in, the engine and the exporter read
// them back.

// LedgerRow is one receivable/payable document installment.
type LedgerRow struct {
	Fornecedor       string
	CodigoFornecedor string
	Titulo           string
	Parcela          string
	TipoTitulo       string
	DataEmissao      *time.Time
	DataVencimento   *time.Time
	ValorOriginal    decimal.Decimal
	SaldoDevedor     decimal.Decimal
	Situacao         string
	ContaContabil    string
	CentroCusto      string
	Excluido         bool
}

func LedgerColumns() []string {
	return []string{
		"fornecedor", "codigo_fornecedor", "titulo", "parcela", "tipo_titulo",
		"data_emissao", "data_vencimento", "valor_original", "saldo_devedor",
		"situacao", "conta_contabil", "centro_custo", "excluido",
	}
}

func LedgerCopyRows(rows []LedgerRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{
			r.Fornecedor, r.CodigoFornecedor, r.Titulo, r.Parcela, r.TipoTitulo,
			r.DataEmissao, r.DataVencimento, r.ValorOriginal, r.SaldoDevedor,
			r.Situacao, r.ContaContabil, r.CentroCusto, r.Excluido,
		})
	}
	return out
}

// BalanceRow is one general-ledger balance line. Trial balance lines
// store the description under descricao_conta, advance lines under
// descricao_item; the struct is shared and the column list differs.
type BalanceRow struct {
	ContaContabil       string
	Descricao           string
	CodigoFornecedor    *string
	DescricaoFornecedor *string
	SaldoAnterior       decimal.Decimal
	Debito              decimal.Decimal
	Credito             decimal.Decimal
	MovimentoPeriodo    decimal.Decimal
	SaldoAtual          decimal.Decimal
	TipoFornecedor      string
}

func TrialBalanceColumns() []string {
	return []string{
		"conta_contabil", "descricao_conta", "codigo_fornecedor", "descricao_fornecedor",
		"saldo_anterior", "debito", "credito", "movimento_periodo", "saldo_atual",
		"tipo_fornecedor",
	}
}

func AdvanceColumns() []string {
	return []string{
		"conta_contabil", "descricao_item", "codigo_fornecedor", "descricao_fornecedor",
		"saldo_anterior", "debito", "credito", "movimento_periodo", "saldo_atual",
		"tipo_fornecedor",
	}
}

func BalanceCopyRows(rows []BalanceRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{
			r.ContaContabil, r.Descricao, r.CodigoFornecedor, r.DescricaoFornecedor,
			r.SaldoAnterior, r.Debito, r.Credito, r.MovimentoPeriodo, r.SaldoAtual,
			r.TipoFornecedor,
		})
	}
	return out
}

// ItemRow is one account/item detail line, used to explain divergences
// and to build the item sheet.
type ItemRow struct {
	ContaContabil       string
	DescricaoItem       string
	CodigoFornecedor    *string
	DescricaoFornecedor *string
	SaldoAnterior       decimal.Decimal
	Debito              decimal.Decimal
	Credito             decimal.Decimal
	MovimentoPeriodo    decimal.Decimal
	SaldoAtual          decimal.Decimal
	Item                string
	Quantidade          decimal.Decimal
	ValorUnitario       decimal.Decimal
	ValorTotal          decimal.Decimal
}

func ItemColumns() []string {
	return []string{
		"conta_contabil", "descricao_item", "codigo_fornecedor", "descricao_fornecedor",
		"saldo_anterior", "debito", "credito", "movimento_periodo", "saldo_atual",
		"item", "quantidade", "valor_unitario", "valor_total",
	}
}

func ItemCopyRows(rows []ItemRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{
			r.ContaContabil, r.DescricaoItem, r.CodigoFornecedor, r.DescricaoFornecedor,
			r.SaldoAnterior, r.Debito, r.Credito, r.MovimentoPeriodo, r.SaldoAtual,
			r.Item, r.Quantidade, r.ValorUnitario, r.ValorTotal,
		})
	}
	return out
}

// ResultRow is one reconciliation verdict. Totals are nullable: a NULL
// side means that side produced no records at all, which is not the
// same as a zero balance.
type ResultRow struct {
	CodigoFornecedor    string              `json:"codigo_fornecedor"`
	DescricaoFornecedor string              `json:"descricao_fornecedor"`
	SaldoFinanceiro     decimal.NullDecimal `json:"saldo_financeiro"`
	SaldoContabil       decimal.NullDecimal `json:"saldo_contabil"`
	Diferenca           decimal.Decimal     `json:"diferenca"`
	Status              string              `json:"status"`
	Detalhes            string              `json:"detalhes"`
	OrdemImportancia    int                 `json:"ordem_importancia"`
}
