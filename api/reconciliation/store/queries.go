package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/internal/config"
)

// LedgerAggregate is one counterparty's summed open balance inside the
// reference window.
type LedgerAggregate struct {
	CodigoFornecedor string
	Descricao        string
	SaldoFinanceiro  decimal.Decimal
	Documentos       int
}

// LedgerAggregates groups ledger rows by counterparty code, excluded
// or primary subset depending on the pass. Rows without a due date
// cannot be attributed to the window and are counted separately
// (UnattributedLedgerCount).
func (s *Store) LedgerAggregates(ctx context.Context, excluded bool, from, to time.Time) ([]LedgerAggregate, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT codigo_fornecedor,
		       MAX(fornecedor) AS descricao,
		       COALESCE(SUM(saldo_devedor), 0) AS saldo,
		       COUNT(*) AS documentos
		FROM %s
		WHERE excluido = $1
		  AND data_vencimento IS NOT NULL
		  AND data_vencimento BETWEEN $2 AND $3
		GROUP BY codigo_fornecedor
		ORDER BY codigo_fornecedor`, config.TableLedger),
		excluded, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []LedgerAggregate
	for rows.Next() {
		var agg LedgerAggregate
		if err := rows.Scan(&agg.CodigoFornecedor, &agg.Descricao, &agg.SaldoFinanceiro, &agg.Documentos); err != nil {
			return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
		}
		out = append(out, agg)
	}
	return out, rows.Err()
}

func (s *Store) UnattributedLedgerCount(ctx context.Context, excluded bool) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT COUNT(*) FROM %s
		WHERE excluido = $1 AND data_vencimento IS NULL`, config.TableLedger),
		excluded).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
	}
	return n, nil
}

// BalanceLine is the matcher's view of an accounting line: codes
// coalesced to empty strings, only the columns matching needs.
type BalanceLine struct {
	ContaContabil       string
	CodigoFornecedor    string
	Descricao           string
	DescricaoFornecedor string
	SaldoAtual          decimal.Decimal
	TipoFornecedor      string
}

func (s *Store) TrialBalanceLines(ctx context.Context) ([]BalanceLine, error) {
	return s.balanceLines(ctx, config.TableTrialBalance, "descricao_conta")
}

func (s *Store) AdvanceBalanceLines(ctx context.Context) ([]BalanceLine, error) {
	return s.balanceLines(ctx, config.TableAdvances, "descricao_item")
}

func (s *Store) balanceLines(ctx context.Context, table, descColumn string) ([]BalanceLine, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT COALESCE(conta_contabil, ''),
		       COALESCE(codigo_fornecedor, ''),
		       COALESCE(%s, ''),
		       COALESCE(descricao_fornecedor, ''),
		       saldo_atual,
		       COALESCE(tipo_fornecedor, '')
		FROM %s
		ORDER BY tipo_fornecedor, conta_contabil`, descColumn, table))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []BalanceLine
	for rows.Next() {
		var line BalanceLine
		if err := rows.Scan(&line.ContaContabil, &line.CodigoFornecedor, &line.Descricao,
			&line.DescricaoFornecedor, &line.SaldoAtual, &line.TipoFornecedor); err != nil {
			return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

// ItemLine is the matcher's view of an item detail line, used to build
// divergence explanations.
type ItemLine struct {
	CodigoFornecedor string
	ContaContabil    string
	DescricaoItem    string
	SaldoAtual       decimal.Decimal
}

func (s *Store) ItemLines(ctx context.Context) ([]ItemLine, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT COALESCE(codigo_fornecedor, ''),
		       COALESCE(conta_contabil, ''),
		       COALESCE(descricao_item, ''),
		       saldo_atual
		FROM %s
		ORDER BY conta_contabil`, config.TableAccountItems))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []ItemLine
	for rows.Next() {
		var line ItemLine
		if err := rows.Scan(&line.CodigoFornecedor, &line.ContaContabil,
			&line.DescricaoItem, &line.SaldoAtual); err != nil {
			return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Exporter reads

// Results returns a result table ordered by importance (largest
// absolute difference first), the order the summary sheet uses.
func (s *Store) Results(ctx context.Context, table string) ([]ResultRow, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT codigo_fornecedor, COALESCE(descricao_fornecedor, ''),
		       saldo_financeiro, saldo_contabil,
		       COALESCE(diferenca, 0), status, COALESCE(detalhes, ''),
		       COALESCE(ordem_importancia, 0)
		FROM %s
		ORDER BY ABS(COALESCE(diferenca, 0)) DESC, codigo_fornecedor`, table))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []ResultRow
	for rows.Next() {
		var r ResultRow
		if err := rows.Scan(&r.CodigoFornecedor, &r.DescricaoFornecedor,
			&r.SaldoFinanceiro, &r.SaldoContabil, &r.Diferenca,
			&r.Status, &r.Detalhes, &r.OrdemImportancia); err != nil {
			return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LedgerDetail returns the in-period, non-excluded documents for the
// ledger detail sheet.
func (s *Store) LedgerDetail(ctx context.Context, from, to time.Time) ([]LedgerRow, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT COALESCE(fornecedor, ''), COALESCE(codigo_fornecedor, ''),
		       COALESCE(titulo, ''), COALESCE(parcela, ''), COALESCE(tipo_titulo, ''),
		       data_emissao, data_vencimento,
		       valor_original, saldo_devedor,
		       COALESCE(situacao, ''), COALESCE(conta_contabil, ''), COALESCE(centro_custo, ''),
		       excluido
		FROM %s
		WHERE excluido = FALSE
		  AND data_vencimento BETWEEN $1 AND $2
		ORDER BY fornecedor, titulo`, config.TableLedger),
		from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []LedgerRow
	for rows.Next() {
		var r LedgerRow
		if err := rows.Scan(&r.Fornecedor, &r.CodigoFornecedor,
			&r.Titulo, &r.Parcela, &r.TipoTitulo,
			&r.DataEmissao, &r.DataVencimento,
			&r.ValorOriginal, &r.SaldoDevedor,
			&r.Situacao, &r.ContaContabil, &r.CentroCusto,
			&r.Excluido); err != nil {
			return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SupplierBalanceDetail returns the supplier-class trial balance lines
// for the trial balance sheet.
func (s *Store) SupplierBalanceDetail(ctx context.Context) ([]BalanceRow, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT COALESCE(conta_contabil, ''), COALESCE(descricao_conta, ''),
		       codigo_fornecedor, descricao_fornecedor,
		       saldo_anterior, debito, credito, movimento_periodo, saldo_atual,
		       COALESCE(tipo_fornecedor, '')
		FROM %s
		WHERE tipo_fornecedor LIKE $1
		ORDER BY tipo_fornecedor, conta_contabil`, config.TableTrialBalance),
		constants.SupplierClassPattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []BalanceRow
	for rows.Next() {
		var r BalanceRow
		if err := rows.Scan(&r.ContaContabil, &r.Descricao,
			&r.CodigoFornecedor, &r.DescricaoFornecedor,
			&r.SaldoAnterior, &r.Debito, &r.Credito, &r.MovimentoPeriodo, &r.SaldoAtual,
			&r.TipoFornecedor); err != nil {
			return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ItemDetailRow is one line of the item sheet: item detail joined to a
// non-matched result by code containment in the account code.
type ItemDetailRow struct {
	CodigoFornecedor    string
	DescricaoFornecedor string
	ContaContabil       string
	Item                string
	DescricaoItem       string
	Quantidade          decimal.Decimal
	ValorUnitario       decimal.Decimal
	ValorTotal          decimal.Decimal
	SaldoAtual          decimal.Decimal
}

func (s *Store) ItemDetailForResults(ctx context.Context) ([]ItemDetailRow, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT r.codigo_fornecedor, COALESCE(r.descricao_fornecedor, ''),
		       COALESCE(ci.conta_contabil, ''), COALESCE(ci.item, ''),
		       COALESCE(ci.descricao_item, ''),
		       ci.quantidade, ci.valor_unitario, ci.valor_total, ci.saldo_atual
		FROM %s ci
		JOIN %s r ON ci.conta_contabil LIKE '%%' || r.codigo_fornecedor || '%%'
		WHERE r.status <> $1
		ORDER BY r.codigo_fornecedor, ci.conta_contabil`,
		config.TableAccountItems, config.TableResults),
		constants.StatusMatched)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []ItemDetailRow
	for rows.Next() {
		var r ItemDetailRow
		if err := rows.Scan(&r.CodigoFornecedor, &r.DescricaoFornecedor,
			&r.ContaContabil, &r.Item, &r.DescricaoItem,
			&r.Quantidade, &r.ValorUnitario, &r.ValorTotal, &r.SaldoAtual); err != nil {
			return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// StatusCounts feeds the metadata sheet and the run journal.
func (s *Store) StatusCounts(ctx context.Context, table string) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT status, COUNT(*) FROM %s GROUP BY status`, table))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ResultTotals returns the summed ledger and accounting totals of a
// result table.
func (s *Store) ResultTotals(ctx context.Context, table string) (ledger, accounting decimal.Decimal, err error) {
	err = s.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT COALESCE(SUM(saldo_financeiro), 0), COALESCE(SUM(saldo_contabil), 0)
		FROM %s`, table)).Scan(&ledger, &accounting)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%s: %w", constants.ErrQueryFailed, err)
	}
	return ledger, accounting, nil
}
