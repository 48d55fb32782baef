// Package store owns the relational schema of the reconciliation
// pipeline: the four normalized source tables, the two result tables
// and the run journal. It is a plain handle constructed once at
// bootstrap and passed into every component; no global connection.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/internal/config"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect opens a pool with the numeric codec bridged to shopspring
// decimal. Every monetary column in the schema relies on that bridge,
// both for CopyFrom staging and for scanning aggregates back out, so
// all pools must come through here.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Begin opens the transaction a reconciliation pass runs inside.
func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	return s.pool.Begin(ctx)
}

// Migrate creates the schema when absent. Monetary columns are
// NUMERIC(18,2); result statuses are constrained to the three
// persisted values; counterparty codes are unique per result table
// because result tables only ever hold one run.
func (s *Store) Migrate(ctx context.Context) error {
	ddl := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				fornecedor TEXT,
				codigo_fornecedor TEXT,
				titulo TEXT,
				parcela TEXT,
				tipo_titulo TEXT,
				data_emissao DATE,
				data_vencimento DATE,
				valor_original NUMERIC(18,2) DEFAULT 0,
				saldo_devedor NUMERIC(18,2) DEFAULT 0,
				situacao TEXT,
				conta_contabil TEXT,
				centro_custo TEXT,
				excluido BOOLEAN DEFAULT FALSE,
				data_processamento TIMESTAMPTZ DEFAULT now()
			)`, config.TableLedger),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				conta_contabil TEXT,
				descricao_conta TEXT,
				codigo_fornecedor TEXT,
				descricao_fornecedor TEXT,
				saldo_anterior NUMERIC(18,2) DEFAULT 0,
				debito NUMERIC(18,2) DEFAULT 0,
				credito NUMERIC(18,2) DEFAULT 0,
				movimento_periodo NUMERIC(18,2) DEFAULT 0,
				saldo_atual NUMERIC(18,2) DEFAULT 0,
				tipo_fornecedor TEXT,
				data_processamento TIMESTAMPTZ DEFAULT now()
			)`, config.TableTrialBalance),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				conta_contabil TEXT,
				descricao_item TEXT,
				codigo_fornecedor TEXT,
				descricao_fornecedor TEXT,
				saldo_anterior NUMERIC(18,2) DEFAULT 0,
				debito NUMERIC(18,2) DEFAULT 0,
				credito NUMERIC(18,2) DEFAULT 0,
				movimento_periodo NUMERIC(18,2) DEFAULT 0,
				saldo_atual NUMERIC(18,2) DEFAULT 0,
				item TEXT DEFAULT '',
				quantidade NUMERIC(18,2) DEFAULT 1,
				valor_unitario NUMERIC(18,2) DEFAULT 0,
				valor_total NUMERIC(18,2) DEFAULT 0,
				data_processamento TIMESTAMPTZ DEFAULT now()
			)`, config.TableAccountItems),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				conta_contabil TEXT,
				descricao_item TEXT,
				codigo_fornecedor TEXT,
				descricao_fornecedor TEXT,
				saldo_anterior NUMERIC(18,2) DEFAULT 0,
				debito NUMERIC(18,2) DEFAULT 0,
				credito NUMERIC(18,2) DEFAULT 0,
				movimento_periodo NUMERIC(18,2) DEFAULT 0,
				saldo_atual NUMERIC(18,2) DEFAULT 0,
				tipo_fornecedor TEXT,
				data_processamento TIMESTAMPTZ DEFAULT now()
			)`, config.TableAdvances),
		resultTableDDL(config.TableResults),
		resultTableDDL(config.TableAdvanceResults),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id UUID PRIMARY KEY,
				started_at TIMESTAMPTZ DEFAULT now(),
				finished_at TIMESTAMPTZ,
				reference_start DATE,
				reference_end DATE,
				status TEXT,
				detail TEXT
			)`, config.TableRuns),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_vencimento ON %s (data_vencimento)`,
			config.TableLedger, config.TableLedger),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_codigo ON %s (codigo_fornecedor)`,
			config.TableTrialBalance, config.TableTrialBalance),
	}
	for _, stmt := range ddl {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func resultTableDDL(table string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			run_id UUID,
			codigo_fornecedor TEXT UNIQUE,
			descricao_fornecedor TEXT,
			saldo_financeiro NUMERIC(18,2),
			saldo_contabil NUMERIC(18,2),
			diferenca NUMERIC(18,2) DEFAULT 0,
			status TEXT CHECK (status IN ('%s','%s','%s')),
			detalhes TEXT,
			ordem_importancia INTEGER,
			data_processamento TIMESTAMPTZ DEFAULT now()
		)`, table, constants.StatusMatched, constants.StatusDivergent, constants.StatusPending)
}

// ReplaceSourceRows clears a source table and bulk-copies the cleaned
// rows of the current file into it, as one transaction. A failed copy
// leaves the previous import untouched.
func (s *Store) ReplaceSourceRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", constants.ErrTransactionFailed, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return 0, fmt.Errorf("%s: %w", constants.FormatError(constants.ErrTruncateFailed, table), err)
	}
	copied, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", constants.FormatError(constants.ErrCopyFailed, table), err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", constants.ErrTransactionCommitFailed, err)
	}
	return copied, nil
}

// ClearResults and InsertResults run inside the pass transaction so a
// failed pass never leaves a half-built result set behind.
func (s *Store) ClearResults(ctx context.Context, tx pgx.Tx, table string) error {
	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return fmt.Errorf("%s: %w", constants.FormatError(constants.ErrTruncateFailed, table), err)
	}
	return nil
}

func (s *Store) InsertResults(ctx context.Context, tx pgx.Tx, table string, runID uuid.UUID, rows []ResultRow) error {
	copyRows := make([][]any, 0, len(rows))
	for _, r := range rows {
		copyRows = append(copyRows, []any{
			runID,
			r.CodigoFornecedor,
			r.DescricaoFornecedor,
			r.SaldoFinanceiro,
			r.SaldoContabil,
			r.Diferenca,
			r.Status,
			r.Detalhes,
			r.OrdemImportancia,
		})
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{table}, []string{
		"run_id", "codigo_fornecedor", "descricao_fornecedor",
		"saldo_financeiro", "saldo_contabil", "diferenca",
		"status", "detalhes", "ordem_importancia",
	}, pgx.CopyFromRows(copyRows))
	if err != nil {
		return fmt.Errorf("%s: %w", constants.FormatError(constants.ErrCopyFailed, table), err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Run journal

type Run struct {
	ID             uuid.UUID
	StartedAt      time.Time
	FinishedAt     *time.Time
	ReferenceStart time.Time
	ReferenceEnd   time.Time
	Status         string
	Detail         string
}

func (s *Store) OpenRun(ctx context.Context, run Run) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (run_id, reference_start, reference_end, status, detail)
		VALUES ($1, $2, $3, $4, $5)`, config.TableRuns),
		run.ID, run.ReferenceStart, run.ReferenceEnd, run.Status, run.Detail)
	if err != nil {
		return fmt.Errorf("open run: %w", err)
	}
	return nil
}

func (s *Store) CloseRun(ctx context.Context, id uuid.UUID, status, detail string) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET finished_at = now(), status = $2, detail = $3
		WHERE run_id = $1`, config.TableRuns),
		id, status, detail)
	if err != nil {
		return fmt.Errorf("close run: %w", err)
	}
	return nil
}

func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT run_id, started_at, finished_at, reference_start, reference_end, status, detail
		FROM %s ORDER BY started_at DESC LIMIT 1`, config.TableRuns))
	var run Run
	if err := row.Scan(&run.ID, &run.StartedAt, &run.FinishedAt,
		&run.ReferenceStart, &run.ReferenceEnd, &run.Status, &run.Detail); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return &run, nil
}
