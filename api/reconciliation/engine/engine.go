// Package engine implements the matcher/reconciler. Each pass walks a
// forward-only state machine (Aggregating, Matching, Diffing, Ranking,
// Explaining) entirely in memory, then commits its result rows in one
// transaction. A failure anywhere rolls back and leaves the previously
// committed result set untouched.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation/store"
	"ConciliacaoFornecedores/internal/config"
	"ConciliacaoFornecedores/internal/logger"
)

// Pass identifies one of the two reconciliations: the primary ledger
// vs trial balance, or the advance documents vs advance accounts.
type Pass struct {
	Name        string
	ResultTable string
	Excluded    bool
}

var (
	PassPrimary = Pass{Name: "primary", ResultTable: config.TableResults}
	PassAdvance = Pass{Name: "advance", ResultTable: config.TableAdvanceResults, Excluded: true}
)

// PassSummary reports one pass's outcome. Unattributed counts the
// ledger rows left out of the aggregate for lack of a due date.
type PassSummary struct {
	Pass         string `json:"pass"`
	Rows         int    `json:"rows"`
	Matched      int    `json:"matched"`
	Divergent    int    `json:"divergent"`
	Pending      int    `json:"pending"`
	Unattributed int64  `json:"unattributed"`
}

// Summary is the engine's product for one run.
type Summary struct {
	Primary PassSummary `json:"primary"`
	Advance PassSummary `json:"advance"`
}

// Engine drives both passes over the staged data.
type Engine struct {
	store     *store.Store
	tolerance decimal.Decimal
	maxDetail int
}

func New(st *store.Store, tolerancePercent float64, maxDetailLines int) *Engine {
	return &Engine{
		store:     st,
		tolerance: decimal.NewFromFloat(tolerancePercent),
		maxDetail: maxDetailLines,
	}
}

// Reconcile runs the primary pass, then the advance pass. A failed
// primary pass stops the advance pass from running at all.
func (e *Engine) Reconcile(ctx context.Context, runID uuid.UUID, from, to time.Time) (Summary, error) {
	var sum Summary
	var err error
	if sum.Primary, err = e.runPass(ctx, runID, PassPrimary, from, to); err != nil {
		return Summary{}, err
	}
	if sum.Advance, err = e.runPass(ctx, runID, PassAdvance, from, to); err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func (e *Engine) runPass(ctx context.Context, runID uuid.UUID, p Pass, from, to time.Time) (PassSummary, error) {
	run := &passRun{pass: p, state: StateIdle}

	if err := run.to(StateAggregating); err != nil {
		return PassSummary{}, err
	}
	aggs, err := e.store.LedgerAggregates(ctx, p.Excluded, from, to)
	if err != nil {
		return PassSummary{}, run.fail(err)
	}
	unattributed, err := e.store.UnattributedLedgerCount(ctx, p.Excluded)
	if err != nil {
		return PassSummary{}, run.fail(err)
	}
	lines, err := e.accountingLines(ctx, p)
	if err != nil {
		return PassSummary{}, run.fail(err)
	}

	if err := run.to(StateMatching); err != nil {
		return PassSummary{}, err
	}
	results := match(aggs, lines)

	if err := run.to(StateDiffing); err != nil {
		return PassSummary{}, err
	}
	for i := range results {
		classify(&results[i], e.tolerance)
	}

	if err := run.to(StateRanking); err != nil {
		return PassSummary{}, err
	}
	rank(results)

	if err := run.to(StateExplaining); err != nil {
		return PassSummary{}, err
	}
	items, err := e.store.ItemLines(ctx)
	if err != nil {
		return PassSummary{}, run.fail(err)
	}
	explain(results, items, e.maxDetail)

	if err := checkBatch(results, aggs); err != nil {
		return PassSummary{}, run.fail(err)
	}
	if err := e.persist(ctx, runID, p, results); err != nil {
		return PassSummary{}, run.fail(err)
	}
	if err := run.to(StateDone); err != nil {
		return PassSummary{}, err
	}

	sum := summarize(p, results, unattributed)
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(constants.FormatError(constants.MsgPassDone,
			p.Name, sum.Rows, sum.Matched, sum.Divergent, sum.Pending))
	}
	return sum, nil
}

func (e *Engine) accountingLines(ctx context.Context, p Pass) ([]store.BalanceLine, error) {
	if p.Excluded {
		return e.store.AdvanceBalanceLines(ctx)
	}
	return e.store.TrialBalanceLines(ctx)
}

// persist rebuilds the pass's result table: delete everything, insert
// the batch, commit. Any failure rolls the whole batch back.
func (e *Engine) persist(ctx context.Context, runID uuid.UUID, p Pass, rows []store.ResultRow) error {
	tx, err := e.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := e.store.ClearResults(ctx, tx, p.ResultTable); err != nil {
		return err
	}
	if err := e.store.InsertResults(ctx, tx, p.ResultTable, runID, rows); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// checkBatch enforces the batch invariants before anything touches the
// database: unique codes, no pending row with amounts on both sides,
// no unexplained divergence, and conservation of the aggregated ledger
// total.
func checkBatch(results []store.ResultRow, aggs []store.LedgerAggregate) error {
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		if _, dup := seen[r.CodigoFornecedor]; dup {
			return fmt.Errorf(constants.ErrDuplicateCounterparty, r.CodigoFornecedor)
		}
		seen[r.CodigoFornecedor] = struct{}{}

		if r.Status == constants.StatusPending &&
			r.SaldoFinanceiro.Valid && !r.SaldoFinanceiro.Decimal.IsZero() &&
			r.SaldoContabil.Valid && !r.SaldoContabil.Decimal.IsZero() {
			return fmt.Errorf(constants.ErrImpossibleTotals, r.CodigoFornecedor)
		}
		if r.Status == constants.StatusDivergent && r.Detalhes == "" {
			return fmt.Errorf(constants.ErrDivergenceUnexplained, r.CodigoFornecedor)
		}
	}

	var fromResults, fromAggs decimal.Decimal
	for _, r := range results {
		if r.SaldoFinanceiro.Valid {
			fromResults = fromResults.Add(r.SaldoFinanceiro.Decimal)
		}
	}
	for _, a := range aggs {
		fromAggs = fromAggs.Add(a.SaldoFinanceiro)
	}
	if !fromResults.Equal(fromAggs) {
		return fmt.Errorf(constants.ErrConservationBroken,
			fromResults.StringFixed(2), fromAggs.StringFixed(2))
	}
	return nil
}

func summarize(p Pass, results []store.ResultRow, unattributed int64) PassSummary {
	sum := PassSummary{Pass: p.Name, Rows: len(results), Unattributed: unattributed}
	for _, r := range results {
		switch r.Status {
		case constants.StatusMatched:
			sum.Matched++
		case constants.StatusDivergent:
			sum.Divergent++
		default:
			sum.Pending++
		}
	}
	return sum
}
