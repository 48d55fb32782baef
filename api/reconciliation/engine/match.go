package engine

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation/cleaning"
	"ConciliacaoFornecedores/api/reconciliation/store"
	"ConciliacaoFornecedores/internal/config"
)

// draft accumulates result rows keyed by counterparty code while the
// matcher works. Insertion order is preserved so the batch stays
// deterministic.
type draft struct {
	order []string
	rows  map[string]*store.ResultRow
}

func newDraft(capacity int) *draft {
	return &draft{
		order: make([]string, 0, capacity),
		rows:  make(map[string]*store.ResultRow, capacity),
	}
}

func (d *draft) get(code string) *store.ResultRow {
	if r, ok := d.rows[code]; ok {
		return r
	}
	r := &store.ResultRow{CodigoFornecedor: code}
	d.rows[code] = r
	d.order = append(d.order, code)
	return r
}

func (d *draft) list() []store.ResultRow {
	out := make([]store.ResultRow, 0, len(d.order))
	for _, code := range d.order {
		out = append(out, *d.rows[code])
	}
	return out
}

// match pairs ledger aggregates with accounting lines and folds the
// unmatched supplier-class lines in as Pending candidates. Strategy
// precedence per aggregate: exact code equality; only when that
// matches nothing, word-boundary containment of the code inside the
// normalized description.
func match(aggs []store.LedgerAggregate, lines []store.BalanceLine) []store.ResultRow {
	d := newDraft(len(aggs) + len(lines))
	normDesc := make([]string, len(lines))
	for i := range lines {
		normDesc[i] = cleaning.NormalizeText(lines[i].Descricao)
	}
	taken := make([]bool, len(lines))

	for _, agg := range aggs {
		row := d.get(agg.CodigoFornecedor)
		row.DescricaoFornecedor = agg.Descricao
		row.SaldoFinanceiro = decimal.NewNullDecimal(agg.SaldoFinanceiro)

		matched := matchLines(agg.CodigoFornecedor, lines, normDesc)
		if len(matched) == 0 {
			continue
		}
		total := decimal.Zero
		for _, i := range matched {
			total = total.Add(lines[i].SaldoAtual)
			taken[i] = true
		}
		row.SaldoContabil = decimal.NewNullDecimal(total)
		row.Detalhes = classDetail(lines, matched)
	}

	// Supplier-class accounting groups with no ledger counterpart
	// enter as accounting-only rows; Diffing turns them Pending.
	for i, line := range lines {
		if taken[i] || !strings.HasPrefix(line.TipoFornecedor, "FORNEC") {
			continue
		}
		code := syntheticCode(line)
		if code == "" {
			continue
		}
		row := d.get(code)
		if row.DescricaoFornecedor == "" {
			row.DescricaoFornecedor = accountingDescription(line)
		}
		prev := decimal.Zero
		if row.SaldoContabil.Valid {
			prev = row.SaldoContabil.Decimal
		}
		row.SaldoContabil = decimal.NewNullDecimal(prev.Add(line.SaldoAtual))
		appendDetail(row, constants.FormatError(constants.DetailClassEntry,
			line.TipoFornecedor, line.SaldoAtual.StringFixed(2)))
	}

	return d.list()
}

// matchLines returns the indexes of the accounting lines belonging to
// a counterparty code.
func matchLines(code string, lines []store.BalanceLine, normDesc []string) []int {
	var exact []int
	for i := range lines {
		if lines[i].CodigoFornecedor != "" && lines[i].CodigoFornecedor == code {
			exact = append(exact, i)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	if len(code) < config.MinCounterpartyDigits || !allDigits(code) {
		return nil
	}
	var contained []int
	for i := range lines {
		if containsCode(normDesc[i], code) {
			contained = append(contained, i)
		}
	}
	return contained
}

// containsCode reports whether code occurs in the normalized
// description on a word boundary. A bare prefix of a longer digit run
// does not count.
func containsCode(desc, code string) bool {
	for start := 0; ; {
		i := strings.Index(desc[start:], code)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(code)
		before := i == 0 || !isAlnum(desc[i-1])
		after := end == len(desc) || !isAlnum(desc[end])
		if before && after {
			return true
		}
		start = i + 1
	}
}

func isAlnum(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z'
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// classDetail renders the matched lines as "<class>: <balance>"
// entries sorted by class then code.
func classDetail(lines []store.BalanceLine, matched []int) string {
	idx := make([]int, len(matched))
	copy(idx, matched)
	sort.Slice(idx, func(a, b int) bool {
		la, lb := lines[idx[a]], lines[idx[b]]
		if la.TipoFornecedor != lb.TipoFornecedor {
			return la.TipoFornecedor < lb.TipoFornecedor
		}
		return la.ContaContabil < lb.ContaContabil
	})
	parts := make([]string, 0, len(idx))
	for _, i := range idx {
		parts = append(parts, constants.FormatError(constants.DetailClassEntry,
			lines[i].TipoFornecedor, lines[i].SaldoAtual.StringFixed(2)))
	}
	return strings.Join(parts, constants.DetailSeparator)
}

func appendDetail(row *store.ResultRow, entry string) {
	if row.Detalhes == "" {
		row.Detalhes = entry
		return
	}
	row.Detalhes += constants.DetailSeparator + entry
}

// syntheticCode derives the grouping key of an accounting-only line:
// the explicit code, else the first token of its description, else the
// account code itself.
func syntheticCode(line store.BalanceLine) string {
	if line.CodigoFornecedor != "" {
		return line.CodigoFornecedor
	}
	if tok := cleaning.FirstToken(line.Descricao); tok != "" {
		return tok
	}
	return strings.TrimSpace(line.ContaContabil)
}

func accountingDescription(line store.BalanceLine) string {
	if line.DescricaoFornecedor != "" {
		return line.DescricaoFornecedor
	}
	return line.Descricao
}
