package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ConciliacaoFornecedores/api/reconciliation/reconerr"
)

func TestResolveLedgerHeaders(t *testing.T) {
	tests := []struct {
		name        string
		candidates  []string
		wantColumns map[string]int
		wantDerived []string
	}{
		{
			name: "canonical names",
			candidates: []string{
				"fornecedor", "titulo", "parcela", "tipo_titulo", "data_emissao",
				"data_vencimento", "valor_original", "saldo_devedor", "situacao",
				"conta_contabil", "centro_custo",
			},
			wantColumns: map[string]int{
				"fornecedor": 0, "titulo": 1, "parcela": 2, "tipo_titulo": 3,
				"data_emissao": 4, "data_vencimento": 5, "valor_original": 6,
				"saldo_devedor": 7, "situacao": 8, "conta_contabil": 9, "centro_custo": 10,
			},
		},
		{
			name: "report aliases",
			candidates: []string{
				"Fornecedor", "Titulo", "Parcela", "Tp", "Dt Emissao",
				"Dt Vencto", "Vlr Original", "Saldo Devedor", "Situacao",
				"Conta Contabil", "C Custo",
			},
			wantColumns: map[string]int{
				"fornecedor": 0, "titulo": 1, "parcela": 2, "tipo_titulo": 3,
				"data_emissao": 4, "data_vencimento": 5, "valor_original": 6,
				"saldo_devedor": 7, "situacao": 8, "conta_contabil": 9, "centro_custo": 10,
			},
		},
		{
			name: "case folding and fuzzy fallback",
			candidates: []string{
				"FORNECEDOR", "TITULO", "Saldo Devedo", "Vencimentos",
			},
			wantColumns: map[string]int{
				"fornecedor": 0, "titulo": 1, "saldo_devedor": 2, "data_vencimento": 3,
			},
			wantDerived: []string{"parcela", "conta_contabil"},
		},
		{
			name:        "derived columns absent from file",
			candidates:  []string{"Fornecedor", "Titulo", "Saldo Devedor"},
			wantColumns: map[string]int{"fornecedor": 0, "titulo": 1, "saldo_devedor": 2},
			wantDerived: []string{"parcela", "conta_contabil"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(tt.candidates, ledgerSchema)
			require.NoError(t, err)
			for col, idx := range tt.wantColumns {
				assert.Equal(t, idx, res.Columns[col], "column %s", col)
			}
			for _, d := range tt.wantDerived {
				assert.Contains(t, res.Derived, d)
			}
		})
	}
}

func TestResolveMissingRequired(t *testing.T) {
	// Neither the counterparty nor the open balance can be derived.
	_, err := Resolve([]string{"Titulo", "Situacao"}, ledgerSchema)
	require.Error(t, err)

	var ferr *reconerr.FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Contains(t, ferr.Missing, "fornecedor")
	assert.Contains(t, ferr.Missing, "saldo_devedor")
}

func TestResolveAmbiguousHeader(t *testing.T) {
	schema := TargetSchema{
		Source: SourceTrialBalance,
		Columns: []Column{
			{Name: "valor", Required: true},
		},
	}
	// Both candidates sit one edit away from the target; neither may win.
	_, err := Resolve([]string{"valor1", "valor2"}, schema)
	require.Error(t, err)

	var merr *reconerr.MappingError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "valor", merr.Column)
	assert.Len(t, merr.Candidates, 2)
}

func TestResolveFuzzyIgnoresDiacritics(t *testing.T) {
	res, err := Resolve([]string{"Conta", "Descrição da Conta", "Saldo Atual"}, trialBalanceSchema)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Columns["descricao_conta"])
}

func TestResolveDuplicatedPairs(t *testing.T) {
	// The markup extracts repeat Codigo/Descricao; the reader suffixes
	// the second occurrence and the aliases point each copy at its
	// column.
	candidates := []string{"Codigo", "Descricao", "Codigo.1", "Descricao.1", "Saldo Atual"}
	res, err := Resolve(candidates, itemsSchema)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Columns["conta_contabil"])
	assert.Equal(t, 3, res.Columns["descricao_item"])
	assert.Equal(t, 2, res.Columns["item"])
	assert.Equal(t, 4, res.Columns["saldo_atual"])
}

func TestResolveDoesNotReuseCandidates(t *testing.T) {
	// One physical column must never serve two targets.
	res, err := Resolve([]string{"Codigo", "Descricao", "Saldo Atual"}, advancesSchema)
	require.NoError(t, err)
	seen := make(map[int]string)
	for col, idx := range res.Columns {
		if prev, dup := seen[idx]; dup {
			t.Fatalf("candidate %d serves both %s and %s", idx, prev, col)
		}
		seen[idx] = col
	}
}
