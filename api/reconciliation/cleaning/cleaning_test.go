package cleaning

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ConciliacaoFornecedores/api/constants"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "brazilian thousands and decimal", raw: "1.234,56", want: "1234.56"},
		{name: "currency symbol and spaces", raw: "R$ 1.234,56", want: "1234.56"},
		{name: "negative", raw: "-15,90", want: "-15.9"},
		{name: "plain integer", raw: "1234", want: "1234"},
		{name: "no decimals", raw: "2.500", want: "2500"},
		{name: "letters only", raw: "abc", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCurrency(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseAmount(t *testing.T) {
	assert.True(t, ParseAmount("").IsZero())
	assert.True(t, ParseAmount("   ").IsZero())
	assert.True(t, ParseAmount("n/d").IsZero())
	assert.Equal(t, "1234.56", ParseAmount("1.234,56").String())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "day first slash", raw: "20/08/2025", want: "2025-08-20"},
		{name: "day first dash", raw: "20-08-2025", want: "2025-08-20"},
		{name: "day first with time", raw: "20/08/2025 10:30:00", want: "2025-08-20"},
		{name: "two digit year", raw: "20/08/25", want: "2025-08-20"},
		{name: "iso", raw: "2025-08-20", want: "2025-08-20"},
		{name: "iso with time", raw: "2025-08-20 10:30:00", want: "2025-08-20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.raw)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	t.Run("blank and garbage stay nil", func(t *testing.T) {
		assert.Nil(t, ParseDate(""))
		assert.Nil(t, ParseDate("   "))
		assert.Nil(t, ParseDate("31/31/2025"))
		assert.Nil(t, ParseDate("amanhã"))
	})
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "São Paulo  Ltda", want: "SAO PAULO LTDA"},
		{raw: "  fornecedores\tnacionais ", want: "FORNECEDORES NACIONAIS"},
		{raw: "Crédito", want: "CREDITO"},
		{raw: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeText(tt.raw))
	}
}

func TestCleanCell(t *testing.T) {
	assert.Equal(t, "", CleanCell(" nan "))
	assert.Equal(t, "", CleanCell("None"))
	assert.Equal(t, "", CleanCell("NaT"))
	assert.Equal(t, "banana", CleanCell(" banana "))
	// "nan" only matches the whole cell, never a substring.
	assert.Equal(t, "nantes", CleanCell("nantes"))
}

func TestStripArtifacts(t *testing.T) {
	assert.Equal(t, "Saldo Devedor", StripArtifacts("Saldo_x000D_Devedor"))
	assert.Equal(t, "Data de Vencimento", StripArtifacts("Data de\r\nVencimento"))
}

func TestSupplierClass(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{desc: "FORNECEDORES NACIONAIS", want: constants.ClassNationalSupplier},
		{desc: "Fornecedores nacionais", want: constants.ClassNationalSupplier},
		{desc: "FORNECEDORES DIVERSOS", want: constants.ClassSupplier},
		{desc: "fornec. estrangeiros", want: constants.ClassSupplier},
		{desc: "ADIANTAMENTO A EMPREGADOS", want: constants.ClassOther},
		{desc: "", want: constants.ClassOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SupplierClass(tt.desc), "desc=%q", tt.desc)
	}
}

func TestExtractCode(t *testing.T) {
	assert.Equal(t, "10101", ExtractCode("10101 - FORNECEDOR ABC LTDA"))
	assert.Equal(t, "2050090", ExtractCode("CONTA 2050090 FORNECEDORES"))
	// Runs shorter than the minimum are not codes.
	assert.Equal(t, "", ExtractCode("LOJA 12"))
	assert.Equal(t, "", ExtractCode("SEM NUMERO"))
}

func TestCodeOrRaw(t *testing.T) {
	assert.Equal(t, "10101", CodeOrRaw("10101 - FORNECEDOR ABC"))
	assert.Equal(t, "FORNECEDOR SEM CODIGO", CodeOrRaw("  FORNECEDOR SEM CODIGO  "))
}

func TestTrailingDigits(t *testing.T) {
	assert.Equal(t, "1", TrailingDigits("NF-00123-1"))
	assert.Equal(t, "002", TrailingDigits("DOC/002"))
	assert.Equal(t, "1", TrailingDigits("SEM-PARCELA-X"))
	assert.Equal(t, "1", TrailingDigits(""))
}

func TestItemName(t *testing.T) {
	long := strings.Repeat("A", 80)
	assert.Len(t, []rune(ItemName(long)), 50)
	assert.Equal(t, "PARAFUSO", ItemName("  PARAFUSO  "))
}

func TestIsAdvanceType(t *testing.T) {
	advances := []string{"NDF", "PA"}
	tests := []struct {
		tipo string
		want bool
	}{
		{tipo: "NDF", want: true},
		{tipo: "pa", want: true},
		{tipo: "NDF 001", want: true},
		{tipo: "PARC", want: false},
		{tipo: "NF", want: false},
		{tipo: "", want: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAdvanceType(tt.tipo, advances), "tipo=%q", tt.tipo)
	}
}

func TestCleanLedger(t *testing.T) {
	advances := []string{"NDF", "PA"}

	t.Run("derivations and defaults", func(t *testing.T) {
		rows := CleanLedger([]Record{{
			"fornecedor":    "10101 - FORNECEDOR ABC LTDA",
			"titulo":        "NF-00123-2",
			"tipo_titulo":   "NF",
			"data_emissao":  "01/08/2025",
			"saldo_devedor": "1.234,56",
		}}, advances)
		require.Len(t, rows, 1)
		r := rows[0]
		assert.Equal(t, "10101", r.CodigoFornecedor)
		assert.Equal(t, "2", r.Parcela)
		assert.Equal(t, "CONTA_PADRAO", r.ContaContabil)
		assert.Equal(t, "1234.56", r.SaldoDevedor.String())
		require.NotNil(t, r.DataEmissao)
		assert.Nil(t, r.DataVencimento)
		assert.False(t, r.Excluido)
	})

	t.Run("advance documents are flagged", func(t *testing.T) {
		rows := CleanLedger([]Record{
			{"fornecedor": "F1", "titulo": "T1", "tipo_titulo": "NDF", "saldo_devedor": "10,00"},
			{"fornecedor": "F2", "titulo": "T2", "tipo_titulo": "NF", "saldo_devedor": "20,00"},
		}, advances)
		require.Len(t, rows, 2)
		assert.True(t, rows[0].Excluido)
		assert.False(t, rows[1].Excluido)
	})

	t.Run("exact duplicates collapse", func(t *testing.T) {
		rec := Record{"fornecedor": "10101 X", "titulo": "T9", "saldo_devedor": "5,00"}
		rows := CleanLedger([]Record{rec, rec, rec}, advances)
		assert.Len(t, rows, 1)
	})

	t.Run("fully empty rows disappear", func(t *testing.T) {
		rows := CleanLedger([]Record{
			{"fornecedor": "", "titulo": "  ", "saldo_devedor": "nan"},
		}, advances)
		assert.Empty(t, rows)
	})
}

func TestCleanTrialBalance(t *testing.T) {
	rows := CleanTrialBalance([]Record{
		{
			"conta_contabil":  "2.01.01",
			"descricao_conta": "FORNECEDORES NACIONAIS 10101",
			"saldo_atual":     "1.000,00",
		},
		{
			"conta_contabil":    "2.01.02",
			"descricao_conta":   "Fornecedores Diversos",
			"codigo_fornecedor": "20202",
			"saldo_atual":       "-50,25",
		},
	})
	require.Len(t, rows, 2)

	first := rows[0]
	require.NotNil(t, first.CodigoFornecedor)
	assert.Equal(t, "10101", *first.CodigoFornecedor)
	assert.Equal(t, constants.ClassNationalSupplier, first.TipoFornecedor)

	second := rows[1]
	require.NotNil(t, second.CodigoFornecedor)
	assert.Equal(t, "20202", *second.CodigoFornecedor)
	assert.Equal(t, constants.ClassSupplier, second.TipoFornecedor)
	assert.Equal(t, "-50.25", second.SaldoAtual.String())
}

func TestCleanAdvances(t *testing.T) {
	rows := CleanAdvances([]Record{{
		"conta_contabil": "1.05.01",
		"descricao_item": "ADIANTAMENTO FORNECEDOR 30303",
		"saldo_atual":    "300,00",
	}})
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].CodigoFornecedor)
	assert.Equal(t, "30303", *rows[0].CodigoFornecedor)
	assert.Equal(t, constants.ClassSupplier, rows[0].TipoFornecedor)
}

func TestCleanAccountItems(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		rows := CleanAccountItems([]Record{{
			"conta_contabil": "2.01.01.10101",
			"descricao_item": strings.Repeat("PEÇA ", 20),
			"saldo_atual":    "90,00",
		}})
		require.Len(t, rows, 1)
		r := rows[0]
		assert.Len(t, []rune(r.Item), 50)
		assert.True(t, r.Quantidade.Equal(decimal.NewFromInt(1)))
		assert.Equal(t, "90", r.ValorUnitario.String())
		assert.Equal(t, "90", r.ValorTotal.String())
	})

	t.Run("explicit values win", func(t *testing.T) {
		rows := CleanAccountItems([]Record{{
			"conta_contabil": "2.01.01.10101",
			"descricao_item": "PARAFUSO",
			"item":           "P-77",
			"quantidade":     "3",
			"valor_unitario": "10,00",
			"valor_total":    "30,00",
			"saldo_atual":    "30,00",
		}})
		require.Len(t, rows, 1)
		r := rows[0]
		assert.Equal(t, "P-77", r.Item)
		assert.Equal(t, "3", r.Quantidade.String())
		assert.Equal(t, "10", r.ValorUnitario.String())
	})
}
