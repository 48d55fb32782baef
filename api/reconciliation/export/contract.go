package export

import "ConciliacaoFornecedores/api/constants"

// The workbook contract: sheet order, header rows and monetary
// columns. The builder writes it and the validator re-reads the saved
// file against it; the two must never drift apart.

var sheetOrder = []string{
	constants.SheetSummary,
	constants.SheetLedger,
	constants.SheetTrialBalance,
	constants.SheetItems,
	constants.SheetAdvances,
	constants.SheetMetadata,
}

var sheetHeaders = map[string][]string{
	constants.SheetSummary: {
		"Código Fornecedor", "Descrição Fornecedor", "Saldo Contábil",
		"Saldo Financeiro", "Diferença", "Tipo Diferença", "Status", "Detalhes",
	},
	constants.SheetLedger: {
		"Fornecedor", "Título", "Parcela", "Tipo Título", "Data Emissão",
		"Data Vencimento", "Valor Original", "Saldo Devedor", "Situação",
		"Conta Contábil", "Centro Custo",
	},
	constants.SheetTrialBalance: {
		"Conta Contábil", "Descrição Conta", "Código Fornecedor",
		"Descrição Fornecedor", "Saldo Anterior", "Débito", "Crédito",
		"Saldo Atual", "Tipo Fornecedor",
	},
	constants.SheetItems: {
		"Código Fornecedor", "Descrição Fornecedor", "Conta Contábil", "Item",
		"Descrição Item", "Quantidade", "Valor Unitário", "Valor Total",
		"Saldo Atual",
	},
	constants.SheetAdvances: {
		"Código Fornecedor", "Descrição Fornecedor", "Saldo Contábil",
		"Saldo Financeiro", "Diferença", "Tipo Diferença", "Status", "Detalhes",
	},
	constants.SheetMetadata: {"Campo", "Valor"},
}

// 1-based column positions carrying the monetary number format.
var sheetMoneyColumns = map[string][]int{
	constants.SheetSummary:      {3, 4, 5},
	constants.SheetLedger:       {7, 8},
	constants.SheetTrialBalance: {5, 6, 7, 8},
	constants.SheetItems:        {6, 7, 8, 9},
	constants.SheetAdvances:     {3, 4, 5},
}

const (
	summaryStatusColumn = 7
	summaryDetailColumn = 8
)
