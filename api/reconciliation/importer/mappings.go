package importer

import (
	"path/filepath"
	"strings"

	"ConciliacaoFornecedores/api/reconciliation/reconerr"
	"ConciliacaoFornecedores/internal/config"
)

// SourceType identifies one of the four bookkeeping exports.
type SourceType string

const (
	SourceLedger       SourceType = "financeiro"
	SourceTrialBalance SourceType = "balancete"
	SourceItems        SourceType = "contas_itens"
	SourceAdvances     SourceType = "adiantamento"
)

// Column is one target column of a staging table together with the raw
// headers the known export profiles use for it. Alias order is
// precedence: profile revisions go to the front when they win.
type Column struct {
	Name     string
	Required bool
	Derived  bool
	Aliases  []string
}

// TargetSchema is the full column contract of one source type.
type TargetSchema struct {
	Source  SourceType
	Columns []Column
}

// Descriptor ties a source type to its file-name tokens, its inbox
// pattern, its staging table and the physical row its header sits on.
// Ledger and trial balance reports carry a title line, so their header
// is the second row; the markup extracts start at the first.
type Descriptor struct {
	Source      SourceType
	NameTokens  []string
	FilePattern string
	Table       string
	HeaderRow   int
	Schema      TargetSchema
}

var ledgerSchema = TargetSchema{
	Source: SourceLedger,
	Columns: []Column{
		{Name: "fornecedor", Required: true, Aliases: []string{"Fornecedor", "Razao Social", "Nome Fornecedor"}},
		{Name: "titulo", Required: true, Aliases: []string{"Titulo", "Título", "No. Titulo", "Numero Titulo"}},
		{Name: "parcela", Derived: true, Aliases: []string{"Parcela", "Parc"}},
		{Name: "tipo_titulo", Aliases: []string{"Tipo", "Tp", "Tipo Titulo", "Tipo Título"}},
		{Name: "data_emissao", Aliases: []string{"Dt Emissao", "Data Emissao", "Data de Emissão", "Emissao"}},
		{Name: "data_vencimento", Aliases: []string{"Vencto", "Dt Vencto", "Vencimento", "Data Vencimento", "Data de Vencimento"}},
		{Name: "valor_original", Aliases: []string{"Vlr Original", "Valor Original", "Vlr.Original"}},
		{Name: "saldo_devedor", Required: true, Aliases: []string{"Saldo Devedor", "Sld Devedor", "Saldo a Pagar"}},
		{Name: "situacao", Aliases: []string{"Situacao", "Situação", "Status"}},
		{Name: "conta_contabil", Derived: true, Aliases: []string{"Conta Contabil", "Conta Contábil", "Conta"}},
		{Name: "centro_custo", Aliases: []string{"Centro Custo", "Centro de Custo", "C Custo"}},
	},
}

var trialBalanceSchema = TargetSchema{
	Source: SourceTrialBalance,
	Columns: []Column{
		{Name: "conta_contabil", Required: true, Aliases: []string{"Conta", "Codigo", "Conta Contabil", "Cod Conta"}},
		{Name: "descricao_conta", Required: true, Aliases: []string{"Descricao", "Descrição", "Descricao Conta", "Titulo Conta"}},
		{Name: "codigo_fornecedor", Aliases: []string{"Codigo Fornecedor", "Cod Fornecedor"}},
		{Name: "descricao_fornecedor", Aliases: []string{"Descricao Fornecedor", "Nome Fornecedor"}},
		{Name: "saldo_anterior", Aliases: []string{"Saldo Anterior", "Sld Anterior"}},
		{Name: "debito", Aliases: []string{"Debito", "Débito", "Debitos"}},
		{Name: "credito", Aliases: []string{"Credito", "Crédito", "Creditos"}},
		{Name: "movimento_periodo", Aliases: []string{"Movimento do Periodo", "Movimento do Período", "Movimento Periodo", "Movimento"}},
		{Name: "saldo_atual", Required: true, Aliases: []string{"Saldo Atual", "Sld Atual", "Saldo Final"}},
	},
}

// The markup extracts duplicate the Codigo/Descricao pair: the first
// occurrence is the account, the suffixed one is the item.
var itemsSchema = TargetSchema{
	Source: SourceItems,
	Columns: []Column{
		{Name: "conta_contabil", Required: true, Aliases: []string{"Codigo", "Conta", "Conta Contabil"}},
		{Name: "descricao_item", Required: true, Aliases: []string{"Descricao.1", "Descrição.1", "Descricao Item", "Descricao"}},
		{Name: "item", Aliases: []string{"Codigo.1", "Item", "Cod Item"}},
		{Name: "codigo_fornecedor", Aliases: []string{"Codigo Fornecedor", "Cod Fornecedor"}},
		{Name: "descricao_fornecedor", Aliases: []string{"Descricao Fornecedor", "Nome Fornecedor"}},
		{Name: "saldo_anterior", Aliases: []string{"Saldo Anterior", "Sld Anterior"}},
		{Name: "debito", Aliases: []string{"Debito", "Débito"}},
		{Name: "credito", Aliases: []string{"Credito", "Crédito"}},
		{Name: "movimento_periodo", Aliases: []string{"Movimento do Periodo", "Movimento do Período", "Movimento Periodo", "Movimento"}},
		{Name: "saldo_atual", Required: true, Aliases: []string{"Saldo Atual", "Sld Atual", "Saldo Final"}},
		{Name: "quantidade", Aliases: []string{"Quantidade", "Qtde", "Qtd"}},
		{Name: "valor_unitario", Aliases: []string{"Valor Unitario", "Valor Unitário", "Vlr Unitario"}},
		{Name: "valor_total", Aliases: []string{"Valor Total", "Vlr Total"}},
	},
}

var advancesSchema = TargetSchema{
	Source: SourceAdvances,
	Columns: []Column{
		{Name: "conta_contabil", Required: true, Aliases: []string{"Codigo", "Conta", "Conta Contabil"}},
		{Name: "descricao_item", Required: true, Aliases: []string{"Descricao.1", "Descrição.1", "Descricao Item", "Descricao"}},
		{Name: "codigo_fornecedor", Aliases: []string{"Codigo Fornecedor", "Cod Fornecedor"}},
		{Name: "descricao_fornecedor", Aliases: []string{"Descricao Fornecedor", "Nome Fornecedor"}},
		{Name: "saldo_anterior", Aliases: []string{"Saldo Anterior", "Sld Anterior"}},
		{Name: "debito", Aliases: []string{"Debito", "Débito"}},
		{Name: "credito", Aliases: []string{"Credito", "Crédito"}},
		{Name: "movimento_periodo", Aliases: []string{"Movimento do Periodo", "Movimento do Período", "Movimento Periodo", "Movimento"}},
		{Name: "saldo_atual", Required: true, Aliases: []string{"Saldo Atual", "Sld Atual", "Saldo Final"}},
	},
}

var descriptors = []Descriptor{
	{
		Source:      SourceLedger,
		NameTokens:  []string{"finr"},
		FilePattern: "finr150*",
		Table:       config.TableLedger,
		HeaderRow:   1,
		Schema:      ledgerSchema,
	},
	{
		Source:      SourceTrialBalance,
		NameTokens:  []string{"ctbr040"},
		FilePattern: "ctbr040*",
		Table:       config.TableTrialBalance,
		HeaderRow:   1,
		Schema:      trialBalanceSchema,
	},
	{
		Source:      SourceItems,
		NameTokens:  []string{"ctbr140"},
		FilePattern: "ctbr140*",
		Table:       config.TableAccountItems,
		HeaderRow:   0,
		Schema:      itemsSchema,
	},
	{
		Source:      SourceAdvances,
		NameTokens:  []string{"ctbr100"},
		FilePattern: "ctbr100*",
		Table:       config.TableAdvances,
		HeaderRow:   0,
		Schema:      advancesSchema,
	},
}

// Manifest returns the import order the runner walks: ledger first,
// then the accounting extracts.
func Manifest() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// DescriptorFor selects the descriptor whose name token appears in the
// file name. Unrecognized names are a FormatError.
func DescriptorFor(path string) (Descriptor, error) {
	name := strings.ToLower(filepath.Base(path))
	for _, d := range descriptors {
		for _, token := range d.NameTokens {
			if strings.Contains(name, token) {
				return d, nil
			}
		}
	}
	return Descriptor{}, &reconerr.FormatError{File: filepath.Base(path)}
}
