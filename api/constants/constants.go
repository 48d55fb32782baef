package constants

// Content Types
const (
	ContentTypeJSON   = "application/json"
	HeaderContentType = "Content-Type"
)

// Date formats
const (
	DateTimeFormat  = "2006-01-02 15:04:05"
	DateFormat      = "2006-01-02"
	DateFormatBR    = "02/01/2006"
	DateFormatFile  = "02-01-2006"
	TimestampFormat = "2006-01-02T15:04:05"
)

// Workbook contract
const (
	WorkbookPrefix = "CONCILIACAO_"

	SheetSummary      = "Resumo"
	SheetLedger       = "Títulos a Pagar"
	SheetTrialBalance = "Balancete"
	SheetItems        = "Contas x Itens"
	SheetAdvances     = "Adiantamentos"
	SheetMetadata     = "Metadados"
)

// Result statuses as persisted and exported
const (
	StatusMatched   = "OK"
	StatusDivergent = "DIVERGENTE"
	StatusPending   = "PENDENTE"
)

// Run journal statuses and step outcomes
const (
	RunStatusRunning = "running"
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"

	StepImport    = "import"
	StepReconcile = "reconcile"
	StepExport    = "export"

	StepStatusOK     = "ok"
	StepStatusFailed = "failed"
)

// Counterparty classes derived from accounting descriptions
const (
	ClassNationalSupplier = "FORNECEDOR NACIONAL"
	ClassSupplier         = "FORNECEDOR"
	ClassOther            = "OUTROS"

	// SQL prefix pattern selecting the supplier classes
	SupplierClassPattern = "FORNEC%"
)

// Difference direction labels on the summary sheets
const (
	DiffTypeLedgerOver     = "Financeiro > Contábil"
	DiffTypeAccountingOver = "Contábil > Financeiro"
	DiffTypeNone           = "OK"
)

// Detail texts attached to result rows
const (
	DetailPerfectMatch        = "Conciliação perfeita"
	DetailManualInvestigation = "Requer investigação manual"
	DetailTotalsSummary       = "Saldo financeiro: %s | Saldo contábil: %s | Diferença: %s"
	DetailClassEntry          = "%s: %s"
	DetailItemEntry           = "%s - %s: %s"
	DetailSeparator           = " | "
	DetailEmptyAmount         = "-"
)
