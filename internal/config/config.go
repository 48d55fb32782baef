package config

const (
	DefaultTimeZone = "America/Sao_Paulo"

	// The job fires daily at 08:00 and decides for itself whether the
	// date is a processing day (the 20th or the last working day).
	DefaultReconSchedule = "0 8 * * *"

	DefaultInboxDir   = "./data"
	DefaultResultsDir = "./results"

	// Schema store table names
	TableLedger         = "financeiro"
	TableTrialBalance   = "modelo1"
	TableAccountItems   = "contas_itens"
	TableAdvances       = "adiantamento"
	TableResults        = "resultado"
	TableAdvanceResults = "resultado_adiantamento"
	TableRuns           = "conciliacao_runs"

	// Matching and classification
	DefaultTolerancePercent = 3.0
	HeaderSimilarityCutoff  = 0.6
	HeaderAmbiguityBand     = 0.05
	MaxDetailLines          = 5
	MinCounterpartyDigits   = 3

	// Cleaning fallbacks
	DefaultAccountCode = "CONTA_PADRAO"
	DefaultInstallment = "1"
	MaxItemNameLength  = 50

	DefaultOpsAddr = ":8181"
)

// AdvanceDocumentTypes are the ledger document types kept out of the
// primary reconciliation pass and settled in the advance pass.
var AdvanceDocumentTypes = []string{"NDF", "PA"}
