package constants

import "fmt"

// ============================================================================
// IMPORT & FORMAT ERRORS
// ============================================================================

const (
	ErrUnknownSourceFile    = "File name does not match any known export type: %s"
	ErrUnsupportedExtension = "Unsupported file extension '%s'. Accepted: .xlsx, .xls, .csv, .txt, .xml"
	ErrEmptyFile            = "File has no data rows"
	ErrHeaderRowMissing     = "Header row not found at the expected position"
	ErrMissingColumns       = "Required columns missing in %s: %v"
	ErrFileOpenFailed       = "Could not open source file %s"
	ErrFileParseFailed      = "Could not parse source file %s"
	ErrNoFileForSource      = "No file matching pattern '%s' found in %s"
)

// ============================================================================
// HEADER MAPPING ERRORS
// ============================================================================

const (
	ErrAmbiguousHeader   = "Header '%s' matches more than one candidate with similar scores"
	ErrNoMappingForFile  = "No column mapping registered for file pattern '%s'"
	ErrDerivationFailed  = "Column '%s' could not be derived from the available columns"
	ErrMappingIncomplete = "Header mapping left required columns unresolved: %v"
)

// ============================================================================
// RECONCILIATION ERRORS
// ============================================================================

const (
	ErrDuplicateCounterparty = "Duplicate counterparty code in result batch: %s"
	ErrImpossibleTotals      = "Result row %s has totals on both sides but status Pending"
	ErrDivergenceUnexplained = "Divergent row %s carries no explanatory detail"
	ErrConservationBroken    = "Sum of result ledger totals (%s) differs from aggregated ledger balance (%s)"
	ErrNoSourcesImported     = "No source imported successfully; reconciliation skipped"
	ErrRunInProgress         = "A reconciliation run is already in progress"
	ErrInvalidPassState      = "Pass cannot move from state %s to %s"
)

// ============================================================================
// EXPORT ERRORS
// ============================================================================

const (
	ErrSheetMissing      = "Sheet '%s' not found in generated workbook"
	ErrColumnNotInSheet  = "Column '%s' not found in sheet '%s'"
	ErrWorkbookReadback  = "Generated workbook could not be re-opened for validation"
	ErrWorkbookWrite     = "Could not write workbook to %s"
	ErrNothingToExport   = "Result tables are empty; nothing to export"
	ErrResultsDirCreate  = "Could not create results directory %s"
	ErrProtectionApply   = "Could not apply sheet protection on '%s'"
	ErrAutoFilterApply   = "Could not apply autofilter on '%s'"
	ErrConditionalStyles = "Could not apply conditional styles on '%s'"
)

// ============================================================================
// DATABASE OPERATION ERRORS
// ============================================================================

const (
	ErrDatabaseConnection      = "Database connection failed. Please try again later"
	ErrQueryFailed             = "Database query failed. Please contact support if this persists"
	ErrTransactionFailed       = "Transaction failed. Please try again"
	ErrTransactionCommitFailed = "Failed to save changes. Please try again"
	ErrCopyFailed              = "Bulk copy into %s failed"
	ErrTruncateFailed          = "Could not clear previous rows of %s"
)

// ============================================================================
// GENERAL ERRORS
// ============================================================================

const (
	ErrInternalServer  = "Internal server error. Please contact support"
	ErrOperationFailed = "Operation failed. Please try again"
	ErrNoDataFound     = "No data found matching your criteria"
	ErrInvalidRequest  = "Invalid request. Please check your input"
)

// ============================================================================
// AUDIT / SUCCESS MESSAGES
// ============================================================================

const (
	MsgImportAccepted    = "Imported %d rows from %s into %s (%d dropped by cleaning)"
	MsgImportRefused     = "Import of source '%s' failed: %v"
	MsgPassDone          = "%s pass finished: %d rows (%d OK, %d DIVERGENTE, %d PENDENTE)"
	MsgExportDone        = "Workbook written and validated: %s"
	MsgRunFinished       = "Run %s finished with status %s"
	MsgScheduleSkipped   = "Not a processing day (neither the 20th nor the last working day); run skipped"
	MsgSourceFileChosen  = "Source '%s' resolved to %s"
	MsgReferenceWindow   = "Reference window: %s to %s"
	MsgResultRowsCleared = "Previous result rows cleared from %s"
)

// ============================================================================
// HELPERS TO FORMAT MESSAGES WITH CONTEXT
// ============================================================================

// FormatError formats a catalog message with additional context
func FormatError(baseError string, context ...interface{}) string {
	if len(context) == 0 {
		return baseError
	}
	return fmt.Sprintf(baseError, context...)
}

// FormatRowError formats an error for a specific data row
func FormatRowError(rowNum int, reason string) string {
	return fmt.Sprintf("Invalid data found in row %d: %s", rowNum, reason)
}

// FormatColumnError formats an error for a specific column of a file
func FormatColumnError(file string, column string) string {
	return fmt.Sprintf("Column '%s' unresolved in %s", column, file)
}
