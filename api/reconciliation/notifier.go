package reconciliation

import (
	"context"
	"fmt"

	"ConciliacaoFornecedores/internal/logger"
)

// Notifier receives the final report of every run. Mail and chat
// dispatch live outside this repository; LogNotifier is the default.
type Notifier interface {
	NotifySuccess(ctx context.Context, report RunReport) error
	NotifyFailure(ctx context.Context, report RunReport) error
}

// LogNotifier writes the outcome to the audit log and nothing else.
type LogNotifier struct{}

func (LogNotifier) NotifySuccess(_ context.Context, report RunReport) error {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf(
			"Run %s succeeded: workbook at %s", report.RunID, report.WorkbookPath))
	}
	return nil
}

func (LogNotifier) NotifyFailure(_ context.Context, report RunReport) error {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf(
			"Run %s failed; see %s", report.RunID, report.LogPath))
	}
	return nil
}
