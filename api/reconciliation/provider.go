package reconciliation

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation/importer"
	"ConciliacaoFornecedores/api/reconciliation/reconerr"
)

// SourceProvider locates the raw export for a source type. The robots
// that deposit the files are outside this system; implementations only
// answer "which file do I read for this source right now".
type SourceProvider interface {
	Fetch(ctx context.Context, d importer.Descriptor) (string, error)
}

// InboxProvider resolves each source against a drop directory: the
// newest file whose name matches the descriptor's pattern wins, so a
// re-export placed next to an older one supersedes it.
type InboxProvider struct {
	Dir string
}

func (p InboxProvider) Fetch(_ context.Context, d importer.Descriptor) (string, error) {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		return "", &reconerr.ImportError{File: p.Dir, Err: err}
	}
	var (
		newest  string
		modTime time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(d.FilePattern, strings.ToLower(entry.Name()))
		if err != nil || !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(modTime) {
			newest = entry.Name()
			modTime = info.ModTime()
		}
	}
	if newest == "" {
		return "", &reconerr.FormatError{
			File:   string(d.Source),
			Reason: constants.FormatError(constants.ErrNoFileForSource, d.FilePattern, p.Dir),
		}
	}
	return filepath.Join(p.Dir, newest), nil
}
