package reconerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil))
	})

	t.Run("taxonomy errors pass through untouched", func(t *testing.T) {
		for _, err := range []error{
			&FormatError{File: "finr150.xlsx"},
			&MappingError{File: "f", Column: "saldo"},
			&ImportError{File: "f", Err: errors.New("io")},
			&ReconciliationError{Stage: "match", Err: errors.New("dup")},
			&ExportError{Path: "p", Err: errors.New("disk")},
			&UnmappedError{Err: errors.New("x")},
		} {
			assert.Same(t, err, Wrap(err))
		}
	})

	t.Run("foreign errors become unmapped", func(t *testing.T) {
		inner := errors.New("syntax error at or near")
		wrapped := Wrap(inner)

		var uerr *UnmappedError
		require.True(t, errors.As(wrapped, &uerr))
		assert.ErrorIs(t, wrapped, inner)
	})
}

func TestFormatErrorMessages(t *testing.T) {
	missing := &FormatError{File: "finr150.xlsx", Missing: []string{"saldo_devedor"}}
	assert.Contains(t, missing.Error(), "finr150.xlsx")
	assert.Contains(t, missing.Error(), "saldo_devedor")

	reasoned := &FormatError{File: "financeiro", Reason: "no match in inbox"}
	assert.Equal(t, "financeiro: no match in inbox", reasoned.Error())

	unknown := &FormatError{File: "relatorio_misterioso.xlsx"}
	assert.Contains(t, unknown.Error(), "relatorio_misterioso.xlsx")
	assert.Contains(t, unknown.Error(), "does not match any known export type")
}

func TestMappingErrorMessages(t *testing.T) {
	ambiguous := &MappingError{
		File:       "ctbr040.csv",
		Column:     "saldo",
		Candidates: []string{"saldo_anterior", "saldo_atual"},
	}
	assert.Contains(t, ambiguous.Error(), "saldo")
	assert.Contains(t, ambiguous.Error(), "saldo_anterior")
	assert.Contains(t, ambiguous.Error(), "ctbr040.csv")

	unresolved := &MappingError{File: "ctbr040.csv", Column: "debito"}
	assert.Contains(t, unresolved.Error(), "debito")
	assert.Contains(t, unresolved.Error(), "ctbr040.csv")
}

func TestWrappedChainsStayClassifiable(t *testing.T) {
	inner := errors.New("no such file")
	err := fmt.Errorf("fetching source: %w", &ImportError{File: "finr150.xlsx", Err: inner})

	var ierr *ImportError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, "finr150.xlsx", ierr.File)
	assert.ErrorIs(t, err, inner)
}

func TestExportErrorMessages(t *testing.T) {
	structural := &ExportError{
		Path:     "/out/CONCILIACAO.xlsx",
		Problems: []string{"Sheet 'Resumo' not found in generated workbook"},
	}
	assert.Contains(t, structural.Error(), "failed validation")
	assert.Contains(t, structural.Error(), "Resumo")

	writeFail := &ExportError{Path: "/out/CONCILIACAO.xlsx", Err: errors.New("disk full")}
	assert.Contains(t, writeFail.Error(), "/out/CONCILIACAO.xlsx")
	assert.Contains(t, writeFail.Error(), "disk full")
	assert.ErrorIs(t, writeFail, writeFail.Err)
}

func TestReconciliationErrorMessage(t *testing.T) {
	err := &ReconciliationError{Stage: "classify", Err: errors.New("bad totals")}
	assert.Contains(t, err.Error(), "classify")
	assert.Contains(t, err.Error(), "bad totals")
}
