package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ConciliacaoFornecedores/api/reconciliation/reconerr"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadFileSemicolonCSV(t *testing.T) {
	data := "RELATORIO DE TITULOS A PAGAR\n" +
		"Fornecedor;Titulo;Saldo Devedor\n" +
		"10101 - ABC;NF-1;1.234,56\n" +
		"20202 - DEF;NF-2;10,00\n"
	path := writeTempFile(t, "finr150_test.csv", []byte(data))

	sheet, err := ReadFile(path, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fornecedor", "Titulo", "Saldo Devedor"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []string{"10101 - ABC", "NF-1", "1.234,56"}, sheet.Rows[0])
}

func TestReadFileTabDelimited(t *testing.T) {
	data := "Fornecedor\tTitulo\tSaldo Devedor\nA\tT1\t5,00\n"
	path := writeTempFile(t, "finr150_test.txt", []byte(data))

	sheet, err := ReadFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fornecedor", "Titulo", "Saldo Devedor"}, sheet.Headers)
	assert.Equal(t, []string{"A", "T1", "5,00"}, sheet.Rows[0])
}

func TestReadFileWindows1252(t *testing.T) {
	// "Descrição" with ç (0xE7) and ã (0xE3) in Windows-1252.
	data := []byte("Conta;Descri\xe7\xe3o;Saldo Atual\n1;Fornecedores;10,00\n")
	path := writeTempFile(t, "ctbr040_test.csv", data)

	sheet, err := ReadFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Conta", "Descrição", "Saldo Atual"}, sheet.Headers)
}

func TestReadFileXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"RELATORIO"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Fornecedor", "Titulo", "Saldo Devedor"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"10101 - ABC", "NF-1", "1,00"}))
	path := filepath.Join(t.TempDir(), "finr150_test.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	sheet, err := ReadFile(path, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fornecedor", "Titulo", "Saldo Devedor"}, sheet.Headers)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "10101 - ABC", sheet.Rows[0][0])
}

func TestReadFileSpreadsheetML(t *testing.T) {
	data := `<?xml version="1.0"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"
          xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">
 <Worksheet ss:Name="Plan1">
  <Table>
   <Row>
    <Cell><Data ss:Type="String">Codigo</Data></Cell>
    <Cell><Data ss:Type="String">Descricao</Data></Cell>
    <Cell><Data ss:Type="String">Saldo Atual</Data></Cell>
   </Row>
   <Row>
    <Cell><Data ss:Type="String">2.01.01</Data></Cell>
    <Cell ss:Index="3"><Data ss:Type="Number">150,00</Data></Cell>
   </Row>
  </Table>
 </Worksheet>
</Workbook>`
	path := writeTempFile(t, "ctbr140_test.xml", []byte(data))

	sheet, err := ReadFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Codigo", "Descricao", "Saldo Atual"}, sheet.Headers)
	require.Len(t, sheet.Rows, 1)
	// ss:Index=3 skips the second column.
	assert.Equal(t, []string{"2.01.01", "", "150,00"}, sheet.Rows[0])
}

func TestReadFileHeaderRowMissing(t *testing.T) {
	path := writeTempFile(t, "finr150_short.csv", []byte("apenas uma linha\n"))

	_, err := ReadFile(path, 1)
	require.Error(t, err)
	var ferr *reconerr.FormatError
	require.True(t, errors.As(err, &ferr))
}

func TestReadFileNoDataRows(t *testing.T) {
	path := writeTempFile(t, "ctbr040_empty.csv", []byte("Conta;Descricao;Saldo Atual\n"))

	_, err := ReadFile(path, 0)
	require.Error(t, err)
	var ferr *reconerr.FormatError
	require.True(t, errors.As(err, &ferr))
}

func TestReadFileUnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "finr150.pdf", []byte("%PDF-1.4"))

	_, err := ReadFile(path, 0)
	require.Error(t, err)
	var ferr *reconerr.FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Contains(t, err.Error(), ".pdf")
}

func TestDisambiguateRepeatedHeaders(t *testing.T) {
	data := "Codigo;Descricao;Codigo;Descricao;Saldo Atual\n1;a;2;b;3,00\n"
	path := writeTempFile(t, "ctbr140_dup.csv", []byte(data))

	sheet, err := ReadFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Codigo", "Descricao", "Codigo.1", "Descricao.1", "Saldo Atual"},
		sheet.Headers)
}

func TestDescriptorFor(t *testing.T) {
	tests := []struct {
		file    string
		want    SourceType
		wantErr bool
	}{
		{file: "FINR150_W_REL_001.xlsx", want: SourceLedger},
		{file: "/drop/finr150_agosto.csv", want: SourceLedger},
		{file: "ctbr040_balancete.xls", want: SourceTrialBalance},
		{file: "CTBR140.xml", want: SourceItems},
		{file: "ctbr100_adiantamentos.xml", want: SourceAdvances},
		{file: "balancete_agosto.xlsx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			d, err := DescriptorFor(tt.file)
			if tt.wantErr {
				require.Error(t, err)
				var ferr *reconerr.FormatError
				assert.True(t, errors.As(err, &ferr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Source)
		})
	}
}

