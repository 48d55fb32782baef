package checksum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workbook.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	digest, err := FileDigest(path)
	require.NoError(t, err)
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", digest)

	_, err = FileDigest(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestMatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workbook.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("conteudo"), 0o644))

	digest, err := FileDigest(path)
	require.NoError(t, err)

	ok, err := NewMatcher(digest).MatchFile(path)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("conteudo adulterado"), 0o644))
	ok, err = NewMatcher(digest).MatchFile(path)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = NewMatcher("").MatchFile(path)
	assert.Error(t, err)
}
