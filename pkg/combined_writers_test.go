package pkg

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestCombinedWriter_Write(t *testing.T) {
	logFile := &strings.Builder{}
	logFile.WriteString("2026-03-01 boot\n")
	stdout := &strings.Builder{}

	cw := NewCombinedWriter(logFile, stdout)
	require.NotNil(t, cw)
	assert.Len(t, cw.Writers, 2)

	line := "measurement added: Ana\n"
	n, err := cw.Write([]byte(line))
	require.NoError(t, err)
	assert.Equal(t, len(line), n)

	assert.Equal(t, "2026-03-01 boot\n"+line, logFile.String())
	assert.Equal(t, line, stdout.String())
}

func TestCombinedWriter_Write_WithErrors(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(failingWriter{}, sb, shortWriter{})

	line := "ranking computed"
	n, err := cw.Write([]byte(line))
	require.Error(t, err)
	assert.Equal(t, len(line), n)
	assert.Equal(t, line, sb.String())

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.EqualError(t, errs[0], "disk full")
	assert.True(t, errors.Is(errs[1], io.ErrShortWrite))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}
