package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/cwlroster/internal/dependencies/mocks"
	"github.com/mcoot/cwlroster/internal/model"
)

func newExporter() *Exporter {
	e := New(mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	e.compress = false
	return e
}

func TestPDFContainsTitleAndMessage(t *testing.T) {
	var buf bytes.Buffer

	err := newExporter().PDF(&buf, "Crystal League\n\nEclipse 15 partecipanti\n\n1) Ann th12\n")
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, out, "Messaggio CWL")
	assert.Contains(t, out, "Eclipse 15 partecipanti")
	assert.Contains(t, out, "1) Ann th12")
}

func TestPDFIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	msg := "Gold League\n\nEclipse 2 partecipanti\n"

	require.NoError(t, newExporter().PDF(&a, msg))
	require.NoError(t, newExporter().PDF(&b, msg))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestPDFRejectsEmptyMessage(t *testing.T) {
	var buf bytes.Buffer

	err := newExporter().PDF(&buf, " \n")
	assert.ErrorIs(t, err, model.ErrMessageEmpty)
	assert.Zero(t, buf.Len())
}

func TestPDFCompressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	e := New(mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))

	require.NoError(t, e.PDF(&buf, "Master League\n"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.NotContains(t, buf.String(), "Master League")
}
