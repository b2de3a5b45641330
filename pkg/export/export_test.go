package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterDataset() Dataset {
	return Dataset{
		Title:   "Piano 101 roster",
		Headers: []string{"email", "class"},
		Rows: [][]string{
			{"a@x.com", "Piano 101"},
			{"b@x.com", "Piano 101, evening"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(rosterDataset())
	require.NoError(t, err)
	assert.Equal(t, "email,class\na@x.com,Piano 101\nb@x.com,\"Piano 101, evening\"\n", string(out))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(rosterDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderRejectsRaggedRows(t *testing.T) {
	data := rosterDataset()
	data.Rows = append(data.Rows, []string{"only-one"})
	_, err := NewCSVExporter().Render(data)
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	r, err := ForFormat("")
	require.NoError(t, err)
	assert.Equal(t, "csv", r.Extension())

	r, err = ForFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", r.ContentType())

	_, err = ForFormat("xlsx")
	assert.Error(t, err)
}
