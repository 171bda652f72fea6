package documents

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx assembles a minimal DOCX container around the given
// WordprocessingML body.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_PlainText(t *testing.T) {
	for _, name := range []string{"posting.txt", "posting.TEXT", "notes.md"} {
		text, err := ExtractText(name, []byte("hello world"))
		require.NoError(t, err, name)
		assert.Equal(t, "hello world", text)
	}
}

func TestExtractText_UnsupportedExtension(t *testing.T) {
	_, err := ExtractText("resume.xlsx", []byte("data"))

	require.Error(t, err)
	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "resume.xlsx", extErr.Source)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestExtractText_Docx(t *testing.T) {
	docx := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Position Summary:</w:t></w:r></w:p>
    <w:p><w:r><w:t>Lead the   platform</w:t></w:r><w:r><w:t> team.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := ExtractText("posting.docx", docx)

	require.NoError(t, err)
	assert.Equal(t, "Position Summary:\nLead the platform team.", text)
}

func TestExtractText_DocxMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, _ = w.Write([]byte("<styles/>"))
	require.NoError(t, zw.Close())

	_, err = ExtractText("posting.docx", buf.Bytes())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "document.xml not found")
}

func TestExtractText_DocxNotAZip(t *testing.T) {
	_, err := ExtractText("posting.docx", []byte("definitely not a zip archive"))

	require.Error(t, err)
	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.NotNil(t, extErr.Unwrap())
}

func TestExtractText_UnreadablePDF(t *testing.T) {
	_, err := ExtractText("posting.pdf", []byte("not a pdf"))

	require.Error(t, err)
	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "posting.pdf", extErr.Source)
}

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Collapses spaces within lines",
			input:    "a   b\tc",
			expected: "a b c",
		},
		{
			name:     "Keeps line structure",
			input:    "Summary:\nLead teams\n\nResponsibilities:",
			expected: "Summary:\nLead teams\n\nResponsibilities:",
		},
		{
			name:     "Collapses blank line runs",
			input:    "a\n\n\n\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "Trims outer whitespace",
			input:    "\n\n  a  \n\n",
			expected: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeWhitespace(tt.input))
		})
	}
}
