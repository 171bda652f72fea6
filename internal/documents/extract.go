// Package documents extracts plain text from uploaded job postings and
// resumes: PDF, DOCX, and plain-text files, plus job posting URLs.
package documents

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractionError is the typed failure for document extraction. It carries
// the source name so upload handlers can report which file failed.
type ExtractionError struct {
	Source string
	Reason string
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract text from %s: %s: %v", e.Source, e.Reason, e.Cause)
	}
	return fmt.Sprintf("failed to extract text from %s: %s", e.Source, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Cause }

// ExtractText extracts plain text from a document by its declared
// extension. Supported: .pdf, .docx, .txt, .text, .md.
func ExtractText(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(filename, data)
	case ".docx":
		return extractDocx(filename, data)
	case ".txt", ".text", ".md":
		return string(data), nil
	default:
		return "", &ExtractionError{Source: filename, Reason: "unsupported file type"}
	}
}

func extractPDF(filename string, data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Source: filename, Reason: "unreadable PDF", Cause: err}
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", &ExtractionError{Source: filename, Reason: "no extractable text", Cause: err}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", &ExtractionError{Source: filename, Reason: "failed reading text stream", Cause: err}
	}
	return normalizeWhitespace(buf.String()), nil
}

// extractDocx pulls the text runs out of word/document.xml. DOCX is a zip
// container; paragraphs become newlines.
func extractDocx(filename string, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Source: filename, Reason: "unreadable DOCX container", Cause: err}
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", &ExtractionError{Source: filename, Reason: "failed opening document.xml", Cause: err}
			}
			docXML, err = io.ReadAll(rc)
			_ = rc.Close()
			if err != nil {
				return "", &ExtractionError{Source: filename, Reason: "failed reading document.xml", Cause: err}
			}
			break
		}
	}
	if docXML == nil {
		return "", &ExtractionError{Source: filename, Reason: "document.xml not found"}
	}

	text, err := docxText(docXML)
	if err != nil {
		return "", &ExtractionError{Source: filename, Reason: "malformed document.xml", Cause: err}
	}
	return normalizeWhitespace(text), nil
}

// docxText walks the WordprocessingML token stream collecting text runs
// (<w:t>) and inserting newlines at paragraph ends (</w:p>).
func docxText(docXML []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(docXML))
	var b strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

// normalizeWhitespace collapses runs of blanks inside lines while keeping
// line structure, which downstream section heuristics depend on.
func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.Join(strings.Fields(line), " "))
	}
	normalized := strings.Join(out, "\n")
	for strings.Contains(normalized, "\n\n\n") {
		normalized = strings.ReplaceAll(normalized, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(normalized)
}
