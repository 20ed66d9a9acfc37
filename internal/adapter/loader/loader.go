package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"docqa/internal/domain"
)

// Load reads the document at path. PDF files are reduced to their plain
// text; everything else is read verbatim as text. An unreadable path is
// an input problem, reported as a ConfigError before any network call.
func Load(path string) (domain.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		content, err := readPDF(path)
		if err != nil {
			return domain.Document{}, err
		}
		return domain.Document{Path: path, Content: content}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, &domain.ConfigError{Field: "file", Reason: err.Error()}
	}
	return domain.Document{Path: path, Content: string(data)}, nil
}

func readPDF(path string) (string, error) {
	f, rdr, err := pdf.Open(path)
	if err != nil {
		return "", &domain.ConfigError{Field: "file", Reason: fmt.Sprintf("failed to open pdf %s: %v", path, err)}
	}
	defer f.Close()

	b, err := rdr.GetPlainText()
	if err != nil {
		return "", &domain.ConfigError{Field: "file", Reason: fmt.Sprintf("failed to extract pdf text: %v", err)}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, b); err != nil {
		return "", &domain.ConfigError{Field: "file", Reason: fmt.Sprintf("failed to read pdf text: %v", err)}
	}

	if buf.Len() == 0 {
		return "", &domain.ConfigError{Field: "file", Reason: fmt.Sprintf("no text extracted from pdf %s", path)}
	}
	return buf.String(), nil
}
