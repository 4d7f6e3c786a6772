// Package pdf extracts plain text from PDF files.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor reads the text layer of PDF documents page by page.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{domain.MimeTypePDF}
}

// ExtractText returns the text of the first maxPages pages, one page per line
// block. A maxPages of zero or less reads every page. If a page fails, the
// text of the earlier pages is returned with the error.
func (e *Extractor) ExtractText(ctx context.Context, data []byte, maxPages int) (text string, err error) {
	var sb strings.Builder

	// The parser panics on some malformed input.
	defer func() {
		if r := recover(); r != nil {
			text = sb.String()
			err = fmt.Errorf("%w: %v", domain.ErrMalformedDocument, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", classify(err)
	}

	pages := reader.NumPage()
	if maxPages > 0 && pages > maxPages {
		pages = maxPages
	}

	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return sb.String(), err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return sb.String(), fmt.Errorf("page %d: %w", i, classify(err))
		}
		if content == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(content)
	}

	return sb.String(), nil
}

// classify maps parser errors onto the domain sentinels.
func classify(err error) error {
	if errors.Is(err, pdf.ErrInvalidPassword) {
		return fmt.Errorf("%w: %w", domain.ErrEncrypted, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrMalformedDocument, err)
}
