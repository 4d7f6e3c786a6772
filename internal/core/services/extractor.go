package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
	"github.com/custodia-labs/drivesync/internal/logger"
)

// Export formats for native drive documents.
const (
	ExportMimeText = "text/plain"
	ExportMimeCSV  = "text/csv"
)

// ExportFormats maps native document types to their export format.
var ExportFormats = map[string]string{
	domain.MimeTypeGoogleDoc:    ExportMimeText,
	domain.MimeTypeGoogleSheet:  ExportMimeCSV,
	domain.MimeTypeGoogleSlides: ExportMimeText,
}

// Extractor fills in the content of file documents.
type Extractor struct {
	drive      driven.DriveService
	extractors map[string]driven.TextExtractor
	retries    int
	maxPages   int
	maxBytes   int64
	workers    int
}

// NewExtractor creates an extractor. Binary formats are handled by the
// given text extractors, selected by MIME type.
func NewExtractor(drive driven.DriveService, extractors []driven.TextExtractor, cfg Config) *Extractor {
	byMime := make(map[string]driven.TextExtractor)
	for _, ext := range extractors {
		for _, mime := range ext.SupportedMIMETypes() {
			byMime[mime] = ext
		}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Extractor{
		drive:      drive,
		extractors: byMime,
		retries:    cfg.MaxRetries,
		maxPages:   cfg.PDFMaxPages,
		maxBytes:   cfg.ExportMaxBytes,
		workers:    workers,
	}
}

// ExtractContent extracts and sanitises the content of every document.
// Item errors (transport, encrypted, malformed) are recorded in the
// returned results and do not stop the batch; any other error aborts it.
// Every document is sanitised, whether or not extraction succeeded.
func (x *Extractor) ExtractContent(ctx context.Context, docs []domain.FileDocument) ([]domain.ExtractionResult, error) {
	results := make([]domain.ExtractionResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(x.workers)
	for i := range docs {
		g.Go(func() error {
			result, err := x.extractOne(gctx, &docs[i])
			if err != nil {
				return fmt.Errorf("extract %s: %w", docs[i].ID, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range docs {
		docs[i].Content = Sanitise(docs[i].Content)
	}
	return results, nil
}

// extractOne fetches the content of a single document.
func (x *Extractor) extractOne(ctx context.Context, doc *domain.FileDocument) (domain.ExtractionResult, error) {
	result := domain.ExtractionResult{FileID: doc.ID, Status: domain.ExtractionSkipped}

	if target, ok := ExportFormats[doc.MimeType]; ok {
		data, err := x.drive.ExportAs(ctx, doc.ID, target, x.retries)
		if err != nil {
			return itemFailure(doc, result, err)
		}
		doc.Content += decodeText(data, x.maxBytes)
		result.Status = domain.ExtractionExtracted
		return result, nil
	}

	ext, ok := x.extractors[doc.MimeType]
	if !ok {
		return result, nil
	}

	data, err := x.drive.DownloadRaw(ctx, doc.ID, x.retries)
	if err != nil {
		return itemFailure(doc, result, err)
	}
	text, err := ext.ExtractText(ctx, data, x.maxPages)
	doc.Content += text
	if err != nil {
		return itemFailure(doc, result, err)
	}
	result.Status = domain.ExtractionExtracted
	return result, nil
}

// itemFailure swallows item errors into the result and passes others up.
func itemFailure(doc *domain.FileDocument, result domain.ExtractionResult, err error) (domain.ExtractionResult, error) {
	if !domain.IsItemError(err) {
		return result, err
	}
	result.Err = err
	result.Status = domain.ExtractionFailed
	if doc.Content != "" {
		result.Status = domain.ExtractionPartial
	}
	logger.Debug("Content of %s (%s) %s: %v", doc.Name, doc.ID, result.Status, err)
	return result, nil
}

// decodeText turns exported bytes into text, capped at maxBytes.
func decodeText(data []byte, maxBytes int64) string {
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		data = data[:maxBytes]
	}
	return strings.ToValidUTF8(string(data), "")
}

// contentPunctuation is the punctuation kept by Sanitise.
const contentPunctuation = "!#$%&'*+-.^_`|~:;,[]()@\"{}<>/="

// Sanitise replaces every character outside ASCII letters, digits,
// underscore and contentPunctuation with a single space.
func Sanitise(content string) string {
	var b strings.Builder
	b.Grow(len(content))
	for _, r := range content {
		if isContentRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func isContentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	case r < 0x80:
		return strings.ContainsRune(contentPunctuation, r)
	default:
		return false
	}
}
