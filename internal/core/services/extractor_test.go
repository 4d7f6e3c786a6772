package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
)

func newTestExtractor(drive *mockDrive, pdf *mockPDF, cfg Config) *Extractor {
	var extractors []driven.TextExtractor
	if pdf != nil {
		extractors = append(extractors, pdf)
	}
	return NewExtractor(drive, extractors, cfg)
}

func TestExtractContent_NativeExports(t *testing.T) {
	drive := newMockDrive()
	drive.exports["doc"] = []byte("hello doc")
	drive.exports["sheet"] = []byte("a,b\n1,2")
	drive.exports["slides"] = []byte("slide text")

	docs := []domain.FileDocument{
		{ID: "doc", MimeType: domain.MimeTypeGoogleDoc},
		{ID: "sheet", MimeType: domain.MimeTypeGoogleSheet},
		{ID: "slides", MimeType: domain.MimeTypeGoogleSlides},
	}

	results, err := newTestExtractor(drive, nil, testConfig()).ExtractContent(context.Background(), docs)

	require.NoError(t, err)
	assert.Equal(t, "hello doc", docs[0].Content)
	assert.Equal(t, "a,b 1,2", docs[1].Content)
	assert.Equal(t, "slide text", docs[2].Content)
	for _, r := range results {
		assert.Equal(t, domain.ExtractionExtracted, r.Status)
	}
	assert.ElementsMatch(t, []string{
		"doc:text/plain", "sheet:text/csv", "slides:text/plain",
	}, drive.exportCalls)
}

func TestExtractContent_PDF(t *testing.T) {
	drive := newMockDrive()
	drive.raw["p1"] = []byte("pdf text")

	docs := []domain.FileDocument{{ID: "p1", MimeType: domain.MimeTypePDF}}
	results, err := newTestExtractor(drive, &mockPDF{}, testConfig()).ExtractContent(context.Background(), docs)

	require.NoError(t, err)
	assert.Equal(t, "pdf text", docs[0].Content)
	assert.Equal(t, domain.ExtractionExtracted, results[0].Status)
	assert.Equal(t, []string{"p1"}, drive.downloads)
}

func TestExtractContent_OtherTypesSkipped(t *testing.T) {
	drive := newMockDrive()
	docs := []domain.FileDocument{
		{ID: "img", MimeType: "image/png"},
		{ID: "pdf-without-extractor", MimeType: domain.MimeTypePDF},
	}

	results, err := newTestExtractor(drive, nil, testConfig()).ExtractContent(context.Background(), docs)

	require.NoError(t, err)
	assert.Equal(t, domain.ExtractionSkipped, results[0].Status)
	assert.Equal(t, domain.ExtractionSkipped, results[1].Status)
	assert.Empty(t, docs[0].Content)
	assert.Empty(t, drive.exportCalls)
	assert.Empty(t, drive.downloads)
}

func TestExtractContent_ItemErrorsSwallowed(t *testing.T) {
	drive := newMockDrive()
	drive.itemErr["gone"] = fmt.Errorf("export: %w", domain.ErrTransport)
	drive.raw["locked"] = []byte("locked")
	drive.raw["broken"] = []byte("broken")
	drive.exports["ok"] = []byte("fine")

	pdf := &mockPDF{
		errs: map[string]error{
			"locked": domain.ErrEncrypted,
			"broken": fmt.Errorf("page 3: %w", domain.ErrMalformedDocument),
		},
		text: map[string]string{
			"locked": "",
			"broken": "pages one and two",
		},
	}
	docs := []domain.FileDocument{
		{ID: "gone", MimeType: domain.MimeTypeGoogleDoc},
		{ID: "locked", MimeType: domain.MimeTypePDF},
		{ID: "broken", MimeType: domain.MimeTypePDF},
		{ID: "ok", MimeType: domain.MimeTypeGoogleDoc},
	}

	results, err := newTestExtractor(drive, pdf, testConfig()).ExtractContent(context.Background(), docs)

	require.NoError(t, err)
	assert.Equal(t, domain.ExtractionFailed, results[0].Status)
	assert.ErrorIs(t, results[0].Err, domain.ErrTransport)
	assert.Equal(t, domain.ExtractionFailed, results[1].Status)
	assert.ErrorIs(t, results[1].Err, domain.ErrEncrypted)
	assert.Equal(t, domain.ExtractionPartial, results[2].Status)
	assert.Equal(t, "pages one and two", docs[2].Content)
	assert.Equal(t, domain.ExtractionExtracted, results[3].Status)
	assert.Equal(t, "fine", docs[3].Content)
}

func TestExtractContent_FatalErrorPropagates(t *testing.T) {
	drive := newMockDrive()
	drive.itemErr["doc"] = domain.ErrAuthInvalid

	docs := []domain.FileDocument{{ID: "doc", MimeType: domain.MimeTypeGoogleDoc}}
	_, err := newTestExtractor(drive, nil, testConfig()).ExtractContent(context.Background(), docs)

	assert.ErrorIs(t, err, domain.ErrAuthInvalid)
	assert.Contains(t, err.Error(), "extract doc")
}

func TestExtractContent_ExportCappedAndValidUTF8(t *testing.T) {
	drive := newMockDrive()
	drive.exports["big"] = []byte("abcdef")
	drive.exports["bad"] = []byte("ok\xffok")

	cfg := testConfig()
	cfg.ExportMaxBytes = 4
	docs := []domain.FileDocument{
		{ID: "big", MimeType: domain.MimeTypeGoogleDoc},
		{ID: "bad", MimeType: domain.MimeTypeGoogleDoc},
	}

	_, err := newTestExtractor(drive, nil, cfg).ExtractContent(context.Background(), docs)

	require.NoError(t, err)
	assert.Equal(t, "abcd", docs[0].Content)
	assert.Equal(t, "okok", docs[1].Content)
}

func TestExtractContent_SanitisesEveryDocument(t *testing.T) {
	drive := newMockDrive()
	drive.exports["doc"] = []byte("naïve\tcafé\r\n")

	docs := []domain.FileDocument{
		{ID: "doc", MimeType: domain.MimeTypeGoogleDoc},
		{ID: "img", MimeType: "image/png", Content: "pre\nset"},
	}

	_, err := newTestExtractor(drive, nil, testConfig()).ExtractContent(context.Background(), docs)

	require.NoError(t, err)
	assert.Equal(t, "na ve caf   ", docs[0].Content)
	assert.Equal(t, "pre set", docs[1].Content)
}

func TestExtractContent_ManyDocumentsKeepOrder(t *testing.T) {
	drive := newMockDrive()
	docs := make([]domain.FileDocument, 50)
	for i := range docs {
		id := fmt.Sprintf("d%02d", i)
		drive.exports[id] = []byte("content " + id)
		docs[i] = domain.FileDocument{ID: id, MimeType: domain.MimeTypeGoogleDoc}
	}

	results, err := newTestExtractor(drive, nil, testConfig()).ExtractContent(context.Background(), docs)

	require.NoError(t, err)
	for i := range docs {
		assert.Equal(t, docs[i].ID, results[i].FileID)
		assert.Equal(t, "content "+docs[i].ID, docs[i].Content)
	}
}

func TestExtractContent_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	drive := newMockDrive()
	drive.itemErr["doc"] = ctx.Err()
	docs := []domain.FileDocument{{ID: "doc", MimeType: domain.MimeTypeGoogleDoc}}

	_, err := newTestExtractor(drive, nil, testConfig()).ExtractContent(ctx, docs)

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSanitise(t *testing.T) {
	allowed := "AZaz09_!#$%&'*+-.^`|~:;,[]()@\"{}<>/="
	assert.Equal(t, allowed, Sanitise(allowed))

	tests := []struct {
		name, in, want string
	}{
		{"whitespace", "a b\tc\nd\re", "a b c d e"},
		{"unicode letter", "żółw", "   w"},
		{"emoji", "hi 👋", "hi  "},
		{"backslash and question", `a\b?c`, "a b c"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitise(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Sanitise(got))
		})
	}
}

func TestSanitise_OnlyAllowedCharactersSurvive(t *testing.T) {
	var all strings.Builder
	for r := rune(0); r < 0x300; r++ {
		all.WriteRune(r)
	}

	for _, r := range Sanitise(all.String()) {
		if r == ' ' {
			continue
		}
		assert.True(t, isContentRune(r), "unexpected rune %q", r)
	}
}
