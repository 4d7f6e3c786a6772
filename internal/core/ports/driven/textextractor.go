package driven

import "context"

// TextExtractor pulls plain text out of binary documents (e.g. PDF).
type TextExtractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// ExtractText returns the text of at most maxPages pages.
	// On failure it returns the text accumulated so far together with the
	// error. Encrypted input wraps domain.ErrEncrypted; unparseable input
	// wraps domain.ErrMalformedDocument.
	ExtractText(ctx context.Context, data []byte, maxPages int) (string, error)
}
