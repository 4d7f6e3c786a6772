// Package normalisers holds the text extractors for binary drive files.
// Each extractor handles a set of MIME types and is passed to the extractor
// service at startup.
package normalisers
