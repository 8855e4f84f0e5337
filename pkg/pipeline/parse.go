package pipeline

import (
	"bytes"

	"github.com/matzehuels/pinboard/pkg/cache"
	"github.com/matzehuels/pinboard/pkg/document"
	"github.com/matzehuels/pinboard/pkg/errors"
)

// LoadDocument reads and validates a document file.
func LoadDocument(path string) (*document.Document, error) {
	return document.ReadFile(path)
}

// ParseDocument decodes and validates a document held in memory.
func ParseDocument(data []byte, format document.Format) (*document.Document, error) {
	return document.Decode(bytes.NewReader(data), format)
}

// HashDocument returns the content hash of doc. Two documents that decode to
// the same value hash the same, whatever format they were written in.
func HashDocument(doc *document.Document) (string, error) {
	h, err := cache.HashJSON(doc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash document")
	}
	return h, nil
}
