package lsp

import (
	lru "github.com/hashicorp/golang-lru/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DefaultCacheSize bounds the number of documents whose diagnostics are kept.
const DefaultCacheSize = 256

type document struct {
	text        string
	diagnostics []protocol.Diagnostic
}

// documentCache remembers the last text checked per URI, so unchanged saves do not
// reparse.
type documentCache struct {
	docs *lru.Cache[protocol.DocumentUri, *document]
}

func newDocumentCache(size int) (*documentCache, error) {
	docs, err := lru.New[protocol.DocumentUri, *document](size)
	if err != nil {
		return nil, err
	}
	return &documentCache{docs: docs}, nil
}

// lookup returns the cached diagnostics when text matches what was last checked.
func (c *documentCache) lookup(uri protocol.DocumentUri, text string) ([]protocol.Diagnostic, bool) {
	doc, ok := c.docs.Get(uri)
	if !ok || doc.text != text {
		return nil, false
	}
	return doc.diagnostics, true
}

func (c *documentCache) text(uri protocol.DocumentUri) (string, bool) {
	doc, ok := c.docs.Get(uri)
	if !ok {
		return "", false
	}
	return doc.text, true
}

func (c *documentCache) store(uri protocol.DocumentUri, text string, diags []protocol.Diagnostic) {
	c.docs.Add(uri, &document{text: text, diagnostics: diags})
}

func (c *documentCache) forget(uri protocol.DocumentUri) {
	c.docs.Remove(uri)
}
