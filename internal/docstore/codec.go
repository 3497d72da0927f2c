package docstore

import (
	"encoding/json"
	"fmt"
)

// Encode converts a JSON-tagged struct into a Document.
func Encode(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return doc, nil
}

// Decode fills the JSON-tagged struct pointed to by v from doc.
func Decode(doc Document, v any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// Pick returns the subset of doc named by fields. Absent fields are
// carried as nil so an Update clears them.
func Pick(doc Document, fields ...string) Document {
	out := make(Document, len(fields))
	for _, f := range fields {
		out[f] = doc[f]
	}
	return out
}

// normalize round-trips v through JSON so stored values have one shape.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeDocument(doc Document) (Document, error) {
	out, err := normalize(map[string]any(doc))
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		return Document{}, nil
	}
	return Document(m), nil
}
