package docsystem

import (
	"bytes"
	"encoding/json"
	"fmt"

	models "docintake/internal/domain/models/docsystem"
)

// storeEnvelope is the persisted form of a DocumentStore.
type storeEnvelope struct {
	WorkspaceID string            `json:"workspace_id"`
	Revision    int64             `json:"revision"`
	Folders     []json.RawMessage `json:"folders"`
}

// Codec converts a DocumentStore to and from its persisted bytes.
// Transient fields (content handles) are never written. Decoding always
// runs the normalizer, so any stored shape loads as a canonical store.
type Codec struct {
	normalizer *Normalizer
}

// NewCodec creates a store codec
func NewCodec(normalizer *Normalizer) *Codec {
	return &Codec{normalizer: normalizer}
}

// Serialize encodes the store.
func (c *Codec) Serialize(store models.DocumentStore) ([]byte, error) {
	if store.Folders == nil {
		store.Folders = []models.Folder{}
	}
	data, err := json.Marshal(store)
	if err != nil {
		return nil, fmt.Errorf("serialize store: %w", err)
	}
	return data, nil
}

// Deserialize decodes persisted bytes. Three shapes are accepted: the
// canonical envelope, a bare array of records, and an object keyed by
// category name holding arrays of records.
func (c *Codec) Deserialize(data []byte, defaultCategory models.Category) (models.DocumentStore, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return models.DocumentStore{Folders: []models.Folder{}}, nil
	}

	switch data[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			return models.DocumentStore{}, fmt.Errorf("decode record list: %w", err)
		}
		return models.DocumentStore{Folders: c.normalizer.Normalize(records, defaultCategory)}, nil
	case '{':
	default:
		return models.DocumentStore{}, fmt.Errorf("decode store: unexpected leading byte %q", data[0])
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return models.DocumentStore{}, fmt.Errorf("decode store: %w", err)
	}
	if _, ok := probe["folders"]; ok {
		var env storeEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return models.DocumentStore{}, fmt.Errorf("decode store envelope: %w", err)
		}
		return models.DocumentStore{
			WorkspaceID: env.WorkspaceID,
			Revision:    env.Revision,
			Folders:     c.normalizer.Normalize(env.Folders, defaultCategory),
		}, nil
	}

	// Legacy per-category layout. Categories are visited in display order
	// so the result does not depend on map iteration.
	folders := []models.Folder{}
	for _, category := range models.Categories {
		for key, raw := range probe {
			if parsed, ok := models.ParseCategory(key); !ok || parsed != category {
				continue
			}
			var records []json.RawMessage
			if err := json.Unmarshal(raw, &records); err != nil {
				return models.DocumentStore{}, fmt.Errorf("decode %s records: %w", key, err)
			}
			folders = append(folders, c.normalizer.Normalize(records, category)...)
		}
	}
	return models.DocumentStore{Folders: folders}, nil
}
