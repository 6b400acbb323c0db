package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/resourcehub/resourcehub/pkg/types"
)

// LoadDocument reads a resource document from disk.
func LoadDocument(path string) (*types.ResourceDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resource document: %w", err)
	}
	return DecodeDocument(raw)
}

// DecodeDocument accepts either {"resources":[...]} or a bare array of resources.
func DecodeDocument(raw []byte) (*types.ResourceDocument, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return &types.ResourceDocument{Resources: []types.Resource{}}, nil
	}

	doc := &types.ResourceDocument{}
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &doc.Resources); err != nil {
			return nil, fmt.Errorf("decode resource list: %w", err)
		}
	} else if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode resource document: %w", err)
	}

	if doc.Resources == nil {
		doc.Resources = []types.Resource{}
	}
	for i := range doc.Resources {
		normalize(&doc.Resources[i])
	}
	return doc, nil
}

func normalize(r *types.Resource) {
	if r.Tags == nil {
		r.Tags = []string{}
	}
	r.Relationships = r.RelationshipList()
}

func SaveDocument(path string, doc *types.ResourceDocument) error {
	return writeJSON(path, doc)
}

const (
	schemaTagsPath         = "properties.resources.items.properties.tags.items.enum"
	schemaTagsFallbackPath = "properties.tags.items.enum"
)

func LoadSchemaTags(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema document: %w", err)
	}
	return SchemaTags(raw), nil
}

// SchemaTags returns the enumerated tag values of a resource schema document.
func SchemaTags(raw []byte) []string {
	res := gjson.GetBytes(raw, schemaTagsPath)
	if !res.Exists() {
		res = gjson.GetBytes(raw, schemaTagsFallbackPath)
	}

	tags := []string{}
	for _, v := range res.Array() {
		if s := v.String(); s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}

func LoadStarData(path string) (*types.StarDataDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read star data: %w", err)
	}

	doc := &types.StarDataDocument{}
	if len(bytes.TrimSpace(raw)) == 0 {
		doc.Projects = []types.RepositoryStarData{}
		return doc, nil
	}
	if err = json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode star data: %w", err)
	}
	if doc.Projects == nil {
		doc.Projects = []types.RepositoryStarData{}
	}
	return doc, nil
}

func SaveStarData(path string, doc *types.StarDataDocument) error {
	return writeJSON(path, doc)
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
