package records

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/studiodesk/core/model"
)

// Document is the content of an input file for the CLI.
type Document struct {
	Orders            []model.Order
	Resources         []model.Resource
	PriorJobs         []model.PriorJob
	Target            *model.Coordinate
	PreferredResource string
}

// SuggestRequest builds the advisor input held by the document.
func (d Document) SuggestRequest() model.SuggestRequest {
	return model.SuggestRequest{
		Target:            d.Target,
		PreferredResource: d.PreferredResource,
		PriorJobs:         d.PriorJobs,
		Resources:         d.Resources,
	}
}

type rawDocument struct {
	Orders            []map[string]any `json:"orders"`
	Resources         []map[string]any `json:"resources"`
	PriorJobs         []map[string]any `json:"prior_jobs"`
	Target            map[string]any   `json:"target"`
	PreferredResource string           `json:"preferred_resource"`
}

// LoadFile reads a JSON or YAML document, chosen by file extension.
func LoadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return Decode(f, ext)
}

// Decode reads a document in the given format ("json", "yaml" or "yml").
// A top-level list is read as a list of orders.
func Decode(r io.Reader, format string) (Document, error) {
	var raw any
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
			return Document{}, fmt.Errorf("decode yaml: %w", err)
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
			return Document{}, fmt.Errorf("decode json: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("unsupported format: %s", format)
	}
	if list, ok := raw.([]any); ok {
		raw = map[string]any{"orders": list}
	}

	var rd rawDocument
	if raw != nil {
		if err := decodeInto(raw, &rd); err != nil {
			return Document{}, err
		}
	}
	var (
		doc Document
		err error
	)
	if doc.Orders, err = DecodeOrders(rd.Orders); err != nil {
		return Document{}, err
	}
	if doc.Resources, err = DecodeResources(rd.Resources); err != nil {
		return Document{}, err
	}
	if doc.PriorJobs, err = DecodePriorJobs(rd.PriorJobs); err != nil {
		return Document{}, err
	}
	if doc.Target, err = DecodeCoordinate(rd.Target); err != nil {
		return Document{}, fmt.Errorf("target: %w", err)
	}
	doc.PreferredResource = strings.TrimSpace(rd.PreferredResource)
	return doc, nil
}
