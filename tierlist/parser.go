package tierlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/meysamhadeli/tierlist/tierlist/models"
)

// ErrInvalidDocument is returned when the document is not a JSON object.
var ErrInvalidDocument = errors.New("invalid tier list document")

// Document is the tier list file as authored, before normalization.
type Document struct {
	SchemaVersion int
	Title         string
	Subtitle      string
	UpdatedAt     string
	Tiers         []models.Tier
	Changes       []models.Change
	Snapshots     []models.Snapshot
}

type rawObject map[string]json.RawMessage

// ParseDocument decodes a tier list document. Only a malformed top level is an error:
// fragments that do not have the expected shape are dropped or replaced by their zero value,
// and actions with an unknown type are skipped.
func ParseDocument(data []byte) (*Document, error) {
	var root rawObject
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	doc := &Document{
		SchemaVersion: 1,
		Title:         looseString(root["title"]),
		Subtitle:      looseString(root["subtitle"]),
		UpdatedAt:     looseString(root["updatedAt"]),
	}

	var version float64
	if err := json.Unmarshal(root["schemaVersion"], &version); err == nil {
		doc.SchemaVersion = int(version)
	}

	for _, raw := range asArray(root["tiers"]) {
		tier := asObject(raw)
		doc.Tiers = append(doc.Tiers, models.Tier{
			ID:          looseString(tier["id"]),
			Label:       looseString(tier["label"]),
			Description: looseString(tier["description"]),
			Accent:      looseString(tier["accent"]),
		})
	}

	for _, raw := range asArray(root["changes"]) {
		doc.Changes = append(doc.Changes, parseChange(raw))
	}

	for _, raw := range asArray(root["snapshots"]) {
		doc.Snapshots = append(doc.Snapshots, parseLegacySnapshot(raw))
	}

	return doc, nil
}

func parseChange(raw json.RawMessage) models.Change {
	obj := asObject(raw)
	change := models.Change{
		At:    looseString(obj["at"]),
		Label: looseString(obj["label"]),
		Note:  looseString(obj["note"]),
	}
	for _, rawAction := range asArray(obj["actions"]) {
		if action, ok := ParseAction(rawAction); ok {
			change.Actions = append(change.Actions, action)
		}
	}
	return change
}

// ParseAction decodes one action record; ok is false for unknown or non-object records.
func ParseAction(raw json.RawMessage) (models.Action, bool) {
	obj := asObject(raw)
	if obj == nil {
		return nil, false
	}

	switch looseString(obj["type"]) {
	case "upsert_model":
		model := asObject(obj["model"])
		patch := models.ModelPatch{ID: looseString(model["id"])}
		patch.Name = optionalString(model, "name")
		patch.Vendor = optionalString(model, "vendor")
		patch.Summary = optionalString(model, "summary")
		if present(model, "reasoning") {
			reasoning := parseReasoning(model["reasoning"])
			patch.Reasoning = &reasoning
		}
		return models.UpsertModel{Model: patch}, true
	case "place":
		return models.Place{
			ID:       looseString(obj["id"]),
			Tier:     looseString(obj["tier"]),
			Position: parsePosition(obj),
		}, true
	case "remove":
		var purge bool
		_ = json.Unmarshal(obj["purge"], &purge)
		return models.Remove{ID: looseString(obj["id"]), Purge: purge}, true
	default:
		return nil, false
	}
}

// parsePosition accepts "top", "bottom", a number or {"before"|"after": id}. A missing
// position appends. Before/after next to position are used only when position is some other
// word or an object without a usable reference.
func parsePosition(action rawObject) models.Position {
	raw, ok := action["position"]
	if !ok || isNull(raw) {
		return models.Bottom()
	}

	fallback := relative(looseString(action["before"]), looseString(action["after"]))

	var word string
	if err := json.Unmarshal(raw, &word); err == nil {
		switch word {
		case "top":
			return models.Top()
		case "bottom":
			return models.Bottom()
		}
		return fallback
	}

	var index float64
	if err := json.Unmarshal(raw, &index); err == nil {
		bounded := math.Max(math.MinInt32, math.Min(math.MaxInt32, math.Trunc(index)))
		return models.AtIndex(int(bounded))
	}

	if ref := asObject(raw); ref != nil {
		if pos := relative(looseString(ref["before"]), looseString(ref["after"])); pos.Kind == models.PositionRelative {
			return pos
		}
	}

	return fallback
}

func relative(before, after string) models.Position {
	if before == "" && after == "" {
		return models.Bottom()
	}
	return models.Position{Kind: models.PositionRelative, Before: before, After: after}
}

func parseReasoning(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	items := asArray(raw)
	if items == nil {
		return ""
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, looseString(item))
	}
	return NormalizeReasoning(lines)
}

func parseLegacySnapshot(raw json.RawMessage) models.Snapshot {
	obj := asObject(raw)
	snapshot := models.Snapshot{
		ID:    looseString(obj["id"]),
		Date:  looseString(obj["date"]),
		Label: looseString(obj["label"]),
		Note:  looseString(obj["note"]),
		Tiers: make(map[string][]models.Model),
	}

	for tierID, rawList := range asObject(obj["tiers"]) {
		list := make([]models.Model, 0)
		for _, rawModel := range asArray(rawList) {
			model := asObject(rawModel)
			entry := models.Model{
				ID:        looseString(model["id"]),
				Name:      looseString(model["name"]),
				Vendor:    looseString(model["vendor"]),
				Summary:   looseString(model["summary"]),
				Reasoning: parseReasoning(model["reasoning"]),
			}
			entry.ID = ModelKey(entry)
			list = append(list, entry)
		}
		snapshot.Tiers[tierID] = list
	}

	return snapshot
}

// looseString reads strings as-is and non-zero numbers or true as their JSON text.
// Everything else, including absent values, reads as "".
func looseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 't':
		return "true"
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil || n == 0 {
			return ""
		}
		return strings.TrimSpace(string(raw))
	default:
		return ""
	}
}

func optionalString(obj rawObject, key string) *string {
	if !present(obj, key) {
		return nil
	}
	value := looseString(obj[key])
	return &value
}

func present(obj rawObject, key string) bool {
	raw, ok := obj[key]
	return ok && !isNull(raw)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func asArray(raw json.RawMessage) []json.RawMessage {
	var items []json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	return items
}

func asObject(raw json.RawMessage) rawObject {
	var obj rawObject
	if isNull(raw) || json.Unmarshal(raw, &obj) != nil {
		return nil
	}
	return obj
}
