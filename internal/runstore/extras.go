package runstore

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ereefs/benchscore/internal/domain"
)

// knownRunFields are the run-level keys this version understands. Anything
// else found in a run file is carried through as an extra field.
var knownRunFields = map[string]struct{}{
	"run_id":        {},
	"model_name":    {},
	"provider":      {},
	"model_version": {},
	"temperature":   {},
	"evaluator":     {},
	"tools_used":    {},
	"run_notes":     {},
	"utc_timestamp": {},
	"status":        {},
	"answers":       {},
}

// decodeExtras walks the top-level object of a run document and collects
// unrecognized keys in encounter order. Values are kept as compact JSON so
// they round-trip losslessly through save.
func decodeExtras(data []byte) ([]domain.ExtraField, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("run document is not an object")
	}

	var extras []domain.ExtraField
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}

		if _, known := knownRunFields[key]; known {
			continue
		}
		extras = append(extras, domain.ExtraField{Key: key, Value: string(raw)})
	}
	return extras, nil
}

// encodeWithExtras re-serializes a run whose record carries extra fields.
// The typed fields are marshaled first, then the extras are spliced back in.
func encodeWithExtras(run *domain.Run) ([]byte, error) {
	base, err := json.Marshal(run)
	if err != nil {
		return nil, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(base, &doc); err != nil {
		return nil, err
	}
	for _, f := range run.Extra {
		if _, clash := doc[f.Key]; clash {
			continue
		}
		doc[f.Key] = json.RawMessage(f.Value)
	}
	return json.MarshalIndent(doc, "", "  ")
}
