package metadata

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/chorusnet/discovery-indexer/internal/domain"
)

// Parsed is a validated metadata envelope
type Parsed struct {
	// CID is the content identifier of the metadata blob
	CID string
	// Data is the metadata body; merged onto the kind's template for Create,
	// passed through unmerged for Update
	Data map[string]interface{}
}

type envelope struct {
	CID  *string                `json:"cid"`
	Data map[string]interface{} `json:"data"`
}

// Parse validates and decodes the metadata field of a transaction.
// Actions that carry no metadata return (nil, nil). Validation failures are
// RejectionErrors; Parse never panics on malformed input.
func Parse(kind domain.EntityKind, action domain.Action, raw string) (*Parsed, error) {
	if !domain.CarriesMetadata(action, kind) {
		return nil, nil
	}

	raw = sanitize(raw)

	var env envelope
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&env); err != nil {
		return nil, domain.Rejectf(domain.RejectInvalidMetadata, "metadata is not valid JSON: %v", err)
	}
	if env.CID == nil || *env.CID == "" {
		return nil, domain.Rejectf(domain.RejectInvalidMetadata, "metadata missing cid")
	}
	if env.Data == nil {
		return nil, domain.Rejectf(domain.RejectInvalidMetadata, "metadata missing data")
	}
	if err := requireEnvelopeKeys(raw); err != nil {
		return nil, err
	}

	if action == domain.ActionCreate {
		template := Template(kind)
		merged := Template(kind)
		for key := range merged {
			if v, ok := env.Data[key]; ok && v != nil {
				merged[key] = v
			}
		}
		if reflect.DeepEqual(merged, template) {
			return nil, domain.Rejectf(domain.RejectInvalidMetadata, "metadata carries no recognized fields")
		}
		return &Parsed{CID: *env.CID, Data: merged}, nil
	}

	// Update: partial semantics, untouched fields stay absent
	return &Parsed{CID: *env.CID, Data: env.Data}, nil
}

// requireEnvelopeKeys rejects envelopes with keys besides cid and data
func requireEnvelopeKeys(raw string) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return domain.Rejectf(domain.RejectInvalidMetadata, "metadata is not a JSON object")
	}
	for key := range top {
		if key != "cid" && key != "data" {
			return domain.Rejectf(domain.RejectInvalidMetadata, "unexpected metadata key %q", key)
		}
	}
	return nil
}

// sanitize strips invalid UTF-8 so the blob can round-trip through Postgres
func sanitize(raw string) string {
	return strings.ToValidUTF8(raw, "")
}
