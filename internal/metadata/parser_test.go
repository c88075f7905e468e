package metadata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/metadata"
)

func TestParse_NoMetadataActions(t *testing.T) {
	tests := []struct {
		name   string
		kind   domain.EntityKind
		action domain.Action
	}{
		{"follow", domain.KindUser, domain.ActionFollow},
		{"save", domain.KindTrack, domain.ActionSave},
		{"delete", domain.KindTrack, domain.ActionDelete},
		{"verify", domain.KindUser, domain.ActionVerify},
		{"grant create", domain.KindGrant, domain.ActionCreate},
		{"developer app create", domain.KindDeveloperApp, domain.ActionCreate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := metadata.Parse(tc.kind, tc.action, `{"anything": "goes"}`)
			assert.NoError(t, err)
			assert.Nil(t, parsed)
		})
	}
}

func TestParse_InvalidEnvelope(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"missing cid", `{"data": {"name": "a"}}`},
		{"empty cid", `{"cid": "", "data": {"name": "a"}}`},
		{"missing data", `{"cid": "Qm123"}`},
		{"extra key", `{"cid": "Qm123", "data": {"name": "a"}, "extra": 1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := metadata.Parse(domain.KindUser, domain.ActionCreate, tc.raw)
			assert.Nil(t, parsed)
			rej, ok := domain.AsRejection(err)
			assert.True(t, ok)
			assert.Equal(t, domain.RejectInvalidMetadata, rej.Code)
		})
	}
}

func TestParse_CreateMergesTemplate(t *testing.T) {
	raw := `{"cid": "QmUser", "data": {"handle": "Alice", "bio": "hi", "unknown_field": "dropped"}}`

	parsed, err := metadata.Parse(domain.KindUser, domain.ActionCreate, raw)
	assert.NoError(t, err)
	assert.NotNil(t, parsed)
	assert.Equal(t, "QmUser", parsed.CID)
	assert.Equal(t, "Alice", parsed.Data["handle"])
	assert.Equal(t, "hi", parsed.Data["bio"])

	// fields outside the template never survive the merge
	_, ok := parsed.Data["unknown_field"]
	assert.False(t, ok)

	// untouched template fields keep their defaults
	assert.Contains(t, parsed.Data, "name")
	assert.Contains(t, parsed.Data, "is_deactivated")
}

func TestParse_CreateRejectsEmptyBody(t *testing.T) {
	// only unrecognized fields means the merge produces the bare template
	raw := `{"cid": "QmUser", "data": {"unknown_field": "x"}}`

	parsed, err := metadata.Parse(domain.KindUser, domain.ActionCreate, raw)
	assert.Nil(t, parsed)
	rej, ok := domain.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, domain.RejectInvalidMetadata, rej.Code)
}

func TestParse_CreateIgnoresNullValues(t *testing.T) {
	raw := `{"cid": "QmUser", "data": {"handle": "alice", "bio": null}}`

	parsed, err := metadata.Parse(domain.KindUser, domain.ActionCreate, raw)
	assert.NoError(t, err)
	assert.Equal(t, "alice", parsed.Data["handle"])
	assert.Nil(t, parsed.Data["bio"])
}

func TestParse_UpdatePassesThrough(t *testing.T) {
	raw := `{"cid": "QmTrack", "data": {"title": "New Title"}}`

	parsed, err := metadata.Parse(domain.KindTrack, domain.ActionUpdate, raw)
	assert.NoError(t, err)
	assert.Equal(t, "QmTrack", parsed.CID)
	assert.Equal(t, "New Title", parsed.Data["title"])

	// updates are partial, absent fields stay absent
	_, ok := parsed.Data["genre"]
	assert.False(t, ok)
}

func TestParse_SanitizesInvalidUTF8(t *testing.T) {
	raw := "{\"cid\": \"Qm\xff123\", \"data\": {\"title\": \"ok\"}}"

	parsed, err := metadata.Parse(domain.KindTrack, domain.ActionUpdate, raw)
	assert.NoError(t, err)
	assert.Equal(t, "Qm123", parsed.CID)
}
