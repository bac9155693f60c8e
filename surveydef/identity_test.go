package surveydef

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDClassification(t *testing.T) {
	p := NewPendingID()
	assert.Equal(t, Pending, p.Kind())
	assert.True(t, p.IsPending())
	assert.Empty(t, p.Remote())

	s := PersistedID("42")
	assert.Equal(t, Persisted, s.Kind())
	assert.True(t, s.IsPersisted())
	assert.Equal(t, "42", s.Remote())

	var zero ID
	assert.True(t, zero.IsPending())
}

func TestPendingIDsAreUnique(t *testing.T) {
	seen := map[ID]bool{}
	for i := 0; i < 1000; i++ {
		id := NewPendingID()
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestPendingAndPersistedNeverCollide(t *testing.T) {
	p := NewPendingID()
	// a storage id that happens to look like a pending token is still persisted
	s := PersistedID(p.value)
	assert.NotEqual(t, p, s)
	assert.True(t, s.IsPersisted())
}

func TestIDJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		persisted bool
		remote    string
	}{
		{name: "string id", input: `"17"`, persisted: true, remote: "17"},
		{name: "numeric id", input: `17`, persisted: true, remote: "17"},
		{name: "null", input: `null`, persisted: false},
		{name: "empty string", input: `""`, persisted: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.persisted, id.IsPersisted())
			assert.Equal(t, tt.remote, id.Remote())
		})
	}

	b, err := json.Marshal(PersistedID("9"))
	require.NoError(t, err)
	assert.JSONEq(t, `"9"`, string(b))

	b, err = json.Marshal(NewPendingID())
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestIDJSONRejectsGarbage(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`-3`), &id))
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}
