package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		name string
		subs []SubTask
		want int
	}{
		{"empty sequence", []SubTask{}, 0},
		{"nil sequence", nil, 0},
		{"none completed", []SubTask{{Completed: false}, {Completed: false}}, 0},
		{"all completed", []SubTask{{Completed: true}, {Completed: true}}, 100},
		{"one of two", []SubTask{{Completed: true}, {Completed: false}}, 50},
		{"two of three rounds up", []SubTask{{Completed: true}, {Completed: true}, {Completed: false}}, 67},
		{"one of three rounds down", []SubTask{{Completed: true}, {Completed: false}, {Completed: false}}, 33},
		{"one of six", []SubTask{{Completed: true}, {}, {}, {}, {}, {}}, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompletionPercentage(tt.subs))
		})
	}
}

func TestTruthyCoercion(t *testing.T) {
	tests := []struct {
		name string
		json string
		want bool
	}{
		{"true", `true`, true},
		{"false", `false`, false},
		{"non-empty string", `"yes"`, true},
		{"string false is truthy", `"false"`, true},
		{"empty string", `""`, false},
		{"one", `1`, true},
		{"zero", `0`, false},
		{"null", `null`, false},
		{"object", `{"a":1}`, true},
		{"array", `[]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Truthy
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.want, bool(got))
		})
	}
}

func TestTruthyAbsentFieldDefaultsFalse(t *testing.T) {
	var payload struct {
		Completed Truthy `json:"completed"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	assert.False(t, bool(payload.Completed))
}

func TestSanitizedStripsPassword(t *testing.T) {
	u := User{ID: "u1", Email: "a@b.c", Password: "secret"}
	out := u.Sanitized()

	assert.Empty(t, out.Password)
	assert.NotNil(t, out.Tasks)
	assert.Equal(t, "secret", u.Password, "original must be untouched")

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
}
