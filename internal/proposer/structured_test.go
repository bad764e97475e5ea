package proposer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnvelope struct {
	Assignments []struct {
		FeatureKey string `json:"feature_key"`
	} `json:"assignments"`
}

func TestExtractJSON_PlainObject(t *testing.T) {
	raw := `{"assignments": [{"feature_key": "F-1"}]}`
	env, err := extractJSON[testEnvelope](raw)
	require.NoError(t, err)
	require.Len(t, env.Assignments, 1)
	assert.Equal(t, "F-1", env.Assignments[0].FeatureKey)
}

func TestExtractJSON_CodeFences(t *testing.T) {
	raw := "Here is the plan:\n```json\n{\"assignments\": [{\"feature_key\": \"F-1\"}]}\n```\nLet me know!"
	env, err := extractJSON[testEnvelope](raw)
	require.NoError(t, err)
	require.Len(t, env.Assignments, 1)
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	raw := `Sure! Based on capacity, {"assignments": []} is the best I can do.`
	env, err := extractJSON[testEnvelope](raw)
	require.NoError(t, err)
	assert.Empty(t, env.Assignments)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"assignments": [{"feature_key": "weird {key}"}]}`
	env, err := extractJSON[testEnvelope](raw)
	require.NoError(t, err)
	require.Len(t, env.Assignments, 1)
	assert.Equal(t, "weird {key}", env.Assignments[0].FeatureKey)
}

func TestExtractJSON_TopLevelArray(t *testing.T) {
	raw := `[1, 2, 3]`
	nums, err := extractJSON[[]int](raw)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, nums)
}

func TestExtractJSON_Errors(t *testing.T) {
	_, err := extractJSON[testEnvelope]("no json here at all")
	assert.ErrorIs(t, err, ErrInvalidOutput)

	_, err = extractJSON[testEnvelope](`{"assignments": [`)
	assert.ErrorIs(t, err, ErrInvalidOutput)

	_, err = extractJSON[testEnvelope](`{"assignments": "not an array"}`)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}
