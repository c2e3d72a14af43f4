package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validBatchJSON = `{
  "experiment": {"id": "exp-1", "title": "Capital cities", "model": "gpt-4o"},
  "responses": [
    {"id": "r1", "text": "Paris.", "params": {"temperature": 0.2}, "tokensIn": 12, "tokensOut": null},
    {"id": "r2", "text": "It is Paris."}
  ],
  "metrics": [
    {"id": "m1", "responseId": "r1", "overallQuality": 0.8, "scores": {"coherence": 0.9}},
    {"id": "m2", "responseId": "r2", "overallQuality": 1, "details": {"summary": "Fine."}}
  ]
}`

const invalidBatchJSON = `{
  "responses": [{"id": "r1"}],
  "metrics": [{"responseId": "r1", "overallQuality": 1.5, "scores": {"coherence": "high"}}]
}`

const validBatchYAML = `experiment:
  id: exp-1
  createdAt: 2024-05-01T10:00:00Z
responses:
  - id: r1
    text: Paris.
    createdAt: 2024-05-01T10:00:01Z
    params:
      temperature: 0.7
      max_tokens: 256
metrics:
  - responseId: r1
    overallQuality: 0.5
    scores:
      readability: 1
`

const invalidBatchYAML = `responses:
  - text: no id here
    latencyMs: -4
`

func TestValidateBatchJSON_Valid(t *testing.T) {
	errs := ValidateBatchJSON([]byte(validBatchJSON))
	require.Empty(t, errs, "valid batch should have no errors")
}

func TestValidateBatchJSON_Invalid(t *testing.T) {
	errs := ValidateBatchJSON([]byte(invalidBatchJSON))
	require.NotEmpty(t, errs, "invalid batch should have errors")

	joined := strings.Join(errs, "\n")
	require.Contains(t, joined, "/responses/0")
	require.Contains(t, joined, "text")
	require.Contains(t, joined, "/metrics/0/overallQuality")
	require.Contains(t, joined, "/metrics/0/scores/coherence")
}

func TestValidateBatchJSON_MissingResponses(t *testing.T) {
	errs := ValidateBatchJSON([]byte(`{"metrics": []}`))
	require.NotEmpty(t, errs)
	require.Contains(t, strings.Join(errs, "\n"), "responses")
}

func TestValidateBatchJSON_Malformed(t *testing.T) {
	errs := ValidateBatchJSON([]byte(`{"responses": [`))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "JSON parse error")
}

func TestValidateBatchYAML_Valid(t *testing.T) {
	errs := ValidateBatchYAML([]byte(validBatchYAML))
	require.Empty(t, errs, "valid batch should have no errors")
}

func TestValidateBatchYAML_Invalid(t *testing.T) {
	errs := ValidateBatchYAML([]byte(invalidBatchYAML))
	require.NotEmpty(t, errs)

	joined := strings.Join(errs, "\n")
	require.Contains(t, joined, "id")
	require.Contains(t, joined, "/responses/0/latencyMs")
}

func TestValidateBatchYAML_ParseError(t *testing.T) {
	errs := ValidateBatchYAML([]byte("responses: [unterminated"))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "YAML parse error")
}
