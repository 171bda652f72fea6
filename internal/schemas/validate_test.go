package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_TagList(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "Valid list", doc: `["Courage", "Collaborates"]`},
		{name: "Empty list", doc: `[]`},
		{name: "Empty string element", doc: `["", "Courage"]`, wantErr: true},
		{name: "Non-string element", doc: `["Courage", 3]`, wantErr: true},
		{name: "Too many items", doc: `["a","b","c","d","e","f","g","h","i","j","k"]`, wantErr: true},
		{name: "Object instead of array", doc: `{"tags": []}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(TagList, []byte(tt.doc))
			if tt.wantErr {
				require.Error(t, err)
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, TagList, verr.Schema)
				assert.NotEmpty(t, verr.Errors)
				assert.NotEmpty(t, verr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_STARAnalysis(t *testing.T) {
	valid := `{
		"situation": {"present": true, "confidence": 8, "excerpt": "last year"},
		"task": {"present": true, "confidence": 6, "excerpt": "had to"},
		"action": {"present": true, "confidence": 9, "excerpt": "I did"},
		"result": {"present": true, "confidence": 7, "excerpt": "we shipped"}
	}`
	assert.NoError(t, Validate(STARAnalysis, []byte(valid)))

	missing := `{"situation": {"present": true, "confidence": 8, "excerpt": ""}}`
	assert.Error(t, Validate(STARAnalysis, []byte(missing)))

	outOfRange := `{
		"situation": {"present": true, "confidence": 11, "excerpt": ""},
		"task": {"present": false, "confidence": 0, "excerpt": ""},
		"action": {"present": false, "confidence": 0, "excerpt": ""},
		"result": {"present": false, "confidence": 0, "excerpt": ""}
	}`
	assert.Error(t, Validate(STARAnalysis, []byte(outOfRange)))
}

func TestValidate_Contradictions(t *testing.T) {
	valid := `{"contradictions": [{"description": "timeline mismatch", "severity": "high"}]}`
	assert.NoError(t, Validate(Contradictions, []byte(valid)))

	empty := `{"contradictions": []}`
	assert.NoError(t, Validate(Contradictions, []byte(empty)))

	badSeverity := `{"contradictions": [{"description": "x", "severity": "catastrophic"}]}`
	assert.Error(t, Validate(Contradictions, []byte(badSeverity)))
}

func TestValidate_FollowUps(t *testing.T) {
	valid := `{"questions": [{"question": "What was the outcome?", "reasoning": "result missing"}]}`
	assert.NoError(t, Validate(FollowUps, []byte(valid)))

	noQuestionField := `{"questions": [{"reasoning": "result missing"}]}`
	assert.Error(t, Validate(FollowUps, []byte(noQuestionField)))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema")
}
