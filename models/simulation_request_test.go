package models

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeProducesSortedCompactForm(t *testing.T) {
	seed := int64(42)
	request := SimulationRequest{
		ModelId:        "mdl_growth",
		NumSimulations: 1000,
		RandomSeed:     &seed,
		Drivers: map[string]any{
			"growth": map[string]any{"min": 0.1, "max": 0.3},
			"churn":  0.05,
		},
	}

	canonical, err := request.Canonicalize()
	assert.NoError(t, err)
	assert.Equal(t,
		`{"drivers":{"churn":0.05,"growth":{"max":0.3,"min":0.1}},"mode":"full","modelId":"mdl_growth","modelVersion":1,"numSimulations":1000,"overrides":{},"randomSeed":42}`,
		string(canonical))
}

func TestCanonicalizeIsOrderIndependent(t *testing.T) {
	// Driver payloads coming off the wire in different key orders must
	// canonicalize to the same bytes.
	var first, second map[string]any
	assert.NoError(t, json.Unmarshal(
		[]byte(`{"churn":0.05,"growth":{"min":0.1,"max":0.3},"cac":{"values":[1,2,3]}}`), &first))
	assert.NoError(t, json.Unmarshal(
		[]byte(`{"cac":{"values":[1,2,3]},"growth":{"max":0.3,"min":0.1},"churn":0.05}`), &second))

	canonicalFirst, err := SimulationRequest{
		ModelId: "mdl_1", NumSimulations: 500, Drivers: first,
	}.Canonicalize()
	assert.NoError(t, err)
	canonicalSecond, err := SimulationRequest{
		ModelId: "mdl_1", NumSimulations: 500, Drivers: second,
	}.Canonicalize()
	assert.NoError(t, err)

	assert.Equal(t, canonicalFirst, canonicalSecond)
	assert.Equal(t, canonicalFirst.Fingerprint(), canonicalSecond.Fingerprint())
}

func TestCanonicalizeDefaultsMatchExplicitValues(t *testing.T) {
	version := 1
	explicit := SimulationRequest{
		ModelId:        "mdl_1",
		ModelVersion:   &version,
		Drivers:        map[string]any{},
		Overrides:      map[string]any{},
		NumSimulations: 100,
		RandomSeed:     nil,
		Mode:           "full",
	}
	bare := SimulationRequest{ModelId: "mdl_1", NumSimulations: 100}

	explicitFingerprint, err := explicit.Fingerprint()
	assert.NoError(t, err)
	bareFingerprint, err := bare.Fingerprint()
	assert.NoError(t, err)
	assert.Equal(t, explicitFingerprint, bareFingerprint)
}

func TestCanonicalizeKeepsArrayOrder(t *testing.T) {
	ordered, err := SimulationRequest{
		ModelId: "mdl_1", NumSimulations: 100,
		Drivers: map[string]any{"seasonality": []any{3.0, 1.0, 2.0}},
	}.Canonicalize()
	assert.NoError(t, err)
	assert.Contains(t, string(ordered), `"seasonality":[3,1,2]`)

	reordered, err := SimulationRequest{
		ModelId: "mdl_1", NumSimulations: 100,
		Drivers: map[string]any{"seasonality": []any{1.0, 2.0, 3.0}},
	}.Canonicalize()
	assert.NoError(t, err)
	assert.NotEqual(t, ordered.Fingerprint(), reordered.Fingerprint())
}

func TestCanonicalizeDistinguishesMeaningfulFields(t *testing.T) {
	base := SimulationRequest{ModelId: "mdl_1", NumSimulations: 100}
	baseFingerprint, err := base.Fingerprint()
	assert.NoError(t, err)

	seed := int64(7)
	version := 2
	variants := map[string]SimulationRequest{
		"other model":      {ModelId: "mdl_2", NumSimulations: 100},
		"other count":      {ModelId: "mdl_1", NumSimulations: 200},
		"explicit seed":    {ModelId: "mdl_1", NumSimulations: 100, RandomSeed: &seed},
		"other version":    {ModelId: "mdl_1", NumSimulations: 100, ModelVersion: &version},
		"other mode":       {ModelId: "mdl_1", NumSimulations: 100, Mode: "quick"},
		"with an override": {ModelId: "mdl_1", NumSimulations: 100, Overrides: map[string]any{"horizon": 24.0}},
	}
	for name, variant := range variants {
		variantFingerprint, err := variant.Fingerprint()
		assert.NoError(t, err)
		assert.NotEqual(t, baseFingerprint, variantFingerprint, name)
	}
}

func TestCanonicalizeRejectsInvalidRequests(t *testing.T) {
	_, err := SimulationRequest{NumSimulations: 100}.Canonicalize()
	assert.ErrorIs(t, err, BadParameterError)

	_, err = SimulationRequest{ModelId: "mdl_1"}.Canonicalize()
	assert.ErrorIs(t, err, BadParameterError)

	_, err = SimulationRequest{ModelId: "mdl_1", NumSimulations: -3}.Canonicalize()
	assert.ErrorIs(t, err, BadParameterError)
}

func TestFingerprintIsLowercaseHexSha256(t *testing.T) {
	fingerprint, err := SimulationRequest{ModelId: "mdl_1", NumSimulations: 100}.Fingerprint()
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), fingerprint)

	again, err := SimulationRequest{ModelId: "mdl_1", NumSimulations: 100}.Fingerprint()
	assert.NoError(t, err)
	assert.Equal(t, fingerprint, again)
}
