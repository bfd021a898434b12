package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

const (
	DefaultModelVersion   = 1
	DefaultSimulationMode = "full"
)

// SimulationRequest is the caller-supplied description of a Monte Carlo run.
// It is never persisted as such: it only exists to be canonicalized and
// fingerprinted, and to be embedded in the queue entry's parameter bag for the
// simulation engine.
type SimulationRequest struct {
	ModelId        string         `json:"model_id"`
	ModelVersion   *int           `json:"model_version,omitempty"`
	Drivers        map[string]any `json:"drivers,omitempty"`
	Overrides      map[string]any `json:"overrides,omitempty"`
	NumSimulations int            `json:"num_simulations"`
	RandomSeed     *int64         `json:"random_seed,omitempty"`
	Mode           string         `json:"mode,omitempty"`
}

// CanonicalForm is the deterministic byte representation of a simulation
// request. Mapping keys are sorted recursively and omitted optional fields are
// materialized with their defaults, so two semantically equal requests
// serialize to the same bytes whatever the caller's key order was.
type CanonicalForm string

// Canonicalize validates the request and builds its canonical form.
// ModelId and NumSimulations are required; every other field falls back to its
// default (modelVersion=1, overrides={}, randomSeed=null, mode="full").
func (r SimulationRequest) Canonicalize() (CanonicalForm, error) {
	if r.ModelId == "" {
		return "", ErrMissingModelId
	}
	if r.NumSimulations <= 0 {
		return "", ErrMissingNumSimulations
	}

	version := DefaultModelVersion
	if r.ModelVersion != nil {
		version = *r.ModelVersion
	}
	mode := r.Mode
	if mode == "" {
		mode = DefaultSimulationMode
	}
	drivers := r.Drivers
	if drivers == nil {
		drivers = map[string]any{}
	}
	overrides := r.Overrides
	if overrides == nil {
		overrides = map[string]any{}
	}

	// encoding/json writes map keys in sorted order at every nesting level and
	// emits no whitespace, which is exactly the canonical serialization we
	// need. Arrays keep their order: sequence order is semantically
	// significant, mapping key order is not.
	fields := map[string]any{
		"modelId":        r.ModelId,
		"modelVersion":   version,
		"drivers":        drivers,
		"overrides":      overrides,
		"numSimulations": r.NumSimulations,
		"randomSeed":     r.RandomSeed,
		"mode":           mode,
	}

	serialized, err := json.Marshal(fields)
	if err != nil {
		return "", errors.Wrap(err, "could not serialize simulation request to its canonical form")
	}
	return CanonicalForm(serialized), nil
}

// Fingerprint hashes the canonical bytes into the cache key: the lowercase hex
// SHA-256 digest.
func (c CanonicalForm) Fingerprint() string {
	sum := sha256.Sum256([]byte(c))
	return hex.EncodeToString(sum[:])
}

// Fingerprint is shorthand for Canonicalize followed by CanonicalForm.Fingerprint.
func (r SimulationRequest) Fingerprint() (string, error) {
	canonical, err := r.Canonicalize()
	if err != nil {
		return "", err
	}
	return canonical.Fingerprint(), nil
}
