package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/medsig/engine/pkg/dayssupply"
	"github.com/medsig/engine/pkg/profile"
)

// readRequestContext decodes a JSON file into a MedicationRequestContext.
// MedicationRequestContext carries no json tags, so the file's keys must
// match its Go field names exactly (RequestID, Profile, Dose, ...).
func readRequestContext(path string) (*profile.MedicationRequestContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file %s: %w", path, err)
	}
	var ctx profile.MedicationRequestContext
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parsing request file %s: %w", path, err)
	}
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	return &ctx, nil
}

// readDaysSupplyContext decodes a JSON file into a dayssupply.Context, the
// same bare-field-name convention as readRequestContext.
func readDaysSupplyContext(path string) (*dayssupply.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file %s: %w", path, err)
	}
	var ctx dayssupply.Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parsing request file %s: %w", path, err)
	}
	return &ctx, nil
}
