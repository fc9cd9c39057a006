package simulation

import (
	"context"
	"slices"
)

// FixedSource serves a prepared dataset, typically a test fixture.
type FixedSource struct {
	Dataset Dataset
}

var _ Source = (*FixedSource)(nil)

func NewFixedSource(ds Dataset) *FixedSource {
	return &FixedSource{Dataset: ds}
}

// Load returns a copy whose slices can be modified without touching the fixture.
func (s *FixedSource) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds := Dataset{
		Products:  slices.Clone(s.Dataset.Products),
		Sales:     slices.Clone(s.Dataset.Sales),
		Forecasts: slices.Clone(s.Dataset.Forecasts),
		Weather:   slices.Clone(s.Dataset.Weather),
		Sentiment: slices.Clone(s.Dataset.Sentiment),
		Locations: slices.Clone(s.Dataset.Locations),
	}
	return &ds, nil
}
