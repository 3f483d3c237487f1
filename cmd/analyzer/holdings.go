package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"PortfolioAnalyzer/internal/model"
)

type fileHolding struct {
	Symbol        string  `yaml:"symbol" validate:"required"`
	Quantity      float64 `yaml:"quantity" validate:"gt=0"`
	PurchasePrice float64 `yaml:"purchase_price" validate:"gt=0"`
}

var validate = validator.New()

// loadHoldings reads a YAML or JSON holdings file: either a list of holdings
// or a mapping with a "holdings" list.
func loadHoldings(path string) ([]model.Holding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holdings: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse holdings: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, errors.New("holdings file is empty")
	}

	var entries []fileHolding
	doc := root.Content[0]
	if doc.Kind == yaml.MappingNode {
		var wrapped struct {
			Holdings []fileHolding `yaml:"holdings"`
		}
		err = doc.Decode(&wrapped)
		entries = wrapped.Holdings
	} else {
		err = doc.Decode(&entries)
	}
	if err != nil {
		return nil, fmt.Errorf("decode holdings: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("holdings file lists no holdings")
	}

	out := make([]model.Holding, 0, len(entries))
	for i, e := range entries {
		e.Symbol = strings.ToUpper(strings.TrimSpace(e.Symbol))
		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("holding %d: %w", i+1, err)
		}
		out = append(out, model.Holding{Symbol: e.Symbol, Quantity: e.Quantity, PurchasePrice: e.PurchasePrice})
	}
	return out, nil
}
