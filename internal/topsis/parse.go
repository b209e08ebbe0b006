package topsis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseWeights parses a comma-separated weight list such as "1,1,2,0.5".
func ParseWeights(s string) (Weights, error) {
	parts := strings.Split(s, ",")
	weights := make(Weights, len(parts))

	for idx, part := range parts {
		part = strings.TrimSpace(part)
		w, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: could not convert weight %q to a number", ErrUnexpected, part)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return nil, fmt.Errorf("%w: weight %d must be a positive number, got %q", ErrMalformedInput, idx+1, part)
		}
		weights[idx] = w
	}

	return weights, nil
}

// ParseImpacts parses a comma-separated impact list such as "+,-,+".
func ParseImpacts(s string) (Impacts, error) {
	return ParseImpactSymbols(strings.Split(s, ","))
}

func ParseImpact(symbol string) (Impact, error) {
	switch symbol {
	case "+":
		return Benefit, nil
	case "-":
		return Cost, nil
	}
	return 0, fmt.Errorf("%w: impacts must be '+' or '-', got %q", ErrInvalidImpact, symbol)
}

// ParseImpactSymbols validates already-split symbols, as received in JSON.
func ParseImpactSymbols(symbols []string) (Impacts, error) {
	impacts := make(Impacts, len(symbols))
	for idx, symbol := range symbols {
		impact, err := ParseImpact(strings.TrimSpace(symbol))
		if err != nil {
			return nil, err
		}
		impacts[idx] = impact
	}
	return impacts, nil
}

// ParseArguments parses the weight and impact strings of one invocation
// against a table with the given number of criteria. Checks run in order:
// weight values, vector lengths, impact symbols.
func ParseArguments(criteria int, weightsArg, impactsArg string) (Weights, Impacts, error) {
	weights, err := ParseWeights(weightsArg)
	if err != nil {
		return nil, nil, err
	}

	if err := checkDimensions(criteria, len(weights), strings.Count(impactsArg, ",")+1); err != nil {
		return nil, nil, err
	}

	impacts, err := ParseImpacts(impactsArg)
	if err != nil {
		return nil, nil, err
	}

	return weights, impacts, nil
}

// ParseArgumentValues is ParseArguments for weights that arrive already
// typed, as in a JSON request.
func ParseArgumentValues(criteria int, weights Weights, symbols []string) (Weights, Impacts, error) {
	if err := validateWeights(weights); err != nil {
		return nil, nil, err
	}
	if err := checkDimensions(criteria, len(weights), len(symbols)); err != nil {
		return nil, nil, err
	}

	impacts, err := ParseImpactSymbols(symbols)
	if err != nil {
		return nil, nil, err
	}

	return append(Weights(nil), weights...), impacts, nil
}

func checkDimensions(criteria, weights, impacts int) error {
	if weights != criteria || impacts != criteria {
		return fmt.Errorf("%w: number of weights (%d) and impacts (%d) must match the number of criteria (%d)",
			ErrDimensionMismatch, weights, impacts, criteria)
	}
	return nil
}

func validateWeights(weights Weights) error {
	for idx, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return fmt.Errorf("%w: weight %d must be a positive number, got %v", ErrMalformedInput, idx+1, w)
		}
	}
	return nil
}

func validateImpacts(impacts Impacts) error {
	for idx, impact := range impacts {
		if impact != Benefit && impact != Cost {
			return fmt.Errorf("%w: impact %d is %s", ErrInvalidImpact, idx+1, impact)
		}
	}
	return nil
}
