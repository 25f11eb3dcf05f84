package currency

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider names the source of the monthly rate tables.
type Provider string

const (
	XEProvider               Provider = "xe"
	ExchangeRatesAPIProvider Provider = "exchangeratesapi"
	EmptyProvider            Provider = ""
)

var ErrUnknownProvider = errors.New("unknown provider")

var providers = map[string]Provider{
	string(XEProvider):               XEProvider,
	string(ExchangeRatesAPIProvider): ExchangeRatesAPIProvider,
}

func ParseProvider(name string) (Provider, error) {
	provider, ok := providers[strings.ToLower(name)]

	if !ok {
		return EmptyProvider, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}

	return provider, nil
}

// ParseEach parses every name in order and fails on the first invalid one.
func ParseEach[T any](names []string, parse func(string) (T, error)) ([]T, error) {
	parsed := make([]T, 0, len(names))

	for _, name := range names {
		value, err := parse(name)

		if err != nil {
			return nil, err
		}

		parsed = append(parsed, value)
	}

	return parsed, nil
}

func (p *Provider) UnmarshalYAML(node *yaml.Node) error {
	var name string

	if err := node.Decode(&name); err != nil {
		return err
	}

	provider, err := ParseProvider(name)

	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*p = provider

	return nil
}

func (p Provider) MarshalYAML() (interface{}, error) {
	return string(p), nil
}
