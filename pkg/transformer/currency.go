package transformer

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"

	"github.com/goliatone/go-formschema/pkg/field"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/widgets"
)

// DefaultCurrencies is offered when neither the field nor the environment
// lists currencies.
var DefaultCurrencies = []string{"EUR", "USD", "GBP", "JPY", "CHF", "CAD", "AUD", "CNY"}

// Currency is a Choice whose default entries are ISO 4217 codes. Its widget
// becomes "currency" unless json_schema.widget was configured explicitly.
type Currency struct {
	Choice Choice
}

// NewCurrency returns a Currency delegating to a Choice seeded with the
// environment's currency list.
func NewCurrency() Currency {
	return Currency{Choice: Choice{Defaults: currencyEntries}}
}

// Transform implements Transformer.
func (t Currency) Transform(s *Scope, node field.Node) (schema.Fragment, error) {
	fragment, err := t.Choice.Transform(s, node)
	if err != nil {
		return nil, err
	}
	if !explicitWidget(node) {
		fragment.Options()[schema.OptionWidget] = widgets.WidgetCurrency
	}
	return fragment, nil
}

func currencyEntries(s *Scope, node field.Node) ([]ChoiceEntry, error) {
	codes := s.Env().Currencies
	entries := make([]ChoiceEntry, 0, len(codes))
	for _, code := range codes {
		unit, err := currency.ParseISO(strings.TrimSpace(code))
		if err != nil {
			return nil, &ConfigurationError{
				Field:  node.Path(),
				Option: field.OptionChoices,
				Reason: fmt.Sprintf("invalid currency code %q", code),
			}
		}
		entries = append(entries, ChoiceEntry{Label: unit.String(), Value: unit.String()})
	}
	return entries, nil
}
