package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/malusev998/currency-history"
)

const dateLayout = "2006-01-02"

func convert(config *Config) *cobra.Command {
	var date string

	convertCmd := &cobra.Command{
		Use:   "convert <price> [to] | <amount> <from> [to]",
		Short: "Convert a price such as $1,234 or 500 eur with the stored monthly rates",
		Args:  cobra.RangeArgs(1, 3),
	}

	convertCmd.RunE = func(cmd *cobra.Command, args []string) error {
		from, amount, rest, err := parseConvertArgs(args)

		if err != nil {
			return err
		}

		to := currency.NormalizeSymbol(currency.BaseCurrency)

		if len(rest) == 1 {
			to = currency.NormalizeSymbol(rest[0])
		}

		at := time.Now()

		if date != "" {
			if at, err = time.Parse(dateLayout, date); err != nil {
				return fmt.Errorf("invalid date %s, expected YYYY-MM-DD: %w", date, err)
			}
		}

		conversion, closeStorage, err := config.NewConversion()

		if err != nil {
			return err
		}

		defer closeStorage()

		result, err := conversion.Convert(from, to, amount, at)

		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", amount, strings.ToUpper(from), result, strings.ToUpper(to))

		return err
	}

	convertCmd.Flags().StringVar(&date, "date", "", "Date of the conversion (YYYY-MM-DD), defaults to today")

	return convertCmd
}

// parseConvertArgs accepts either a price such as "$1,234" or a plain
// amount followed by the currency code. It returns the unused arguments.
func parseConvertArgs(args []string) (string, decimal.Decimal, []string, error) {
	if amount, err := decimal.NewFromString(args[0]); err == nil {
		if len(args) < 2 {
			return "", decimal.Zero, nil, fmt.Errorf("missing currency for amount %s", args[0])
		}

		return currency.NormalizeSymbol(args[1]), amount, args[2:], nil
	}

	from, amount, err := currency.ParsePrice(args[0])

	if err != nil {
		return "", decimal.Zero, nil, err
	}

	if len(args) > 2 {
		return "", decimal.Zero, nil, fmt.Errorf("price %s takes only the target currency", args[0])
	}

	return from, amount, args[1:], nil
}
