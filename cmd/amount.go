package cmd

import (
	"fmt"
	"strconv"

	"budget-core/core/numfmt"

	"github.com/spf13/cobra"
)

var (
	amountFormat       string
	amountHideFraction bool
)

// amountCmd groups the number normalization helpers.
var amountCmd = &cobra.Command{
	Use:   "amount",
	Short: "Format and parse amounts",
	Long: `Runs the amount conversions the service uses, under a chosen number format.

Examples:
  amount format 123456 --format space-comma
  amount parse "1.234,56" --format dot-comma
  amount loose "(1,234.56)"`,
}

var amountFormatCmd = &cobra.Command{
	Use:   "format <cents>",
	Short: "Render integer cents as currency text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := amountFormatter()
		if err != nil {
			return err
		}
		cents, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", numfmt.ErrNotInteger, args[0])
		}
		text, err := f.IntegerToCurrency(cents)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var amountParseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Parse currency text written in the chosen format into cents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := amountFormatter()
		if err != nil {
			return err
		}
		cents, ok := f.CurrencyToInteger(args[0])
		if !ok {
			return fmt.Errorf("cannot parse %q as %s", args[0], amountFormat)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cents)
		return nil
	},
}

var amountLooseCmd = &cobra.Command{
	Use:   "loose <text>",
	Short: "Parse an amount of unknown format into cents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, ok := numfmt.LooselyParseAmount(args[0])
		if !ok {
			return fmt.Errorf("cannot parse %q", args[0])
		}
		cents, err := numfmt.AmountToInteger(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cents)
		return nil
	},
}

func amountFormatter() (*numfmt.Formatter, error) {
	if !numfmt.Format(amountFormat).IsValid() {
		return nil, fmt.Errorf("unknown number format %q", amountFormat)
	}
	return numfmt.NewFormatter(numfmt.Config{Format: amountFormat, HideFraction: amountHideFraction}), nil
}

func init() {
	amountCmd.PersistentFlags().StringVar(&amountFormat, "format", string(numfmt.CommaDot), "Number format id")
	amountCmd.PersistentFlags().BoolVar(&amountHideFraction, "hide-fraction", false, "Render without decimal places")

	amountCmd.AddCommand(amountFormatCmd, amountParseCmd, amountLooseCmd)
	RootCmd.AddCommand(amountCmd)
}
