package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vsariola/mathtone"
	"github.com/vsariola/mathtone/catalog"
	"github.com/vsariola/mathtone/convert"
)

var convertFlags struct {
	from, to string
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertFlags.from, "from", "f", "dec", "Number format of the input.")
	convertCmd.Flags().StringVarP(&convertFlags.to, "to", "t", "hex", "Number format(s) of the output, comma separated.")
}

var convertCmd = &cobra.Command{
	Use:   "convert [flags] DIGITS|CONSTANT...",
	Short: "Convert digit strings between number formats",
	Example: `  mathtone convert --from bin --to hex 1010
  mathtone convert --to oct,bin pi`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		from, err := mathtone.ParseNumberFormat(convertFlags.from)
		if err != nil {
			return err
		}
		to, err := mathtone.ParseNumberFormats(convertFlags.to)
		if err != nil {
			return err
		}
		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		for _, arg := range args {
			digits := arg
			if c, ok := cat.Constant(arg); ok {
				debug.Printf("using constant %v", arg)
				digits = c
			}
			results := make([]string, len(to))
			for i, f := range to {
				if results[i], err = convert.Convert(digits, from, f); err != nil {
					return fmt.Errorf("%v: %w", arg, err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(results, " "))
		}
		return nil
	},
}
