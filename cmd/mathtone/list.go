package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vsariola/mathtone/catalog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func init() {
	rootCmd.AddCommand(timbresCmd)
	rootCmd.AddCommand(constantsCmd)
}

var timbresCmd = &cobra.Command{
	Use:   "timbres",
	Short: "List the timbre profiles usable with render --timbre",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		title := cases.Title(language.English)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, p := range cat.Timbres() {
			coeffs := make([]string, len(p.Coefficients))
			for i, c := range p.Coefficients {
				coeffs[i] = fmt.Sprint(c)
			}
			fmt.Fprintf(w, "%s\t%s\n", title.String(p.Name), strings.Join(coeffs, " "))
		}
		return w.Flush()
	},
}

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "List the named constants usable in place of digits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, c := range cat.Constants() {
			digits := c.Digits
			if len(digits) > 24 {
				digits = digits[:24] + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%d digits\t%s\n", c.Name, strings.Join(c.Aliases, ", "), len(c.Digits), digits)
		}
		return w.Flush()
	},
}
