package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/vsariola/mathtone/version"
)

var (
	verbose bool
	logger  = log.New(os.Stderr, "mathtone: ", 0)
	debug   = log.New(io.Discard, "mathtone: ", 0)
)

var rootCmd = &cobra.Command{
	Use:   "mathtone",
	Short: "Turn digit strings into music",
	Long: `mathtone turns digit strings, such as the digits of pi, into tone
sequences and renders them as stereo .wav files.

Digits are read in one number format (--from), converted into another (--to)
and every digit value v becomes a tone of v times the base frequency.
Expressions joined with '+' are played as parallel tracks.`,
	Version: version.VersionOrHash,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			debug.SetOutput(os.Stderr)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print what is being done to standard error.")
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}
