package main

import (
	"fmt"

	"github.com/jonathan/placement-matcher/internal/lexicon"
	"github.com/spf13/cobra"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Inspect and validate skill lexicons",
}

var lexiconValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a lexicon file against the schema and uniqueness rules",
	Args:  cobra.ExactArgs(1),
	RunE:  runLexiconValidate,
}

var lexiconDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the active lexicon as JSON",
	Long:  "Write the active lexicon (built-in, or --lexicon/config override) as a lexicon file.",
	RunE:  runLexiconDump,
}

var (
	lexiconOut     string
	lexiconVersion string
)

func init() {
	lexiconDumpCmd.Flags().StringVarP(&lexiconOut, "out", "o", "", "Output file (default stdout)")
	lexiconDumpCmd.Flags().StringVar(&lexiconVersion, "version", "1", "Version string written to the file")

	lexiconCmd.AddCommand(lexiconValidateCmd, lexiconDumpCmd)
	rootCmd.AddCommand(lexiconCmd)
}

func runLexiconValidate(cmd *cobra.Command, args []string) error {
	lex, err := lexicon.LoadFile(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries, OK\n", args[0], lex.Len())
	return nil
}

func runLexiconDump(cmd *cobra.Command, _ []string) error {
	w, closeOut, err := openOutput(cmd, lexiconOut)
	if err != nil {
		return err
	}
	if err := engine.Lexicon().WriteJSON(w, lexiconVersion); err != nil {
		_ = closeOut()
		return fmt.Errorf("failed to write lexicon: %w", err)
	}
	return closeOut()
}
