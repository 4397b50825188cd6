package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"lexsum/internal/logger"
	"lexsum/internal/sentence"
	"lexsum/internal/summarizer"
	"lexsum/internal/vectorizer"
)

var flags struct {
	file       string
	encoding   string
	variant    string
	sentences  int
	chars      int
	importance float64
}

var rootCmd = &cobra.Command{
	Use:          "lexsum",
	Short:        "Extractive text summarization by lexical centrality",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `lexsum ranks the sentences of a document with a graph centrality walk
over their pairwise similarity and prints the most central ones, in the
original order, under an optional length limit.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&flags.file, "file", "f", "", `plain text file to be summarized ("-" for stdin)`)
	rootCmd.Flags().StringVarP(&flags.encoding, "encoding", "e", "utf-8", "input encoding")
	rootCmd.Flags().StringVarP(&flags.variant, "variant", "v", summarizer.VariantLexRank, "variant of LexRank: lexrank, clexrank or divrank")
	rootCmd.Flags().IntVarP(&flags.sentences, "sentences", "s", 0, "summary length (the number of sentences)")
	rootCmd.Flags().IntVarP(&flags.chars, "chars", "c", 0, "summary length (the number of characters)")
	rootCmd.Flags().Float64VarP(&flags.importance, "importance", "i", 0, "cumulative importance fraction [0.0-1.0]")
	_ = rootCmd.MarkFlagRequired("file")
}

func run(cmd *cobra.Command, _ []string) error {
	text, err := readInput(flags.file, flags.encoding)
	if err != nil {
		return err
	}

	ranking, err := summarizer.VariantOptions(flags.variant)
	if err != nil {
		return err
	}

	constraints := summarizer.Constraints{}
	if cmd.Flags().Changed("sentences") {
		constraints.SentenceLimit = &flags.sentences
	}
	if cmd.Flags().Changed("chars") {
		constraints.CharLimit = &flags.chars
	}
	if cmd.Flags().Changed("importance") {
		constraints.Importance = &flags.importance
	}

	lang := sentence.English()
	log := logger.NewWithWriter(os.Stderr, "warn")
	s := summarizer.New(vectorizer.NewTFIDF(lang), log)

	sum, err := s.Summarize(cmd.Context(), lang.Split(text), summarizer.Options{
		Ranking:     ranking,
		Constraints: constraints,
	})
	if err != nil {
		return err
	}

	for _, sent := range sum.Sentences {
		fmt.Fprintln(cmd.OutOrStdout(), sent)
	}
	return nil
}

func readInput(path, encName string) (string, error) {
	var src io.Reader
	if path == "-" {
		src = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		src = f
	}

	enc, err := htmlindex.Get(encName)
	if err != nil {
		return "", fmt.Errorf("unknown encoding %q: %w", encName, err)
	}
	raw, err := io.ReadAll(transform.NewReader(src, enc.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
