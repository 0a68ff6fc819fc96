// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sanjit30/AdvisorMatch/internal/corpus"
	"github.com/sanjit30/AdvisorMatch/internal/index"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the advisor corpus",
}

var corpusImportCmd = &cobra.Command{
	Use:   "import [dump.yaml]",
	Short: "Load a YAML corpus dump into the database",
	Long: `Import loads professors, publications, and authorship links from a YAML
dump into the corpus database. Existing rows are updated in place, so the
command is safe to re-run on a refreshed dump.`,
	Args: cobra.ExactArgs(1),
	RunE: runCorpusImport,
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print corpus table sizes",
	Args:  cobra.NoArgs,
	RunE:  runCorpusStats,
}

var corpusVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Cross-check the embedding index against the database",
	Long: `Verify checks that every embedding in the index has a publication row in
the corpus database, reports publications that have no embedding, and
confirms the index dimensionality matches the configured embedder.`,
	Args: cobra.NoArgs,
	RunE: runCorpusVerify,
}

func init() {
	corpusCmd.AddCommand(corpusImportCmd)
	corpusCmd.AddCommand(corpusStatsCmd)
	corpusCmd.AddCommand(corpusVerifyCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusImport(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()

	store, err := corpus.Open(cfg.Corpus.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.ImportFile(context.Background(), args[0], os.Stdout)
	return err
}

func runCorpusStats(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()

	store, err := corpus.Open(cfg.Corpus.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.Count(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Database:     %s\n", cfg.Corpus.DBPath)
	fmt.Printf("Professors:   %d\n", counts.Professors)
	fmt.Printf("Publications: %d\n", counts.Publications)
	fmt.Printf("Links:        %d\n", counts.Links)

	ix, err := index.LoadVector(cfg.Corpus.IndexPath)
	if errors.Is(err, index.ErrIndexNotFound) {
		fmt.Printf("Index:        %s (not built)\n", cfg.Corpus.IndexPath)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Index:        %s (%d embeddings, %s, %d dims)\n",
		cfg.Corpus.IndexPath, ix.Len(), ix.ModelName, ix.Dimensions)
	return nil
}

func runCorpusVerify(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	ctx := context.Background()

	store, err := corpus.Open(cfg.Corpus.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ix, err := index.LoadVector(cfg.Corpus.IndexPath)
	if err != nil {
		return err
	}

	pubs, err := store.AllPublications(ctx)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(pubs))
	unindexed := 0
	for _, pub := range pubs {
		known[pub.PaperID] = true
		if !ix.Has(pub.PaperID) {
			unindexed++
		}
	}

	orphaned := 0
	for id := range ix.Embeddings {
		if !known[id] {
			orphaned++
		}
	}

	fmt.Printf("Publications:        %d\n", len(pubs))
	fmt.Printf("Indexed embeddings:  %d\n", ix.Len())
	fmt.Printf("Without embedding:   %d\n", unindexed)
	fmt.Printf("Orphaned embeddings: %d\n", orphaned)

	if ix.Dimensions != cfg.Embedder.Dimensions {
		return fmt.Errorf("index dimensionality %d does not match configured embedder (%d)",
			ix.Dimensions, cfg.Embedder.Dimensions)
	}
	if orphaned > 0 {
		return fmt.Errorf("index references %d papers missing from the database", orphaned)
	}

	fmt.Println("Corpus and index are consistent.")
	return nil
}
