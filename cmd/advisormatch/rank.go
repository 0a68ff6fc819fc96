// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sanjit30/AdvisorMatch/internal/corpus"
	"github.com/sanjit30/AdvisorMatch/internal/embed"
	"github.com/sanjit30/AdvisorMatch/internal/index"
	"github.com/sanjit30/AdvisorMatch/internal/rank"
	"github.com/sanjit30/AdvisorMatch/internal/spell"
	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank [query]",
	Short: "Rank advisors for a research-interest query",
	Long: `Rank retrieves the publications most similar to the query, rolls them up
per professor into a composite score, and prints the top professors with
their best matching publications.

Semantic mode (default) uses the embedding index and an embedding service;
lexical mode uses BM25 term matching and needs only the corpus database.`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	rankCmd.Flags().String("mode", string(types.ModeSemantic), "ranking mode: semantic or lexical")
	rankCmd.Flags().Int("top-k", 10, "number of professors to return (clamped to [1,20])")
	rankCmd.Flags().Bool("json", false, "output results as JSON")
	rankCmd.Flags().Bool("no-spellcheck", false, "disable domain spell correction")
	rankCmd.Flags().String("api-key", "", "embedding API key (default: .secrets/embedding-api-key)")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	modeFlag, _ := cmd.Flags().GetString("mode")
	mode := types.Mode(strings.ToLower(modeFlag))
	topK, _ := cmd.Flags().GetInt("top-k")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	noSpellcheck, _ := cmd.Flags().GetBool("no-spellcheck")
	apiKey, _ := cmd.Flags().GetString("api-key")

	cfg := engineConfig()
	if noSpellcheck {
		cfg.Retrieval.SpellCheck = false
	}

	ctx := context.Background()

	engine, cleanup, err := buildEngine(ctx, cfg, mode, apiKey)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := engine.Rank(ctx, types.SearchRequest{
		Query: args[0],
		TopK:  topK,
		Mode:  mode,
	})
	if err != nil {
		if errors.Is(err, rank.ErrInvalidQuery) {
			return fmt.Errorf("query must not be empty")
		}
		return err
	}

	return formatRankOutput(resp, jsonOutput)
}

// buildEngine opens the corpus artifacts the requested mode needs and
// assembles the engine. The returned cleanup closes everything.
func buildEngine(ctx context.Context, cfg types.EngineConfig, mode types.Mode, apiKey string) (*rank.Engine, func(), error) {
	store, err := corpus.Open(cfg.Corpus.DBPath)
	if err != nil {
		return nil, nil, err
	}

	var (
		vector   *index.VectorIndex
		lexical  *index.LexicalIndex
		embedder embed.Embedder
		checker  *spell.Checker
	)

	switch mode {
	case types.ModeSemantic:
		vector, err = index.LoadVector(cfg.Corpus.IndexPath)
		if err != nil {
			store.Close()
			if errors.Is(err, index.ErrIndexNotFound) {
				return nil, nil, fmt.Errorf("embedding index %s not found: semantic mode needs a prebuilt index", cfg.Corpus.IndexPath)
			}
			return nil, nil, err
		}
		embedder = embed.NewOllamaClient(cfg.Embedder,
			embed.WithAPIKey(secretDefault("embedding-api-key", apiKey)))

		if cfg.Retrieval.SpellCheck {
			checker, err = buildChecker(ctx, store)
			if err != nil {
				store.Close()
				return nil, nil, err
			}
		}
	case types.ModeLexical:
		pubs, err := store.AllPublications(ctx)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		lexical = index.BuildLexical(pubs)
	}

	var opts []rank.Option
	if checker != nil {
		opts = append(opts, rank.WithSpellChecker(checker))
	}

	engine, err := rank.New(store, vector, lexical, embedder, cfg, opts...)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		engine.Close()
		store.Close()
	}
	return engine, cleanup, nil
}

// buildChecker seeds the spell vocabulary from professor interests and
// publication titles.
func buildChecker(ctx context.Context, store *corpus.Store) (*spell.Checker, error) {
	checker := spell.NewChecker()

	interests, err := store.Interests(ctx)
	if err != nil {
		return nil, err
	}
	for _, text := range interests {
		checker.Add(text)
	}

	pubs, err := store.AllPublications(ctx)
	if err != nil {
		return nil, err
	}
	for _, pub := range pubs {
		checker.Add(pub.Title)
	}

	return checker, nil
}

func formatRankOutput(resp *types.SearchResponse, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if resp.CorrectedQuery != "" {
		fmt.Printf("Query corrected to: %q\n\n", resp.CorrectedQuery)
	}

	if resp.TotalResults == 0 {
		fmt.Println("No matching advisors found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-26s  %-24s  %-7s  %-7s  %s\n",
		"Rank", "Name", "Department", "Score", "Papers", "Top publication")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, r := range resp.Results {
		name := truncate(r.Name, 26)
		dept := truncate(r.Department, 24)
		top := ""
		if len(r.TopPublications) > 0 {
			top = truncate(r.TopPublications[0].Title, 40)
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-26s  %-24s  %-7.3f  %-7d  %s\n",
			i+1, name, dept, r.FinalScore, r.NumMatchingPapers, top)
	}

	fmt.Fprintf(os.Stdout, "\n%d advisors in %.1f ms\n", resp.TotalResults, resp.SearchTimeMs)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
