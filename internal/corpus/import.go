// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

// Dump is the YAML exchange format for loading a prepared corpus into the
// SQLite database. Link edges reference professors by name because the dump
// carries no database IDs; names are unique in the corpus.
type Dump struct {
	Professors   []types.Professor   `yaml:"professors"`
	Publications []types.Publication `yaml:"publications"`
	Links        []DumpLink          `yaml:"links"`
}

// DumpLink is one author-bridge edge in a corpus dump.
type DumpLink struct {
	Professor       string `yaml:"professor"`
	PaperID         string `yaml:"paper_id"`
	IsPrimaryAuthor bool   `yaml:"is_primary_author"`
	AuthorPosition  int    `yaml:"author_position"`
}

// ImportSummary holds counts from a corpus import run.
type ImportSummary struct {
	Professors   int
	Publications int
	Links        int
	SkippedLinks int
}

// ImportFile reads a YAML corpus dump from path and loads it. See Import.
func (s *Store) ImportFile(ctx context.Context, path string, w io.Writer) (ImportSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("reading dump %s: %w", path, err)
	}

	var dump Dump
	if err := yaml.Unmarshal(data, &dump); err != nil {
		return ImportSummary{}, fmt.Errorf("parsing dump %s: %w", path, err)
	}
	return s.Import(ctx, &dump, w)
}

// Import loads a corpus dump in a single transaction. Existing professors
// (by name) and publications (by paper ID) are updated in place; link edges
// whose professor or publication is absent from both the dump and the
// database are skipped with a warning.
func (s *Store) Import(ctx context.Context, dump *Dump, w io.Writer) (ImportSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var summary ImportSummary

	for _, p := range dump.Professors {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO professors (name, college, dept, interests, image_url, profile_url)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET
				college=excluded.college, dept=excluded.dept,
				interests=excluded.interests, image_url=excluded.image_url,
				profile_url=excluded.profile_url`,
			p.Name, p.College, p.Department, p.Interests, p.ImageURL, p.ProfileURL,
		)
		if err != nil {
			return summary, fmt.Errorf("upserting professor %q: %w", p.Name, err)
		}
		summary.Professors++
	}

	pubStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO publications (paper_id, title, abstract, venue, year, citation_count, url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(paper_id) DO UPDATE SET
			title=excluded.title, abstract=excluded.abstract, venue=excluded.venue,
			year=excluded.year, citation_count=excluded.citation_count, url=excluded.url`)
	if err != nil {
		return summary, fmt.Errorf("preparing publication insert: %w", err)
	}
	defer pubStmt.Close()

	for _, pub := range dump.Publications {
		var year any
		if pub.Year > 0 {
			year = pub.Year
		}
		if _, err := pubStmt.ExecContext(ctx,
			pub.PaperID, pub.Title, pub.Abstract, pub.Venue, year, pub.CitationCount, pub.URL,
		); err != nil {
			return summary, fmt.Errorf("upserting publication %s: %w", pub.PaperID, err)
		}
		summary.Publications++
	}

	for _, link := range dump.Links {
		var profID int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM professors WHERE name = ?`, link.Professor,
		).Scan(&profID)
		if err != nil {
			fmt.Fprintf(w, "skipped link %s -> %s: unknown professor\n", link.Professor, link.PaperID)
			summary.SkippedLinks++
			continue
		}

		res, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO author_bridge (professor_id, paper_id, is_primary_author, author_position)
			 SELECT ?, paper_id, ?, ? FROM publications WHERE paper_id = ?`,
			profID, link.IsPrimaryAuthor, link.AuthorPosition, link.PaperID,
		)
		if err != nil {
			return summary, fmt.Errorf("linking %s -> %s: %w", link.Professor, link.PaperID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			fmt.Fprintf(w, "skipped link %s -> %s: unknown publication\n", link.Professor, link.PaperID)
			summary.SkippedLinks++
			continue
		}
		summary.Links++
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing import: %w", err)
	}

	fmt.Fprintf(w, "imported: %d professors, %d publications, %d links (%d skipped)\n",
		summary.Professors, summary.Publications, summary.Links, summary.SkippedLinks)
	return summary, nil
}
