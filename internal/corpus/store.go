// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus provides read access to the professor-publication corpus:
// a SQLite database of professors, publications, and the author bridge
// linking them. The ranking engine only reads; writes happen through the
// import path before the engine starts.
package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

// ErrNotFound is returned when a professor or publication does not exist.
var ErrNotFound = errors.New("not found")

// Store manages the corpus SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the corpus database at path and ensures the schema
// exists. Opening an already-populated corpus is cheap; the schema
// statements are idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening corpus database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS professors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			college TEXT,
			dept TEXT,
			interests TEXT,
			image_url TEXT,
			profile_url TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS publications (
			paper_id TEXT PRIMARY KEY,
			title TEXT,
			abstract TEXT,
			venue TEXT,
			year INTEGER,
			citation_count INTEGER,
			url TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS author_bridge (
			professor_id INTEGER NOT NULL REFERENCES professors(id),
			paper_id TEXT NOT NULL REFERENCES publications(paper_id),
			is_primary_author INTEGER NOT NULL DEFAULT 0,
			author_position INTEGER,
			PRIMARY KEY (professor_id, paper_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bridge_paper ON author_bridge(paper_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pubs_year ON publications(year)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// GetProfessor returns one professor by ID. Returns ErrNotFound if the ID
// does not exist.
func (s *Store) GetProfessor(ctx context.Context, id int64) (*types.Professor, error) {
	var (
		p         types.Professor
		college   sql.NullString
		dept      sql.NullString
		interests sql.NullString
		imageURL  sql.NullString
		profile   sql.NullString
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, college, dept, interests, image_url, profile_url
		 FROM professors WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &college, &dept, &interests, &imageURL, &profile)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("professor %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("looking up professor %d: %w", id, err)
	}

	p.College = college.String
	p.Department = dept.String
	p.Interests = interests.String
	p.ImageURL = imageURL.String
	p.ProfileURL = profile.String
	return &p, nil
}

// GetPublication returns one publication by paper ID. Returns ErrNotFound
// if the ID does not exist.
func (s *Store) GetPublication(ctx context.Context, paperID string) (*types.Publication, error) {
	pubs, err := s.Publications(ctx, []string{paperID})
	if err != nil {
		return nil, err
	}
	pub, ok := pubs[paperID]
	if !ok {
		return nil, fmt.Errorf("publication %s: %w", paperID, ErrNotFound)
	}
	return &pub, nil
}

// Publications returns the publications for the given paper IDs, keyed by
// paper ID. Unknown IDs are simply absent from the result.
func (s *Store) Publications(ctx context.Context, paperIDs []string) (map[string]types.Publication, error) {
	result := make(map[string]types.Publication, len(paperIDs))
	if len(paperIDs) == 0 {
		return result, nil
	}

	query := `SELECT paper_id, title, abstract, venue, year, citation_count, url
		FROM publications WHERE paper_id IN (` + placeholders(len(paperIDs)) + `)`

	rows, err := s.db.QueryContext(ctx, query, stringArgs(paperIDs)...)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		pub, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		result[pub.PaperID] = pub
	}
	return result, rows.Err()
}

// Links returns the author-bridge edges for the given paper IDs, keyed by
// paper ID. Publications with no linked professor are absent.
func (s *Store) Links(ctx context.Context, paperIDs []string) (map[string][]types.AuthorLink, error) {
	result := make(map[string][]types.AuthorLink, len(paperIDs))
	if len(paperIDs) == 0 {
		return result, nil
	}

	query := `SELECT professor_id, paper_id, is_primary_author, author_position
		FROM author_bridge WHERE paper_id IN (` + placeholders(len(paperIDs)) + `)
		ORDER BY paper_id, professor_id`

	rows, err := s.db.QueryContext(ctx, query, stringArgs(paperIDs)...)
	if err != nil {
		return nil, fmt.Errorf("querying author bridge: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			link     types.AuthorLink
			primary  sql.NullInt64
			position sql.NullInt64
		)
		if err := rows.Scan(&link.ProfessorID, &link.PaperID, &primary, &position); err != nil {
			return nil, fmt.Errorf("scanning author link: %w", err)
		}
		link.IsPrimaryAuthor = primary.Int64 != 0
		link.AuthorPosition = int(position.Int64)
		result[link.PaperID] = append(result[link.PaperID], link)
	}
	return result, rows.Err()
}

// AllPublications returns every publication in the corpus, ordered by paper
// ID. Used to build the in-memory lexical index and the spell vocabulary at
// startup.
func (s *Store) AllPublications(ctx context.Context) ([]types.Publication, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT paper_id, title, abstract, venue, year, citation_count, url
		 FROM publications ORDER BY paper_id`)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	var pubs []types.Publication
	for rows.Next() {
		pub, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, pub)
	}
	return pubs, rows.Err()
}

// Interests returns the non-empty research-interest strings of all
// professors. Used to seed the spell-check vocabulary.
func (s *Store) Interests(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT interests FROM professors WHERE interests IS NOT NULL AND interests != ''`)
	if err != nil {
		return nil, fmt.Errorf("querying interests: %w", err)
	}
	defer rows.Close()

	var interests []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scanning interests: %w", err)
		}
		interests = append(interests, text)
	}
	return interests, rows.Err()
}

// Counts holds corpus table sizes.
type Counts struct {
	Professors   int64
	Publications int64
	Links        int64
}

// Count returns the corpus table sizes.
func (s *Store) Count(ctx context.Context) (Counts, error) {
	var c Counts
	for _, q := range []struct {
		table string
		dst   *int64
	}{
		{"professors", &c.Professors},
		{"publications", &c.Publications},
		{"author_bridge", &c.Links},
	} {
		if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM `+q.table).Scan(q.dst); err != nil {
			return Counts{}, fmt.Errorf("counting %s: %w", q.table, err)
		}
	}
	return c, nil
}

func scanPublication(rows *sql.Rows) (types.Publication, error) {
	var (
		pub       types.Publication
		title     sql.NullString
		abstract  sql.NullString
		venue     sql.NullString
		year      sql.NullInt64
		citations sql.NullInt64
		url       sql.NullString
	)
	if err := rows.Scan(&pub.PaperID, &title, &abstract, &venue, &year, &citations, &url); err != nil {
		return types.Publication{}, fmt.Errorf("scanning publication: %w", err)
	}
	pub.Title = title.String
	pub.Abstract = abstract.String
	pub.Venue = venue.String
	pub.Year = int(year.Int64)
	pub.CitationCount = citations.Int64
	pub.URL = url.String
	return pub, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func stringArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
