package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MohamedB94/scrapper-hellowork/internal/domain"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteSink appends listings to a local database, keyed by URL so
// re-running the same search only adds offers not seen before.
type SQLiteSink struct {
	db     *sql.DB
	logger *zap.Logger
}

func OpenSQLite(path string, logger *zap.Logger) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return &SQLiteSink{db: db, logger: logger}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS offres (
  url TEXT PRIMARY KEY,
  titre TEXT NOT NULL,
  entreprise TEXT NOT NULL,
  localisation TEXT NOT NULL,
  contrat TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  trouvee_le TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_offres_trouvee_le ON offres(trouvee_le DESC);
`)
	return err
}

func (s *SQLiteSink) Name() string { return "sqlite" }

func (s *SQLiteSink) Close() error { return s.db.Close() }

func (s *SQLiteSink) Write(ctx context.Context, records []domain.JobListing) error {
	added := 0
	for _, j := range records {
		ok, err := s.insertIfNew(ctx, j)
		if err != nil {
			return fmt.Errorf("sqlite insert %s: %w", j.URL, err)
		}
		if ok {
			added++
		}
	}
	s.logger.Info("sqlite export done",
		zap.Int("records", len(records)),
		zap.Int("added", added),
	)
	return nil
}

func (s *SQLiteSink) insertIfNew(ctx context.Context, j domain.JobListing) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO offres(url, titre, entreprise, localisation, contrat, description, trouvee_le)
VALUES(?,?,?,?,?,?,?);`,
		j.URL,
		j.Title,
		j.Company,
		j.Location,
		j.ContractType,
		j.Description,
		j.FoundAt.Format(time.RFC3339),
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
