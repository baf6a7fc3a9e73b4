package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nightowl-app/nightowl-backend-go/internal/database"
	"github.com/nightowl-app/nightowl-backend-go/internal/models"
)

// SessionRepository handles database operations for finished night
// sessions. Active sessions live in memory on the tracker and are only
// persisted once ended.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save stores a finished session with its route, dwells and drink tallies
// in a single transaction.
func (r *SessionRepository) Save(s *models.NightSession) error {
	if s.EndTime == nil {
		return fmt.Errorf("cannot persist active session %s", s.ID)
	}

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			"INSERT INTO sessions (id, start_ns, end_ns, rating) VALUES (?, ?, ?, ?)",
			s.ID, s.StartTime.UnixNano(), s.EndTime.UnixNano(), s.Rating,
		); err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}

		fixStmt, err := tx.Prepare(`INSERT INTO fixes
			(session_id, seq, latitude, longitude, accuracy, timestamp_ns)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare fix insert: %w", err)
		}
		defer fixStmt.Close()

		for i, f := range s.Route {
			if _, err := fixStmt.Exec(s.ID, i, f.Latitude, f.Longitude, f.Accuracy, f.Timestamp.UnixNano()); err != nil {
				return fmt.Errorf("failed to insert fix %d: %w", i, err)
			}
		}

		dwellStmt, err := tx.Prepare(`INSERT INTO dwells
			(id, session_id, seq, latitude, longitude, start_ns, end_ns, place_name)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare dwell insert: %w", err)
		}
		defer dwellStmt.Close()

		for i, d := range s.Dwells {
			if _, err := dwellStmt.Exec(d.ID, s.ID, i, d.Latitude, d.Longitude,
				d.StartTime.UnixNano(), d.EndTime.UnixNano(), d.PlaceName); err != nil {
				return fmt.Errorf("failed to insert dwell %s: %w", d.ID, err)
			}
		}

		for category, count := range s.DrinkCounts {
			if count == 0 {
				continue
			}
			if _, err := tx.Exec(
				"INSERT INTO session_drinks (session_id, category, count) VALUES (?, ?, ?)",
				s.ID, category, count,
			); err != nil {
				return fmt.Errorf("failed to insert drink count: %w", err)
			}
		}

		return nil
	})
}

// Load retrieves a single session by ID, or nil if it does not exist.
func (r *SessionRepository) Load(id string) (*models.NightSession, error) {
	var (
		s              models.NightSession
		startNS, endNS int64
	)
	err := r.db.QueryRow(
		"SELECT id, start_ns, end_ns, rating FROM sessions WHERE id = ?", id,
	).Scan(&s.ID, &startNS, &endNS, &s.Rating)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	s.StartTime = time.Unix(0, startNS).UTC()
	end := time.Unix(0, endNS).UTC()
	s.EndTime = &end

	sessions := map[string]*models.NightSession{s.ID: &s}
	if err := r.attachDetails(sessions, "WHERE session_id = ?", id); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadAll retrieves every finished session ordered by start time.
func (r *SessionRepository) LoadAll() ([]models.NightSession, error) {
	rows, err := r.db.Query("SELECT id, start_ns, end_ns, rating FROM sessions ORDER BY start_ns")
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var ordered []string
	sessions := make(map[string]*models.NightSession)
	for rows.Next() {
		var (
			s              models.NightSession
			startNS, endNS int64
		)
		if err := rows.Scan(&s.ID, &startNS, &endNS, &s.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.StartTime = time.Unix(0, startNS).UTC()
		end := time.Unix(0, endNS).UTC()
		s.EndTime = &end

		ordered = append(ordered, s.ID)
		sessions[s.ID] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	if len(sessions) > 0 {
		if err := r.attachDetails(sessions, "", nil); err != nil {
			return nil, err
		}
	}

	result := make([]models.NightSession, 0, len(ordered))
	for _, id := range ordered {
		result = append(result, *sessions[id])
	}
	return result, nil
}

// attachDetails loads fixes, dwells and drink tallies for the given
// sessions. An empty where clause loads details for all sessions.
func (r *SessionRepository) attachDetails(sessions map[string]*models.NightSession, where string, args ...interface{}) error {
	for _, s := range sessions {
		s.Route = []models.Fix{}
		s.Dwells = []models.DwellPoint{}
		s.DrinkCounts = map[string]int{}
	}

	fixRows, err := r.db.Query(
		"SELECT session_id, latitude, longitude, accuracy, timestamp_ns FROM fixes "+where+" ORDER BY session_id, seq", args...)
	if err != nil {
		return fmt.Errorf("failed to query fixes: %w", err)
	}
	defer fixRows.Close()

	for fixRows.Next() {
		var (
			sessionID string
			f         models.Fix
			tsNS      int64
		)
		if err := fixRows.Scan(&sessionID, &f.Latitude, &f.Longitude, &f.Accuracy, &tsNS); err != nil {
			return fmt.Errorf("failed to scan fix: %w", err)
		}
		f.Timestamp = time.Unix(0, tsNS).UTC()
		if s, ok := sessions[sessionID]; ok {
			s.Route = append(s.Route, f)
		}
	}
	if err := fixRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate fixes: %w", err)
	}

	dwellRows, err := r.db.Query(
		"SELECT session_id, id, latitude, longitude, start_ns, end_ns, place_name FROM dwells "+where+" ORDER BY session_id, seq", args...)
	if err != nil {
		return fmt.Errorf("failed to query dwells: %w", err)
	}
	defer dwellRows.Close()

	for dwellRows.Next() {
		var (
			sessionID      string
			d              models.DwellPoint
			startNS, endNS int64
		)
		if err := dwellRows.Scan(&sessionID, &d.ID, &d.Latitude, &d.Longitude, &startNS, &endNS, &d.PlaceName); err != nil {
			return fmt.Errorf("failed to scan dwell: %w", err)
		}
		d.StartTime = time.Unix(0, startNS).UTC()
		d.EndTime = time.Unix(0, endNS).UTC()
		if s, ok := sessions[sessionID]; ok {
			s.Dwells = append(s.Dwells, d)
		}
	}
	if err := dwellRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate dwells: %w", err)
	}

	drinkRows, err := r.db.Query(
		"SELECT session_id, category, count FROM session_drinks "+where, args...)
	if err != nil {
		return fmt.Errorf("failed to query drink counts: %w", err)
	}
	defer drinkRows.Close()

	for drinkRows.Next() {
		var (
			sessionID, category string
			count               int
		)
		if err := drinkRows.Scan(&sessionID, &category, &count); err != nil {
			return fmt.Errorf("failed to scan drink count: %w", err)
		}
		if s, ok := sessions[sessionID]; ok {
			s.DrinkCounts[category] = count
		}
	}
	return drinkRows.Err()
}

// UpdateDwellPlaceName sets the resolved place name for a dwell.
func (r *SessionRepository) UpdateDwellPlaceName(dwellID, name string) error {
	res, err := r.db.Exec("UPDATE dwells SET place_name = ? WHERE id = ?", name, dwellID)
	if err != nil {
		return fmt.Errorf("failed to update dwell place name: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check dwell update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("dwell %s not found", dwellID)
	}
	return nil
}

// Count returns the number of finished sessions.
func (r *SessionRepository) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// DeleteAll wipes all session history. Fixes, dwells and drink tallies
// cascade.
func (r *SessionRepository) DeleteAll() error {
	if _, err := r.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}
