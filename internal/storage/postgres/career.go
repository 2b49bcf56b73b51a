package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/umacareer/internal/game/career"
	"github.com/cory-johannsen/umacareer/internal/game/condition"
	"github.com/cory-johannsen/umacareer/internal/game/mood"
)

// ErrCareerNotFound is returned when a career lookup yields no results.
var ErrCareerNotFound = errors.New("career not found")

// CareerRecord is a persisted career summary.
type CareerRecord struct {
	career.Summary
	RecordedAt time.Time
}

// CareerRepository persists career summaries.
type CareerRepository struct {
	db *pgxpool.Pool
}

// NewCareerRepository creates a CareerRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCareerRepository(db *pgxpool.Pool) *CareerRepository {
	return &CareerRepository{db: db}
}

const careerColumns = `id::text, trainee_id, trainee_name, turns, complete,
	base_stats, final_stats, facility_levels, support_ids, mood, conditions, recorded_at`

// Save inserts s, or replaces the stored summary with the same ID.
//
// Precondition: s.ID must not be uuid.Nil.
// Postcondition: Returns the stored record with RecordedAt set.
func (r *CareerRepository) Save(ctx context.Context, s career.Summary) (CareerRecord, error) {
	if s.ID == uuid.Nil {
		return CareerRecord{}, errors.New("saving career: id must be set")
	}
	base, err := json.Marshal(s.BaseStats)
	if err != nil {
		return CareerRecord{}, fmt.Errorf("encoding base stats: %w", err)
	}
	final, err := json.Marshal(s.FinalStats)
	if err != nil {
		return CareerRecord{}, fmt.Errorf("encoding final stats: %w", err)
	}
	levels, err := json.Marshal(s.FacilityLevels)
	if err != nil {
		return CareerRecord{}, fmt.Errorf("encoding facility levels: %w", err)
	}
	supportIDs := make([]int32, 0, len(s.SupportIDs))
	for _, id := range s.SupportIDs {
		supportIDs = append(supportIDs, int32(id))
	}
	conditions := make([]string, 0, len(s.Conditions))
	for _, c := range s.Conditions {
		conditions = append(conditions, string(c))
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO careers (id, trainee_id, trainee_name, turns, complete,
			base_stats, final_stats, facility_levels, support_ids, mood, conditions)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8::jsonb, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET
			turns = EXCLUDED.turns,
			complete = EXCLUDED.complete,
			final_stats = EXCLUDED.final_stats,
			facility_levels = EXCLUDED.facility_levels,
			support_ids = EXCLUDED.support_ids,
			mood = EXCLUDED.mood,
			conditions = EXCLUDED.conditions,
			recorded_at = NOW()
		 RETURNING `+careerColumns,
		s.ID.String(), s.TraineeID, s.TraineeName, s.Turns, s.Complete,
		string(base), string(final), string(levels), supportIDs, int16(s.Mood), conditions,
	)
	rec, err := scanCareer(row)
	if err != nil {
		return CareerRecord{}, fmt.Errorf("saving career %s: %w", s.ID, err)
	}
	return rec, nil
}

// GetByID retrieves a career by ID.
//
// Postcondition: Returns the record or ErrCareerNotFound.
func (r *CareerRepository) GetByID(ctx context.Context, id uuid.UUID) (CareerRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+careerColumns+` FROM careers WHERE id = $1::uuid`, id.String())
	rec, err := scanCareer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CareerRecord{}, ErrCareerNotFound
		}
		return CareerRecord{}, fmt.Errorf("querying career %s: %w", id, err)
	}
	return rec, nil
}

// ListByTrainee returns up to limit careers of a trainee, newest first.
//
// Precondition: limit > 0.
func (r *CareerRepository) ListByTrainee(ctx context.Context, traineeID, limit int) ([]CareerRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("listing careers: limit must be > 0, got %d", limit)
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+careerColumns+` FROM careers
		 WHERE trainee_id = $1
		 ORDER BY recorded_at DESC, id
		 LIMIT $2`, traineeID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing careers: %w", err)
	}
	defer rows.Close()

	var out []CareerRecord
	for rows.Next() {
		rec, err := scanCareer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning career: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating careers: %w", err)
	}
	return out, nil
}

func scanCareer(row pgx.Row) (CareerRecord, error) {
	var (
		rec                 CareerRecord
		id                  string
		base, final, levels []byte
		supportIDs          []int32
		moodRank            int16
		conditions          []string
	)
	err := row.Scan(&id, &rec.TraineeID, &rec.TraineeName, &rec.Turns, &rec.Complete,
		&base, &final, &levels, &supportIDs, &moodRank, &conditions, &rec.RecordedAt)
	if err != nil {
		return CareerRecord{}, err
	}
	if rec.ID, err = uuid.Parse(id); err != nil {
		return CareerRecord{}, fmt.Errorf("parsing id %q: %w", id, err)
	}
	if err := json.Unmarshal(base, &rec.BaseStats); err != nil {
		return CareerRecord{}, fmt.Errorf("decoding base stats: %w", err)
	}
	if err := json.Unmarshal(final, &rec.FinalStats); err != nil {
		return CareerRecord{}, fmt.Errorf("decoding final stats: %w", err)
	}
	if err := json.Unmarshal(levels, &rec.FacilityLevels); err != nil {
		return CareerRecord{}, fmt.Errorf("decoding facility levels: %w", err)
	}
	rec.SupportIDs = make([]int, 0, len(supportIDs))
	for _, sid := range supportIDs {
		rec.SupportIDs = append(rec.SupportIDs, int(sid))
	}
	rec.Mood = mood.Mood(moodRank)
	rec.Conditions = make([]condition.ID, 0, len(conditions))
	for _, c := range conditions {
		rec.Conditions = append(rec.Conditions, condition.ID(c))
	}
	return rec, nil
}
