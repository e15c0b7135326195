// internal/catalog/repository.go
package catalog

import (
	"context"
	"database/sql"
	stderrors "errors"

	"pawmatch-workers/internal/common/errors"
	"pawmatch-workers/pkg/matching"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const animalColumns = `id, name, species, breed, age, bio, mbti_type, energy_level,
	experience_level_needed, special_needs, days_in_shelter, hdb_approved,
	personality_tag, COALESCE(shelter_id, '')`

// Repository reads the animal catalog and writes swipes and profiles.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnimal(row rowScanner) (matching.Animal, error) {
	var a matching.Animal
	var mbti, needed string
	err := row.Scan(
		&a.ID, &a.Name, &a.Species, &a.Breed, &a.Age, &a.Bio, &mbti, &a.EnergyLevel,
		&needed, &a.SpecialNeeds, &a.DaysInShelter, &a.HDBApproved,
		&a.PersonalityTag, &a.ShelterID,
	)
	a.MBTIType = matching.MBTI(mbti)
	a.ExperienceLevelNeeded = matching.ExperienceNeeded(needed)
	return a, err
}

// GetAnimal loads one animal, adopted or not.
func (r *Repository) GetAnimal(ctx context.Context, id string) (*matching.Animal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)
	a, err := scanAnimal(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewAnimalNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewCatalogQueryFailedError("get_animal", err)
	}
	return &a, nil
}

// ListAvailable returns animals still up for adoption, longest stay first.
// hdbOnly restricts the list to HDB-approved animals. limit <= 0 means no limit.
func (r *Repository) ListAvailable(ctx context.Context, hdbOnly bool, limit int) ([]matching.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals
		WHERE adopted = FALSE AND ($1 = FALSE OR hdb_approved = TRUE)
		ORDER BY days_in_shelter DESC, id`
	args := []interface{}{hdbOnly}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	return r.queryAnimals(ctx, "list_available", query, args...)
}

// GetAnimalsByIDs loads the given animals. Unknown ids are skipped.
func (r *Repository) GetAnimalsByIDs(ctx context.Context, ids []string) ([]matching.Animal, error) {
	if len(ids) == 0 {
		return []matching.Animal{}, nil
	}
	return r.queryAnimals(ctx, "get_animals_by_ids",
		`SELECT `+animalColumns+` FROM animals WHERE id = ANY($1)`, pq.Array(ids))
}

func (r *Repository) queryAnimals(ctx context.Context, op, query string, args ...interface{}) ([]matching.Animal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewCatalogQueryFailedError(op, err)
	}
	defer rows.Close()

	animals := make([]matching.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, errors.NewCatalogQueryFailedError(op, err)
		}
		animals = append(animals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogQueryFailedError(op, err)
	}
	return animals, nil
}

// SwipedIDs returns every animal id the user has liked or passed.
func (r *Repository) SwipedIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT animal_id FROM swipes WHERE user_id = $1`, userID)
	if err != nil {
		return nil, errors.NewCatalogQueryFailedError("swiped_ids", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.NewCatalogQueryFailedError("swiped_ids", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogQueryFailedError("swiped_ids", err)
	}
	return ids, nil
}

// RecordSwipe stores s. A second swipe on the same animal by the same user
// yields DUPLICATE_SWIPE.
func (r *Repository) RecordSwipe(ctx context.Context, s Swipe) error {
	var score sql.NullInt64
	if s.Score != nil {
		score = sql.NullInt64{Int64: int64(*s.Score), Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO swipes (id, user_id, animal_id, direction, score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, animal_id) DO NOTHING`,
		s.ID.String(), s.UserID, s.AnimalID, string(s.Direction), score, s.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errors.NewDuplicateSwipeError(s.UserID, s.AnimalID)
		}
		return errors.NewSwipeRecordFailedError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewSwipeRecordFailedError(err)
	}
	if n == 0 {
		return errors.NewDuplicateSwipeError(s.UserID, s.AnimalID)
	}
	return nil
}

func (r *Repository) GetShelter(ctx context.Context, id string) (*Shelter, error) {
	var s Shelter
	var phone sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, contact_email, contact_phone FROM shelters WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.ContactEmail, &phone)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewShelterNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewCatalogQueryFailedError("get_shelter", err)
	}
	s.ContactPhone = phone.String
	return &s, nil
}

// SaveProfile upserts the quiz outcome for userID.
func (r *Repository) SaveProfile(ctx context.Context, userID string, p matching.UserProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adopter_profiles (user_id, mbti, activity_level, living_space, time_available, experience, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			mbti = EXCLUDED.mbti,
			activity_level = EXCLUDED.activity_level,
			living_space = EXCLUDED.living_space,
			time_available = EXCLUDED.time_available,
			experience = EXCLUDED.experience,
			updated_at = NOW()`,
		userID, string(p.MBTI), string(p.ActivityLevel), string(p.LivingSpace),
		string(p.TimeAvailable), string(p.Experience))
	if err != nil {
		return errors.NewCatalogQueryFailedError("save_profile", err)
	}
	return nil
}

func (r *Repository) GetProfile(ctx context.Context, userID string) (*matching.UserProfile, error) {
	var mbti, activity, living, timeAvail, experience string
	err := r.db.QueryRowContext(ctx, `
		SELECT mbti, activity_level, living_space, time_available, experience
		FROM adopter_profiles WHERE user_id = $1`, userID).
		Scan(&mbti, &activity, &living, &timeAvail, &experience)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewProfileNotFoundError(userID)
	}
	if err != nil {
		return nil, errors.NewCatalogQueryFailedError("get_profile", err)
	}
	return &matching.UserProfile{
		MBTI:          matching.MBTI(mbti),
		ActivityLevel: matching.ActivityLevel(activity),
		LivingSpace:   matching.LivingSpace(living),
		TimeAvailable: matching.TimeAvailable(timeAvail),
		Experience:    matching.Experience(experience),
	}, nil
}
