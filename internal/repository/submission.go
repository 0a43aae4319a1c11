package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/paramparahq/parampara/internal/model"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type SubmissionRepository interface {
	Create(submission *model.Submission) error
	ByID(id string) (*model.Submission, error)
	ByUser(userID string) ([]model.Submission, error)
	All() ([]model.Submission, error)
	Delete(id string) error
	Stats() (*model.Stats, error)
}

type submissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.Submission) error {
	query := r.db.Rebind(`INSERT INTO submissions
		(id, user_id, title, description, category, content_type, file_path, file_size, transcript, language, region, lat, lon, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.Exec(query,
		submission.ID, submission.UserID, submission.Title, submission.Description,
		submission.Category, submission.ContentType, submission.FilePath, submission.FileSize,
		submission.Transcript, submission.Language, submission.Region,
		submission.Lat, submission.Lon, submission.CreatedAt)
	return err
}

func (r *submissionRepository) ByID(id string) (*model.Submission, error) {
	submission := &model.Submission{}
	query := r.db.Rebind(`SELECT * FROM submissions WHERE id = ?`)

	err := r.db.Get(submission, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrSubmissionNotFound
	}

	return submission, err
}

func (r *submissionRepository) ByUser(userID string) ([]model.Submission, error) {
	submissions := []model.Submission{}
	query := r.db.Rebind(`SELECT * FROM submissions WHERE user_id = ? ORDER BY created_at DESC`)

	err := r.db.Select(&submissions, query, userID)
	return submissions, err
}

func (r *submissionRepository) All() ([]model.Submission, error) {
	submissions := []model.Submission{}
	query := `SELECT * FROM submissions ORDER BY created_at DESC`

	err := r.db.Select(&submissions, query)
	return submissions, err
}

func (r *submissionRepository) Delete(id string) error {
	query := r.db.Rebind(`DELETE FROM submissions WHERE id = ?`)

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}

// Stats aggregates totals, per-category and per-content-type counts, and the
// ten regions with the most submissions. Rows with an empty region are left
// out of the region ranking.
func (r *submissionRepository) Stats() (*model.Stats, error) {
	stats := &model.Stats{
		ByCategory:    map[string]int64{},
		ByContentType: map[string]int64{},
		TopRegions:    []model.RegionCount{},
	}

	err := r.db.Get(&stats.Total, `SELECT COUNT(*) FROM submissions`)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		Label string `db:"label"`
		Count int64  `db:"count"`
	}

	var byCategory []bucket
	err = r.db.Select(&byCategory, `SELECT category AS label, COUNT(*) AS count FROM submissions GROUP BY category`)
	if err != nil {
		return nil, err
	}
	for _, b := range byCategory {
		stats.ByCategory[b.Label] = b.Count
	}

	var byContentType []bucket
	err = r.db.Select(&byContentType, `SELECT content_type AS label, COUNT(*) AS count FROM submissions GROUP BY content_type`)
	if err != nil {
		return nil, err
	}
	for _, b := range byContentType {
		stats.ByContentType[b.Label] = b.Count
	}

	err = r.db.Select(&stats.TopRegions, `SELECT region, COUNT(*) AS count FROM submissions
		WHERE region IS NOT NULL AND region != ''
		GROUP BY region ORDER BY count DESC, region ASC LIMIT 10`)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
