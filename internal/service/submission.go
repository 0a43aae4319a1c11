package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/paramparahq/parampara/internal/model"
	"github.com/paramparahq/parampara/internal/repository"
)

type SubmissionService struct {
	submissionRepository repository.SubmissionRepository
}

func NewSubmissionService(submissionRepository repository.SubmissionRepository) *SubmissionService {
	return &SubmissionService{submissionRepository: submissionRepository}
}

func (s *SubmissionService) ByUser(userID string) ([]model.Submission, error) {
	submissions, err := s.submissionRepository.ByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

func (s *SubmissionService) Stats() (*model.Stats, error) {
	stats, err := s.submissionRepository.Stats()
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}

var exportHeader = []string{
	"id", "user_id", "title", "description", "category", "content_type",
	"file_path", "file_size", "transcript", "language", "region",
	"lat", "lon", "created_at",
}

// ExportCSV streams every submission as CSV, newest first. Nullable fields
// export as empty cells.
func (s *SubmissionService) ExportCSV(w io.Writer) error {
	submissions, err := s.submissionRepository.All()
	if err != nil {
		return fmt.Errorf("failed to load submissions for export: %w", err)
	}

	cw := csv.NewWriter(w)
	err = cw.Write(exportHeader)
	if err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, sub := range submissions {
		record := []string{
			sub.ID,
			sub.UserID,
			sub.Title,
			derefString(sub.Description),
			string(sub.Category),
			string(sub.ContentType),
			derefString(sub.FilePath),
			derefInt64(sub.FileSize),
			derefString(sub.Transcript),
			derefString(sub.Language),
			derefString(sub.Region),
			derefFloat(sub.Lat),
			derefFloat(sub.Lon),
			sub.CreatedAt.Format(time.RFC3339),
		}
		err = cw.Write(record)
		if err != nil {
			return fmt.Errorf("failed to write export record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt64(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}

func derefFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// HumanSize renders a byte count the way the upload limit is shown to users,
// e.g. 5368709120 -> "5.0 GiB".
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
