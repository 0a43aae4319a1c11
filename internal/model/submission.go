package model

import (
	"time"
)

type Category string

const (
	CategoryFood    Category = "Food"
	CategoryCulture Category = "Culture"
)

var Categories = []Category{CategoryFood, CategoryCulture}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// ContentType is the media category of a submission, distinct from the
// uploaded file's MIME type.
type ContentType string

const (
	ContentText  ContentType = "Text"
	ContentAudio ContentType = "Audio"
	ContentImage ContentType = "Image"
	ContentVideo ContentType = "Video"
)

var ContentTypes = []ContentType{ContentText, ContentAudio, ContentImage, ContentVideo}

func (t ContentType) Valid() bool {
	for _, v := range ContentTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Submission is the core artifact. Immutable after creation; there is no
// edit or delete path.
type Submission struct {
	ID          string      `db:"id" json:"id"`
	UserID      string      `db:"user_id" json:"user_id"`
	Title       string      `db:"title" json:"title"`
	Description *string     `db:"description" json:"description,omitempty"`
	Category    Category    `db:"category" json:"category"`
	ContentType ContentType `db:"content_type" json:"content_type"`
	FilePath    *string     `db:"file_path" json:"file_path,omitempty"`
	FileSize    *int64      `db:"file_size" json:"file_size,omitempty"`
	Transcript  *string     `db:"transcript" json:"transcript,omitempty"`
	Language    *string     `db:"language" json:"language,omitempty"`
	Region      *string     `db:"region" json:"region,omitempty"`
	Lat         *float64    `db:"lat" json:"lat,omitempty"`
	Lon         *float64    `db:"lon" json:"lon,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}
