package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/lyricverse-api/internal/models"
)

const (
	maxTitleLength  = 300
	maxNameLength   = 300
	maxLyricsLength = 100000
	maxNotesLength  = 2000

	releaseDateLayout = "2006-01-02"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is a collection of validation errors surfaced together at the
// form boundary, before anything reaches the store layer
type Errors []ValidationError

// Error implements the error interface
func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// ValidateSongInput validates the admin song form
func ValidateSongInput(in *models.SongInput) Errors {
	var errs Errors
	errs = appendRequired(errs, "title", in.Title, maxTitleLength)
	errs = appendRequired(errs, "artist", in.Artist, maxNameLength)
	errs = appendLyrics(errs, in.Lyrics)
	errs = appendReleaseDate(errs, in.ReleaseDate)
	return errs
}

// ValidateSubmissionInput validates the public lyrics-submission form
func ValidateSubmissionInput(in *models.SubmissionInput) Errors {
	var errs Errors
	errs = appendRequired(errs, "title", in.Title, maxTitleLength)
	errs = appendRequired(errs, "artist", in.Artist, maxNameLength)
	errs = appendLyrics(errs, in.Lyrics)
	errs = appendReleaseDate(errs, in.ReleaseDate)
	if len(in.Notes) > maxNotesLength {
		errs = append(errs, ValidationError{
			Field:   "notes",
			Message: fmt.Sprintf("must be at most %d characters", maxNotesLength),
		})
	}
	return errs
}

// ValidateArtistInput validates the admin artist form
func ValidateArtistInput(in *models.ArtistInput) Errors {
	var errs Errors
	errs = appendRequired(errs, "name", in.Name, maxNameLength)
	for _, genre := range in.Genres {
		if strings.TrimSpace(genre) == "" {
			errs = append(errs, ValidationError{Field: "genres", Message: "genre tags must not be blank"})
			break
		}
	}
	return errs
}

// ParseReleaseDate parses the YYYY-MM-DD form value, returning nil for
// an empty value
func ParseReleaseDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, err := time.Parse(releaseDateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("release_date must be in YYYY-MM-DD format")
	}
	return &parsed, nil
}

func appendRequired(errs Errors, field, value string, max int) Errors {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return append(errs, ValidationError{Field: field, Message: "is required"})
	}
	if len(trimmed) > max {
		return append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters", max),
			Value:   len(trimmed),
		})
	}
	return errs
}

func appendLyrics(errs Errors, lyrics string) Errors {
	if strings.TrimSpace(lyrics) == "" {
		return append(errs, ValidationError{Field: "lyrics", Message: "is required"})
	}
	if len(lyrics) > maxLyricsLength {
		return append(errs, ValidationError{
			Field:   "lyrics",
			Message: fmt.Sprintf("must be at most %d characters", maxLyricsLength),
			Value:   len(lyrics),
		})
	}
	return errs
}

func appendReleaseDate(errs Errors, value string) Errors {
	if _, err := ParseReleaseDate(value); err != nil {
		return append(errs, ValidationError{Field: "release_date", Message: err.Error(), Value: value})
	}
	return errs
}
