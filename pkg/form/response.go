package form

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Response wraps a successful submission with an identifier and timestamp.
type Response struct {
	ID          uuid.UUID      `json:"id"`
	SubmittedAt time.Time      `json:"submittedAt"`
	Answers     []AnswerRecord `json:"answers"`
}

// ResponseOption customises NewResponse.
type ResponseOption func(*responseConfig)

type responseConfig struct {
	now   func() time.Time
	newID func() uuid.UUID
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) ResponseOption {
	return func(cfg *responseConfig) {
		if now != nil {
			cfg.now = now
		}
	}
}

// WithIDGenerator overrides the response id source.
func WithIDGenerator(fn func() uuid.UUID) ResponseOption {
	return func(cfg *responseConfig) {
		if fn != nil {
			cfg.newID = fn
		}
	}
}

// NewResponse stamps the records with a random id and the current UTC time.
func NewResponse(records []AnswerRecord, options ...ResponseOption) Response {
	cfg := responseConfig{
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return Response{
		ID:          cfg.newID(),
		SubmittedAt: cfg.now().UTC(),
		Answers:     append([]AnswerRecord(nil), records...),
	}
}

// MarshalIndent encodes the response as indented JSON.
func (r Response) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
