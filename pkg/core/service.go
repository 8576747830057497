package core

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// NameMinLen and NameMaxLen bound Record.Name, counted in runes.
	NameMinLen = 3
	NameMaxLen = 100

	// MaxLikes is the exclusive upper bound of generated like counts.
	MaxLikes = 100

	defaultEventBuffer = 100
)

// Form is the user-editable part of a Record.
type Form struct {
	Name     string `json:"name"`
	ImageURL string `json:"imgUrl"`
}

// Validate returns per-field messages; an empty map means the form is valid.
func (f Form) Validate() map[string]string {
	details := map[string]string{}

	switch n := utf8.RuneCountInString(f.Name); {
	case f.Name == "":
		details["name"] = "required"
	case n < NameMinLen:
		details["name"] = "must be at least 3 characters"
	case n > NameMaxLen:
		details["name"] = "must be at most 100 characters"
	}

	if f.ImageURL == "" {
		details["imgUrl"] = "required"
	} else if u, err := url.Parse(f.ImageURL); err != nil || u.Scheme == "" {
		details["imgUrl"] = "must be a valid URL"
	}

	return details
}

// FormFrom prefills a Form from an existing record.
func FormFrom(r Record) Form {
	return Form{Name: r.Name, ImageURL: r.ImageURL}
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLikes replaces the like generator used on create and edit.
func WithLikes(fn func() int) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.likes = fn
		}
	}
}

// WithServiceLogger sets the logger used for mutation diagnostics.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEventBuffer sets the per-subscriber event buffer. Zero means default (100).
func WithEventBuffer(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// RandomLikes returns a like count in [0, MaxLikes).
func RandomLikes() int {
	return rand.IntN(MaxLikes)
}

// Service handles the business logic for records.
type Service struct {
	gw              Gateway
	logger          *slog.Logger
	likes           func() int
	eventBufferSize int

	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

// NewService creates a new Service.
func NewService(gw Gateway, opts ...ServiceOption) *Service {
	s := &Service{
		gw:              gw,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		likes:           RandomLikes,
		eventBufferSize: defaultEventBuffer,
		subs:            make(map[chan Event]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Gateway exposes the underlying gateway.
func (s *Service) Gateway() Gateway {
	return s.gw
}

// ListRecords retrieves all records.
func (s *Service) ListRecords(ctx context.Context) ([]Record, error) {
	return s.gw.List(ctx)
}

// GetRecord retrieves a record.
func (s *Service) GetRecord(ctx context.Context, id string) (Record, error) {
	if id == "" {
		return Record{}, ErrEmptyID
	}
	return s.gw.Get(ctx, id)
}

// CreateRecord validates the form and creates a record with generated likes.
func (s *Service) CreateRecord(ctx context.Context, f Form) (Record, error) {
	if details := f.Validate(); len(details) > 0 {
		return Record{}, &ValidationError{Details: details}
	}

	created, err := s.gw.Create(ctx, Record{
		Name:     f.Name,
		ImageURL: f.ImageURL,
		Likes:    s.likes(),
	})
	if err != nil {
		return Record{}, err
	}

	s.logger.Debug("record created", "id", created.ID, "likes", created.Likes)
	s.publish(EventCreate, created.ID)
	return created, nil
}

// EditRecord validates the form and updates name and image URL.
// Likes are regenerated on every edit.
func (s *Service) EditRecord(ctx context.Context, id string, f Form) (Record, error) {
	if id == "" {
		return Record{}, ErrEmptyID
	}
	if details := f.Validate(); len(details) > 0 {
		return Record{}, &ValidationError{Details: details}
	}

	likes := s.likes()
	updated, err := s.gw.Update(ctx, id, Patch{
		Name:     &f.Name,
		ImageURL: &f.ImageURL,
		Likes:    &likes,
	})
	if err != nil {
		return Record{}, err
	}

	s.logger.Debug("record updated", "id", updated.ID, "likes", updated.Likes)
	s.publish(EventModify, updated.ID)
	return updated, nil
}

// DeleteRecord removes a record.
func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if err := s.gw.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Debug("record deleted", "id", id)
	s.publish(EventDelete, id)
	return nil
}

// Subscribe returns a channel receiving every mutation made through the
// Service. Slow subscribers drop events instead of blocking writers.
// Call the returned func to unsubscribe.
func (s *Service) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, s.eventBufferSize)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Service) publish(t EventType, id string) {
	e := Event{Type: t, ID: id, Timestamp: time.Now().Unix()}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- e:
		default:
			s.logger.Warn("event dropped", "type", t, "id", id)
		}
	}
}
