package diary

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/events"
	"github.com/julianstephens/questlog/internal/models"
	"github.com/julianstephens/questlog/internal/storage"
	"github.com/julianstephens/questlog/internal/utils"
)

// Service persists the diary and announces new entries on the bus.
type Service struct {
	store storage.Provider
	bus   *events.Bus
	loc   *time.Location
	now   func() time.Time
}

func NewService(store storage.Provider, bus *events.Bus, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, bus: bus, loc: loc, now: time.Now}
}

// WithClock replaces the service clock
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Today() string {
	return utils.FormatDate(s.now().In(s.loc))
}

func (s *Service) Entries() ([]models.DiaryEntry, error) {
	entries, err := storage.LoadDiary(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load diary: %w", err)
	}
	return entries, nil
}

func (s *Service) Get(id string) (models.DiaryEntry, error) {
	entries, err := s.Entries()
	if err != nil {
		return models.DiaryEntry{}, err
	}
	e, err := Find(entries, id)
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("%w: %s", err, id)
	}
	return e, nil
}

// List returns the entries matching query and mood, newest first
func (s *Service) List(query string, mood models.Mood) ([]models.DiaryEntry, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	return Filter(entries, query, mood), nil
}

func (s *Service) normalizeDate(draft *models.DiaryDraft) error {
	if draft.Date == "" {
		draft.Date = s.Today()
		return nil
	}
	if _, err := utils.ParseDate(draft.Date); err != nil {
		return err
	}
	return nil
}

// Create adds an entry. When it is dated today, DiaryEntryCreated is
// published with the number of entries already written today, before the
// diary is saved. Handler failures do not stop the save.
func (s *Service) Create(ctx context.Context, draft models.DiaryDraft) (models.DiaryEntry, error) {
	if err := s.normalizeDate(&draft); err != nil {
		return models.DiaryEntry{}, err
	}
	entries, err := s.Entries()
	if err != nil {
		return models.DiaryEntry{}, err
	}

	now := s.now()
	today := utils.FormatDate(now.In(s.loc))
	countBefore := CountOnDate(entries, today)

	next, entry, ok := Create(entries, draft, now)
	if !ok {
		return models.DiaryEntry{}, ErrEmptyEntry
	}

	if draft.Date == today {
		s.bus.Publish(ctx, events.DiaryEntryCreated{Date: today, CountBefore: countBefore})
	}

	if err := storage.SaveDiary(s.store, next); err != nil {
		return models.DiaryEntry{}, fmt.Errorf("failed to save diary: %w", err)
	}
	return entry, nil
}

func (s *Service) Update(id string, draft models.DiaryDraft) (models.DiaryEntry, error) {
	if err := s.normalizeDate(&draft); err != nil {
		return models.DiaryEntry{}, err
	}
	entries, err := s.Entries()
	if err != nil {
		return models.DiaryEntry{}, err
	}
	next, entry, err := Update(entries, id, draft, s.now())
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("%w: %s", err, id)
	}
	if err := storage.SaveDiary(s.store, next); err != nil {
		return models.DiaryEntry{}, fmt.Errorf("failed to save diary: %w", err)
	}
	return entry, nil
}

func (s *Service) Delete(id string) error {
	entries, err := s.Entries()
	if err != nil {
		return err
	}
	next, err := Delete(entries, id)
	if err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}
	if err := storage.SaveDiary(s.store, next); err != nil {
		return fmt.Errorf("failed to save diary: %w", err)
	}
	return nil
}

// Clear removes every diary entry
func (s *Service) Clear() error {
	if err := s.store.Delete(constants.DiaryKey); err != nil {
		return fmt.Errorf("failed to clear diary: %w", err)
	}
	return nil
}
