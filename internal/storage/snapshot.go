package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/logger"
	"github.com/julianstephens/questlog/internal/models"
)

// LoadQuestState reads the habit quest slot. found is false when the slot is
// absent or cannot be decoded; a decode failure is logged, not returned.
func LoadQuestState(p Provider) (models.QuestState, bool, error) {
	data, err := p.Get(constants.HabitQuestKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.QuestState{}, false, nil
		}
		return models.QuestState{}, false, err
	}

	var state models.QuestState
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Warn("Ignoring malformed habit quest snapshot", "key", constants.HabitQuestKey, "error", err)
		return models.QuestState{}, false, nil
	}
	return state, true, nil
}

func SaveQuestState(p Provider, state models.QuestState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize habit quest state: %w", err)
	}
	return p.Put(constants.HabitQuestKey, data)
}

// LoadDiary reads the diary slot. Missing or malformed data yields an empty
// collection.
func LoadDiary(p Provider) ([]models.DiaryEntry, error) {
	data, err := p.Get(constants.DiaryKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []models.DiaryEntry{}, nil
		}
		return nil, err
	}

	var entries []models.DiaryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Warn("Ignoring malformed diary snapshot", "key", constants.DiaryKey, "error", err)
		return []models.DiaryEntry{}, nil
	}
	if entries == nil {
		entries = []models.DiaryEntry{}
	}
	return entries, nil
}

func SaveDiary(p Provider, entries []models.DiaryEntry) error {
	if entries == nil {
		entries = []models.DiaryEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize diary: %w", err)
	}
	return p.Put(constants.DiaryKey, data)
}
