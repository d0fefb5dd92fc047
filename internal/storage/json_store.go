package storage

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
)

//go:embed sample.json
var sampleFeed []byte

// Document is the on-disk layout of a JSON inventory feed.
type Document struct {
	Version     int                        `json:"version"`
	Name        string                     `json:"name"`
	BaseDate    string                     `json:"base_date"` // empty means today
	RoomTypes   []models.RoomType          `json:"room_types"`
	ClosedDates map[string]map[string]bool `json:"closed_dates"`
}

func decodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	if doc.ClosedDates == nil {
		doc.ClosedDates = map[string]map[string]bool{}
	}
	return &doc, nil
}

// SampleDocument returns a fresh copy of the built-in three-room feed.
func SampleDocument() *Document {
	doc, err := decodeDocument(sampleFeed)
	if err != nil {
		panic(fmt.Sprintf("embedded sample feed is invalid: %v", err))
	}
	return doc
}

// documentFeed implements the feed getters over a decoded document.
type documentFeed struct {
	doc *Document
}

func (f *documentFeed) loaded() error {
	if f.doc == nil {
		return ErrNotInitialized
	}
	return nil
}

func (f *documentFeed) GetBaseDate() (time.Time, error) {
	if err := f.loaded(); err != nil {
		return time.Time{}, err
	}
	return parseBaseDate(f.doc.BaseDate)
}

func (f *documentFeed) GetRoomTypes() ([]models.RoomType, error) {
	if err := f.loaded(); err != nil {
		return nil, err
	}
	rooms := make([]models.RoomType, len(f.doc.RoomTypes))
	copy(rooms, f.doc.RoomTypes)
	return rooms, nil
}

func (f *documentFeed) GetClosedDates() (map[string]map[string]bool, error) {
	if err := f.loaded(); err != nil {
		return nil, err
	}
	out := make(map[string]map[string]bool, len(f.doc.ClosedDates))
	for room, days := range f.doc.ClosedDates {
		out[room] = make(map[string]bool, len(days))
		for k, v := range days {
			out[room][k] = v
		}
	}
	return out, nil
}

// SampleStore serves the built-in feed; its base date is always today.
type SampleStore struct {
	documentFeed
}

func NewSampleStore() *SampleStore {
	return &SampleStore{}
}

func (s *SampleStore) Init() error {
	return fmt.Errorf("%w: the built-in sample cannot be initialized", ErrReadOnly)
}

func (s *SampleStore) Load() error {
	s.doc = SampleDocument()
	return nil
}

func (s *SampleStore) Close() error { return nil }

func (s *SampleStore) GetConfigPath() string { return "sample" }

// JSONStore reads a feed from a JSON file.
type JSONStore struct {
	documentFeed
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Init writes the sample feed to the store path, anchored at today.
func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create feed directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("%w at %s", ErrAlreadyInitialized, s.path)
	}

	doc := SampleDocument()
	doc.BaseDate = utils.DateKey(utils.Today())
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s does not exist", ErrNotInitialized, s.path)
	}
	if err != nil {
		return fmt.Errorf("failed to read feed: %w", err)
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) GetConfigPath() string { return s.path }
