// Package storage is the durable key-value mirror of the planner's
// state. Whole collections are serialised to JSON under namespaced keys;
// reads of absent or corrupt keys degrade to "no data" so the caller can
// fall back to defaults instead of failing.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"
)

// Collection keys. Each collection is stored independently so partial
// corruption of one does not affect the others.
const (
	KeyTasks        = "planner-tasks"
	KeyLabels       = "planner-labels"
	KeyGoals        = "planner-goals"
	KeyDailyRecords = "planner-daily-records"
	KeyAuth         = "planner-auth"
	KeyCalendars    = "planner-calendars"
	KeyEvents       = "planner-events"
	KeyDebugLog     = "planner-debug-log"
	KeyMemo         = "planner-memo"
	KeyFavorites    = "planner-favorites"
	KeySettings     = "planner-settings"
)

// Persistence is the storage contract the store depends on.
type Persistence interface {
	// Save serialises value to JSON and writes it under key. When no
	// backing path is configured the write is a silent no-op.
	Save(key string, value any) error
	// Load reads the raw JSON stored under key. The second return is
	// false when the key is absent or unreadable; callers treat that as
	// an empty collection.
	Load(key string) ([]byte, bool)
	// Erase removes the key. Missing keys are not an error.
	Erase(key string) error
	// Watch streams change notifications for externally modified keys
	// until ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		// No storage configured: behave like a non-browser context and
		// silently drop writes.
		return &persistence{}, nil
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Save(key string, value any) error {
	if p.d == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: marshal %s: %w", key, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Load(key string) ([]byte, bool) {
	if p.d == nil {
		return nil, false
	}
	data, err := p.d.Read(key)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (p *persistence) Erase(key string) error {
	if p.d == nil {
		return nil
	}
	if !p.d.Has(key) {
		return nil
	}
	return p.d.Erase(key)
}
