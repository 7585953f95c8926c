package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/momentum/internal/tracker"
)

type codec interface {
	decode(data []byte, rec *record) error
	encode(rec record) ([]byte, error)
}

type jsonCodec struct{}

func (jsonCodec) decode(data []byte, rec *record) error {
	return json.Unmarshal(data, rec)
}

func (jsonCodec) encode(rec record) ([]byte, error) {
	return json.MarshalIndent(rec, "", "    ")
}

type yamlCodec struct{}

func (yamlCodec) decode(data []byte, rec *record) error {
	return yaml.Unmarshal(data, rec)
}

func (yamlCodec) encode(rec record) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(rec); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileRepository stores the whole record in one JSON or YAML file, chosen by the file extension.
type FileRepository struct {
	path  string
	codec codec
}

func NewFileRepository(path string) (*FileRepository, error) {
	var c codec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		c = jsonCodec{}
	case ".yml", ".yaml":
		c = yamlCodec{}
	default:
		return nil, fmt.Errorf("unsupported data file extension %q: use .json, .yml or .yaml", filepath.Ext(path))
	}
	return &FileRepository{
		path:  path,
		codec: c,
	}, nil
}

func (repo *FileRepository) Path() string {
	return repo.path
}

// read returns an empty record when the file does not exist or cannot be decoded.
func (repo *FileRepository) read() (record, error) {
	var rec record

	data, err := os.ReadFile(repo.path)
	if errors.Is(err, fs.ErrNotExist) {
		return rec, nil
	}
	if err != nil {
		return rec, fmt.Errorf("os.ReadFile(%s) > %w", repo.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return rec, nil
	}

	if err := repo.codec.decode(data, &rec); err != nil {
		slog.Default().Warn("ignore the data file that cannot be decoded",
			"path", repo.path,
			"error", err,
		)
		return record{}, nil
	}
	return rec, nil
}

func (repo *FileRepository) write(rec record) error {
	if rec.History == nil {
		rec.History = []tracker.HistoryEntry{}
	}
	data, err := repo.codec.encode(rec)
	if err != nil {
		return fmt.Errorf("codec.encode() > %w", err)
	}

	if dir := filepath.Dir(repo.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}
	if err := os.WriteFile(repo.path, data, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", repo.path, err)
	}
	return nil
}

func (repo *FileRepository) update(fn func(rec *record)) error {
	rec, err := repo.read()
	if err != nil {
		return fmt.Errorf("read() > %w", err)
	}
	fn(&rec)
	if err := repo.write(rec); err != nil {
		return fmt.Errorf("write() > %w", err)
	}
	return nil
}

func (repo *FileRepository) LoadProfile(_ context.Context) (*tracker.Profile, error) {
	rec, err := repo.read()
	if err != nil {
		return nil, fmt.Errorf("read() > %w", err)
	}
	if rec.Profile == nil {
		return nil, nil
	}
	if err := validateProfileDocument(rec.Profile); err != nil {
		slog.Default().Warn("ignore the stored profile",
			"path", repo.path,
			"error", err,
		)
		return nil, nil
	}

	profile := rec.Profile.toProfile()
	return &profile, nil
}

func (repo *FileRepository) SaveProfile(_ context.Context, profile tracker.Profile) error {
	slog.Default().Debug("save profile",
		"path", repo.path,
		"momentum_score", profile.MomentumScore,
		"last_check_in", profile.LastCheckIn,
	)
	return repo.update(func(rec *record) {
		rec.Profile = newProfileDocument(profile)
	})
}

func (repo *FileRepository) LoadTasks(_ context.Context, today tracker.Date) ([]tracker.Task, error) {
	rec, err := repo.read()
	if err != nil {
		return nil, fmt.Errorf("read() > %w", err)
	}
	if rec.CurrentTasks == nil || rec.CurrentTasks.Date != today.String() || rec.CurrentTasks.Items == nil {
		return []tracker.Task{}, nil
	}
	return rec.CurrentTasks.Items, nil
}

func (repo *FileRepository) SaveTasks(_ context.Context, today tracker.Date, tasks []tracker.Task) error {
	items := tasks
	if items == nil {
		items = []tracker.Task{}
	}
	return repo.update(func(rec *record) {
		rec.CurrentTasks = &taskList{
			Date:  today.String(),
			Items: items,
		}
	})
}

func (repo *FileRepository) LoadHistory(_ context.Context) ([]tracker.HistoryEntry, error) {
	rec, err := repo.read()
	if err != nil {
		return nil, fmt.Errorf("read() > %w", err)
	}
	if rec.History == nil {
		return []tracker.HistoryEntry{}, nil
	}
	return rec.History, nil
}

func (repo *FileRepository) SaveHistoryEntry(_ context.Context, entry tracker.HistoryEntry) error {
	return repo.update(func(rec *record) {
		rec.History = upsertHistory(rec.History, entry)
	})
}
