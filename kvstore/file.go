package kvstore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileFormatVersion is written to every file saved by FileStore.
const FileFormatVersion = 1

// Entry kinds of the file format. They cover every raw value generated
// accessors store.
const (
	KindString = "string"
	KindInt    = "int"
	KindBool   = "bool"
	KindTime   = "time"
	KindBytes  = "bytes"
	KindFloat  = "float"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrUnsupportedValue is returned by Sync when a stored value has no file
// representation.
var ErrUnsupportedValue = errors.New("unsupported value type")

type fileDocument struct {
	Version int              `yaml:"version"`
	Entries map[string]entry `yaml:"entries,omitempty"`
}

type entry struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

// FileStore is a Store kept in memory and saved as YAML by Sync. Every entry
// records the kind of its raw value so that values read back have the type
// they were stored with.
type FileStore struct {
	MemoryStore

	fs   afero.Fs
	path string
}

// OpenFileStore opens the store saved at path. A missing file yields an empty
// store.
func OpenFileStore(fsys afero.Fs, path string) (*FileStore, error) {
	s := &FileStore{
		MemoryStore: MemoryStore{values: make(map[string]any)},
		fs:          fsys,
		path:        path,
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	return s, nil
}

// Path returns the file the store is saved to.
func (s *FileStore) Path() string {
	return s.path
}

// Reload replaces the in-memory values with the file contents.
func (s *FileStore) Reload() error {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.replace(make(map[string]any))
		return nil
	}

	if err != nil {
		return fmt.Errorf("reading store %s: %w", s.path, err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing store %s: %w", s.path, err)
	}

	if doc.Version != 0 && doc.Version != FileFormatVersion {
		return fmt.Errorf("store %s: unsupported version %d", s.path, doc.Version)
	}

	values := make(map[string]any, len(doc.Entries))

	for key, e := range doc.Entries {
		v, err := e.decode()
		if err != nil {
			return fmt.Errorf("store %s: key %q: %w", s.path, key, err)
		}

		values[key] = v
	}

	s.replace(values)

	return nil
}

// Sync saves the current values. The file is replaced atomically.
func (s *FileStore) Sync() error {
	doc := fileDocument{
		Version: FileFormatVersion,
		Entries: make(map[string]entry),
	}

	for key, v := range s.Snapshot() {
		e, err := encodeEntry(v)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		doc.Entries[key] = e
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, filePerm); err != nil {
		return fmt.Errorf("writing store %s: %w", tmp, err)
	}

	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing store %s: %w", s.path, err)
	}

	return nil
}

func encodeEntry(v any) (entry, error) {
	switch x := v.(type) {
	case string:
		return entry{Kind: KindString, Value: x}, nil
	case int:
		return entry{Kind: KindInt, Value: strconv.Itoa(x)}, nil
	case bool:
		return entry{Kind: KindBool, Value: strconv.FormatBool(x)}, nil
	case time.Time:
		return entry{Kind: KindTime, Value: x.Format(time.RFC3339Nano)}, nil
	case []byte:
		return entry{Kind: KindBytes, Value: base64.StdEncoding.EncodeToString(x)}, nil
	case float64:
		return entry{Kind: KindFloat, Value: strconv.FormatFloat(x, 'g', -1, 64)}, nil
	default:
		return entry{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func (e entry) decode() (any, error) {
	switch e.Kind {
	case KindString:
		return e.Value, nil
	case KindInt:
		return strconv.Atoi(e.Value)
	case KindBool:
		return strconv.ParseBool(e.Value)
	case KindTime:
		return time.Parse(time.RFC3339Nano, e.Value)
	case KindBytes:
		return base64.StdEncoding.DecodeString(e.Value)
	case KindFloat:
		return strconv.ParseFloat(e.Value, 64)
	default:
		return nil, fmt.Errorf("unknown kind %q", e.Kind)
	}
}
