// Package store persists entity collections as pretty-printed JSON arrays, one file per
// collection. A collection file always holds the complete state of that collection.
package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"sarvasva/internal/qerrors"
)

// Record is a single loosely typed entity as it appears in a collection file.
type Record = map[string]interface{}

const (
	UsersCollection       = "users"
	CoursesCollection     = "courses"
	ChatsCollection       = "chats"
	DocumentsCollection   = "documents"
	AssessmentsCollection = "assessments"
	LiveClassesCollection = "liveClasses"
	CreditsCollection     = "credits"
)

var collections = map[string]bool{
	UsersCollection:       true,
	CoursesCollection:     true,
	ChatsCollection:       true,
	DocumentsCollection:   true,
	AssessmentsCollection: true,
	LiveClassesCollection: true,
	CreditsCollection:     true,
}

// SkipWrite can be returned by an Update function to end the cycle without writing anything.
var SkipWrite = errors.New("skip write")

// Collections lists every collection name the store accepts.
func Collections() []string {
	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	return names
}

// Store reads and writes collection files under a single directory. Every operation on a
// collection holds that collection's lock, so a read-modify-write cycle run through Update
// never interleaves with another writer in the same process.
type Store struct {
	dir string

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating data directory %s", dir)
	}

	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Dir returns the directory holding the collection files.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *Store) lock(collection string) (*sync.Mutex, error) {
	if !collections[collection] {
		return nil, errors.Wrap(qerrors.UnknownCollectionError, collection)
	}

	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	mu, ok := s.locks[collection]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[collection] = mu
	}
	return mu, nil
}

// Read loads the whole collection. A missing file is created empty and yields an empty list.
func (s *Store) Read(collection string) ([]Record, error) {
	mu, err := s.lock(collection)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	defer mu.Unlock()

	return s.read(collection)
}

// Write replaces the collection file with records.
func (s *Store) Write(collection string, records []Record) error {
	mu, err := s.lock(collection)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()

	return s.write(collection, records)
}

// Update runs fn over the current contents of the collection and persists whatever it returns.
// Nothing is written when fn fails.
func (s *Store) Update(collection string, fn func(records []Record) ([]Record, error)) error {
	mu, err := s.lock(collection)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()

	records, err := s.read(collection)
	if err != nil {
		return err
	}

	updated, err := fn(records)
	if err == SkipWrite {
		return nil
	}
	if err != nil {
		return err
	}

	return s.write(collection, updated)
}

func (s *Store) read(collection string) ([]Record, error) {
	p := s.path(collection)

	f, err := os.OpenFile(p, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", p)
	}
	f.Close()

	content, err := os.ReadFile(p)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", p)
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal(content, &records); err != nil {
		glog.Errorf("collection %s is corrupt: %v", collection, err)
		return nil, errors.Wrapf(qerrors.CorruptCollectionError, "%s: %v", collection, err)
	}
	if records == nil {
		records = []Record{}
	}

	return records, nil
}

func (s *Store) write(collection string, records []Record) error {
	if records == nil {
		records = []Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %s", collection)
	}

	p := s.path(collection)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}

	return errors.Wrapf(os.Rename(tmp, p), "replacing %s", p)
}
