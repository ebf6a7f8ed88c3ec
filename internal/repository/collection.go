package repository

import (
	"encoding/json"

	"github.com/pkg/errors"

	"sarvasva/internal/models"
	"sarvasva/internal/qerrors"
	"sarvasva/internal/store"
)

// collection is a typed view of one store collection. Records are decoded into T on the way out
// and merged back onto the stored record on the way in, so fields T does not know about survive
// an update.
type collection[T any] struct {
	name  string
	store *store.Store
	id    func(*T) string
}

func newCollection[T any](s *store.Store, name string, id func(*T) string) *collection[T] {
	return &collection[T]{name: name, store: s, id: id}
}

func (c *collection[T]) byID(id string) func(*T) bool {
	return func(v *T) bool {
		return c.id(v) == id
	}
}

func (c *collection[T]) all() ([]*T, error) {
	return c.filter(nil)
}

// filter returns the entities matching pred in stored order. A nil pred matches everything.
func (c *collection[T]) filter(pred func(*T) bool) ([]*T, error) {
	records, err := c.store.Read(c.name)
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(records))
	for _, record := range records {
		v, err := c.decode(record)
		if err != nil {
			return nil, err
		}
		if pred == nil || pred(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// find returns the first entity matching pred, or notFound.
func (c *collection[T]) find(pred func(*T) bool, notFound error) (*T, error) {
	records, err := c.store.Read(c.name)
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		v, err := c.decode(record)
		if err != nil {
			return nil, err
		}
		if pred(v) {
			return v, nil
		}
	}
	return nil, notFound
}

func (c *collection[T]) findByID(id string, notFound error) (*T, error) {
	return c.find(c.byID(id), notFound)
}

func (c *collection[T]) insert(v *T) error {
	record, err := encode(v)
	if err != nil {
		return err
	}

	return c.store.Update(c.name, func(records []store.Record) ([]store.Record, error) {
		return append(records, record), nil
	})
}

// update applies fn to the first entity matching pred and persists the result. fn may return
// store.SkipWrite to leave the collection untouched.
func (c *collection[T]) update(pred func(*T) bool, notFound error, fn func(*T) error) (*T, error) {
	return c.upsert(pred, func() (*T, error) { return nil, notFound }, fn)
}

// getOrCreate returns the first entity matching pred, appending the one built by create when
// there is none.
func (c *collection[T]) getOrCreate(pred func(*T) bool, create func() *T) (*T, error) {
	return c.upsert(pred, func() (*T, error) { return create(), nil }, func(*T) error {
		return store.SkipWrite
	})
}

// upsert is update for an entity that is created on a miss. A created entity is always written,
// even if fn returns store.SkipWrite for it.
func (c *collection[T]) upsert(pred func(*T) bool, create func() (*T, error), fn func(*T) error) (*T, error) {
	var result *T
	err := c.store.Update(c.name, func(records []store.Record) ([]store.Record, error) {
		for i, record := range records {
			v, err := c.decode(record)
			if err != nil {
				return nil, err
			}
			if !pred(v) {
				continue
			}

			if err := fn(v); err != nil {
				if err == store.SkipWrite {
					result = v
				}
				return nil, err
			}
			merged, err := merge(record, v)
			if err != nil {
				return nil, err
			}
			records[i] = merged
			result = v
			return records, nil
		}

		v, err := create()
		if err != nil {
			return nil, err
		}
		if err := fn(v); err != nil && err != store.SkipWrite {
			return nil, err
		}
		record, err := encode(v)
		if err != nil {
			return nil, err
		}
		result = v
		return append(records, record), nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// remove deletes the first entity matching pred and keeps every other record in place.
func (c *collection[T]) remove(pred func(*T) bool, notFound error) (*T, error) {
	var removed *T
	err := c.store.Update(c.name, func(records []store.Record) ([]store.Record, error) {
		for i, record := range records {
			v, err := c.decode(record)
			if err != nil {
				return nil, err
			}
			if pred(v) {
				removed = v
				return append(records[:i:i], records[i+1:]...), nil
			}
		}
		return nil, notFound
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (c *collection[T]) decode(record store.Record) (*T, error) {
	normalizeID(record)

	var v T
	if err := models.Decode(record, &v); err != nil {
		return nil, errors.Wrapf(qerrors.CorruptCollectionError, "%s record %v: %v", c.name, record["id"], err)
	}
	return &v, nil
}

// normalizeID moves legacy "_id" fields to "id", in the record and in every object nested in it.
func normalizeID(v interface{}) {
	switch v := v.(type) {
	case map[string]interface{}:
		if legacy, ok := v["_id"]; ok {
			if _, ok := v["id"]; !ok {
				v["id"] = legacy
			}
			delete(v, "_id")
		}
		for _, child := range v {
			normalizeID(child)
		}
	case []interface{}:
		for _, child := range v {
			normalizeID(child)
		}
	}
}

func encode(v interface{}) (store.Record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encoding record")
	}

	var record store.Record
	if err := json.Unmarshal(b, &record); err != nil {
		return nil, errors.Wrap(err, "encoding record")
	}
	return record, nil
}

// merge overlays the encoded form of v onto record.
func merge(record store.Record, v interface{}) (store.Record, error) {
	encoded, err := encode(v)
	if err != nil {
		return nil, err
	}
	for k, val := range encoded {
		record[k] = val
	}
	return record, nil
}
