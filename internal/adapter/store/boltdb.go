package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"senti/internal/domain"
)

var (
	bucketAnalyses = []byte("analyses")
	bucketByTime   = []byte("by_time")
)

// BoltStore persists analysis history in a bbolt database. Analyses are
// stored by ID with a secondary chronological index for listing.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (creating if needed) the history database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketAnalyses, bucketByTime} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type analysisMeta struct {
	Text       string                `json:"text"`
	Sentiment  string                `json:"sentiment"`
	Confidence float64               `json:"confidence"`
	Keywords   []domain.KeywordCount `json:"keywords,omitempty"`
	CreatedAt  int64                 `json:"created_at"` // UnixNano
}

// timeKey orders entries chronologically; the ID suffix keeps keys unique
// when two analyses share a timestamp.
func timeKey(createdAt time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%020d|%s", createdAt.UnixNano(), id))
}

func (s *BoltStore) PutAnalysis(a domain.Analysis) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta := analysisMeta{
			Text:       a.Text,
			Sentiment:  string(a.Sentiment),
			Confidence: a.Confidence,
			Keywords:   a.Keywords,
			CreatedAt:  a.CreatedAt.UnixNano(),
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketAnalyses).Put([]byte(a.ID), data); err != nil {
			return err
		}
		return tx.Bucket(bucketByTime).Put(timeKey(a.CreatedAt, a.ID), []byte(a.ID))
	})
}

func (s *BoltStore) GetAnalysis(id string) (domain.Analysis, error) {
	var a domain.Analysis
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketAnalyses).Get([]byte(id))
		if data == nil {
			return domain.ErrNotFound
		}
		var meta analysisMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		a = metaToAnalysis(id, meta)
		return nil
	})
	return a, err
}

// ListAnalyses returns analyses newest first. limit <= 0 returns all.
func (s *BoltStore) ListAnalyses(limit int) ([]domain.Analysis, error) {
	var analyses []domain.Analysis
	err := s.db.View(func(tx *bbolt.Tx) error {
		analysesBucket := tx.Bucket(bucketAnalyses)
		c := tx.Bucket(bucketByTime).Cursor()

		for k, id := c.Last(); k != nil; k, id = c.Prev() {
			if limit > 0 && len(analyses) >= limit {
				break
			}
			data := analysesBucket.Get(id)
			if data == nil {
				continue // index entry without record, skip
			}
			var meta analysisMeta
			if err := json.Unmarshal(data, &meta); err != nil {
				continue
			}
			analyses = append(analyses, metaToAnalysis(string(id), meta))
		}
		return nil
	})
	return analyses, err
}

func (s *BoltStore) DeleteAnalysis(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketAnalyses)
		data := b.Get([]byte(id))
		if data == nil {
			return domain.ErrNotFound
		}
		var meta analysisMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		if err := b.Delete([]byte(id)); err != nil {
			return err
		}
		return tx.Bucket(bucketByTime).Delete(timeKey(time.Unix(0, meta.CreatedAt), id))
	})
}

func (s *BoltStore) Count() (int, error) {
	count := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketAnalyses).Stats().KeyN
		return nil
	})
	return count, err
}

// Clear drops all stored analyses.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketAnalyses, bucketByTime} {
			if err := tx.DeleteBucket(b); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(b); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func metaToAnalysis(id string, meta analysisMeta) domain.Analysis {
	return domain.Analysis{
		ID:         id,
		Text:       meta.Text,
		Sentiment:  domain.Sentiment(meta.Sentiment),
		Confidence: meta.Confidence,
		Keywords:   meta.Keywords,
		CreatedAt:  time.Unix(0, meta.CreatedAt),
	}
}
