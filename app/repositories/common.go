package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"blogsite/app/models"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"
	SlugKeyPrefix    = "slug:"

	// Sequence keys for auto-incrementing IDs
	PostSeqKey    = "seq:post"
	CommentSeqKey = "seq:comment"

	slugDateLayout = "2006-01-02"
)

var ErrNotFound = errors.New("record not found")

// idBandwidth is how many IDs a sequence leases from badger at a time.
const idBandwidth = 100

// IDSequence hands out entity IDs from a badger sequence. The lease is
// taken on first use, so commands that never insert write nothing to the
// sequence key. Safe for concurrent use.
type IDSequence struct {
	db  *badger.DB
	key []byte

	mutex sync.Mutex
	seq   *badger.Sequence
}

// NewIDSequence returns the sequence stored under key.
func NewIDSequence(db *badger.DB, key string) *IDSequence {
	return &IDSequence{db: db, key: []byte(key)}
}

// Next returns the next ID. IDs start at 1.
func (s *IDSequence) Next() (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.seq == nil {
		seq, err := s.db.GetSequence(s.key, idBandwidth)
		if err != nil {
			return 0, fmt.Errorf("failed to lease sequence %q: %w", s.key, err)
		}
		s.seq = seq
	}
	n, err := s.seq.Next()
	if err != nil {
		return 0, err
	}
	return int(n) + 1, nil
}

// Release returns the unused part of the lease. A later Next leases again.
func (s *IDSequence) Release() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.seq == nil {
		return nil
	}
	err := s.seq.Release()
	s.seq = nil
	return err
}

func postKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%d", PostKeyPrefix, id))
}

func commentKey(postID, id int) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", CommentKeyPrefix, postID, id))
}

func commentPrefix(postID int) []byte {
	return []byte(fmt.Sprintf("%s%d:", CommentKeyPrefix, postID))
}

// slugPrefix covers every post with the given slug on one UTC date.
func slugPrefix(year, month, day int, slug string) []byte {
	return []byte(fmt.Sprintf("%s%04d-%02d-%02d:%s:", SlugKeyPrefix, year, month, day, slug))
}

func slugKey(post *models.Post) []byte {
	date := post.Publish.UTC().Format(slugDateLayout)
	return []byte(fmt.Sprintf("%s%s:%s:%d", SlugKeyPrefix, date, post.Slug, post.ID))
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}

// SortPosts applies the default post ordering: newest publish first.
func SortPosts(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Publish.Equal(posts[j].Publish) {
			return posts[i].Publish.After(posts[j].Publish)
		}
		return posts[i].ID > posts[j].ID
	})
}

// SortComments applies the default comment ordering: oldest first.
func SortComments(comments []*models.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
}

// Window returns items[offset:offset+limit], clipped to the slice.
func Window[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) || limit <= 0 {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func now() time.Time {
	return time.Now().UTC()
}
