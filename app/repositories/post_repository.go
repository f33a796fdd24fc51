package repositories

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"blogsite/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db  *badger.DB
	ids *IDSequence
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB, ids *IDSequence) *BadgerPostRepository {
	return &BadgerPostRepository{db: db, ids: ids}
}

// Create stores a new post and its date/slug index entry
func (r *BadgerPostRepository) Create(post *models.Post) error {
	post.BeforeCreate()
	id, err := r.ids.Next()
	if err != nil {
		return err
	}
	post.ID = id

	err = r.db.Update(func(txn *badger.Txn) error {
		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		if err := txn.Set(postKey(post.ID), data); err != nil {
			return err
		}
		return txn.Set(slugKey(post), []byte{})
	})
	if err != nil {
		post.ID = 0
	}
	return err
}

// GetByID retrieves a post by ID regardless of status
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post *models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		post, err = getPost(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// GetPublishedByID retrieves a post by ID only if it is published
func (r *BadgerPostRepository) GetPublishedByID(id int) (*models.Post, error) {
	post, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, ErrNotFound
	}
	return post, nil
}

// GetPublishedByDateSlug finds the single published post with the slug on
// the given UTC publish date. Zero or several matches are ErrNotFound.
func (r *BadgerPostRepository) GetPublishedByDateSlug(year, month, day int, slug string) (*models.Post, error) {
	var matches []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := slugPrefix(year, month, day, slug)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := strconv.Atoi(string(bytes.TrimPrefix(it.Item().Key(), prefix)))
			if err != nil {
				return fmt.Errorf("corrupt slug index key %q", it.Item().Key())
			}
			post, err := getPost(txn, id)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if post.IsPublished() {
				matches = append(matches, post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(matches) != 1 {
		return nil, ErrNotFound
	}
	return matches[0], nil
}

// ListPublished returns a window of published posts in default order
func (r *BadgerPostRepository) ListPublished(limit, offset int) ([]*models.Post, error) {
	posts, err := r.published()
	if err != nil {
		return nil, err
	}
	return Window(posts, limit, offset), nil
}

// CountPublished returns the number of published posts
func (r *BadgerPostRepository) CountPublished() (int, error) {
	posts, err := r.published()
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

func (r *BadgerPostRepository) published() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %v", err)
			}
			if post.IsPublished() {
				posts = append(posts, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	SortPosts(posts)
	return posts, nil
}

// Update updates an existing post and moves its index entry if needed
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		existing, err := getPost(txn, post.ID)
		if err != nil {
			return err
		}
		if err := txn.Delete(slugKey(existing)); err != nil {
			return err
		}

		post.CreatedAt = existing.CreatedAt
		post.UpdatedAt = now()
		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		if err := txn.Set(postKey(post.ID), data); err != nil {
			return err
		}
		return txn.Set(slugKey(post), []byte{})
	})
}

// Delete deletes a post by ID
func (r *BadgerPostRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		existing, err := getPost(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(slugKey(existing)); err != nil {
			return err
		}
		return txn.Delete(postKey(id))
	})
}

func getPost(txn *badger.Txn, id int) (*models.Post, error) {
	item, err := txn.Get(postKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &post)
	}); err != nil {
		return nil, err
	}
	return &post, nil
}
