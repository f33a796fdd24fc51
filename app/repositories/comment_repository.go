package repositories

import (
	"errors"
	"fmt"

	"blogsite/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db  *badger.DB
	ids *IDSequence
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB, ids *IDSequence) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db, ids: ids}
}

// Create stores a new comment. The parent post must exist; the check and
// the write happen in one transaction.
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	comment.BeforeCreate()
	id, err := r.ids.Next()
	if err != nil {
		return err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(postKey(comment.PostID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		comment.ID = id

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}

		// Post ID in the key keeps per-post listing a prefix scan
		return txn.Set(commentKey(comment.PostID, comment.ID), data)
	})
	if err != nil {
		comment.ID = 0
	}
	return err
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(id int) (*models.Comment, error) {
	var found *models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		found, _, err = findComment(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListByPost retrieves all comments for a post, oldest first
func (r *BadgerCommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	return r.list(postID, false)
}

// ListActiveByPost retrieves the active comments for a post, oldest first
func (r *BadgerCommentRepository) ListActiveByPost(postID int) ([]*models.Comment, error) {
	return r.list(postID, true)
}

func (r *BadgerCommentRepository) list(postID int, activeOnly bool) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := commentPrefix(postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %v", err)
			}
			if activeOnly && !comment.Active {
				continue
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	SortComments(comments)
	return comments, nil
}

// Update updates an existing comment. The post association cannot change.
func (r *BadgerCommentRepository) Update(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		existing, key, err := findComment(txn, comment.ID)
		if err != nil {
			return err
		}

		comment.PostID = existing.PostID
		comment.CreatedAt = existing.CreatedAt
		comment.UpdatedAt = now()
		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a comment by ID
func (r *BadgerCommentRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		_, key, err := findComment(txn, id)
		if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// findComment scans every comment since keys are grouped by post, not ID.
func findComment(txn *badger.Txn, id int) (*models.Comment, []byte, error) {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	prefix := []byte(CommentKeyPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		var comment models.Comment
		err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal comment: %v", err)
		}
		if comment.ID == id {
			return &comment, item.KeyCopy(nil), nil
		}
	}
	return nil, nil, ErrNotFound
}
