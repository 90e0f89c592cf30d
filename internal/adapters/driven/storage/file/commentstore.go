// Package file provides a JSON-file comment store. The whole
// ApplicationId → comments mapping is rewritten on every append.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driven"
	"github.com/custodia-labs/appreview/internal/logger"
)

// Ensure CommentStore implements the interface.
var _ driven.CommentStore = (*CommentStore)(nil)

// FileName is the comments file inside the data directory.
const FileName = "comments.json"

// CommentStore keeps comments in a single JSON document.
type CommentStore struct {
	mu       sync.RWMutex
	path     string
	comments domain.CommentsByApplication
}

// NewCommentStore opens the comments file in dataDir, creating the directory
// when needed. A missing file starts empty. A corrupt file is logged and
// treated as empty; it is replaced by the next append.
func NewCommentStore(dataDir string) (*CommentStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &CommentStore{
		path:     filepath.Join(dataDir, FileName),
		comments: make(domain.CommentsByApplication),
	}

	if err := s.load(); err != nil {
		if !errors.Is(err, domain.ErrStorageCorrupt) {
			return nil, err
		}
		logger.Warn("%v; starting with no comments", err)
	}
	return s, nil
}

// Path returns the comments file path.
func (s *CommentStore) Path() string {
	return s.path
}

func (s *CommentStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read comments: %w", err)
	}

	var loaded domain.CommentsByApplication
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageCorrupt, s.path, err)
	}
	if loaded != nil {
		s.comments = loaded
	}
	return nil
}

// Append adds a comment and rewrites the file.
// On a failed write the in-memory mapping is left unchanged.
func (s *CommentStore) Append(_ context.Context, comment domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := comment.ApplicationID
	prev := s.comments[id]
	s.comments[id] = append(slices.Clip(prev), comment)

	if err := s.save(); err != nil {
		if prev == nil {
			delete(s.comments, id)
		} else {
			s.comments[id] = prev
		}
		return err
	}
	return nil
}

// save writes the mapping through a temp file and rename (caller holds lock).
func (s *CommentStore) save() error {
	data, err := json.MarshalIndent(s.comments, "", "  ")
	if err != nil {
		return fmt.Errorf("encode comments: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write comments: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace comments: %w", err)
	}
	return nil
}

// List returns the comments of an application in insertion order.
func (s *CommentStore) List(_ context.Context, applicationID string) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := slices.Clone(s.comments[applicationID])
	if list == nil {
		list = []domain.Comment{}
	}
	return list, nil
}

// All returns every stored comment keyed by ApplicationId.
func (s *CommentStore) All(_ context.Context) (domain.CommentsByApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.CommentsByApplication, len(s.comments))
	for id, list := range s.comments {
		out[id] = slices.Clone(list)
	}
	return out, nil
}
