// Package file implements the ledger store on a single JSON document.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// Store keeps the whole ledger in memory and rewrites the document on every
// commit. One write transaction runs at a time; readers see the last
// committed document.
type Store struct {
	path string

	// sem is held from Begin until Commit or Rollback.
	sem chan struct{}

	mu  sync.RWMutex
	doc *document
}

// Open loads path, creating an empty document (and its directory) when the
// file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		sem:  make(chan struct{}, 1),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.doc = &document{}
		s.doc.normalize()
		if err := s.write(s.doc); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrStorage, path, err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrStorage, path, err)
	}
	s.doc = doc

	return s, nil
}

// Repositories returns the store wired as a usecase.Store. The JSON document
// has no outbox.
func (s *Store) Repositories() usecase.Store {
	return usecase.Store{
		TxManager:   s,
		Funds:       &FundRepository{s: s},
		Investments: &InvestmentRepository{s: s},
		Swaps:       &SwapRepository{s: s},
		Sequences:   &SequenceRepository{},
	}
}

// Begin waits for exclusive write access and starts a transaction on a copy
// of the committed document.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.RLock()
	work := s.doc.clone()
	s.mu.RUnlock()

	return &Tx{s: s, work: work}, nil
}

// snapshot returns the committed document. Callers must not modify it.
func (s *Store) snapshot() *document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// write replaces the file atomically: the document goes to a temp file in the
// same directory which is then renamed over the target.
func (s *Store) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", domain.ErrStorage, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", domain.ErrStorage, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", domain.ErrStorage, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync %s: %w", domain.ErrStorage, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", domain.ErrStorage, s.path, err)
	}

	return nil
}

// Tx is a write transaction over a private copy of the document.
type Tx struct {
	s    *Store
	work *document
	done bool
}

// Commit persists the working copy and publishes it to readers.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("file: transaction already closed")
	}
	t.done = true
	defer func() { <-t.s.sem }()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := t.s.write(t.work); err != nil {
		return err
	}

	t.s.mu.Lock()
	t.s.doc = t.work
	t.s.mu.Unlock()

	return nil
}

// Rollback discards the working copy. Safe to call after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	<-t.s.sem
	return nil
}

func asTx(tx usecase.Transaction) *Tx {
	ftx, ok := tx.(*Tx)
	if !ok {
		panic(fmt.Sprintf("file: unexpected transaction type %T", tx))
	}
	return ftx
}

func maxID(current int64, id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= current {
		return current
	}
	return n
}
