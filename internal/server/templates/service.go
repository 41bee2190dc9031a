// Package templates owns the template registry and its synchronisation with
// the blob store.
//
// Templates are stored as opaque blobs under prefix + id + extension. Load
// pulls every blob under the prefix into the Registry; Verify answers by
// exact byte comparison against it. There is no similarity matching.
package templates

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/dmitrijs2005/fingervault/internal/common"
	"github.com/dmitrijs2005/fingervault/internal/logging"
	"github.com/dmitrijs2005/fingervault/internal/server/blobstore"
)

type Service struct {
	store     blobstore.Store
	registry  *Registry
	prefix    string
	extension string
	logger    logging.Logger
}

func NewService(store blobstore.Store, registry *Registry, prefix, extension string, l logging.Logger) *Service {
	return &Service{
		store:     store,
		registry:  registry,
		prefix:    prefix,
		extension: extension,
		logger:    l.With("module", "templates"),
	}
}

func (s *Service) Registry() *Registry {
	return s.registry
}

// Key maps a template ID to its blob store key.
func (s *Service) Key(id string) string {
	return s.prefix + id + s.extension
}

// ID is the inverse of Key. It returns false for keys that do not name a
// template, such as the bare prefix used as a directory marker.
func (s *Service) ID(key string) (string, bool) {
	id, ok := strings.CutPrefix(key, s.prefix)
	if !ok {
		return "", false
	}
	id = strings.TrimSuffix(id, s.extension)
	return id, id != ""
}

// Upload writes data to the blob store under id. The registry is not
// touched; uploaded templates become verifiable after the next Load.
func (s *Service) Upload(ctx context.Context, id string, data []byte) error {
	if id == "" {
		return common.NewValidationError("FingerprintID missing in payload")
	}
	if len(data) == 0 {
		return common.NewValidationError("FingerprintData missing in payload")
	}

	key := s.Key(id)
	if err := s.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	s.logger.Info(ctx, "template uploaded", "fingerprint_id", id, "size", len(data), "digest", digest(data))
	return nil
}

// Load reads every template under the prefix and merges them into the
// registry. Nothing is merged unless every object was read successfully.
// It returns the registry size after the merge.
func (s *Service) Load(ctx context.Context) (int, error) {
	keys, err := s.store.List(ctx, s.prefix)
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", s.prefix, err)
	}

	batch := make(map[string][]byte, len(keys))
	for _, key := range keys {
		id, ok := s.ID(key)
		if !ok {
			continue
		}
		data, err := s.store.Get(ctx, key)
		if err != nil {
			return 0, fmt.Errorf("get %s: %w", key, err)
		}
		batch[id] = data
	}

	if len(batch) == 0 {
		return 0, fmt.Errorf("prefix %s: %w", s.prefix, common.ErrNoTemplates)
	}

	n := s.registry.Merge(batch)
	s.logger.Info(ctx, "templates loaded", "loaded", len(batch), "total", n)
	return n, nil
}

// Verify returns the ID of the registered template equal to data.
func (s *Service) Verify(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", common.NewValidationError("No template data received.")
	}

	id, ok := s.registry.Match(data)
	if !ok {
		s.logger.Info(ctx, "template not matched", "size", len(data), "digest", digest(data))
		return "", common.ErrNoMatch
	}

	s.logger.Info(ctx, "template verified", "fingerprint_id", id)
	return id, nil
}

// digest identifies a payload in logs without writing biometric data there.
func digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// Count is the number of templates currently held in the registry.
func (s *Service) Count() int {
	return s.registry.Len()
}
