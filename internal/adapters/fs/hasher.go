package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceHasher = (*Hasher)(nil)

// Hasher computes content digests for unit source trees.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeSourceDigest computes a single digest over everything under the
// unit's source root: the unit's identity, each file path and each file's
// content hash, in walk order. WalkDir is lexical, so the digest is stable
// across runs.
//
// A unit without a source root digests only its identity; such units rebuild
// when a dependency's fingerprint changes, never on their own.
func (h *Hasher) ComputeSourceDigest(unit *domain.Unit, root string) (string, error) {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(unit.Name.String())
	_, _ = hasher.Write([]byte{0})

	sourceRoot := unit.SourceRoot.String()
	if sourceRoot == "" {
		return fmt.Sprintf("%016x", hasher.Sum64()), nil
	}

	path := filepath.Join(root, sourceRoot)
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat source root"), "path", path)
	}

	if !info.IsDir() {
		if err := h.hashFile(path, hasher); err != nil {
			return "", err
		}
		return fmt.Sprintf("%016x", hasher.Sum64()), nil
	}

	for filePath := range h.walker.WalkFiles(path, nil) {
		if err := h.hashFile(filePath, hasher); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashFile writes the file's path and content hash into the main digest.
func (h *Hasher) hashFile(path string, mainHasher io.Writer) error {
	_, _ = mainHasher.Write([]byte(path))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
