package dictionary

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"strconv"

	"github.com/bastiangx/cluesolve/internal/utils"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	artifactMagic   = "cluesolve"
	artifactVersion = 1
)

// Kind identifies what an artifact holds.
type Kind string

const (
	KindAnagramIndex Kind = "anagram-index"
	KindRunWords     Kind = "run-words"
	KindSenseGraph   Kind = "sense-graph"
)

var (
	// ErrInvalidArtifact is returned for files that are not artifacts of
	// the expected kind and version.
	ErrInvalidArtifact = errors.New("invalid artifact")
	// ErrStaleArtifact is returned when an artifact was built from a
	// different source than the one in use.
	ErrStaleArtifact = errors.New("stale artifact")
)

// Header describes an artifact.
type Header struct {
	Magic   string `msgpack:"magic"`
	Version int    `msgpack:"version"`
	Kind    Kind   `msgpack:"kind"`
	Entries int    `msgpack:"entries"`
	Source  string `msgpack:"source"`
}

type artifactFile struct {
	Header  Header             `msgpack:"header"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

// WriteArtifact encodes payload and writes it atomically to path.
// source fingerprints the input the payload was compiled from.
func WriteArtifact(path string, kind Kind, source string, entries int, payload any) error {
	body, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	data, err := msgpack.Marshal(&artifactFile{
		Header: Header{
			Magic:   artifactMagic,
			Version: artifactVersion,
			Kind:    kind,
			Entries: entries,
			Source:  source,
		},
		Payload: body,
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	if err := utils.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadArtifact decodes the artifact at path into out. An empty source
// skips the freshness check.
func ReadArtifact(path string, kind Kind, source string, out any) (Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Header{}, err
	}
	var file artifactFile
	if err := msgpack.Unmarshal(data, &file); err != nil {
		return Header{}, fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, path, err)
	}
	h := file.Header
	switch {
	case h.Magic != artifactMagic, h.Version != artifactVersion:
		return h, fmt.Errorf("%w: %s has magic %q version %d", ErrInvalidArtifact, path, h.Magic, h.Version)
	case h.Kind != kind:
		return h, fmt.Errorf("%w: %s holds %s, want %s", ErrInvalidArtifact, path, h.Kind, kind)
	case source != "" && h.Source != source:
		return h, fmt.Errorf("%w: %s", ErrStaleArtifact, path)
	}
	if err := msgpack.Unmarshal(file.Payload, out); err != nil {
		return h, fmt.Errorf("%w: %s payload: %v", ErrInvalidArtifact, path, err)
	}
	return h, nil
}

// readHeader validates the envelope of an artifact without its payload.
func readHeader(path string) (Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Header{}, err
	}
	var file artifactFile
	if err := msgpack.Unmarshal(data, &file); err != nil {
		return Header{}, fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, path, err)
	}
	if file.Header.Magic != artifactMagic {
		return file.Header, fmt.Errorf("%w: %s", ErrInvalidArtifact, path)
	}
	return file.Header, nil
}

// Fingerprint summarises a word list so artifacts compiled from it can be
// recognised later.
func Fingerprint(words []string) string {
	h := fnv.New64a()
	for _, w := range words {
		h.Write([]byte(w))
		h.Write([]byte{0})
	}
	return strconv.Itoa(len(words)) + "-" + strconv.FormatUint(h.Sum64(), 16)
}

// FileFingerprint summarises a source file by size and modification time.
func FileFingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(info.Size(), 10) + "-" + strconv.FormatInt(info.ModTime().UnixNano(), 16), nil
}
