package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the kinds of files the store reads.
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatWordList            // one entry per line
	FormatArtifact            // msgpack artifact with header
	FormatWordNet             // GWN-LMF JSON
)

// FormatInfo contains metadata about a file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // minimum plausible size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatWordList: {
		Format:      FormatWordList,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt", ".dic"},
		MinSize:     1,
	},
	FormatArtifact: {
		Format:      FormatArtifact,
		Description: "Compiled Msgpack Artifact",
		Extensions:  []string{".mpk"},
		MinSize:     16,
	},
	FormatWordNet: {
		Format:      FormatWordNet,
		Description: "GWN-LMF WordNet JSON",
		Extensions:  []string{".json"},
		MinSize:     2,
	},
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	switch expectedFormat {
	case FormatArtifact:
		_, err := readHeader(filename)
		return err
	case FormatWordNet:
		return validateJSONFormat(filename)
	case FormatWordList:
		return validateTextFormat(filename)
	}
	return nil
}

// validateTextFormat checks that the file is readable text.
func validateTextFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	buffer := make([]byte, 1024)
	n, err := file.Read(buffer)
	if err != nil {
		return fmt.Errorf("failed to read from text file %s: %w", filename, err)
	}
	for _, b := range buffer[:n] {
		if b == 0 {
			return fmt.Errorf("text file %s contains binary data", filename)
		}
	}
	log.Debugf("Text file %s validated", filename)
	return nil
}

// validateJSONFormat checks that the document opens with an object.
func validateJSONFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("failed to read from json file %s: %w", filename, err)
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return nil
		default:
			return fmt.Errorf("json file %s does not start with an object", filename)
		}
	}
}

// DetectFileFormat attempts to detect the format of a file
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e == ext && ValidateFileFormat(filename, format) == nil {
				return format, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}
