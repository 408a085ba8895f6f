// Package export serializes import documents and writes them to disk or stdout.
package export

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/nvinuesa/envporter/internal/bws"
	"github.com/nvinuesa/envporter/internal/security"
)

// Extension is the only accepted output file extension.
const Extension = ".json"

// Exporter errors.
var (
	ErrNilDocument  = errors.New("document is nil")
	ErrNoOutputPath = errors.New("output path is required")
)

// ErrOutputExists is returned when the output file exists and overwriting was not forced.
type ErrOutputExists struct {
	Path string
}

func (e *ErrOutputExists) Error() string {
	return fmt.Sprintf("output file %q already exists (use --force to overwrite)", e.Path)
}

// ErrInvalidExtension is returned when an explicit output extension is not .json.
type ErrInvalidExtension struct {
	Path string
	Ext  string
}

func (e *ErrInvalidExtension) Error() string {
	return fmt.Sprintf("output file %q must have a %s extension, got %q", e.Path, Extension, e.Ext)
}

// IsOutputExists returns true if the error is an output conflict.
func IsOutputExists(err error) bool {
	var existsErr *ErrOutputExists
	return errors.As(err, &existsErr)
}

// IsInvalidExtension returns true if the error is an extension mismatch.
func IsInvalidExtension(err error) bool {
	var extErr *ErrInvalidExtension
	return errors.As(err, &extErr)
}

// ExportOptions configures file export behavior.
type ExportOptions struct {
	// OutputPath is the destination file path. A missing extension becomes .json.
	OutputPath string
	// Force allows replacing an existing file.
	Force bool
	// Logger receives diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// ResolveOutputPath applies the extension policy: no extension gets .json
// appended, .json is kept, anything else is rejected.
func ResolveOutputPath(path string) (string, error) {
	if path == "" {
		return "", ErrNoOutputPath
	}

	ext := outputExt(path)
	switch {
	case ext == "":
		return path + Extension, nil
	case ext == Extension:
		return path, nil
	default:
		return "", &ErrInvalidExtension{Path: path, Ext: ext}
	}
}

// outputExt returns the extension of the final path element. A name whose
// only dot is the leading one, such as ".out", has no extension.
func outputExt(path string) string {
	base := filepath.Base(path)
	if !strings.Contains(strings.TrimPrefix(base, "."), ".") {
		return ""
	}
	return filepath.Ext(base)
}

// Export writes a document to disk and returns the path written.
// The file is created with mode 0600. Without Force an existing file is never
// touched and ErrOutputExists is returned.
func Export(doc *bws.Document, opts ExportOptions) (string, error) {
	path, err := ResolveOutputPath(opts.OutputPath)
	if err != nil {
		return "", err
	}

	data, err := ExportToBytes(doc)
	if err != nil {
		return "", err
	}
	defer security.Wipe(&data)

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	lock, err := lockFor(path)
	if err != nil {
		return "", err
	}
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("acquire lock %s: %w", lock.Path(), err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("failed to release output lock", zap.String("lock", lock.Path()), zap.Error(err))
			return
		}
		if err := os.Remove(lock.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Debug("failed to remove lock file", zap.String("lock", lock.Path()), zap.Error(err))
		}
	}()

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if opts.Force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", &ErrOutputExists{Path: path}
		}
		return "", err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	log.Debug("wrote import document",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
		zap.Bool("force", opts.Force),
	)

	return path, nil
}

// ExportToBytes returns the document as indented JSON with a trailing newline.
func ExportToBytes(doc *bws.Document) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode import document: %w", err)
	}

	return append(data, '\n'), nil
}

// Write encodes the document to w, typically stdout.
func Write(w io.Writer, doc *bws.Document) error {
	data, err := ExportToBytes(doc)
	if err != nil {
		return err
	}
	defer security.Wipe(&data)

	_, err = w.Write(data)
	return err
}

// lockFor returns the process lock guarding writes to path. The lock file
// lives in the temp dir so nothing is left next to the output, and Export
// removes it once released.
func lockFor(path string) (*flock.Flock, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256([]byte(abs))
	name := "envporter-" + hex.EncodeToString(sum[:8]) + ".lock"
	return flock.New(filepath.Join(os.TempDir(), name)), nil
}
