package sources

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/nvinuesa/envporter/internal/model"
	"github.com/nvinuesa/envporter/internal/security"
)

// utf8BOM is stripped from the start of the file before parsing.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var _ Source = (*DotenvSource)(nil)

// DotenvSource implements the Source interface for dotenv files.
type DotenvSource struct {
	filePath  string
	opts      OpenOptions
	isOpen    bool
	variables model.Variables
}

// NewDotenvSource creates a new dotenv source adapter.
func NewDotenvSource() *DotenvSource {
	return &DotenvSource{}
}

// Name returns the unique identifier for this source.
func (s *DotenvSource) Name() string {
	return "dotenv"
}

// Description returns a human-readable description.
func (s *DotenvSource) Description() string {
	return "dotenv file (KEY=VALUE lines with optional # comments)"
}

// Open validates the path and prepares the source for reading.
func (s *DotenvSource) Open(path string, opts OpenOptions) error {
	if s.isOpen {
		return ErrAlreadyOpen
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ErrFileNotFound{Path: path}
		}
		return &ErrPermissionDenied{Path: path, Op: "stat", Err: err}
	}

	if info.IsDir() {
		return &ErrInvalidFormat{
			Source:  s.Name(),
			Path:    path,
			Details: "path must be a file, not a directory",
		}
	}

	s.filePath = path
	s.opts = opts
	s.isOpen = true
	s.variables = nil

	return nil
}

// Read parses the dotenv file and returns its variables.
func (s *DotenvSource) Read() (model.Variables, error) {
	if !s.isOpen {
		return nil, ErrNotOpen
	}

	// Return cached results if available
	if s.variables != nil {
		return s.variables, nil
	}

	log := s.opts.logger()
	log.Debug("reading dotenv file", zap.String("path", s.filePath))

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ErrFileNotFound{Path: s.filePath}
		}
		return nil, &ErrPermissionDenied{Path: s.filePath, Op: "read", Err: err}
	}
	defer security.Wipe(&raw)

	content := bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(content) {
		return nil, &ErrInvalidFormat{
			Source:  s.Name(),
			Path:    s.filePath,
			Details: "file is not valid UTF-8 text",
		}
	}

	text := string(content)
	if s.opts.LeadingComments {
		text = AttachLeadingComments(text)
	}

	vars := Parse(text, s.opts.ParseComments)
	log.Debug("found variables",
		zap.String("path", s.filePath),
		zap.Int("count", len(vars)),
		zap.Int("with_comments", vars.WithComments()),
		zap.Strings("keys", vars.Keys()),
	)

	s.variables = vars
	return vars, nil
}

// Close releases resources.
func (s *DotenvSource) Close() error {
	s.isOpen = false
	s.filePath = ""
	s.variables = nil
	return nil
}

// ReadFile opens, reads and closes a dotenv file in one call.
func ReadFile(path string, opts OpenOptions) (model.Variables, error) {
	var src Source = NewDotenvSource()
	if err := src.Open(path, opts); err != nil {
		return nil, err
	}
	defer src.Close()

	return src.Read()
}
