package importer

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spendtrack-dev/spendtrack/internal/model"
)

// Parser converts one institution's CSV export into receipts.
type Parser interface {
	Parse(r io.Reader, userID int64) ([]model.Receipt, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Detect picks a parser by filename substring match, the convention each
// institution uses for its export downloads. Not content sniffing.
// Returns nil when the path matches no known format.
func (r *Registry) Detect(path string) Parser {
	switch {
	case strings.Contains(path, "Apple"):
		return r.Get("apple")
	case strings.Contains(path, "ESL"):
		return r.Get("esl")
	default:
		return nil
	}
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&AppleParser{})
	r.Register(&ESLParser{})
	return r
}

// Scan walks dir recursively and returns paths of files with the given
// extension. A missing directory yields no files, not an error.
func Scan(dir, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), strings.ToLower(ext)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return files, nil
}
