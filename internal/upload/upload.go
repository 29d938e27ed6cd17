// Package upload manages the drop folders that feed ingestion. A
// shared Upload folder receives exported CSVs; sweeps move them into
// the owning user's folder, sorted by card type, where ingest picks
// them up.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/spendtrack-dev/spendtrack/internal/model"
)

// subfolders are the card-type buckets created inside every managed
// folder. Filenames are routed to one of them by substring match.
var subfolders = []string{model.CardTypeApple, model.CardTypeESL}

// Folders knows where the shared upload area and the per-user areas
// live on disk.
type Folders struct {
	upload string
	users  string
	log    zerolog.Logger
}

func NewFolders(uploadDir, usersDir string, log zerolog.Logger) *Folders {
	return &Folders{
		upload: uploadDir,
		users:  usersDir,
		log:    log.With().Str("component", "upload").Logger(),
	}
}

// UploadDir returns the shared drop folder path.
func (f *Folders) UploadDir() string {
	return f.upload
}

// UserDir returns the per-user storage folder for a username.
func (f *Folders) UserDir(username string) string {
	return filepath.Join(f.users, username)
}

// Ensure creates the shared upload folder and its card-type
// subfolders. Safe to call repeatedly.
func (f *Folders) Ensure() error {
	return ensureTree(f.upload)
}

// EnsureUser creates a user's storage folder and its card-type
// subfolders.
func (f *Folders) EnsureUser(username string) error {
	return ensureTree(f.UserDir(username))
}

func ensureTree(root string) error {
	for _, sub := range subfolders {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return fmt.Errorf("creating folder %s: %w", filepath.Join(root, sub), err)
		}
	}
	return nil
}

// Sweep moves every file under the shared upload folder into the
// user's folder, routed into the Apple/ or ESL/ subfolder by filename.
// Files matching neither card type stay put. Returns the destination
// paths of the moved files.
func (f *Folders) Sweep(username string) ([]string, error) {
	if err := f.EnsureUser(username); err != nil {
		return nil, err
	}

	var moved []string
	err := filepath.WalkDir(f.upload, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		sub := routeByName(d.Name())
		if sub == "" {
			f.log.Debug().Str("file", d.Name()).Msg("No card type matched, leaving in upload folder")
			return nil
		}

		dest := filepath.Join(f.UserDir(username), sub, d.Name())
		if err := moveFile(path, dest); err != nil {
			return err
		}
		f.log.Info().Str("file", d.Name()).Str("dest", dest).Msg("File swept to user folder")
		moved = append(moved, dest)
		return nil
	})
	if os.IsNotExist(err) {
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("sweeping upload folder: %w", err)
	}

	// Keep the drop area ready for the next export.
	if err := f.Ensure(); err != nil {
		return nil, err
	}
	return moved, nil
}

// routeByName picks the card-type subfolder for a filename, or ""
// when no card type matches.
func routeByName(name string) string {
	lower := strings.ToLower(name)
	for _, sub := range subfolders {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return sub
		}
	}
	return ""
}

// moveFile renames when possible and falls back to copy+remove for
// cross-device destinations.
func moveFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating destination folder: %w", err)
	}
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying to %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	return os.Remove(src)
}
