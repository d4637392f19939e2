package uploads

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mkhaliddev/foodrush/internal/logging"
)

// Storage keeps uploaded food images on local disk and hands out public
// locators of the form <base>/uploads/<name>.
type Storage struct {
	Dir     string
	BaseURL string
}

func NewStorage(dir, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save stores the uploaded file under a generated name and returns its
// public locator.
func (s *Storage) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return s.BaseURL + "/uploads/" + name, nil
}

// Remove deletes the file behind a locator. Best effort: failures are logged
// and never surfaced, a sweeper reconciles leftovers later.
func (s *Storage) Remove(ctx context.Context, locator string) {
	if locator == "" {
		return
	}
	name := path.Base(locator)
	if name == "." || name == "/" {
		return
	}
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !os.IsNotExist(err) {
		logging.FromContext(ctx).Warn("failed to remove upload", "locator", locator, "error", err)
	}
}

// List returns the stored file names, for the orphan sweeper.
func (s *Storage) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
