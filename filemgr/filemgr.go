// Package filemgr stores uploaded tour images on local disk and derives the
// thumbnails the storefront grid uses. The rest of the system only sees the
// returned URL paths.
package filemgr

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/utils"

	"github.com/disintegration/imaging"
)

const (
	tourPicDir = "tourpic"
	thumbDir   = "thumb"
	thumbWidth = 400
)

type FileStore struct {
	BaseDir string // e.g. ./static
}

func New(baseDir string) (*FileStore, error) {
	for _, dir := range []string{
		filepath.Join(baseDir, tourPicDir),
		filepath.Join(baseDir, tourPicDir, thumbDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &FileStore{BaseDir: baseDir}, nil
}

// SaveTourImage writes the uploaded file under the tour's id, renders a
// thumbnail next to it and returns the public URL path of the original.
func (fs *FileStore) SaveTourImage(file multipart.File, tourID string) (string, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	name := fmt.Sprintf("%s-%s.jpg", tourID, utils.GenerateID(8))
	fullPath := filepath.Join(fs.BaseDir, tourPicDir, name)
	if err := imaging.Save(img, fullPath, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(fs.BaseDir, tourPicDir, thumbDir, name)
	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(80)); err != nil {
		// The original is already on disk; a missing thumbnail is not fatal.
		os.Remove(thumbPath)
	}

	return "/static/" + tourPicDir + "/" + name, nil
}

// Remove deletes a previously stored image and its thumbnail given the URL
// path SaveTourImage returned.
func (fs *FileStore) Remove(urlPath string) {
	name := filepath.Base(urlPath)
	os.Remove(filepath.Join(fs.BaseDir, tourPicDir, name))
	os.Remove(filepath.Join(fs.BaseDir, tourPicDir, thumbDir, name))
}
