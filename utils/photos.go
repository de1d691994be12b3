package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// PhotoDir is where locally stored proof photos live. Served by the app
// under /uploads/photos.
const PhotoDir = "uploads/photos"

// EnsurePhotoDir creates the local photo directory if it doesn't exist.
func EnsurePhotoDir() error {
	return os.MkdirAll(PhotoDir, os.ModePerm)
}

// StoreProofPhoto persists an uploaded proof photo and returns the opaque
// URL recorded on the completion. Photos go to R2 when configured,
// otherwise to the local uploads directory.
func StoreProofPhoto(fileHeader *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	if R2Enabled() {
		return UploadPhotoToR2(fileHeader, "photos/"+name)
	}
	if err := saveLocalPhoto(fileHeader, filepath.Join(PhotoDir, name)); err != nil {
		return "", err
	}
	return "/" + PhotoDir + "/" + name, nil
}

func saveLocalPhoto(fileHeader *multipart.FileHeader, destPath string) error {
	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open photo: %w", err)
	}
	defer file.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	return nil
}

// LocalPhotoURL converts a local photo filename into the URL recorded on
// completions.
func LocalPhotoURL(name string) string {
	return "/" + PhotoDir + "/" + name
}
