package utils

import (
	"io"
	"marche/config"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, string, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", "", err
	}

	// Unique object name so concurrent uploads never collide
	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := uuid.NewString() + ext
	filePath := filepath.Join(destDir, objectName)

	// Create destination file
	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	// Copy the file content
	if _, err := io.Copy(dst, src); err != nil {
		return "", "", err
	}

	return filePath, objectName, nil
}

func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	base := strings.TrimSuffix(config.AppConfig.PublicBaseURL, "/")
	return base + "/uploads/" + filepath.Base(filePath)
}
