package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/menta2k/smart-cropper/pkg/types"
)

var imageExts = []string{"jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff", "webp"}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// GetFileExtension returns the lower-case file extension without the dot
func GetFileExtension(filename string) string {
	ext := filepath.Ext(filename)
	if len(ext) > 0 {
		return strings.ToLower(ext[1:])
	}
	return ""
}

// IsImageFile checks if a file has an image extension
func IsImageFile(filename string) bool {
	return slices.Contains(imageExts, GetFileExtension(filename))
}

// IsURL reports whether source looks like an http(s) URL
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// GenerateOutputFilename builds <dir>/<prefix><name><suffix>_<size>.<format>.
// The size part is left out when size is zero.
func GenerateOutputFilename(inputFile, outputDir, prefix, suffix string, size types.Size, format string) string {
	baseName := filepath.Base(inputFile)
	if IsURL(inputFile) {
		baseName = SanitizeFilename(strings.SplitN(baseName, "?", 2)[0])
	}
	nameWithoutExt := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	if nameWithoutExt == "" {
		nameWithoutExt = "image"
	}

	if format == "" {
		format = GetFileExtension(baseName)
		if format == "" || !IsImageFile(baseName) {
			format = "jpg"
		}
	}

	name := prefix + nameWithoutExt + suffix
	if size.Width > 0 && size.Height > 0 {
		name += "_" + size.String()
	}
	return filepath.Join(outputDir, name+"."+format)
}

// ListImageFiles recursively lists all image files in a directory
func ListImageFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsImageFile(path) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists
func DirExists(dirname string) bool {
	info, err := os.Stat(dirname)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// SanitizeFilename removes or replaces invalid characters in filenames
func SanitizeFilename(filename string) string {
	result := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, filename)

	return strings.Trim(result, " .")
}

// FormatFileSize formats file size in human-readable format
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
