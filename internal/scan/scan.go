// Package scan gathers document-image targets for the label and extract
// commands. Inputs may be image files, directories to search, or URLs of
// images to be fetched by the pipeline; anything else is skipped with a
// warning. Scanning only inspects names and the filesystem, never file
// contents.
package scan

import (
	"bufio"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caltechlibrary/documentarist/internal/status"
)

// AcceptedFormats lists the image file extensions the OCR services accept.
var AcceptedFormats = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".gif", ".bmp"}

// outputExt is the format dm itself writes; when both x.png and another
// format of x are present, the .png is assumed to be ours and wins.
const outputExt = ".png"

// Scanner resolves raw command arguments into a target list. Warn, if set,
// receives a message for each argument that is skipped.
type Scanner struct {
	Warn func(format string, args ...any)
}

func (s *Scanner) warnf(format string, args ...any) {
	if s.Warn != nil {
		s.Warn(format, args...)
	}
}

// Targets expands args into individual targets. URLs pass through, image
// files are kept, directories are searched recursively for image files, and
// everything else is skipped with a warning. Files produced by earlier dm
// runs (paths containing ".documentarist") are filtered out, and when an
// image exists both as .png and in another format, only the .png is kept.
func (s *Scanner) Targets(args []string) ([]string, error) {
	var candidates []string
	for _, item := range args {
		switch {
		case isURL(item):
			candidates = append(candidates, item)
		case isImageFile(item):
			candidates = append(candidates, item)
		case isDirectory(item):
			found, err := imagesInDirectory(item)
			if err != nil {
				return nil, status.FileErrf("cannot search directory %s: %v", item, err)
			}
			candidates = append(candidates, found...)
		default:
			s.warnf("%q is not an image file, directory, or URL", item)
		}
	}

	kept := make([]string, 0, len(candidates))
	have := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		have[c] = true
	}
	for _, item := range candidates {
		if strings.Contains(item, ".documentarist") {
			continue
		}
		ext := filepath.Ext(item)
		if !isURL(item) && ext != outputExt {
			base := strings.TrimSuffix(item, ext)
			if have[base+outputExt] {
				// A .png version of this image is also present.
				continue
			}
		}
		kept = append(kept, item)
	}
	return kept, nil
}

// TargetsFromFile reads a target list from a file, one entry per line.
// Blank lines are skipped; entries are not re-validated here.
func (s *Scanner) TargetsFromFile(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, status.FileErrf("file does not exist: %s", path)
		}
		return nil, status.FileErrf("cannot access file %s: %v", path, err)
	}
	if info.IsDir() {
		return nil, status.FileErrf("not a file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, status.FileErrf("file is not readable: %s", path)
	}
	defer f.Close()

	var targets []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			targets = append(targets, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, status.FileErrf("cannot read file %s: %v", path, err)
	}
	return targets, nil
}

func isURL(item string) bool {
	u, err := url.Parse(item)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isImageFile(item string) bool {
	info, err := os.Stat(item)
	if err != nil || info.IsDir() {
		return false
	}
	return acceptedExt(filepath.Ext(item))
}

func isDirectory(item string) bool {
	info, err := os.Stat(item)
	return err == nil && info.IsDir()
}

func acceptedExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, a := range AcceptedFormats {
		if ext == a {
			return true
		}
	}
	return false
}

func imagesInDirectory(dir string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && acceptedExt(filepath.Ext(path)) {
			found = append(found, path)
		}
		return nil
	})
	return found, err
}
