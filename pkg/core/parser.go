package core

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ExcludedDirs lists directory names that are never descended into
var ExcludedDirs = []string{
	"node_modules",
	".next",
	".out",
	".dist",
	".git",
	"build",
	".cache",
}

// IncludedExtensions lists the file suffixes that are scanned for markers
var IncludedExtensions = []string{
	".js", ".jsx", ".ts", ".tsx",
	".md", ".mdx",
	".html", ".css",
	".json", ".yml", ".yaml",
	".scss", ".sass", ".less",
}

// Only the leftmost marker on a line is captured. The text stops at a carriage
// return or a Unicode line/paragraph separator.
var markerRegex = regexp.MustCompile(`(TODO|FIXME):?\s*([^\r\x{2028}\x{2029}]*)`)

// IsExcludedDir reports whether a directory with the given base name is skipped
func IsExcludedDir(name string) bool {
	for _, excluded := range ExcludedDirs {
		if name == excluded {
			return true
		}
	}
	return false
}

// HasIncludedExtension reports whether a file with the given name is scanned
func HasIncludedExtension(name string) bool {
	for _, ext := range IncludedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// MatchLine extracts the marker kind and trimmed trailing text from a line
func MatchLine(line string) (Kind, string, bool) {
	match := markerRegex.FindStringSubmatch(line)
	if match == nil {
		return "", "", false
	}
	return Kind(match[1]), strings.TrimSpace(match[2]), true
}

// ParseFindings reads a file and returns one finding per line carrying a marker
func ParseFindings(filePath string) ([]Finding, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &ScanError{Path: filePath, Err: err}
	}

	// Invalid UTF-8 sequences are decoded as U+FFFD.
	content := strings.ToValidUTF8(string(data), "\uFFFD")

	var findings []Finding
	for i, line := range strings.Split(content, "\n") {
		kind, text, ok := MatchLine(line)
		if !ok {
			continue
		}
		findings = append(findings, Finding{
			Kind:     kind,
			Text:     text,
			FilePath: filePath,
			Line:     i + 1,
		})
	}

	return findings, nil
}

// ScanDirectory recursively scans root and returns its findings in traversal
// order. The root itself is never filtered by name and must be a directory.
// The first listing, stat or read failure aborts the scan and no findings are
// returned.
func ScanDirectory(root string) ([]Finding, error) {
	return scanDir(root)
}

func scanDir(dir string) ([]Finding, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ScanError{Path: dir, Err: err}
	}

	var findings []Finding
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		info, err := entryInfo(path, entry)
		if err != nil {
			return nil, err
		}

		switch {
		case info.IsDir():
			if IsExcludedDir(entry.Name()) {
				continue
			}
			sub, err := scanDir(path)
			if err != nil {
				return nil, err
			}
			findings = append(findings, sub...)

		case info.Mode().IsRegular() && HasIncludedExtension(entry.Name()):
			fileFindings, err := ParseFindings(path)
			if err != nil {
				return nil, err
			}
			findings = append(findings, fileFindings...)
		}
	}

	return findings, nil
}

// entryInfo resolves symbolic links so that entries are classified by target
func entryInfo(path string, entry fs.DirEntry) (fs.FileInfo, error) {
	var (
		info fs.FileInfo
		err  error
	)
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err = os.Stat(path)
	} else {
		info, err = entry.Info()
	}
	if err != nil {
		return nil, &ScanError{Path: path, Err: err}
	}
	return info, nil
}
