package service

import (
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"pdf-csv-extractor/internal/domain"
)

// fallbackBaseName is used when sanitizing leaves nothing of the upload name.
const fallbackBaseName = "document"

// guardDeviceNames enables the device name prefix; those names are only
// special on Windows.
var guardDeviceNames = runtime.GOOS == "windows"

var windowsDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// ValidateFilename checks that name is present and ends in one of the allowed
// extensions. Extensions compare case-insensitively and are given without dots.
func ValidateFilename(name string, allowed []string) error {
	if name == "" {
		return domain.ErrNoFilename
	}
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return domain.ErrUnsupportedType
	}
	if !slices.Contains(allowed, strings.ToLower(name[dot+1:])) {
		return domain.ErrUnsupportedType
	}
	return nil
}

// SecureFilename reduces name to a flat ASCII file name that is safe to use
// inside the staging directory. The result may be empty.
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)

	var ascii strings.Builder
	for _, r := range name {
		if r < utf8.RuneSelf {
			ascii.WriteRune(r)
		}
	}
	name = ascii.String()

	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")

	var safe strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			safe.WriteRune(r)
		case r == '_', r == '.', r == '-':
			safe.WriteRune(r)
		}
	}
	name = strings.Trim(safe.String(), "._")

	if guardDeviceNames && name != "" {
		stem, _, _ := strings.Cut(name, ".")
		if windowsDeviceNames[strings.ToUpper(stem)] {
			name = "_" + name
		}
	}
	return name
}

// BaseName strips the final extension from a sanitized file name.
func BaseName(safeName string) string {
	base := strings.TrimSuffix(safeName, filepath.Ext(safeName))
	if base == "" {
		return fallbackBaseName
	}
	return base
}

// AttachmentName is the download name of the CSV produced for base.
func AttachmentName(base string) string {
	return base + "_extracted.csv"
}
