package proofing

import (
	"regexp"
	"strings"
)

const (
	FormatWindows   = "windows"
	FormatLightroom = "lightroom"
	FormatMacOS     = "macos"
)

var extension = regexp.MustCompile(`\.[^/.]+$`)

// ExportFormat is one plain-text rendering of a list of file names.
type ExportFormat struct {
	ID       string
	Title    string
	Filename string
	Content  string
}

// BaseName strips the final extension from a file name.
func BaseName(fileName string) string {
	return extension.ReplaceAllString(fileName, "")
}

// WindowsFormat renders a Windows Explorer search: a OR b OR c.
func WindowsFormat(fileNames []string) string {
	return strings.Join(baseNames(fileNames), " OR ")
}

// LightroomFormat renders a Lightroom filter: a, b, c.
func LightroomFormat(fileNames []string) string {
	return strings.Join(baseNames(fileNames), ", ")
}

// MacOSFormat renders a Finder search, quoting names that contain spaces.
func MacOSFormat(fileNames []string) string {
	names := baseNames(fileNames)
	for i, name := range names {
		if strings.Contains(name, " ") {
			names[i] = `"` + name + `"`
		}
	}
	return strings.Join(names, " OR ")
}

// Formats renders every supported export format.
func Formats(fileNames []string) []ExportFormat {
	return []ExportFormat{
		{ID: FormatWindows, Title: "Windows Explorer", Filename: "windows_search.txt", Content: WindowsFormat(fileNames)},
		{ID: FormatLightroom, Title: "Adobe Lightroom", Filename: "lightroom_filter.txt", Content: LightroomFormat(fileNames)},
		{ID: FormatMacOS, Title: "macOS Finder", Filename: "macos_search.txt", Content: MacOSFormat(fileNames)},
	}
}

// FindFormat returns the export format with the given id.
func FindFormat(fileNames []string, id string) (ExportFormat, bool) {
	for _, f := range Formats(fileNames) {
		if f.ID == id {
			return f, true
		}
	}
	return ExportFormat{}, false
}

func baseNames(fileNames []string) []string {
	out := make([]string, len(fileNames))
	for i, name := range fileNames {
		out[i] = BaseName(name)
	}
	return out
}
