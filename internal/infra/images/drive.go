package images

import (
	"fmt"
	"regexp"
	"strings"
)

// Size presets for drive thumbnails, matching the widths the site's
// layout actually renders at.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
	SizeXLarge = "xlarge"
)

var sizeMap = map[string]string{
	SizeSmall:  "w400",
	SizeMedium: "w800",
	SizeLarge:  "w1000",
	SizeXLarge: "w1920",
}

// Share-link formats seen in the catalog data. Order matters: the most
// specific pattern wins.
var fileIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`),
}

// ExtractFileID pulls the opaque file id out of a drive share link.
func ExtractFileID(link string) string {
	for _, p := range fileIDPatterns {
		if m := p.FindStringSubmatch(link); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

// DriveImageURL converts a drive share link into a displayable thumbnail
// URL at the requested size. Returns "" for placeholders and links no
// pattern recognizes; callers fall back to a placeholder image.
// The file must be shared as "anyone with the link can view".
func DriveImageURL(link, size string) string {
	if link == "" || strings.Contains(link, "YOUR_FILE_ID") || strings.Contains(link, "placeholder") {
		return ""
	}

	fileID := ExtractFileID(link)
	if fileID == "" {
		return ""
	}

	sz, ok := sizeMap[size]
	if !ok {
		sz = sizeMap[SizeLarge]
	}

	return fmt.Sprintf("https://drive.google.com/thumbnail?id=%s&sz=%s", fileID, sz)
}
