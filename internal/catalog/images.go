package catalog

import (
	"strings"
)

const (
	placeholderMarker = "image_not_available"
	imageVariant      = "standard_xlarge"

	defaultImageBase  = "https://via.placeholder.com/400x600/1976d2/ffffff?text="
	fallbackImageBase = "https://via.placeholder.com/300x400/"
)

// ImageURL builds a display URL from a provider thumbnail. It reports false
// when the path or extension is missing or the path is the provider's
// "image not available" placeholder.
func ImageURL(path, extension string) (string, bool) {
	if path == "" || extension == "" {
		return "", false
	}
	if strings.Contains(path, placeholderMarker) {
		return "", false
	}

	secure := strings.Replace(path, "http://", "https://", 1)
	return secure + "/" + imageVariant + "." + extension, true
}

// DefaultImage returns the portrait used when a record has no usable
// thumbnail: a known portrait for popular characters, otherwise a generated
// placeholder carrying the name.
func (t *Tables) DefaultImage(name string) string {
	if h, ok := t.heroes[name]; ok && h.Portrait != "" {
		return h.Portrait
	}
	return defaultImageBase + encodeURIComponent(name)
}

// FallbackImage returns the placeholder shown when an image fails to load
// on the client, tinted with the character's colour.
func (t *Tables) FallbackImage(name string) string {
	color := t.defaults.Color
	if h, ok := t.heroes[name]; ok && h.Color != "" {
		color = h.Color
	}
	return fallbackImageBase + color + "/ffffff?text=" + encodeURIComponent(name)
}

// encodeURIComponent percent-encodes every byte outside the unreserved set
// A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
