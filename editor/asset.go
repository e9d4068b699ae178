package editor

import (
	"slices"
	"strings"

	"github.com/maruel/natural"

	"stylesync/style"
)

// GalleryImage is an entry of the asset gallery.
type GalleryImage struct {
	ID            int    `json:"id" yaml:"id"`
	Path          string `json:"path" yaml:"path"`
	ThumbnailPath string `json:"thumbnail_path,omitempty" yaml:"thumbnail_path,omitempty"`
	Filename      string `json:"filename" yaml:"filename"`
}

// URL resolves the image location against origin.
func (img GalleryImage) URL(origin string) string {
	return AssetURL(origin, img.Path)
}

// AssetURL returns path verbatim when it already is absolute (starts with
// "http"), otherwise "{origin}/storage/{path}".
func AssetURL(origin, path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return strings.TrimRight(origin, "/") + "/storage/" + strings.TrimLeft(path, "/")
}

// SortGallery orders images by file name the way people count ("img2" before
// "img10"), ties are broken by ID.
func SortGallery(images []GalleryImage) {
	slices.SortStableFunc(images, func(a, b GalleryImage) int {
		switch {
		case a.Filename == b.Filename:
			return a.ID - b.ID
		case natural.Less(a.Filename, b.Filename):
			return -1
		default:
			return 1
		}
	})
}

// ChooseGalleryImage sets the background image of the scope to img.
func (e *Editor) ChooseGalleryImage(img GalleryImage) error {
	return e.UpdateProperty(style.PropBackgroundImage, img.URL(e.origin))
}
