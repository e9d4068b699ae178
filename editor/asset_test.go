package editor

import (
	"encoding/json"
	"strings"
	"testing"

	"stylesync/style"
)

func TestAssetURL(t *testing.T) {
	tests := []struct {
		origin string
		path   string
		want   string
	}{
		{"https://site.example", "images/a.png", "https://site.example/storage/images/a.png"},
		{"https://site.example/", "/images/a.png", "https://site.example/storage/images/a.png"},
		{"https://site.example", "https://cdn.example/a.png", "https://cdn.example/a.png"},
		{"https://site.example", "http://cdn.example/a.png", "http://cdn.example/a.png"},
		{"", "a.png", "/storage/a.png"},
	}
	for _, tt := range tests {
		if got := AssetURL(tt.origin, tt.path); got != tt.want {
			t.Errorf("AssetURL(%q, %q) = %q, want %q", tt.origin, tt.path, got, tt.want)
		}
	}
}

func TestGalleryImage_JSON(t *testing.T) {
	var images []GalleryImage
	data := `[{"id": 3, "path": "g/img10.png", "filename": "img10.png"},
	          {"id": 1, "path": "g/img2.png", "thumbnail_path": "g/t/img2.png", "filename": "img2.png"}]`
	if err := json.Unmarshal([]byte(data), &images); err != nil {
		t.Fatal(err)
	}
	if images[1].ThumbnailPath != "g/t/img2.png" {
		t.Errorf("ThumbnailPath = %q", images[1].ThumbnailPath)
	}

	out, err := json.Marshal(images[0])
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "thumbnail_path") {
		t.Errorf("empty thumbnail must be omitted: %s", out)
	}
}

func TestSortGallery(t *testing.T) {
	images := []GalleryImage{
		{ID: 3, Filename: "img10.png"},
		{ID: 2, Filename: "img2.png"},
		{ID: 1, Filename: "img2.png"},
		{ID: 4, Filename: "banner.jpg"},
	}
	SortGallery(images)

	want := []int{4, 1, 2, 3}
	for i, img := range images {
		if img.ID != want[i] {
			t.Fatalf("order = %+v", images)
		}
	}
}

func TestChooseGalleryImage(t *testing.T) {
	var got string
	e := New(style.EditingContextSection, "", func(css string) { got = css }, WithOrigin("https://site.example"))

	if err := e.ChooseGalleryImage(GalleryImage{ID: 1, Path: "uploads/hero.jpg"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `background-image: url("https://site.example/storage/uploads/hero.jpg");`) {
		t.Errorf("emitted %q", got)
	}
	if !strings.Contains(got, "background-size: cover;") {
		t.Errorf("image defaults not pinned: %q", got)
	}
}
