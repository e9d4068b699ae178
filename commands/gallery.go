package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/h2non/filetype"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylesync/editor"
	"stylesync/state"
	"stylesync/style"
)

// ErrNotImage is reported for gallery files which do not hold an image.
var ErrNotImage = errors.New("not an image")

// galleryEntry is a gallery image with its resolved addresses.
type galleryEntry struct {
	ID           int    `yaml:"id" json:"id"`
	Filename     string `yaml:"filename" json:"filename"`
	URL          string `yaml:"url" json:"url"`
	ThumbnailURL string `yaml:"thumbnail,omitempty" json:"thumbnail,omitempty"`
}

func GalleryCommand() *cli.Command {
	return &cli.Command{
		Name:      "gallery",
		Usage:     "Lists gallery images or applies one as a scope background",
		Action:    runGallery,
		ArgsUsage: "SOURCE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "select", Aliases: []string{"s"}, Usage: "`ID` of the image to set as background of the scope"},
			&cli.StringFlag{Name: "css", Usage: "CSS `FILE` of the scope receiving the image, empty scope when absent"},
			contextFlag(style.EditingContextSection.String()),
			&cli.StringFlag{Name: "check", Usage: "verify images are present under `DIRECTORY` and hold image data"},
			formatFlag(),
		},
		CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    JSON list of gallery images ({"id", "path", "thumbnail_path", "filename"}),
    "-" reads standard input

Relative paths are served from the "storage" directory of the configured
assets origin. Without --select the sorted gallery is printed, with it the
regenerated CSS of the scope.
`, cli.CommandHelpTemplate),
	}
}

func runGallery(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("gallery")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no gallery has been specified")
	}
	text, err := readInput(cmd, env, src)
	if err != nil {
		return err
	}
	var images []editor.GalleryImage
	if err := json.Unmarshal([]byte(text), &images); err != nil {
		return fmt.Errorf("unable to decode gallery: %w", err)
	}
	editor.SortGallery(images)

	if dir := cmd.String("check"); len(dir) > 0 {
		if err := checkImages(dir, images); err != nil {
			return err
		}
		log.Debug("Gallery images verified", zap.String("dir", dir), zap.Int("images", len(images)))
	}

	if sel := cmd.String("select"); len(sel) > 0 {
		return selectImage(cmd, env, images, sel)
	}

	origin := env.Origin()
	entries := make([]galleryEntry, 0, len(images))
	for _, img := range images {
		e := galleryEntry{ID: img.ID, Filename: img.Filename, URL: img.URL(origin)}
		if len(img.ThumbnailPath) > 0 {
			e.ThumbnailURL = editor.AssetURL(origin, img.ThumbnailPath)
		}
		entries = append(entries, e)
	}
	data, err := encode(cmd.String("format"), entries)
	if err != nil {
		return fmt.Errorf("unable to encode gallery: %w", err)
	}
	return writeOutput(cmd, env, "gallery."+cmd.String("format"), data)
}

func selectImage(cmd *cli.Command, env *state.LocalEnv, images []editor.GalleryImage, sel string) error {
	id, err := strconv.Atoi(sel)
	if err != nil {
		return fmt.Errorf("bad image id %q: %w", sel, err)
	}
	idx := -1
	for i := range images {
		if images[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("image %d is not in the gallery", id)
	}
	editing, err := editingContext(cmd)
	if err != nil {
		return err
	}
	scope, err := readInput(cmd, env, cmd.String("css"))
	if err != nil {
		return err
	}

	var out string
	ed := editor.New(editing, scope, func(css string) { out = css },
		editor.WithLogger(env.Log), editor.WithParser(env.Parser()), editor.WithOrigin(env.Origin()))
	if err := ed.ChooseGalleryImage(images[idx]); err != nil {
		return err
	}
	return writeOutput(cmd, env, "background.css", []byte(out))
}

// checkImages makes sure every gallery entry exists under dir and is
// recognized as an image by its content. Remote images are skipped.
func checkImages(dir string, images []editor.GalleryImage) (err error) {
	for _, img := range images {
		if strings.HasPrefix(img.Path, "http") {
			continue
		}
		err = multierr.Append(err, checkImage(filepath.Join(dir, filepath.FromSlash(img.Path))))
	}
	return err
}

func checkImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to check gallery image: %w", err)
	}
	defer f.Close()

	// 262 bytes is all filetype needs to look at
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("unable to check gallery image: %w", err)
	}
	if !filetype.IsImage(head[:n]) {
		return fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	return nil
}
