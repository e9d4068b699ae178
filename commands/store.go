package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylesync/editor"
	"stylesync/state"
	"stylesync/store"
	"stylesync/style"
)

func dbFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "db", Value: "stylesync.db", Usage: "scope store database `FILE`"}
}

func openStore(cmd *cli.Command, env *state.LocalEnv) (*store.Store, error) {
	s, err := store.Open(cmd.String("db"), env.Log)
	if err != nil {
		return nil, fmt.Errorf("unable to open scope store: %w", err)
	}
	return s, nil
}

// scopeID turns a human scope name into its stored id.
func scopeID(cmd *cli.Command) (string, error) {
	name := cmd.Args().First()
	if len(name) == 0 {
		return "", errors.New("no scope has been specified")
	}
	return store.ID(name)
}

func StoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Manages CSS of site, page, section, row and column scopes",
		Flags: []cli.Flag{dbFlag()},
		Commands: []*cli.Command{
			{
				Name:      "put",
				Usage:     "Stores CSS of a scope",
				Action:    runStorePut,
				ArgsUsage: "SCOPE SOURCE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Value: style.EditingContextSection.String(),
						Usage: "scope `LEVEL` (site, page, section, row or column)"},
				},
			},
			{
				Name:      "get",
				Usage:     "Prints CSS of a scope",
				Action:    runStoreGet,
				ArgsUsage: "SCOPE",
			},
			{
				Name:   "list",
				Usage:  "Lists stored scopes",
				Action: runStoreList,
				Flags:  []cli.Flag{formatFlag()},
			},
			{
				Name:      "delete",
				Usage:     "Removes a scope",
				Action:    runStoreDelete,
				ArgsUsage: "SCOPE",
			},
		},
	}
}

func runStorePut(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	id, err := scopeID(cmd)
	if err != nil {
		return err
	}
	text, err := readInput(cmd, env, cmd.Args().Get(1))
	if err != nil {
		return err
	}
	s, err := openStore(cmd, env)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, s.Close()) }()

	if err := s.Put(id, cmd.String("level"), text); err != nil {
		return err
	}
	env.Log.Named("store").Info("Scope stored", zap.String("scope", id), zap.String("level", cmd.String("level")))
	return nil
}

func runStoreGet(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	id, err := scopeID(cmd)
	if err != nil {
		return err
	}
	s, err := openStore(cmd, env)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, s.Close()) }()

	css, err := s.CSS(id)
	if err != nil {
		return err
	}
	return writeOutput(cmd, env, id+".css", []byte(css))
}

func runStoreList(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	s, err := openStore(cmd, env)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, s.Close()) }()

	recs, err := s.List()
	if err != nil {
		return err
	}
	data, err := encode(cmd.String("format"), recs)
	if err != nil {
		return fmt.Errorf("unable to encode scopes: %w", err)
	}
	return writeOutput(cmd, env, "scopes."+cmd.String("format"), data)
}

func runStoreDelete(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	id, err := scopeID(cmd)
	if err != nil {
		return err
	}
	s, err := openStore(cmd, env)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, s.Close()) }()

	return s.Delete(id)
}

func EditCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edits stored scope CSS through the property model",
		Action:    runEdit,
		ArgsUsage: "SCOPE [PROPERTY=VALUE...]",
		Flags: []cli.Flag{
			dbFlag(),
			&cli.StringFlag{Name: "site", Usage: "stored `SCOPE` holding site wide CSS"},
			&cli.StringFlag{Name: "page", Usage: "stored `SCOPE` of the page"},
			&cli.StringFlag{Name: "section", Usage: "stored `SCOPE` of the enclosing section"},
			&cli.StringFlag{Name: "overriding", Usage: "stored `SCOPE` directly above the edited one"},
			&cli.StringSliceFlag{Name: "clear", Usage: "`PROPERTY` to return to the inherited state, may be repeated"},
			&cli.StringFlag{Name: "raw", Usage: "replace scope CSS with the content of `FILE` as is"},
			formatFlag(),
		},
		CustomHelpTemplate: fmt.Sprintf(`%s
SCOPE:
    stored scope to edit, its level selects the editing context

PROPERTY=VALUE:
    property model names and values, e.g. backgroundColor=#fff padding=12
    writes to colours keep text readable against the background

Every change is written back to the store. Effective values of the touched
properties are printed at the end.
`, cli.CommandHelpTemplate),
	}
}

func runEdit(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("edit")

	id, err := scopeID(cmd)
	if err != nil {
		return err
	}
	updates, touched, err := assignments(cmd.Args().Tail())
	if err != nil {
		return err
	}
	var clears []style.Property
	if args := cmd.StringSlice("clear"); len(args) > 0 {
		if clears, err = properties(args); err != nil {
			return err
		}
	}
	raw, err := readInput(cmd, env, cmd.String("raw"))
	if err != nil {
		return err
	}

	s, err := openStore(cmd, env)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, s.Close()) }()

	rec, err := s.Get(id)
	if err != nil {
		return err
	}
	editing, err := rec.Context()
	if err != nil {
		return err
	}
	cascade, err := storedCascade(cmd, s, editing)
	if err != nil {
		return err
	}

	ed := editor.New(editing, rec.CSS, s.Recorder(rec.ID, rec.Level),
		editor.WithLogger(env.Log), editor.WithParser(env.Parser()),
		editor.WithCascade(cascade), editor.WithOrigin(env.Origin()))

	if len(cmd.String("raw")) > 0 {
		ed.EditRaw(raw)
	}
	for _, name := range clears {
		if err := ed.ClearProperty(name); err != nil {
			return err
		}
	}
	for _, u := range updates {
		if err := ed.UpdateProperty(u.name, u.value); err != nil {
			return err
		}
	}
	log.Info("Scope edited", zap.String("scope", rec.ID), zap.Stringer("session", ed.ID()),
		zap.Int("updated", len(updates)), zap.Int("cleared", len(clears)))

	results := make([]Resolution, 0, len(touched)+len(clears))
	for _, name := range append(touched, clears...) {
		r := resolution(name, ed.Effective(name))
		r.Overridden = ed.Overridden(name)
		r.Shadowed = ed.Shadowed(name)
		results = append(results, r)
	}
	data, err := encode(cmd.String("format"), results)
	if err != nil {
		return fmt.Errorf("unable to encode edit results: %w", err)
	}
	return writeOutput(cmd, env, "edited."+cmd.String("format"), data)
}

type assignment struct {
	name  style.Property
	value string
}

// assignments parses PROPERTY=VALUE arguments keeping their order, touched
// lists every property once.
func assignments(args []string) (out []assignment, touched []style.Property, err error) {
	seen := make(map[style.Property]bool, len(args))
	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			err = multierr.Append(err, fmt.Errorf("malformed assignment %q, PROPERTY=VALUE expected", a))
			continue
		}
		p := style.Property(strings.TrimSpace(name))
		if !style.Known(p) {
			err = multierr.Append(err, fmt.Errorf("%s: %w", name, style.ErrUnknownProperty))
			continue
		}
		out = append(out, assignment{name: p, value: value})
		if !seen[p] {
			seen[p] = true
			touched = append(touched, p)
		}
	}
	return out, touched, err
}

// storedCascade loads the peer scopes named by the command flags.
func storedCascade(cmd *cli.Command, s *store.Store, editing style.EditingContext) (c style.CascadeContext, err error) {
	c.Editing = editing
	for _, t := range []struct {
		flag string
		dst  *string
	}{
		{"site", &c.SiteCSS},
		{"page", &c.PageCSS},
		{"section", &c.SectionCSS},
		{"overriding", &c.OverridingCSS},
	} {
		name := cmd.String(t.flag)
		if len(name) == 0 {
			continue
		}
		id, err := store.ID(name)
		if err != nil {
			return c, err
		}
		if *t.dst, err = s.CSS(id); err != nil {
			return c, fmt.Errorf("unable to load %s scope: %w", t.flag, err)
		}
	}
	return c, nil
}
