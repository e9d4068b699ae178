package commands

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylesync/state"
	"stylesync/style"
)

// Resolution is the cascade outcome for one property.
type Resolution struct {
	Property   style.Property `yaml:"property" json:"property"`
	Value      string         `yaml:"value,omitempty" json:"value,omitempty"`
	Source     style.Source   `yaml:"source,omitempty" json:"source,omitempty"`
	Overridden bool           `yaml:"overridden,omitempty" json:"overridden,omitempty"`
	Shadowed   bool           `yaml:"shadowed,omitempty" json:"shadowed,omitempty"`
}

func cascadeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "site", Usage: "site wide CSS `FILE`"},
		&cli.StringFlag{Name: "page", Usage: "page CSS `FILE`"},
		&cli.StringFlag{Name: "section", Usage: "CSS `FILE` of the enclosing section"},
		&cli.StringFlag{Name: "overriding", Usage: "CSS `FILE` of the scope directly above the edited one"},
	}
}

// loadCascade reads the peer scope files named on the command line.
func loadCascade(cmd *cli.Command, env *state.LocalEnv, editing style.EditingContext) (c style.CascadeContext, err error) {
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
		if *t.dst, err = readInput(cmd, env, cmd.String(t.flag)); err != nil {
			return c, fmt.Errorf("unable to load %s scope: %w", t.flag, err)
		}
	}
	return c, nil
}

// properties converts command arguments, all properties are used when none
// are given. Unknown names are collected rather than stopping at the first.
func properties(args []string) ([]style.Property, error) {
	if len(args) == 0 {
		return style.AllProperties(), nil
	}
	var (
		err   error
		names = make([]style.Property, 0, len(args))
	)
	for _, a := range args {
		p := style.Property(a)
		if !style.Known(p) {
			err = multierr.Append(err, fmt.Errorf("%s: %w", a, style.ErrUnknownProperty))
			continue
		}
		names = append(names, p)
	}
	return names, err
}

func ResolveCommand() *cli.Command {
	return &cli.Command{
		Name:   "resolve",
		Usage:  "Resolves inherited and effective property values over the cascade",
		Action: runResolve,
		Flags: append(cascadeFlags(),
			&cli.StringFlag{Name: "local", Usage: "CSS `FILE` of the edited scope, effective values are reported when present"},
			contextFlag(style.EditingContextSection.String()),
			formatFlag(),
		),
		ArgsUsage: "[PROPERTY...]",
		CustomHelpTemplate: fmt.Sprintf(`%s
PROPERTY:
    property model names (backgroundColor, h2FontSize, linkHoverColor, ...)
    if absent - all properties with a value are reported

Site CSS is always consulted, page CSS unless the page itself is edited,
section CSS only when editing rows and columns. The last tier declaring a
property wins.
`, cli.CommandHelpTemplate),
	}
}

func runResolve(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("resolve")

	editing, err := editingContext(cmd)
	if err != nil {
		return err
	}
	names, err := properties(cmd.Args().Slice())
	if err != nil {
		return err
	}
	cascade, err := loadCascade(cmd, env, editing)
	if err != nil {
		return err
	}
	localCSS, err := readInput(cmd, env, cmd.String("local"))
	if err != nil {
		return err
	}

	parser := env.Parser()
	resolver := style.NewResolver(parser)
	local := parser.Parse(localCSS)
	all := cmd.Args().Len() == 0

	results := make([]Resolution, 0, len(names))
	for _, name := range names {
		var r Resolution
		if len(cmd.String("local")) > 0 {
			r = resolution(name, resolver.Effective(local, name, cascade))
			r.Shadowed = resolver.Shadowed(local, name, cascade)
		} else {
			r = resolution(name, resolver.Inherited(name, cascade))
		}
		r.Overridden = resolver.Overridden(name, cascade.OverridingCSS)
		if all && r.Source == style.SourceNone && !r.Overridden {
			continue
		}
		results = append(results, r)
	}
	log.Debug("Properties resolved", zap.Stringer("context", editing), zap.Int("requested", len(names)), zap.Int("reported", len(results)))

	data, err := encode(cmd.String("format"), results)
	if err != nil {
		return fmt.Errorf("unable to encode resolution: %w", err)
	}
	return writeOutput(cmd, env, "resolved."+cmd.String("format"), data)
}

func resolution(name style.Property, in style.Inherited) Resolution {
	return Resolution{Property: name, Value: in.Value, Source: in.Source}
}

func OverriddenCommand() *cli.Command {
	return &cli.Command{
		Name:      "overridden",
		Usage:     "Reports which properties are declared by the overriding scope",
		Action:    runOverridden,
		ArgsUsage: "OVERRIDING PROPERTY...",
		Flags:     []cli.Flag{formatFlag()},
		CustomHelpTemplate: fmt.Sprintf(`%s
OVERRIDING:
    CSS file of the scope directly above the edited one, "-" reads standard input

A property is reported as overridden whenever the scope declares it, values
are not compared.
`, cli.CommandHelpTemplate),
	}
}

func runOverridden(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("overridden")

	if cmd.Args().Len() < 2 {
		return fmt.Errorf("overriding scope and at least one property are required")
	}
	names, err := properties(cmd.Args().Slice()[1:])
	if err != nil {
		return err
	}
	overriding, err := readInput(cmd, env, cmd.Args().First())
	if err != nil {
		return err
	}

	resolver := style.NewResolver(env.Parser())
	results := make(map[style.Property]bool, len(names))
	for _, name := range names {
		results[name] = resolver.Overridden(name, overriding)
	}
	log.Debug("Overrides detected", zap.Int("properties", len(names)))

	data, err := encode(cmd.String("format"), results)
	if err != nil {
		return fmt.Errorf("unable to encode overrides: %w", err)
	}
	return writeOutput(cmd, env, "overridden."+cmd.String("format"), data)
}
