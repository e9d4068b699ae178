package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"stylesync/css"
	"stylesync/state"
	"stylesync/style"
	"stylesync/utils/debug"
)

func ParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Extracts the property model from CSS text",
		Action:    runParse,
		ArgsUsage: "SOURCE",
		Flags:     []cli.Flag{formatFlag()},
		CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    CSS file of a single scope, "-" reads standard input
`, cli.CommandHelpTemplate),
	}
}

func runParse(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("parse")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	text, err := readInput(cmd, env, src)
	if err != nil {
		return err
	}

	props := env.Parser().Parse(text)
	log.Debug("CSS parsed", zap.String("source", src), zap.Int("properties", props.Count()))

	if env.Rpt != nil {
		sheet := css.NewParser(log).Parse([]byte(text), src)
		env.Rpt.StoreData("debug/"+filepath.Base(src)+".tree", []byte(debug.Stylesheet(sheet)+debug.Properties(props)))
	}

	data, err := encode(cmd.String("format"), props)
	if err != nil {
		return fmt.Errorf("unable to encode property model: %w", err)
	}
	return writeOutput(cmd, env, "model."+cmd.String("format"), data)
}

func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Renders a property model (YAML or JSON) as CSS text",
		Action:    runGenerate,
		ArgsUsage: "SOURCE",
		Flags:     []cli.Flag{contextFlag(style.EditingContextSection.String())},
		CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    property model file as produced by "parse", "-" reads standard input

Page context produces selector blocks (body, links, headers, paragraphs), any
other context produces bare declarations.
`, cli.CommandHelpTemplate),
	}
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	editing, err := editingContext(cmd)
	if err != nil {
		return err
	}
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	text, err := readInput(cmd, env, src)
	if err != nil {
		return err
	}
	props, err := decodeModel(text)
	if err != nil {
		return err
	}

	out := style.Generate(props, editing)
	log.Debug("CSS generated", zap.Stringer("context", editing), zap.Int("properties", props.Count()))
	return writeOutput(cmd, env, "generated.css", []byte(out))
}
