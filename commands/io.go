// Package commands implements the program subcommands.
package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"stylesync/state"
	"stylesync/style"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: formatYAML, Usage: "output `FORMAT` (yaml or json)"}
}

func contextFlag(value string) *cli.StringFlag {
	return &cli.StringFlag{Name: "context", Aliases: []string{"x"}, Value: value,
		Usage: "editing `CONTEXT` (one of page, section, row, column)"}
}

func editingContext(cmd *cli.Command) (style.EditingContext, error) {
	ctx, err := style.ParseEditingContext(cmd.String("context"))
	if err != nil {
		return ctx, fmt.Errorf("unable to use editing context: %w", err)
	}
	return ctx, nil
}

// readInput returns the content of the named file, "-" reads standard input.
// A copy of every file read ends up in the debug report.
func readInput(cmd *cli.Command, env *state.LocalEnv, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "-" {
		data, err := io.ReadAll(cmd.Root().Reader)
		if err != nil {
			return "", fmt.Errorf("unable to read standard input: %w", err)
		}
		env.Rpt.StoreData("input/stdin", data)
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read input: %w", err)
	}
	if err := env.Rpt.StoreCopy("input/"+filepath.Base(path), path); err != nil {
		env.Log.Warn("Unable to store input in the report", zap.String("file", path), zap.Error(err))
	}
	return string(data), nil
}

// writeOutput sends the command result to the program output and keeps it in
// the debug report under name.
func writeOutput(cmd *cli.Command, env *state.LocalEnv, name string, data []byte) error {
	env.Rpt.StoreData("output/"+name, data)
	if _, err := cmd.Root().Writer.Write(data); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}

func encode(format string, v any) ([]byte, error) {
	switch format {
	case formatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// decodeModel reads a property model, JSON being a subset of YAML the same
// decoder handles both.
func decodeModel(text string) (*style.Properties, error) {
	props := &style.Properties{}
	dec := yaml.NewDecoder(bytes.NewReader([]byte(text)))
	dec.KnownFields(true)
	if err := dec.Decode(props); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to decode property model: %w", err)
	}
	return props, nil
}
