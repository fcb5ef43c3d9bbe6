package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zoobzio/deparse"
)

// EnvPrefix prefixes environment variables that override flags, so
// --max-depth can be set with DEPARSE_MAX_DEPTH.
const EnvPrefix = "DEPARSE"

const (
	formatAuto = "auto"
	formatJSON = "json"
	formatYAML = "yaml"
)

// DeparseCommand holds the configuration for the deparse command.
type DeparseCommand struct {
	v *viper.Viper
}

// GetRootCommand creates the deparse root command.
func GetRootCommand() (*cobra.Command, *DeparseCommand) {
	dc := &DeparseCommand{v: viper.New()}

	root := &cobra.Command{
		Use:   "deparse [file]",
		Short: "Render a parsed SQL SELECT AST back into SQL",
		Long: `deparse reads a SELECT statement AST, as produced by a SQL parser and
serialized to JSON or YAML, and prints the equivalent SQL on one line.
The AST is read from stdin when no file (or "-") is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          dc.run,
	}

	dc.RegisterFlags(root.Flags())

	return root, dc
}

// RegisterFlags adds the command flags to fs and binds them to the
// command configuration, with DEPARSE_* environment overrides.
func (dc *DeparseCommand) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("format", "f", formatAuto, "Input format: json, yaml or auto (by file extension)")
	fs.Bool("lenient", false, "Render unknown node types verbatim instead of failing")
	fs.Int("max-depth", deparse.DefaultMaxDepth, "Maximum sub-select nesting depth (0 disables the limit)")
	fs.String("log-level", "warn", "Log level: debug, info, warn or error")

	dc.v.SetEnvPrefix(EnvPrefix)
	dc.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	dc.v.AutomaticEnv()
	// BindPFlags only fails on a nil flag set.
	_ = dc.v.BindPFlags(fs)
}

// Format returns the configured input format.
func (dc *DeparseCommand) Format() string {
	return strings.ToLower(dc.v.GetString("format"))
}

// Lenient reports whether unknown node types are rendered verbatim.
func (dc *DeparseCommand) Lenient() bool {
	return dc.v.GetBool("lenient")
}

// MaxDepth returns the renderer nesting limit.
func (dc *DeparseCommand) MaxDepth() int {
	return dc.v.GetInt("max-depth")
}

// Logger builds the command logger, writing to w at the configured level.
func (dc *DeparseCommand) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(dc.v.GetString("log-level"))); err != nil {
		return nil, fmt.Errorf("invalid log-level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func (dc *DeparseCommand) run(cmd *cobra.Command, args []string) error {
	logger, err := dc.Logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	format, err := resolveFormat(dc.Format(), path)
	if err != nil {
		return err
	}

	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	logger.Debug("read AST", "path", path, "format", format, "bytes", len(data))

	var opts []deparse.DecodeOption
	if dc.Lenient() {
		opts = append(opts, deparse.Lenient())
	}

	var stmt deparse.Statement
	switch format {
	case formatYAML:
		stmt, err = deparse.DecodeYAML(data, opts...)
	default:
		stmt, err = deparse.DecodeJSON(data, opts...)
	}
	if err != nil {
		return err
	}

	renderer := &deparse.Renderer{MaxDepth: dc.MaxDepth()}
	sql, err := renderer.Render(stmt)
	if err != nil {
		var usErr deparse.UnsupportedStatementError
		if errors.As(err, &usErr) {
			logger.Info("statement rejected", "type", usErr.Type)
		}
		return err
	}
	logger.Debug("rendered statement", "length", len(sql))

	_, err = fmt.Fprintln(cmd.OutOrStdout(), sql)
	return err
}

// resolveFormat picks the decoder for path. Auto detection uses the file
// extension; stdin defaults to JSON.
func resolveFormat(format, path string) (string, error) {
	switch format {
	case formatJSON, formatYAML:
		return format, nil
	case formatAuto, "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return formatYAML, nil
		default:
			return formatJSON, nil
		}
	default:
		return "", fmt.Errorf("unknown format %q: expected json, yaml or auto", format)
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
