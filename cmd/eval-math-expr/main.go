package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/jessevdk/go-flags"
	"github.com/karupanerura/eval-math-expr/internal/config"
	"github.com/karupanerura/eval-math-expr/internal/expression"
	"github.com/karupanerura/eval-math-expr/internal/types"
	"github.com/mattn/go-isatty"
)

type Option struct {
	Config    string `short:"c" long:"config" description:"[OPTIONAL] Config file (JSON or YAML)" required:"false"`
	Format    string `short:"o" long:"format" description:"[OPTIONAL] Output format" choice:"text" choice:"json" choice:"yaml" required:"false"`
	Precision int    `short:"p" long:"precision" description:"[OPTIONAL] Number of fractional digits of the result" default:"-1" default-mask:"6"`
	Tokens    bool   `long:"tokens" description:"[OPTIONAL] Print the token stream"`
	Tree      bool   `long:"tree" description:"[OPTIONAL] Print the expression tree"`
	Debug     bool   `long:"debug" description:"[OPTIONAL] Dump lexer and parser state to stderr"`
	Args      struct {
		Expression string `positional-arg-name:"EXPRESSION" description:"Arithmetic expression to evaluate"`
	} `positional-args:"yes" required:"yes"`
}

type evaluation struct {
	Expression string   `json:"expression" yaml:"expression"`
	Tokens     []string `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Tree       string   `json:"tree,omitempty" yaml:"tree,omitempty"`
	Result     string   `json:"result" yaml:"result"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "", log.LstdFlags)

	var opt Option
	parser := flags.NewParser(&opt, flags.HelpFlag|flags.PassDoubleDash)
	rest, err := parser.ParseArgs(escapeExpressionArg(args))
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return 0
		}
		fmt.Fprintln(stderr, err)
		parser.WriteHelp(stderr)
		return 1
	}
	if len(rest) != 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %q\n", rest)
		parser.WriteHelp(stderr)
		return 1
	}

	cfg, err := loadConfig(opt)
	if err != nil {
		logger.Printf("failed to load config: %v", err)
		return 1
	}

	parseExpr := expression.ParseExpr
	if cfg.Debug {
		parseExpr = expression.ParseExprWithDebugOutput
	}

	expr, err := parseExpr(opt.Args.Expression)
	if err != nil {
		var exception types.Exception
		if cfg.Format != config.FormatText && errors.As(err, &exception) {
			if err = dump(stderr, cfg.Format, exception.Exception()); err != nil {
				logger.Printf("failed to dump error: %v", err)
			}
			return 1
		}
		logger.Printf("failed to evaluate expression: %v", err)
		return 1
	}

	ret := evaluation{
		Expression: expr.Source,
		Result:     expression.FormatResult(expr.Evaluate(), cfg.Precision),
	}
	if opt.Tokens {
		ret.Tokens = expression.FormatTokenList(expr.Tokens)
	}
	if opt.Tree {
		ret.Tree = expr.Root.String()
	}

	if cfg.Format == config.FormatText {
		err = dumpText(stdout, expr, ret)
	} else {
		err = dump(stdout, cfg.Format, ret)
	}
	if err != nil {
		logger.Printf("failed to dump result: %v", err)
		return 1
	}
	return 0
}

func loadConfig(opt Option) (config.Config, error) {
	cfg := config.Default()
	if opt.Config != "" {
		var err error
		cfg, err = config.Load(opt.Config)
		if err != nil {
			return config.Config{}, err
		}
	}

	if opt.Format != "" {
		cfg.Format = opt.Format
	}
	if opt.Precision >= 0 {
		cfg.Precision = opt.Precision
	}
	if opt.Debug {
		cfg.Debug = true
	}
	return cfg, cfg.Validate()
}

// escapeExpressionArg moves an expression starting with a negative number or
// "-(" behind "--", so that it is not taken for a short flag.
func escapeExpressionArg(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if !looksLikeSignedExpression(arg) {
			continue
		}

		escaped := make([]string, 0, len(args)+1)
		escaped = append(escaped, args[:i]...)
		escaped = append(escaped, args[i+1:]...)
		return append(escaped, "--", arg)
	}
	return args
}

func looksLikeSignedExpression(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	c := arg[1]
	return ('0' <= c && c <= '9') || c == '.' || c == '('
}

func dumpText(w io.Writer, expr *expression.Expr, ret evaluation) error {
	if ret.Tokens != nil {
		if _, err := fmt.Fprintln(w, expression.FormatTokens(expr.Tokens)); err != nil {
			return fmt.Errorf("fmt.Fprintln: %w", err)
		}
	}
	if ret.Tree != "" {
		if _, err := fmt.Fprintln(w, ret.Tree); err != nil {
			return fmt.Errorf("fmt.Fprintln: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w, ret.Result); err != nil {
		return fmt.Errorf("fmt.Fprintln: %w", err)
	}
	return nil
}

func dump(w io.Writer, format string, v any) error {
	switch format {
	case config.FormatJSON:
		return dumpJSON(w, v)
	case config.FormatYAML:
		return dumpYAML(w, v)
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
}

func dumpJSON(w io.Writer, v any) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if isatty.IsTerminal(f.Fd()) {
			opts = append(opts, json.Colorize(json.DefaultColorScheme))
		}
	}

	b, err := json.MarshalIndentWithOption(v, "", "\t", opts...)
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}

func dumpYAML(w io.Writer, v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("yaml.Marshal: %w", err)
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	return nil
}
