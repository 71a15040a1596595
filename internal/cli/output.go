// Package cli implements the lumina command line tools: constant folding
// of expression files, an interactive REPL, and a watch mode.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/lumina-lang/lumina/internal/evaluate"
	"github.com/lumina-lang/lumina/internal/parser"
)

// Result describes the outcome of folding one expression.
type Result struct {
	Input       string   `yaml:"input"`
	Folded      string   `yaml:"folded,omitempty"`
	Constant    bool     `yaml:"constant"`
	Diagnostics []string `yaml:"diagnostics,omitempty"`
	Error       string   `yaml:"error,omitempty"`
}

// FileResult groups the results of one input file.
type FileResult struct {
	Path    string   `yaml:"path,omitempty"`
	Results []Result `yaml:"results"`
}

// foldInput parses and folds a single expression, collecting the
// diagnostics the fold produced.
func foldInput(input string) Result {
	result := Result{Input: input}
	expr, err := parser.Parse(input)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	ctx := evaluate.NewFoldingContext()
	folded := evaluate.Fold(ctx, expr)
	result.Folded = folded.String()
	result.Constant = evaluate.IsActuallyConstant(folded)
	for _, message := range ctx.Messages().Messages() {
		result.Diagnostics = append(result.Diagnostics, message.Text)
	}
	return result
}

// foldFile folds every expression in a file: one expression per line,
// blank lines and ! comments skipped.
func foldFile(path string) (FileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	out := FileResult{Path: path}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		out.Results = append(out.Results, foldInput(line))
	}
	if err := scanner.Err(); err != nil {
		return FileResult{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return out, nil
}

var (
	foldedColor      = color.New(color.FgGreen)
	unevaluatedColor = color.New(color.FgCyan)
	diagnosticColor  = color.New(color.FgYellow)
	errorColor       = color.New(color.FgRed)
)

// render writes file results in the selected format.
func render(w io.Writer, format string, files []FileResult) error {
	if format == "yaml" {
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(files)
	}
	for _, file := range files {
		if file.Path != "" {
			fmt.Fprintf(w, "%s:\n", file.Path)
		}
		for _, result := range file.Results {
			renderResult(w, result)
		}
	}
	return nil
}

func renderResult(w io.Writer, result Result) {
	switch {
	case result.Error != "":
		fmt.Fprintf(w, "  %s  %s\n", result.Input, errorColor.Sprintf("error: %s", result.Error))
	case result.Constant:
		fmt.Fprintf(w, "  %s  =>  %s\n", result.Input, foldedColor.Sprint(result.Folded))
	default:
		fmt.Fprintf(w, "  %s  =>  %s\n", result.Input, unevaluatedColor.Sprint("(not folded)"))
	}
	for _, diagnostic := range result.Diagnostics {
		fmt.Fprintf(w, "    %s\n", diagnosticColor.Sprint(diagnostic))
	}
}
