// Package output renders scan findings in the supported output formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ksysoev/todo-scan/pkg/core"
	"github.com/sethvargo/go-githubactions"
	"gopkg.in/yaml.v3"
)

// Formatter writes the complete set of findings to w in a single pass
type Formatter interface {
	Format(w io.Writer, findings []core.Finding) error
}

// ForFormat returns the formatter for the named format. Unknown names fall
// back to console output.
func ForFormat(format string) Formatter {
	switch format {
	case core.OutputJSON:
		return JSONFormatter{}
	case core.OutputCSV:
		return CSVFormatter{}
	case core.OutputYAML:
		return YAMLFormatter{}
	case core.OutputGitHub:
		return AnnotationFormatter{}
	default:
		return ConsoleFormatter{}
	}
}

// ConsoleFormatter prints each finding as a human readable block
type ConsoleFormatter struct{}

func (ConsoleFormatter) Format(w io.Writer, findings []core.Finding) error {
	for _, f := range findings {
		kind := strings.TrimSuffix(string(f.Kind), ":")
		if _, err := fmt.Fprintf(w, "\n%s: %s\nFile: %s:%d\n\n", kind, f.Text, f.FilePath, f.Line); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter prints all findings as one indented JSON array
type JSONFormatter struct{}

func (JSONFormatter) Format(w io.Writer, findings []core.Finding) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(nonNil(findings))
}

// CSVFormatter prints a header row followed by one row per finding.
// The text column is always quoted and never escaped.
type CSVFormatter struct{}

func (CSVFormatter) Format(w io.Writer, findings []core.Finding) error {
	if _, err := fmt.Fprintln(w, "Type,Text,File,Line"); err != nil {
		return err
	}
	for _, f := range findings {
		if _, err := fmt.Fprintf(w, "%s,\"%s\",%s,%d\n", f.Kind, f.Text, f.FilePath, f.Line); err != nil {
			return err
		}
	}
	return nil
}

// YAMLFormatter prints all findings as a YAML sequence
type YAMLFormatter struct{}

func (YAMLFormatter) Format(w io.Writer, findings []core.Finding) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(nonNil(findings)); err != nil {
		return fmt.Errorf("failed to encode findings as yaml: %w", err)
	}
	return enc.Close()
}

// AnnotationFormatter prints one GitHub Actions warning annotation per finding
type AnnotationFormatter struct{}

func (AnnotationFormatter) Format(w io.Writer, findings []core.Finding) error {
	action := githubactions.New(githubactions.WithWriter(w))
	for _, f := range findings {
		action.WithFieldsMap(map[string]string{
			"file": f.FilePath,
			"line": strconv.Itoa(f.Line),
		}).Warningf("%s: %s", f.Kind, f.Text)
	}
	return nil
}

func nonNil(findings []core.Finding) []core.Finding {
	if findings == nil {
		return []core.Finding{}
	}
	return findings
}
