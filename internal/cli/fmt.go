package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	fmtCheck bool
	fmtWrite bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [paths...]",
	Short: "Format topology files",
	Long: `Formats .pkl and .yaml topology files to a canonical style.

By default, formats all topology files in the current directory.
Use --check to verify formatting without making changes.
Use --write to write changes back to files (default).

Formatting rules:
  - .pkl: trailing whitespace trimmed, one trailing newline, no runs of blank lines
  - .yaml: re-encoded with 2 space indentation, comments kept`,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Check formatting without making changes (exit 1 if not formatted)")
	fmtCmd.Flags().BoolVar(&fmtWrite, "write", true, "Write formatted output back to files")
}

func runFmt(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if info.IsDir() {
			entries, err := findTopologyFiles(p)
			if err != nil {
				return err
			}
			files = append(files, entries...)
		} else {
			files = append(files, p)
		}
	}

	if len(files) == 0 {
		fmt.Fprintln(out, "No topology files found.")
		return nil
	}

	unformatted := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		formatted, err := formatFile(file, string(data))
		if err != nil {
			return fmt.Errorf("failed to format %s: %w", file, err)
		}

		if string(data) != formatted {
			unformatted++
			if fmtCheck {
				fmt.Fprintf(out, "%s: not formatted\n", file)
			} else if fmtWrite {
				if err := os.WriteFile(file, []byte(formatted), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", file, err)
				}
				fmt.Fprintf(out, "%s: formatted\n", file)
			}
		}
	}

	if fmtCheck && unformatted > 0 {
		return fmt.Errorf("%d file(s) not formatted", unformatted)
	}

	if unformatted == 0 {
		fmt.Fprintf(out, "All %d file(s) are properly formatted.\n", len(files))
	} else if !fmtCheck {
		fmt.Fprintf(out, "Formatted %d file(s).\n", unformatted)
	}

	return nil
}

func isTopologyFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pkl", ".yaml", ".yml":
		return true
	}
	return false
}

func findTopologyFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && path != dir && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if !info.IsDir() && isTopologyFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func formatFile(path, content string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML(content)
	default:
		return formatPkl(content), nil
	}
}

// formatYAML re-encodes every document in content with 2 space indentation.
func formatYAML(content string) (string, error) {
	dec := yaml.NewDecoder(strings.NewReader(content))
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
		if err := enc.Encode(&doc); err != nil {
			return "", err
		}
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatPkl applies basic formatting rules to PKL content.
func formatPkl(content string) string {
	lines := strings.Split(content, "\n")
	var formatted []string

	for _, line := range lines {
		// Trim trailing whitespace
		line = strings.TrimRight(line, " \t")
		formatted = append(formatted, line)
	}

	result := strings.Join(formatted, "\n")

	// Ensure trailing newline
	if !strings.HasSuffix(result, "\n") {
		result += "\n"
	}

	// Remove multiple consecutive blank lines (keep max 1)
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}

	return result
}
