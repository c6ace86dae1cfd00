package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/pinelint/internal/cli"
	"github.com/leapstack-labs/pinelint/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateCLIDocs writes index.md plus one page per command. Subcommands
// get their own page named after the command path, e.g. hook-install.md.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()
	if err := writeDoc(outDir, "index.md", cliIndex(rootCmd)); err != nil {
		return err
	}

	for _, cmd := range documented(rootCmd) {
		if err := writeCommandPages(cmd, outDir); err != nil {
			return err
		}
	}
	return nil
}

func writeCommandPages(cmd *cobra.Command, outDir string) error {
	if err := writeDoc(outDir, pageName(cmd), commandPage(cmd)); err != nil {
		return fmt.Errorf("failed to generate page for %s: %w", cmd.CommandPath(), err)
	}
	for _, sub := range documented(cmd) {
		if err := writeCommandPages(sub, outDir); err != nil {
			return err
		}
	}
	return nil
}

func writeDoc(outDir, name string, w *MarkdownWriter) error {
	if err := os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated %s", name)
	return nil
}

// documented returns the visible subcommands of cmd.
func documented(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, sub := range cmd.Commands() {
		if sub.Hidden || sub.Name() == "help" || sub.Name() == "__complete" {
			continue
		}
		out = append(out, sub)
	}
	return out
}

// pageName maps "pinelint hook install" to "hook-install.md".
func pageName(cmd *cobra.Command) string {
	path := strings.Fields(cmd.CommandPath())
	return strings.Join(path[1:], "-") + ".md"
}

func commandLink(cmd *cobra.Command) string {
	return fmt.Sprintf("[%s](%s)", InlineCode(cmd.Name()), pageName(cmd))
}

func cliIndex(rootCmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for pinelint")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("pinelint checks Pine Script files against structural rules and rewrites them to comply.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/pinelint/cmd/pinelint@latest")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range documented(rootCmd) {
		rows = append(rows, []string{commandLink(cmd), cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph("Every run setting of the config file can be set from the environment. " +
		"Nested keys use a double underscore. Flags win over the environment, which wins over the file.")
	w.Table([]string{"Variable", "Description"}, envRows())

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "No finding at or above `fail_on`, and `fix --check` found nothing to change"},
		{InlineCode("1"), "Findings at or above `fail_on`, files `fix --check` would change, or an error on stderr"},
	})
	return w
}

// envRows lists the environment variable of every run setting.
func envRows() [][]string {
	rows := [][]string{{InlineCode(config.EnvPrefix + "VERBOSE"), "Enable debug logging"}}
	for _, f := range getConfigSchema() {
		if f.Category != "run" {
			continue
		}
		name := config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, ".", "__"))
		rows = append(rows, []string{InlineCode(name), f.Description})
	}
	return rows
}

func commandPage(cmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	title := strings.TrimPrefix(cmd.CommandPath(), "pinelint ")
	w.Frontmatter(title, cmd.Short)
	w.GeneratedMarker()

	w.Header(1, title)
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	if cmd.HasSubCommands() {
		w.CodeBlock("bash", cmd.CommandPath()+" <subcommand> [options]")
	} else {
		w.CodeBlock("bash", cmd.UseLine())
	}

	if subs := documented(cmd); len(subs) > 0 {
		w.Header(2, "Subcommands")
		var rows [][]string
		for _, sub := range subs {
			rows = append(rows, []string{commandLink(sub), cleanDescription(sub.Short)})
		}
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	if cmd.HasParent() {
		w.Paragraph(fmt.Sprintf("Global options are listed in the [CLI reference](index.md). See also %s.",
			parentLink(cmd.Parent())))
	}
	return w
}

func parentLink(parent *cobra.Command) string {
	if !parent.HasParent() {
		return "[`pinelint`](index.md)"
	}
	return fmt.Sprintf("[%s](%s)", InlineCode(parent.CommandPath()), pageName(parent))
}

// writeFlagsTable writes one row per visible flag. Empty slice defaults
// render as blank cells.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, flagDefault(f), cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

func flagDefault(f *pflag.Flag) string {
	switch def := f.DefValue; {
	case def == "", def == "[]":
		return ""
	case f.Value.Type() == "bool":
		return def
	default:
		return InlineCode(def)
	}
}

// cleanExample dedents example text by the smallest indentation of its
// non-blank lines.
func cleanExample(example string) string {
	lines := strings.Split(strings.Trim(example, "\n"), "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if n := len(line) - len(strings.TrimLeft(line, " \t")); indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
