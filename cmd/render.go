package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/folioworks/folio/internal/markdown"
	"github.com/folioworks/folio/internal/readme"
)

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render a Markdown file to an HTML fragment",
	Long: `Renders a Markdown file (or stdin when the argument is "-" or missing) with the
configured engine and prints the HTML fragment. When stdout is a terminal the
document is shown styled for the terminal instead; pass --terminal=false to
force HTML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("engine", "", "renderer engine: minimal or commonmark (defaults to config)")
	renderCmd.Flags().Bool("terminal", false, "render for the terminal (default: when stdout is a terminal)")
	renderCmd.Flags().Int("width", 80, "word wrap width for terminal output")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	terminal, _ := cmd.Flags().GetBool("terminal")
	if !cmd.Flags().Changed("terminal") {
		if f, ok := cmd.OutOrStdout().(*os.File); ok {
			terminal = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}

	out := cmd.OutOrStdout()
	if terminal {
		width, _ := cmd.Flags().GetInt("width")
		styled, err := markdown.RenderTerminal(source, width)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, styled)
		return err
	}

	engine, _ := cmd.Flags().GetString("engine")
	renderer, err := newRenderer(cfg, engine)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Rendering with %s engine\n", renderer.Name())
	}
	_, err = fmt.Fprintln(out, renderer.Render(source))
	return err
}

func readSource(cmd *cobra.Command, args []string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		r, name = f, args[0]
	}

	data, err := io.ReadAll(io.LimitReader(r, readme.MaxBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}
