package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cairos/internal/config"
	"github.com/Iron-Ham/cairos/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the cairos editor.

Built-in themes are selected with tui.theme. A custom theme is a YAML file
named by tui.theme_file; export a built-in theme to get a starting point.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a built-in theme to YAML for customization.

If no output file is specified, the YAML is printed to stdout.

Examples:
  cairos config theme export nord
  cairos config theme export nord ~/.config/cairos/theme.yaml
  cairos config set tui.theme_file ~/.config/cairos/theme.yaml`,
	Args:         cobra.RangeArgs(1, 2),
	SilenceUsage: true,
	RunE:         runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:          "info <theme-name>",
	Short:        "Show the colors of a theme",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runThemeInfo,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeInfoCmd)
	configCmd.AddCommand(themeCmd)
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	current := config.Get().TUI

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		marker := " "
		if name == current.Theme && current.ThemeFile == "" {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, name)
	}
	if current.ThemeFile != "" {
		fmt.Fprintf(out, "\nTheme file in use: %s\n", current.ThemeFile)
	}
	return nil
}

func unknownThemeError(name string) error {
	return fmt.Errorf("unknown theme: %s\n\nRun 'cairos config theme list' to see available themes", name)
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !styles.IsValidTheme(name) {
		return unknownThemeError(name)
	}

	data, err := styles.ExportTheme(styles.ThemeName(name))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(out, "Theme exported to: %s\n", outputPath)
		return nil
	}

	_, err = out.Write(data)
	return err
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !styles.IsValidTheme(name) {
		return unknownThemeError(name)
	}

	out := cmd.OutOrStdout()
	palette := styles.GetPalette(styles.ThemeName(name))
	fmt.Fprintf(out, "Theme: %s\n", name)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Base Colors:")
	fmt.Fprintf(out, "  Primary:   %s\n", palette.Primary)
	fmt.Fprintf(out, "  Secondary: %s\n", palette.Secondary)
	fmt.Fprintf(out, "  Warning:   %s\n", palette.Warning)
	fmt.Fprintf(out, "  Error:     %s\n", palette.Error)
	fmt.Fprintf(out, "  Muted:     %s\n", palette.Muted)
	fmt.Fprintf(out, "  Surface:   %s\n", palette.Surface)
	fmt.Fprintf(out, "  Text:      %s\n", palette.Text)
	fmt.Fprintf(out, "  Border:    %s\n", palette.Border)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Grid Colors:")
	fmt.Fprintf(out, "  Cursor:    %s on %s\n", palette.CursorFg, palette.CursorBg)
	fmt.Fprintf(out, "  Filtered:  %s\n", palette.Filtered)
	return nil
}
