package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/themekit/internal/catalog"
)

func init() {
	rootCmd.AddCommand(stylesCmd)
	rootCmd.AddCommand(themesCmd)
	themesSel.bind(themesCmd)
}

// StyleInfo describes one available style.
type StyleInfo struct {
	Name         string   `json:"name"`
	DefaultTheme string   `json:"default_theme,omitempty"`
	Themes       []string `json:"themes"`
	Root         string   `json:"root"`
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List available styles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := openCatalog()
		names, err := cat.Styles()
		if err != nil {
			return err
		}

		infos := make([]StyleInfo, 0, len(names))
		for _, name := range names {
			info, err := describeStyle(cat, name)
			if err != nil {
				return err
			}
			infos = append(infos, info)
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, infos)
		}

		if len(infos) == 0 {
			fmt.Fprintln(os.Stdout, "No styles found.")
			return nil
		}

		current := currentConfig().Style
		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			name := info.Name
			if name == current {
				name = colorize(name+" *", colorGreen)
			}
			rows = append(rows, []string{name, info.DefaultTheme, strconv.Itoa(len(info.Themes)), info.Root})
		}
		return writeTable(os.Stdout, []string{"STYLE", "DEFAULT THEME", "THEMES", "SOURCE"}, rows)
	},
}

func describeStyle(cat *catalog.Layered, name string) (StyleInfo, error) {
	themes, err := cat.Themes(name)
	if err != nil {
		return StyleInfo{}, err
	}
	info := StyleInfo{Name: name, Themes: themes, Root: cat.StyleRoot(name)}

	// A broken descriptor still lists the style; selecting it reports the error.
	if doc, err := cat.Descriptor(name); err == nil {
		info.DefaultTheme = doc.GetFields()["default_theme"].GetStringValue()
	}
	if info.DefaultTheme == "" && len(themes) > 0 {
		info.DefaultTheme = themes[0]
	}
	return info, nil
}

var themesSel selection

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the themes of a style",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), themesSel, sessionOptions{})
		if err != nil {
			return err
		}
		defer s.Close()

		m := s.manager
		themes := m.Themes()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, themes)
		}

		rows := make([][]string, 0, len(themes))
		for _, theme := range themes {
			rows = append(rows, []string{theme, formatYesNo(theme == m.CurrentTheme())})
		}
		fmt.Fprintf(os.Stdout, "Style %s (%s)\n", m.CurrentStyle(), strings.TrimSpace(m.CurrentStylePath()))
		return writeTable(os.Stdout, []string{"THEME", "SELECTED"}, rows)
	},
}
