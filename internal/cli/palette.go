package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/themekit/internal/palette"
)

func init() {
	rootCmd.AddCommand(paletteCmd)
	paletteSel.bind(paletteCmd)
}

// PaletteEntry is one role of the derived palette.
type PaletteEntry struct {
	Role  string `json:"role"`
	Color string `json:"color,omitempty"`
	Valid bool   `json:"valid"`
}

var paletteSel selection

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Show the application palette derived from the theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sink := &palette.LipglossSink{}
		s, err := openSession(cmd.Context(), paletteSel, sessionOptions{sink: sink})
		if err != nil {
			return err
		}
		defer s.Close()

		s.manager.UpdateApplicationPaletteColors()
		styles := sink.Styles()
		p := styles.Palette

		entries := make([]PaletteEntry, 0, len(palette.Roles))
		for _, role := range palette.Roles {
			c := p.Color(role)
			entries = append(entries, PaletteEntry{Role: string(role), Color: c.Hex(), Valid: c.Valid})
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, entries)
		}

		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			value := entry.Color
			if !entry.Valid {
				value = styles.Muted.Render("unset, using " + p.HexOrFallback(palette.Role(entry.Role)))
			}
			row := []string{entry.Role, value}
			if colorEnabled() {
				row = append(row, styles.Swatch(palette.Role(entry.Role)))
			}
			rows = append(rows, row)
		}

		headers := []string{"ROLE", "COLOR"}
		if colorEnabled() {
			headers = append(headers, "")
		}
		return writeTable(os.Stdout, headers, rows)
	},
}
