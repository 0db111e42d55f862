package cli

import (
	"os"
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(varsCmd)
	varsSel.bind(varsCmd)
}

// Variable is one merged theme variable.
type Variable struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Color bool   `json:"color"`
}

var varsSel selection

var varsCmd = &cobra.Command{
	Use:   "vars",
	Short: "Show the merged theme variables",
	Long:  "Show every variable of the selected theme after configured and --set overrides are applied.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), varsSel, sessionOptions{})
		if err != nil {
			return err
		}
		defer s.Close()

		merged := s.manager.ThemeVariables()
		colors := s.manager.ThemeColorVariables()

		vars := make([]Variable, 0, len(merged))
		for id, value := range merged {
			_, isColor := colors[id]
			vars = append(vars, Variable{ID: id, Value: value, Color: isColor})
		}
		sort.Slice(vars, func(i, j int) bool { return vars[i].ID < vars[j].ID })

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, vars)
		}

		rows := make([][]string, 0, len(vars))
		for _, v := range vars {
			value := v.Value
			if c := s.manager.ThemeColor(v.ID); v.Color && c.Valid {
				value = colorize(value, c.Color.Hex())
			}
			rows = append(rows, []string{v.ID, value, formatYesNo(v.Color)})
		}
		return writeTable(os.Stdout, []string{"ID", "VALUE", "COLOR"}, rows)
	},
}
