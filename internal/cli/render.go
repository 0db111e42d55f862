package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(renderCmd)
	renderSel.bind(renderCmd)
	renderCmd.Flags().StringVar(&renderOut, "out", "", "also write the result as NAME below the style's output directory")
}

var (
	renderSel selection
	renderOut string
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Substitute theme variables into a template file",
	Long: `Render substitutes the merged theme variables into FILE ("-" reads
stdin) and prints the result. It is meant for stylesheet parts assembled
outside the style's own template; the style's stylesheet is not changed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readTemplate(args[0])
		if err != nil {
			return err
		}

		s, err := openSession(cmd.Context(), renderSel, sessionOptions{})
		if err != nil {
			return err
		}
		defer s.Close()

		out, err := s.manager.ProcessStylesheetTemplate(text, renderOut)
		if err != nil {
			return fmt.Errorf("%s: %s", formatErrorKind(s.manager.ErrorKind()), s.manager.ErrorString())
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]string{"text": out, "output": renderOut})
		}
		_, err = fmt.Fprint(os.Stdout, out)
		return err
	},
}

func readTemplate(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(data), nil
}
