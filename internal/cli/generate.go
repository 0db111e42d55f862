package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateSel.bind(generateCmd)
	generateCmd.Flags().StringVarP(&generateOutput, "output-dir", "o", "", "output directory (default from config)")
	generateCmd.Flags().BoolVar(&generatePrint, "print", false, "print the generated stylesheet to stdout")
}

// GenerateResult describes a successful generation run.
type GenerateResult struct {
	Style      string   `json:"style"`
	Theme      string   `json:"theme"`
	OutputDir  string   `json:"output_dir"`
	Stylesheet string   `json:"stylesheet"`
	Resources  []string `json:"resources"`
	Bytes      int      `json:"bytes"`
}

var (
	generateSel    selection
	generateOutput string
	generatePrint  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the stylesheet and resources of a style",
	Long: `Generate runs the full pipeline for the selected style and theme:
palette, resources, then the stylesheet. Files are written below
<output-dir>/<style>/. The first failing stage stops the run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx, generateSel, sessionOptions{record: true})
		if err != nil {
			return err
		}
		defer s.Close()

		m := s.manager
		if generateOutput != "" {
			m.SetOutputDirPath(generateOutput)
		}

		step := startProgress(fmt.Sprintf("Generating %s/%s", m.CurrentStyle(), m.CurrentTheme()))
		if err := m.UpdateStylesheet(); err != nil {
			step.Fail(err)
			s.recordFailure(ctx, err)
			return fmt.Errorf("%s: %s", formatErrorKind(m.ErrorKind()), m.ErrorString())
		}
		step.Done()

		outDir := m.CurrentStyleOutputPath()
		result := GenerateResult{
			Style:      m.CurrentStyle(),
			Theme:      m.CurrentTheme(),
			OutputDir:  outDir,
			Stylesheet: filepath.Join(outDir, m.StylesheetOutputName()),
			Resources:  m.ResourceNames(),
			Bytes:      len(m.StyleSheet()),
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, result)
		}
		if generatePrint {
			fmt.Fprint(os.Stdout, m.StyleSheet())
			return nil
		}

		fmt.Fprintf(os.Stdout, "%s %s\n", formatErrorKind(m.ErrorKind()), result.Stylesheet)
		for _, name := range result.Resources {
			fmt.Fprintf(os.Stdout, "  %s\n", filepath.Join(outDir, filepath.FromSlash(name)))
		}
		return nil
	},
}
