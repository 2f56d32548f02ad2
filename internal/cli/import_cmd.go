package cli

import (
	"fmt"

	"github.com/alexanderramin/pomotodo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import to-dos from a JSON file",
		Long: `Import to-dos from a JSON file of the form
  {"todos": [{"label": "Write report"}, {"label": "Ship", "done": true}]}
Every entry is validated first; nothing is written unless all are valid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportTodos(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d to-dos (%d completed)\n", len(result.Todos), result.Completed)
			for _, t := range result.Todos {
				fmt.Fprintf(out, "  %s %s %s\n",
					formatter.DoneCheckbox(t.Done), formatter.StyleBlue.Render(t.DisplayRef()), t.Label)
			}
			return nil
		},
	}
}
