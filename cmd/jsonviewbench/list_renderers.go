// cmd/jsonviewbench/list_renderers.go
package jsonviewbench

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mwiater/jsonviewbench/internal/catalog"
	"github.com/mwiater/jsonviewbench/internal/dataset"
)

// listRenderersCmd implements 'list renderers', which prints the catalog.
var listRenderersCmd = &cobra.Command{
	Use:   "renderers",
	Short: "List the renderers that can be benchmarked",
	Long:  `The 'renderers' subcommand lists every renderer in the catalog with a short description. Unknown renderer names fall back to the default entry.`,
	Run: func(cmd *cobra.Command, args []string) {
		listRenderers(cmd.OutOrStdout(), catalog.Default(dataset.Generate(dataset.Options{ObjectDepth: 1, ObjectFanout: 1, ArrayLength: 1})))
	},
}

func init() {
	listCmd.AddCommand(listRenderersCmd)
}

// listRenderers writes the catalog as a table.
func listRenderers(w io.Writer, c *catalog.Catalog) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Renderer", "Description", "Default"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for _, name := range c.Names() {
		e, _ := c.Lookup(name)
		def := ""
		if name == catalog.DefaultName {
			def = "yes"
		}
		table.Append([]string{name, e.Description, def})
	}
	table.Render()
}
