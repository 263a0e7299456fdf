// cmd/jsonviewbench/list_commands.go
package jsonviewbench

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// commandsCmd implements 'list commands', which prints the available
// commands and subcommands as an indented tree with their descriptions and
// local flags.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands, their descriptions and flags",
	Long:  `The 'commands' subcommand lists all commands and subcommands in a hierarchical, indented format: the command path, its short description, and the flags it accepts besides the global --config and --debug.`,
	Run: func(cmd *cobra.Command, args []string) {
		listAllCommands(cmd.OutOrStdout(), rootCmd)
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

// listAllCommands walks the command tree starting from root and writes each
// command path, short description and local flags to w in padded columns.
func listAllCommands(w io.Writer, root *cobra.Command) {
	commandData := collectCommandData(root, "", "")

	maxPathLength, maxDescLength := 0, 0
	for _, data := range commandData {
		maxPathLength = max(maxPathLength, len(data.path))
		maxDescLength = max(maxDescLength, len(data.description))
	}

	fmt.Fprintln(w, "Commands and Subcommands:")
	for _, data := range commandData {
		line := data.path + strings.Repeat(" ", maxPathLength-len(data.path)+2) + data.description
		if len(data.flags) > 0 {
			line += strings.Repeat(" ", maxDescLength-len(data.description)+2) + strings.Join(data.flags, " ")
		}
		fmt.Fprintf(w, "  %s\n", line)
	}
}

type commandInfo struct {
	path        string
	description string
	// flags are the command's own flags as "--name", in lexical order.
	flags []string
}

// localFlags lists the flags defined on cmd itself, leaving out the
// persistent flags inherited from the root.
func localFlags(cmd *cobra.Command) []string {
	var names []string
	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		names = append(names, "--"+f.Name)
	})
	return names
}

// collectCommandData walks the command tree and returns a flattened slice of
// path/description pairs. Cobra's generated help and completion commands are
// skipped.
func collectCommandData(cmd *cobra.Command, currentPath string, indent string) []commandInfo {
	var allData []commandInfo

	fullPath := cmd.Name()
	if currentPath != "" {
		fullPath = currentPath + " " + cmd.Name()
	}

	allData = append(allData, commandInfo{
		path:        indent + fullPath,
		description: cmd.Short,
		flags:       localFlags(cmd),
	})

	for _, subCmd := range cmd.Commands() {
		if !subCmd.IsAvailableCommand() {
			continue
		}
		allData = append(allData, collectCommandData(subCmd, fullPath, indent+"  ")...)
	}

	return allData
}
