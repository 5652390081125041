package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zjrosen/tide/internal/editor"
	"github.com/zjrosen/tide/internal/keys"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List editor key bindings and : commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), commandsTable().Render())
		return err
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}

func commandsTable() *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("MODE", "KEY", "ACTION")

	km := keys.DefaultKeyMap()
	for _, mode := range []editor.Mode{editor.ModeNavigation, editor.ModeInsertion, editor.ModeCommandLine} {
		for _, b := range km.HelpFor(mode) {
			h := b.Help()
			t.Row(mode.String(), h.Key, h.Desc)
		}
	}
	for _, name := range editor.DefaultInterpreter().Names() {
		t.Row(editor.ModeCommandLine.String(), ":"+name, commandDescriptions[name])
	}
	return t
}

var commandDescriptions = map[string]string{
	"q":            "quit without saving",
	"w":            "write the file",
	"wq":           "write the file, then quit",
	"set number":   "show line numbers",
	"set nonumber": "hide line numbers",
}
