package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aliasync/aliasync/internal/aliaser"
	"github.com/spf13/cobra"
)

// menuItem is one entry of the interactive menu.
type menuItem struct {
	label string
	run   func(cmd *cobra.Command) error
}

var menu = []menuItem{
	{"Initialize aliases", func(cmd *cobra.Command) error { return runInit(cmd, false) }},
	{"Sync existing aliases", runSync},
	{"Start watch mode", func(cmd *cobra.Command) error { return runWatch(cmd, aliaser.DefaultWatchOptions()) }},
	{"Run dry-run", runDryRun},
	{"Generate helper file", runHelper},
	{"Show project info", func(cmd *cobra.Command) error { return runInfo(cmd, formatText) }},
}

func runInteractive(cmd *cobra.Command) error {
	labels := make([]string, len(menu))
	for i, item := range menu {
		labels[i] = item.label
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	idx, err := selectFromList(reader, cmd.OutOrStdout(), "What would you like to do?", labels)
	if err != nil {
		return err
	}
	return menu[idx].run(cmd)
}

// selectFromList prints a numbered menu and reads a 1-based choice. It
// returns the 0-based index.
func selectFromList(reader *bufio.Reader, w io.Writer, prompt string, items []string) (int, error) {
	fmt.Fprintf(w, "\n%s\n", prompt)
	for i, item := range items {
		fmt.Fprintf(w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(w, "Enter number [1-%d]: ", len(items))

	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return 0, fmt.Errorf("reading selection: %w", err)
	}

	num, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", strings.TrimSpace(line), len(items))
	}

	return num - 1, nil
}
