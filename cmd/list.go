package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved creations, newest first",
	RunE:  runList,
}

func init() {
	listCmd.Flags().Int("limit", 20, "maximum number of creations (0 for all)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	database, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	list, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No creations yet. Run `themegen generate` to make one.")
		return nil
	}
	for _, c := range list {
		fmt.Fprintf(out, "%s  %-24s  %s  %s\n",
			c.ID, truncate(c.Name, 24), c.CreatedAt.Local().Format("2006-01-02 15:04"), strings.Join(c.ThemeNames, ", "))
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
