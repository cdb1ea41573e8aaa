package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/themegen/internal/export"
	"github.com/ziadkadry99/themegen/internal/theme"
)

var exportCmd = &cobra.Command{
	Use:   "export <creation-id>",
	Short: "Write a saved creation's HTML and prompt files",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().String("out", "", "output directory (overrides config)")
	exportCmd.Flags().Int("index", -1, "export only this design (default all)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	index, _ := cmd.Flags().GetInt("index")

	database, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	c, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("no creation with id %q (see `themegen list`)", args[0])
	}
	result, err := c.Result()
	if err != nil {
		return err
	}

	if index >= 0 {
		v, err := result.At(index)
		if err != nil {
			return err
		}
		v = export.Named(v, index)
		for _, a := range []export.Artifact{export.Markup(c.Name, v), export.Prompt(v)} {
			path, err := a.WriteFile(outDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  wrote %s\n", path)
		}
		return nil
	}
	return writeArtifacts(cmd.OutOrStdout(), outDir, c.Name, result)
}

// writeArtifacts writes the HTML and prompt file of every variant.
func writeArtifacts(out io.Writer, dir, creationName string, result theme.Result) error {
	for _, a := range export.All(creationName, result) {
		path, err := a.WriteFile(dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  wrote %s\n", path)
	}
	return nil
}
