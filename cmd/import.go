package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/themegen/internal/creations"
	"github.com/ziadkadry99/themegen/internal/theme"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Save designs from a JSON file or a single HTML document",
	Long: `Imports designs produced elsewhere. The file may be JSON with a "versions"
(or "designs") array of {themeName, description, html} objects, JSON with a
single "html" field, or a plain .html document. Single documents open
focused in the studio.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("name", "", "project name (default: file name)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	var src theme.Source
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		src = theme.LegacySource(string(data))
	default:
		src, err = theme.DecodeSource(data)
		if err != nil {
			return err
		}
	}
	result, err := src.Resolve(name)
	if err != nil {
		return err
	}

	database, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	c := &creations.Creation{Name: name, Source: src}
	if err := store.Save(context.Background(), c); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%s) with %d design(s) from %s input\n", c.Name, c.ID, result.Len(), src.Kind)
	return nil
}
