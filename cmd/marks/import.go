package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/marks/internal/sources/bookmarkfile"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import bookmarks and collections from a JSON, YAML or TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("user")
		formatName, _ := cmd.Flags().GetString("format")

		format, err := bookmarkfile.ParseFormat(formatName)
		if err != nil {
			return err
		}
		file, err := bookmarkfile.NewLoader(args[0], format).Load()
		if err != nil {
			return err
		}

		env, log, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		u, err := env.Auth.Lookup(cmd.Context(), username)
		if err != nil {
			return fmt.Errorf("looking up user %q: %w", username, err)
		}

		res, err := bookmarkfile.NewImporter(env.Bookmarks, env.Collections, log).Import(cmd.Context(), u.ID, file)
		if err != nil {
			return err
		}

		cmd.Printf("Imported %d bookmarks into %d collections\n", res.Created, res.Collections)
		for _, f := range res.Failed {
			cmd.PrintErrf("skipped %v\n", f)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().String("user", "", "owner of the imported bookmarks")
	importCmd.Flags().String("format", "auto",
		"auto, json, yaml, toml, homepage-bookmarks or homepage-services")
	_ = importCmd.MarkFlagRequired("user")
}
