package main

import (
	"os"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema --schema schema.yaml",
	Short: "Export a schema definition as JSON Schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaPath, _ := cmd.Flags().GetString("schema")
		s, err := loadSchema(schemaPath)
		if err != nil {
			return err
		}
		enc := gojson.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s.JSONSchema())
	},
}

func init() {
	schemaCmd.Flags().String("schema", "schema.yaml", "Schema definition file (YAML or JSON)")
	rootCmd.AddCommand(schemaCmd)
}
