package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	valigo "github.com/reoring/valigo"
	"github.com/reoring/valigo/schemadef"
)

var validateCmd = &cobra.Command{
	Use:   "validate --schema schema.yaml data.json [more...]",
	Short: "Validate data files against a schema definition",
	Long: `Compiles the schema definition and validates each data file against it.
JSON and YAML data files are detected by extension. Exits non-zero when any
file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaPath, _ := cmd.Flags().GetString("schema")
		failFast, _ := cmd.Flags().GetBool("fail-fast")
		s, err := loadSchema(schemaPath)
		if err != nil {
			return err
		}

		opt := valigo.ParseOpt{
			MaxDepth:       valigo.DefaultMaxDepth,
			OnDuplicateKey: valigo.Error,
			FailFast:       failFast,
		}

		failed := 0
		for _, path := range args {
			iss := validateFile(cmd.Context(), s, path, opt)
			if len(iss) == 0 {
				fmt.Printf("%s: ok\n", path)
				continue
			}
			failed++
			fmt.Printf("%s: %d issue(s)\n", path, len(iss))
			for _, it := range iss {
				p := it.Path.String()
				if p == "" {
					p = "/"
				}
				fmt.Printf("  %s %s: %s\n", it.Code, p, it.Message)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().String("schema", "schema.yaml", "Schema definition file (YAML or JSON)")
	validateCmd.Flags().Bool("fail-fast", false, "Stop at the first issue per file")
	rootCmd.AddCommand(validateCmd)
}

func loadSchema(path string) (valigo.AnySchema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def *schemadef.Def
	if strings.EqualFold(filepath.Ext(path), ".json") {
		def, err = schemadef.LoadJSON(b)
	} else {
		def, err = schemadef.LoadYAML(b)
	}
	if err != nil {
		return nil, err
	}
	s, err := schemadef.Compile(def)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("schema", path).Str("kind", string(s.Kind())).Msg("schema compiled")
	return s, nil
}

func validateFile(ctx context.Context, s valigo.AnySchema, path string, opt valigo.ParseOpt) valigo.Issues {
	b, err := os.ReadFile(path)
	if err != nil {
		return valigo.Issues{{Code: valigo.CodeParseError, Message: err.Error()}}
	}
	var src valigo.Source
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		src = valigo.YAMLBytes(b)
	default:
		src = valigo.JSONBytes(b)
	}
	if _, err := valigo.ParseAnyFrom(ctx, s, src, opt); err != nil {
		iss, _ := valigo.AsIssues(err)
		return iss
	}
	return nil
}
