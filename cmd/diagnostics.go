// file: cmd/diagnostics.go
// version: 2.0.0
// guid: c8f6a0d4-2a8b-48cf-9d08-02cc9915d9fc

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cockroachdb/pebble/v2"
	"github.com/spf13/cobra"

	"github.com/jdfalk/catalog-search/internal/catalog"
	"github.com/jdfalk/catalog-search/internal/config"
)

// errValidationFailed is returned by validate --strict when issues exist.
var errValidationFailed = errors.New("catalog has validation issues")

var (
	diagnosticsCmd = &cobra.Command{
		Use:   "diagnostics",
		Short: "Debugging helpers",
		Long:  "Diagnostic utilities for inspecting catalog files and the Pebble store.",
	}

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Report duplicate ids and unsearchable records",
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			return runValidate(cmd.Context(), cmd.OutOrStdout(), strict)
		},
	}

	queryCmd = &cobra.Command{
		Use:   "query",
		Short: "Dump raw Pebble keys and values",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			prefix, _ := cmd.Flags().GetString("prefix")
			return runRawPebbleQuery(cmd.OutOrStdout(), limit, prefix)
		},
	}
)

func init() {
	validateCmd.Flags().Bool("strict", false, "Exit non-zero when any issue is found")

	queryCmd.Flags().Int("limit", 5, "Number of records to display")
	queryCmd.Flags().String("prefix", "parts:", "Key prefix to inspect (empty for all keys)")

	diagnosticsCmd.AddCommand(validateCmd)
	diagnosticsCmd.AddCommand(queryCmd)
}

func runValidate(ctx context.Context, out io.Writer, strict bool) error {
	holder, closer, err := loadHolder(ctx)
	if err != nil {
		return err
	}
	defer closer()

	cat, err := holder.Current()
	if err != nil {
		return err
	}
	stats := cat.Stats()
	fmt.Fprintf(out, "Source: %s\n", holder.Source())
	fmt.Fprintf(out, "Records: %d parts, %d colors, %d fuses\n", stats.Parts, stats.Colors, stats.Fuses)

	issues := catalog.Validate(cat)
	if len(issues) == 0 {
		fmt.Fprintln(out, "No issues found.")
		return nil
	}
	for _, issue := range issues {
		fmt.Fprintf(out, "  - %s\n", issue)
	}
	fmt.Fprintf(out, "%d issue(s) found.\n", len(issues))
	if strict {
		return errValidationFailed
	}
	return nil
}

func runRawPebbleQuery(out io.Writer, limit int, prefix string) error {
	if limit <= 0 {
		return errors.New("limit must be positive")
	}
	if config.AppConfig.DatabasePath == "" {
		return errors.New("database path not specified")
	}

	db, err := pebble.Open(config.AppConfig.DatabasePath, &pebble.Options{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to open Pebble database: %w", err)
	}
	defer db.Close()

	iterOpts := &pebble.IterOptions{}
	if prefix != "" {
		iterOpts.LowerBound = []byte(prefix)
		iterOpts.UpperBound = append([]byte(prefix), 0xFF)
	}

	iter, err := db.NewIter(iterOpts)
	if err != nil {
		return fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	count := 0
	for ok := iter.First(); ok && iter.Valid(); ok = iter.Next() {
		val := iter.Value()
		fmt.Fprintf(out, "Key: %s\n", iter.Key())
		fmt.Fprintf(out, "Value length: %d bytes\n", len(val))
		fmt.Fprintf(out, "Value preview: %s\n", truncateString(string(val), 500))
		fmt.Fprintln(out, "---")

		count++
		if count >= limit {
			break
		}
	}

	if err := iter.Error(); err != nil {
		return fmt.Errorf("iterator error: %w", err)
	}

	if count == 0 {
		fmt.Fprintln(out, "No keys matched the requested prefix.")
	}

	return nil
}

func truncateString(in string, max int) string {
	if len(in) <= max {
		return in
	}
	return in[:max] + "..."
}
