package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"bookmyconsultation/core/config"
	"bookmyconsultation/core/middleware"
	"bookmyconsultation/core/middleware/chain"
	"bookmyconsultation/feature/filters"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
)

// chainCmd represents the chain command
var chainCmd = &cobra.Command{
	Use:   "chain [path...]",
	Short: "Show the filters that run for request paths",
	Long: `Resolves the configured filter chain for each path and prints the filters in
execution order. Without arguments, lists every registered filter.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Only names, orders and patterns are inspected here.
		noop := chain.FilterFunc(func(*fiber.Ctx) (chain.Outcome, error) { return chain.Continue, nil })
		registry, err := middleware.NewRegistry(middleware.Filters{Cors: noop, ReqContext: noop, Auth: noop}, cfg.Auth.PatternList())
		if err != nil {
			return err
		}

		reports := resolveReports(registry, args)

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, err := json.MarshalIndent(reports, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		for _, r := range reports {
			title := r.Path
			if title == "" {
				title = "(all filters)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", title)
			for _, f := range r.Filters {
				fmt.Fprintf(cmd.OutOrStdout(), "  %d  %-18s %s\n", f.Order, f.Name, strings.Join(f.Patterns, ", "))
			}
		}
		return nil
	},
}

func resolveReports(registry *chain.Registry, paths []string) []filters.ChainReport {
	if len(paths) == 0 {
		return []filters.ChainReport{filters.Report("", registry.Entries())}
	}
	reports := make([]filters.ChainReport, 0, len(paths))
	for _, p := range paths {
		reports = append(reports, filters.Report(p, registry.ResolveChain(p)))
	}
	return reports
}

func init() {
	RootCmd.AddCommand(chainCmd)
	chainCmd.Flags().Bool("json", false, "Output JSON")
}
