package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/c360studio/semvocab/code"
	"github.com/c360studio/semvocab/hierarchy"
	"github.com/c360studio/semvocab/source/sheet"
)

func classifyCmd(global *globalFlags) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "classify code...",
		Short: "Show tier and relations of codes",
		Long: `Classify prints the tier, broader and narrower codes of each argument.
Relations are resolved against the codes of --source, or against the
arguments themselves when no source is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, global)
			if err != nil {
				return err
			}

			codes := make([]string, len(args))
			for i, a := range args {
				codes[i] = code.Normalize(a)
			}

			set := hierarchy.NewCodeSet(codes)
			if source != "" {
				opts := sheet.Options{
					Sheets:           cfg.Source.Sheets,
					StartRow:         cfg.Source.StartRow,
					CodeColumn:       cfg.Source.CodeColumn,
					DescriptorColumn: cfg.Source.DescriptorColumn,
					ChangeColumn:     cfg.Source.ChangeColumn,
				}
				reader, err := sheet.DefaultRegistry.Open(source, opts)
				if err != nil {
					return err
				}
				defer reader.Close()
				rows, err := reader.Rows(cmd.Context())
				if err != nil {
					return err
				}
				all := make([]string, 0, len(rows))
				for _, row := range rows {
					if c := code.Normalize(row.Code); c != "" {
						all = append(all, c)
					}
				}
				set = hierarchy.NewCodeSet(all)
			}

			resolver := hierarchy.NewResolver(set)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tTIER\tBROADER\tNARROWER")
			for _, c := range codes {
				rel, err := resolver.Resolve(c)
				if err != nil {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c, "gap", "-", err)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c, rel.Tier, formatCodes(rel.Broader), formatCodes(rel.Narrower))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "", "Resolve against the codes of this file")
	return cmd
}

// formatCodes renders nil as "-" and an empty list as "[]".
func formatCodes(codes []string) string {
	if codes == nil {
		return "-"
	}
	return "[" + strings.Join(codes, " ") + "]"
}
