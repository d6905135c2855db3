package main

import (
	"fmt"
	"sort"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/internal/repository/file"
	"github.com/DRSN-tech/solar-store/internal/store"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Catalog seed utilities",
	}

	cmd.AddCommand(seedValidateCmd())
	return cmd
}

func seedValidateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON catalog seed file",
		Long:  `Checks that every product has a positive unique id, a non-blank name, a known category and a non-negative price.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := file.NewSeedRepo(path).LoadSeed(cmd.Context())
			if err != nil {
				return err
			}

			st, err := store.New(products)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ok: %d product(s)\n", len(st.Products()))

			counts := make(map[domain.Category]int)
			for _, p := range st.Products() {
				counts[p.Category]++
			}
			categories := make([]string, 0, len(counts))
			for c := range counts {
				categories = append(categories, c.String())
			}
			sort.Strings(categories)
			for _, c := range categories {
				fmt.Fprintf(out, "  %-20s %d\n", c, counts[domain.Category(c)])
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "Path to the JSON seed file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
