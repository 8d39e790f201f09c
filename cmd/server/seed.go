package main

import (
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed an empty store with the baseline catalog and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := openStores(cmd.Context(), cfg.Store)
		if err != nil {
			return err
		}
		defer st.close()
		return runSeed(cmd.Context(), cfg.Seed, st.seed)
	},
}
