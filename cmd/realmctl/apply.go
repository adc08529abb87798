package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/realmkit/realmkit/internal/provision"
)

var applyFile string

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a declarative realm plan",
	Long: `Apply a YAML plan describing a realm and its roles, clients, groups and
users. Applying is idempotent: entities that already exist are reused and
role grants only add what is missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := provision.LoadFile(applyFile)
		if err != nil {
			return err
		}

		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}

		applier := &provision.Applier{Admin: admin, Logger: logger}
		if err := applier.Apply(cmd.Context(), plan); err != nil {
			return err
		}

		fmt.Printf("realm %q is up to date\n", plan.Realm.Name)
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applyFile, "file", "f", "", "path to the plan file (required)")
	_ = applyCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(applyCmd)
}
