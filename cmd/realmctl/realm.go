package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/realmkit/realmkit"
)

// realmCmd represents the realm command
var realmCmd = &cobra.Command{
	Use:   "realm",
	Short: "Manage realms",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'realm' requires a subcommand (ensure)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var realmEnsureEnabled bool

// realmEnsureCmd represents the realm ensure command
var realmEnsureCmd = &cobra.Command{
	Use:   "ensure <name>",
	Short: "Create a realm if it does not exist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}

		realm, err := realmkit.FindRealmOrCreate(cmd.Context(), admin, args[0], realmEnsureEnabled)
		if err != nil {
			return err
		}

		fmt.Printf("realm %q ensured\n", realm.Name())
		return nil
	},
}

func init() {
	realmEnsureCmd.Flags().BoolVar(&realmEnsureEnabled, "enabled", true, "whether the realm is enabled when created")

	realmCmd.AddCommand(realmEnsureCmd)
	rootCmd.AddCommand(realmCmd)
}
