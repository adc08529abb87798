package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/realmkit/realmkit"
)

// roleCmd represents the role command
var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage realm roles",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'role' requires a subcommand (ensure)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var (
	roleEnsureRealm       string
	roleEnsureDescription string
)

// roleEnsureCmd represents the role ensure command
var roleEnsureCmd = &cobra.Command{
	Use:   "ensure <name>",
	Short: "Create a realm role if it does not exist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}

		realm, err := realmkit.FindRealmOrFail(cmd.Context(), admin, roleEnsureRealm)
		if err != nil {
			return err
		}

		role, err := realmkit.FindRoleOrCreate(cmd.Context(), realm, args[0], roleEnsureDescription)
		if err != nil {
			return err
		}

		fmt.Printf("role %q ensured in realm %q\n", role.Name(), realm.Name())
		return nil
	},
}

func init() {
	roleEnsureCmd.Flags().StringVar(&roleEnsureRealm, "target-realm", "", "realm the role belongs to (required)")
	roleEnsureCmd.Flags().StringVar(&roleEnsureDescription, "description", "", "role description")
	_ = roleEnsureCmd.MarkFlagRequired("target-realm")

	roleCmd.AddCommand(roleEnsureCmd)
	rootCmd.AddCommand(roleCmd)
}
