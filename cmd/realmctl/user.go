package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/realmkit/realmkit"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'user' requires a subcommand (ensure)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var (
	userEnsureRealm      string
	userEnsurePassword   string
	userEnsureRealmRoles []string
	userEnsureGroups     []string
)

// userEnsureCmd represents the user ensure command
var userEnsureCmd = &cobra.Command{
	Use:   "ensure <username>",
	Short: "Create a user if it does not exist and reconcile its grants",
	Long: `Create a user if it does not exist, then bring its realm role grants
and group memberships in line with the given flags. Roles and groups the
user already has are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		realm, err := realmkit.FindRealmOrFail(ctx, admin, userEnsureRealm)
		if err != nil {
			return err
		}

		user, err := realmkit.FindUserOrCreate(ctx, realm, args[0], userEnsurePassword, true)
		if err != nil {
			return err
		}

		if len(userEnsureRealmRoles) > 0 {
			if err := user.AddRealmRoles(ctx, userEnsureRealmRoles...); err != nil {
				return err
			}
		}

		if len(userEnsureGroups) > 0 {
			groups := make([]*realmkit.Group, 0, len(userEnsureGroups))
			for _, name := range userEnsureGroups {
				group, err := realmkit.FindGroupOrFail(ctx, realm, name)
				if err != nil {
					return err
				}
				groups = append(groups, group)
			}
			if err := user.JoinGroups(ctx, groups...); err != nil {
				return err
			}
		}

		fmt.Printf("user %q ensured in realm %q\n", user.Name(), realm.Name())
		return nil
	},
}

func init() {
	userEnsureCmd.Flags().StringVar(&userEnsureRealm, "target-realm", "", "realm the user belongs to (required)")
	userEnsureCmd.Flags().StringVar(&userEnsurePassword, "password", "", "initial password when the user is created")
	userEnsureCmd.Flags().StringSliceVar(&userEnsureRealmRoles, "realm-roles", nil, "realm roles the user should hold")
	userEnsureCmd.Flags().StringSliceVar(&userEnsureGroups, "groups", nil, "groups the user should be a member of")
	_ = userEnsureCmd.MarkFlagRequired("target-realm")

	userCmd.AddCommand(userEnsureCmd)
	rootCmd.AddCommand(userCmd)
}
