package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/account-messenger/internal/client/console"
	"github.com/magabrotheeeer/account-messenger/internal/storage"
)

const maskedPassword = "********"

var showPasswords bool

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect the users file",
}

// usersListCmd печатает таблицу пользователей прямо из файла хранилища.
var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all accounts with their expiry and status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := storage.New(cfg.Storage.UsersFile, log)
		if err != nil {
			return err
		}
		users, err := store.LoadAll()
		if err != nil {
			return err
		}

		names := make([]string, 0, len(users))
		for name := range users {
			names = append(names, name)
		}
		sort.Strings(names)

		now := time.Now()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "USERNAME\tPASSWORD\tROLE\tEXPIRY\tSTATUS\tMESSAGES")
		for _, name := range names {
			u := users[name]
			password := maskedPassword
			if showPasswords {
				password = u.Password
			}
			role, expiry, status := "user", "-", console.UserStatus(u, now)
			if u.IsAdmin {
				role = "admin"
			}
			if u.Expiry != nil {
				expiry = u.Expiry.UTC().Format(time.DateOnly)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", name, password, role, expiry, status, len(u.Messages))
		}
		return tw.Flush()
	},
}

func init() {
	usersListCmd.Flags().BoolVar(&showPasswords, "show-passwords", false, "print passwords in clear text")
	usersCmd.AddCommand(usersListCmd)
	rootCmd.AddCommand(usersCmd)
}
