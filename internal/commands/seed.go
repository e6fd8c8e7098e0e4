package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/account-messenger/internal/app/messenger"
	"github.com/magabrotheeeer/account-messenger/internal/storage"
)

// seedCmd создаёт администратора и демонстрационного пользователя в пустом хранилище.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the bootstrap accounts if the users file is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := storage.New(cfg.Storage.UsersFile, log)
		if err != nil {
			return err
		}
		seeded, err := store.EnsureSeeded(storage.BootstrapUsers(messenger.BootstrapOptions(cfg.Accounts), time.Now()))
		if err != nil {
			return err
		}

		if seeded {
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", store.Path())
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already has users, nothing to do\n", store.Path())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
