package cmd

import (
	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/security"
	"task-tracker.com/task-tracker/internal/services"
)

var skipSampleTasks bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the initial user and sample tasks",
	Long:  "Creates the user named by INITIAL_USER_EMAIL and INITIAL_USER_PASSWORD if it does not exist yet, together with a few sample tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.migrate(); err != nil {
			return err
		}

		hasher, err := security.NewPasswordHasher(a.cfg.PasswordHasher)
		if err != nil {
			return err
		}

		seeder := services.NewSeedService(a.db, hasher, a.logger)
		created, err := seeder.SeedInitialUser(cmd.Context(), a.cfg.InitialUserEmail, a.cfg.InitialUserPassword, skipSampleTasks)
		if err != nil {
			return err
		}

		if created {
			cmd.Printf("initial user created: %s\n", a.cfg.InitialUserEmail)
		} else {
			cmd.Printf("initial user already exists: %s\n", a.cfg.InitialUserEmail)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&skipSampleTasks, "skip-tasks", false, "create the user without sample tasks")
	rootCmd.AddCommand(seedCmd)
}
