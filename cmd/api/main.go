package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tasklet/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tasklet",
		Short: "Tasklet API Server",
		Long:  `Tasklet is a personal task/subtask manager: tasks with ordered subtasks, derived completion percentages and cookie-session authentication over a flat-file user store.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
