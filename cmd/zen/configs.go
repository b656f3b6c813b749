package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zen/internal/model"
)

var createConfigFlags struct {
	name                 string
	focusMinutes         int
	shortBreakMinutes    int
	longBreakMinutes     int
	sessionsPerLongBreak int
}

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "List timer configurations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireToken(); err != nil {
			return err
		}
		configs, err := newClient().Configs(cmd.Context())
		if err != nil {
			return err
		}
		for _, cfg := range configs {
			fmt.Printf("%-24s %-20s focus %dm, break %dm/%dm, long break every %d\n",
				cfg.ID, cfg.Name, cfg.FocusMinutes, cfg.ShortBreakMinutes,
				cfg.LongBreakMinutes, cfg.SessionsPerLongBreak)
		}
		return nil
	},
}

var createConfigCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a timer configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireToken(); err != nil {
			return err
		}
		cfg, err := newClient().CreateConfig(cmd.Context(), model.Config{
			Name:                 createConfigFlags.name,
			FocusMinutes:         createConfigFlags.focusMinutes,
			ShortBreakMinutes:    createConfigFlags.shortBreakMinutes,
			LongBreakMinutes:     createConfigFlags.longBreakMinutes,
			SessionsPerLongBreak: createConfigFlags.sessionsPerLongBreak,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", cfg.ID)
		return nil
	},
}

var deleteConfigCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a timer configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireToken(); err != nil {
			return err
		}
		if err := newClient().DeleteConfig(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	createConfigCmd.Flags().StringVar(&createConfigFlags.name, "name", "", "config name")
	createConfigCmd.Flags().IntVar(&createConfigFlags.focusMinutes, "focus", 25, "focus minutes")
	createConfigCmd.Flags().IntVar(&createConfigFlags.shortBreakMinutes, "short-break", 5, "short break minutes")
	createConfigCmd.Flags().IntVar(&createConfigFlags.longBreakMinutes, "long-break", 15, "long break minutes")
	createConfigCmd.Flags().IntVar(&createConfigFlags.sessionsPerLongBreak, "per-long", 4, "focus sessions per long break")
	_ = createConfigCmd.MarkFlagRequired("name")

	configsCmd.AddCommand(createConfigCmd)
	configsCmd.AddCommand(deleteConfigCmd)
	rootCmd.AddCommand(configsCmd)
}
