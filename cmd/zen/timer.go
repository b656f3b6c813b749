package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"zen/internal/cli"
	"zen/internal/model"
)

var timerCmd = &cobra.Command{
	Use:   "timer [configID]",
	Short: "Start a focus session and run the countdown",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireToken(); err != nil {
			return err
		}

		configID := model.DefaultConfigID
		if len(args) == 1 {
			configID = args[0]
		}

		client := newClient()

		configs, err := client.Configs(cmd.Context())
		if err != nil {
			return err
		}
		cfg := configs[0]
		for _, candidate := range configs {
			if candidate.ID == configID {
				cfg = candidate
				break
			}
		}

		session, err := client.StartSession(cmd.Context(), configID)
		if err != nil {
			return err
		}

		program := tea.NewProgram(cli.NewTimer(client, cfg, session))
		finalModel, err := program.Run()
		if err != nil {
			return err
		}

		timerModel := finalModel.(cli.TimerModel)
		final := timerModel.GetSession()
		fmt.Printf("session %s: %d distraction(s) logged\n", final.ID, len(final.Distractions))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timerCmd)
}
