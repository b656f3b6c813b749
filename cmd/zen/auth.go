package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <username> <password>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		if err := client.Register(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("registered %s\n", args[0])
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log in and cache the bearer token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		token, err := client.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if err := saveToken(token); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		fmt.Printf("logged in as %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
}
