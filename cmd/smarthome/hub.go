package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pingCmd)
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that Home Assistant answers with the configured token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !the.cfg.HomeAssistantConfigured() {
			return errors.New("home_assistant.url and home_assistant.token must both be set")
		}
		ok, err := the.hub.TestConnection(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("unexpected answer from Home Assistant")
		}
		cfg, err := the.hub.GetConfig(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("connected to %s (Home Assistant %s)\n", cfg.LocationName, cfg.Version)
		return nil
	},
}
