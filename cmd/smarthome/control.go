package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"smarthome-bridge/internal/domain/model"
)

func init() {
	rootCmd.AddCommand(
		simpleCmd("on", "Turn a device on", the.turnOn),
		simpleCmd("off", "Turn a device off", the.turnOff),
		simpleCmd("lock", "Lock a door lock", the.lock),
		simpleCmd("unlock", "Unlock a door lock", the.unlock),
		brightnessCmd,
		temperatureCmd,
		speedCmd,
	)
}

// Accessors read the facade built in PersistentPreRunE.
func (a *app) turnOn(ctx context.Context, id string) model.Result[*model.Device] {
	return a.home.TurnOn(ctx, id)
}

func (a *app) turnOff(ctx context.Context, id string) model.Result[*model.Device] {
	return a.home.TurnOff(ctx, id)
}

func (a *app) lock(ctx context.Context, id string) model.Result[*model.Device] {
	return a.home.Lock(ctx, id)
}

func (a *app) unlock(ctx context.Context, id string) model.Result[*model.Device] {
	return a.home.Unlock(ctx, id)
}

func simpleCmd(use, short string, fn func(context.Context, string) model.Result[*model.Device]) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <device-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(args[0], fn(cmd.Context(), args[0]))
		},
	}
}

var brightnessCmd = &cobra.Command{
	Use:   "brightness <device-id> <0-100>",
	Short: "Set light brightness; 0 turns the light off",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("brightness %q: %w", args[1], err)
		}
		return printResult(args[0], the.home.SetBrightness(cmd.Context(), args[0], v))
	},
}

var temperatureCmd = &cobra.Command{
	Use:   "temperature <device-id> <celsius>",
	Short: "Set a thermostat target, clamped to 10-35°C",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("temperature %q: %w", args[1], err)
		}
		return printResult(args[0], the.home.SetTemperature(cmd.Context(), args[0], v))
	},
}

var speedCmd = &cobra.Command{
	Use:   "speed <device-id> <0-100>",
	Short: "Set fan speed; 0 turns the fan off",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("speed %q: %w", args[1], err)
		}
		return printResult(args[0], the.home.SetFanSpeed(cmd.Context(), args[0], v))
	},
}
