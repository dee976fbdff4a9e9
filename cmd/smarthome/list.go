package main

import (
	"github.com/spf13/cobra"
)

var area string

func init() {
	devicesCmd.Flags().StringVarP(&area, "area", "a", "", "only list this area (case-insensitive)")
	sensorsCmd.Flags().StringVarP(&area, "area", "a", "", "only list this area (case-insensitive)")
	rootCmd.AddCommand(devicesCmd, sensorsCmd, areasCmd, statusCmd, sensorCmd)
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if area != "" {
			devices, err := the.home.ListDevicesByArea(ctx, area)
			if err != nil {
				return err
			}
			return printJSON(devices)
		}
		devices, err := the.home.ListDevices(ctx)
		if err != nil {
			return err
		}
		return printJSON(devices)
	},
}

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "List sensors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if area != "" {
			sensors, err := the.home.ListSensorsByArea(ctx, area)
			if err != nil {
				return err
			}
			return printJSON(sensors)
		}
		sensors, err := the.home.ListSensors(ctx)
		if err != nil {
			return err
		}
		return printJSON(sensors)
	},
}

var areasCmd = &cobra.Command{
	Use:   "areas",
	Short: "List areas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		areas, err := the.home.ListAreas(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(areas)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <device-id>",
	Short: "Describe a device in one sentence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResult(args[0], the.home.GetDeviceStatus(cmd.Context(), args[0]))
	},
}

var sensorCmd = &cobra.Command{
	Use:   "sensor <sensor-id>",
	Short: "Describe a sensor reading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResult(args[0], the.home.GetSensorStatus(cmd.Context(), args[0]))
	},
}
