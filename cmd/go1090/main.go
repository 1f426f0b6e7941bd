package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"go1090/internal/app"
)

func parseGeofences(specs []string) ([]app.GeofenceConfig, error) {
	var out []app.GeofenceConfig
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("geofence %q: want id:lat:lon:radius_nm", spec)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("geofence %q: bad latitude: %w", spec, err)
		}
		lon, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("geofence %q: bad longitude: %w", spec, err)
		}
		radius, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return nil, fmt.Errorf("geofence %q: bad radius: %w", spec, err)
		}
		out = append(out, app.GeofenceConfig{ID: parts[0], Lat: lat, Lon: lon, RadiusNM: radius})
	}
	return out, nil
}

func main() {
	config := app.DefaultConfig()
	var showVersion bool
	var geofenceSpecs []string
	var emitDedupeWindowS map[string]int

	rootCmd := &cobra.Command{
		Use:   "go1090",
		Short: "ADS-B decoder",
		Long: `ADS-B decoder using RTL-SDR.

Captures I/Q samples from RTL-SDR at 2MHz, demodulates Mode S/ADS-B
frames, validates and corrects CRC, tracks aircraft state, flags
anomalies, and outputs in BaseStation (SBS) format.

Example usage:
  go1090 --frequency 1090000000 --sample-rate 2000000 --gain 40 --device 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				app.ShowVersion()
				return nil
			}

			geofences, err := parseGeofences(geofenceSpecs)
			if err != nil {
				return err
			}
			config.Geofences = geofences
			config.EmitDedupeWindowS = emitDedupeWindowS
			config.HasReceiverReference = cmd.Flags().Changed("receiver-lat") || cmd.Flags().Changed("receiver-lon")

			if err := config.Validate(); err != nil {
				return err
			}

			application := app.NewApplication(config)
			return application.Start()
		},
	}

	rootCmd.Flags().Uint32VarP(&config.Frequency, "frequency", "f", app.DefaultFrequency, "Frequency to tune to (Hz)")
	rootCmd.Flags().Uint32VarP(&config.SampleRate, "sample-rate", "s", app.DefaultSampleRate, "Sample rate (Hz)")
	rootCmd.Flags().IntVarP(&config.Gain, "gain", "g", app.DefaultGain, "Gain setting (0 for auto)")
	rootCmd.Flags().IntVarP(&config.DeviceIndex, "device", "d", 0, "RTL-SDR device index")
	rootCmd.Flags().StringVarP(&config.LogDir, "log-dir", "l", "./logs", "Log directory")
	rootCmd.Flags().BoolVarP(&config.LogRotateUTC, "utc", "u", true, "Use UTC for log rotation")
	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.Flags().BoolVar(&config.EnableCRCCorrection, "crc-correction", config.EnableCRCCorrection, "Attempt single/two-bit CRC error correction")

	rootCmd.Flags().Float64Var(&config.ReceiverLat, "receiver-lat", 0, "Receiver latitude, enables local CPR decoding on cold start")
	rootCmd.Flags().Float64Var(&config.ReceiverLon, "receiver-lon", 0, "Receiver longitude")
	rootCmd.Flags().Float64Var(&config.ReceiverAltFt, "receiver-alt-ft", 0, "Receiver altitude (feet)")

	rootCmd.Flags().IntVar(&config.StaleTimeoutS, "stale-timeout-s", config.StaleTimeoutS, "Seconds without a message before an aircraft is pruned")
	rootCmd.Flags().IntVar(&config.PhantomTimeoutS, "phantom-timeout-s", config.PhantomTimeoutS, "Seconds before a position-less aircraft is pruned")
	rootCmd.Flags().IntVar(&config.CPRPairWindowS, "cpr-pair-window-s", config.CPRPairWindowS, "Max seconds between even/odd CPR frames for global decode")
	rootCmd.Flags().Float64Var(&config.LocalCPRMaxDistanceNM, "local-cpr-max-distance-nm", config.LocalCPRMaxDistanceNM, "Max plausible distance (NM) for local CPR decode")
	rootCmd.Flags().Float64Var(&config.ProximityHorizontalNM, "proximity-horizontal-nm", config.ProximityHorizontalNM, "Horizontal separation (NM) that triggers a proximity anomaly")
	rootCmd.Flags().Float64Var(&config.ProximityVerticalFt, "proximity-vertical-ft", config.ProximityVerticalFt, "Vertical separation (ft) that triggers a proximity anomaly")
	rootCmd.Flags().StringToIntVar(&emitDedupeWindowS, "emit-dedupe-window-s", nil, "Per anomaly kind re-emit window override, e.g. emergency_squawk=10")
	rootCmd.Flags().StringArrayVar(&geofenceSpecs, "geofence", nil, "Circular geofence as id:lat:lon:radius_nm, repeatable")
	rootCmd.Flags().StringVar(&config.BeastListenAddr, "beast-listen", "", "Address to accept Beast-protocol connections on (e.g. localhost:30005), in addition to RTL-SDR capture")
	rootCmd.Flags().StringVar(&config.HexInputPath, "hex-input", "", "Read rtl_adsb-style hex frame lines from a file (or \"-\" for stdin) instead of RTL-SDR capture")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
