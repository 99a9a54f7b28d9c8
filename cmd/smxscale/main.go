// Package main provides the command-line interface for smxscale
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gliverm/playwright/internal/devicecfg"
	"github.com/gliverm/playwright/internal/logging"
	"github.com/gliverm/playwright/internal/scenario"
	"github.com/gliverm/playwright/internal/scenario/precedence"
	"github.com/gliverm/playwright/internal/smxapi"

	"github.com/spf13/cobra"
)

// CLI flags
var (
	devicesFile    string
	paramsFile     string
	deviceName     string
	connectionName string
	verbose        bool
	generateConfig bool
)

// logDir is where plan runs write their log files
var logDir = "logs"

const (
	sampleDevicesFile = "sample-devices.yaml"
	sampleParamsFile  = "sample-params.yaml"
)

func main() {
	rootCmd := createRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}

func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "smxscale",
		Short: "Validate and plan SMx scale-test configuration",
		Long: `smxscale: validation and request planning for SMx scale tests

Checks the two documents a scale test is driven by:
- devices file: devices and the connections used to reach them
- parameters file: global load-test parameters and scenario sections
  (vlan_crud_data, ont_crud_data, l3_one2one_service_data,
  ont_l2tp_data_service_data, cox_fetch_data)

Examples:
  # Generate sample devices and parameters files
  smxscale --generate-config

  # Validate both documents
  smxscale validate --devices devices.yaml --params params.yaml

  # Check one device connection
  smxscale validate --devices devices.yaml --device simob --connection ssh

  # Rehearse the SMx requests of a run with a shorter network timeout
  smxscale plan --devices devices.yaml --params params.yaml --network-timeout 30 --verbose`,
		SilenceUsage: true,
		RunE:         runRoot,
	}

	rootCmd.Flags().BoolVar(&generateConfig, "generate-config", false, "Generate sample devices and parameters files and exit")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug output")

	rootCmd.AddCommand(createValidateCommand(), createPlanCommand())
	return rootCmd
}

func createValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the devices and parameters files",
		RunE:  runValidate,
	}
	addFileFlags(cmd)
	addOverrideFlags(cmd)
	cmd.Flags().StringVar(&deviceName, "device", "", "Device that must exist in the devices file")
	cmd.Flags().StringVar(&connectionName, "connection", "", "Connection that must exist on --device")
	return cmd
}

func createPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Dry-run the SMx requests of the VLAN and ONT CRUD scenarios",
		RunE:  runPlan,
	}
	addFileFlags(cmd)
	addOverrideFlags(cmd)
	cmd.Flags().StringVar(&deviceName, "device", "", "Plan for this device instead of the parameters file device_name")
	return cmd
}

func addFileFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&devicesFile, "devices", "d", "", "Path to the devices YAML file")
	cmd.Flags().StringVarP(&paramsFile, "params", "p", "", "Path to the test parameters YAML file")
}

// addOverrideFlags registers the flags that take precedence over global
// parameters when explicitly set
func addOverrideFlags(cmd *cobra.Command) {
	defaults := scenario.DefaultGlobal()
	cmd.Flags().Bool("insecure", defaults.Insecure, "Skip TLS certificate verification")
	cmd.Flags().Int("network-timeout", defaults.NetworkTimeout, "Network timeout in seconds (1-120)")
	cmd.Flags().Int("connection-timeout", defaults.ConnectionTimeout, "Connection timeout in seconds (1-120)")
	cmd.Flags().Bool("skip-cleanup", defaults.SkipCleanup, "Do not delete what the scenario created")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if generateConfig {
		return generateSamples(".", cmd.OutOrStdout())
	}
	return fmt.Errorf("a command is required: use 'validate' or 'plan', or --generate-config to create sample files")
}

// generateSamples writes the sample devices and parameters files into dir
func generateSamples(dir string, out io.Writer) error {
	devicesPath := filepath.Join(dir, sampleDevicesFile)
	if err := devicecfg.GenerateSample(devicesPath); err != nil {
		return err
	}
	paramsPath := filepath.Join(dir, sampleParamsFile)
	if err := scenario.GenerateSampleParams(paramsPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "📄 Wrote %s\n", devicesPath)
	fmt.Fprintf(out, "📄 Wrote %s\n", paramsPath)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if devicesFile == "" && paramsFile == "" {
		return fmt.Errorf("nothing to validate. Use --devices and/or --params, or --generate-config to create sample files")
	}
	if connectionName != "" && deviceName == "" {
		return fmt.Errorf("--connection requires --device")
	}
	if deviceName != "" && devicesFile == "" {
		return fmt.Errorf("--device requires --devices")
	}

	if devicesFile != "" {
		registry, err := devicecfg.Load(devicesFile)
		if err != nil {
			return fmt.Errorf("invalid devices file: %w", err)
		}
		fmt.Fprintf(out, "✅ Devices file %s: %d devices (%s)\n",
			devicesFile, registry.Len(), strings.Join(registry.DeviceNames(), ", "))

		if err := checkDevice(out, registry); err != nil {
			return err
		}
	}

	if paramsFile != "" {
		bundle, overrides, err := loadBundle(cmd)
		if err != nil {
			return err
		}
		for _, line := range overrideLines(overrides) {
			fmt.Fprintf(out, "🔄 %s\n", line)
		}
		fmt.Fprintf(out, "✅ Parameters file %s: %s\n", paramsFile, bundle.GetSummary())
	}

	return nil
}

// checkDevice resolves --device and --connection against the registry
func checkDevice(out io.Writer, registry *devicecfg.Registry) error {
	if deviceName == "" {
		return nil
	}

	device, ok := registry.Device(deviceName)
	if !ok {
		return fmt.Errorf("device %q not found in %s", deviceName, devicesFile)
	}
	fmt.Fprintf(out, "  Device %s (%s): connections %s\n",
		device.Name, device.Type, strings.Join(device.ConnectionNames(), ", "))

	if connectionName == "" {
		return nil
	}
	conn, ok := device.Connection(connectionName)
	if !ok {
		return fmt.Errorf("connection %q not found on device %s", connectionName, deviceName)
	}
	fmt.Fprintf(out, "  Connection %s: %s to %s as %s\n",
		connectionName, conn.Kind(), conn.HostName(), conn.Login().Username)
	return nil
}

// loadBundle validates the parameters file and applies command-line
// overrides: CLI > parameters file > defaults
func loadBundle(cmd *cobra.Command) (*scenario.Bundle, map[string]interface{}, error) {
	params, err := scenario.LoadParams(paramsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load parameters: %w", err)
	}

	bundle, err := scenario.ValidateAll(params)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid parameters file %s: %w", paramsFile, err)
	}

	resolver := precedence.NewGlobalResolver(cmd)
	if err := resolver.ApplyGlobalOverrides(bundle); err != nil {
		return nil, nil, fmt.Errorf("failed to apply CLI precedence: %w", err)
	}
	if err := bundle.Global.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid command-line overrides: %w", err)
	}

	return bundle, resolver.GetAppliedOverrides(), nil
}

func overrideLines(overrides map[string]interface{}) []string {
	lines := make([]string, 0, len(overrides))
	for flag, value := range overrides {
		lines = append(lines, fmt.Sprintf("--%s: %v", flag, value))
	}
	sort.Strings(lines)
	return lines
}

// checkEquipment confirms that the parameters file names devices the devices
// file knows, and that smx_name is an SMx with a REST connection
func checkEquipment(registry *devicecfg.Registry, bundle *scenario.Bundle) (*devicecfg.RESTConnection, error) {
	if !bundle.HasEquipment() {
		return nil, nil
	}

	var errs []error
	var rest *devicecfg.RESTConnection

	smx, ok := registry.Device(bundle.Equipment.SMXName)
	switch {
	case !ok:
		errs = append(errs, fmt.Errorf("smx_name %q is not in the devices file", bundle.Equipment.SMXName))
	case smx.Type != devicecfg.DeviceSMX:
		errs = append(errs, fmt.Errorf("smx_name %q has type %s, not smx", smx.Name, smx.Type))
	default:
		conns := smx.ConnectionsByKind(devicecfg.KindREST)
		names := make([]string, 0, len(conns))
		for name := range conns {
			names = append(names, name)
		}
		sort.Strings(names)
		if len(names) == 0 {
			errs = append(errs, fmt.Errorf("smx device %q has no rest connection", smx.Name))
		} else {
			rest = conns[names[0]].(*devicecfg.RESTConnection)
		}
	}

	for _, name := range bundle.Equipment.DeviceNames {
		if _, ok := registry.Device(name); !ok {
			errs = append(errs, fmt.Errorf("device_name %q is not in the devices file", name))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return rest, nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	if paramsFile == "" {
		return fmt.Errorf("parameters file is required. Use --params to specify a YAML file, or --generate-config to create a sample")
	}

	logger, err := logging.NewFileLogger(logDir, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	bundle, overrides, err := loadBundle(cmd)
	if err != nil {
		return err
	}
	if len(overrides) > 0 {
		logger.Info("🔄 CLI flags overriding parameters file settings:")
		for _, line := range overrideLines(overrides) {
			logger.Info("  " + line)
		}
	}
	logger.Info(fmt.Sprintf("Parameters file: %s", paramsFile))
	logger.Info(fmt.Sprintf("Bundle summary: %s", bundle.GetSummary()))

	if devicesFile != "" {
		registry, err := devicecfg.Load(devicesFile)
		if err != nil {
			return fmt.Errorf("invalid devices file: %w", err)
		}
		rest, err := checkEquipment(registry, bundle)
		if err != nil {
			return fmt.Errorf("parameters do not match devices file: %w", err)
		}
		if rest != nil {
			logger.Info(fmt.Sprintf("Target SMx: %s:%d%s", rest.Host, rest.APIPort, rest.APIRoot))
		}
	}

	planner := smxapi.Planner{}
	if deviceName != "" {
		planner.Devices = []string{deviceName}
	}
	plan, err := planner.Plan(bundle)
	if err != nil {
		return fmt.Errorf("failed to plan requests: %w", err)
	}

	issuer := smxapi.NewDryRunIssuer(logger)
	results, err := smxapi.NewRunner(issuer, smxapi.Options{DryRun: true, Logger: logger}).Run(ctx, plan)
	if err != nil {
		return fmt.Errorf("plan run failed: %w", err)
	}

	fmt.Fprintf(out, "📋 Planned %d requests (%d create, %d delete)\n",
		len(plan.Steps), plan.Count(smxapi.OperationCreate), plan.Count(smxapi.OperationDelete))

	if len(results.Errors) > 0 {
		return fmt.Errorf("plan completed with %d failed requests", len(results.Errors))
	}
	logger.Info("✅ All planned requests completed successfully")
	return nil
}
