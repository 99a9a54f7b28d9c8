// Package precedence applies command-line overrides on top of the validated
// parameter document
package precedence

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"
)

// fieldFlags maps overridable parameter fields to their CLI flags
var fieldFlags = map[string]string{
	"Insecure":          "insecure",
	"NetworkTimeout":    "network-timeout",
	"ConnectionTimeout": "connection-timeout",
	"SkipCleanup":       "skip-cleanup",
}

// flagOrder keeps override reporting stable
var flagOrder = []string{"insecure", "network-timeout", "connection-timeout", "skip-cleanup"}

// GlobalResolver handles precedence resolution for the parameter bundle
type GlobalResolver struct {
	cmd *cobra.Command
}

// NewGlobalResolver creates a new global precedence resolver
func NewGlobalResolver(cmd *cobra.Command) *GlobalResolver {
	return &GlobalResolver{
		cmd: cmd,
	}
}

// ApplyGlobalOverrides applies CLI flag overrides to every part of the bundle
// that carries an overridable field: CLI > parameter file > defaults
func (r *GlobalResolver) ApplyGlobalOverrides(bundle interface{}) error {
	type configBundle interface {
		GetAllConfigs() []interface{}
	}

	b, ok := bundle.(configBundle)
	if !ok {
		return fmt.Errorf("bundle does not implement GetAllConfigs")
	}

	for i, cfg := range b.GetAllConfigs() {
		if err := r.applyToConfig(cfg); err != nil {
			return fmt.Errorf("failed to apply precedence to config %d: %w", i, err)
		}
	}

	return nil
}

// applyToConfig applies CLI overrides to a single configuration
func (r *GlobalResolver) applyToConfig(cfg interface{}) error {
	if r.cmd == nil {
		return nil
	}

	cfgValue := reflect.ValueOf(cfg)
	if cfgValue.Kind() != reflect.Ptr || cfgValue.IsNil() {
		return fmt.Errorf("config %T is not settable", cfg)
	}
	cfgValue = cfgValue.Elem()
	if cfgValue.Kind() != reflect.Struct {
		return nil
	}

	cfgType := cfgValue.Type()
	for i := 0; i < cfgValue.NumField(); i++ {
		field := cfgValue.Field(i)
		flagName, ok := fieldFlags[cfgType.Field(i).Name]
		if !ok || !field.CanSet() {
			continue
		}

		// Only explicitly set flags win over the parameter file
		if r.cmd.Flags().Changed(flagName) {
			if err := r.setFieldFromFlag(field, flagName); err != nil {
				return fmt.Errorf("failed to set %s from flag: %w", cfgType.Field(i).Name, err)
			}
		}
	}

	return nil
}

// setFieldFromFlag sets a field value from the corresponding CLI flag
func (r *GlobalResolver) setFieldFromFlag(field reflect.Value, flagName string) error {
	switch field.Kind() {
	case reflect.Bool:
		val, err := r.cmd.Flags().GetBool(flagName)
		if err != nil {
			return err
		}
		field.SetBool(val)

	case reflect.String:
		val, err := r.cmd.Flags().GetString(flagName)
		if err != nil {
			return err
		}
		field.SetString(val)

	case reflect.Int:
		val, err := r.cmd.Flags().GetInt(flagName)
		if err != nil {
			return err
		}
		field.SetInt(int64(val))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// GetAppliedOverrides returns the explicitly set override flags and their values
func (r *GlobalResolver) GetAppliedOverrides() map[string]interface{} {
	overrides := make(map[string]interface{})
	if r.cmd == nil {
		return overrides
	}

	for _, flagName := range flagOrder {
		if r.cmd.Flags().Changed(flagName) {
			if flag := r.cmd.Flags().Lookup(flagName); flag != nil {
				overrides[flagName] = flag.Value.String()
			}
		}
	}

	return overrides
}
