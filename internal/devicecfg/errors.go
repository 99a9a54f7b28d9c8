package devicecfg

import "errors"

// ErrNoData is returned when the devices document is empty
var ErrNoData = errors.New("no data in devices yaml file")

// ErrNoDevices is returned when the document defines no devices
var ErrNoDevices = errors.New("no devices defined in devices yaml file")

// ConfigError reports a devices document that could not be loaded
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
