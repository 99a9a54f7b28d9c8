package devicecfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GetDefaultDevices returns an example set of devices: one AXOS OLT reachable
// over NETCONF and SSH, and the SMx server
func GetDefaultDevices() map[string]*Device {
	return map[string]*Device{
		"simob": {
			Name: "simob",
			Type: DeviceAXOS,
			Connections: map[string]Connection{
				"netconf": &NetconfConnection{
					Type:     KindNetconf,
					Host:     "10.137.12.159",
					Username: "calixsupport",
					Password: "calixsupport",
					Port:     DefaultNetconfPort,
					Timeout:  DefaultTimeout,
				},
				"ssh": &SSHConnection{
					Type:     KindSSH,
					Host:     "10.137.12.159",
					Username: "calixsupport",
					Password: "calixsupport",
					Port:     DefaultSSHPort,
					Timeout:  DefaultTimeout,
				},
			},
		},
		"smx": {
			Name: "smx",
			Type: DeviceSMX,
			Connections: map[string]Connection{
				"rest": &RESTConnection{
					Type:     KindREST,
					Host:     "smx04.example.local",
					Username: "admin",
					Password: "changeme",
					APIPort:  DefaultAPIPort,
					APIRoot:  DefaultAPIRoot,
				},
			},
		},
	}
}

// MarshalDevices renders devices as a devices document
func MarshalDevices(devices map[string]*Device) ([]byte, error) {
	doc := struct {
		Devices map[string]*Device `yaml:"devices"`
	}{Devices: devices}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal devices: %w", err)
	}
	return data, nil
}

// GenerateSample writes the example devices document to filename
func GenerateSample(filename string) error {
	data, err := MarshalDevices(GetDefaultDevices())
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write sample devices file: %w", err)
	}

	return nil
}
