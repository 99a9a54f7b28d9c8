// Package devicecfg provides unit tests for device document loading and lookups
// WHY: Every load-test user resolves its target connections through the registry before any traffic starts
package devicecfg

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gliverm/playwright/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDevices = `devices:
  simob:
    type: 'axos'
    location: lab-3
    connections:
      netconf:
        type: 'netconf'
        host: "10.137.12.159"
        username: "calixsupport"
        password: "calixsupport"
        port: 830
        timeout: 60
      ssh:
        type: 'ssh'
        host: "10.137.12.159"
        username: "calixsupport"
        password: "calixsupport"
        keyfile: ~/.ssh/id_rsa
  smx:
    type: 'smx'
    connections:
      rest:
        type: 'rest'
        host: sjcx-smx04.calix.local
        username: admin
        password: test123
      archive:
        type: ftp
        host: "2001:db8::10"
        username: ftpuser
        password: ftppass
        port: 2121
`

// TestParse_ValidDocument tests loading a complete devices document
// WHY: The happy path must yield typed descriptors with defaults applied
func TestParse_ValidDocument(t *testing.T) {
	// When: Parse document
	reg, err := Parse([]byte(validDevices))

	// Then: Verify devices and descriptors
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"simob", "smx"}, reg.DeviceNames())

	simob, ok := reg.Device("simob")
	require.True(t, ok)
	assert.Equal(t, DeviceAXOS, simob.Type)
	assert.Equal(t, "simob", simob.Name)
	assert.Equal(t, "lab-3", simob.Extra["location"], "Unknown device keys are kept")
	assert.Equal(t, []string{"netconf", "ssh"}, simob.ConnectionNames())

	conn, ok := reg.Connection("simob", "ssh")
	require.True(t, ok)
	ssh, ok := conn.(*SSHConnection)
	require.True(t, ok, "ssh descriptor should be *SSHConnection")
	assert.Equal(t, DefaultSSHPort, ssh.Port, "Port default applied")
	assert.Equal(t, DefaultTimeout, ssh.Timeout, "Timeout default applied")
	assert.Equal(t, "~/.ssh/id_rsa", ssh.Extras()["keyfile"], "Unknown descriptor keys are kept")
	assert.Equal(t, Credentials{Username: "calixsupport", Password: "calixsupport"}, ssh.Login())

	conn, ok = reg.Connection("smx", "rest")
	require.True(t, ok)
	rest, ok := conn.(*RESTConnection)
	require.True(t, ok)
	assert.Equal(t, DefaultAPIPort, rest.APIPort)
	assert.Equal(t, DefaultAPIRoot, rest.APIRoot)
	assert.Equal(t, "sjcx-smx04.calix.local", rest.HostName())

	conn, ok = reg.Connection("smx", "archive")
	require.True(t, ok)
	assert.Equal(t, KindFTP, conn.Kind())
	assert.Equal(t, 2121, conn.(*FTPConnection).Port)
}

// TestRegistry_AbsentLookups tests lookups for names that are not configured
// WHY: Call sites branch on "not configured" without error handling
func TestRegistry_AbsentLookups(t *testing.T) {
	reg, err := Parse([]byte(validDevices))
	require.NoError(t, err)

	device, ok := reg.Device("not_present")
	assert.False(t, ok)
	assert.Nil(t, device)

	conn, ok := reg.Connection("not_present", "netconf")
	assert.False(t, ok)
	assert.Nil(t, conn)

	conn, ok = reg.Connection("simob", "not_present")
	assert.False(t, ok)
	assert.Nil(t, conn)

	byKind := reg.ConnectionsByKind("not_present", KindSSH)
	assert.NotNil(t, byKind)
	assert.Empty(t, byKind)
}

// TestRegistry_ConnectionsByKind tests filtering descriptors by their own type tag
// WHY: A load-test user asks for "any netconf connection" of a device
func TestRegistry_ConnectionsByKind(t *testing.T) {
	reg, err := Parse([]byte(validDevices))
	require.NoError(t, err)

	netconf := reg.ConnectionsByKind("simob", KindNetconf)
	require.Len(t, netconf, 1)
	assert.Contains(t, netconf, "netconf")

	assert.Empty(t, reg.ConnectionsByKind("simob", KindREST))
	assert.Len(t, reg.ConnectionsByKind("smx", KindFTP), 1)
}

// TestParse_KeyDoesNotDecideKind tests that the map key is only a label
// WHY: Dispatch follows the descriptor's type tag, so a key may name any kind
func TestParse_KeyDoesNotDecideKind(t *testing.T) {
	doc := `devices:
  olt:
    type: axos
    connections:
      ssh:
        type: netconf
        host: olt.example.net
        username: u
        password: p
`
	reg, err := Parse([]byte(doc))
	require.NoError(t, err)

	conn, ok := reg.Connection("olt", "ssh")
	require.True(t, ok)
	assert.Equal(t, KindNetconf, conn.Kind())
	assert.Equal(t, DefaultNetconfPort, conn.(*NetconfConnection).Port)
	assert.Empty(t, reg.ConnectionsByKind("olt", KindSSH))
}

// TestParse_MergeKeys tests descriptors that share fields through YAML merge keys
// WHY: Operators factor repeated credentials into an anchor; merged keys count as written
func TestParse_MergeKeys(t *testing.T) {
	doc := `devices:
  olt:
    type: axos
    login: &login
      username: admin
      password: ""
    connections:
      ssh:
        <<: *login
        type: ssh
        host: 10.0.0.1
      netconf:
        <<: [*login]
        type: netconf
        host: 10.0.0.1
        username: operator
`
	reg, err := Parse([]byte(doc))
	require.NoError(t, err)

	ssh, ok := reg.Connection("olt", "ssh")
	require.True(t, ok)
	assert.Equal(t, "admin", ssh.Login().Username)
	assert.Empty(t, ssh.Login().Password, "An empty password is allowed, only null is rejected")

	netconf, ok := reg.Connection("olt", "netconf")
	require.True(t, ok)
	assert.Equal(t, "operator", netconf.Login().Username, "Literal keys win over merged ones")
}

// TestParse_NullOptionalFields tests optional numbers written as null
// WHY: A null port or timeout means "not set" and falls back to the kind's default
func TestParse_NullOptionalFields(t *testing.T) {
	doc := "devices:\n  olt:\n    type: axos\n    connections:\n      ssh:\n" +
		"        type: ssh\n        host: 10.0.0.1\n        username: u\n        password: p\n" +
		"        port: ~\n        timeout: null\n"

	reg, err := Parse([]byte(doc))
	require.NoError(t, err)

	conn, ok := reg.Connection("olt", "ssh")
	require.True(t, ok)
	assert.Equal(t, DefaultSSHPort, conn.(*SSHConnection).Port)
	assert.Equal(t, DefaultTimeout, conn.(*SSHConnection).Timeout)
}

// TestParse_EmptyConnections tests a device without descriptors
// WHY: A device may be declared before any transport is configured
func TestParse_EmptyConnections(t *testing.T) {
	reg, err := Parse([]byte("devices:\n  spare:\n    type: ftp\n    connections: {}\n"))
	require.NoError(t, err)

	device, ok := reg.Device("spare")
	require.True(t, ok)
	assert.Empty(t, device.Connections)
}

// TestParse_EmptyDocuments tests documents with no devices
// WHY: An empty registry is a configuration mistake, never a valid setup
func TestParse_EmptyDocuments(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		expectErr error
	}{
		{name: "empty_string", doc: "", expectErr: ErrNoData},
		{name: "whitespace_only", doc: "   \n\n", expectErr: ErrNoData},
		{name: "explicit_null", doc: "~\n", expectErr: ErrNoData},
		{name: "empty_mapping", doc: "{}\n", expectErr: ErrNoData},
		{name: "empty_devices", doc: "devices: {}\n", expectErr: ErrNoDevices},
		{name: "null_devices", doc: "devices:\n", expectErr: ErrNoDevices},
		{name: "missing_devices_key", doc: "other: 1\n", expectErr: ErrNoDevices},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: Parse document
			reg, err := Parse([]byte(tt.doc))

			// Then: Verify configuration error
			assert.Nil(t, reg)
			require.Error(t, err)
			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr), "Should be a ConfigError")
			assert.True(t, errors.Is(err, tt.expectErr), "Should wrap %v, got %v", tt.expectErr, err)
		})
	}
}

// TestParse_SchemaViolations tests rejection of malformed descriptors and devices
// WHY: Each violation must name the offending field path and constraint
func TestParse_SchemaViolations(t *testing.T) {
	conn := func(body string) string {
		return "devices:\n  olt:\n    type: axos\n    connections:\n      c1:\n" + body
	}

	tests := []struct {
		name       string
		doc        string
		expectPath string
		expectText string
	}{
		{
			name:       "port_above_range",
			doc:        conn("        type: ssh\n        host: 10.0.0.1\n        username: u\n        password: p\n        port: 70000\n"),
			expectPath: "devices.olt.connections.c1.port",
			expectText: "less than or equal to 65535",
		},
		{
			name:       "port_zero",
			doc:        conn("        type: netconf\n        host: 10.0.0.1\n        username: u\n        password: p\n        port: 0\n"),
			expectPath: "devices.olt.connections.c1.port",
			expectText: "greater than or equal to 1",
		},
		{
			name:       "timeout_above_range",
			doc:        conn("        type: ftp\n        host: 10.0.0.1\n        username: u\n        password: p\n        timeout: 121\n"),
			expectPath: "devices.olt.connections.c1.timeout",
			expectText: "less than or equal to 120",
		},
		{
			name:       "username_too_long",
			doc:        conn("        type: ssh\n        host: 10.0.0.1\n        username: " + strings.Repeat("u", 256) + "\n        password: p\n"),
			expectPath: "devices.olt.connections.c1.username",
			expectText: "at most 255 characters",
		},
		{
			name:       "invalid_host",
			doc:        conn("        type: rest\n        host: not_a_host\n        username: u\n        password: p\n"),
			expectPath: "devices.olt.connections.c1.host",
			expectText: "IPv4 address, FQDN, or IPv6 address",
		},
		{
			name:       "missing_password",
			doc:        conn("        type: ssh\n        host: 10.0.0.1\n        username: u\n"),
			expectPath: "devices.olt.connections.c1.password",
			expectText: "is required",
		},
		{
			name:       "null_username",
			doc:        conn("        type: ssh\n        host: 10.0.0.1\n        username: ~\n        password: p\n"),
			expectPath: "devices.olt.connections.c1.username",
			expectText: "must not be null",
		},
		{
			name:       "null_password",
			doc:        conn("        type: netconf\n        host: 10.0.0.1\n        username: u\n        password: null\n"),
			expectPath: "devices.olt.connections.c1.password",
			expectText: "must not be null",
		},
		{
			name:       "missing_type",
			doc:        conn("        host: 10.0.0.1\n        username: u\n        password: p\n"),
			expectPath: "devices.olt.connections.c1.type",
			expectText: "is required",
		},
		{
			name:       "unsupported_type",
			doc:        conn("        type: telnet\n        host: 10.0.0.1\n        username: u\n        password: p\n"),
			expectPath: "devices.olt.connections.c1.type",
			expectText: "unsupported connection type 'telnet'",
		},
		{
			name:       "port_not_a_number",
			doc:        conn("        type: ssh\n        host: 10.0.0.1\n        username: u\n        password: p\n        port: twenty-two\n"),
			expectPath: "devices.olt.connections.c1",
			expectText: "cannot unmarshal",
		},
		{
			name:       "descriptor_not_a_mapping",
			doc:        conn("        just-a-string\n"),
			expectPath: "devices.olt.connections.c1",
			expectText: "must be a mapping",
		},
		{
			name:       "unknown_device_type",
			doc:        "devices:\n  olt:\n    type: junos\n    connections: {}\n",
			expectPath: "devices.olt.type",
			expectText: "must be one of [axos, smx, ftp]",
		},
		{
			name:       "missing_connections",
			doc:        "devices:\n  olt:\n    type: axos\n",
			expectPath: "devices.olt.connections",
			expectText: "is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: Parse document
			reg, err := Parse([]byte(tt.doc))

			// Then: Verify schema error
			assert.Nil(t, reg)
			require.Error(t, err)

			var errs validation.Errors
			require.True(t, errors.As(err, &errs), "Should carry validation errors, got %v", err)
			var paths []string
			for _, e := range errs {
				paths = append(paths, e.Path)
			}
			assert.Contains(t, paths, tt.expectPath)
			assert.Contains(t, err.Error(), tt.expectText)
		})
	}
}

// TestParse_OneBadDeviceRejectsAll tests the no-partial-registry rule
// WHY: A half-loaded registry would silently drop targets from a load test
func TestParse_OneBadDeviceRejectsAll(t *testing.T) {
	doc := validDevices + `  broken:
    type: axos
    connections:
      ssh:
        type: ssh
        host: 10.0.0.1
        username: u
        password: p
        port: -1
`
	reg, err := Parse([]byte(doc))
	assert.Nil(t, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "devices.broken.connections.ssh.port")
}

// TestParse_InvalidYAML tests parse failures with position context
// WHY: Operators need the line to fix a broken file
func TestParse_InvalidYAML(t *testing.T) {
	reg, err := Parse([]byte("devices:\n\tolt:\n    type: axos\n"))
	assert.Nil(t, reg)
	require.Error(t, err)

	var parseErr *validation.ParseError
	assert.True(t, errors.As(err, &parseErr), "Should wrap a ParseError")
	assert.Contains(t, err.Error(), "line")
}

// TestLoad_File tests loading from a path
// WHY: The CLI and load-test setup hand the registry a file name
func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDevices), 0644))

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, reg.Source)
	assert.Equal(t, 2, reg.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "cannot open devices yaml file")

	_, err = Load("")
	assert.Error(t, err)
}

type trackingReader struct {
	io.Reader
	closed bool
}

func (r *trackingReader) Close() error {
	r.closed = true
	return nil
}

// TestRead_DoesNotCloseCallerStream tests ownership of caller-supplied readers
// WHY: The caller opened the stream and remains responsible for it
func TestRead_DoesNotCloseCallerStream(t *testing.T) {
	r := &trackingReader{Reader: strings.NewReader(validDevices)}

	reg, err := Read(r)
	require.NoError(t, err)
	assert.Empty(t, reg.Source)
	assert.False(t, r.closed, "Read must not close the reader")
}

// TestGenerateSample tests that the generated sample loads cleanly
// WHY: The sample is the starting point operators copy from
func TestGenerateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample-devices.yaml")
	require.NoError(t, GenerateSample(path))

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"simob", "smx"}, reg.DeviceNames())
	assert.Len(t, reg.ConnectionsByKind("simob", KindNetconf), 1)
}

// TestMarshalDevices_KeepsExtras tests round-trip of undeclared keys
// WHY: Forward-compatible fields must survive a load and re-emit
func TestMarshalDevices_KeepsExtras(t *testing.T) {
	reg, err := Parse([]byte(validDevices))
	require.NoError(t, err)

	devices := make(map[string]*Device)
	for _, name := range reg.DeviceNames() {
		devices[name], _ = reg.Device(name)
	}
	data, err := MarshalDevices(devices)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	conn, ok := again.Connection("simob", "ssh")
	require.True(t, ok)
	assert.Equal(t, "~/.ssh/id_rsa", conn.Extras()["keyfile"])

	simob, _ := again.Device("simob")
	assert.Equal(t, "lab-3", simob.Extra["location"])
}
