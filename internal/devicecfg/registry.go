package devicecfg

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gliverm/playwright/internal/validation"

	"gopkg.in/yaml.v3"
)

// Registry holds every validated device of one devices document.
// It is read-only once loaded.
type Registry struct {
	devices map[string]*Device

	// Extra holds top-level keys other than "devices"
	Extra map[string]interface{}

	// Source is the path the registry was loaded from, empty for readers
	Source string
}

// Load reads and validates the devices document at path
func Load(path string) (*Registry, error) {
	if path == "" {
		return nil, &ConfigError{Msg: "devices file is required"}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("cannot open devices yaml file %s", path), Err: err}
	}
	defer f.Close()

	reg, err := read(f, path)
	if err != nil {
		return nil, err
	}
	reg.Source = path
	return reg, nil
}

// Read validates a devices document from r. The caller keeps ownership of r.
func Read(r io.Reader) (*Registry, error) {
	return read(r, "")
}

// Parse validates a devices document held in memory
func Parse(data []byte) (*Registry, error) {
	return read(bytes.NewReader(data), "")
}

func read(r io.Reader, source string) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ConfigError{Msg: "devices file I/O error", Err: err}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ConfigError{
			Msg: "YAML error while parsing devices file, please correct data and retry",
			Err: &validation.ParseError{Source: source, Err: err},
		}
	}

	doc := validation.Unwrap(&root)
	if doc == nil || doc.Kind == 0 || validation.IsNull(doc) ||
		(doc.Kind == yaml.MappingNode && len(doc.Content) == 0) {
		return nil, &ConfigError{Msg: "invalid devices file", Err: ErrNoData}
	}

	var raw struct {
		Devices map[string]yaml.Node   `yaml:"devices"`
		Extra   map[string]interface{} `yaml:",inline"`
	}
	if err := validation.DecodeNode("", doc, &raw); err != nil {
		return nil, &ConfigError{Msg: "invalid devices file", Err: err}
	}
	if len(raw.Devices) == 0 {
		return nil, &ConfigError{Msg: "invalid devices file", Err: ErrNoDevices}
	}

	reg := &Registry{
		devices: make(map[string]*Device, len(raw.Devices)),
		Extra:   raw.Extra,
	}

	// One bad device rejects the whole document
	var errs validation.Errors
	for _, name := range sortedKeys(raw.Devices) {
		node := raw.Devices[name]
		device, err := buildDevice(validation.JoinPath("devices", name), name, &node)
		if err != nil {
			errs.Add(validation.JoinPath("devices", name), err)
			continue
		}
		reg.devices[name] = device
	}
	if err := errs.Err(); err != nil {
		return nil, &ConfigError{Msg: "invalid devices file", Err: err}
	}

	return reg, nil
}

func buildDevice(path, name string, node *yaml.Node) (*Device, error) {
	if missing := validation.RequireKeys(path, node, "type", "connections"); len(missing) > 0 {
		return nil, missing
	}

	var raw struct {
		Type        DeviceType             `yaml:"type"`
		Connections map[string]yaml.Node   `yaml:"connections"`
		Extra       map[string]interface{} `yaml:",inline"`
	}
	if err := validation.DecodeNode(path, node, &raw); err != nil {
		return nil, err
	}

	device := &Device{
		Name:        name,
		Type:        raw.Type,
		Connections: make(map[string]Connection, len(raw.Connections)),
		Extra:       raw.Extra,
	}

	var errs validation.Errors
	errs.Add(path, validation.Struct(path, device))

	// The map key is a free-form label; dispatch follows the descriptor's own type
	for _, connName := range sortedKeys(raw.Connections) {
		connNode := raw.Connections[connName]
		connPath := validation.JoinPath(path, "connections."+connName)
		conn, err := decodeConnection(connPath, &connNode)
		if err != nil {
			errs.Add(connPath, err)
			continue
		}
		device.Connections[connName] = conn
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return device, nil
}

func decodeConnection(path string, node *yaml.Node) (Connection, error) {
	if missing := validation.RequireKeys(path, node, "type", "host", "username", "password"); len(missing) > 0 {
		return nil, missing
	}
	// A null string would decode to "" and slip past the length checks
	if nulls := validation.RejectNull(path, node, "type", "host", "username", "password"); len(nulls) > 0 {
		return nil, nulls
	}

	var tag struct {
		Type ConnectionKind `yaml:"type"`
	}
	if err := validation.DecodeNode(path, node, &tag); err != nil {
		return nil, err
	}

	conn, ok := newConnection(tag.Type)
	if !ok {
		return nil, validation.Schemaf(validation.JoinPath(path, "type"),
			"unsupported connection type '%s', expected one of %s", tag.Type, kindList())
	}

	if err := validation.DecodeNode(path, node, conn); err != nil {
		return nil, err
	}
	if err := validation.Struct(path, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Len returns the number of devices
func (r *Registry) Len() int {
	return len(r.devices)
}

// DeviceNames returns the device names in sorted order
func (r *Registry) DeviceNames() []string {
	return sortedKeys(r.devices)
}

// Device returns the named device; ok is false for unknown names
func (r *Registry) Device(name string) (*Device, bool) {
	device, ok := r.devices[name]
	return device, ok
}

// Connection looks up a connection by device and connection name
func (r *Registry) Connection(deviceName, connectionName string) (Connection, bool) {
	device, ok := r.Device(deviceName)
	if !ok {
		return nil, false
	}
	return device.Connection(connectionName)
}

// ConnectionsByKind returns the device's connections of the given kind. The
// result is empty, never nil, when the device is unknown or nothing matches.
func (r *Registry) ConnectionsByKind(deviceName string, kind ConnectionKind) map[string]Connection {
	device, ok := r.Device(deviceName)
	if !ok {
		return map[string]Connection{}
	}
	return device.ConnectionsByKind(kind)
}

// ConnectionNames returns the device's connection names in sorted order
func (d *Device) ConnectionNames() []string {
	return sortedKeys(d.Connections)
}

// Connection returns the named connection; ok is false for unknown names
func (d *Device) Connection(name string) (Connection, bool) {
	conn, ok := d.Connections[name]
	return conn, ok
}

// ConnectionsByKind returns the connections whose descriptor type is kind
func (d *Device) ConnectionsByKind(kind ConnectionKind) map[string]Connection {
	matches := make(map[string]Connection)
	for name, conn := range d.Connections {
		if conn.Kind() == kind {
			matches[name] = conn
		}
	}
	return matches
}

func kindList() string {
	names := make([]string, 0, len(ConnectionKinds))
	for _, k := range ConnectionKinds {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
