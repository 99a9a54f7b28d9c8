// Package devicecfg defines the device and connection descriptor schema used by
// the scale-test harness and the registry that loads it
package devicecfg

// ConnectionKind is the discriminating "type" tag of a connection descriptor
type ConnectionKind string

const (
	KindNetconf ConnectionKind = "netconf"
	KindSSH     ConnectionKind = "ssh"
	KindREST    ConnectionKind = "rest"
	KindFTP     ConnectionKind = "ftp"
)

// ConnectionKinds lists the closed set of descriptor kinds
var ConnectionKinds = []ConnectionKind{KindNetconf, KindSSH, KindREST, KindFTP}

// DeviceType is the platform tag of a device
type DeviceType string

const (
	DeviceAXOS DeviceType = "axos"
	DeviceSMX  DeviceType = "smx"
	DeviceFTP  DeviceType = "ftp"
)

// Default values applied when a descriptor omits the field
const (
	DefaultNetconfPort = 830
	DefaultSSHPort     = 22
	DefaultFTPPort     = 21
	DefaultTimeout     = 60
	DefaultAPIPort     = 18443
	DefaultAPIRoot     = "/rest/v1"
)

// Credentials holds the login pair of a descriptor
type Credentials struct {
	Username string
	Password string
}

// Connection is one validated way to reach a device. The set of
// implementations is closed: *NetconfConnection, *SSHConnection,
// *RESTConnection and *FTPConnection.
type Connection interface {
	Kind() ConnectionKind
	HostName() string
	Login() Credentials
	// Extras returns keys the schema does not declare, kept verbatim
	Extras() map[string]interface{}

	connection()
}

// NetconfConnection describes a NETCONF session
type NetconfConnection struct {
	Type     ConnectionKind `json:"type" yaml:"type" validate:"eq=netconf"`
	Host     string         `json:"host" yaml:"host" validate:"host"`
	Username string         `json:"username" yaml:"username" validate:"max=255"`
	Password string         `json:"password" yaml:"password" validate:"max=255"`
	Port     int            `json:"port" yaml:"port" validate:"min=1,max=65535"`
	Timeout  int            `json:"timeout" yaml:"timeout" validate:"min=1,max=120"`

	Extra map[string]interface{} `json:"-" yaml:",inline"`
}

// SSHConnection describes a CLI session over SSH
type SSHConnection struct {
	Type     ConnectionKind `json:"type" yaml:"type" validate:"eq=ssh"`
	Host     string         `json:"host" yaml:"host" validate:"host"`
	Username string         `json:"username" yaml:"username" validate:"max=255"`
	Password string         `json:"password" yaml:"password" validate:"max=255"`
	Port     int            `json:"port" yaml:"port" validate:"min=1,max=65535"`
	Timeout  int            `json:"timeout" yaml:"timeout" validate:"min=1,max=120"`

	Extra map[string]interface{} `json:"-" yaml:",inline"`
}

// RESTConnection describes the SMx REST API endpoint
type RESTConnection struct {
	Type     ConnectionKind `json:"type" yaml:"type" validate:"eq=rest"`
	Host     string         `json:"host" yaml:"host" validate:"host"`
	Username string         `json:"username" yaml:"username" validate:"max=255"`
	Password string         `json:"password" yaml:"password" validate:"max=255"`
	APIPort  int            `json:"apiport" yaml:"apiport" validate:"min=1,max=65535"`
	APIRoot  string         `json:"apiroot" yaml:"apiroot"`

	Extra map[string]interface{} `json:"-" yaml:",inline"`
}

// FTPConnection describes a file transfer endpoint
type FTPConnection struct {
	Type     ConnectionKind `json:"type" yaml:"type" validate:"eq=ftp"`
	Host     string         `json:"host" yaml:"host" validate:"host"`
	Username string         `json:"username" yaml:"username" validate:"max=255"`
	Password string         `json:"password" yaml:"password" validate:"max=255"`
	Port     int            `json:"port" yaml:"port" validate:"min=1,max=65535"`
	Timeout  int            `json:"timeout" yaml:"timeout" validate:"min=1,max=120"`

	Extra map[string]interface{} `json:"-" yaml:",inline"`
}

func (c *NetconfConnection) Kind() ConnectionKind {
	return KindNetconf
}

func (c *NetconfConnection) HostName() string {
	return c.Host
}

func (c *NetconfConnection) Login() Credentials {
	return Credentials{c.Username, c.Password}
}

func (c *NetconfConnection) Extras() map[string]interface{} {
	return c.Extra
}

func (c *NetconfConnection) connection() {}

func (c *SSHConnection) Kind() ConnectionKind {
	return KindSSH
}

func (c *SSHConnection) HostName() string {
	return c.Host
}

func (c *SSHConnection) Login() Credentials {
	return Credentials{c.Username, c.Password}
}

func (c *SSHConnection) Extras() map[string]interface{} {
	return c.Extra
}

func (c *SSHConnection) connection() {}

func (c *RESTConnection) Kind() ConnectionKind {
	return KindREST
}

func (c *RESTConnection) HostName() string {
	return c.Host
}

func (c *RESTConnection) Login() Credentials {
	return Credentials{c.Username, c.Password}
}

func (c *RESTConnection) Extras() map[string]interface{} {
	return c.Extra
}

func (c *RESTConnection) connection() {}

func (c *FTPConnection) Kind() ConnectionKind {
	return KindFTP
}

func (c *FTPConnection) HostName() string {
	return c.Host
}

func (c *FTPConnection) Login() Credentials {
	return Credentials{c.Username, c.Password}
}

func (c *FTPConnection) Extras() map[string]interface{} {
	return c.Extra
}

func (c *FTPConnection) connection() {}

// newConnection returns an empty descriptor of kind with its defaults filled in
func newConnection(kind ConnectionKind) (Connection, bool) {
	switch kind {
	case KindNetconf:
		return &NetconfConnection{Port: DefaultNetconfPort, Timeout: DefaultTimeout}, true
	case KindSSH:
		return &SSHConnection{Port: DefaultSSHPort, Timeout: DefaultTimeout}, true
	case KindREST:
		return &RESTConnection{APIPort: DefaultAPIPort, APIRoot: DefaultAPIRoot}, true
	case KindFTP:
		return &FTPConnection{Port: DefaultFTPPort, Timeout: DefaultTimeout}, true
	default:
		return nil, false
	}
}

// Device is a named device with its connection descriptors
type Device struct {
	Name        string                `json:"-" yaml:"-"`
	Type        DeviceType            `json:"type" yaml:"type" validate:"oneof=axos smx ftp"`
	Connections map[string]Connection `json:"connections" yaml:"connections"`

	Extra map[string]interface{} `json:"-" yaml:",inline"`
}
