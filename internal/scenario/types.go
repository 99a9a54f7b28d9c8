// Package scenario validates and normalizes the per-scenario sections of a
// load-test parameter document
package scenario

import (
	"github.com/gliverm/playwright/internal/defaults"

	"gopkg.in/yaml.v3"
)

// Section keys of the parameter document
const (
	SectionVLANCrud    = "vlan_crud_data"
	SectionONTCrud     = "ont_crud_data"
	SectionL3Service   = "l3_one2one_service_data"
	SectionL2TPService = "ont_l2tp_data_service_data"
	SectionCoxFetch    = "cox_fetch_data"
)

// VLANCrudData is the normalized VLAN CRUD section
type VLANCrudData struct {
	// VLANIDs is the expanded, duplicate-free ID sequence in input order
	VLANIDs []int `json:"vlan_ids" yaml:"vlan_ids"`
}

// ONTCrudData is the plain ONT CRUD section
type ONTCrudData struct {
	ONTs ONTCrud `json:"onts" yaml:"onts"`
}

// ONTCrud holds the ONT CRUD records after defaults are applied
type ONTCrud struct {
	ForceDelete string      `json:"force_delete" yaml:"force_delete"`
	Defaults    ONTDefaults `json:"defaults" yaml:"defaults"`
	Config      []ONTConfig `json:"ont_config" yaml:"ont_config" validate:"dive"`
}

// ONTDefaults is the fallback record for ONT CRUD items
type ONTDefaults struct {
	ProfileID *string `json:"profile_id,omitempty" yaml:"profile_id,omitempty"`
	VendorID  *string `json:"vendor_id,omitempty" yaml:"vendor_id,omitempty"`
}

// ONTConfig is one ONT to create and delete
type ONTConfig struct {
	defaults.Fields `json:"-" yaml:"-"`

	ONTID        string  `json:"ont_id" yaml:"ont_id" validate:"required"`
	SerialNumber string  `json:"serial_number" yaml:"serial_number" validate:"required"`
	ProfileID    *string `json:"profile_id,omitempty" yaml:"profile_id,omitempty"`
	VendorID     *string `json:"vendor_id,omitempty" yaml:"vendor_id,omitempty"`
}

func (c *ONTConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain ONTConfig
	return defaults.Decode(node, (*plain)(c), &c.Fields)
}

// L3ServiceData is the L3 1:1 service section
type L3ServiceData struct {
	ONTs L3Service `json:"onts" yaml:"onts"`
}

// L3Service holds ONTs carrying data and voice services
type L3Service struct {
	ForceDelete string     `json:"force_delete" yaml:"force_delete"`
	Defaults    L3Defaults `json:"defaults" yaml:"defaults"`
	Config      []L3Config `json:"ont_config" yaml:"ont_config" validate:"dive"`
}

// L3Defaults is the fallback record for L3 service items
type L3Defaults struct {
	ProfileID    *string       `json:"profile_id,omitempty" yaml:"profile_id,omitempty"`
	VendorID     *string       `json:"vendor_id,omitempty" yaml:"vendor_id,omitempty"`
	DataService  *DataService  `json:"data_service,omitempty" yaml:"data_service,omitempty"`
	VoiceService *VoiceService `json:"voice_service,omitempty" yaml:"voice_service,omitempty"`
}

// L3Config is one ONT of the L3 service scenario
type L3Config struct {
	defaults.Fields `json:"-" yaml:"-"`

	ONTID        string        `json:"ont_id" yaml:"ont_id" validate:"required"`
	SerialNumber string        `json:"serial_number" yaml:"serial_number" validate:"required"`
	ProfileID    *string       `json:"profile_id,omitempty" yaml:"profile_id,omitempty"`
	VendorID     *string       `json:"vendor_id,omitempty" yaml:"vendor_id,omitempty"`
	DataService  *DataService  `json:"data_service,omitempty" yaml:"data_service,omitempty"`
	VoiceService *VoiceService `json:"voice_service,omitempty" yaml:"voice_service,omitempty"`
}

func (c *L3Config) UnmarshalYAML(node *yaml.Node) error {
	type plain L3Config
	return defaults.Decode(node, (*plain)(c), &c.Fields)
}

// DataService is an ONT data service of the L3 scenario
type DataService struct {
	defaults.Fields `json:"-" yaml:"-"`

	VLAN        *int    `json:"vlan,omitempty" yaml:"vlan,omitempty" validate:"omitempty,min=1,max=4095"`
	CVLAN       *int    `json:"c_vlan,omitempty" yaml:"c_vlan,omitempty" validate:"omitempty,min=1,max=4095"`
	ServiceName *string `json:"service_name,omitempty" yaml:"service_name,omitempty"`
	ONTPortID   *string `json:"ont_port_id,omitempty" yaml:"ont_port_id,omitempty"`
}

func (s *DataService) UnmarshalYAML(node *yaml.Node) error {
	type plain DataService
	return defaults.Decode(node, (*plain)(s), &s.Fields)
}

// VoiceService is an ONT voice service of the L3 scenario
type VoiceService struct {
	defaults.Fields `json:"-" yaml:"-"`

	VLAN        *int    `json:"vlan,omitempty" yaml:"vlan,omitempty" validate:"omitempty,min=1,max=4095"`
	CVLAN       *int    `json:"c_vlan,omitempty" yaml:"c_vlan,omitempty" validate:"omitempty,min=1,max=4095"`
	ServiceName *string `json:"service_name,omitempty" yaml:"service_name,omitempty"`
	ONTPortID   *string `json:"ont_port_id,omitempty" yaml:"ont_port_id,omitempty"`
	User        *string `json:"user,omitempty" yaml:"user,omitempty"`
	Password    *string `json:"password,omitempty" yaml:"password,omitempty"`
	URI         *string `json:"uri,omitempty" yaml:"uri,omitempty"`
}

func (s *VoiceService) UnmarshalYAML(node *yaml.Node) error {
	type plain VoiceService
	return defaults.Decode(node, (*plain)(s), &s.Fields)
}

// L2TPServiceData is the ONT L2TP data service section
type L2TPServiceData struct {
	ONTs L2TPService `json:"onts" yaml:"onts"`
}

// L2TPService holds subscriber ONTs with a single data service
type L2TPService struct {
	ForceDelete string       `json:"force_delete" yaml:"force_delete"`
	Defaults    L2TPDefaults `json:"defaults" yaml:"defaults"`
	Config      []L2TPConfig `json:"ont_config" yaml:"ont_config" validate:"dive"`
}

// L2TPDefaults is the fallback record for L2TP items
type L2TPDefaults struct {
	DeviceName  *string          `json:"device_name,omitempty" yaml:"device_name,omitempty"`
	DataService *L2TPDataService `json:"data_service,omitempty" yaml:"data_service,omitempty"`
}

// L2TPConfig is one subscriber ONT of the L2TP scenario
type L2TPConfig struct {
	defaults.Fields `json:"-" yaml:"-"`

	ONTID        string           `json:"ont_id" yaml:"ont_id" validate:"required"`
	SubscriberID string           `json:"subscriber_id" yaml:"subscriber_id" validate:"required"`
	DeviceName   *string          `json:"device_name,omitempty" yaml:"device_name,omitempty"`
	DataService  *L2TPDataService `json:"data_service,omitempty" yaml:"data_service,omitempty"`
}

func (c *L2TPConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain L2TPConfig
	return defaults.Decode(node, (*plain)(c), &c.Fields)
}

// L2TPDataService is the data service of an L2TP subscriber
type L2TPDataService struct {
	defaults.Fields `json:"-" yaml:"-"`

	VLAN        *int    `json:"vlan,omitempty" yaml:"vlan,omitempty" validate:"omitempty,min=1,max=4095"`
	ServiceName *string `json:"service_name,omitempty" yaml:"service_name,omitempty"`
	ONTPortID   *string `json:"ont_port_id,omitempty" yaml:"ont_port_id,omitempty"`
}

func (s *L2TPDataService) UnmarshalYAML(node *yaml.Node) error {
	type plain L2TPDataService
	return defaults.Decode(node, (*plain)(s), &s.Fields)
}

// CoxFetchData is the device fetch scenario section
type CoxFetchData struct {
	FixedMaxUserCount    int      `json:"fixed_max_user_count" yaml:"fixed_max_user_count" validate:"gte=0"`
	RandomDevice         bool     `json:"random_device" yaml:"random_device"`
	AllSyncedDevicesPool bool     `json:"all_synced_devices_pool" yaml:"all_synced_devices_pool"`
	DeviceNamePool       []string `json:"device_name_pool" yaml:"device_name_pool"`
}

// Global holds the load-test parameters shared by every scenario. They are
// top-level keys of the parameter document, not a section.
type Global struct {
	Insecure                  bool      `json:"insecure" yaml:"insecure"`
	NetworkTimeout            int       `json:"network_timeout" yaml:"network_timeout" validate:"min=1,max=120"`
	ConnectionTimeout         int       `json:"connection_timeout" yaml:"connection_timeout" validate:"min=1,max=120"`
	WaitTimeBetween           []float64 `json:"wait_time_between" yaml:"wait_time_between" validate:"len=2,dive,gte=0"`
	RestDelayTimeBetween      []float64 `json:"rest_delay_time_between" yaml:"rest_delay_time_between" validate:"len=2,dive,gte=0"`
	GroupRequests             bool      `json:"group_requests" yaml:"group_requests"`
	LogTrackedFailedResponses bool      `json:"log_tracked_failed_responses" yaml:"log_tracked_failed_responses"`
	SkipCleanup               bool      `json:"skip_cleanup" yaml:"skip_cleanup"`
	CleanupRampDown           int       `json:"cleanup_ramp_down" yaml:"cleanup_ramp_down" validate:"gte=0"`
	CleanupTimeBetween        []int     `json:"cleanup_time_between" yaml:"cleanup_time_between" validate:"len=2"`
}

// DefaultGlobal returns the parameters used when the document omits them
func DefaultGlobal() Global {
	return Global{
		Insecure:             true,
		NetworkTimeout:       60,
		ConnectionTimeout:    60,
		WaitTimeBetween:      []float64{0, 0},
		RestDelayTimeBetween: []float64{0, 0},
		GroupRequests:        true,
		CleanupRampDown:      10,
		CleanupTimeBetween:   []int{0, 0},
	}
}

// Equipment names the SMx server and the devices a scenario targets
type Equipment struct {
	SMXName     string   `json:"smx_name" yaml:"smx_name"`
	DeviceNames NameList `json:"device_name" yaml:"device_name"`
}

// NameList accepts either a single name or a list of names
type NameList []string

func (n *NameList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*n = NameList{node.Value}
		return nil
	}
	var names []string
	if err := node.Decode(&names); err != nil {
		return err
	}
	*n = names
	return nil
}
