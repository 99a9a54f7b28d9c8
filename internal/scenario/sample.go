package scenario

import (
	"fmt"
	"os"

	"github.com/gliverm/playwright/internal/vlan"

	"gopkg.in/yaml.v3"
)

type sampleDocument struct {
	SMXName    string   `yaml:"smx_name"`
	DeviceName NameList `yaml:"device_name"`
	Global     `yaml:",inline"`

	VLANCrud struct {
		VLANIDs vlan.IDs `yaml:"vlan_ids"`
	} `yaml:"vlan_crud_data"`
	ONTCrud     ONTCrudData     `yaml:"ont_crud_data"`
	L3Service   L3ServiceData   `yaml:"l3_one2one_service_data"`
	L2TPService L2TPServiceData `yaml:"ont_l2tp_data_service_data"`
	CoxFetch    CoxFetchData    `yaml:"cox_fetch_data"`
}

func str(v string) *string { return &v }
func num(v int) *int       { return &v }

// GetDefaultParams returns an example parameter document covering every
// scenario section
func GetDefaultParams() ([]byte, error) {
	doc := sampleDocument{
		SMXName:    "smx",
		DeviceName: NameList{"simob"},
		Global:     DefaultGlobal(),
	}
	// Written values must be positive, unlike the unset default
	doc.CleanupTimeBetween = []int{1, 3}

	vlanRange, err := vlan.NewRange([]int{200, 210})
	if err != nil {
		return nil, err
	}
	doc.VLANCrud.VLANIDs = vlan.IDs{vlan.ID(100), vlan.List{101, 102}, vlanRange}

	doc.ONTCrud.ONTs = ONTCrud{
		ForceDelete: "true",
		Defaults:    ONTDefaults{ProfileID: str("GP1100X"), VendorID: str("CXNK")},
		Config: []ONTConfig{
			{ONTID: "ont-1", SerialNumber: "1A2B3C"},
			{ONTID: "ont-2", SerialNumber: "4D5E6F", ProfileID: str("GS4220E")},
		},
	}

	doc.L3Service.ONTs = L3Service{
		ForceDelete: "false",
		Defaults: L3Defaults{
			ProfileID:    str("GP1100X"),
			VendorID:     str("CXNK"),
			DataService:  &DataService{VLAN: num(100), ServiceName: str("data"), ONTPortID: str("x1")},
			VoiceService: &VoiceService{VLAN: num(200), ServiceName: str("voice"), ONTPortID: str("p1"), Password: str("changeme")},
		},
		Config: []L3Config{
			{ONTID: "l3-1", SerialNumber: "A1B2C3"},
			{ONTID: "l3-2", SerialNumber: "D4E5F6", DataService: &DataService{CVLAN: num(1001)}},
		},
	}

	doc.L2TPService.ONTs = L2TPService{
		ForceDelete: "false",
		Defaults: L2TPDefaults{
			DeviceName:  str("simob"),
			DataService: &L2TPDataService{VLAN: num(300), ServiceName: str("l2tp"), ONTPortID: str("x1")},
		},
		Config: []L2TPConfig{
			{ONTID: "l2tp-1", SubscriberID: "sub-1"},
		},
	}

	doc.CoxFetch = CoxFetchData{FixedMaxUserCount: 0, DeviceNamePool: []string{"simob"}}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sample parameters: %w", err)
	}
	return data, nil
}

// GenerateSampleParams writes the example parameter document to filename
func GenerateSampleParams(filename string) error {
	data, err := GetDefaultParams()
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write sample parameters file: %w", err)
	}

	return nil
}
