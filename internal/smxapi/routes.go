package smxapi

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gliverm/playwright/internal/scenario"
)

// cxnkSerialLength is the serial number length the SMx expects for Calix ONTs
const cxnkSerialLength = 12

// NormalizeSerialNumber returns the serial number the SMx expects for an ONT.
// Short CXNK serials are prefixed with the vendor and zero padded to twelve
// characters; anything else is returned unchanged.
func NormalizeSerialNumber(vendorID, serial string) string {
	if !strings.EqualFold(vendorID, "CXNK") || len(serial) >= cxnkSerialLength {
		return serial
	}

	pad := cxnkSerialLength - len(vendorID) - len(serial)
	if pad < 0 {
		pad = 0
	}
	return vendorID + strings.Repeat("0", pad) + serial
}

func deviceRoute(device string) string {
	return "/config/device/" + url.PathEscape(device)
}

// ONTRoute is the collection route used to create ONTs on a device
func ONTRoute(device string) string {
	return deviceRoute(device) + "/ont"
}

// ONTDeleteRoute deletes a single ONT. forceDelete is "true" or "false".
func ONTDeleteRoute(device, ontID, forceDelete string) string {
	return fmt.Sprintf("%s?ont-id=%s&force-delete=%s",
		ONTRoute(device), url.QueryEscape(ontID), url.QueryEscape(forceDelete))
}

// ONTGroup is the report name shared by every per-ONT request on a device
func ONTGroup(device string) string {
	return ONTRoute(device) + "/[ont_id]"
}

// VLANRoute is the collection route used to create VLANs on a device
func VLANRoute(device string) string {
	return deviceRoute(device) + "/vlan"
}

// VLANItemRoute reads or deletes a single VLAN
func VLANItemRoute(device string, vlanID int) string {
	return fmt.Sprintf("%s/%d", VLANRoute(device), vlanID)
}

// VLANGroup is the report name shared by every per-VLAN request on a device
func VLANGroup(device string) string {
	return VLANRoute(device) + "/[vlan_id]"
}

// VLANBody is the create body for one VLAN
func VLANBody(vlanID int) map[string]interface{} {
	return map[string]interface{}{
		"vlan-id": vlanID,
	}
}

// ONTBody is the create body for one ONT. The serial number is normalized
// against the vendor.
func ONTBody(ont scenario.ONTConfig) map[string]interface{} {
	body := map[string]interface{}{
		"ont-id":        ont.ONTID,
		"serial-number": ont.SerialNumber,
	}
	if ont.ProfileID != nil {
		body["profile-id"] = *ont.ProfileID
	}
	if ont.VendorID != nil {
		body["vendor-id"] = *ont.VendorID
		body["serial-number"] = NormalizeSerialNumber(*ont.VendorID, ont.SerialNumber)
	}
	return body
}
