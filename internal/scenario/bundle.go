package scenario

import (
	"fmt"
	"strings"

	"github.com/gliverm/playwright/internal/validation"
)

// Bundle holds every validated part of one parameter document so a test run
// can be set up from a single value. Families whose section is absent are nil.
type Bundle struct {
	Global      *Global
	Equipment   *Equipment // nil when the document has no smx_name
	VLANCrud    *VLANCrudData
	ONTCrud     *ONTCrudData
	L3Service   *L3ServiceData
	L2TPService *L2TPServiceData
	CoxFetch    *CoxFetchData

	// Source is the path of the parameter document
	Source string
}

// ValidateAll runs every validator over p. All failures are collected and
// reported together; no partial bundle is returned.
func ValidateAll(p *Params) (*Bundle, error) {
	b := &Bundle{}
	if p != nil {
		b.Source = p.Source
	}

	var errs validation.Errors
	var err error

	b.Global, err = ValidateGlobal(p)
	if err := collect(&errs, "", err); err != nil {
		return nil, err
	}
	if p != nil && p.Has("smx_name") {
		b.Equipment, err = ValidateEquipment(p)
		if err := collect(&errs, "smx_name", err); err != nil {
			return nil, err
		}
	}

	b.VLANCrud, err = ValidateVLANCrud(p)
	if err := collect(&errs, SectionVLANCrud, err); err != nil {
		return nil, err
	}
	b.ONTCrud, err = ValidateONTCrud(p)
	if err := collect(&errs, SectionONTCrud, err); err != nil {
		return nil, err
	}
	b.L3Service, err = ValidateL3Service(p)
	if err := collect(&errs, SectionL3Service, err); err != nil {
		return nil, err
	}
	b.L2TPService, err = ValidateL2TPService(p)
	if err := collect(&errs, SectionL2TPService, err); err != nil {
		return nil, err
	}
	b.CoxFetch, err = ValidateCoxFetch(p)
	if err := collect(&errs, SectionCoxFetch, err); err != nil {
		return nil, err
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

// collect records validation failures in errs and returns any other error
// unchanged so the caller can stop
func collect(errs *validation.Errors, path string, err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case validation.Errors, *validation.Error:
		errs.Add(path, err)
		return nil
	}
	return fmt.Errorf("%s: %w", path, err)
}

// GetAllConfigs returns all non-nil parts of the bundle
func (b *Bundle) GetAllConfigs() []interface{} {
	var configs []interface{}

	if b.Global != nil {
		configs = append(configs, b.Global)
	}
	if b.Equipment != nil {
		configs = append(configs, b.Equipment)
	}
	if b.VLANCrud != nil {
		configs = append(configs, b.VLANCrud)
	}
	if b.ONTCrud != nil {
		configs = append(configs, b.ONTCrud)
	}
	if b.L3Service != nil {
		configs = append(configs, b.L3Service)
	}
	if b.L2TPService != nil {
		configs = append(configs, b.L2TPService)
	}
	if b.CoxFetch != nil {
		configs = append(configs, b.CoxFetch)
	}

	return configs
}

// HasEquipment returns true if the document names the SMx server
func (b *Bundle) HasEquipment() bool {
	return b.Equipment != nil
}

// HasVLANCrud returns true if the bundle contains the VLAN CRUD section
func (b *Bundle) HasVLANCrud() bool {
	return b.VLANCrud != nil
}

// HasONTCrud returns true if the bundle contains the ONT CRUD section
func (b *Bundle) HasONTCrud() bool {
	return b.ONTCrud != nil
}

// HasL3Service returns true if the bundle contains the L3 1:1 service section
func (b *Bundle) HasL3Service() bool {
	return b.L3Service != nil
}

// HasL2TPService returns true if the bundle contains the L2TP data service section
func (b *Bundle) HasL2TPService() bool {
	return b.L2TPService != nil
}

// HasCoxFetch returns true if the bundle contains the device fetch section
func (b *Bundle) HasCoxFetch() bool {
	return b.CoxFetch != nil
}

// GetSummary returns a human-readable summary of the scenario sections
func (b *Bundle) GetSummary() string {
	var parts []string

	if b.HasEquipment() {
		parts = append(parts, fmt.Sprintf("Equipment(%s, %d devices)",
			b.Equipment.SMXName, len(b.Equipment.DeviceNames)))
	}
	if b.HasVLANCrud() {
		parts = append(parts, fmt.Sprintf("VLANCrud(%d vlans)", len(b.VLANCrud.VLANIDs)))
	}
	if b.HasONTCrud() {
		parts = append(parts, fmt.Sprintf("ONTCrud(%d onts)", len(b.ONTCrud.ONTs.Config)))
	}
	if b.HasL3Service() {
		parts = append(parts, fmt.Sprintf("L3Service(%d onts)", len(b.L3Service.ONTs.Config)))
	}
	if b.HasL2TPService() {
		parts = append(parts, fmt.Sprintf("L2TPService(%d onts)", len(b.L2TPService.ONTs.Config)))
	}
	if b.HasCoxFetch() {
		parts = append(parts, fmt.Sprintf("CoxFetch(%d devices)", len(b.CoxFetch.DeviceNamePool)))
	}

	if len(parts) == 0 {
		return "No scenario sections"
	}

	return strings.Join(parts, ", ")
}
