package scenario

import (
	"fmt"

	"github.com/gliverm/playwright/internal/defaults"
	"github.com/gliverm/playwright/internal/validation"
	"github.com/gliverm/playwright/internal/vlan"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// NormalizeForceDelete lower-cases a force_delete value and accepts only
// "true" or "false"
func NormalizeForceDelete(path, value string) (string, error) {
	// A Caser keeps state, so each call gets its own
	normalized := cases.Lower(language.Und).String(value)
	if normalized != "true" && normalized != "false" {
		return "", validation.Semanticf(path, "ont force_delete must be 'true' or 'false', got %q", value)
	}
	return normalized, nil
}

// section returns the named section, or nil when it is absent or null
func section(p *Params, key string) *yaml.Node {
	if p == nil {
		return nil
	}
	node, ok := p.Section(key)
	if !ok || validation.IsNull(node) {
		return nil
	}
	return node
}

// child returns the value of key in a mapping node, following merge keys
func child(node *yaml.Node, key string) *yaml.Node {
	return validation.MappingValue(node, key)
}

// decodeONTs runs the shape checks shared by the three ONT families and
// decodes the "onts" block into out. It returns the path of the block.
func decodeONTs(sectionKey string, node *yaml.Node, out interface{}) (string, error) {
	if missing := validation.RequireKeys(sectionKey, node, "onts"); len(missing) > 0 {
		return "", missing
	}

	path := validation.JoinPath(sectionKey, "onts")
	onts := child(node, "onts")
	if missing := validation.RequireKeys(path, onts, "force_delete", "defaults", "ont_config"); len(missing) > 0 {
		return "", missing
	}
	if list := validation.Unwrap(child(onts, "ont_config")); list.Kind != yaml.SequenceNode {
		return "", validation.Errors{validation.Schemaf(validation.JoinPath(path, "ont_config"), "must be a list")}
	}

	if err := validation.DecodeNode(path, onts, out); err != nil {
		return "", err
	}
	return path, nil
}

// ValidateVLANCrud validates the VLAN CRUD section and expands its VLAN IDs.
// It returns nil without error when the section is absent.
func ValidateVLANCrud(p *Params) (*VLANCrudData, error) {
	node := section(p, SectionVLANCrud)
	if node == nil {
		return nil, nil
	}

	if missing := validation.RequireKeys(SectionVLANCrud, node, "vlan_ids"); len(missing) > 0 {
		return nil, missing
	}
	idsPath := validation.JoinPath(SectionVLANCrud, "vlan_ids")
	ids, err := vlan.Decode(idsPath, child(node, "vlan_ids"))
	if err != nil {
		return nil, err
	}
	expanded, err := ids.ExpandAt(idsPath)
	if err != nil {
		return nil, err
	}

	return &VLANCrudData{VLANIDs: expanded}, nil
}

// ValidateONTCrud validates the plain ONT CRUD section. Repeated ont_id
// entries are dropped, keeping the first. Every remaining ONT must end up
// with a profile_id and a vendor_id once defaults are applied.
func ValidateONTCrud(p *Params) (*ONTCrudData, error) {
	node := section(p, SectionONTCrud)
	if node == nil {
		return nil, nil
	}

	var onts ONTCrud
	path, err := decodeONTs(SectionONTCrud, node, &onts)
	if err != nil {
		return nil, err
	}

	var errs validation.Errors
	onts.ForceDelete = normalizeForceDelete(&errs, path, onts.ForceDelete)

	// Identity fields are tagged required, so a null or empty value fails
	// the same way an absent key does
	errs.Add(path, validation.Struct(path, &onts))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	listPath := validation.JoinPath(path, "ont_config")
	kept, positions := dedupeONTs(onts.Config)
	merged, err := defaults.Propagate(onts.Defaults, kept)
	if err != nil {
		return nil, fmt.Errorf("failed to apply ont defaults: %w", err)
	}

	for i, c := range merged {
		if c.ProfileID == nil || c.VendorID == nil {
			errs.Add(listPath, validation.Semanticf(validation.IndexPath(listPath, positions[i]),
				"ONT %s is missing ONT profile_id or vendor_id", c.ONTID))
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	onts.Config = merged
	return &ONTCrudData{ONTs: onts}, nil
}

// dedupeONTs keeps the first record of each ont_id along with its position
// in the input
func dedupeONTs(configs []ONTConfig) ([]ONTConfig, []int) {
	seen := make(map[string]bool, len(configs))
	kept := make([]ONTConfig, 0, len(configs))
	positions := make([]int, 0, len(configs))
	for i, c := range configs {
		if seen[c.ONTID] {
			continue
		}
		seen[c.ONTID] = true
		kept = append(kept, c)
		positions = append(positions, i)
	}
	return kept, positions
}

// ValidateL3Service validates the L3 1:1 service section and applies its
// defaults, including the data_service and voice_service sub-objects
func ValidateL3Service(p *Params) (*L3ServiceData, error) {
	node := section(p, SectionL3Service)
	if node == nil {
		return nil, nil
	}

	var onts L3Service
	path, err := decodeONTs(SectionL3Service, node, &onts)
	if err != nil {
		return nil, err
	}

	var errs validation.Errors
	onts.ForceDelete = normalizeForceDelete(&errs, path, onts.ForceDelete)

	errs.Add(path, validation.Struct(path, &onts))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	merged, err := defaults.Propagate(onts.Defaults, onts.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to apply l3 service defaults: %w", err)
	}

	onts.Config = merged
	return &L3ServiceData{ONTs: onts}, nil
}

// ValidateL2TPService validates the ONT L2TP data service section and
// applies its defaults
func ValidateL2TPService(p *Params) (*L2TPServiceData, error) {
	node := section(p, SectionL2TPService)
	if node == nil {
		return nil, nil
	}

	var onts L2TPService
	path, err := decodeONTs(SectionL2TPService, node, &onts)
	if err != nil {
		return nil, err
	}

	var errs validation.Errors
	onts.ForceDelete = normalizeForceDelete(&errs, path, onts.ForceDelete)

	errs.Add(path, validation.Struct(path, &onts))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	merged, err := defaults.Propagate(onts.Defaults, onts.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to apply l2tp defaults: %w", err)
	}

	onts.Config = merged
	return &L2TPServiceData{ONTs: onts}, nil
}

func normalizeForceDelete(errs *validation.Errors, path, value string) string {
	fdPath := validation.JoinPath(path, "force_delete")
	normalized, err := NormalizeForceDelete(fdPath, value)
	if err != nil {
		errs.Add(fdPath, err)
		return value
	}
	return normalized
}

// ValidateCoxFetch validates the device fetch section. Repeated pool names
// are dropped, keeping the first.
func ValidateCoxFetch(p *Params) (*CoxFetchData, error) {
	node := section(p, SectionCoxFetch)
	if node == nil {
		return nil, nil
	}

	data := CoxFetchData{DeviceNamePool: []string{}}
	if err := validation.DecodeNode(SectionCoxFetch, node, &data); err != nil {
		return nil, err
	}
	if err := validation.Struct(SectionCoxFetch, &data); err != nil {
		return nil, err
	}

	data.DeviceNamePool = unique(data.DeviceNamePool)
	return &data, nil
}

// ValidateGlobal decodes the top-level load-test parameters, filling in
// DefaultGlobal for anything the document omits
func ValidateGlobal(p *Params) (*Global, error) {
	g := DefaultGlobal()
	if p == nil {
		return &g, nil
	}

	// An explicit null keeps the default, as an absent key does
	root := dropNulls(p.mapping())
	if err := validation.DecodeNode("", root, &g); err != nil {
		return nil, err
	}

	var errs validation.Errors
	errs.Add("", g.Validate())
	if section(p, "cleanup_time_between") != nil {
		for i, v := range g.CleanupTimeBetween {
			if v <= 0 {
				errs.Add("", validation.Schemaf(validation.IndexPath("cleanup_time_between", i),
					"must be a positive integer, got %d", v))
			}
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return &g, nil
}

// Validate checks bounds and range order. It is run again after command-line
// overrides are applied.
func (g *Global) Validate() error {
	if err := validation.Struct("", g); err != nil {
		return err
	}

	var errs validation.Errors
	if r := g.RestDelayTimeBetween; r[0] > r[1] {
		errs.Add("", validation.Semanticf("rest_delay_time_between", "%v invalid, start > stop", r))
	}
	if r := g.CleanupTimeBetween; r[0] > r[1] {
		errs.Add("", validation.Semanticf("cleanup_time_between", "%v invalid, start > stop", r))
	}
	return errs.Err()
}

// ValidateEquipment decodes smx_name and device_name. A single device name
// is turned into a list of one.
func ValidateEquipment(p *Params) (*Equipment, error) {
	if p == nil || !p.Has("smx_name") {
		return nil, validation.Errors{validation.Schemaf("smx_name", "is required")}
	}

	eq := Equipment{DeviceNames: NameList{}}
	if err := validation.DecodeNode("", p.mapping(), &eq); err != nil {
		return nil, err
	}
	if eq.SMXName == "" {
		return nil, validation.Errors{validation.Schemaf("smx_name", "must not be empty")}
	}
	if eq.DeviceNames == nil {
		eq.DeviceNames = NameList{}
	}
	return &eq, nil
}

// dropNulls returns a copy of a mapping node without its null-valued entries
func dropNulls(node *yaml.Node) *yaml.Node {
	out := *node
	out.Content = make([]*yaml.Node, 0, len(node.Content))
	for i := 0; i+1 < len(node.Content); i += 2 {
		if validation.IsNull(node.Content[i+1]) {
			continue
		}
		out.Content = append(out.Content, node.Content[i], node.Content[i+1])
	}
	return &out
}

func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
