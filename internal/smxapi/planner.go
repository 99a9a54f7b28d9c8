package smxapi

import (
	"fmt"

	"github.com/gliverm/playwright/internal/scenario"
)

// Operations a planned step performs
const (
	OperationCreate = "create"
	OperationDelete = "delete"
)

// Step is one planned SMx request
type Step struct {
	Operation string
	Family    string // scenario section key, e.g. vlan_crud_data
	Device    string
	Request   Request
}

// Plan is the ordered list of requests for one scenario run
type Plan struct {
	Steps []Step
}

// Count returns the number of steps performing operation
func (p *Plan) Count(operation string) int {
	n := 0
	for _, s := range p.Steps {
		if s.Operation == operation {
			n++
		}
	}
	return n
}

// Planner turns a validated bundle into SMx requests for the VLAN CRUD and
// ONT CRUD families
type Planner struct {
	// Devices replaces the equipment device names when not empty
	Devices []string
}

// Plan creates every VLAN and ONT on each device, then deletes them in
// reverse order unless cleanup is skipped
func (p Planner) Plan(b *scenario.Bundle) (*Plan, error) {
	if b == nil {
		return nil, fmt.Errorf("bundle is required")
	}

	plan := &Plan{}
	if !b.HasVLANCrud() && !b.HasONTCrud() {
		return plan, nil
	}

	devices := p.Devices
	if len(devices) == 0 && b.HasEquipment() {
		devices = b.Equipment.DeviceNames
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("no device_name to plan requests for")
	}

	global := scenario.DefaultGlobal()
	if b.Global != nil {
		global = *b.Global
	}

	for _, device := range devices {
		plan.Steps = append(plan.Steps, createSteps(b, device)...)
	}
	if global.SkipCleanup {
		return plan, nil
	}
	for _, device := range devices {
		plan.Steps = append(plan.Steps, deleteSteps(b, device, global.GroupRequests)...)
	}

	return plan, nil
}

func createSteps(b *scenario.Bundle, device string) []Step {
	var steps []Step

	if b.HasVLANCrud() {
		for _, id := range b.VLANCrud.VLANIDs {
			steps = append(steps, Step{
				Operation: OperationCreate,
				Family:    scenario.SectionVLANCrud,
				Device:    device,
				Request:   Request{Method: MethodPost, Route: VLANRoute(device), Body: VLANBody(id)},
			})
		}
	}

	if b.HasONTCrud() {
		for _, ont := range b.ONTCrud.ONTs.Config {
			steps = append(steps, Step{
				Operation: OperationCreate,
				Family:    scenario.SectionONTCrud,
				Device:    device,
				Request:   Request{Method: MethodPost, Route: ONTRoute(device), Body: ONTBody(ont)},
			})
		}
	}

	return steps
}

// deleteSteps removes ONTs before the VLANs they may use, each in reverse
// creation order
func deleteSteps(b *scenario.Bundle, device string, grouped bool) []Step {
	var steps []Step

	if b.HasONTCrud() {
		onts := b.ONTCrud.ONTs.Config
		for i := len(onts) - 1; i >= 0; i-- {
			req := Request{
				Method: MethodDelete,
				Route:  ONTDeleteRoute(device, onts[i].ONTID, b.ONTCrud.ONTs.ForceDelete),
			}
			if grouped {
				req.Group = ONTGroup(device)
			}
			steps = append(steps, Step{Operation: OperationDelete, Family: scenario.SectionONTCrud, Device: device, Request: req})
		}
	}

	if b.HasVLANCrud() {
		ids := b.VLANCrud.VLANIDs
		for i := len(ids) - 1; i >= 0; i-- {
			req := Request{Method: MethodDelete, Route: VLANItemRoute(device, ids[i])}
			if grouped {
				req.Group = VLANGroup(device)
			}
			steps = append(steps, Step{Operation: OperationDelete, Family: scenario.SectionVLANCrud, Device: device, Request: req})
		}
	}

	return steps
}
