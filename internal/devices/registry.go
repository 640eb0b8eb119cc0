package devices

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/savegress/eduguard/internal/sanitize"
	"github.com/savegress/eduguard/pkg/models"
)

// Registry tracks the devices allowed to receive sanitized data and
// the capability set granted to each
type Registry struct {
	devices map[string]*models.RegisteredDevice
	mu      sync.RWMutex
}

// NewRegistry creates an empty device registry
func NewRegistry() *Registry {
	return &Registry{
		devices: make(map[string]*models.RegisteredDevice),
	}
}

// Register stores a device, generating an ID when absent
func (r *Registry) Register(device *models.RegisteredDevice) error {
	if device == nil {
		return fmt.Errorf("devices: nil device")
	}
	if device.DeviceType == "" {
		return fmt.Errorf("devices: device type is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if device.DeviceID == "" {
		device.DeviceID = uuid.New().String()
	}
	if device.RegisteredAt.IsZero() {
		device.RegisteredAt = time.Now()
	}
	r.devices[device.DeviceID] = device
	return nil
}

// Get retrieves a registered device by ID
func (r *Registry) Get(id string) (*models.RegisteredDevice, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.devices[id]
	return d, ok
}

// List returns all registered devices
func (r *Registry) List() []*models.RegisteredDevice {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.RegisteredDevice, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, d)
	}
	return out
}

// Revoke marks a device as revoked; revoked devices keep their ID but
// lose every capability
func (r *Registry) Revoke(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[id]
	if !ok {
		return false
	}
	d.Revoked = true
	return true
}

// Touch records the last time a device consumed sanitized data
func (r *Registry) Touch(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.devices[id]; ok {
		d.LastSeen = time.Now()
	}
}

// View returns the narrow capability view of a device, or false when
// the device is unknown
func (r *Registry) View(id string) (sanitize.Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[id]
	if !ok {
		return nil, false
	}

	caps := make(map[sanitize.Capability]bool, len(d.Capabilities))
	if !d.Revoked {
		for _, c := range d.Capabilities {
			caps[sanitize.Capability(c)] = true
		}
	}
	return &deviceView{
		id:         d.DeviceID,
		deviceType: d.DeviceType,
		caps:       caps,
	}, true
}

// deviceView is the immutable capability snapshot handed to sanitizers
type deviceView struct {
	id         string
	deviceType string
	caps       map[sanitize.Capability]bool
}

func (v *deviceView) DeviceID() string   { return v.id }
func (v *deviceView) DeviceType() string { return v.deviceType }

func (v *deviceView) HasPermission(cap sanitize.Capability) bool {
	return v.caps[cap]
}

// StaticDevice is a fixed-capability device for callers that bypass
// the registry (tests, embedded use)
func StaticDevice(id, deviceType string, caps ...sanitize.Capability) sanitize.Device {
	m := make(map[sanitize.Capability]bool, len(caps))
	for _, c := range caps {
		m[c] = true
	}
	return &deviceView{id: id, deviceType: deviceType, caps: m}
}
