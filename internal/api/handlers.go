package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/savegress/eduguard/internal/audit"
	"github.com/savegress/eduguard/internal/devices"
	"github.com/savegress/eduguard/internal/records"
	"github.com/savegress/eduguard/internal/sanitize"
	"github.com/savegress/eduguard/pkg/models"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry  *devices.Registry
	sanitizer *records.Sanitizer
	audit     *audit.Logger
}

// NewHandlers creates new handlers
func NewHandlers(registry *devices.Registry, sanitizer *records.Sanitizer, auditLog *audit.Logger) *Handlers {
	return &Handlers{
		registry:  registry,
		sanitizer: sanitizer,
		audit:     auditLog,
	}
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "eduguard",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// resolveDevice loads the capability view for a device ID, replying
// with an error when the device is unknown
func (h *Handlers) resolveDevice(w http.ResponseWriter, deviceID string) (sanitize.Device, bool) {
	if deviceID == "" {
		respondError(w, http.StatusBadRequest, "device_id is required")
		return nil, false
	}
	view, ok := h.registry.View(deviceID)
	if !ok {
		respondError(w, http.StatusNotFound, "Device not registered")
		return nil, false
	}
	h.registry.Touch(deviceID)
	return view, true
}

func (h *Handlers) logPass(device sanitize.Device, dataType sanitize.DataType, purpose sanitize.Purpose, stats sanitize.Stats, outcome string) {
	h.audit.LogSanitization(&audit.SanitizationLogRequest{
		DeviceID:      device.DeviceID(),
		DeviceType:    device.DeviceType(),
		DataType:      string(dataType),
		Purpose:       string(purpose),
		FieldsDropped: stats.FieldsDropped,
		FieldsMasked:  stats.FieldsMasked,
		Outcome:       outcome,
	})
}

// Sanitization handlers

type sanitizeRecordRequest struct {
	DeviceID                 string         `json:"device_id"`
	DataType                 string         `json:"data_type"`
	Purpose                  string         `json:"purpose"`
	AdditionalFieldsToRemove []string       `json:"additional_fields_to_remove,omitempty"`
	IncludeMetadata          *bool          `json:"include_metadata,omitempty"`
	Record                   *models.Record `json:"record"`
}

// SanitizeRecord sanitizes a generic record tree
func (h *Handlers) SanitizeRecord(w http.ResponseWriter, r *http.Request) {
	var req sanitizeRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Record == nil {
		respondError(w, http.StatusBadRequest, "record is required")
		return
	}

	device, ok := h.resolveDevice(w, req.DeviceID)
	if !ok {
		return
	}

	ctx := sanitize.NewContext(sanitize.DataType(req.DataType), sanitize.Purpose(req.Purpose))
	if len(req.AdditionalFieldsToRemove) > 0 {
		ctx = ctx.WithExtraRemovals(req.AdditionalFieldsToRemove...)
	}
	if req.IncludeMetadata != nil {
		ctx.IncludeMetadata = *req.IncludeMetadata
	}

	sanitized, stats := h.sanitizer.SanitizeRecord(req.Record, device, ctx)
	h.logPass(device, ctx.DataType, ctx.Purpose, stats, models.OutcomeOK)
	respond(w, http.StatusOK, sanitized)
}

type deviceRecordRequest struct {
	DeviceID string         `json:"device_id"`
	Record   *models.Record `json:"record"`
}

// SanitizeStudent sanitizes a student record
func (h *Handlers) SanitizeStudent(w http.ResponseWriter, r *http.Request) {
	var req deviceRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	device, ok := h.resolveDevice(w, req.DeviceID)
	if !ok {
		return
	}

	sanitized := h.sanitizer.SanitizeStudent(req.Record, device)
	outcome := models.OutcomeOK
	if !device.HasPermission(sanitize.CapStudentBasicInfo) && !device.HasPermission(sanitize.CapStudentContactInfo) {
		outcome = models.OutcomeDenied
	}
	h.logPass(device, sanitize.DataStudentRecord, sanitize.PurposeDistrictSync, sanitize.Stats{}, outcome)
	respond(w, http.StatusOK, sanitized)
}

// SanitizeAttendance sanitizes an attendance record
func (h *Handlers) SanitizeAttendance(w http.ResponseWriter, r *http.Request) {
	var req deviceRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	device, ok := h.resolveDevice(w, req.DeviceID)
	if !ok {
		return
	}

	sanitized := h.sanitizer.SanitizeAttendance(req.Record, device)
	outcome := models.OutcomeOK
	if !device.HasPermission(sanitize.CapStudentAttendance) {
		outcome = models.OutcomeDenied
	}
	h.logPass(device, sanitize.DataAttendanceRecord, sanitize.PurposeDistrictSync, sanitize.Stats{}, outcome)
	respond(w, http.StatusOK, sanitized)
}

type sanitizeNotificationRequest struct {
	DeviceID     string               `json:"device_id"`
	Notification *models.Notification `json:"notification"`
}

// SanitizeNotification sanitizes a parent notification
func (h *Handlers) SanitizeNotification(w http.ResponseWriter, r *http.Request) {
	var req sanitizeNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Notification == nil {
		respondError(w, http.StatusBadRequest, "notification is required")
		return
	}
	device, ok := h.resolveDevice(w, req.DeviceID)
	if !ok {
		return
	}

	sanitized := h.sanitizer.SanitizeNotification(req.Notification, device)
	h.logPass(device, sanitize.DataNotification, sanitize.PurposeParentNotification, sanitize.Stats{}, models.OutcomeOK)
	respond(w, http.StatusOK, sanitized)
}

// SanitizeAggregate sanitizes an aggregate report
func (h *Handlers) SanitizeAggregate(w http.ResponseWriter, r *http.Request) {
	var req deviceRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	device, ok := h.resolveDevice(w, req.DeviceID)
	if !ok {
		return
	}

	sanitized := h.sanitizer.SanitizeAggregate(req.Record, device)
	outcome := models.OutcomeOK
	if !device.HasPermission(sanitize.CapAggregateStatistics) {
		outcome = models.OutcomeDenied
	}
	h.logPass(device, sanitize.DataAggregateReport, sanitize.PurposeStateReporting, sanitize.Stats{}, outcome)
	respond(w, http.StatusOK, sanitized)
}

type validateRequest struct {
	Record *models.Record `json:"record"`
}

// ValidateRecord scans an already sanitized record for residual PII
func (h *Handlers) ValidateRecord(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Record == nil {
		respondError(w, http.StatusBadRequest, "record is required")
		return
	}
	respond(w, http.StatusOK, h.sanitizer.Engine().Validate(req.Record))
}

type kAnonymityRequest struct {
	Records          []map[string]interface{} `json:"records"`
	QuasiIdentifiers []string                 `json:"quasi_identifiers"`
	K                int                      `json:"k"`
}

// CheckKAnonymity checks k-anonymity over a dataset
func (h *Handlers) CheckKAnonymity(w http.ResponseWriter, r *http.Request) {
	var req kAnonymityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.K < 2 {
		respondError(w, http.StatusBadRequest, "k must be at least 2")
		return
	}
	respond(w, http.StatusOK, records.CheckKAnonymity(req.Records, req.QuasiIdentifiers, req.K))
}

// Device registry handlers

// ListDevices lists registered devices
func (h *Handlers) ListDevices(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.registry.List())
}

// RegisterDevice registers a device
func (h *Handlers) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var device models.RegisteredDevice
	if err := json.NewDecoder(r.Body).Decode(&device); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.registry.Register(&device); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respond(w, http.StatusCreated, device)
}

// GetDevice gets a device by ID
func (h *Handlers) GetDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	device, ok := h.registry.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Device not found")
		return
	}
	respond(w, http.StatusOK, device)
}

// RevokeDevice revokes a device's capabilities
func (h *Handlers) RevokeDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.registry.Revoke(id) {
		respondError(w, http.StatusNotFound, "Device not found")
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "revoked", "device_id": id})
}

// Audit handlers

// ListAuditEvents lists recorded sanitization events
func (h *Handlers) ListAuditEvents(w http.ResponseWriter, r *http.Request) {
	filter := audit.EventFilter{
		DeviceID: r.URL.Query().Get("device_id"),
		DataType: r.URL.Query().Get("data_type"),
		Outcome:  r.URL.Query().Get("outcome"),
		Limit:    100,
	}
	events := h.audit.GetEvents(filter)
	if events == nil {
		events = []*models.SanitizationEvent{}
	}
	respond(w, http.StatusOK, events)
}

// GetAuditEvent gets one sanitization event
func (h *Handlers) GetAuditEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	event, ok := h.audit.GetEvent(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Event not found")
		return
	}
	respond(w, http.StatusOK, event)
}

// GetAuditStats returns audit statistics
func (h *Handlers) GetAuditStats(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.audit.GetStats())
}

// Response helpers

func respond(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}
