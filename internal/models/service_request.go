package models

import (
	"strconv"
	"strings"
)

var ServiceTypes = []string{
	"Oil Change",
	"Brake Service",
	"Tire / Alignment",
	"Battery / Electrical",
	"Engine / Check Light",
	"AC / Heating",
	"Inspection",
	"Other",
}

var TimeWindows = []string{"Morning", "Afternoon", "Evening", "Flexible"}

var UrgencyLevels = []string{"Low", "Medium", "High"}

type Vehicle struct {
	Make         string `json:"make" validate:"required"`
	Model        string `json:"model" validate:"required"`
	Year         int    `json:"year" validate:"required"`
	LicensePlate string `json:"licensePlate"`
	VIN          string `json:"vin"`
	Mileage      int    `json:"mileage" validate:"gte=0,lte=999999"`
}

type ServiceRequest struct {
	Vehicle             Vehicle `json:"vehicle"`
	ServiceType         string  `json:"serviceType" validate:"required,oneof='Oil Change' 'Brake Service' 'Tire / Alignment' 'Battery / Electrical' 'Engine / Check Light' 'AC / Heating' 'Inspection' 'Other'"`
	Symptoms            string  `json:"symptoms" validate:"required"`
	PreferredDate       string  `json:"preferredDate" validate:"required,datetime=2006-01-02"`
	PreferredTimeWindow string  `json:"preferredTimeWindow" validate:"required,oneof=Morning Afternoon Evening Flexible"`
	Location            string  `json:"location" validate:"required"`
	Urgency             string  `json:"urgency" validate:"required,oneof=Low Medium High"`
}

// Normalize trims free-text fields and upper-cases the VIN, as sent to the backend.
func (r ServiceRequest) Normalize() ServiceRequest {
	r.Vehicle.Make = strings.TrimSpace(r.Vehicle.Make)
	r.Vehicle.Model = strings.TrimSpace(r.Vehicle.Model)
	r.Vehicle.LicensePlate = strings.TrimSpace(r.Vehicle.LicensePlate)
	r.Vehicle.VIN = strings.ToUpper(strings.TrimSpace(r.Vehicle.VIN))
	r.Symptoms = strings.TrimSpace(r.Symptoms)
	r.Location = strings.TrimSpace(r.Location)
	return r
}

// ServiceRequestSummary is one row of GET /api/service-requests/me.
type ServiceRequestSummary struct {
	ID          ID      `json:"id,omitempty"`
	MongoID     ID      `json:"_id,omitempty"`
	Vehicle     Vehicle `json:"vehicle"`
	Status      string  `json:"status,omitempty"`
	ServiceType string  `json:"serviceType,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

func (s ServiceRequestSummary) RequestID() string {
	switch {
	case s.ID != "":
		return s.ID.String()
	case s.MongoID != "":
		return s.MongoID.String()
	default:
		return "unknown"
	}
}

func (s ServiceRequestSummary) StatusOrDefault() string {
	if s.Status == "" {
		return "Pending"
	}
	return s.Status
}

func (s ServiceRequestSummary) ServiceTypeOrDefault() string {
	if s.ServiceType == "" {
		return "Service"
	}
	return s.ServiceType
}

// Title renders "<year> <make> <model>", empty when the vehicle is unknown.
func (s ServiceRequestSummary) Title() string {
	parts := make([]string, 0, 3)
	if s.Vehicle.Year != 0 {
		parts = append(parts, strconv.Itoa(s.Vehicle.Year))
	}
	if s.Vehicle.Make != "" {
		parts = append(parts, s.Vehicle.Make)
	}
	if s.Vehicle.Model != "" {
		parts = append(parts, s.Vehicle.Model)
	}
	return strings.Join(parts, " ")
}

// CreatedRequest is the subset of a create response the confirmation screen shows.
type CreatedRequest struct {
	ID      ID     `json:"id,omitempty"`
	MongoID ID     `json:"_id,omitempty"`
	Status  string `json:"status,omitempty"`
}

func (c CreatedRequest) RequestID() string {
	if c.ID != "" {
		return c.ID.String()
	}
	return c.MongoID.String()
}
