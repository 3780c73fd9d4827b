package radar

import "time"

const (
	MonitorTypeCurrency = "moeda"
	MonitorTypeMileage  = "milhas"
)

type CreateRadarRequest struct {
	Origin      string   `json:"origin" validate:"required,min=2,max=64"`
	Destination string   `json:"destination" validate:"required,min=2,max=64"`
	StartDate   string   `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string   `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TargetValue *float64 `json:"target_value,omitempty"`
	MonitorType string   `json:"monitor_type,omitempty" validate:"omitempty,oneof=moeda milhas"`
}

type RadarResponse struct {
	ID          string    `json:"id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
	TargetValue *float64  `json:"target_value,omitempty"`
	MonitorType string    `json:"monitor_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListRadarsResponse struct {
	Radars []RadarResponse `json:"radars"`
	Total  int             `json:"total"`
}
