package nlp

type Intent string

const (
	IntentQuestion     Intent = "question"
	IntentFlightSearch Intent = "flight_search"
	IntentRadarCreate  Intent = "radar_create"
	IntentRadarOpen    Intent = "radar_open"
	IntentRadarDelete  Intent = "radar_delete"
	IntentNavigate     Intent = "navigate"
	IntentBack         Intent = "back"
	IntentUnrecognized Intent = "unrecognized"
)

// CommandConfidenceThreshold is the minimum confidence at which a command is
// executed directly instead of falling back to a prefilled form.
const CommandConfidenceThreshold = 50

type Classification struct {
	Intent           Intent `json:"intent"`
	RouteID          string `json:"route_id,omitempty"`
	RoutePath        string `json:"route_path,omitempty"`
	RouteDisplayName string `json:"route_display_name,omitempty"`
}

type FlightCommand struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departure_date"`
	ReturnDate    string   `json:"return_date,omitempty"`
	Passengers    int      `json:"passengers"`
	CabinClass    string   `json:"cabin_class"`
	Confidence    int      `json:"confidence"`
	Errors        []string `json:"errors,omitempty"`
}

type RadarCommand struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	TargetValue *float64 `json:"target_value,omitempty"`
	MonitorType string   `json:"monitor_type"`
	Confidence  int      `json:"confidence"`
	Errors      []string `json:"errors,omitempty"`
}

const (
	MonitorTypeCurrency = "moeda"
	MonitorTypeMileage  = "milhas"
)

type RouteMappingData struct {
	RouteID     string   `json:"route_id"`
	Path        string   `json:"path"`
	DisplayName string   `json:"display_name"`
	Keywords    []string `json:"keywords"`
}

type IProcessor interface {
	Classify(text string) Classification
	ExtractFlight(text string) *FlightCommand
	ExtractRadar(text string) *RadarCommand
	GetRouteMapping(routeID string) (RouteMappingData, bool)
	GetAllRouteMappings() map[string]RouteMappingData
	AddRouteMapping(routeID string, mapping RouteMappingData) error
	RemoveRouteMapping(routeID string)
}
