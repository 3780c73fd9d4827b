package voice

import "time"

// Inbound websocket frame types.
const (
	MessageTypeTranscript = "transcript"
	MessageTypeStop       = "stop"
)

// Outbound websocket event types.
const (
	EventTypeStatus   = "status"
	EventTypeAnswer   = "answer"
	EventTypeNavigate = "navigate"
	EventTypeForm     = "form"
	EventTypeError    = "error"
)

type StreamMessage struct {
	Type string `json:"type"`
	Role string `json:"role,omitempty"`
	Text string `json:"text,omitempty"`
}

type StreamEvent struct {
	Type       string            `json:"type"`
	Status     string            `json:"status,omitempty"`
	Text       string            `json:"text,omitempty"`
	Target     string            `json:"target,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
	Intent     string            `json:"intent,omitempty"`
	Confidence int               `json:"confidence,omitempty"`
}

type InterpretRequest struct {
	Transcript string `json:"transcript" validate:"required,min=1,max=1000"`
}

type FlightCommandData struct {
	Origin        string   `json:"origin,omitempty"`
	Destination   string   `json:"destination,omitempty"`
	DepartureDate string   `json:"departure_date,omitempty"`
	ReturnDate    string   `json:"return_date,omitempty"`
	Passengers    int      `json:"passengers,omitempty"`
	CabinClass    string   `json:"cabin_class,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}

type RadarCommandData struct {
	Origin      string   `json:"origin,omitempty"`
	Destination string   `json:"destination,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	TargetValue *float64 `json:"target_value,omitempty"`
	MonitorType string   `json:"monitor_type,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

type RouteData struct {
	RouteID     string `json:"route_id"`
	Path        string `json:"path"`
	DisplayName string `json:"display_name"`
}

type InterpretResponse struct {
	Transcript string             `json:"transcript"`
	Intent     string             `json:"intent"`
	Confidence int                `json:"confidence"`
	Route      *RouteData         `json:"route,omitempty"`
	Flight     *FlightCommandData `json:"flight,omitempty"`
	Radar      *RadarCommandData  `json:"radar,omitempty"`
}

type UtteranceResponse struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Transcript string    `json:"transcript"`
	Intent     string    `json:"intent"`
	Confidence int       `json:"confidence"`
	Outcome    string    `json:"outcome"`
	CreatedAt  time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Utterances []UtteranceResponse `json:"utterances"`
	Total      int                 `json:"total"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
}

type RouteMappingRequest struct {
	RouteID     string   `json:"route_id" validate:"required,min=2,max=64"`
	Path        string   `json:"path" validate:"required,startswith=/"`
	DisplayName string   `json:"display_name" validate:"required,min=2,max=128"`
	Keywords    []string `json:"keywords" validate:"required,min=1,dive,min=2"`
}

type RouteMappingResponse struct {
	RouteID     string    `json:"route_id"`
	Path        string    `json:"path"`
	DisplayName string    `json:"display_name"`
	Keywords    []string  `json:"keywords"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
