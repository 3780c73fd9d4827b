package voice

import "ProjectViagem/pkg/response"

var (
	ErrAgentNotConfigured   = response.NewError(503, "voice agent not configured")
	ErrEmptyTranscript      = response.NewError(400, "empty transcript")
	ErrRouteMappingNotFound = response.NewError(404, "route mapping not found")
	ErrRouteMappingExists   = response.NewError(409, "route mapping already exists")
)
