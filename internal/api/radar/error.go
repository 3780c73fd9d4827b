package radar

import "ProjectViagem/pkg/response"

var (
	ErrRadarNotFound     = response.NewError(404, "radar not found")
	ErrRadarNotOwned     = response.NewError(403, "radar does not belong to user")
	ErrInvalidRoute      = response.NewError(400, "origin and destination are required")
	ErrSameCity          = response.NewError(400, "origin and destination must differ")
	ErrInvalidDateRange  = response.NewError(400, "end date must be after start date")
	ErrInvalidTarget     = response.NewError(400, "target value must be positive")
	ErrDuplicateRadar    = response.NewError(409, "an active radar already exists for this route")
	ErrTooManyRadars     = response.NewError(422, "radar limit reached")
	ErrInvalidMonitorTyp = response.NewError(400, "monitor type must be moeda or milhas")
)
