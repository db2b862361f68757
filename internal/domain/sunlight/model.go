package sunlight

// Query captures the coordinates and optional light-meter sample supplied by the caller.
type Query struct {
	Latitude    float64
	Longitude   float64
	MeasuredLux *float64
}

// DayRecord holds the astronomical fields returned by a day-length provider.
// The engine treats it as an immutable input for a single computation.
type DayRecord struct {
	Date       string
	Sunrise    string
	Sunset     string
	FirstLight string
	LastLight  string
	DayLength  string
	Timezone   string
}

// Band is a named illuminance range with its nominal daily duration.
type Band struct {
	MinLux         float64 `json:"min"`
	MaxLux         float64 `json:"max"`
	AvgHoursPerDay float64 `json:"avgHoursPerDay"`
}

// ExposureLevels are the four bands ordered from brightest to dimmest.
// The two sunlit bands scale with the modeled peak; the shade bands carry
// absolute lux bounds.
type ExposureLevels struct {
	DirectSunlight   Band `json:"directSunlight"`
	IndirectSunlight Band `json:"indirectSunlight"`
	BrightShade      Band `json:"brightShade"`
	Shade            Band `json:"shade"`
}

// SunHours is the classification of one measured illuminance sample.
type SunHours struct {
	MeasuredLux        float64
	Category           string
	EquivalentSunHours float64
}

// Exposure is the lux-domain portion of the report.
type Exposure struct {
	EstimatedDailyLux     int64          `json:"estimated_daily_lux"`
	AverageFullSunLux     float64        `json:"average_full_sun_lux"`
	ExposureLevels        ExposureLevels `json:"exposure_levels"`
	MeasuredLux           *float64       `json:"measured_lux"`
	MeasuredLuxCategory   *string        `json:"measured_lux_category"`
	MeasuredLuxInSunHours *float64       `json:"measured_lux_in_sun_hours"`
}

// Report is the full exposure estimate serialized back to API consumers.
// It is assembled fresh per request and never mutated afterwards.
type Report struct {
	Date            string   `json:"date"`
	Sunrise         string   `json:"sunrise"`
	Sunset          string   `json:"sunset"`
	FirstLight      string   `json:"first_light"`
	LastLight       string   `json:"last_light"`
	DayLength       string   `json:"day_length"`
	SunHours        float64  `json:"sun_hours"`
	TotalLightHours float64  `json:"total_light_hours"`
	Timezone        string   `json:"timezone"`
	SunExposure     Exposure `json:"sun_exposure"`
}

// Measured lux categories returned to clients.
const (
	CategoryDirect   = "Direct sunlight"
	CategoryIndirect = "Indirect/filtered sunlight"
	CategoryBright   = "Bright shade"
	CategoryShade    = "Shade"
)
