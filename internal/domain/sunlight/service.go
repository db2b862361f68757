package sunlight

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	apperrors "github.com/botalearn/plantcare/pkg/errors"
)

// Service exposes the solar exposure estimation engine.
type Service interface {
	Estimate(ctx context.Context, query Query) (Report, error)
}

// Provider supplies astronomical day-length data for a coordinate. The engine
// never retries a failed fetch; retry policy belongs to the caller.
type Provider interface {
	Fetch(ctx context.Context, latitude, longitude float64) (DayRecord, error)
}

type service struct {
	provider Provider
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the exposure engine. The engine holds no state between
// invocations, so a single instance serves concurrent requests without locking.
func NewService(provider Provider, logger *slog.Logger) Service {
	return &service{
		provider: provider,
		logger:   logger.With("component", "sunlight.service"),
		now:      time.Now,
	}
}

func (s *service) Estimate(ctx context.Context, query Query) (Report, error) {
	if query.Latitude < -90 || query.Latitude > 90 {
		return Report{}, apperrors.Wrap("invalid_input", "latitude must be within [-90, 90]", nil)
	}
	if query.Longitude < -180 || query.Longitude > 180 {
		return Report{}, apperrors.Wrap("invalid_input", "longitude must be within [-180, 180]", nil)
	}

	record, err := s.provider.Fetch(ctx, query.Latitude, query.Longitude)
	if err != nil {
		return Report{}, apperrors.Wrap("sun_data_error", "failed to fetch day-length data", err)
	}
	if err := validateRecord(record); err != nil {
		return Report{}, apperrors.Wrap("sun_data_error", "day-length data is incomplete", err)
	}
	s.logger.Info("day-length data fetched", "date", record.Date, "day_length", record.DayLength)

	fullSunHours, err := fullSunHoursFromDayLength(record.DayLength)
	if err != nil {
		return Report{}, apperrors.Wrap("sun_data_error", "malformed day length", err)
	}
	totalLightHours, err := totalLightHoursBetween(record.FirstLight, record.LastLight)
	if err != nil {
		return Report{}, apperrors.Wrap("sun_data_error", "malformed light window", err)
	}

	peak, err := computePeakIlluminance(query.Latitude, s.now())
	if err != nil {
		return Report{}, err
	}
	levels, err := buildBands(peak, fullSunHours, totalLightHours)
	if err != nil {
		return Report{}, err
	}

	averageFullSunLux := peak * 0.7
	report := Report{
		Date:            record.Date,
		Sunrise:         record.Sunrise,
		Sunset:          record.Sunset,
		FirstLight:      record.FirstLight,
		LastLight:       record.LastLight,
		DayLength:       record.DayLength,
		SunHours:        fullSunHours,
		TotalLightHours: totalLightHours,
		Timezone:        record.Timezone,
		SunExposure: Exposure{
			EstimatedDailyLux: int64(math.Round(averageFullSunLux * fullSunHours)),
			AverageFullSunLux: averageFullSunLux,
			ExposureLevels:    levels,
		},
	}

	if query.MeasuredLux != nil {
		matched, err := convertToSunHours(*query.MeasuredLux, levels, fullSunHours, peak)
		if err != nil {
			return Report{}, err
		}
		report.SunExposure.MeasuredLux = &matched.MeasuredLux
		report.SunExposure.MeasuredLuxCategory = &matched.Category
		report.SunExposure.MeasuredLuxInSunHours = &matched.EquivalentSunHours
	}

	return report, nil
}

func validateRecord(record DayRecord) error {
	missing := make([]string, 0, 4)
	for _, field := range []struct {
		name  string
		value string
	}{
		{"sunrise", record.Sunrise},
		{"sunset", record.Sunset},
		{"first_light", record.FirstLight},
		{"last_light", record.LastLight},
		{"day_length", record.DayLength},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return apperrors.Wrap("sun_data_error", "missing fields: "+strings.Join(missing, ", "), nil)
	}
	return nil
}
