package sunlight

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/botalearn/plantcare/pkg/errors"
)

// Absolute lux floors for the unscaled shade bands.
const (
	brightShadeFloorLux = 1000
	shadeFloorLux       = 100
)

// computePeakIlluminance models the maximum sunlight intensity for a latitude
// and reference date. Equator sits near 100k lux, poles near 60k before
// clamping; the hemisphere summer windows are intentionally asymmetric
// (May-Oct north, Nov-Mar south) and downstream numbers depend on these exact
// thresholds, so keep them as they are.
func computePeakIlluminance(latitude float64, reference time.Time) (float64, error) {
	if latitude < -90 || latitude > 90 {
		return 0, apperrors.Wrap("invalid_input", "latitude must be within [-90, 90]", nil)
	}

	peak := 100000 - math.Abs(latitude)*450

	if isHemisphereSummer(latitude, int(reference.Month())-1) {
		peak *= 1.10
	} else {
		peak *= 0.90
	}

	if peak < 60000 {
		peak = 60000
	}
	return math.Floor(peak/1000) * 1000, nil
}

// isHemisphereSummer takes a 0-indexed month. Latitude >= 0 counts as northern.
func isHemisphereSummer(latitude float64, month int) bool {
	if latitude >= 0 {
		return month >= 4 && month <= 9
	}
	return month <= 2 || month >= 10
}

// buildBands partitions [0, peak] into the four exposure bands. Ranges are
// [min, max) with the shared boundary belonging to the brighter band; the top
// band includes its max.
func buildBands(peak, fullSunHours, totalLightHours float64) (ExposureLevels, error) {
	if peak <= 0 {
		return ExposureLevels{}, apperrors.Wrap("invalid_input", "peak illuminance must be positive", nil)
	}
	return ExposureLevels{
		DirectSunlight: Band{
			MinLux:         peak * 0.32,
			MaxLux:         peak,
			AvgHoursPerDay: fullSunHours * 0.7,
		},
		IndirectSunlight: Band{
			MinLux:         peak * 0.10,
			MaxLux:         peak * 0.32,
			AvgHoursPerDay: fullSunHours * 0.3,
		},
		BrightShade: Band{
			MinLux:         brightShadeFloorLux,
			MaxLux:         peak * 0.10,
			AvgHoursPerDay: totalLightHours - fullSunHours,
		},
		Shade: Band{
			MinLux:         shadeFloorLux,
			MaxLux:         brightShadeFloorLux,
			AvgHoursPerDay: 0,
		},
	}, nil
}

// convertToSunHours classifies one measured sample against the bands and
// converts it into an equivalent number of full-sun hours. Bands are checked
// brightest first; negative readings are clamped to zero rather than rejected
// since sensors occasionally report junk below their floor.
func convertToSunHours(measuredLux float64, levels ExposureLevels, fullSunHours, peak float64) (SunHours, error) {
	if measuredLux < 0 {
		measuredLux = 0
	}
	averageFullSunLux := peak * 0.7

	var (
		category string
		hours    float64
	)
	switch {
	case measuredLux >= levels.DirectSunlight.MinLux:
		category = CategoryDirect
		if averageFullSunLux <= 0 {
			return SunHours{}, apperrors.Wrap("computation_error", "average full-sun lux is zero", nil)
		}
		hours = measuredLux / averageFullSunLux * fullSunHours
	case measuredLux >= levels.IndirectSunlight.MinLux:
		category = CategoryIndirect
		if levels.IndirectSunlight.MaxLux <= 0 {
			return SunHours{}, apperrors.Wrap("computation_error", "indirect band upper bound is zero", nil)
		}
		hours = measuredLux / levels.IndirectSunlight.MaxLux * levels.IndirectSunlight.AvgHoursPerDay
	case measuredLux >= levels.BrightShade.MinLux:
		category = CategoryBright
		if levels.BrightShade.MaxLux <= 0 {
			return SunHours{}, apperrors.Wrap("computation_error", "bright-shade band upper bound is zero", nil)
		}
		hours = measuredLux / levels.BrightShade.MaxLux * levels.BrightShade.AvgHoursPerDay
	default:
		category = CategoryShade
		hours = 0
	}

	return SunHours{
		MeasuredLux:        measuredLux,
		Category:           category,
		EquivalentSunHours: roundTenth(hours),
	}, nil
}

// fullSunHoursFromDayLength parses an "HH:MM:SS" duration into fractional
// hours rounded to one decimal place.
func fullSunHoursFromDayLength(dayLength string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(dayLength), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("day length %q is not HH:MM:SS", dayLength)
	}
	var components [3]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, fmt.Errorf("day length %q is not HH:MM:SS: %w", dayLength, err)
		}
		components[i] = value
	}
	return roundTenth(components[0] + components[1]/60 + components[2]/3600), nil
}

// totalLightHoursBetween measures first light to last light as clock
// durations, adding a day when last light lands past midnight. Working with
// durations instead of constructed calendar dates keeps the arithmetic
// independent of the host timezone.
func totalLightHoursBetween(firstLight, lastLight string) (float64, error) {
	first, err := parseClock(firstLight)
	if err != nil {
		return 0, err
	}
	last, err := parseClock(lastLight)
	if err != nil {
		return 0, err
	}
	hours := (last - first).Hours()
	if hours < 0 {
		hours += 24
	}
	return roundTenth(hours), nil
}

var clockLayouts = []string{"15:04:05", "3:04:05 PM"}

// parseClock turns a local time-of-day string into an offset from midnight.
// The upstream API emits 12-hour clock values, so both forms are accepted.
func parseClock(value string) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range clockLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return time.Duration(ts.Hour())*time.Hour +
				time.Duration(ts.Minute())*time.Minute +
				time.Duration(ts.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("time of day %q is not a recognized clock value", value)
}

func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
