package sunlight

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestComputePeakIlluminanceBounds(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.November, 3, 0, 0, 0, 0, time.UTC),
	}
	for lat := -90.0; lat <= 90.0; lat += 7.5 {
		for _, date := range dates {
			peak, err := computePeakIlluminance(lat, date)
			require.NoError(t, err)
			require.GreaterOrEqual(t, peak, 60000.0, "lat=%v date=%v", lat, date)
			require.Zero(t, math.Mod(peak, 1000), "lat=%v date=%v peak=%v", lat, date, peak)
		}
	}
}

func TestComputePeakIlluminanceEquatorSummer(t *testing.T) {
	peak, err := computePeakIlluminance(0, time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 110000.0, peak)
}

func TestComputePeakIlluminanceEquatorWinter(t *testing.T) {
	peak, err := computePeakIlluminance(0, time.Date(2024, time.December, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 90000.0, peak)
}

func TestComputePeakIlluminanceSouthernSeasonsFlip(t *testing.T) {
	june := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	december := time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)

	northJune, err := computePeakIlluminance(40, june)
	require.NoError(t, err)
	southJune, err := computePeakIlluminance(-40, june)
	require.NoError(t, err)
	southDecember, err := computePeakIlluminance(-40, december)
	require.NoError(t, err)

	require.Greater(t, northJune, southJune)
	require.Equal(t, northJune, southDecember)
}

func TestComputePeakIlluminanceRejectsOutOfRangeLatitude(t *testing.T) {
	_, err := computePeakIlluminance(91, time.Now())
	require.Error(t, err)
	_, err = computePeakIlluminance(-90.5, time.Now())
	require.Error(t, err)
}

func TestBuildBandsPartitionIsContiguous(t *testing.T) {
	levels, err := buildBands(110000, 12.0, 13.3)
	require.NoError(t, err)

	require.Equal(t, levels.IndirectSunlight.MaxLux, levels.DirectSunlight.MinLux)
	require.Equal(t, levels.BrightShade.MaxLux, levels.IndirectSunlight.MinLux)
	require.Equal(t, 110000.0, levels.DirectSunlight.MaxLux)
	require.Equal(t, 1000.0, levels.BrightShade.MinLux)
	require.Equal(t, 1000.0, levels.Shade.MaxLux)
	require.Equal(t, 100.0, levels.Shade.MinLux)
	require.Zero(t, levels.Shade.AvgHoursPerDay)
}

func TestBuildBandsSunlitHoursSumToFullSun(t *testing.T) {
	for _, fullSun := range []float64{0, 4.2, 8.9, 12.0, 16.7} {
		levels, err := buildBands(97000, fullSun, fullSun+1.5)
		require.NoError(t, err)
		sum := levels.DirectSunlight.AvgHoursPerDay + levels.IndirectSunlight.AvgHoursPerDay
		require.InDelta(t, fullSun, sum, 0.1)
	}
}

func TestBuildBandsRejectsNonPositivePeak(t *testing.T) {
	_, err := buildBands(0, 12, 13)
	require.Error(t, err)
	_, err = buildBands(-5000, 12, 13)
	require.Error(t, err)
}

func TestConvertToSunHoursBoundaries(t *testing.T) {
	const peak, fullSun = 110000.0, 12.0
	levels, err := buildBands(peak, fullSun, 13.3)
	require.NoError(t, err)

	zero, err := convertToSunHours(0, levels, fullSun, peak)
	require.NoError(t, err)
	require.Equal(t, CategoryShade, zero.Category)
	require.Zero(t, zero.EquivalentSunHours)

	atPeak, err := convertToSunHours(peak, levels, fullSun, peak)
	require.NoError(t, err)
	require.Equal(t, CategoryDirect, atPeak.Category)
	want := math.Round(peak/(peak*0.7)*fullSun*10) / 10
	require.Equal(t, want, atPeak.EquivalentSunHours)
}

func TestConvertToSunHoursIndirectRangeNeverMisclassified(t *testing.T) {
	const peak, fullSun = 100000.0, 10.0
	levels, err := buildBands(peak, fullSun, 12.0)
	require.NoError(t, err)

	for lux := levels.IndirectSunlight.MinLux; lux < levels.IndirectSunlight.MaxLux; lux += 500 {
		matched, err := convertToSunHours(lux, levels, fullSun, peak)
		require.NoError(t, err)
		require.Equal(t, CategoryIndirect, matched.Category, "lux=%v", lux)
	}
}

func TestConvertToSunHoursMonotonicWithinBands(t *testing.T) {
	const peak, fullSun = 100000.0, 10.0
	levels, err := buildBands(peak, fullSun, 12.0)
	require.NoError(t, err)

	// A band owns [min, max): its max belongs to the next brighter band,
	// except DirectSunlight whose max is the peak itself.
	ranges := []struct {
		bounds       [2]float64
		includeUpper bool
	}{
		{bounds: [2]float64{levels.BrightShade.MinLux, levels.BrightShade.MaxLux}},
		{bounds: [2]float64{levels.IndirectSunlight.MinLux, levels.IndirectSunlight.MaxLux}},
		{bounds: [2]float64{levels.DirectSunlight.MinLux, levels.DirectSunlight.MaxLux}, includeUpper: true},
	}
	for _, r := range ranges {
		prev := -1.0
		step := (r.bounds[1] - r.bounds[0]) / 20
		for lux := r.bounds[0]; lux < r.bounds[1] || (r.includeUpper && lux <= r.bounds[1]); lux += step {
			matched, err := convertToSunHours(lux, levels, fullSun, peak)
			require.NoError(t, err)
			require.GreaterOrEqual(t, matched.EquivalentSunHours, prev, "lux=%v", lux)
			prev = matched.EquivalentSunHours
		}
	}
}

func TestConvertToSunHoursBandBoundariesBelongToBrighterBand(t *testing.T) {
	const peak, fullSun = 100000.0, 10.0
	levels, err := buildBands(peak, fullSun, 12.0)
	require.NoError(t, err)

	// At exactly bright shade's max the indirect formula takes over, so the
	// equivalent hours step down from the bright-shade value just below it.
	atBoundary, err := convertToSunHours(levels.BrightShade.MaxLux, levels, fullSun, peak)
	require.NoError(t, err)
	require.Equal(t, CategoryIndirect, atBoundary.Category)

	justBelow, err := convertToSunHours(levels.BrightShade.MaxLux-1, levels, fullSun, peak)
	require.NoError(t, err)
	require.Equal(t, CategoryBright, justBelow.Category)
	require.Less(t, atBoundary.EquivalentSunHours, justBelow.EquivalentSunHours)

	atDirectMin, err := convertToSunHours(levels.IndirectSunlight.MaxLux, levels, fullSun, peak)
	require.NoError(t, err)
	require.Equal(t, CategoryDirect, atDirectMin.Category)
}

func TestConvertToSunHoursClampsNegativeReadings(t *testing.T) {
	levels, err := buildBands(100000, 10, 12)
	require.NoError(t, err)

	matched, err := convertToSunHours(-250, levels, 10, 100000)
	require.NoError(t, err)
	require.Equal(t, CategoryShade, matched.Category)
	require.Zero(t, matched.MeasuredLux)
	require.Zero(t, matched.EquivalentSunHours)
}

func TestFullSunHoursFromDayLength(t *testing.T) {
	hours, err := fullSunHoursFromDayLength("12:00:00")
	require.NoError(t, err)
	require.Equal(t, 12.0, hours)

	hours, err = fullSunHoursFromDayLength("09:45:36")
	require.NoError(t, err)
	require.Equal(t, 9.8, hours)

	_, err = fullSunHoursFromDayLength("12:00")
	require.Error(t, err)
	_, err = fullSunHoursFromDayLength("twelve:00:00")
	require.Error(t, err)
}

func TestTotalLightHoursBetween(t *testing.T) {
	hours, err := totalLightHoursBetween("05:30:00", "18:45:00")
	require.NoError(t, err)
	require.Equal(t, 13.3, hours)

	// Last light past midnight folds into the next day.
	hours, err = totalLightHoursBetween("17:00:00", "01:30:00")
	require.NoError(t, err)
	require.Equal(t, 8.5, hours)

	// 12-hour clock values come straight from the upstream API.
	hours, err = totalLightHoursBetween("5:30:00 AM", "6:45:00 PM")
	require.NoError(t, err)
	require.Equal(t, 13.3, hours)

	_, err = totalLightHoursBetween("late", "18:45:00")
	require.Error(t, err)
}
