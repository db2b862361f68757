package local

import (
	"context"
	"fmt"
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/botalearn/plantcare/internal/domain/sunlight"
)

const clockLayout = "15:04:05"

// Provider computes day-length records locally instead of calling the
// SunriseSunset.io API. Used when no API base URL is configured, so the
// service keeps answering without network access to the upstream provider.
// All values are reported in UTC.
type Provider struct {
	now func() time.Time
}

// NewProvider constructs the offline provider.
func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

// Fetch derives sunrise, sunset and twilight times for today at the given
// coordinate.
func (p *Provider) Fetch(_ context.Context, latitude, longitude float64) (sunlight.DayRecord, error) {
	if latitude < -90 || latitude > 90 {
		return sunlight.DayRecord{}, fmt.Errorf("latitude %g out of range", latitude)
	}

	reference := p.now().UTC()
	times := suncalc.GetTimes(reference, latitude, longitude)

	sunrise := times[suncalc.Sunrise].Value.UTC()
	sunset := times[suncalc.Sunset].Value.UTC()
	dawn := times[suncalc.Dawn].Value.UTC()
	dusk := times[suncalc.Dusk].Value.UTC()
	if sunrise.IsZero() || sunset.IsZero() || !sunset.After(sunrise) {
		// Polar day or night: there is no usable light window to model.
		return sunlight.DayRecord{}, fmt.Errorf("no sunrise/sunset at latitude %g on %s", latitude, reference.Format("2006-01-02"))
	}

	return sunlight.DayRecord{
		Date:       reference.Format("2006-01-02"),
		Sunrise:    sunrise.Format(clockLayout),
		Sunset:     sunset.Format(clockLayout),
		FirstLight: dawn.Format(clockLayout),
		LastLight:  dusk.Format(clockLayout),
		DayLength:  formatDayLength(sunset.Sub(sunrise)),
		Timezone:   "UTC",
	}, nil
}

func formatDayLength(d time.Duration) string {
	seconds := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}
