package caretips

import "github.com/botalearn/plantcare/pkg/metrics"

// Config wires runtime dependencies for the care-tip domain.
type Config struct {
	Model       string
	Temperature float32
	Prompt      string
}

// Request captures the payload accepted by the care-tip service. Optimal
// values come from the plant catalog defaults or the user's own link row.
type Request struct {
	PlantName       string  `json:"plantName"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	OptimalTempC    float64 `json:"optimalTempC"`
	OptimalHumidity float64 `json:"optimalHumidity"`
	OptimalSunHours float64 `json:"optimalSunHours"`
}

// Section holds the advice for one condition.
type Section struct {
	Status string   `json:"status"`
	Tips   []string `json:"tips"`
	Emoji  string   `json:"emoji"`
}

// Response is serialized back to API consumers.
type Response struct {
	Temperature Section             `json:"temperature"`
	Humidity    Section             `json:"humidity"`
	Sunlight    Section             `json:"sunlight"`
	TokenUsage  *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// Condition statuses shared with the prompt and the fallback path.
const (
	StatusNearOptimal     = "near optimal"
	StatusTooWarm         = "too warm"
	StatusTooCool         = "too cool"
	StatusTooHumid        = "too humid"
	StatusTooDry          = "too dry"
	StatusExcessiveSun    = "excessive sunlight"
	StatusInsufficientSun = "insufficient sunlight"
)
