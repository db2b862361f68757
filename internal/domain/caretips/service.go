package caretips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/botalearn/plantcare/internal/domain/sunlight"
	"github.com/botalearn/plantcare/internal/domain/weather"
	"github.com/botalearn/plantcare/internal/infra/llm/chatgpt"
	apperrors "github.com/botalearn/plantcare/pkg/errors"
	"github.com/botalearn/plantcare/pkg/metrics"
)

// Thresholds below which a condition counts as near optimal.
const (
	tempToleranceC    = 3.0
	humidityTolerance = 10.0
	sunTolerance      = 1.0
)

// Service turns current-versus-optimal growing conditions into care tips.
type Service interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

type service struct {
	cfg     Config
	client  ChatClient
	weather weather.Provider
	sun     sunlight.Service
	logger  *slog.Logger
}

// NewService wires up the care-tip domain.
func NewService(cfg Config, client ChatClient, weatherProvider weather.Provider, sunService sunlight.Service, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		client:  client,
		weather: weatherProvider,
		sun:     sunService,
		logger:  logger.With("component", "caretips.service"),
	}
}

func (s *service) Generate(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.PlantName) == "" {
		return Response{}, apperrors.Wrap("invalid_input", "plant name cannot be empty", nil)
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return Response{}, apperrors.Wrap("invalid_input", "coordinates out of range", nil)
	}

	conditions, err := s.weather.Current(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return Response{}, apperrors.Wrap("weather_error", "failed to fetch current conditions", err)
	}
	report, err := s.sun.Estimate(ctx, sunlight.Query{Latitude: req.Latitude, Longitude: req.Longitude})
	if err != nil {
		return Response{}, err
	}

	deltas := conditionDeltas{
		temp:     conditions.TemperatureC - req.OptimalTempC,
		humidity: conditions.Humidity - req.OptimalHumidity,
		sun:      report.SunHours - req.OptimalSunHours,
	}

	prompt := s.buildPrompt(req, conditions, report.SunHours, deltas)
	completion, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:          s.cfg.Model,
		Temperature:    s.cfg.Temperature,
		TopP:           1,
		ResponseFormat: &chatgpt.ResponseFormat{Type: "json_object"},
		Messages: []chatgpt.Message{
			{Role: "system", Content: s.systemPrompt()},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		// Advice must still reach the caller when the LLM is down.
		s.logger.Warn("care tip completion failed, serving fallback", "error", err)
		return fallbackResponse(deltas, "Error generating %s tips. Please try again later."), nil
	}
	if len(completion.Choices) == 0 {
		s.logger.Warn("care tip completion returned no choices, serving fallback")
		return fallbackResponse(deltas, "Error generating %s tips. Please try again later."), nil
	}

	parsed, err := parseTips(completion.Choices[0].Message.Content)
	if err != nil {
		s.logger.Warn("care tip response malformed, serving fallback", "error", err)
		return fallbackResponse(deltas, "Maintain optimal %s conditions for your plant."), nil
	}
	if !completionUsageIsZero(completion) {
		parsed.TokenUsage = &metrics.TokenUsage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		}
	}
	return parsed, nil
}

type conditionDeltas struct {
	temp     float64
	humidity float64
	sun      float64
}

func (d conditionDeltas) tempStatus() string {
	if math.Abs(d.temp) < tempToleranceC {
		return StatusNearOptimal
	}
	if d.temp > 0 {
		return StatusTooWarm
	}
	return StatusTooCool
}

func (d conditionDeltas) humidityStatus() string {
	if math.Abs(d.humidity) < humidityTolerance {
		return StatusNearOptimal
	}
	if d.humidity > 0 {
		return StatusTooHumid
	}
	return StatusTooDry
}

func (d conditionDeltas) sunStatus() string {
	if math.Abs(d.sun) < sunTolerance {
		return StatusNearOptimal
	}
	if d.sun > 0 {
		return StatusExcessiveSun
	}
	return StatusInsufficientSun
}

func (d conditionDeltas) tempEmoji() string {
	if math.Abs(d.temp) < tempToleranceC {
		return "✅"
	}
	if d.temp > 0 {
		return "🔥"
	}
	return "❄️"
}

func (d conditionDeltas) humidityEmoji() string {
	if math.Abs(d.humidity) < humidityTolerance {
		return "✅"
	}
	if d.humidity > 0 {
		return "💧"
	}
	return "🏜️"
}

func (d conditionDeltas) sunEmoji() string {
	if math.Abs(d.sun) < sunTolerance {
		return "✅"
	}
	if d.sun > 0 {
		return "☀️"
	}
	return "🌥️"
}

func fallbackResponse(deltas conditionDeltas, tipTemplate string) Response {
	return Response{
		Temperature: Section{
			Status: deltas.tempStatus(),
			Tips:   []string{fmt.Sprintf(tipTemplate, "temperature")},
			Emoji:  deltas.tempEmoji(),
		},
		Humidity: Section{
			Status: deltas.humidityStatus(),
			Tips:   []string{fmt.Sprintf(tipTemplate, "humidity")},
			Emoji:  deltas.humidityEmoji(),
		},
		Sunlight: Section{
			Status: deltas.sunStatus(),
			Tips:   []string{fmt.Sprintf(tipTemplate, "sunlight")},
			Emoji:  deltas.sunEmoji(),
		},
	}
}

func parseTips(raw string) (Response, error) {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.Trim(sanitized, "`")
	sanitized = strings.TrimSpace(strings.TrimPrefix(sanitized, "json"))

	var parsed Response
	if err := json.Unmarshal([]byte(sanitized), &parsed); err != nil {
		return Response{}, err
	}
	for name, section := range map[string]Section{
		"temperature": parsed.Temperature,
		"humidity":    parsed.Humidity,
		"sunlight":    parsed.Sunlight,
	} {
		if strings.TrimSpace(section.Status) == "" {
			return Response{}, errors.New(name + " status missing")
		}
		if len(section.Tips) == 0 {
			return Response{}, errors.New(name + " tips missing")
		}
	}
	return parsed, nil
}

func completionUsageIsZero(completion chatgpt.ChatCompletionResponse) bool {
	u := completion.Usage
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}

func (s *service) systemPrompt() string {
	base := strings.TrimSpace(s.cfg.Prompt)
	if base == "" {
		base = "You are a knowledgeable botanist specializing in plant care. Provide concise, practical advice based on weather conditions."
	}
	return base + " Always respond in the requested JSON format."
}

func (s *service) buildPrompt(req Request, conditions weather.Conditions, currentSunHours float64, deltas conditionDeltas) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I need specific care tips for a %s based on these weather conditions:\n\n", req.PlantName)
	fmt.Fprintf(&b, "TEMPERATURE:\n- Current: %g°C\n- Optimal: %g°C\n- Difference: %+g°C (%s)\n\n",
		conditions.TemperatureC, req.OptimalTempC, deltas.temp, deltas.tempStatus())
	fmt.Fprintf(&b, "HUMIDITY:\n- Current: %g%%\n- Optimal: %g%%\n- Difference: %+g%% (%s)\n\n",
		conditions.Humidity, req.OptimalHumidity, deltas.humidity, deltas.humidityStatus())
	fmt.Fprintf(&b, "SUNLIGHT:\n- Current: %g hours\n- Optimal: %g hours\n- Difference: %+g hours (%s)\n\n",
		currentSunHours, req.OptimalSunHours, deltas.sun, deltas.sunStatus())
	b.WriteString("Please provide care tips for today based on these conditions. ")
	b.WriteString("Focus on what actions should be taken to compensate for any differences from optimal conditions. ")
	b.WriteString("For each condition, also provide an appropriate emoji that visually represents the current status ")
	b.WriteString("(temperature: 🔥 too warm, ❄️ too cool, ✅ near optimal; humidity: 💧 too humid, 🏜️ too dry, ✅ near optimal; ")
	b.WriteString("sunlight: ☀️ excessive, 🌥️ insufficient, ✅ near optimal).\n\n")
	b.WriteString(`Return your response as JSON with 2-3 specific tips for each condition: {"temperature":{"status":"...","tips":["..."],"emoji":"..."},"humidity":{"status":"...","tips":["..."],"emoji":"..."},"sunlight":{"status":"...","tips":["..."],"emoji":"..."}}`)
	return b.String()
}
