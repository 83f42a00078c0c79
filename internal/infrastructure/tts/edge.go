package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/annotext/annotext/internal/domain/playback"
	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

const (
	// edge-tts reports offsets and durations in 100-nanosecond ticks.
	ticksPerMillisecond = 10000

	defaultVoice   = "en-US-GuyNeural"
	defaultTimeout = 30 * time.Second
)

// EdgeConfig configures the edge-tts bridge process.
type EdgeConfig struct {
	// PythonBin is the interpreter used to run the bridge script.
	PythonBin string `mapstructure:"python_bin"`
	// ScriptPath is the location of the bridge script.
	ScriptPath string `mapstructure:"script_path"`
	// DefaultVoice is used when a request leaves the voice empty.
	DefaultVoice string `mapstructure:"default_voice"`
	// Timeout bounds a single synthesis invocation.
	Timeout time.Duration `mapstructure:"timeout"`
}

// EdgeProvider synthesizes speech through an external edge-tts bridge: one
// process invocation per clip, JSON on stdout.  The bridge emits base64
// audio plus raw WordBoundary events; offsets come back in ticks and the
// spoken words carry no text positions, so both are converted here.
type EdgeProvider struct {
	cfg    EdgeConfig
	logger logging.Logger
}

// NewEdgeProvider builds a provider over the given bridge configuration.
func NewEdgeProvider(cfg EdgeConfig, logger logging.Logger) *EdgeProvider {
	if cfg.PythonBin == "" {
		cfg.PythonBin = "python3"
	}
	if cfg.DefaultVoice == "" {
		cfg.DefaultVoice = defaultVoice
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &EdgeProvider{cfg: cfg, logger: logger.Named("tts.edge")}
}

// bridgeResult mirrors the bridge's stdout JSON.
type bridgeResult struct {
	Audio      string           `json:"audio"`
	Boundaries []bridgeBoundary `json:"boundaries"`
}

type bridgeBoundary struct {
	Type     string `json:"type"`
	Offset   int64  `json:"offset"`
	Duration int64  `json:"duration"`
	Text     string `json:"text"`
}

// Synthesize runs the bridge once and converts its output.
func (p *EdgeProvider) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.InvalidParam("synthesis text must not be empty")
	}
	voice := req.Voice
	if voice == "" {
		voice = p.cfg.DefaultVoice
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.cfg.PythonBin, p.cfg.ScriptPath,
		"--text", req.Text,
		"--voice", voice,
		"--rate", FormatRate(req.Rate),
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.Canceled {
			return nil, apperrors.New(apperrors.ErrCodeSynthesisCancelled, "synthesis cancelled").WithCause(ctx.Err())
		}
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.New(apperrors.ErrCodeSynthesisFailed, "synthesis timed out").
				WithDetail(fmt.Sprintf("timeout=%s", p.cfg.Timeout)).WithCause(ctx.Err())
		}
		if _, ok := err.(*exec.ExitError); !ok {
			return nil, apperrors.New(apperrors.ErrCodeBridgeUnavailable, "tts bridge could not be started").
				WithDetail(p.cfg.PythonBin + " " + p.cfg.ScriptPath).WithCause(err)
		}
		return nil, apperrors.New(apperrors.ErrCodeSynthesisFailed, "tts bridge exited with error").
			WithDetail(strings.TrimSpace(stderr.String())).WithCause(err)
	}

	result, err := ParseBridgeOutput(stdout.Bytes(), req.Text)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("synthesized clip",
		logging.String("voice", voice),
		logging.Int("audio_bytes", len(result.Audio)),
		logging.Int("boundaries", len(result.Boundaries)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

// ParseBridgeOutput decodes the bridge's JSON into a SynthesisResult,
// converting tick offsets to milliseconds and resolving each spoken word's
// position in sourceText.
func ParseBridgeOutput(raw []byte, sourceText string) (*SynthesisResult, error) {
	var br bridgeResult
	if err := json.Unmarshal(raw, &br); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeBoundaryParseFailed, "tts bridge output is not valid JSON").WithCause(err)
	}
	audio, err := base64.StdEncoding.DecodeString(br.Audio)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeBoundaryParseFailed, "tts bridge audio is not valid base64").WithCause(err)
	}
	return &SynthesisResult{
		Audio:      audio,
		MimeType:   "audio/mpeg",
		Boundaries: mapBoundaries(sourceText, br.Boundaries),
	}, nil
}

// mapBoundaries converts raw bridge boundaries into playback word
// boundaries.  The bridge reports only the spoken word, so each is located
// in the source text by a case-folded forward search from a moving cursor;
// matching forward keeps repeated words aligned with their own occurrence.
// Words the engine normalized beyond recognition are dropped rather than
// mapped to a wrong position.
func mapBoundaries(sourceText string, raw []bridgeBoundary) []playback.WordBoundary {
	lower := strings.ToLower(sourceText)
	boundaries := make([]playback.WordBoundary, 0, len(raw))
	cursor := 0
	for _, b := range raw {
		if b.Type != "" && b.Type != "WordBoundary" {
			continue
		}
		word := strings.TrimSpace(b.Text)
		if word == "" {
			continue
		}
		idx := strings.Index(lower[cursor:], strings.ToLower(word))
		if idx < 0 {
			continue
		}
		byteOff := cursor + idx
		boundaries = append(boundaries, playback.WordBoundary{
			AudioOffsetMs: b.Offset / ticksPerMillisecond,
			DurationMs:    b.Duration / ticksPerMillisecond,
			TextOffset:    utf16Len(sourceText[:byteOff]),
			LengthChars:   utf16Len(word),
			Word:          word,
		})
		cursor = byteOff + len(word)
	}
	return boundaries
}

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// FormatRate renders a speed multiplier as the signed percentage string the
// engine expects: 1.0 becomes "+0%", 1.25 becomes "+25%", 0.8 becomes "-20%".
func FormatRate(rate float64) string {
	if rate <= 0 {
		rate = 1.0
	}
	pct := int(rate*100+0.5) - 100
	return fmt.Sprintf("%+d%%", pct)
}
