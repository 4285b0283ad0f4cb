package grpc

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/script"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/led-service/pkg/ledpb"
)

// LEDServiceHandler implements the gRPC LEDService
type LEDServiceHandler struct {
	ledpb.UnimplementedLEDServiceServer
	driver  ports.LEDDriver
	blinker *ports.Blinker
	host    *script.Host
	repo    domain.EventRepository
}

// NewLEDServiceHandler creates a new gRPC handler.
// driver should already record into repo for history to be populated.
func NewLEDServiceHandler(driver ports.LEDDriver, blinker *ports.Blinker, host *script.Host, repo domain.EventRepository) *LEDServiceHandler {
	return &LEDServiceHandler{
		driver:  driver,
		blinker: blinker,
		host:    host,
		repo:    repo,
	}
}

// LEDOn switches one LED on
func (h *LEDServiceHandler) LEDOn(ctx context.Context, req *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error) {
	id := domain.LEDID(req.GetValue())
	log.Info().Uint32("led", uint32(id)).Msg("LEDOn called")

	if err := h.driver.LEDOn(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to switch led on")
		return nil, toStatus(err, "failed to switch led on")
	}
	return wrapperspb.Bool(true), nil
}

// LEDOff switches one LED off
func (h *LEDServiceHandler) LEDOff(ctx context.Context, req *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error) {
	id := domain.LEDID(req.GetValue())
	log.Info().Uint32("led", uint32(id)).Msg("LEDOff called")

	if err := h.driver.LEDOff(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to switch led off")
		return nil, toStatus(err, "failed to switch led off")
	}
	return wrapperspb.Bool(true), nil
}

// Blink switches one LED on and off
func (h *LEDServiceHandler) Blink(ctx context.Context, req *wrapperspb.UInt32Value) (*emptypb.Empty, error) {
	id := domain.LEDID(req.GetValue())
	log.Info().Uint32("led", uint32(id)).Msg("Blink called")

	if err := h.blinker.Blink(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to blink")
		return nil, toStatus(err, "failed to blink")
	}
	return &emptypb.Empty{}, nil
}

// Run executes the native blink loop; zero cycles uses the server default
func (h *LEDServiceHandler) Run(ctx context.Context, req *wrapperspb.UInt32Value) (*structpb.Struct, error) {
	log.Info().Uint32("cycles", req.GetValue()).Msg("Run called")

	if req.GetValue() > ports.MaxCycles {
		return nil, status.Errorf(codes.InvalidArgument, "cycles %d exceeds %d", req.GetValue(), ports.MaxCycles)
	}

	summary, err := h.blinker.Run(ctx, int(req.GetValue()))
	if err != nil {
		log.Error().Err(err).Str("run_id", summary.RunID).Msg("blink run failed")
		return nil, toStatus(err, "blink run failed")
	}
	return summaryToProto(summary)
}

// RunScript executes a script; an empty source runs the bundled blinky.js
func (h *LEDServiceHandler) RunScript(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name := req.GetFields()["name"].GetStringValue()
	source := req.GetFields()["source"].GetStringValue()
	if source == "" {
		name, source = script.BlinkyName, script.Blinky
	}
	if name == "" {
		name = "inline.js"
	}

	log.Info().
		Str("script", name).
		Int("bytes", len(source)).
		Msg("RunScript called")

	summary, err := h.host.Run(ctx, name, source)
	if err != nil {
		log.Error().Err(err).Str("run_id", summary.RunID).Msg("script run failed")
		return nil, toStatus(err, "script run failed")
	}
	return summaryToProto(summary)
}

// GetHistory returns events within [start_time, end_time) with counts.
// Times are Unix seconds; a zero end_time means now.
func (h *LEDServiceHandler) GetHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	startSec := int64(req.GetFields()["start_time"].GetNumberValue())
	endSec := int64(req.GetFields()["end_time"].GetNumberValue())

	log.Info().
		Int64("start", startSec).
		Int64("end", endSec).
		Msg("GetHistory called")

	start := time.Unix(startSec, 0)
	end := time.Now()
	if endSec != 0 {
		end = time.Unix(endSec, 0)
	}

	events, err := h.repo.GetEventsInRange(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get events")
		return nil, status.Error(codes.Internal, "failed to get events")
	}

	list := make([]any, len(events))
	for i, e := range events {
		list[i] = eventToMap(e)
	}

	stats := calculateStatistics(events)

	resp, err := structpb.NewStruct(map[string]any{
		"events":    list,
		"count":     len(events),
		"on_count":  stats.on,
		"off_count": stats.off,
		"per_led":   stats.perLED,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode events")
	}
	return resp, nil
}

// GetLatest returns the most recent event
func (h *LEDServiceHandler) GetLatest(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
	log.Info().Msg("GetLatest called")

	event, err := h.repo.GetLatestEvent(ctx)
	if err != nil {
		return nil, toStatus(err, "failed to get latest event")
	}

	resp, err := structpb.NewStruct(eventToMap(event))
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode event")
	}
	return resp, nil
}

// toStatus maps domain errors to gRPC codes; anything else is Internal with msg
func toStatus(err error, msg string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidLED),
		errors.Is(err, domain.ErrInvalidLEDCount),
		errors.Is(err, domain.ErrTooManyCycles),
		errors.Is(err, domain.ErrBadArgument),
		errors.Is(err, domain.ErrScriptCompile):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrScriptFailed):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrDriverClosed):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, msg)
}

// eventToMap converts domain model to a structpb-compatible map
func eventToMap(e *domain.LEDEvent) map[string]any {
	return map[string]any{
		"id":           e.ID,
		"led":          uint32(e.LED),
		"action":       e.Action(),
		"run_id":       e.RunID,
		"timestamp_ms": e.Timestamp.UnixMilli(),
	}
}

func summaryToProto(s domain.RunSummary) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(map[string]any{
		"run_id":      s.RunID,
		"source":      s.Source,
		"on_calls":    s.OnCalls,
		"off_calls":   s.OffCalls,
		"blinks":      s.Blinks(),
		"duration_ms": s.Duration.Milliseconds(),
	})
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode run summary")
	}
	return resp, nil
}

// statistics holds per-action and per-LED event counts
type statistics struct {
	on     int
	off    int
	perLED map[string]any
}

func calculateStatistics(events []*domain.LEDEvent) statistics {
	stats := statistics{perLED: make(map[string]any)}
	counts := make(map[domain.LEDID]int)

	for _, e := range events {
		if e.On {
			stats.on++
		} else {
			stats.off++
		}
		counts[e.LED]++
	}

	for led, n := range counts {
		stats.perLED[strconv.FormatUint(uint64(led), 10)] = n
	}
	return stats
}
