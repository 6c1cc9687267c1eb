package adapters

import (
	"context"

	"github.com/VoxDroid/statussaver/internal/telemetry"
)

// TelemetryImpl adapts telemetry.Recorder to the Telemetry interface.
type TelemetryImpl struct{ rec *telemetry.Recorder }

// NewTelemetry returns a Telemetry backed by rec.
func NewTelemetry(rec *telemetry.Recorder) *TelemetryImpl {
	return &TelemetryImpl{rec: rec}
}

// LogEvent records an analytics event.
func (a *TelemetryImpl) LogEvent(_ context.Context, name string, params map[string]string) error {
	_, err := a.rec.Record(name, params)
	return err
}

// NopTelemetry discards every event.
type NopTelemetry struct{}

// LogEvent implements Telemetry.
func (NopTelemetry) LogEvent(context.Context, string, map[string]string) error { return nil }
