package telemetry

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/fond-planning/boand/internal/policy"
	"github.com/fond-planning/boand/internal/search"
)

// InfluxConfig names the connection the way the caller configures it
// (CLI flags or internal/config), never hardcoded: the teacher's
// internal/o11y.Record embedded its URL, token, org, and bucket directly
// in source, which this package deliberately does not repeat.
type InfluxConfig struct {
	URL         string
	Token       string
	Org         string
	Bucket      string
	Measurement string
}

// InfluxSink implements search.Emitter, writing one point per admitted
// policy's stats record. Grounded on the teacher's internal/o11y.Record
// (influxdb2.NewClient / WriteAPIBlocking / write.NewPoint), adapted to
// record planner admissions instead of LLM call metrics and to take its
// connection parameters as arguments rather than constants.
type InfluxSink struct {
	client      influxdb2.Client
	writeAPI    api.WriteAPIBlocking
	measurement string
}

func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	measurement := cfg.Measurement
	if measurement == "" {
		measurement = "boand_admission"
	}
	return &InfluxSink{
		client:      client,
		writeAPI:    client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		measurement: measurement,
	}
}

// EmitPolicy is a no-op: the per-state strategy text belongs in the
// result files, not a time-series point.
func (s *InfluxSink) EmitPolicy(index int, p *policy.Policy) error {
	_ = index
	_ = p
	return nil
}

// EmitStats writes one point per stats record. The terminal record
// (Best == -1) carries no admission to record and is skipped.
func (s *InfluxSink) EmitStats(st search.Stats) error {
	if st.Best < 0 {
		return nil
	}
	point := write.NewPoint(s.measurement, nil, map[string]interface{}{
		"best":            st.Best,
		"worst":           st.Worst,
		"size":            st.Size,
		"elapsed_seconds": st.Elapsed.Seconds(),
		"iterations":      st.Iterations,
		"expansions":      st.Expansions,
		"generations":     st.Generations,
		"max_open":        st.MaxOpen,
	}, time.Now())
	return s.writeAPI.WritePoint(context.Background(), point)
}

func (s *InfluxSink) Close() {
	s.client.Close()
}

// MultiEmitter fans EmitPolicy/EmitStats out to every wrapped emitter,
// stopping at the first error. Used to attach the InfluxSink alongside
// the FileEmitter without either one knowing about the other.
type MultiEmitter []search.Emitter

func (m MultiEmitter) EmitPolicy(index int, p *policy.Policy) error {
	for _, e := range m {
		if err := e.EmitPolicy(index, p); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiEmitter) EmitStats(s search.Stats) error {
	for _, e := range m {
		if err := e.EmitStats(s); err != nil {
			return err
		}
	}
	return nil
}
