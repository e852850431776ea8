package sql

import (
	"time"

	"github.com/picklr-io/azmgmt/pkg/sql/inner"
)

// DatabaseMetric is a usage series reported for the databases of an elastic pool.
type DatabaseMetric struct {
	inner inner.MetricInner
}

// Name returns the metric name, such as dtu_consumption_percent.
func (m *DatabaseMetric) Name() string {
	if m.inner.Name == nil {
		return ""
	}
	return deref(m.inner.Name.Value)
}

func (m *DatabaseMetric) StartTime() time.Time { return derefTime(m.inner.StartTime) }

func (m *DatabaseMetric) EndTime() time.Time { return derefTime(m.inner.EndTime) }

// TimeGrain returns the ISO 8601 sample interval.
func (m *DatabaseMetric) TimeGrain() string { return deref(m.inner.TimeGrain) }

func (m *DatabaseMetric) Unit() inner.UnitType { return deref(m.inner.Unit) }

// Values returns the samples in the order reported.
func (m *DatabaseMetric) Values() []inner.MetricValue {
	out := make([]inner.MetricValue, 0, len(m.inner.MetricValues))
	for _, v := range m.inner.MetricValues {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func (m *DatabaseMetric) Inner() inner.MetricInner { return m.inner }

// DatabaseMetricDefinition describes a metric an elastic pool can report.
type DatabaseMetricDefinition struct {
	inner inner.MetricDefinitionInner
}

func (d *DatabaseMetricDefinition) Name() string {
	if d.inner.Name == nil {
		return ""
	}
	return deref(d.inner.Name.Value)
}

func (d *DatabaseMetricDefinition) PrimaryAggregationType() inner.PrimaryAggregationType {
	return deref(d.inner.PrimaryAggregationType)
}

func (d *DatabaseMetricDefinition) ResourceURI() string { return deref(d.inner.ResourceURI) }

func (d *DatabaseMetricDefinition) Unit() inner.UnitDefinitionType { return deref(d.inner.Unit) }

// Availabilities returns the retention and grain pairs the metric is kept at.
func (d *DatabaseMetricDefinition) Availabilities() []inner.MetricAvailability {
	out := make([]inner.MetricAvailability, 0, len(d.inner.MetricAvailabilities))
	for _, a := range d.inner.MetricAvailabilities {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

func (d *DatabaseMetricDefinition) Inner() inner.MetricDefinitionInner { return d.inner }
