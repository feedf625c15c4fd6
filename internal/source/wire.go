package source

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/msto63/wachturm/internal/monitor"
)

// flexString accepts a JSON string or number
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// wireRecord is the JSON shape of one intrusion log entry
type wireRecord struct {
	Time        flexString `json:"time"`
	Severity    string     `json:"severity"`
	Type        string     `json:"type"`
	Source      string     `json:"source"`
	Destination string     `json:"destination"`
	Port        flexString `json:"port"`
	Protocol    string     `json:"protocol"`
}

func (w wireRecord) toRecord() monitor.LogRecord {
	return monitor.LogRecord{
		Time:        string(w.Time),
		Severity:    monitor.ParseSeverity(w.Severity),
		Type:        w.Type,
		Source:      w.Source,
		Destination: w.Destination,
		Port:        string(w.Port),
		Protocol:    w.Protocol,
	}
}

// wireNode is the JSON shape of the node endpoint; timestamp is unix seconds
type wireNode struct {
	Timestamp   json.Number `json:"timestamp"`
	CPUUsage    float64     `json:"cpu_usage"`
	MemoryUsage float64     `json:"memory_usage"`
	DiskUsage   float64     `json:"disk_usage"`
}

func (w wireNode) toSample() monitor.NodeSample {
	var ts time.Time
	if secs, err := strconv.ParseFloat(w.Timestamp.String(), 64); err == nil {
		sec := int64(secs)
		ts = time.Unix(sec, int64((secs-float64(sec))*float64(time.Second)))
	}
	return monitor.NodeSample{
		Timestamp:   ts,
		CPUUsage:    w.CPUUsage,
		MemoryUsage: w.MemoryUsage,
		DiskUsage:   w.DiskUsage,
	}
}
