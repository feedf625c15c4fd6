// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     mockapi
// Description: In-memory record store and synthetic data generator
// Author:      Mike Stoffels
// Created:     2026-09-17
// License:     MIT
// ============================================================================

package mockapi

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/msto63/wachturm/internal/monitor"
)

// Record is the JSON shape served by the mock backend
type Record struct {
	ID          string `json:"id"`
	Time        string `json:"time"`
	Severity    string `json:"severity"`
	Type        string `json:"type"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Port        string `json:"port"`
	Protocol    string `json:"protocol"`
}

// NodeReading is the JSON shape of the node endpoint
type NodeReading struct {
	Timestamp   int64   `json:"timestamp"`
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	DiskUsage   float64 `json:"disk_usage"`
}

// Store retains the newest records, oldest first
type Store struct {
	records *monitor.Buffer[Record]
}

// NewStore creates a store holding at most retention records
func NewStore(retention int) *Store {
	return &Store{records: monitor.NewBuffer[Record](retention)}
}

// Add appends a record, assigning an ID if it has none
func (s *Store) Add(r Record) Record {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.records.Push(r)
	return r
}

// Query returns all records accepted by match, oldest first
func (s *Store) Query(match func(Record) bool) []Record {
	all, _ := s.records.Snapshot()
	if match == nil {
		return all
	}
	out := make([]Record, 0, len(all))
	for _, r := range all {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of stored records
func (s *Store) Len() int {
	return s.records.Len()
}

var (
	genSeverities = []string{"LOW", "LOW", "LOW", "MEDIUM", "MEDIUM", "HIGH"}
	genTypes      = []string{"portscan", "bruteforce", "dos", "malware", "dns-tunnel", "policy-violation"}
	genSources    = []string{"10.0.0.5", "10.0.0.17", "192.168.1.23", "172.16.4.2", "203.0.113.9"}
	genTargets    = []string{"10.0.0.1", "10.0.0.2", "192.168.1.1"}
	genPorts      = []string{"22", "53", "80", "443", "3389", "8080"}
)

// Generator produces plausible intrusion records and node readings
type Generator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	now  func() time.Time
	node NodeReading
}

// NewGenerator creates a generator; equal seeds give equal sequences
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		now:  time.Now,
		node: NodeReading{CPUUsage: 20, MemoryUsage: 45, DiskUsage: 60},
	}
}

// Record returns a new random record
func (g *Generator) Record() Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	port := genPorts[g.rng.Intn(len(genPorts))]
	protocol := "TCP"
	if port == "53" {
		protocol = "UDP"
	}
	return Record{
		Time:        g.now().Format("2006-01-02 15:04:05"),
		Severity:    genSeverities[g.rng.Intn(len(genSeverities))],
		Type:        genTypes[g.rng.Intn(len(genTypes))],
		Source:      genSources[g.rng.Intn(len(genSources))],
		Destination: genTargets[g.rng.Intn(len(genTargets))],
		Port:        port,
		Protocol:    protocol,
	}
}

// Node returns the next node reading as a bounded random walk
func (g *Generator) Node() NodeReading {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.node.Timestamp = g.now().Unix()
	g.node.CPUUsage = walk(g.rng, g.node.CPUUsage, 8)
	g.node.MemoryUsage = walk(g.rng, g.node.MemoryUsage, 3)
	g.node.DiskUsage = walk(g.rng, g.node.DiskUsage, 0.5)
	return g.node
}

func walk(rng *rand.Rand, v, step float64) float64 {
	v += (rng.Float64()*2 - 1) * step
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
