package soak

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Games      int
	PieceLimit int
	Seed       uint64
	Bot        string
	Kicks      string
	Randomizer string

	// Results
	Results       []Result
	TotalTime     time.Duration
	TotalFrames   int
	TotalPieces   int
	GamesOver     int
	BestScore     int
	MeanScore     float64
	TotalLines    int
	ApplyTime     LatencyStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type LatencyStats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P50     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *LatencyStats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P50 = percentile(sorted, 50)
	s.P99 = percentile(sorted, 99)
}

func percentile(sorted []time.Duration, p int) time.Duration {
	return sorted[(len(sorted)-1)*p/100]
}

// Add folds a session result into the totals.
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
	r.TotalFrames += res.Frames
	r.TotalPieces += res.Pieces
	r.TotalLines += res.Lines
	if res.GameOver {
		r.GamesOver++
	}
	if res.Score > r.BestScore {
		r.BestScore = res.Score
	}
	r.ApplyTime.Samples = append(r.ApplyTime.Samples, res.Latency...)
}

// Finalize computes the derived statistics once every result is added.
func (r *Report) Finalize() {
	total := 0
	for _, res := range r.Results {
		total += res.Score
	}
	if len(r.Results) > 0 {
		r.MeanScore = float64(total) / float64(len(r.Results))
	}
	r.ApplyTime.Finalize()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Soak Report

## Configuration
- **Games:** {{.Games}}
- **Piece Limit:** {{if .PieceLimit}}{{.PieceLimit}}{{else}}none{{end}}
- **Seed:** {{.Seed}}
- **Bot:** {{.Bot}}
- **Kicks:** {{.Kicks}}
- **Randomizer:** {{.Randomizer}}

## Outcomes
- **Total Time:** {{.TotalTime}}
- **Simulated Frames:** {{.TotalFrames}}
- **Pieces Locked:** {{.TotalPieces}}
- **Lines Cleared:** {{.TotalLines}}
- **Games Over:** {{.GamesOver}} / {{len .Results}}
- **Best Score:** {{.BestScore}}
- **Mean Score:** {{printf "%.1f" .MeanScore}}

| Game | Score | Level | Lines | Pieces | Frames | Over |
|---:|---:|---:|---:|---:|---:|:---:|
{{- range $i, $r := .Results}}
| {{inc $i}} | {{$r.Score}} | {{$r.Level}} | {{$r.Lines}} | {{$r.Pieces}} | {{$r.Frames}} | {{if $r.GameOver}}yes{{else}}no{{end}} |
{{- end}}

## Apply Latency ({{len .ApplyTime.Samples}} samples)
- **Avg:** {{.ApplyTime.Avg}}
- **Min:** {{.ApplyTime.Min}}
- **Max:** {{.ApplyTime.Max}}
- **P50:** {{.ApplyTime.P50}}
- **P99:** {{.ApplyTime.P99}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause:       {{.MemStatsEnd.PauseTotalNs | ns}}
`

	fm := template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
