package server

import (
	"sync"

	"github.com/mulewatch/forensics/internal/domain"
)

// ProgressFrame is one stage/percent tick emitted by a pipeline run, the shape streamed
// over the progress websocket.
type ProgressFrame struct {
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
}

// batchRecord holds everything known about one submitted batch: the progress frames
// recorded as the orchestrator ran, and the finished report once available.
type batchRecord struct {
	mu     sync.Mutex
	frames []ProgressFrame
	report *domain.Report
}

func (b *batchRecord) appendFrame(f ProgressFrame) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames = append(b.frames, f)
}

func (b *batchRecord) snapshot() ([]ProgressFrame, *domain.Report) {
	b.mu.Lock()
	defer b.mu.Unlock()
	frames := make([]ProgressFrame, len(b.frames))
	copy(frames, b.frames)
	return frames, b.report
}

func (b *batchRecord) setReport(r domain.Report) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.report = &r
}

// batchRegistry tracks in-flight and completed batches by id so the progress websocket
// endpoint can replay frames for a batch submitted via POST /v1/batches.
type batchRegistry struct {
	mu      sync.Mutex
	batches map[string]*batchRecord
}

func newBatchRegistry() *batchRegistry {
	return &batchRegistry{batches: make(map[string]*batchRecord)}
}

func (r *batchRegistry) create(id string) *batchRecord {
	rec := &batchRecord{}
	r.mu.Lock()
	r.batches[id] = rec
	r.mu.Unlock()
	return rec
}

func (r *batchRegistry) get(id string) (*batchRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.batches[id]
	return rec, ok
}
