package recorder

import "context"

// NoopRecorder is used when SQLite is not configured. Nothing is stored.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ context.Context, _ RunRecord) error { return nil }
func (n *NoopRecorder) ListRuns(_ context.Context, _ int) ([]RunRecord, error) {
	return []RunRecord{}, nil
}
func (n *NoopRecorder) GetRun(_ context.Context, _ string) (*RunRecord, error) {
	return nil, ErrNotFound
}
func (n *NoopRecorder) Close() error { return nil }
