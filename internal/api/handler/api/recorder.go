// internal/api/handler/api/recorder.go
package api

import "time"

// Recorder receives the business metrics the handlers emit. *metrics.Registry
// satisfies it.
type Recorder interface {
	RecordTrade(op string)
	SetAccounts(n int)
	RecordDashboard(timeframe string, d time.Duration)
	RecordSentiment(kind, label string, d time.Duration)
	RecordSnapshot(op string, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordTrade(string) {}
func (nopRecorder) SetAccounts(int) {}
func (nopRecorder) RecordDashboard(string, time.Duration) {}
func (nopRecorder) RecordSentiment(string, string, time.Duration) {}
func (nopRecorder) RecordSnapshot(string, error) {}

func orNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
