package ports

import "time"

type MetricsPort interface {
	RecordRequest(method, path string, status int, elapsed time.Duration)
	SetAvailableBikes(count int)
	RecordExternalCall(name string, elapsed time.Duration, failed bool)
}
