package ui

// SyncMonitor is an interface for live sync progress surfaces
type SyncMonitor interface {
	StartJurisdiction(id, title string, totalSets int)
	StartSet(id, title string)
	CompleteSet(id string, usedFallback bool)
	SkipSet(id string)
	FailSet(id string, err error)
	RecordFallback(primary, fallback string)
	LogInfo(format string, args ...interface{})
	LogSuccess(format string, args ...interface{})
	LogWarning(format string, args ...interface{})
	LogError(format string, args ...interface{})
	IsPaused() bool
}
