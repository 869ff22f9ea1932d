package messages

const (
	BadStatusCodeMsg   = "API returned status code %d on URL %s"
	FailedToParseMsg   = "failed to parse API response"
	FiltersNotNil      = "filters can't be nil"
	InvalidTierMsg     = "invalid tier %q"
	PlayerNotFoundMsg  = "player %s not found"
	RequestFailedMsg   = "API request failed on URL %s"
	UnknownTaskMsg     = "unknown task"
	TaskAttemptFailed  = "task %s failed on attempt %d/%d: %v"
	TaskRetriesExhaust = "task %s failed after %d attempts: %w"
)
