package commands

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable"
	ErrPromptRequired           = "a prompt is required"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No history recorded yet."
	MsgNoLocalModels            = "No local models installed. Try: saurus models pull llava"
	MsgOnboardCancelled         = "Onboarding cancelled."
)

// TimestampFormat is used when printing absolute times.
const TimestampFormat = "2006-01-02 15:04"
