package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	FeatureDisabled  Code = 100012

	// Sprint codes
	NotParticipating   Code = 300001
	NotStartedYet      Code = 300002
	BelowStartingCount Code = 300003
	AnomalousWPM       Code = 300004
	NotAllDeclared     Code = 300005
	ExclusiveArguments Code = 300006

	// Event codes
	NoActiveEvent  Code = 400001
	EventNotEnded  Code = 400002
	AlreadyStarted Code = 400003
)
