package domain

// Outcome is the result of a box-office operation. Infrastructure failures are
// reported separately as Go errors; an Outcome only describes domain results.
type Outcome string

const (
	Success         Outcome = "success"
	InvalidArgument Outcome = "invalid_argument"
	NotFound        Outcome = "not_found"
	AlreadyExists   Outcome = "already_exists"
	Full            Outcome = "full"
)

var outcomeCodes = map[Outcome]int{
	InvalidArgument: -1,
	Success:         0,
	NotFound:        1,
	AlreadyExists:   2,
	Full:            5,
}

var outcomeMessages = map[Outcome]string{
	Success:         "Success",
	InvalidArgument: "Invalid parameter(s)",
	NotFound:        "Record not found",
	AlreadyExists:   "Duplicate record",
	Full:            "Session is full",
}

// Code returns the numeric return code used by the box office since its first
// release. Unknown outcomes map to InvalidArgument's code.
func (o Outcome) Code() int {
	if code, ok := outcomeCodes[o]; ok {
		return code
	}
	return outcomeCodes[InvalidArgument]
}

// Message is a human readable description of the outcome.
func (o Outcome) Message() string {
	if msg, ok := outcomeMessages[o]; ok {
		return msg
	}
	return "Unknown error"
}

func (o Outcome) Valid() bool {
	_, ok := outcomeCodes[o]
	return ok
}

func (o Outcome) OK() bool {
	return o == Success
}
