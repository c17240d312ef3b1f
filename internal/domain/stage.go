package domain

// Stage is the status of a tracked application
type Stage string

const (
	StageSaved     Stage = "SAVED"
	StageApplied   Stage = "APPLIED"
	StageOA        Stage = "OA"
	StageInterview Stage = "INTERVIEW"
	StageOffer     Stage = "OFFER"
	StageRejected  Stage = "REJECTED"
)

// Stages lists every stage in board order.
var Stages = []Stage{StageSaved, StageApplied, StageOA, StageInterview, StageOffer, StageRejected}

func (s Stage) Valid() bool {
	for _, v := range Stages {
		if v == s {
			return true
		}
	}
	return false
}

// JobLevel is the seniority tier of a marketplace posting
type JobLevel string

const (
	LevelJunior JobLevel = "JUNIOR"
	LevelMid    JobLevel = "MID"
	LevelSenior JobLevel = "SENIOR"
)

var JobLevels = []JobLevel{LevelJunior, LevelMid, LevelSenior}

func (l JobLevel) Valid() bool {
	for _, v := range JobLevels {
		if v == l {
			return true
		}
	}
	return false
}

type JobStatus string

const (
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
)
