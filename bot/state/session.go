package state

// Stage identifies which field the active form is waiting for.
type Stage string

const (
	StageNone  Stage = ""
	StageName  Stage = "awaiting_name"
	StageAge   Stage = "awaiting_age"
	StageGrade Stage = "awaiting_grade"
	StageBreed Stage = "awaiting_breed"
)

// FormKind names a guided input sequence. A user runs at most one form at a
// time regardless of kind.
type FormKind string

const (
	FormNone    FormKind = ""
	FormStudent FormKind = "student"
	FormBreed   FormKind = "breed"
)

// Field keys used in Session.Partial.
const (
	FieldName  = "name"
	FieldAge   = "age"
	FieldGrade = "grade"
	FieldBreed = "breed"
)

// formStages fixes the stage order per form. There is deliberately no way to
// enter a form anywhere but at its first stage.
var formStages = map[FormKind][]Stage{
	FormStudent: {StageName, StageAge, StageGrade},
	FormBreed:   {StageBreed},
}

// Session is one user's in-progress form. Partial only ever holds keys for
// stages the user has already passed.
type Session struct {
	UserID  int64             `json:"user_id"`
	Form    FormKind          `json:"form"`
	Stage   Stage             `json:"stage"`
	Partial map[string]string `json:"partial,omitempty"`
}

// Active reports whether a form is in progress.
func (s Session) Active() bool {
	return s.Stage != StageNone
}

// FirstStage returns the entry stage for a form kind.
func FirstStage(form FormKind) (Stage, bool) {
	stages, ok := formStages[form]
	if !ok || len(stages) == 0 {
		return StageNone, false
	}
	return stages[0], true
}

// nextStage returns the stage after cur within the form, or StageNone when
// cur is the terminal stage.
func nextStage(form FormKind, cur Stage) (Stage, bool) {
	stages, ok := formStages[form]
	if !ok {
		return StageNone, false
	}
	for i, st := range stages {
		if st == cur {
			if i+1 < len(stages) {
				return stages[i+1], true
			}
			return StageNone, true
		}
	}
	return StageNone, false
}
