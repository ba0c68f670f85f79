// Package intake implements the three step session intake: basics and client
// identification, the pre-session checklist, then measurements and
// post-session feelings.
package intake

import (
	"context"
	"errors"
	"fmt"

	"salon-wellness-backend/models"
	"salon-wellness-backend/utils"
)

type Step int

const (
	StepBasics Step = iota + 1
	StepPreCheck
	StepMeasurements
	StepSubmitted
	StepDiscarded
)

func (s Step) String() string {
	switch s {
	case StepBasics:
		return "basics"
	case StepPreCheck:
		return "pre_check"
	case StepMeasurements:
		return "measurements"
	case StepSubmitted:
		return "submitted"
	case StepDiscarded:
		return "discarded"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s Step) Terminal() bool {
	return s == StepSubmitted || s == StepDiscarded
}

var (
	// ErrNotReady is returned when an action does not apply to the current step.
	ErrNotReady = errors.New("action not available at this step")
	// ErrSubmitFailed wraps any failure while saving the client or session.
	ErrSubmitFailed = errors.New("failed to save the session")
)

// ValidationError blocks a forward transition. The workflow stays put.
type ValidationError struct {
	Step    Step
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Submitter saves what the workflow collected.
type Submitter interface {
	CreateClient(ctx context.Context, in models.NewClientInput) (models.Client, error)
	CreateSession(ctx context.Context, s models.Session) (models.Session, error)
	Sessions(ctx context.Context) ([]models.Session, error)
}

type Workflow struct {
	Mode ClientMode
	Form Form

	step           Step
	staffSelection bool
	submitter      Submitter
	result         *models.Session
}

type Option func(*Workflow)

// WithStaffSelection makes the staff name required at the first step.
func WithStaffSelection(enabled bool) Option {
	return func(w *Workflow) { w.staffSelection = enabled }
}

func New(submitter Submitter, form Form, opts ...Option) *Workflow {
	w := &Workflow{
		Mode:           ModeExisting,
		Form:           form,
		step:           StepBasics,
		staffSelection: true,
		submitter:      submitter,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) Step() Step {
	return w.step
}

// Result is the stored session once submitted.
func (w *Workflow) Result() (models.Session, bool) {
	if w.result == nil {
		return models.Session{}, false
	}
	return *w.result, true
}

// Next validates the current step and moves forward. At the last step use
// Submit instead.
func (w *Workflow) Next() error {
	switch w.step {
	case StepBasics:
		if err := w.validateBasics(); err != nil {
			return err
		}
		w.step = StepPreCheck
	case StepPreCheck:
		if w.Form.PreSleepQualityWeek == "" {
			return &ValidationError{Step: w.step, Message: "Please select this week's sleep quality"}
		}
		w.step = StepMeasurements
	default:
		return ErrNotReady
	}
	return nil
}

func (w *Workflow) validateBasics() error {
	if w.Form.Menu == "" {
		return &ValidationError{Step: StepBasics, Message: "Please select a menu"}
	}
	if w.staffSelection && w.Form.StaffName == "" {
		return &ValidationError{Step: StepBasics, Message: "Please select the staff member"}
	}
	if w.Mode == ModeNew {
		missing := utils.MissingFields(
			utils.Field("name", w.Form.NewClientName),
			utils.Field("ageLabel", w.Form.NewClientAgeLabel),
			utils.Field("gender", w.Form.NewClientGender),
			utils.Field("firstVisitDate", w.Form.NewClientFirstVisitDate),
			utils.Field("customerNumber", w.Form.NewClientCustomerNumber),
		)
		if len(missing) > 0 {
			return &ValidationError{Step: StepBasics, Message: "New client needs name, age, gender, first visit date and customer number"}
		}
		return nil
	}
	if w.Form.ClientID == "" {
		return &ValidationError{Step: StepBasics, Message: "Please select a client"}
	}
	return nil
}

// Back moves one step back without validation. At the first step it reports
// exit=true: the caller leaves the workflow and the state is unchanged.
func (w *Workflow) Back() (exit bool, err error) {
	switch w.step {
	case StepBasics:
		return true, nil
	case StepPreCheck:
		w.step = StepBasics
	case StepMeasurements:
		w.step = StepPreCheck
	default:
		return false, ErrNotReady
	}
	return false, nil
}

// Discard abandons the workflow from any non-terminal step.
func (w *Workflow) Discard() error {
	if w.step.Terminal() {
		return ErrNotReady
	}
	w.step = StepDiscarded
	return nil
}

// Submit saves the session. In new-client mode the client is created first.
// On any failure the workflow stays at the last step; a client created before
// the failure is kept.
func (w *Workflow) Submit(ctx context.Context) (models.Session, error) {
	if w.step != StepMeasurements {
		return models.Session{}, ErrNotReady
	}

	clientID := w.Form.ClientID
	if w.Mode == ModeNew {
		created, err := w.submitter.CreateClient(ctx, models.NewClientInput{
			Name:           w.Form.NewClientName,
			AgeLabel:       w.Form.NewClientAgeLabel,
			Gender:         w.Form.NewClientGender,
			FirstVisitDate: w.Form.NewClientFirstVisitDate,
			CustomerNumber: w.Form.NewClientCustomerNumber,
		})
		if err != nil {
			return models.Session{}, fmt.Errorf("%w: create client: %v", ErrSubmitFailed, err)
		}
		clientID = created.ID
	}
	if clientID == "" {
		return models.Session{}, fmt.Errorf("%w: client could not be resolved", ErrSubmitFailed)
	}

	existing, err := w.submitter.Sessions(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: load sessions: %v", ErrSubmitFailed, err)
	}

	session := w.BuildSession(clientID, VisitNumber(existing, clientID))
	stored, err := w.submitter.CreateSession(ctx, session)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: create session: %v", ErrSubmitFailed, err)
	}

	w.result = &stored
	w.step = StepSubmitted
	return stored, nil
}

// VisitNumber is the ordinal the next session of clientID would get.
func VisitNumber(sessions []models.Session, clientID string) int {
	n := 0
	for _, s := range sessions {
		if s.ClientID == clientID {
			n++
		}
	}
	return n + 1
}

// BuildSession converts the form into a session for clientID. The id and,
// when empty, the date are left for the store to fill in.
func (w *Workflow) BuildSession(clientID string, visitNumber int) models.Session {
	f := w.Form
	return models.Session{
		ClientID:    clientID,
		Date:        f.Date,
		Menu:        f.Menu,
		VisitNumber: visitNumber,
		StaffName:   f.StaffName,

		HRVBefore: ParseMeasurement(f.HRVBefore),
		HRVAfter:  ParseMeasurement(f.HRVAfter),
		HRBefore:  ParseMeasurement(f.HRVBeforeBPM),
		HRAfter:   ParseMeasurement(f.HRVAfterBPM),
		HYPBefore: ParseMeasurement(f.HYPBefore),

		Pre: models.PreSessionCheck{
			Fatigue:             ParseRating(FieldFatigue, f.PreFatigue),
			Stiffness:           ParseRating(FieldStiffness, f.PreStiffness),
			HeadHeaviness:       ParseRating(FieldHeadHeaviness, f.PreHeadHeaviness),
			Stress:              ParseRating(FieldStress, f.PreStress),
			SleepQualityWeek:    ParseRating(FieldSleepQualityWeek, f.PreSleepQualityWeek),
			SleepHoursLastNight: f.PreSleepHoursLastNight,
			UsualBedtime:        f.PreBedtime,
			UsualWakeTime:       f.PreWakeTime,
			LifestyleTags:       append([]models.LifestyleTag{}, f.PreLifestyleTags...),
			LifestyleMemo:       f.PreLifestyleMemo,
			MainConcern:         f.MainConcern,
		},
		Post: models.PostSessionFeeling{
			HeadLightness: ParseRating(FieldHeadLightness, f.PostHeadLightness),
			BodyRelax:     ParseRating(FieldBodyRelax, f.PostBodyRelax),
			MentalRelax:   ParseRating(FieldMentalRelax, f.PostMentalRelax),
			Satisfaction:  ParseRating(FieldSatisfaction, f.PostSatisfaction),
			Comment:       f.PostComment,
			ActionNote:    f.PostActionNote,
		},
	}
}
