package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"salon-wellness-backend/intake"
	"salon-wellness-backend/models"
	"salon-wellness-backend/monitoring"
	"salon-wellness-backend/store"
	"salon-wellness-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IntakeInput changes a draft. Form fields that are present replace the
// draft's values; absent ones are kept. ToggleTag then adds or removes one
// lifestyle tag.
type IntakeInput struct {
	Mode      intake.ClientMode   `json:"mode"`
	Form      json.RawMessage     `json:"form"`
	ToggleTag models.LifestyleTag `json:"toggleTag"`
}

type DraftView struct {
	ID   string            `json:"id"`
	Step intake.Step       `json:"step"`
	Mode intake.ClientMode `json:"mode"`
	Form intake.Form       `json:"form"`
}

// IntakeController keeps in-progress intake drafts in memory, one workflow
// per draft id.
type IntakeController struct {
	Store          *store.Store
	Salon          models.SalonSettings
	StaffSelection bool
	Now            func() time.Time
	// Submitter saves submitted drafts; nil means the store.
	Submitter intake.Submitter

	mu     sync.Mutex
	drafts map[string]*intake.Workflow
}

func NewIntakeController(st *store.Store, salon models.SalonSettings, staffSelection bool) *IntakeController {
	return &IntakeController{
		Store:          st,
		Salon:          salon,
		StaffSelection: staffSelection,
		Now:            time.Now,
		drafts:         make(map[string]*intake.Workflow),
	}
}

// StartIntake opens a draft at the first step with the usual defaults.
func (ic *IntakeController) StartIntake(c *gin.Context) {
	defaults := intake.Defaults{
		Today: utils.Today(ic.Now()),
		Menu:  ic.Salon.DefaultMenu,
	}
	if clients := ic.Store.Clients(); len(clients) > 0 {
		defaults.ClientID = clients[0].ID
	}
	if len(ic.Salon.Staff) > 0 {
		defaults.Staff = ic.Salon.Staff[0]
	}

	var submitter intake.Submitter = intake.StoreSubmitter{Store: ic.Store}
	if ic.Submitter != nil {
		submitter = ic.Submitter
	}
	w := intake.New(submitter, intake.NewForm(defaults),
		intake.WithStaffSelection(ic.StaffSelection))

	raw, err := c.GetRawData()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, errInvalidBody.Error())
		return
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		var input IntakeInput
		if err := json.Unmarshal(raw, &input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, errInvalidBody.Error())
			return
		}
		if err := applyInput(w, input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	id := uuid.NewString()
	ic.mu.Lock()
	ic.drafts[id] = w
	ic.mu.Unlock()

	monitoring.ObserveIntake("start", "ok")
	c.JSON(http.StatusCreated, view(id, w))
}

func (ic *IntakeController) GetIntake(c *gin.Context) {
	ic.withDraft(c, func(id string, w *intake.Workflow) {
		c.JSON(http.StatusOK, view(id, w))
	})
}

// UpdateIntake edits the draft's mode or form values at any step.
func (ic *IntakeController) UpdateIntake(c *gin.Context) {
	ic.withDraft(c, func(id string, w *intake.Workflow) {
		var input IntakeInput
		if err := decodeObject(c, &input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if err := applyInput(w, input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, view(id, w))
	})
}

func (ic *IntakeController) NextStep(c *gin.Context) {
	ic.withDraft(c, func(id string, w *intake.Workflow) {
		err := w.Next()
		var verr *intake.ValidationError
		switch {
		case errors.As(err, &verr):
			monitoring.ObserveIntake("next", "invalid")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Message, "step": verr.Step})
		case errors.Is(err, intake.ErrNotReady):
			monitoring.ObserveIntake("next", "rejected")
			utils.RespondWithError(c, http.StatusConflict, err.Error())
		default:
			monitoring.ObserveIntake("next", "ok")
			c.JSON(http.StatusOK, view(id, w))
		}
	})
}

// PreviousStep goes back one step. At the first step the response carries
// exited=true and the draft is unchanged.
func (ic *IntakeController) PreviousStep(c *gin.Context) {
	ic.withDraft(c, func(id string, w *intake.Workflow) {
		exited, err := w.Back()
		if err != nil {
			monitoring.ObserveIntake("back", "rejected")
			utils.RespondWithError(c, http.StatusConflict, err.Error())
			return
		}
		monitoring.ObserveIntake("back", "ok")
		c.JSON(http.StatusOK, gin.H{"draft": view(id, w), "exited": exited})
	})
}

// SubmitIntake saves the session (and the new client first, in new-client
// mode). On failure the draft stays at the last step and can be retried.
func (ic *IntakeController) SubmitIntake(c *gin.Context) {
	ic.withDraft(c, func(id string, w *intake.Workflow) {
		session, err := w.Submit(c.Request.Context())
		switch {
		case errors.Is(err, intake.ErrNotReady):
			monitoring.ObserveIntake("submit", "rejected")
			utils.RespondWithError(c, http.StatusConflict, err.Error())
			return
		case errors.Is(err, intake.ErrSubmitFailed):
			monitoring.ObserveIntake("submit", "failed")
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": intake.ErrSubmitFailed.Error(),
				"draft": view(id, w),
			})
			return
		case err != nil:
			monitoring.ObserveIntake("submit", "failed")
			c.Error(err)
			utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
			return
		}

		delete(ic.drafts, id)
		monitoring.ObserveIntake("submit", "ok")
		c.JSON(http.StatusCreated, gin.H{"session": session, "draft": view(id, w)})
	})
}

// DiscardIntake abandons the draft. Nothing is saved.
func (ic *IntakeController) DiscardIntake(c *gin.Context) {
	ic.withDraft(c, func(id string, w *intake.Workflow) {
		if err := w.Discard(); err != nil {
			utils.RespondWithError(c, http.StatusConflict, err.Error())
			return
		}
		delete(ic.drafts, id)
		monitoring.ObserveIntake("discard", "ok")
		c.Status(http.StatusNoContent)
	})
}

// withDraft runs fn with the draft named by :id while holding the lock.
func (ic *IntakeController) withDraft(c *gin.Context, fn func(id string, w *intake.Workflow)) {
	id := c.Param("id")
	ic.mu.Lock()
	defer ic.mu.Unlock()

	w, ok := ic.drafts[id]
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Intake draft not found")
		return
	}
	fn(id, w)
}

func applyInput(w *intake.Workflow, input IntakeInput) error {
	mode := w.Mode
	switch input.Mode {
	case "":
	case intake.ModeExisting, intake.ModeNew:
		mode = input.Mode
	default:
		return fmt.Errorf("unknown client mode %q", input.Mode)
	}

	form := w.Form
	form.PreLifestyleTags = append([]models.LifestyleTag(nil), w.Form.PreLifestyleTags...)
	if len(input.Form) > 0 {
		if err := json.Unmarshal(input.Form, &form); err != nil {
			return errInvalidBody
		}
	}
	if input.ToggleTag != "" {
		form.ToggleLifestyleTag(input.ToggleTag)
	}
	for _, tag := range form.PreLifestyleTags {
		if !tag.Valid() {
			return fmt.Errorf("unknown lifestyle tag %q", tag)
		}
	}
	w.Mode = mode
	w.Form = form
	return nil
}

func view(id string, w *intake.Workflow) DraftView {
	return DraftView{ID: id, Step: w.Step(), Mode: w.Mode, Form: w.Form}
}
