package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"salon-wellness-backend/config"
	"salon-wellness-backend/intake"
	"salon-wellness-backend/models"
	"salon-wellness-backend/store"

	"github.com/gin-gonic/gin"
)

func newIntakeRouter(st *store.Store) (*gin.Engine, *IntakeController) {
	salon := config.SalonConfig{
		Staff:       []string{"寺島", "スタッフA"},
		Menus:       []string{"森の深眠スパ60分", "森の深眠スパ90分"},
		DefaultMenu: "森の深眠スパ90分",
	}
	ic := NewIntakeController(st, salon.Settings(), true)
	ic.Now = testNow

	r := gin.New()
	r.POST("/api/intake", ic.StartIntake)
	r.GET("/api/intake/:id", ic.GetIntake)
	r.PUT("/api/intake/:id", ic.UpdateIntake)
	r.DELETE("/api/intake/:id", ic.DiscardIntake)
	r.POST("/api/intake/:id/next", ic.NextStep)
	r.POST("/api/intake/:id/back", ic.PreviousStep)
	r.POST("/api/intake/:id/submit", ic.SubmitIntake)
	return r, ic
}

type draftResponse struct {
	ID   string `json:"id"`
	Step string `json:"step"`
	Mode string `json:"mode"`
	Form struct {
		ClientID  string `json:"clientId"`
		StaffName string `json:"staffName"`
		Date      string `json:"date"`
		Menu      string `json:"menu"`
		HRVBefore string `json:"hrvBefore"`
	} `json:"form"`
}

func TestIntakeNewClientScenario(t *testing.T) {
	st := store.New(store.DemoSeed())
	r, _ := newIntakeRouter(st)

	w := doRequest(r, http.MethodPost, "/api/intake", `{"mode":"new","form":{
		"newClientName":"田中さん","newClientAgeLabel":"40代","newClientGender":"女性",
		"newClientCustomerNumber":"0004","hrvBefore":"30","hrvAfter":"42"}}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("start status = %d (%s)", w.Code, w.Body.String())
	}
	var draft draftResponse
	decode(t, w, &draft)
	if draft.Step != "basics" || draft.Mode != "new" {
		t.Fatalf("draft = %+v", draft)
	}
	if draft.Form.Date != "2025-03-04" || draft.Form.StaffName != "寺島" || draft.Form.Menu != "森の深眠スパ90分" {
		t.Errorf("defaults = %+v", draft.Form)
	}

	base := "/api/intake/" + draft.ID
	for _, want := range []string{"pre_check", "measurements"} {
		w := doRequest(r, http.MethodPost, base+"/next", "")
		decode(t, w, &draft)
		if w.Code != http.StatusOK || draft.Step != want {
			t.Fatalf("next: status=%d step=%s, want %s", w.Code, draft.Step, want)
		}
	}

	w = doRequest(r, http.MethodPost, base+"/submit", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("submit status = %d (%s)", w.Code, w.Body.String())
	}
	var submitted struct {
		Session models.Session `json:"session"`
	}
	decode(t, w, &submitted)
	if submitted.Session.VisitNumber != 1 || *submitted.Session.HRVAfter-*submitted.Session.HRVBefore != 12 {
		t.Errorf("session = %+v", submitted.Session)
	}

	clients := st.Clients()
	if clients[0].Name != "田中さん" || clients[0].VisitCount != 1 || clients[0].LastVisit != "2025-03-04" {
		t.Errorf("new client = %+v", clients[0])
	}
	if w := doRequest(r, http.MethodGet, base, ""); w.Code != http.StatusNotFound {
		t.Errorf("submitted draft still present: %d", w.Code)
	}
}

func TestIntakeEmptyMenuStaysAtBasics(t *testing.T) {
	st := store.New(store.DemoSeed())
	r, _ := newIntakeRouter(st)

	var draft draftResponse
	decode(t, doRequest(r, http.MethodPost, "/api/intake", `{"form":{"menu":""}}`), &draft)

	w := doRequest(r, http.MethodPost, "/api/intake/"+draft.ID+"/next", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("next status = %d, want 400", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["step"] != "basics" || body["error"] == "" {
		t.Errorf("body = %v", body)
	}

	decode(t, doRequest(r, http.MethodGet, "/api/intake/"+draft.ID, ""), &draft)
	if draft.Step != "basics" {
		t.Errorf("step = %s, want basics", draft.Step)
	}
	if len(st.Clients()) != 3 || len(st.Sessions()) != 4 {
		t.Error("store changed by a rejected step")
	}
}

func TestIntakeBackAndUpdate(t *testing.T) {
	r, _ := newIntakeRouter(store.New(store.DemoSeed()))

	var draft draftResponse
	decode(t, doRequest(r, http.MethodPost, "/api/intake", ""), &draft)
	if draft.Form.ClientID != "c-1" {
		t.Errorf("default client = %q, want c-1", draft.Form.ClientID)
	}
	base := "/api/intake/" + draft.ID

	doRequest(r, http.MethodPost, base+"/next", "")
	w := doRequest(r, http.MethodPut, base, `{"form":{"hrvBefore":"33"}}`)
	decode(t, w, &draft)
	if draft.Form.HRVBefore != "33" || draft.Form.Menu != "森の深眠スパ90分" {
		t.Errorf("update = %+v", draft.Form)
	}

	var back struct {
		Draft  draftResponse `json:"draft"`
		Exited bool          `json:"exited"`
	}
	decode(t, doRequest(r, http.MethodPost, base+"/back", ""), &back)
	if back.Exited || back.Draft.Step != "basics" || back.Draft.Form.HRVBefore != "33" {
		t.Errorf("back = %+v", back)
	}
	decode(t, doRequest(r, http.MethodPost, base+"/back", ""), &back)
	if !back.Exited || back.Draft.Step != "basics" {
		t.Errorf("back at basics = %+v, want exited", back)
	}

	if w := doRequest(r, http.MethodPut, base, `{"mode":"walk-in"}`); w.Code != http.StatusBadRequest {
		t.Errorf("unknown mode status = %d", w.Code)
	}
	if w := doRequest(r, http.MethodPut, base, `{"form":{"preLifestyleTags":["coffee"]}}`); w.Code != http.StatusBadRequest {
		t.Errorf("unknown tag status = %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, base+"/submit", ""); w.Code != http.StatusConflict {
		t.Errorf("submit at basics status = %d, want 409", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, base, ""); w.Code != http.StatusNoContent {
		t.Errorf("discard status = %d", w.Code)
	}
	if w := doRequest(r, http.MethodGet, base, ""); w.Code != http.StatusNotFound {
		t.Errorf("discarded draft status = %d, want 404", w.Code)
	}
}

func TestIntakeToggleTag(t *testing.T) {
	r, _ := newIntakeRouter(store.New(store.DemoSeed()))

	var draft struct {
		ID   string `json:"id"`
		Form struct {
			Tags []models.LifestyleTag `json:"preLifestyleTags"`
		} `json:"form"`
	}
	decode(t, doRequest(r, http.MethodPost, "/api/intake", ""), &draft)
	base := "/api/intake/" + draft.ID

	decode(t, doRequest(r, http.MethodPut, base, `{"toggleTag":"bath"}`), &draft)
	if len(draft.Form.Tags) != 2 || draft.Form.Tags[0] != models.TagSmartphone || draft.Form.Tags[1] != models.TagBath {
		t.Errorf("after adding bath: %v", draft.Form.Tags)
	}
	decode(t, doRequest(r, http.MethodPut, base, `{"toggleTag":"smartphone"}`), &draft)
	if len(draft.Form.Tags) != 1 || draft.Form.Tags[0] != models.TagBath {
		t.Errorf("after removing smartphone: %v", draft.Form.Tags)
	}
	if w := doRequest(r, http.MethodPut, base, `{"toggleTag":"coffee"}`); w.Code != http.StatusBadRequest {
		t.Errorf("unknown toggle status = %d, want 400", w.Code)
	}
}

type failingSessions struct {
	intake.StoreSubmitter
}

func (failingSessions) CreateSession(context.Context, models.Session) (models.Session, error) {
	return models.Session{}, errors.New("disk full")
}

func TestIntakeSubmitFailureKeepsDraft(t *testing.T) {
	st := store.New(store.DemoSeed())
	r, ic := newIntakeRouter(st)
	ic.Submitter = failingSessions{intake.StoreSubmitter{Store: st}}

	var draft draftResponse
	decode(t, doRequest(r, http.MethodPost, "/api/intake", ""), &draft)
	base := "/api/intake/" + draft.ID
	doRequest(r, http.MethodPost, base+"/next", "")
	doRequest(r, http.MethodPost, base+"/next", "")

	w := doRequest(r, http.MethodPost, base+"/submit", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("submit status = %d, want 500", w.Code)
	}
	var body struct {
		Error string        `json:"error"`
		Draft draftResponse `json:"draft"`
	}
	decode(t, w, &body)
	if body.Error != intake.ErrSubmitFailed.Error() || body.Draft.Step != "measurements" {
		t.Errorf("body = %+v", body)
	}
	if len(st.Sessions()) != 4 {
		t.Errorf("sessions = %d, want 4", len(st.Sessions()))
	}
	decode(t, doRequest(r, http.MethodGet, base, ""), &draft)
	if draft.Step != "measurements" {
		t.Errorf("draft step after failure = %s, want measurements", draft.Step)
	}
}
