package http

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hisab/internal/app"
	"hisab/internal/core"
	"hisab/internal/log"
	"hisab/internal/storage"
)

const (
	appTitle = "সংসারের হিসাব"
	branding = "এই অ্যাপটি সুবালা কম্পিউটার এন্ড কম্পোজ প্রতিষ্ঠান দ্বারা নির্মিত"
)

type navItem struct {
	Tab    app.Tab
	Label  string
	Active bool
}

// formState pre-fills the entry form of the active tab. Editing is set when
// an existing record was loaded through ?edit=<id>.
type formState struct {
	Editing bool
	Action  string

	Income  core.Income
	Expense core.Expense
	Bill    core.Bill
	Loan    core.Loan
	Market  core.MarketItem
}

type formOptions struct {
	IncomeCategories  []string
	ExpenseCategories []string
	BillCategories    []core.BillCategory
	Units             []core.Unit
	LoanTypes         []core.LoanType
	Statuses          []core.Status
}

type confirmView struct {
	Prompt  string
	Subject string
	Token   string
}

type pageData struct {
	Title    string
	Branding string
	Nav      []navItem
	View     app.View
	Form     formState
	Options  formOptions
	Confirm  *confirmView
}

var options = formOptions{
	IncomeCategories:  core.IncomeCategories,
	ExpenseCategories: core.ExpenseCategories,
	BillCategories:    core.BillCategories,
	Units:             core.Units,
	LoanTypes:         core.LoanTypes,
	Statuses:          core.Statuses,
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	}).Write(w)
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	switch {
	case s.ready == nil:
		checks["store"] = "ok"
	case ctx.Err() != nil:
		checks["store"] = "timeout"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	default:
		if err := s.ready(ctx); err != nil {
			checks["store"] = "failed: " + err.Error()
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["store"] = "ok"
		}
	}

	NewResponse().Status(httpStatus).JSON(map[string]any{
		"status":   status,
		"checks":   checks,
		"revision": s.ctrl.Revision(),
	}).Write(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := s.ctrl.View()
	data := s.page(view)
	if id := r.URL.Query().Get("edit"); id != "" {
		s.loadForEdit(&data.Form, view.Tab, id)
	}
	s.render(w, r, http.StatusOK, data)
}

func (s *Server) handleSelectTab(w http.ResponseWriter, r *http.Request) {
	tab, ok := app.ParseTab(chi.URLParam(r, "tab"))
	if !ok {
		NotFoundError("পাতাটি পাওয়া যায়নি").Write(w)
		return
	}
	s.ctrl.SelectTab(tab)
	Redirect("/").Write(w)
}

// handleState returns the persisted representation of the current state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	raw, err := storage.Encode(s.ctrl.Snapshot())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Encoding state failed",
			log.FieldError, err,
			log.FieldOperation, log.OpRead)
		InternalServerError("তথ্য তৈরি করা যায়নি").Write(w)
		return
	}
	NewResponse().JSONBytes(raw).Write(w)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(s.ctrl.Stats()).Write(w)
}

func (s *Server) page(view app.View) pageData {
	nav := make([]navItem, 0, len(app.Tabs))
	for _, t := range app.Tabs {
		nav = append(nav, navItem{Tab: t, Label: t.Label(), Active: t == view.Tab})
	}
	return pageData{
		Title:    appTitle,
		Branding: branding,
		Nav:      nav,
		View:     view,
		Form:     s.blankForm(view.Tab),
		Options:  options,
	}
}

func (s *Server) blankForm(tab app.Tab) formState {
	today := s.today()
	return formState{
		Action:  "/" + string(tab),
		Income:  core.Income{Date: today},
		Expense: core.Expense{Date: today, Unit: core.UnitKilogram},
		Bill:    core.Bill{Date: today, Status: core.StatusPending, Category: core.BillElectricity},
		Loan:    core.Loan{Date: today, Status: core.StatusPending, Type: core.LoanGiven},
		Market:  core.MarketItem{Unit: core.UnitKilogram},
	}
}

// loadForEdit fills form with the record id of the tab's kind. Unknown ids
// leave the blank form.
func (s *Server) loadForEdit(form *formState, tab app.Tab, id string) {
	rec, ok := s.ctrl.Find(string(tab), id)
	if !ok {
		return
	}
	switch v := rec.(type) {
	case core.Income:
		form.Income = v
	case core.Expense:
		form.Expense = v
	case core.Bill:
		form.Bill = v
	case core.Loan:
		form.Loan = v
	default:
		// Market items are toggled, not edited.
		return
	}
	form.Editing = true
	form.Action = "/" + string(tab) + "/" + id
}

// render executes the page into a buffer first so a template error never
// leaves a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	if s.templates == nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded",
			log.FieldPath, r.URL.Path,
			log.FieldComponent, log.ComponentTemplate)
		InternalServerError("templates not loaded").Write(w)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err,
			log.FieldTab, string(data.View.Tab),
			log.FieldOperation, log.OpRender)
		InternalServerError("পাতা দেখানো যায়নি").Write(w)
		return
	}
	NewResponse().Status(status).Header("Content-Type", "text/html; charset=utf-8").Body(buf.Bytes()).Write(w)
}
