package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hisab/internal/app"
	"hisab/internal/confirm"
	"hisab/internal/core"
	"hisab/internal/log"
)

var errInvalidForm = errors.New("invalid form")

// Prompts shown before a record is deleted. Kinds missing here are deleted
// without asking (market) or cannot be deleted at all (loan).
var deletePrompts = map[string]string{
	app.KindIncome:  "আপনি কি এই আয়ের হিসাবটি মুছে ফেলতে চান?",
	app.KindExpense: "আপনি কি এই ব্যয়ের হিসাবটি মুছে ফেলতে চান?",
	app.KindBill:    "আপনি কি এই বিলের হিসাবটি মুছে ফেলতে চান?",
}

// submit parses a record from f and hands it to save. Parse errors are
// reported as errInvalidForm and nothing is saved.
func submit[T interface{ RecordID() string }](ctx context.Context, f *formReader, id string, parse func(*formReader, string) T, save func(context.Context, T) (T, error)) (string, error) {
	rec := parse(f, id)
	if err := f.Err(); err != nil {
		return id, fmt.Errorf("%w: %w", errInvalidForm, err)
	}
	out, err := save(ctx, rec)
	return out.RecordID(), err
}

// updated adapts an update method to submit's save signature.
func updated[T any](fn func(context.Context, T) error) func(context.Context, T) (T, error) {
	return func(ctx context.Context, rec T) (T, error) {
		return rec, fn(ctx, rec)
	}
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	f, err := newFormReader(r, s.today())
	if err != nil {
		BadRequestError("ফর্মটি পড়া যায়নি").Write(w)
		return
	}

	ctx := r.Context()
	var id string
	switch kind {
	case app.KindIncome:
		id, err = submit(ctx, f, "", parseIncome, s.ctrl.AddIncome)
	case app.KindExpense:
		id, err = submit(ctx, f, "", parseExpense, s.ctrl.AddExpense)
	case app.KindBill:
		id, err = submit(ctx, f, "", parseBill, s.ctrl.AddBill)
	case app.KindLoan:
		id, err = submit(ctx, f, "", parseLoan, s.ctrl.AddLoan)
	case app.KindMarket:
		id, err = submit(ctx, f, "", parseMarketItem, s.ctrl.AddMarketItem)
	default:
		NotFoundError("পাতাটি পাওয়া যায়নি").Write(w)
		return
	}
	s.finish(w, r, kind, app.OpAdd, id, err)
}

// handleUpdate replaces a whole record with the submitted form. Market
// items have no edit form.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	kind, id := chi.URLParam(r, "kind"), chi.URLParam(r, "id")
	f, err := newFormReader(r, s.today())
	if err != nil {
		BadRequestError("ফর্মটি পড়া যায়নি").Write(w)
		return
	}

	ctx := r.Context()
	switch kind {
	case app.KindIncome:
		_, err = submit(ctx, f, id, parseIncome, updated(s.ctrl.UpdateIncome))
	case app.KindExpense:
		_, err = submit(ctx, f, id, parseExpense, updated(s.ctrl.UpdateExpense))
	case app.KindBill:
		_, err = submit(ctx, f, id, parseBill, updated(s.ctrl.UpdateBill))
	case app.KindLoan:
		_, err = submit(ctx, f, id, parseLoan, updated(s.ctrl.UpdateLoan))
	default:
		NotFoundError("পাতাটি পাওয়া যায়নি").Write(w)
		return
	}
	s.finish(w, r, kind, app.OpUpdate, id, err)
}

// handleDelete removes market items at once and asks before removing
// anything else.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	kind, id := chi.URLParam(r, "kind"), chi.URLParam(r, "id")

	if kind == app.KindMarket {
		s.finish(w, r, kind, app.OpDelete, id, s.ctrl.DeleteMarketItem(r.Context(), id))
		return
	}

	prompt, ok := deletePrompts[kind]
	if !ok {
		NotFoundError("পাতাটি পাওয়া যায়নি").Write(w)
		return
	}

	token, err := s.guard.Request(confirm.Action{Kind: kind, ID: id, Prompt: prompt})
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to issue confirmation token",
			log.FieldError, err,
			log.FieldKind, kind,
			log.FieldRecordID, id,
			log.FieldComponent, log.ComponentConfirm)
		InternalServerError("অনুরোধটি সম্পন্ন করা যায়নি").Write(w)
		return
	}

	data := s.page(s.ctrl.View())
	data.Confirm = &confirmView{Prompt: prompt, Subject: s.describe(kind, id), Token: token}
	s.render(w, r, http.StatusOK, data)
}

// handleConfirm answers a pending delete. Declined or expired tokens change
// nothing.
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("ফর্মটি পড়া যায়নি").Write(w)
		return
	}
	ctx := r.Context()
	logger := log.FromContext(ctx)

	a, accepted, err := s.guard.Confirm(r.PostForm.Get("token"), r.PostForm.Get("decision") == "yes")
	switch {
	case err != nil:
		s.metrics.ObserveConfirmation("expired")
		logger.InfoContext(ctx, "Confirmation token unknown or expired",
			log.FieldComponent, log.ComponentConfirm)
		Redirect("/").Write(w)
		return
	case !accepted:
		s.metrics.ObserveConfirmation("no")
		logger.InfoContext(ctx, "Delete cancelled",
			log.FieldKind, a.Kind,
			log.FieldRecordID, a.ID,
			log.FieldComponent, log.ComponentConfirm)
		Redirect("/").Write(w)
		return
	}
	s.metrics.ObserveConfirmation("yes")

	switch a.Kind {
	case app.KindIncome:
		err = s.ctrl.DeleteIncome(ctx, a.ID)
	case app.KindExpense:
		err = s.ctrl.DeleteExpense(ctx, a.ID)
	case app.KindBill:
		err = s.ctrl.DeleteBill(ctx, a.ID)
	default:
		err = fmt.Errorf("no delete for kind %q", a.Kind)
	}
	s.finish(w, r, a.Kind, app.OpDelete, a.ID, err)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.finish(w, r, app.KindMarket, app.OpToggle, id, s.ctrl.ToggleMarketItem(r.Context(), id))
}

// finish ends a mutating request. A failed save still redirects: the change
// is live in memory and the failure is already logged and counted.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, kind, op, id string, err error) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	switch {
	case errors.Is(err, errInvalidForm):
		logger.WarnContext(ctx, "Rejected form",
			log.FieldKind, kind,
			log.FieldOperation, op,
			log.FieldError, err)
		UnprocessableEntityError("টাকার পরিমাণ সঠিক নয়").Write(w)
		return
	case errors.Is(err, app.ErrSaveFailed):
		logger.WarnContext(ctx, "Change applied but not saved",
			log.FieldKind, kind,
			log.FieldOperation, op,
			log.FieldRecordID, id,
			log.FieldError, err)
	case err != nil:
		logger.ErrorContext(ctx, "Mutation failed",
			log.FieldKind, kind,
			log.FieldOperation, op,
			log.FieldRecordID, id,
			log.FieldError, err)
		InternalServerError("অনুরোধটি সম্পন্ন করা যায়নি").Write(w)
		return
	}

	if tab, ok := app.ParseTab(kind); ok {
		s.ctrl.SelectTab(tab)
	}
	Redirect("/").Write(w)
}

// describe names the record a confirmation is about.
func (s *Server) describe(kind, id string) string {
	rec, ok := s.ctrl.Find(kind, id)
	if !ok {
		return ""
	}
	switch v := rec.(type) {
	case core.Income:
		return v.Category + " · " + core.FormatTaka(v.Amount)
	case core.Expense:
		return v.ItemName + " · " + core.FormatTaka(v.Amount)
	case core.Bill:
		return v.Title + " · " + core.FormatTaka(v.Amount)
	}
	return ""
}
