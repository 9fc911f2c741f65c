// notes/routes/notes.go
package routes

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"notes/notes/controllers"
	"notes/notes/sources/psql/dao"
	"notes/notes/sources/psql/models"
	"notes/notes/utils/jsonutils"
	"notes/notes/utils/logging"
	"notes/notes/utils/pagination"
	"notes/notes/utils/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type noteCtxKey struct{}

func handleNotesJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		res, status, err := handler(r)
		if err != nil {
			writeError(w, r, err, status)
			return
		}
		jsonutils.WriteJSON(w, status, res)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	var fieldErrs validation.Errors
	var parseErr *validation.ParseError
	switch {
	case errors.As(err, &fieldErrs):
		jsonutils.WriteJSON(w, http.StatusBadRequest, fieldErrs)
	case errors.As(err, &parseErr):
		jsonutils.WriteDetail(w, http.StatusBadRequest, parseErr.Error())
	case errors.Is(err, dao.ErrNoteNotFound):
		writeNotFound(w, r)
	default:
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		logging.ErrorLogger.Error("notes request failed",
			zap.String("trace_id", logging.TraceID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		jsonutils.WriteDetail(w, status, "A server error occurred.")
	}
}

func writeNotFound(w http.ResponseWriter, r *http.Request) {
	jsonutils.WriteDetail(w, http.StatusNotFound, "Not found.")
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	jsonutils.WriteDetail(w, http.StatusMethodNotAllowed, `Method "`+r.Method+`" not allowed.`)
}

// noteCtx resolves {id} to a stored note before any method handler runs, so a
// missing note is always a 404 regardless of method or body.
func noteCtx(ctrl *controllers.NotesController) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 0)
			if err != nil {
				writeNotFound(w, r)
				return
			}
			note, err := ctrl.GetNoteByID(r.Context(), uint(id))
			if err != nil {
				writeError(w, r, err, http.StatusInternalServerError)
				return
			}
			if note == nil {
				writeNotFound(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), noteCtxKey{}, note)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func noteFromContext(ctx context.Context) *models.Note {
	note, _ := ctx.Value(noteCtxKey{}).(*models.Note)
	return note
}

func NotesRoutes(ctrl *controllers.NotesController) chi.Router {
	r := chi.NewRouter()

	// List notes
	r.Get("/", handleNotesJSON(func(r *http.Request) (any, int, error) {
		q := r.URL.Query()
		list, err := ctrl.ListNotes(r.Context(), q.Get("ordering"), pagination.FromQuery(q))
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return list, http.StatusOK, nil
	}))

	// Create note
	r.Post("/", handleNotesJSON(func(r *http.Request) (any, int, error) {
		in, err := validation.DecodeNote(r.Body, false)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		note, err := ctrl.CreateNote(r.Context(), in)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return note, http.StatusCreated, nil
	}))

	r.Route("/{id:[0-9]+}", func(r chi.Router) {
		r.Use(noteCtx(ctrl))

		// Get single note
		r.Get("/", handleNotesJSON(func(r *http.Request) (any, int, error) {
			return noteFromContext(r.Context()), http.StatusOK, nil
		}))

		// Replace note
		r.Put("/", handleNotesJSON(updateNote(ctrl, false)))

		// Update supplied fields only
		r.Patch("/", handleNotesJSON(updateNote(ctrl, true)))

		// Delete note
		r.Delete("/", handleNotesJSON(func(r *http.Request) (any, int, error) {
			note := noteFromContext(r.Context())
			if err := ctrl.DeleteNote(r.Context(), note.ID); err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return nil, http.StatusNoContent, nil
		}))
	})

	return r
}

func updateNote(ctrl *controllers.NotesController, partial bool) func(r *http.Request) (any, int, error) {
	return func(r *http.Request) (any, int, error) {
		note := noteFromContext(r.Context())
		in, err := validation.DecodeNote(r.Body, partial)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		updated, err := ctrl.UpdateNote(r.Context(), note.ID, in)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return updated, http.StatusOK, nil
	}
}
