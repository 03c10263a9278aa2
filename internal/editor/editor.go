package editor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"course-market/internal/domain"
	"course-market/internal/marketapi"
)

var (
	// ErrClosed means no edit session is open on this card.
	ErrClosed = errors.New("editor: edit session is not open")

	// ErrSaveInProgress rejects a second Save while one is still in flight.
	ErrSaveInProgress = errors.New("editor: save already in progress")
)

// Outcome distinguishes a real submission from the "nothing to save" no-op.
type Outcome int

const (
	OutcomeNoChanges Outcome = iota
	OutcomeSaved
)

// ValidationBlockedError refuses a save while field errors are pending.
// No network call is made.
type ValidationBlockedError struct {
	Fields map[string]string
}

func (e *ValidationBlockedError) Error() string {
	return fmt.Sprintf("editor: %d field(s) with validation errors", len(e.Fields))
}

// API is the slice of the marketplace client the editor needs.
type API interface {
	UpdateCourse(ctx context.Context, courseID string, req marketapi.UpdateCourseRequest) error
	DeleteCourse(ctx context.Context, courseID string) error
}

// WorkingEdit is the mutable, session-scoped draft of a course record.
// It mirrors the editable Course fields and is discarded on cancel.
type WorkingEdit struct {
	Title       string
	Description string
	Category    string
	Duration    string // raw input; the PATCH route takes it as text
	StartDate   string
	EndDate     string
	Price       decimal.Decimal

	// Extra keeps values for field names the validators don't know.
	Extra map[string]string
}

func newWorkingEdit(c domain.Course) WorkingEdit {
	return WorkingEdit{
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category.Name,
		Duration:    formatHours(c.Duration),
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		Price:       c.Price,
	}
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// Editor owns the edit lifecycle of one course card: a working copy of the
// source record, per-field errors, pending attachments, and the save/delete
// calls against the backend.
type Editor struct {
	Prices PriceFormatter

	api    API
	user   domain.User
	source domain.Course

	mu      sync.Mutex
	open    bool
	saving  bool
	working WorkingEdit
	errs    map[string]string
	video   VideoRef
	image   *FileRef
}

func New(api API, user domain.User, course domain.Course) *Editor {
	return &Editor{
		Prices: NewPriceFormatter(DefaultLocale),
		api:    api,
		user:   user,
		source: course,
		errs:   map[string]string{},
	}
}

// Open starts a fresh edit session: the working copy is cloned from the
// source course and every error entry is cleared.
func (e *Editor) Open() WorkingEdit {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.working = newWorkingEdit(e.source)
	e.errs = map[string]string{}
	e.video = nil
	e.image = nil
	e.open = true
	return e.working
}

// Cancel discards the working copy and restores the source view.
// It cannot abort a save that is already in flight.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.working = newWorkingEdit(e.source)
	e.errs = map[string]string{}
	e.video = nil
	e.image = nil
	e.open = false
}

// IsOpen reports whether an edit session is active.
func (e *Editor) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

// Working returns the current draft.
func (e *Editor) Working() WorkingEdit {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.working
}

// Errors returns a copy of the field error mapping.
func (e *Editor) Errors() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.errs))
	for k, v := range e.errs {
		out[k] = v
	}
	return out
}

// Video returns the pending video reference, nil when none.
func (e *Editor) Video() VideoRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.video
}

// Image returns the pending image file, nil when none.
func (e *Editor) Image() *FileRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.image
}

// UpdateField applies the validation rule for the named field, stores the
// value, and records the field's error message (empty when valid). Other
// fields' errors are left untouched. Unknown fields are stored verbatim.
func (e *Editor) UpdateField(name, raw string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	msg := ""
	if validate, ok := fieldValidators[name]; ok {
		msg = validate(raw, &e.working)
	}
	e.working.apply(name, raw)
	e.errs[name] = msg
	return msg
}

// UpdatePrice reads a raw price input the way the form does: everything
// that is not a digit is dropped, the remaining digits are minor units.
// Typing "1234" stores 12.34; junk stores 0.
func (e *Editor) UpdatePrice(raw string) WorkingEdit {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.working.Price = ParsePriceInput(raw)
	return e.working
}

// FormatPrice renders the working price for display. Formatting is a pure
// projection; the stored value never changes.
func (e *Editor) FormatPrice() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Prices.Format(e.working.Price)
}

// SetVideoURL stores a remote video reference. URLs carry no size check;
// preview eligibility is a separate question (IsYouTubeURL).
func (e *Editor) SetVideoURL(url string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if url == "" {
		e.video = nil
		e.errs[fieldVideo] = ""
		return
	}
	e.video = RemoteVideo{URL: url}
	e.errs[fieldVideo] = ""
}

// SetVideoFile stores a local video file, rejecting anything over 800 MiB.
// An oversized file leaves the previous reference untouched.
func (e *Editor) SetVideoFile(f *FileRef) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if f == nil {
		e.video = nil
		e.errs[fieldVideo] = ""
		return ""
	}
	if f.Size > MaxVideoSize {
		e.errs[fieldVideo] = msgVideoTooBig
		return msgVideoTooBig
	}
	e.video = LocalVideo{File: *f}
	e.errs[fieldVideo] = ""
	return ""
}

// SetImageFile stores a background image file, rejecting anything over 2 MiB.
func (e *Editor) SetImageFile(f *FileRef) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if f == nil {
		e.image = nil
		e.errs[fieldImage] = ""
		return ""
	}
	if f.Size > MaxImageSize {
		e.errs[fieldImage] = msgImageTooBig
		return msgImageTooBig
	}
	e.image = f
	e.errs[fieldImage] = ""
	return ""
}

// Save runs the change-detection gate, then submits the working copy as a
// multipart PATCH. No change is a no-op outcome, pending field errors block
// locally, and a transport failure leaves the session open for the user to
// re-trigger; nothing is retried automatically.
func (e *Editor) Save(ctx context.Context) (Outcome, error) {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return OutcomeNoChanges, ErrClosed
	}
	if e.saving {
		e.mu.Unlock()
		return OutcomeNoChanges, ErrSaveInProgress
	}

	working := e.working
	video := e.video
	image := e.image

	changes := Diff(e.source, working, video != nil, image != nil)
	if !changes.Any() {
		e.mu.Unlock()
		return OutcomeNoChanges, nil
	}

	blocked := map[string]string{}
	for field, msg := range e.errs {
		if msg != "" {
			blocked[field] = msg
		}
	}
	if len(blocked) > 0 {
		e.mu.Unlock()
		return OutcomeNoChanges, &ValidationBlockedError{Fields: blocked}
	}

	e.saving = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.saving = false
		e.mu.Unlock()
	}()

	// TODO: category, startDate and endDate are edited but not sent; the
	// PATCH route does not accept them yet.
	req := marketapi.UpdateCourseRequest{
		Title:        working.Title,
		Description:  working.Description,
		Duration:     working.Duration,
		InstructorID: e.user.Sub,
		Price:        working.Price.String(),
	}
	if video != nil {
		req.VideoURL = video.AsText()
	}
	if image != nil {
		req.Image = &marketapi.ImageFile{Filename: image.Name, Content: image.Content}
	}

	if err := e.api.UpdateCourse(ctx, e.source.ID, req); err != nil {
		return OutcomeNoChanges, fmt.Errorf("editor: update course %s: %w", e.source.ID, err)
	}

	e.mu.Lock()
	e.open = false
	e.mu.Unlock()
	return OutcomeSaved, nil
}

// Delete removes the course. The host UI gates the confirmation dialog;
// here a success simply closes the edit surface.
func (e *Editor) Delete(ctx context.Context) error {
	if err := e.api.DeleteCourse(ctx, e.source.ID); err != nil {
		return fmt.Errorf("editor: delete course %s: %w", e.source.ID, err)
	}
	e.mu.Lock()
	e.open = false
	e.mu.Unlock()
	return nil
}

func (w *WorkingEdit) apply(name, raw string) {
	switch name {
	case "title":
		w.Title = raw
	case "description":
		w.Description = raw
	case "category":
		w.Category = raw
	case "duration":
		w.Duration = raw
	case "startDate":
		w.StartDate = raw
	case "endDate":
		w.EndDate = raw
	case "price":
		// The numeric price only moves through UpdatePrice; the raw text
		// typed into the field never overwrites it.
	default:
		if w.Extra == nil {
			w.Extra = map[string]string{}
		}
		w.Extra[name] = raw
	}
}
