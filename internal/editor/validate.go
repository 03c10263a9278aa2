package editor

import (
	"strconv"
	"strings"
	"time"
)

// Field names used by the error mapping for attachments.
const (
	fieldVideo = "videoFile"
	fieldImage = "backgroundImageFile"
)

// User-facing messages, one per rule, as shown next to the form fields.
const (
	msgTitleRequired    = "El nombre del curso es obligatorio."
	msgDescriptionShort = "La descripción debe tener al menos 10 caracteres."
	msgDescriptionLong  = "La descripción no debe superar los 100 caracteres."
	msgCategoryRequired = "La categoría es obligatoria."
	msgDurationInvalid  = "La duración debe ser un número positivo."
	msgStartRequired    = "La fecha de inicio es obligatoria."
	msgEndBeforeStart   = "La fecha de finalización no puede ser anterior a la fecha de inicio."
	msgPriceInvalid     = "El precio debe ser un número positivo."
	msgVideoTooBig      = "El video no debe exceder los 800MB."
	msgImageTooBig      = "La imagen no debe exceder los 2MB."
)

// fieldValidators maps a form field name to its rule. Each rule gets the
// raw input plus the current working copy for cross-field checks, and
// answers with a message ("" when valid). Fields without an entry are
// stored without validation.
var fieldValidators = map[string]func(raw string, w *WorkingEdit) string{
	"title": func(raw string, _ *WorkingEdit) string {
		if strings.TrimSpace(raw) == "" {
			return msgTitleRequired
		}
		return ""
	},
	"description": func(raw string, _ *WorkingEdit) string {
		n := len([]rune(strings.TrimSpace(raw)))
		if n < 10 {
			return msgDescriptionShort
		}
		if n > 100 {
			return msgDescriptionLong
		}
		return ""
	},
	"category": func(raw string, _ *WorkingEdit) string {
		if strings.TrimSpace(raw) == "" {
			return msgCategoryRequired
		}
		return ""
	},
	"duration": func(raw string, _ *WorkingEdit) string {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || v <= 0 {
			return msgDurationInvalid
		}
		return ""
	},
	"startDate": func(raw string, _ *WorkingEdit) string {
		if raw == "" {
			return msgStartRequired
		}
		return ""
	},
	"endDate": func(raw string, w *WorkingEdit) string {
		if dateBefore(raw, w.StartDate) {
			return msgEndBeforeStart
		}
		return ""
	},
	// The price rule reads the working price, not the text just typed:
	// the numeric value is maintained by UpdatePrice.
	"price": func(_ string, w *WorkingEdit) string {
		if !w.Price.IsPositive() {
			return msgPriceInvalid
		}
		return ""
	},
}

// dateBefore reports whether a < b. ISO dates compare as dates; anything
// unparsable falls back to string order, which is equivalent for the
// YYYY-MM-DD inputs the date picker produces.
func dateBefore(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	ta, errA := time.Parse("2006-01-02", a)
	tb, errB := time.Parse("2006-01-02", b)
	if errA == nil && errB == nil {
		return ta.Before(tb)
	}
	return a < b
}
