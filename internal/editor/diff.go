package editor

import "course-market/internal/domain"

// ChangeSet is the per-field change-detection vector between the working
// copy and its source course. A save only goes out when at least one entry
// is true.
type ChangeSet struct {
	Title       bool
	Description bool
	Category    bool
	Duration    bool
	StartDate   bool
	EndDate     bool
	Price       bool
	Video       bool
	Image       bool
}

func (c ChangeSet) Any() bool {
	return c.Title || c.Description || c.Category || c.Duration ||
		c.StartDate || c.EndDate || c.Price || c.Video || c.Image
}

// Diff compares the working copy against the source field by field.
// Attachments count as changed simply by being pending.
func Diff(source domain.Course, w WorkingEdit, videoPending, imagePending bool) ChangeSet {
	return ChangeSet{
		Title:       w.Title != source.Title,
		Description: w.Description != source.Description,
		Category:    w.Category != source.Category.Name,
		Duration:    w.Duration != formatHours(source.Duration),
		StartDate:   w.StartDate != source.StartDate,
		EndDate:     w.EndDate != source.EndDate,
		Price:       !w.Price.Equal(source.Price),
		Video:       videoPending,
		Image:       imagePending,
	}
}
