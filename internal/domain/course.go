package domain

import "github.com/shopspring/decimal"

// Course is the canonical representation of a course inside this client.
// It is owned by the backend; we only read it and send updates back.
type Course struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Duration    float64         `json:"duration"` // hours
	Price       decimal.Decimal `json:"price"`
	Media       Media           `json:"media"`
	StartDate   string          `json:"startdate,omitempty"` // ISO date if available
	EndDate     string          `json:"enddate,omitempty"`
	Classes     []Class         `json:"classes"`
	Instructor  Instructor      `json:"instructor"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Media struct {
	Filename string `json:"filename"`
}

type Class struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Instructor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// datePlaceholder is shown when a course has no scheduled dates yet.
const datePlaceholder = "00/00/00"

// CourseSnapshot is the small payload stored in session storage so the
// course platform tab can render a header without refetching the course.
type CourseSnapshot struct {
	CourseName string `json:"courseName"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

func NewCourseSnapshot(c Course) CourseSnapshot {
	s := CourseSnapshot{
		CourseName: c.Title,
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
	}
	if s.StartDate == "" {
		s.StartDate = datePlaceholder
	}
	if s.EndDate == "" {
		s.EndDate = datePlaceholder
	}
	return s
}
