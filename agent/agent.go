// Package agent defines the specialized curriculum agents and the ordered
// registry they run in. Each agent pairs a fixed system prompt with a
// function that turns the request context into a user prompt.
package agent

// Type identifies a curriculum document type produced by one agent.
type Type string

const (
	TypeFoundation       Type = "foundation"
	TypeSpecialEducation Type = "specialEducation"
	TypeSyllabus         Type = "syllabus"
	TypeMaterials        Type = "materials"
	TypeGrading          Type = "grading"
	TypeTests            Type = "tests"
	TypeQuizzes          Type = "quizzes"
	TypeDiscussions      Type = "discussions"
	TypeHomework         Type = "homework"
	TypeReading          Type = "reading"
	TypeLessons          Type = "lessons"
)

// BookInfo is catalog metadata about the course text.
type BookInfo struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Pages  int    `json:"pages"`
}

// SpecialEducation holds the request's differentiation flags.
type SpecialEducation struct {
	IEP     bool   `json:"iep"`
	ELL     bool   `json:"ell"`
	Gifted  bool   `json:"gifted"`
	Details string `json:"details,omitempty"`
}

// Context is the per-request input bundle every agent reads when building
// its prompt. It is assembled once per request and shared read-only across
// the run, with one exception: EducationalFoundation is set by the generator
// after the foundation agent succeeds, and is never cleared afterward.
type Context struct {
	Grade              string           `json:"grade"`
	Subject            string           `json:"subject"`
	State              string           `json:"state,omitempty"`
	ZipCode            string           `json:"zipcode,omitempty"`
	Book               string           `json:"book"`
	BookTitle          string           `json:"book_title"`
	BookInfo           BookInfo         `json:"book_info"`
	Duration           string           `json:"duration"`
	LearningObjectives string           `json:"learning_objectives"`
	SpecialEducation   SpecialEducation `json:"special_education"`
	AdditionalContext  string           `json:"additional_context,omitempty"`
	FocusAreas         []string         `json:"focus_areas,omitempty"`

	// EducationalFoundation is the foundation agent's output, made available
	// to every agent that runs after it.
	EducationalFoundation string `json:"-"`
}

// Task is one named step in the generation pipeline.
type Task struct {
	Type         Type
	Name         string
	SystemPrompt string
	// BuildPrompt produces the user prompt for the given context.
	// It must not mutate the context.
	BuildPrompt func(c *Context) string
}

// documentTitles maps each task type to its rendered document title.
var documentTitles = map[Type]string{
	TypeFoundation:       "Educational Foundation Document",
	TypeSpecialEducation: "Special Education Adaptations",
	TypeSyllabus:         "Course Syllabus",
	TypeMaterials:        "Materials & Resources List",
	TypeGrading:          "Grading Criteria & Rubrics",
	TypeTests:            "Tests & Examinations",
	TypeQuizzes:          "Quizzes & Quick Assessments",
	TypeDiscussions:      "Discussion Questions",
	TypeHomework:         "Homework Assignments",
	TypeReading:          "Reading Schedule & Plan",
	TypeLessons:          "Daily Lesson Plans",
}

// DocumentTitle returns the human-readable document title for a task type.
func DocumentTitle(t Type) string {
	if title, ok := documentTitles[t]; ok {
		return title
	}
	return "Curriculum Document"
}
