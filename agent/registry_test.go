package agent

import (
	"reflect"
	"strings"
	"testing"
)

func TestRegistryOrderAndUniqueness(t *testing.T) {
	tasks := Registry()
	if len(tasks) != 11 {
		t.Fatalf("expected 11 tasks, got %d", len(tasks))
	}
	if tasks[0].Type != TypeFoundation {
		t.Errorf("expected foundation first, got %s", tasks[0].Type)
	}
	seen := make(map[Type]bool)
	for _, task := range tasks {
		if seen[task.Type] {
			t.Errorf("duplicate task type %s", task.Type)
		}
		seen[task.Type] = true
		if task.Name == "" {
			t.Errorf("task %s has empty name", task.Type)
		}
		if task.SystemPrompt == "" {
			t.Errorf("task %s has empty system prompt", task.Type)
		}
		if task.BuildPrompt == nil {
			t.Errorf("task %s has nil prompt builder", task.Type)
		}
	}
}

func TestLookup(t *testing.T) {
	task, ok := Lookup(TypeSyllabus)
	if !ok {
		t.Fatal("expected syllabus task to exist")
	}
	if task.Type != TypeSyllabus {
		t.Errorf("expected type %s, got %s", TypeSyllabus, task.Type)
	}
	if _, ok := Lookup(Type("nonsense")); ok {
		t.Error("expected lookup of unknown type to fail")
	}
}

func testContext() *Context {
	return &Context{
		Grade:              "9th",
		Subject:            "English Literature",
		State:              "California",
		BookTitle:          "To Kill a Mockingbird",
		Duration:           "9 weeks",
		LearningObjectives: "Analyze theme and character development",
	}
}

func TestFoundationPromptIncludesCourseDetails(t *testing.T) {
	c := testContext()
	prompt := foundationTask.BuildPrompt(c)
	for _, want := range []string{"9th", "To Kill a Mockingbird", "California", "9 weeks"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("foundation prompt missing %q", want)
		}
	}
	if !strings.Contains(prompt, "None provided") {
		t.Error("expected additional-context fallback in prompt")
	}
	if !strings.Contains(prompt, "General literature study") {
		t.Error("expected focus-area fallback in prompt")
	}
}

func TestDownstreamPromptsEmbedFoundation(t *testing.T) {
	for _, tt := range []Task{syllabusTask, gradingTask, lessonsTask} {
		c := testContext()
		without := tt.BuildPrompt(c)
		if strings.Contains(without, "Educational Foundation:") {
			t.Errorf("%s prompt references foundation before one exists", tt.Type)
		}
		c.EducationalFoundation = "FOUNDATION-MARKER-TEXT"
		with := tt.BuildPrompt(c)
		if !strings.Contains(with, "FOUNDATION-MARKER-TEXT") {
			t.Errorf("%s prompt does not embed foundation text", tt.Type)
		}
	}
}

func TestBuildPromptDoesNotMutateContext(t *testing.T) {
	c := testContext()
	c.SpecialEducation.IEP = true
	before := *c
	for _, task := range Registry() {
		task.BuildPrompt(c)
	}
	if !reflect.DeepEqual(*c, before) {
		t.Error("prompt builders must not mutate the context")
	}
}

func TestSpecialConsiderationsFlags(t *testing.T) {
	c := testContext()
	c.SpecialEducation = SpecialEducation{IEP: true, ELL: true, Details: "extended time"}
	got := specialConsiderations(c)
	for _, want := range []string{"IEP Accommodations", "ELL Support", "extended time"} {
		if !strings.Contains(got, want) {
			t.Errorf("special considerations missing %q", want)
		}
	}
	if strings.Contains(got, "Gifted") {
		t.Error("gifted bullet present without flag")
	}
}

func TestDocumentTitle(t *testing.T) {
	if got := DocumentTitle(TypeSyllabus); got == "Curriculum Document" {
		t.Error("expected a specific title for syllabus")
	}
	if got := DocumentTitle(Type("unknown")); got != "Curriculum Document" {
		t.Errorf("expected fallback title, got %q", got)
	}
}
