package agent

// Registry returns the ordered list of curriculum agents. The foundation
// agent is always first: its output becomes part of the shared context for
// every agent that follows. Adding, removing, or reordering the remaining
// entries requires no generator changes.
func Registry() []Task {
	return []Task{
		foundationTask,
		specialEducationTask,
		syllabusTask,
		materialsTask,
		gradingTask,
		testsTask,
		quizzesTask,
		discussionsTask,
		homeworkTask,
		readingTask,
		lessonsTask,
	}
}

// Types returns the task types in registry order.
func Types() []Type {
	reg := Registry()
	types := make([]Type, len(reg))
	for i, t := range reg {
		types[i] = t.Type
	}
	return types
}

// Lookup returns the task for the given type.
func Lookup(t Type) (Task, bool) {
	for _, task := range Registry() {
		if task.Type == t {
			return task, true
		}
	}
	return Task{}, false
}
