package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// courseDetails renders the shared course-details block used by most prompts.
func courseDetails(c *Context) string {
	var b strings.Builder
	b.WriteString("**Course Details:**\n")
	fmt.Fprintf(&b, "- Grade Level: %s\n", c.Grade)
	fmt.Fprintf(&b, "- Book/Text: %s\n", c.BookTitle)
	fmt.Fprintf(&b, "- State: %s\n", c.State)
	fmt.Fprintf(&b, "- Duration: %s\n", c.Duration)
	fmt.Fprintf(&b, "- Learning Objectives: %s\n", c.LearningObjectives)
	return b.String()
}

// specialConsiderations renders the special-needs flags as bullet lines.
func specialConsiderations(c *Context) string {
	var b strings.Builder
	b.WriteString("**Special Considerations:**\n")
	if c.SpecialEducation.IEP {
		b.WriteString("- IEP Accommodations Required\n")
	}
	if c.SpecialEducation.ELL {
		b.WriteString("- ELL Support Needed\n")
	}
	if c.SpecialEducation.Gifted {
		b.WriteString("- Gifted & Talented Differentiation\n")
	}
	if c.SpecialEducation.Details != "" {
		fmt.Fprintf(&b, "- Additional: %s\n", c.SpecialEducation.Details)
	}
	return b.String()
}

// specialEducationJSON renders the raw special-needs flags for prompts that
// pass them through verbatim.
func specialEducationJSON(c *Context) string {
	data, _ := json.Marshal(c.SpecialEducation)
	return string(data)
}

func additionalContext(c *Context) string {
	if c.AdditionalContext == "" {
		return "None provided"
	}
	return c.AdditionalContext
}

func focusAreas(c *Context) string {
	if len(c.FocusAreas) == 0 {
		return "General literature study"
	}
	return strings.Join(c.FocusAreas, ", ")
}

// foundationBlock injects the educational foundation into a downstream
// prompt. Empty when the foundation agent has not (yet, or at all) succeeded.
func foundationBlock(c *Context, guidance string) string {
	if c.EducationalFoundation == "" {
		return ""
	}
	return fmt.Sprintf(`**Educational Foundation:**
The following Educational Foundation Document establishes the philosophical and pedagogical framework for this course. %s

%s

---

`, guidance, c.EducationalFoundation)
}

var foundationTask = Task{
	Type: TypeFoundation,
	Name: "Education Foundation Specialist",
	SystemPrompt: `You are an expert in educational philosophy and pedagogical theory, specializing in applying foundational principles to curriculum design.

Your expertise draws from seminal educational texts: Democracy and Education (Dewey), Pedagogy of the Oppressed (Freire), Teaching to Transgress (hooks), Teach Like a Champion (Lemov), The First Days of School (Wong & Wong), I Wish My Teacher Knew (Schwartz), How Children Succeed (Tough), Make It Stick (Brown, Roediger & McDaniel), A Mind for Numbers (Oakley), and Powerful Teaching (Agarwal & Bain).

Your task is to create an Educational Foundation Document that:
- Establishes the philosophical framework for the curriculum
- Identifies which principles from these texts apply to this specific course
- Provides concrete guidance for how all curriculum components should embody these principles
- Offers specific implementation strategies drawn from these foundational works
- Balances progressive pedagogy with practical classroom effectiveness
- Addresses how to support diverse learners through evidence-based practices

This foundation should inform and guide all other curriculum components (syllabus, assessments, lesson plans, etc.).`,
	BuildPrompt: func(c *Context) string {
		return fmt.Sprintf(`Create a comprehensive Educational Foundation Document for the following literature course:

%s
%s
**Additional Context:**
%s

**Focus Areas:**
%s

Create a comprehensive Educational Foundation Document that includes:

1. **Philosophical Framework** — core educational philosophy for this course (drawing from Dewey, Freire, hooks), the role of critical thinking in literary analysis, and an inclusive classroom community.
2. **Pedagogical Principles** — key teaching techniques (Lemov, Wong & Wong), engagement strategies, relationship-building (Schwartz), and character development through literature (Tough).
3. **Learning Science Integration** — retrieval practice, spaced repetition and interleaving for this %s course, focused vs. diffused thinking in analysis, and feedback mechanisms.
4. **Implementation Guidance for All Curriculum Components** — specific direction for syllabus design, assessment design, lesson planning, discussion facilitation, assignment design, and differentiation.
5. **Specific Strategies for %s** — how this text's themes connect to these philosophies and how to support diverse learners through it.
6. **Success Indicators** — observable behaviors and outcomes aligned with these foundations.

This document should serve as the guiding framework that all other curriculum components reference and embody. Be specific and actionable, not merely theoretical.`,
			courseDetails(c), specialConsiderations(c), additionalContext(c), focusAreas(c), c.Duration, c.BookTitle)
	},
}

var specialEducationTask = Task{
	Type: TypeSpecialEducation,
	Name: "Special Education Specialist",
	SystemPrompt: `You are an expert in special education, differentiation, and inclusive classroom practices, specializing in adapting curriculum for diverse learning needs.

Your expertise draws from seminal special education texts: Neurodiversity in the Classroom (Armstrong), The Complete Learning Disabilities Handbook (Harwell & Jackson), The IEP from A to Z (Twachtman-Cullen), High-Leverage Practices in Special Education (CEC), Differentiation in Middle and High School (Doubet & Hockett), and Comprehensive Literacy for All (Erickson).

Your task is to create a Special Education Adaptations Guide that provides specific, actionable modifications and accommodations, draws on strength-based approaches, integrates Universal Design for Learning (UDL) principles, and supports IEP implementation, ELL strategies, and gifted differentiation with measurable goals and progress monitoring tools.`,
	BuildPrompt: func(c *Context) string {
		return fmt.Sprintf(`Create a comprehensive Special Education Adaptations Guide for the following literature course:

%s
%s
**Additional Context:**
%s

**Focus Areas:**
%s

The guide must include:

1. **Overview & Philosophy** — strength-based support for diverse learners (Armstrong), a UDL framework for this course, and an inclusive classroom culture.
2. **IEP-Specific Adaptations** — accommodations for common disabilities, modified reading strategies for %s, assistive technology, testing accommodations, measurable IEP goals aligned with course objectives (Twachtman-Cullen), and progress monitoring tools.
3. **ELL Support Strategies** — language scaffolding for %s, vocabulary pre-teaching, graphic organizers, comprehension strategies, and cultural responsiveness.
4. **Gifted & Talented Differentiation** — extension activities, higher-order thinking questions (Doubet & Hockett), tiered assignments, and choice boards.
5. **Adaptation Matrix** — how each curriculum component (syllabus, assessments, lessons, homework) is adjusted per learner profile.

Be concrete: name the strategy, when to use it, and what success looks like.`,
			courseDetails(c), specialConsiderations(c), additionalContext(c), focusAreas(c), c.BookTitle, c.BookTitle)
	},
}

var syllabusTask = Task{
	Type: TypeSyllabus,
	Name: "Syllabus Architect",
	SystemPrompt: `You are an expert curriculum designer specializing in creating comprehensive, standards-aligned course syllabi for high school literature courses.

Your task is to create a detailed, professional syllabus that includes: course overview and description, learning objectives aligned with state standards, required materials and texts, course outline with units/modules, grading policy and breakdown, classroom policies and expectations, important dates and deadlines, and contact information placeholders.

Format the syllabus in a clear, professional structure that teachers can directly use or easily customize.`,
	BuildPrompt: func(c *Context) string {
		foundationNote := ""
		if c.EducationalFoundation != "" {
			foundationNote = " and the educational foundation principles outlined above"
		}
		return fmt.Sprintf(`Create a comprehensive course syllabus for the following literature course:

%s
%s
**Additional Context:**
%s

**Focus Areas:**
%s

%sCreate a complete, ready-to-use syllabus that is professional, comprehensive, and aligned with %s state standards%s. Include specific week-by-week breakdowns for the %s duration.`,
			courseDetails(c), specialConsiderations(c), additionalContext(c), focusAreas(c),
			foundationBlock(c, "Your syllabus should embody and reference these principles:"),
			c.State, foundationNote, c.Duration)
	},
}

var materialsTask = Task{
	Type: TypeMaterials,
	Name: "Materials Curator",
	SystemPrompt: `You are an expert at identifying and organizing all necessary materials for literature courses.

Create comprehensive materials lists that include: required texts (primary and supplementary), optional reading materials, technology requirements, classroom supplies, handouts and worksheets, multimedia resources, assessment materials, and differentiation materials for special education needs.

Organize materials by category and priority (required vs. recommended). Include specific editions, ISBNs when applicable, and free/low-cost alternatives.`,
	BuildPrompt: func(c *Context) string {
		return fmt.Sprintf(`Create a comprehensive materials list for teaching %s to %s grade students over %s.

**Course Context:**
- State: %s
- Learning Goals: %s
- Special Needs: %s

Include:
1. Required texts (with ISBN and editions)
2. Supplementary reading materials
3. Technology and digital resources
4. Classroom supplies
5. Multimedia resources
6. Assessment materials
7. Differentiation resources for special education students
8. Free/open-source alternatives where available

Organize by category and indicate which items are essential vs. recommended.`,
			c.BookTitle, c.Grade, c.Duration, c.State, c.LearningObjectives, specialEducationJSON(c))
	},
}

var gradingTask = Task{
	Type: TypeGrading,
	Name: "Assessment Architect",
	SystemPrompt: `You are an expert in educational assessment and creating fair, comprehensive grading criteria for literature courses.

Create detailed grading criteria that includes: overall grade breakdown, detailed rubrics for major assignments, participation and engagement criteria, late work and makeup policies, extra credit opportunities, grading scales and standards, specific criteria for different assignment types, and accommodations for special education students.

Ensure all criteria are clear, measurable, and aligned with learning objectives.`,
	BuildPrompt: func(c *Context) string {
		extra := ""
		tail := "Make criteria specific, measurable, and easy for students to understand."
		if c.EducationalFoundation != "" {
			extra = "\n10. Assessment practices aligned with learning science principles (retrieval practice, formative feedback, growth-oriented grading)"
			tail = "Make criteria specific, measurable, and easy for students to understand, while embodying the educational foundation principles above."
		}
		return fmt.Sprintf(`Create comprehensive grading criteria for a %s %s course for %s grade.

**Course Focus:**
%s

**Special Education Considerations:**
%s

%sInclude:
1. Overall grade breakdown (what percentage for tests, quizzes, homework, participation, etc.)
2. Detailed rubrics for major assessments
3. Rubric for essay writing (if applicable)
4. Participation and discussion criteria
5. Late work and makeup policies
6. Grading scale (A-F with percentages)
7. Extra credit opportunities
8. Accommodations for IEP/ELL/Gifted students
9. Standards-based grading alignment%s

%s`,
			c.Duration, c.BookTitle, c.Grade, c.LearningObjectives, specialEducationJSON(c),
			foundationBlock(c, "Your grading criteria should embody these principles, particularly around retrieval practice, growth mindset, and equitable assessment:"),
			extra, tail)
	},
}

var testsTask = Task{
	Type: TypeTests,
	Name: "Test Designer",
	SystemPrompt: `You are an expert at creating rigorous, fair, and comprehensive literature tests that assess deep understanding.

Create tests that include: multiple question types (multiple choice, short answer, essay), questions at different Bloom's Taxonomy levels, text-based questions requiring close reading, analysis and interpretation questions, thematic and symbolic understanding, historical and cultural context, answer keys with detailed explanations, and differentiated versions for special education needs.

Tests should be challenging but fair, aligned with learning objectives, and assess both knowledge and critical thinking.`,
	BuildPrompt: func(c *Context) string {
		return fmt.Sprintf(`Create comprehensive tests for a %s course on %s for %s grade students.

**Learning Objectives:**
%s

**Course Focus Areas:**
%s

**Special Education Needs:**
%s

Create:
1. Midterm Test (if applicable for %s duration) — multiple choice (20-30 questions), short answer (5-10), essay questions (2-3 options)
2. Final Examination — comprehensive coverage, multiple choice (30-40), short answer (8-12), essay questions (3-4 options)
3. Unit/Chapter Tests (3-5 depending on duration) — focused on specific sections, mixed question types
4. Answer keys with detailed explanations

Include differentiated versions for IEP, ELL, and gifted students where applicable. All questions should assess critical thinking, not just recall.`,
			c.Duration, c.BookTitle, c.Grade, c.LearningObjectives, focusAreas(c), specialEducationJSON(c), c.Duration)
	},
}

var quizzesTask = Task{
	Type: TypeQuizzes,
	Name: "Quiz Master",
	SystemPrompt: `You are an expert at creating effective formative assessment quizzes for literature courses.

Create quizzes that check reading comprehension, assess understanding of key concepts, are quick to grade (mostly objective questions), include some critical thinking questions, can be administered frequently, and include differentiated versions.

Quizzes should be shorter than tests (10-20 minutes) and focus on recent material.`,
	BuildPrompt: func(c *Context) string {
		return fmt.Sprintf(`Create a comprehensive set of quizzes for %s (%s course, %s grade).

**Course Goals:**
%s

**Focus Areas:**
%s

Create quizzes for:
1. Reading Comprehension Quizzes (after each major section/chapter) — 10-15 questions each, mix of multiple choice and short answer, focused on plot, character, setting
2. Vocabulary Quizzes (3-5) — context-based vocabulary from the text
3. Quote Identification Quizzes (2-3) — identify speaker, context, significance
4. Theme and Symbol Quizzes (2-3) — major themes, symbol recognition and interpretation
5. Weekly Check-in Quizzes — general understanding and engagement

Include answer keys for all quizzes, with a total count appropriate for %s.`,
			c.BookTitle, c.Duration, c.Grade, c.LearningObjectives, focusAreas(c), c.Duration)
	},
}

var discussionsTask = Task{
	Type: TypeDiscussions,
	Name: "Discussion Facilitator",
	SystemPrompt: `You are an expert at creating engaging, thought-provoking discussion questions for literature courses.

Create discussion questions that promote critical thinking and analysis, encourage multiple perspectives, connect to students' lives, address themes, symbols, and literary devices, spark debate, work for different discussion formats, and are open-ended with no single "right" answer.

Include discussion facilitator notes with potential responses and follow-up questions.`,
	BuildPrompt: func(c *Context) string {
		return fmt.Sprintf(`Create comprehensive discussion questions for %s (%s grade, %s).

**Learning Focus:**
%s

**Emphasis Areas:**
%s

Create:
1. Pre-Reading Discussion Questions (3-5) — activate prior knowledge, connect to students' experiences
2. During-Reading Discussion Questions (organized by section/chapter) — comprehension checks, character analysis, theme exploration
3. Post-Reading Discussion Questions (10-15) — theme analysis, character development, real-world connections
4. Socratic Seminar Questions (5-8 open-ended) — complex, debate-worthy, connected to contemporary issues
5. Small Group Discussion Prompts (8-12) — cooperative learning, role-specific questions, jigsaw activities

Include facilitator notes with possible student responses, follow-up questions, and common misconceptions to address.`,
			c.BookTitle, c.Grade, c.Duration, c.LearningObjectives, focusAreas(c))
	},
}

var homeworkTask = Task{
	Type: TypeHomework,
	Name: "Assignment Designer",
	SystemPrompt: `You are an expert at creating meaningful, varied homework assignments for literature courses.

Create homework that reinforces daily learning, prepares for the next class, develops critical thinking, includes variety (reading, writing, creative, analytical), is appropriately challenging, can be completed independently in 30-60 minutes, and includes clear instructions and rubrics.

Include differentiated versions for special education needs.`,
	BuildPrompt: func(c *Context) string {
		return fmt.Sprintf(`Create a comprehensive homework assignment plan for %s (%s grade, %s).

**Course Objectives:**
%s

**Focus Areas:**
%s

**Special Education:**
%s

Create varied homework assignments including:
1. Reading assignments with annotation guides and reading journals
2. Writing assignments (10-15 total) — response journals, character analyses, theme essays, creative responses
3. Vocabulary work (5-8 assignments)
4. Creative projects (3-5 options) — alternative perspectives, modern adaptations, visual representations
5. Research assignments (2-4) — historical context, author biography, literary criticism
6. Pre-class preparation — quick writes, prediction activities

For each assignment include clear instructions, estimated time, grading criteria, differentiated versions (IEP/ELL/Gifted if applicable), and due dates aligned with the %s timeline.`,
			c.BookTitle, c.Grade, c.Duration, c.LearningObjectives, focusAreas(c), specialEducationJSON(c), c.Duration)
	},
}

var readingTask = Task{
	Type: TypeReading,
	Name: "Reading Coordinator",
	SystemPrompt: `You are an expert at creating effective reading schedules for literature courses.

Create reading plans that break text into manageable chunks, align with course duration, balance pacing, consider difficulty of sections, include checkpoints and milestones, allow time for processing and discussion, account for a typical school calendar, provide alternative pacing options, and include strategies for struggling readers.

Reading plans should be realistic and flexible.`,
	BuildPrompt: func(c *Context) string {
		return fmt.Sprintf(`Create a detailed reading plan for %s in a %s course for %s grade students.

**Course Timeline:**
%s

**Learning Goals:**
%s

**Special Considerations:**
%s

Create:
1. Comprehensive Reading Schedule — sections with page numbers, day-by-day or week-by-week pacing, estimated reading time, natural stopping points
2. Reading Milestones — completion checkpoints and a progress tracking system
3. Pacing Options — standard, accelerated, and modified (IEP) paces
4. Reading Support Strategies — annotation techniques, comprehension strategies, note-taking systems, study guide checkpoints
5. Catch-Up and Extension Plans — for students behind and ahead
6. Calendar Integration — school breaks, buffer days for tests/projects

Format as a clear, easy-to-follow schedule that students can use independently.`,
			c.BookTitle, c.Duration, c.Grade, c.Duration, c.LearningObjectives, specialEducationJSON(c))
	},
}

var lessonsTask = Task{
	Type: TypeLessons,
	Name: "Master Teacher",
	SystemPrompt: `You are a master literature teacher creating detailed, engaging lesson plans.

Create lesson plans that follow proven pedagogical models, include clear daily learning objectives, have engaging warm-ups, incorporate varied instructional strategies, include formative assessments, provide differentiation strategies, connect to standards, include timing for each activity, and have closure/reflection activities.

Lesson plans should be detailed enough for a substitute teacher to follow while allowing for teacher flexibility and adaptation.`,
	BuildPrompt: func(c *Context) string {
		tail := "Make lessons engaging, student-centered, and aligned with best practices in literature instruction."
		if c.EducationalFoundation != "" {
			tail = "Make lessons engaging, student-centered, and aligned with best practices in literature instruction. Ensure all lessons embody the educational foundation principles, incorporating retrieval practice, student engagement strategies from Lemov, democratic classroom practices from Dewey, and cognitive science principles from Make It Stick."
		}
		ctx := c.AdditionalContext
		if ctx == "" {
			ctx = "Standard high school classroom"
		}
		return fmt.Sprintf(`Create comprehensive daily lesson plans for teaching %s over %s to %s grade students.

**Learning Objectives:**
%s

**Focus Areas:**
%s

**Context:**
%s

**Special Education:**
%s

%sCreate detailed lesson plans for the entire %s unit including:

1. Unit Overview — essential questions, enduring understandings, standards alignment (%s), assessment overview
2. Daily Lesson Plans — each with objectives, standards, materials, time allocation, and the structure: Warm-Up/Hook (5-10 min), Direct Instruction (10-15 min), Guided Practice (15-20 min), Independent Practice (15-20 min), Closure/Reflection (5-10 min); with differentiation for IEP/ELL/Gifted and a homework assignment
3. Key Lessons for Major Themes — close reading exercises, literary analysis activities, writing workshops, Socratic seminars
4. Assessment Lessons — test preparation, review activities, essay writing workshops

%s`,
			c.BookTitle, c.Duration, c.Grade, c.LearningObjectives, focusAreas(c), ctx, specialEducationJSON(c),
			foundationBlock(c, "Your lesson plans should embody these principles, particularly around student engagement, retrieval practice, and democratic classroom practices:"),
			c.Duration, c.State, tail)
	},
}
