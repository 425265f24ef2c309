package curriculum

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/currforge/currforge/agent"
	"github.com/currforge/currforge/comms"
	"github.com/currforge/currforge/pdf"
	"github.com/currforge/currforge/provider"
)

// Renderer turns generated text into a PDF artifact.
type Renderer interface {
	Render(filename, title, subtitle, content string) (*pdf.Artifact, error)
}

// TaskResult is the outcome of one agent task. A failed task has Error set
// and no file; its raw text is discarded.
type TaskResult struct {
	Title    string `json:"title"`
	Content  string `json:"content,omitempty"`
	Filename string `json:"filename,omitempty"`
	Pages    int    `json:"pages"`
	Path     string `json:"path,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Failed reports whether the task produced no document.
func (r *TaskResult) Failed() bool { return r.Error != "" }

// RequestSummary echoes the key request fields back in the result.
type RequestSummary struct {
	Book     string `json:"book"`
	Grade    string `json:"grade"`
	Duration string `json:"duration"`
}

// RequestResult is the outcome of a full generation run. Success means the
// run itself finished; individual tasks may still have failed, and there is
// one entry in Results for every task in the pipeline regardless.
type RequestResult struct {
	Success   bool                       `json:"success"`
	Timestamp time.Time                  `json:"timestamp"`
	Context   RequestSummary             `json:"context"`
	Results   map[agent.Type]*TaskResult `json:"results"`
}

// Documents returns the results that produced a file, in pipeline order.
func (r *RequestResult) Documents() []*TaskResult {
	var out []*TaskResult
	for _, task := range agent.Registry() {
		if res, ok := r.Results[task.Type]; ok && !res.Failed() {
			out = append(out, res)
		}
	}
	return out
}

// Generator runs the agent pipeline for one request at a time.
type Generator struct {
	provider provider.Provider
	renderer Renderer
	bus      comms.Bus
	log      *slog.Logger

	// Progress, if set, is called before each task with a human-readable
	// description of where the run is.
	Progress func(requestID, detail string)
}

// NewGenerator wires a generator from its collaborators.
func NewGenerator(p provider.Provider, r Renderer, bus comms.Bus, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{provider: p, renderer: r, bus: bus, log: log}
}

// Run executes every registered agent task in order against the context.
// Tasks fail independently: a provider or render error is recorded in that
// task's result and the run continues. The foundation task is special; its
// output is folded into the context so every later agent can build on it.
func (g *Generator) Run(ctx context.Context, requestID string, c *agent.Context) *RequestResult {
	tasks := agent.Registry()
	result := &RequestResult{
		Success:   true,
		Timestamp: time.Now().UTC(),
		Context:   RequestSummary{Book: c.BookTitle, Grade: c.Grade, Duration: c.Duration},
		Results:   make(map[agent.Type]*TaskResult, len(tasks)),
	}

	for i, task := range tasks {
		detail := fmt.Sprintf("generating %s (%d/%d)", task.Type, i+1, len(tasks))
		if g.Progress != nil {
			g.Progress(requestID, detail)
		}
		g.publish(comms.EventTaskStarted, requestID, task.Type, detail)
		g.log.Info("generating document", "request", requestID, "task", task.Type, "agent", task.Name)

		result.Results[task.Type] = g.runTask(ctx, requestID, task, c)

		if res := result.Results[task.Type]; res.Failed() {
			g.log.Warn("task failed", "request", requestID, "task", task.Type, "error", res.Error)
			g.publish(comms.EventTaskFailed, requestID, task.Type, res.Error)
		} else {
			g.log.Info("task complete", "request", requestID, "task", task.Type, "pages", res.Pages)
			g.publish(comms.EventTaskCompleted, requestID, task.Type, res.Filename)
		}
	}

	g.publish(comms.EventRunCompleted, requestID, "", "")
	return result
}

func (g *Generator) runTask(ctx context.Context, requestID string, task agent.Task, c *agent.Context) *TaskResult {
	res := &TaskResult{Title: agent.DocumentTitle(task.Type)}

	resp, err := g.provider.Generate(ctx, task.SystemPrompt, task.BuildPrompt(c))
	if err != nil {
		res.Error = fmt.Sprintf("generate: %v", err)
		return res
	}

	// Later agents see the foundation only once it actually succeeded.
	if task.Type == agent.TypeFoundation {
		c.EducationalFoundation = resp.Content
		g.log.Info("educational foundation established", "request", requestID, "chars", len(resp.Content))
	}

	subtitle := fmt.Sprintf("%s | Grade %s | %s", c.BookTitle, c.Grade, c.Duration)
	artifact, err := g.renderer.Render(pdf.Filename(string(task.Type), c.Grade), res.Title, subtitle, resp.Content)
	if err != nil {
		res.Error = fmt.Sprintf("render: %v", err)
		return res
	}

	res.Content = resp.Content
	res.Filename = artifact.Filename
	res.Pages = artifact.Pages
	res.Path = artifact.Path
	return res
}

func (g *Generator) publish(eventType, requestID string, taskType agent.Type, detail string) {
	if g.bus == nil {
		return
	}
	g.bus.Publish(comms.Message{
		Type:      eventType,
		RequestID: requestID,
		TaskType:  string(taskType),
		Detail:    detail,
	})
}
