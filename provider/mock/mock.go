// Package mock provides a canned-response provider for tests and local
// development without API keys.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/currforge/currforge/provider"
)

func init() {
	provider.Register("mock", func(cfg provider.Config) (provider.Provider, error) {
		return New(), nil
	})
}

// Provider returns canned content. Responses and errors can be scripted
// per call with Script and FailWith.
type Provider struct {
	mu       sync.Mutex
	calls    int
	script   []string
	failures map[int]error
}

// New creates a mock provider that echoes the prompt headline by default.
func New() *Provider {
	return &Provider{failures: make(map[int]error)}
}

func (p *Provider) Name() string { return "mock" }

// Script sets the responses returned by successive Generate calls. Once the
// script is exhausted, the default echo response is used.
func (p *Provider) Script(responses ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.script = responses
}

// FailWith makes the nth Generate call (0-based) return err.
func (p *Provider) FailWith(call int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[call] = err
}

// Calls reports how many times Generate has been invoked.
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *Provider) Generate(ctx context.Context, system, prompt string) (*provider.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	call := p.calls
	p.calls++
	var content string
	if call < len(p.script) {
		content = p.script[call]
	}
	err := p.failures[call]
	p.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if content == "" {
		content = fmt.Sprintf("mock response %d for prompt of %d characters", call+1, len(prompt))
	}
	return &provider.Response{
		Content: content,
		Model:   "mock",
		Usage:   provider.Usage{InputTokens: len(system) + len(prompt), OutputTokens: len(content)},
	}, nil
}
