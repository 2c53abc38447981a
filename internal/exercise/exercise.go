// Package exercise holds the Growing Code exercise registry, the menu that
// maps keys to exercises, and the runner that invokes them with friendly
// diagnostics.
package exercise

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"growingcode/internal/config"
	"growingcode/internal/harvest"

	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("exercise not found")
	ErrNoFunction    = errors.New("exercise has no function")
	ErrInvalidChoice = errors.New("invalid choice")
	ErrDuplicate     = errors.New("exercise already registered")
)

// Func is the body of an exercise.
type Func func(ctx context.Context, env *Env) error

// Exercise is one runnable lesson.
type Exercise struct {
	Name    string
	Summary string
	Doc     string // Markdown shown by `grow about`
	Run     Func
}

// Env is what an exercise may touch: its input, its output, and settings.
type Env struct {
	In      *bufio.Reader
	Out     io.Writer
	Harvest HarvestSettings
	Logger  *zap.Logger
}

// NewEnv returns an Env with default harvest settings and a no-op logger.
func NewEnv(in io.Reader, out io.Writer) *Env {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Env{
		In:      br,
		Out:     out,
		Harvest: DefaultHarvestSettings(),
		Logger:  zap.NewNop(),
	}
}

// HarvestSettings carries the counter policies and messages into exercises.
type HarvestSettings struct {
	Options           []harvest.Option
	Prompt            string
	ProgressFormat    string
	CompletionMessage string
}

// DefaultHarvestSettings returns the built-in counter behaviour.
func DefaultHarvestSettings() HarvestSettings {
	return HarvestSettings{
		Prompt:            harvest.DefaultPrompt,
		ProgressFormat:    harvest.DefaultProgressFormat,
		CompletionMessage: harvest.DefaultCompletionMessage,
	}
}

// HarvestSettingsFrom converts the harvest config section.
func HarvestSettingsFrom(cfg config.HarvestConfig) (HarvestSettings, error) {
	zero, err := harvest.ParseZeroDayPolicy(cfg.ZeroDayPolicy)
	if err != nil {
		return HarvestSettings{}, err
	}
	neg, err := harvest.ParseNegativePolicy(cfg.NegativePolicy)
	if err != nil {
		return HarvestSettings{}, err
	}

	s := DefaultHarvestSettings()
	s.Options = []harvest.Option{
		harvest.WithZeroDayPolicy(zero),
		harvest.WithNegativePolicy(neg),
	}
	if cfg.Prompt != "" {
		s.Prompt = cfg.Prompt
	}
	if cfg.ProgressFormat != "" {
		s.ProgressFormat = cfg.ProgressFormat
	}
	if cfg.CompletionMessage != "" {
		s.CompletionMessage = cfg.CompletionMessage
	}
	return s, nil
}

// source returns the prompt-backed target source for env.
func (e *Env) source() harvest.TargetSource {
	return &harvest.PromptSource{In: e.In, Out: e.Out, Prompt: e.Harvest.Prompt}
}

// reporter returns the line reporter for env.
func (e *Env) reporter() harvest.Reporter {
	return &harvest.WriterReporter{
		W:                 e.Out,
		ProgressFormat:    e.Harvest.ProgressFormat,
		CompletionMessage: e.Harvest.CompletionMessage,
	}
}

// Registry stores exercises in registration order.
type Registry struct {
	order     []string
	exercises map[string]Exercise
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{exercises: make(map[string]Exercise)}
}

// Register adds an exercise. Names must be unique.
func (r *Registry) Register(ex Exercise) error {
	if ex.Name == "" {
		return fmt.Errorf("exercise name is empty")
	}
	if _, exists := r.exercises[ex.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, ex.Name)
	}
	r.exercises[ex.Name] = ex
	r.order = append(r.order, ex.Name)
	return nil
}

// Lookup finds an exercise by name.
func (r *Registry) Lookup(name string) (Exercise, error) {
	ex, ok := r.exercises[name]
	if !ok {
		return Exercise{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return ex, nil
}

// Names returns exercise names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// List returns exercises in registration order.
func (r *Registry) List() []Exercise {
	list := make([]Exercise, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.exercises[name])
	}
	return list
}
