// Package prompt walks a template schema as an interactive questionnaire and
// feeds the answers into a form engine. It is an optional collection surface
// for operator tooling; the engine itself stays the single validation point.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/templata/go-profilegen/pkg/form"
	"github.com/templata/go-profilegen/pkg/schema"
	"github.com/templata/go-profilegen/pkg/upload"
)

// Collector asks one question per schema field and records answers on the
// engine as it goes.
type Collector struct {
	driver Driver
}

// Option configures a Collector.
type Option func(*Collector)

// WithDriver substitutes the terminal driver, typically with a scripted fake
// in tests.
func WithDriver(driver Driver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// New constructs a collector with the survey-backed driver.
func New(options ...Option) *Collector {
	c := &Collector{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Collect walks the engine's schema in declaration order. Text kinds prompt
// for input; file-set kinds prompt for local paths and stage them through
// the engine's uploader. Collect stops at the first driver error so an
// interrupt does not leave half-asked state ambiguous.
func (c *Collector) Collect(ctx context.Context, engine *form.Engine) error {
	if engine == nil {
		return errors.New("prompt: engine is required")
	}
	for _, field := range engine.Schema().Fields {
		if err := c.collectField(ctx, engine, field); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) collectField(ctx context.Context, engine *form.Engine, field schema.Field) error {
	switch field.Kind {
	case schema.KindFileSet:
		return c.collectFiles(ctx, engine, field)
	case schema.KindMultiline:
		value, err := c.driver.TextArea(ctx, TextAreaConfig{
			Message: message(field),
			Help:    field.Help,
		})
		if err != nil {
			return err
		}
		return setIfAnswered(engine, field, value)
	default:
		value, err := c.driver.Input(ctx, InputConfig{
			Message:     message(field),
			Help:        field.Help,
			Placeholder: field.Placeholder,
			Validator:   requiredValidator(field),
		})
		if err != nil {
			return err
		}
		return setIfAnswered(engine, field, value)
	}
}

func (c *Collector) collectFiles(ctx context.Context, engine *form.Engine, field schema.Field) error {
	help := field.Help
	if help == "" {
		help = fmt.Sprintf("Up to %d file(s), comma separated paths. Leave empty to skip.", field.Files.MaxCount)
	}
	answer, err := c.driver.Input(ctx, InputConfig{
		Message:   message(field),
		Help:      help,
		Validator: requiredValidator(field),
	})
	if err != nil {
		return err
	}
	paths := splitPaths(answer)
	if len(paths) == 0 {
		return nil
	}

	files := make([]upload.File, 0, len(paths))
	for _, path := range paths {
		file, err := upload.FromPath(path)
		if err != nil {
			return err
		}
		files = append(files, file)
	}
	return engine.SelectFiles(ctx, field.Name, files)
}

func message(field schema.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func setIfAnswered(engine *form.Engine, field schema.Field, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return engine.SetValue(field.Name, value)
}

func requiredValidator(field schema.Field) func(string) error {
	if !field.Required {
		return nil
	}
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", message(field))
		}
		return nil
	}
}

func splitPaths(answer string) []string {
	parts := strings.Split(answer, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
