package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/leofalp/livesearch/core/parse"
	"github.com/leofalp/livesearch/internal/utils"
)

// Info is the metadata used to advertise a tool.
type Info struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

// Tool is a typed, callable tool. The input schema is derived from I by
// reflection, so json and jsonschema struct tags on I shape what callers see.
type Tool[I, O any] struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)
	logger      *slog.Logger
}

// GenericTool is the type-erased view of a Tool used by catalogs and
// transports.
type GenericTool interface {
	Info() Info

	// Call decodes inputJSON, runs the tool and returns its JSON output.
	Call(ctx context.Context, inputJSON string) (string, error)
}

type toolOptions struct {
	description string
	logger      *slog.Logger
}

// Option configures a Tool.
type Option func(*toolOptions)

// WithDescription sets the description surfaced to callers.
func WithDescription(description string) Option {
	return func(o *toolOptions) {
		o.description = description
	}
}

// WithLogger sets the logger used for call tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(o *toolOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewTool constructs a Tool. It panics if no schema can be derived for I,
// which only happens for input types JSON cannot represent.
//
// Example:
//
//	webTool := tool.NewTool("search_web", searchWeb,
//	    tool.WithDescription("Search the web in real time."),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), opts ...Option) *Tool[I, O] {
	o := toolOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	schema, err := jsonschema.For[I](nil)
	if err != nil {
		panic(fmt.Sprintf("tool %s: cannot derive input schema: %v", name, err))
	}

	return &Tool[I, O]{
		Name:        name,
		Description: o.description,
		InputSchema: schema,
		Function:    function,
		logger:      o.logger,
	}
}

// Info returns the tool metadata.
func (t *Tool[I, O]) Info() Info {
	return Info{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema,
	}
}

// Call decodes inputJSON into I, tolerating the malformed JSON that language
// models commonly produce, runs the function and marshals its output.
func (t *Tool[I, O]) Call(ctx context.Context, inputJSON string) (string, error) {
	start := time.Now()
	t.logger.DebugContext(ctx, "tool call started",
		"tool", t.Name,
		"input", utils.TruncateForLog(inputJSON, 200),
	)

	input, err := parse.DecodeAs[I](inputJSON)
	if err != nil {
		err = &InputError{Tool: t.Name, Err: err}
		t.logger.WarnContext(ctx, "tool input rejected", "tool", t.Name, "error", err.Error())
		return "", err
	}

	output, err := t.Function(ctx, input)
	if err != nil {
		t.logger.DebugContext(ctx, "tool call failed",
			"tool", t.Name,
			"duration", time.Since(start),
			"error", err.Error(),
		)
		return "", err
	}

	encoded, err := json.Marshal(output)
	if err != nil {
		return "", fmt.Errorf("tool %s: marshal output: %w", t.Name, err)
	}

	t.logger.DebugContext(ctx, "tool call completed",
		"tool", t.Name,
		"duration", time.Since(start),
		"output_bytes", len(encoded),
	)
	return string(encoded), nil
}

// InputError reports tool arguments that could not be decoded.
type InputError struct {
	Tool string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("tool %s: invalid arguments: %v", e.Tool, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }
