package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type calcInput struct {
	Value int    `json:"value" jsonschema:"the number to double"`
	Note  string `json:"note,omitempty"`
}

type calcOutput struct {
	Result int `json:"result"`
}

func double(_ context.Context, input calcInput) (calcOutput, error) {
	return calcOutput{Result: input.Value * 2}, nil
}

func TestNewTool_Info(t *testing.T) {
	calc := NewTool("calc", double, WithDescription("doubles a number"))

	info := calc.Info()
	if info.Name != "calc" || info.Description != "doubles a number" {
		t.Errorf("unexpected info %+v", info)
	}
	if info.InputSchema == nil || info.InputSchema.Type != "object" {
		t.Fatalf("expected object schema, got %+v", info.InputSchema)
	}
	value, ok := info.InputSchema.Properties["value"]
	if !ok {
		t.Fatal("schema is missing the value property")
	}
	if value.Description != "the number to double" {
		t.Errorf("unexpected description %q", value.Description)
	}
	if len(info.InputSchema.Required) != 1 || info.InputSchema.Required[0] != "value" {
		t.Errorf("expected only value to be required, got %v", info.InputSchema.Required)
	}
}

func TestTool_Call(t *testing.T) {
	calc := NewTool("calc", double)

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "valid json", input: `{"value": 21}`, want: 42},
		{name: "malformed json repaired", input: `{value: 5,}`, want: 10},
		{name: "empty arguments", input: ``, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := calc.Call(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got calcOutput
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("output is not JSON: %v", err)
			}
			if got.Result != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got.Result)
			}
		})
	}
}

func TestTool_CallInputError(t *testing.T) {
	calc := NewTool("calc", double)

	_, err := calc.Call(context.Background(), `{"value": "many"}`)

	var inputErr *InputError
	if !errors.As(err, &inputErr) || inputErr.Tool != "calc" {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestTool_CallFunctionError(t *testing.T) {
	sentinel := errors.New("boom")
	failing := NewTool("fail", func(context.Context, calcInput) (calcOutput, error) {
		return calcOutput{}, sentinel
	})

	if _, err := failing.Call(context.Background(), `{}`); !errors.Is(err, sentinel) {
		t.Errorf("expected function error to be returned unchanged, got %v", err)
	}
}
