package errors

import (
	stdErrors "errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "site.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		file, exists := err.Context().GetString("file")
		if !exists || file != "site.yaml" {
			t.Errorf("expected context file=site.yaml, got %v", file)
		}
	})

	t.Run("Wrapped classification is found", func(t *testing.T) {
		sentinel := stdErrors.New("metadata block missing")
		err := StructureError("cannot render document").
			WithContext("document", "content/a.md").
			WithCause(sentinel).
			Build()
		wrapped := fmt.Errorf("site blog: %w", err)

		if !IsClassified(wrapped) {
			t.Fatal("expected wrapped error to be classified")
		}
		if !HasCategory(wrapped, CategoryStructure) {
			t.Errorf("expected structure category, got %s", GetCategory(wrapped))
		}
		if !stdErrors.Is(wrapped, sentinel) {
			t.Error("expected errors.Is to reach the sentinel cause")
		}
		doc, ok := ContextString(wrapped, "document")
		if !ok || doc != "content/a.md" {
			t.Errorf("expected document context, got %q", doc)
		}
	})

	t.Run("Joined errors", func(t *testing.T) {
		joined := stdErrors.Join(
			stdErrors.New("plain"),
			FileSystemError("read failed").Build(),
		)
		if GetCategory(joined) != CategoryFileSystem {
			t.Errorf("expected filesystem category from joined error, got %s", GetCategory(joined))
		}
	})

	t.Run("Unclassified", func(t *testing.T) {
		err := stdErrors.New("boom")
		if IsClassified(err) {
			t.Error("plain error must not be classified")
		}
		if GetCategory(err) != CategoryInternal {
			t.Errorf("expected internal fallback, got %s", GetCategory(err))
		}
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := HandlerError("render failed").Build()
		derived := base.WithContext("handler", "index")
		if _, ok := base.Context().GetString("handler"); ok {
			t.Error("original error context must not change")
		}
		if h, _ := derived.Context().GetString("handler"); h != "index" {
			t.Errorf("expected handler=index, got %q", h)
		}
		if !stdErrors.Is(derived, base) {
			t.Error("derived error should match base by category and message")
		}
	})
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad flag").Build(), expected: 2},
		{name: "config", err: ConfigError("bad config").Build(), expected: 7},
		{name: "filesystem", err: FileSystemError("missing").Build(), expected: 11},
		{name: "structure", err: StructureError("no metadata").Build(), expected: 11},
		{name: "handler", err: HandlerError("boom").Build(), expected: 11},
		{name: "join", err: JoinError("worker panicked").Build(), expected: 12},
		{name: "internal", err: InternalError("bug").Build(), expected: 10},
		{name: "wrapped config", err: fmt.Errorf("site: %w", ConfigError("bad").Build()), expected: 7},
		{name: "unclassified", err: stdErrors.New("unknown"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	internal := InternalError("internal issue").Build()
	if got := quiet.FormatError(internal); got != "Internal error occurred (use -v for details)" {
		t.Errorf("unexpected quiet internal format: %q", got)
	}
	if got := verbose.FormatError(internal); got != internal.Error() {
		t.Errorf("unexpected verbose internal format: %q", got)
	}
	cfg := ConfigError("bad config").Build()
	if got := quiet.FormatError(cfg); got != "[config:fatal] bad config" {
		t.Errorf("unexpected config format: %q", got)
	}
	if got := quiet.FormatError(stdErrors.New("oops")); got != "Error: oops" {
		t.Errorf("unexpected unclassified format: %q", got)
	}
	if got := quiet.FormatError(nil); got != "" {
		t.Errorf("expected empty string for nil, got %q", got)
	}
}
