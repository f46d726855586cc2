package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "hook outside component",
			code:    "E001",
			wantMsg: "Hook called outside component evaluation",
			wantCat: CategoryRuntime,
		},
		{
			name:    "host error",
			code:    "E062",
			wantMsg: "Unknown event target",
			wantCat: CategoryHost,
		},
		{
			name:    "config error",
			code:    "E141",
			wantMsg: "Configuration not found",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "app %q not found", "todo")
	if err.Message != `app "todo" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `app "todo" not found`)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestWeftError_Error(t *testing.T) {
	err := New("E010")
	if got, want := err.Error(), "E010: Scheduler closed"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err2 := &WeftError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}

	err3 := New("E120").Wrap(fmt.Errorf("unexpected EOF"))
	if got, want := err3.Error(), "E120: Failed to read configuration: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWeftError_Builders(t *testing.T) {
	err := New("E122").
		WithLocation("weft.yaml", 4).
		WithDetail("scheduler.yieldThreshold must be positive").
		WithSuggestion("Set it to 1ms")

	if err.Location == nil || err.Location.File != "weft.yaml" || err.Location.Line != 4 {
		t.Errorf("Location = %+v", err.Location)
	}
	if err.Detail != "scheduler.yieldThreshold must be positive" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Suggestion != "Set it to 1ms" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
}

func TestWeftError_Wrap(t *testing.T) {
	inner := fmt.Errorf("disk full")
	err := New("E101").Wrap(inner)

	if !stderrors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
	if !stderrors.Is(err, New("E101")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, New("E102")) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil) should be nil")
	}

	plain := fmt.Errorf("boom")
	we := FromError(plain, "E103")
	if we.Code != "E103" || we.Wrapped != plain {
		t.Errorf("FromError(plain) = %+v", we)
	}

	orig := New("E102")
	if got := FromError(fmt.Errorf("ctx: %w", orig), "E103"); got != orig {
		t.Errorf("FromError should return the existing WeftError, got %+v", got)
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("load: %w", New("E120").Wrap(New("E141")))
	if !HasCode(err, "E120") {
		t.Error("HasCode(E120) = false")
	}
	if !HasCode(err, "E141") {
		t.Error("HasCode(E141) = false, want true for nested code")
	}
	if HasCode(err, "E122") {
		t.Error("HasCode(E122) = true")
	}
	if HasCode(fmt.Errorf("plain"), "E120") {
		t.Error("HasCode on plain error = true")
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		loc  *Location
		want string
	}{
		{nil, ""},
		{&Location{File: "weft.json"}, "weft.json"},
		{&Location{File: "weft.yaml", Line: 3}, "weft.yaml:3"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("Location.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E141").
		WithLocation("/app/weft.json", 0).
		WithSuggestion("Run from the project root")
	out := err.Format()

	for _, want := range []string{
		"ERROR E141: Configuration not found",
		"/app/weft.json",
		"No weft.json or weft.yaml was found.",
		"Hint: Run from the project root",
		"Learn more: https://weft.dev/docs/errors/E141",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() contains ANSI codes with colors disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E122").WithLocation("weft.json", 2)
	if got, want := err.FormatCompact(), "weft.json:2: E122: Invalid configuration value"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E101").WithLocation("snapshots.db", 0).Wrap(fmt.Errorf("timeout"))

	var decoded map[string]any
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &decoded); jerr != nil {
		t.Fatalf("FormatJSON() is not valid JSON: %v", jerr)
	}
	if decoded["code"] != "E101" {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["category"] != "storage" {
		t.Errorf("category = %v", decoded["category"])
	}
	if decoded["cause"] != "timeout" {
		t.Errorf("cause = %v", decoded["cause"])
	}
	loc, ok := decoded["location"].(map[string]any)
	if !ok || loc["file"] != "snapshots.db" {
		t.Errorf("location = %v", decoded["location"])
	}
}

func TestRegistry(t *testing.T) {
	codes := Codes()
	if len(codes) == 0 {
		t.Fatal("no codes registered")
	}
	for _, code := range codes {
		tmpl, ok := Lookup(code)
		if !ok {
			t.Errorf("Lookup(%s) failed", code)
			continue
		}
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("%s has empty message or category", code)
		}
		if !strings.HasSuffix(tmpl.DocURL, code) {
			t.Errorf("%s DocURL = %q", code, tmpl.DocURL)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  int
	}{
		{"", 10, 0},
		{"short", 10, 1},
		{"one two three four five six", 10, 3},
	}
	for _, tt := range tests {
		lines := wrapText(tt.text, tt.width)
		if len(lines) != tt.want {
			t.Errorf("wrapText(%q, %d) = %d lines, want %d", tt.text, tt.width, len(lines), tt.want)
		}
		for _, l := range lines {
			if len(l) > tt.width {
				t.Errorf("line %q exceeds width %d", l, tt.width)
			}
		}
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if got := red("x"); got != colorRed+"x"+colorReset {
		t.Errorf("red() = %q", got)
	}
	DisableColors()
	if got := red("x"); got != "x" {
		t.Errorf("red() with colors disabled = %q", got)
	}
	EnableColors()
}
