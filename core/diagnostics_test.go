package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestErrorCodes(t *testing.T) {
	err := Error(EMISSING, "font %s not found", "Foo")
	if Code(err) != EMISSING {
		t.Errorf("expected code to be %d, is %d", EMISSING, Code(err))
	}
	if UserMessage(err) != "font Foo not found" {
		t.Errorf("unexpected user message: %q", UserMessage(err))
	}
	base := errors.New("boom")
	wrapped := WrapError(base, EPARSE, "cannot parse")
	if !errors.Is(wrapped, base) {
		t.Errorf("expected wrapped error to unwrap to base error")
	}
	if Code(base) != EINTERNAL {
		t.Errorf("expected plain errors to have code EINTERNAL, is %d", Code(base))
	}
	if Code(nil) != NOERROR {
		t.Errorf("expected nil error to have code NOERROR")
	}
}

func TestDiagnosticsList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.core")
	defer teardown()
	//
	var diags Diagnostics
	diags.Warnf(UnsupportedProperty, Location{Path: "html/body/p"}, "property %q not supported", "foo")
	diags.Warnf(Overflow, Location{}, "line too wide")
	if diags.HasErrors() {
		t.Errorf("expected warnings only")
	}
	if diags.Count(UnsupportedProperty) != 1 {
		t.Errorf("expected 1 unsupported property, have %d", diags.Count(UnsupportedProperty))
	}
	diags.Errorf(SkippedSubtree, Location{Line: 3, Column: 7, Path: "html/body/div"}, "unclosed <div>")
	err := diags.Err()
	if err == nil {
		t.Fatalf("expected an error diagnostic")
	}
	if !strings.Contains(err.Error(), "3:7 html/body/div") {
		t.Errorf("expected location in error message, have %q", err.Error())
	}
	var d Diagnostic
	if !errors.As(err, &d) || Code(d.Err) != EPARSE {
		t.Errorf("expected skipped subtree to carry EPARSE")
	}
	if len(diags.OfKind(Overflow)) != 1 {
		t.Errorf("expected 1 overflow diagnostic")
	}
}
