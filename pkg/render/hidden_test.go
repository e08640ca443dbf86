package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/render"
)

func TestMergeHiddenFields(t *testing.T) {
	base := map[string]string{" existing ": "keep", "": "ignored", "version": "3"}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("_csrf", "token123"),
		render.Hidden("version", 4),
		render.Hidden("  ", "skip"),
	)

	want := map[string]string{"existing": "keep", "_csrf": "token123", "version": "4"}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}
	if got := render.MergeHiddenFields(map[string]string{" ": "x"}); got != nil {
		t.Fatalf("blank-only input should merge to nil, got %v", got)
	}
}

func TestSortedHiddenFields(t *testing.T) {
	got := render.SortedHiddenFields(map[string]string{"b": "2", " a ": "1", "": "x"})
	want := []render.HiddenField{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOptions_MethodOverride(t *testing.T) {
	cases := []struct {
		method     string
		wantMethod string
		wantHidden []render.HiddenField
	}{
		{method: "", wantMethod: "POST", wantHidden: []render.HiddenField{{Name: "_csrf", Value: "t"}}},
		{method: "get", wantMethod: "GET", wantHidden: []render.HiddenField{{Name: "_csrf", Value: "t"}}},
		{method: "patch", wantMethod: "POST", wantHidden: []render.HiddenField{{Name: "_csrf", Value: "t"}, {Name: "_method", Value: "PATCH"}}},
	}
	for _, tc := range cases {
		opts := render.RenderOptions{Method: tc.method, Hidden: map[string]string{"_csrf": "t"}}
		if got := opts.FormMethod(); got != tc.wantMethod {
			t.Fatalf("FormMethod(%q) = %q, want %q", tc.method, got, tc.wantMethod)
		}
		if diff := cmp.Diff(tc.wantHidden, opts.HiddenInputs()); diff != "" {
			t.Fatalf("hidden inputs for %q mismatch (-want +got):\n%s", tc.method, diff)
		}
	}
}
