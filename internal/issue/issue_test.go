// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/urlnorm/urlnorm/pkg/component"
	"github.com/urlnorm/urlnorm/pkg/urlnorm"
)

func TestValues_OrderedAndComplete(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i, is := range values {
		if is.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, is.Id(), i+1)
		}
	}
}

func TestIssues_HaveSlugAndContent(t *testing.T) {
	t.Parallel()

	seen := make(map[string]Id)
	for _, is := range Values() {
		if is.Slug() == "" {
			t.Errorf("issue %d has no slug", is.Id())
		}
		if prev, dup := seen[is.Slug()]; dup {
			t.Errorf("slug %q used by %d and %d", is.Slug(), prev, is.Id())
		}
		seen[is.Slug()] = is.Id()
		if !strings.HasPrefix(strings.TrimSpace(string(is.MarkdownMsg())), "# ") {
			t.Errorf("issue %q should start with a heading", is.Slug())
		}
		if is.Title() == "" {
			t.Errorf("issue %q has no title", is.Slug())
		}
		got, ok := Lookup(is.Slug())
		if !ok || got != is {
			t.Errorf("Lookup(%q) = %v, %v", is.Slug(), got, ok)
		}
	}
	if got, want := Get(ParseFailedId).Title(), "The input could not be split into URL components"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
	if _, ok := Lookup("no-such-topic"); ok {
		t.Error("Lookup(no-such-topic) should fail")
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	t.Parallel()

	is := Get(InvalidHostId)
	links := is.ExtLinks()
	if len(links) == 0 {
		t.Fatal("invalid-host should carry external links")
	}
	links[0] = "modified"
	if is.ExtLinks()[0] == "modified" {
		t.Error("ExtLinks() should return a clone")
	}
}

func TestIssue_Render(t *testing.T) {
	original := render
	t.Cleanup(func() { render = original })
	render = func(in, _ string) (string, error) { return in, nil }

	rendered, err := Get(PunycodeFailedId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(rendered, "## See also") || !strings.Contains(rendered, "rfc3492") {
		t.Errorf("Render() = %q, want a See also section with the RFC link", rendered)
	}

	rendered, err = Get(InvalidPortId).Render("notty")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(rendered, "See also") {
		t.Errorf("issue without links should not render See also: %q", rendered)
	}
}

func TestIssues_RenderWithGlamour(t *testing.T) {
	t.Parallel()

	for _, is := range Values() {
		out, err := is.Render("notty")
		if err != nil {
			t.Errorf("Render(%q) error = %v", is.Slug(), err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			t.Errorf("Render(%q) returned empty output", is.Slug())
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	ipHost, hostErr := component.NewHost("127.0.0.1")
	lockErr := ipHost.Remove("1")

	_, parseErr := urlnorm.Parse("/over/there")
	_, portErr := component.NewPort("70000")
	_, schemeErr := component.NewScheme("1http")
	_, labelErr := component.NewHost("bad_label.com")
	_, punyErr := component.NewHost("xn--zz.com")

	tests := []struct {
		name string
		err  error
		want Id
	}{
		{"parse", parseErr, ParseFailedId},
		{"port", portErr, InvalidPortId},
		{"scheme", schemeErr, InvalidSchemeId},
		{"label", labelErr, InvalidHostId},
		{"punycode", punyErr, PunycodeFailedId},
		{"ip lock", lockErr, IPHostLockedId},
		{"wrapped", fmt.Errorf("normalize: %w", parseErr), ParseFailedId},
		{"explicit issue wins", NewErrorContext().WithOperation("watch").WithIssue(WatchFailedId).Wrap(parseErr).BuildError(), WatchFailedId},
		{"unknown", errors.New("boom"), 0},
		{"valid ip host", hostErr, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
