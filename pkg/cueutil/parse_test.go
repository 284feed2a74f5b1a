// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#List: {
	name?: string
	urls: [...string]
	limit?: int & >=1
}
`

type testList struct {
	Name  string   `json:"name,omitempty"`
	URLs  []string `json:"urls"`
	Limit int      `json:"limit,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	t.Run("valid document decodes", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
name: "seed"
urls: ["http://example.com", "ftp://example.org/pub"]
limit: 2
`)
		result, err := ParseAndDecodeString[testList](testSchema, data, "#List")
		if err != nil {
			t.Fatalf("ParseAndDecode() error = %v", err)
		}
		if result.Value.Name != "seed" || len(result.Value.URLs) != 2 || result.Value.Limit != 2 {
			t.Errorf("decoded %+v", *result.Value)
		}
	})

	t.Run("schema violation reports path and filename", func(t *testing.T) {
		t.Parallel()

		data := []byte(`urls: ["http://example.com", 3]`)
		_, err := ParseAndDecodeString[testList](testSchema, data, "#List", WithFilename("seed.cue"))
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, ErrInvalidCUE) {
			t.Errorf("error should wrap ErrInvalidCUE, got %v", err)
		}
		if !strings.Contains(err.Error(), "seed.cue") || !strings.Contains(err.Error(), "urls[1]") {
			t.Errorf("error %q should name file and path", err)
		}
	})

	t.Run("closed definition rejects unknown fields", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAndDecodeString[testList](testSchema, []byte(`urls: [], extra: 1`), "#List")
		if err == nil {
			t.Fatal("expected error for unknown field")
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAndDecodeString[testList](testSchema, []byte(`urls: [`), "#List")
		if err == nil {
			t.Fatal("expected syntax error")
		}
	})

	t.Run("size limit", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAndDecodeString[testList](testSchema, []byte(`urls: []`), "#List", WithMaxFileSize(3))
		if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
			t.Fatalf("expected size error, got %v", err)
		}
	})

	t.Run("non-concrete allowed when requested", func(t *testing.T) {
		t.Parallel()

		_, err := Unify([]byte(`#Opt: {a?: string, b: int}`), []byte(`a: "x"`), "#Opt", WithConcrete(false))
		if err != nil {
			t.Fatalf("Unify() error = %v", err)
		}
		_, err = Unify([]byte(`#Opt: {a?: string, b: int}`), []byte(`a: "x"`), "#Opt")
		if err == nil {
			t.Fatal("expected incomplete value error with concrete validation")
		}
	})
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := Marshal(testList{Name: "seed", URLs: []string{"http://example.com"}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(out)
	if strings.HasPrefix(strings.TrimSpace(got), "{") {
		t.Errorf("Marshal() should emit top-level fields, got %q", got)
	}
	for _, want := range []string{`name: "seed"`, `"http://example.com"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Marshal() = %q, want it to contain %q", got, want)
		}
	}
}
