// SPDX-License-Identifier: MPL-2.0

package punycode

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/idna"
)

var domainVectors = []struct {
	unicode string
	ascii   string
}{
	{"مثال.إختبار", "xn--mgbh0fb.xn--kgbechtv"},
	{"مثال.آزمایشی", "xn--mgbh0fb.xn--hgbk6aj7f53bba"},
	{"例子.测试", "xn--fsqu00a.xn--0zwm56d"},
	{"例子.測試", "xn--fsqu00a.xn--g6w251d"},
	{"пример.испытание", "xn--e1afmkfd.xn--80akhbyknj4f"},
	{"उदाहरण.परीक्षा", "xn--p1b6ci4b4b3a.xn--11b5bs3a9aj6g"},
	{"παράδειγμα.δοκιμή", "xn--hxajbheg2az3al.xn--jxalpdlp"},
	{"실례.테스트", "xn--9n2bp8q.xn--9t4b11yi5a"},
	{"בײַשפּיל.טעסט", "xn--fdbk5d8ap9b8a8d.xn--deba0ad"},
	{"例え.テスト", "xn--r8jz45g.xn--zckzah"},
	{"உதாரணம்.பரிட்சை", "xn--zkc6cc5bi7f6e.xn--hlcj6aya9esc7a"},
	{"derhausüberwacher.de", "xn--derhausberwacher-pzb.de"},
	{"renangonçalves.com", "xn--renangonalves-pgb.com"},
	{"рф.ru", "xn--p1ai.ru"},
	{"δοκιμή.gr", "xn--jxalpdlp.gr"},
	{"ফাহাদ্১৯.বাংলা", "xn--65bj6btb5gwimc.xn--54b7fta0cc"},
	{"𐌀𐌖𐌋𐌄𐌑𐌉·𐌌𐌄𐌕𐌄𐌋𐌉𐌑.gr", "xn--uba5533kmaba1adkfh6ch2cg.gr"},
	{"스타벅스코리아.com", "xn--oy2b35ckwhba574atvuzkc.com"},
	{"президент.рф", "xn--d1abbgf6aiiy.xn--p1ai"},
}

func TestToASCII(t *testing.T) {
	t.Parallel()

	for _, tt := range domainVectors {
		t.Run(tt.ascii, func(t *testing.T) {
			t.Parallel()
			got, err := ToASCII(tt.unicode)
			if err != nil {
				t.Fatalf("ToASCII(%q) returned error: %v", tt.unicode, err)
			}
			if got != tt.ascii {
				t.Errorf("ToASCII(%q) = %q, want %q", tt.unicode, got, tt.ascii)
			}
		})
	}
}

func TestToUnicode(t *testing.T) {
	t.Parallel()

	for _, tt := range domainVectors {
		t.Run(tt.ascii, func(t *testing.T) {
			t.Parallel()
			got, err := ToUnicode(tt.ascii)
			if err != nil {
				t.Fatalf("ToUnicode(%q) returned error: %v", tt.ascii, err)
			}
			if got != tt.unicode {
				t.Errorf("ToUnicode(%q) = %q, want %q", tt.ascii, got, tt.unicode)
			}
		})
	}
}

// The raw Punycode profile of x/net/idna performs no mapping, so its output
// must agree with Encode label by label.
func TestEncode_MatchesIDNAPunycodeProfile(t *testing.T) {
	t.Parallel()

	for _, tt := range domainVectors {
		for label := range strings.SplitSeq(tt.unicode, ".") {
			want, err := idna.Punycode.ToASCII(label)
			if err != nil {
				t.Fatalf("idna.Punycode.ToASCII(%q) returned error: %v", label, err)
			}
			got, err := Encode(label)
			if err != nil {
				t.Fatalf("Encode(%q) returned error: %v", label, err)
			}
			if got != want {
				t.Errorf("Encode(%q) = %q, idna gives %q", label, got, want)
			}
		}
	}
}

func TestEncode_ASCIIPassThrough(t *testing.T) {
	t.Parallel()

	for _, label := range []string{"", "example", "EXAMPLE", "a-b-c", "xn--p1ai", "123"} {
		got, err := Encode(label)
		if err != nil {
			t.Fatalf("Encode(%q) returned error: %v", label, err)
		}
		if got != label {
			t.Errorf("Encode(%q) = %q, want unchanged", label, got)
		}
	}
}

func TestDecode_WithoutPrefix(t *testing.T) {
	t.Parallel()

	for _, label := range []string{"", "example", "xn-", "xn", "p1ai", "пример"} {
		got, err := Decode(label)
		if err != nil {
			t.Fatalf("Decode(%q) returned error: %v", label, err)
		}
		if got != label {
			t.Errorf("Decode(%q) = %q, want unchanged", label, got)
		}
	}
}

func TestDecode_CaseInsensitive(t *testing.T) {
	t.Parallel()

	got, err := Decode("XN--P1AI")
	if err != nil {
		t.Fatalf("Decode() returned error: %v", err)
	}
	if got != "рф" {
		t.Errorf("Decode(%q) = %q, want %q", "XN--P1AI", got, "рф")
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	labels := []string{"bücher", "münchen", "ñandú", "☃", "日本語", "mañana-en-el-mar", "😀emoji"}
	for _, label := range labels {
		encoded, err := Encode(label)
		if err != nil {
			t.Fatalf("Encode(%q) returned error: %v", label, err)
		}
		if !strings.HasPrefix(encoded, Prefix) {
			t.Errorf("Encode(%q) = %q, want %q prefix", label, encoded, Prefix)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(%q) returned error: %v", encoded, err)
		}
		if decoded != label {
			t.Errorf("Decode(Encode(%q)) = %q", label, decoded)
		}
		again, err := Encode(decoded)
		if err != nil {
			t.Fatalf("Encode(%q) returned error: %v", decoded, err)
		}
		if again != encoded {
			t.Errorf("Encode is not stable: %q then %q", encoded, again)
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		label string
		want  error
	}{
		{"invalid digit", "xn--ab!c", ErrInvalidInput},
		{"truncated integer", "xn--zz", ErrInvalidInput},
		{"non-ascii basic part", "xn--ü-abc", ErrInvalidInput},
		{"overflow", "xn--99999999999", ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(tt.label)
			if err == nil {
				t.Fatalf("Decode(%q) succeeded, want error", tt.label)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode(%q) error = %v, want %v", tt.label, err, tt.want)
			}
			var labelErr *LabelError
			if !errors.As(err, &labelErr) {
				t.Fatalf("error should be *LabelError, got %T", err)
			}
			if labelErr.Label != tt.label {
				t.Errorf("LabelError.Label = %q, want %q", labelErr.Label, tt.label)
			}
		})
	}
}

func TestToUnicode_PropagatesLabelError(t *testing.T) {
	t.Parallel()

	_, err := ToUnicode("example.xn--ab!c.com")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ToUnicode() error = %v, want ErrInvalidInput", err)
	}
}
