package bcre

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/coregx/bcre/bytecode"
	"github.com/coregx/bcre/syntax"
	"github.com/coregx/bcre/vm"
)

// TestMatchString covers the documented matching behavior of the pattern
// language.
func TestMatchString(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		subject string
		want    bool
	}{
		{"substring", "cat", "concatenate", true},
		{"substring absent", "dog", "concatenate", false},
		{"start anchor", "^cat", "concatenate", false},
		{"start anchor hit", "^con", "concatenate", true},
		{"end anchor", "ate$", "concatenate", true},
		{"end anchor miss", "cat$", "concatenate", false},
		{"both anchors", "^cat$", "cat", true},
		{"both anchors longer", "^cat$", "cats", false},
		{"dot", "c.t", "cut", true},
		{"dot needs a byte", "c.t", "ct", false},
		{"dot any byte", "a.b", "a\nb", true},
		{"optional absent", "colou?r", "color", true},
		{"optional present", "colou?r", "colour", true},
		{"star zero", "ab*c", "ac", true},
		{"star many", "ab*c", "abbbbc", true},
		{"plus needs one", "ab+c", "ac", false},
		{"plus many", "ab+c", "abbc", true},
		{"greedy backtrack", "a*ab", "aaab", true},
		{"backtrack to zero", "a*a", "a", true},
		{"dot star", "^.*$", "anything", true},
		{"escaped dot", `a\.b`, "a.b", true},
		{"escaped dot literal", `a\.b`, "axb", false},
		{"escaped star", `a\*`, "a*", true},
		{"escaped backslash", `\\`, `x\y`, true},
		{"control escape", `\t`, "a\tb", true},
		{"backspace escape", `\b`, "\b", true},
		{"quantified escape", `\.+`, "a...", true},
		{"empty pattern", "", "", true},
		{"empty pattern any subject", "", "xyz", true},
		{"empty subject star", "a*", "", true},
		{"empty subject end", "$", "", true},
		{"empty subject literal", "a", "", false},
		{"anchor mid pattern", "a^b", "ab", false},
		{"end anchor mid pattern", "a$b", "ab", false},
		{"high bytes", "\xff+", "a\xff\xffb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.pattern, err)
			}
			if got := re.MatchString(tt.subject); got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.subject, got, tt.want)
			}
			if got := re.Match([]byte(tt.subject)); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.subject, got, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		pattern string
		code    syntax.ErrorCode
	}{
		{"*a", syntax.ErrMissingRepeatArgument},
		{"+", syntax.ErrMissingRepeatArgument},
		{"a**", syntax.ErrMissingRepeatArgument},
		{"a?+", syntax.ErrMissingRepeatArgument},
		{"^*", syntax.ErrMissingRepeatArgument},
		{`ab\`, syntax.ErrTrailingBackslash},
		{`\q`, syntax.ErrInvalidEscape},
		{"a\x00", syntax.ErrNulCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if re != nil {
				t.Error("Compile returned a Regex with an error")
			}
			var syntaxErr *syntax.Error
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Compile(%q) = %v, want *syntax.Error", tt.pattern, err)
			}
			if syntaxErr.Code != tt.code {
				t.Errorf("Code = %q, want %q", syntaxErr.Code, tt.code)
			}
			if bytecode.IsIntegrityError(err) {
				t.Error("syntax error reported as integrity error")
			}
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustCompile did not panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.HasPrefix(msg, "regexp: Compile(`*`): error parsing regexp: ") {
			t.Errorf("panic = %v", r)
		}
	}()
	MustCompile("*")
}

func TestCompileIdempotent(t *testing.T) {
	for _, pattern := range []string{"", "abc", "^a.b?c*d+$", `\t\.\\`} {
		a := MustCompile(pattern).Program()
		b := MustCompile(pattern).Program()
		if string(a) != string(b) {
			t.Errorf("%q: programs differ:\n% x\n% x", pattern, a, b)
		}
	}
}

func TestProgramIsCopy(t *testing.T) {
	re := MustCompile("abc")
	prog := re.Program()
	prog[1] = 0xff
	if !re.MatchString("abc") {
		t.Error("modifying Program() changed the Regex")
	}
}

func TestDisassemble(t *testing.T) {
	want := "0000  NOP\n" +
		"0001  CHR 'c'\n" +
		"0003  ANY\n" +
		"0004  CHR 't'\n" +
		"0006  RET\n"
	if got := MustCompile("c.t").Disassemble(); got != want {
		t.Errorf("Disassemble() =\n%s\nwant\n%s", got, want)
	}
}

func TestString(t *testing.T) {
	if got := MustCompile(`a\.b*`).String(); got != `a\.b*` {
		t.Errorf("String() = %q", got)
	}
}

func TestPackageMatch(t *testing.T) {
	matched, err := Match("a+b", "xaab")
	if err != nil || !matched {
		t.Errorf("Match = %v, %v, want true, nil", matched, err)
	}
	_, err = Match("?", "x")
	var syntaxErr *syntax.Error
	if !errors.As(err, &syntaxErr) {
		t.Errorf("Match(?) error = %v, want *syntax.Error", err)
	}
}

func TestQuoteMeta(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"1+1=2?", `1\+1=2\?`},
		{`^a.b*c$\`, `\^a\.b\*c\$\\`},
		{"(x|y)[z]", "(x|y)[z]"},
	}

	for _, tt := range tests {
		got := QuoteMeta(tt.in)
		if got != tt.want {
			t.Errorf("QuoteMeta(%q) = %q, want %q", tt.in, got, tt.want)
			continue
		}
		re, err := Compile(got)
		if err != nil {
			t.Errorf("Compile(QuoteMeta(%q)) failed: %v", tt.in, err)
			continue
		}
		if !re.MatchString("<" + tt.in + ">") {
			t.Errorf("QuoteMeta(%q) does not match its input", tt.in)
		}
	}
}

func TestMatchStringErrStepLimit(t *testing.T) {
	config := DefaultConfig()
	config.MaxSteps = 100
	config.MemoLimit = 0

	re, err := CompileWithConfig("a*a*a*a*a*b", config)
	if err != nil {
		t.Fatal(err)
	}
	subject := strings.Repeat("a", 40)
	if _, err := re.MatchStringErr(subject); !errors.Is(err, vm.ErrStepLimit) {
		t.Errorf("MatchStringErr error = %v, want ErrStepLimit", err)
	}
	if re.MatchString(subject) {
		t.Error("MatchString = true after step limit")
	}
}

func TestMemoizedPathological(t *testing.T) {
	re := MustCompile("a*a*a*a*a*a*a*a*b")
	if re.MatchString(strings.Repeat("a", 200)) {
		t.Error("matched without b")
	}
	if !re.MatchString(strings.Repeat("a", 200) + "b") {
		t.Error("did not match with b")
	}
}

func TestConcurrentMatch(t *testing.T) {
	re := MustCompile("c.t")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if !re.MatchString("concatenate") {
					t.Error("MatchString = false")
					return
				}
			}
		}()
	}
	wg.Wait()
}
