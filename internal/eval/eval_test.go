package eval

import (
	"errors"
	"strings"
	"testing"

	"nickandperla.net/rpnc/internal/number"
	"nickandperla.net/rpnc/internal/scanner"
	"nickandperla.net/rpnc/internal/token"
	"nickandperla.net/rpnc/internal/vars"
)

// submitAll feeds whitespace-separated tokens and fails on the first error.
func submitAll(t *testing.T, e *Evaluator, line string) {
	t.Helper()
	if err := e.SubmitLine(line); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func expectStack(t *testing.T, e *Evaluator, want ...number.Complex) {
	t.Helper()
	got := e.Stack()
	if len(got) != len(want) {
		t.Fatalf("expected stack %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected stack %v, got %v", want, got)
		}
	}
}

func TestAddition(t *testing.T) {
	e := New()
	submitAll(t, e, "4 8 +")
	top, ok := e.Top()
	if !ok {
		t.Fatal("expected a value on the stack")
	}
	if top != number.New(12, 0) {
		t.Errorf("expected 12, got %v", top)
	}
}

func TestOperandOrder(t *testing.T) {
	e := New()
	submitAll(t, e, "10 4 -")
	expectStack(t, e, number.Real(6))

	submitAll(t, e, "clear 12 4 /")
	expectStack(t, e, number.Real(3))
}

func TestBlankTokenIsIgnored(t *testing.T) {
	e := New()
	for _, tok := range []string{"", "   ", "\t"} {
		if err := e.Submit(tok); err != nil {
			t.Errorf("Submit(%q): unexpected error: %v", tok, err)
		}
	}
	expectStack(t, e)
}

func TestSwapOver(t *testing.T) {
	a, b := number.New(1, 2), number.New(3, 0)

	e := New()
	submitAll(t, e, "1+2j 3 swap")
	expectStack(t, e, b, a)

	e = New()
	submitAll(t, e, "1+2j 3 over")
	expectStack(t, e, a, b, a)
}

func TestStackManipulation(t *testing.T) {
	e := New()
	submitAll(t, e, "1 2 dup")
	expectStack(t, e, number.Real(1), number.Real(2), number.Real(2))

	submitAll(t, e, "drop")
	expectStack(t, e, number.Real(1), number.Real(2))

	submitAll(t, e, "+- clear")
	expectStack(t, e)
}

func TestStackUnderflow(t *testing.T) {
	tests := []struct {
		setup string
		tok   string
	}{
		{"", "+"},
		{"5", "+"},
		{"5", "dup"},
		{"5", "swap"},
		{"5", "over"},
		{"5", "pow"},
		{"", "drop"},
		{"", "sqrt"},
		{"", "+-"},
		{"", ">a"},
		{"", "sin"},
	}

	for _, tt := range tests {
		t.Run(tt.setup+" "+tt.tok, func(t *testing.T) {
			e := New()
			submitAll(t, e, tt.setup)
			before := e.Stack()
			err := e.Submit(tt.tok)
			if !errors.Is(err, ErrStackUnderflow) {
				t.Fatalf("expected ErrStackUnderflow, got %v", err)
			}
			if len(e.Stack()) != len(before) {
				t.Errorf("stack changed on failure: %v -> %v", before, e.Stack())
			}
		})
	}
}

func TestDivideByZeroIsAtomic(t *testing.T) {
	for _, dividend := range []string{"0", "5", "3+4j", "-j"} {
		e := New()
		submitAll(t, e, dividend+" 0")
		before := e.Stack()

		err := e.Submit("/")
		if !errors.Is(err, number.ErrDivisionByZero) {
			t.Fatalf("%s / 0: expected ErrDivisionByZero, got %v", dividend, err)
		}
		expectStack(t, e, before...)
	}
}

func TestLiterals(t *testing.T) {
	e := New()
	submitAll(t, e, "4+10j 5-4j + j +j -j")
	expectStack(t, e, number.New(9, 6), number.I(), number.I(), number.New(0, -1))

	err := e.Submit("4x")
	if !errors.Is(err, scanner.ErrInvalidLiteral) {
		t.Errorf("expected ErrInvalidLiteral, got %v", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	e := New()
	err := e.Submit("dupp")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if !strings.Contains(err.Error(), "did you mean dup?") {
		t.Errorf("expected a suggestion for dup, got '%v'", err)
	}

	if err := e.Define("average: + 2 /"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = e.Submit("avg")
	if !strings.Contains(err.Error(), "did you mean average?") {
		t.Errorf("expected a suggestion for average, got '%v'", err)
	}
}

func TestVariableCommands(t *testing.T) {
	e := New()
	submitAll(t, e, "3 >a")
	expectStack(t, e)
	if v, _ := e.Variables().Get('a'); v != number.Real(3) {
		t.Fatalf("expected a = 3, got %v", v)
	}

	submitAll(t, e, "<A")
	expectStack(t, e, number.Real(3))

	submitAll(t, e, "2j +a")
	expectStack(t, e, number.Real(3))
	if v, _ := e.Variables().Get('a'); v != number.New(3, 2) {
		t.Errorf("expected a = 3 + 2j, got %v", v)
	}

	submitAll(t, e, "1 -A")
	if v, _ := e.Variables().Get('a'); v != number.New(2, 2) {
		t.Errorf("expected a = 2 + 2j, got %v", v)
	}

	if err := e.Submit("<b"); !errors.Is(err, vars.ErrUndefinedVariable) {
		t.Errorf("expected ErrUndefinedVariable, got %v", err)
	}

	// Accumulating into an unset variable must not consume the operand
	submitAll(t, e, "clear 7")
	if err := e.Submit("+z"); !errors.Is(err, vars.ErrUndefinedVariable) {
		t.Errorf("expected ErrUndefinedVariable, got %v", err)
	}
	expectStack(t, e, number.Real(7))
}

func TestBackupRestoreCommands(t *testing.T) {
	e := New()
	if err := e.Submit("save"); !errors.Is(err, vars.ErrNothingToBackup) {
		t.Errorf("expected ErrNothingToBackup, got %v", err)
	}
	submitAll(t, e, "1 >x save 2 >x restore <x")
	expectStack(t, e, number.Real(1))
	if err := e.Submit("restore"); !errors.Is(err, vars.ErrNoBackupAvailable) {
		t.Errorf("expected ErrNoBackupAvailable, got %v", err)
	}
}

func TestSharedVariables(t *testing.T) {
	v := vars.New()
	v.Set('q', number.Real(9))
	e := New(WithVariables(v))
	submitAll(t, e, "<q sqrt")
	expectStack(t, e, number.Real(3))
}

func TestTranscendentalCommands(t *testing.T) {
	e := New()
	submitAll(t, e, "3+4j mod")
	expectStack(t, e, number.Real(5))

	submitAll(t, e, "clear 2 3 pow")
	expectStack(t, e, number.Real(8))

	submitAll(t, e, "clear 0 cos")
	expectStack(t, e, number.Real(1))

	submitAll(t, e, "clear -1 arg")
	top, _ := e.Top()
	if top.Re() < 3.14159 || top.Re() > 3.1416 {
		t.Errorf("expected pi, got %v", top)
	}

	e = New()
	submitAll(t, e, "2 j")
	if err := e.Submit("pow"); !errors.Is(err, ErrInvalidExponent) {
		t.Fatalf("expected ErrInvalidExponent, got %v", err)
	}
	expectStack(t, e, number.Real(2), number.I())

	e = New()
	submitAll(t, e, "0")
	if err := e.Submit("log"); !errors.Is(err, number.ErrUndefinedLog) {
		t.Errorf("expected ErrUndefinedLog, got %v", err)
	}
	if err := e.Submit("arg"); !errors.Is(err, number.ErrUndefinedPhase) {
		t.Errorf("expected ErrUndefinedPhase, got %v", err)
	}
	expectStack(t, e, number.Zero())
}

func TestEvalReaderReportsLine(t *testing.T) {
	e := New()
	err := e.EvalReader(strings.NewReader("1 2\n+\n\nfoo 3\n"))
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "line 4:") {
		t.Errorf("expected error on line 4, got '%v'", err)
	}
	expectStack(t, e, number.Real(3))
}

func TestPersistMode(t *testing.T) {
	tests := []struct {
		in   string
		want PersistMode
		ok   bool
	}{
		{"on_demand", PersistOnDemand, true},
		{"ALWAYS", PersistAlways, true},
		{"never", PersistNever, true},
		{"sometimes", PersistOnDemand, false},
	}
	for _, tt := range tests {
		got, ok := ParsePersistMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePersistMode(%q): expected (%v, %v), got (%v, %v)", tt.in, tt.want, tt.ok, got, ok)
		}
	}
	if PersistAlways.String() != "ALWAYS" {
		t.Errorf("expected 'ALWAYS', got '%s'", PersistAlways.String())
	}
}

func TestApplyUndefinedMacro(t *testing.T) {
	e := New()
	err := e.apply(scanner.Item{Kind: token.MACRO, Text: "dupp"})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}
