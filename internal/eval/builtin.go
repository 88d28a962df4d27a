package eval

import (
	"fmt"

	"nickandperla.net/rpnc/internal/number"
	"nickandperla.net/rpnc/internal/scanner"
	"nickandperla.net/rpnc/internal/token"
	"nickandperla.net/rpnc/internal/vars"
)

// unaryFunc replaces the top of the stack.
type unaryFunc func(number.Complex) (number.Complex, error)

// realFunc replaces the top of the stack with a real value.
type realFunc func(number.Complex) (float64, error)

// binaryFunc combines (second, top) into one value.
type binaryFunc func(number.Complex, number.Complex) (number.Complex, error)

// apply runs one primitive. Each primitive checks its operands and computes
// its result before touching the stack or the variables, so a failure leaves
// both unchanged.
func (e *Evaluator) apply(item scanner.Item) error {
	if e.stack.Len() < item.Kind.Operands() {
		return ErrStackUnderflow
	}

	switch item.Kind {
	case token.BLANK:
		return nil
	case token.LITERAL:
		e.stack.Push(item.Value)
		return nil

	case token.ADD:
		return e.binary(number.Complex.Add)
	case token.SUB:
		return e.binary(number.Complex.Sub)
	case token.MUL:
		return e.binary(number.Complex.Mul)
	case token.DIV:
		return e.binary(number.Complex.Div)
	case token.POW:
		return e.binary(power)
	case token.NEG:
		return e.unary(number.Complex.Neg)
	case token.SQRT:
		return e.unary(number.Complex.Sqrt)

	case token.CLEAR:
		e.stack.Clear()
		return nil
	case token.DROP:
		_, err := e.stack.Pop()
		return err
	case token.DUP:
		v, _ := e.stack.Top()
		e.stack.Push(v)
		return nil
	case token.SWAP:
		a, b := e.stack.peek2()
		e.stack.replace(2, b, a)
		return nil
	case token.OVER:
		a, _ := e.stack.peek2()
		e.stack.Push(a)
		return nil

	case token.STORE_VAR:
		v, _ := e.stack.Top()
		if err := e.vars.Set(item.Var, v); err != nil {
			return err
		}
		e.stack.Pop()
		return nil
	case token.LOAD_VAR:
		v, err := e.vars.Get(item.Var)
		if err != nil {
			return err
		}
		e.stack.Push(v)
		return nil
	case token.ADD_VAR:
		return e.accumulate(item.Var, vars.Add)
	case token.SUB_VAR:
		return e.accumulate(item.Var, vars.Sub)
	case token.BACKUP:
		return e.vars.Backup()
	case token.RESTORE:
		return e.vars.Restore()

	case token.MOD:
		return e.unaryReal(number.Complex.Mod)
	case token.ARG:
		return e.unaryReal(number.Complex.Arg)
	case token.EXP:
		return e.unary(number.Complex.Exp)
	case token.LOG:
		return e.unary(number.Complex.Log)
	case token.SIN:
		return e.unary(number.Complex.Sin)
	case token.COS:
		return e.unary(number.Complex.Cos)
	case token.TAN:
		return e.unary(number.Complex.Tan)
	case token.ASIN:
		return e.unary(number.Complex.Asin)
	case token.ACOS:
		return e.unary(number.Complex.Acos)
	case token.ATAN:
		return e.unary(number.Complex.Atan)

	case token.MACRO:
		// submit runs defined names before apply is reached
		return e.unknownCommand(item.Text)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, item.Text)
}

func (e *Evaluator) unary(fn unaryFunc) error {
	v, _ := e.stack.Top()
	r, err := fn(v)
	if err != nil {
		return err
	}
	e.stack.replace(1, r)
	return nil
}

func (e *Evaluator) unaryReal(fn realFunc) error {
	v, _ := e.stack.Top()
	r, err := fn(v)
	if err != nil {
		return err
	}
	e.stack.replace(1, number.Real(r))
	return nil
}

func (e *Evaluator) binary(fn binaryFunc) error {
	a, b := e.stack.peek2()
	r, err := fn(a, b)
	if err != nil {
		return err
	}
	e.stack.replace(2, r)
	return nil
}

func (e *Evaluator) accumulate(c byte, op vars.Op) error {
	v, _ := e.stack.Top()
	if err := e.vars.Accumulate(c, v, op); err != nil {
		return err
	}
	e.stack.Pop()
	return nil
}

// power raises base to a real exponent.
func power(base, exp number.Complex) (number.Complex, error) {
	if exp.IsNaN() {
		return number.Complex{}, number.ErrNotANumber
	}
	if exp.Im() != 0 {
		return number.Complex{}, fmt.Errorf("%w: %v", ErrInvalidExponent, exp)
	}
	return base.Pow(exp.Re())
}
