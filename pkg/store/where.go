package store

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Where returns, in collection order, the records for which expression evaluates to true.
// The expression sees the record's fields under their expr tag names, for example
// `available && publishedYear < 1950` or `author contains "Lee"`.
func (s *Store[T]) Where(expression string) ([]T, error) {
	return s.filter(expression, s.List())
}

func (s *Store[T]) filter(expression string, records []T) ([]T, error) {
	program, err := s.compile(expression)
	if err != nil {
		return nil, &ExpressionError{Expression: expression, Err: err}
	}

	result := make([]T, 0)
	for _, rec := range records {
		out, err := expr.Run(program, rec)
		if err != nil {
			return nil, &ExpressionError{Expression: expression, Err: err}
		}
		ok, isBool := out.(bool)
		if !isBool {
			return nil, &ExpressionError{Expression: expression, Err: fmt.Errorf("expected bool, got %T", out)}
		}
		if ok {
			result = append(result, rec)
		}
	}
	return result, nil
}

// compile returns the cached program for expression, compiling it on first use.
func (s *Store[T]) compile(expression string) (*vm.Program, error) {
	s.programMu.RLock()
	program, ok := s.programs[expression]
	s.programMu.RUnlock()
	if ok {
		return program, nil
	}

	var env T
	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, err
	}

	s.programMu.Lock()
	// Another goroutine may have compiled the same expression meanwhile.
	if existing, ok := s.programs[expression]; ok {
		s.programMu.Unlock()
		return existing, nil
	}
	s.programs[expression] = program
	s.programMu.Unlock()

	return program, nil
}
