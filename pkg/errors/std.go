package errors

import stderrors "errors"

// Пакет называется errors, поэтому стандартные функции берём через псевдоним.
func is(err, target error) bool { return stderrors.Is(err, target) }

func as(err error, target interface{}) bool { return stderrors.As(err, target) }
