package service

import "errors"

var (
	ErrDigitsRequired = errors.New("digits required")
	ErrInputTooLong   = errors.New("input too long")
	ErrInvalidDigits  = errors.New("invalid digits")
)
