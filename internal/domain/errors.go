package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateName  = errors.New("name already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidInput   = errors.New("invalid input")
	ErrSeatTaken      = errors.New("seat already booked")
	ErrSeatOutOfRange = errors.New("seat out of range")
	ErrCorruptStore   = errors.New("corrupt record store")
)
