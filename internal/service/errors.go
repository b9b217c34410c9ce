package service

import "errors"

var (
	// ErrNotUnlocked is returned by Equip for an item that was never granted.
	ErrNotUnlocked = errors.New("item not unlocked")
	// ErrUnknownCategory is returned for an unlock category outside the catalog.
	ErrUnknownCategory = errors.New("unknown unlock category")
)
