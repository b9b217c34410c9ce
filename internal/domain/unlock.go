package domain

import "time"

// UnlockRecord is one granted catalog item. Records are never deleted;
// at most one record per category carries Equipped.
type UnlockRecord struct {
	ID         string
	Category   UnlockCategory
	Key        string
	UnlockedAt time.Time
	Equipped   bool
}

// UnlockRef identifies a catalog entry within its category.
type UnlockRef struct {
	Category UnlockCategory
	Key      string
}

func (u *UnlockRecord) Ref() UnlockRef {
	return UnlockRef{Category: u.Category, Key: u.Key}
}
