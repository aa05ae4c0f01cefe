// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

/*
Package war manages the clan's war calendar: the wars themselves, each
war's battle schedule, and the castle attendance register.

A castle registers at most once per war; the register is keyed by
(war, castle). The schedule is stored in three sections that save
independently, so the coordinator filling in enemy tiles never clobbers
a colleague's platform plan.
*/
package war

import "time"

// Type is the war category shown on the calendar.
type Type string

const (
	TypeMamalik   Type = "mamalik"
	TypeMajd      Type = "majd"
	TypeSahab     Type = "sahab"
	TypeLegendary Type = "legendary"
	TypeRamal     Type = "ramal"
	TypeSahara    Type = "sahara"
	TypeHaram     Type = "haram"
)

// Types lists every war category, in display order.
func Types() []Type {
	return []Type{TypeMamalik, TypeMajd, TypeSahab, TypeLegendary, TypeRamal, TypeSahara, TypeHaram}
}

func (t Type) Valid() bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}

// Label returns the calendar display name.
func (t Type) Label() string {
	switch t {
	case TypeMamalik:
		return "مماليك"
	case TypeMajd:
		return "مجد"
	case TypeSahab:
		return "سحاب"
	case TypeLegendary:
		return "أسطوري"
	case TypeRamal:
		return "رمال"
	case TypeSahara:
		return "صحراء"
	case TypeHaram:
		return "هرم"
	default:
		return string(t)
	}
}

type War struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// EnemyPlatform is one enemy platform entry in the schedule, with the
// counter assignments picked from the castle roster.
type EnemyPlatform struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Type                   string `json:"type"`
	ArenaCorpsPower        int    `json:"arenaCorpsPower"`
	CounterCastleID        string `json:"counterCastleId"`
	CounterCastleName      string `json:"counterCastleName"`
	CapsCastleID           string `json:"capsCastleId"`
	CapsCastleName         string `json:"capsCastleName"`
	SuperCounterCastleID   string `json:"superCounterCastleId"`
	SuperCounterCastleName string `json:"superCounterCastleName"`
	Notes                  string `json:"notes"`
}

// EnemyTile is one enemy tile entry with its zeroing assignment.
type EnemyTile struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Type               string `json:"type"`
	ArcherArmorCount   int    `json:"archerArmorCount"`
	BarracksArmorCount int    `json:"barracksArmorCount"`
	ZeroingResponsible string `json:"zeroingResponsible"`
}

// Super is one super-rally slot in the schedule.
type Super struct {
	ID           string `json:"id"`
	PlatformName string `json:"platformName"`
	Time         string `json:"time"`
	Location     string `json:"location"`
}

// Schedule is a war's full battle plan. Each section is stored as its own
// JSONB column.
type Schedule struct {
	WarID          string          `json:"warId"`
	EnemyPlatforms []EnemyPlatform `json:"enemyPlatforms"`
	EnemyTiles     []EnemyTile     `json:"enemyTiles"`
	Supers         []Super         `json:"supers"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// AttendanceRecord is one castle's registration for a war.
type AttendanceRecord struct {
	WarID        string    `json:"warId"`
	CastleID     string    `json:"castleId"`
	CastleName   string    `json:"castleName"`
	RegisteredBy string    `json:"registeredBy"`
	RegisteredAt time.Time `json:"registeredAt"`
}
