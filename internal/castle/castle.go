// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

/*
Package castle manages the clan's castle roster: the per-castle combat
stats the coordinators maintain and the aggregate readiness numbers the
server overview shows.

A castle is war-ready when its drops reach [WarReadyDrops]. The roster
totals are computed over the whole table on every listing, never cached.
*/
package castle

import "time"

// Rank is a castle's battle-line assignment.
type Rank string

const (
	RankRow1 Rank = "row1"
	RankRow2 Rank = "row2"
	RankRow3 Rank = "row3"
)

func (r Rank) Valid() bool {
	return r == RankRow1 || r == RankRow2 || r == RankRow3
}

// Label returns the display name shown in the roster.
func (r Rank) Label() string {
	switch r {
	case RankRow1:
		return "صف أول"
	case RankRow2:
		return "صف ثاني"
	case RankRow3:
		return "صف ثالث"
	default:
		return string(r)
	}
}

// Type is a castle's troop composition.
type Type string

const (
	TypeArchers  Type = "archers"
	TypeBarracks Type = "barracks"
	TypeMixed    Type = "mixed"
)

func (t Type) Valid() bool {
	return t == TypeArchers || t == TypeBarracks || t == TypeMixed
}

// Label returns the display name shown in the roster.
func (t Type) Label() string {
	switch t {
	case TypeArchers:
		return "رماة"
	case TypeBarracks:
		return "ثكنة"
	case TypeMixed:
		return "خطين"
	default:
		return string(t)
	}
}

// WarReadyDrops is the drops threshold at which a castle counts as
// war-ready in the roster totals.
const WarReadyDrops = 193

// Readiness holds the consumable stockpiles tracked per castle. Stored
// as one JSONB column.
type Readiness struct {
	Speedups50        int `json:"speedups50"`
	Speedups25        int `json:"speedups25"`
	FreeHours         int `json:"freeHours"`
	HealingHours      int `json:"healingHours"`
	GoldHeroFragments int `json:"goldHeroFragments"`
	RedHeroFragments  int `json:"redHeroFragments"`
}

type Castle struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Rank             Rank      `json:"rank"`
	Type             Type      `json:"type"`
	Giant            int       `json:"giant"`
	BarracksArmor    int       `json:"barracksArmor"`
	ArchersArmor     int       `json:"archersArmor"`
	BarracksPiercing int       `json:"barracksPiercing"`
	ArchersPiercing  int       `json:"archersPiercing"`
	NormalRally      int       `json:"normalRally"`
	SuperRally       int       `json:"superRally"`
	Drops            int       `json:"drops"`
	AccountEmail     string    `json:"accountEmail,omitempty"`
	AccountPassword  string    `json:"accountPassword,omitempty"`
	Readiness        Readiness `json:"readiness"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// WarReady reports whether this castle counts toward the war-ready total.
func (c *Castle) WarReady() bool {
	return c.Drops >= WarReadyDrops
}

// Totals are the roster aggregates, computed over every castle regardless
// of the listing page.
type Totals struct {
	BarracksArmorSum int `json:"barracksArmorSum"`
	ArchersArmorSum  int `json:"archersArmorSum"`
	CastlesCount     int `json:"castlesCount"`
	WarReadyCount    int `json:"warReadyCount"`
}
