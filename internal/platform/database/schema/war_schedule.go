package schema

// WarScheduleTable represents the 'war.schedule' table
type WarScheduleTable struct {
	Table          string
	WarID          string
	EnemyPlatforms string
	EnemyTiles     string
	Supers         string
	UpdatedAt      string
}

// WarSchedule is the schema definition for war.schedule
var WarSchedule = WarScheduleTable{
	Table:          "war.schedule",
	WarID:          "warid",
	EnemyPlatforms: "enemyplatforms",
	EnemyTiles:     "enemytiles",
	Supers:         "supers",
	UpdatedAt:      "updatedat",
}

func (t WarScheduleTable) Columns() []string {
	return []string{t.WarID, t.EnemyPlatforms, t.EnemyTiles, t.Supers, t.UpdatedAt}
}
