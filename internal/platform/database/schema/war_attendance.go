package schema

// WarAttendanceTable represents the 'war.attendance' table
type WarAttendanceTable struct {
	Table        string
	WarID        string
	CastleID     string
	CastleName   string
	RegisteredBy string
	RegisteredAt string
}

// WarAttendance is the schema definition for war.attendance
var WarAttendance = WarAttendanceTable{
	Table:        "war.attendance",
	WarID:        "warid",
	CastleID:     "castleid",
	CastleName:   "castlename",
	RegisteredBy: "registeredby",
	RegisteredAt: "registeredat",
}

func (t WarAttendanceTable) Columns() []string {
	return []string{t.WarID, t.CastleID, t.CastleName, t.RegisteredBy, t.RegisteredAt}
}
