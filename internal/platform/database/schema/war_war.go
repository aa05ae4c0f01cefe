package schema

// WarWarTable represents the 'war.war' table
type WarWarTable struct {
	Table     string
	ID        string
	Name      string
	Type      string
	Date      string
	CreatedAt string
}

// WarWar is the schema definition for war.war
var WarWar = WarWarTable{
	Table:     "war.war",
	ID:        "id",
	Name:      "name",
	Type:      "type",
	Date:      "date",
	CreatedAt: "createdat",
}

func (t WarWarTable) Columns() []string {
	return []string{t.ID, t.Name, t.Type, t.Date, t.CreatedAt}
}
