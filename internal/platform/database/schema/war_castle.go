package schema

// WarCastleTable represents the 'war.castle' table
type WarCastleTable struct {
	Table            string
	ID               string
	Name             string
	Rank             string
	Type             string
	Giant            string
	BarracksArmor    string
	ArchersArmor     string
	BarracksPiercing string
	ArchersPiercing  string
	NormalRally      string
	SuperRally       string
	Drops            string
	AccountEmail     string
	AccountPassword  string
	Readiness        string
	CreatedAt        string
	UpdatedAt        string
}

// WarCastle is the schema definition for war.castle
var WarCastle = WarCastleTable{
	Table:            "war.castle",
	ID:               "id",
	Name:             "name",
	Rank:             "rank",
	Type:             "type",
	Giant:            "giant",
	BarracksArmor:    "barracksarmor",
	ArchersArmor:     "archersarmor",
	BarracksPiercing: "barrackspiercing",
	ArchersPiercing:  "archerspiercing",
	NormalRally:      "normalrally",
	SuperRally:       "superrally",
	Drops:            "drops",
	AccountEmail:     "accountemail",
	AccountPassword:  "accountpassword",
	Readiness:        "readiness",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

func (t WarCastleTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Rank, t.Type, t.Giant,
		t.BarracksArmor, t.ArchersArmor, t.BarracksPiercing, t.ArchersPiercing,
		t.NormalRally, t.SuperRally, t.Drops,
		t.AccountEmail, t.AccountPassword, t.Readiness,
		t.CreatedAt, t.UpdatedAt,
	}
}
