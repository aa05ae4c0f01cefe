package schema

// CodesLicenseCodeTable represents the 'codes.license_code' table
type CodesLicenseCodeTable struct {
	Table          string
	ID             string
	Code           string
	Status         string
	BuyerName      string
	Contact        string
	StartAt        string
	DurationMonths string
	EndAt          string
	CreatedAt      string
	UpdatedAt      string
}

// CodesLicenseCode is the schema definition for codes.license_code
var CodesLicenseCode = CodesLicenseCodeTable{
	Table:          "codes.license_code",
	ID:             "id",
	Code:           "code",
	Status:         "status",
	BuyerName:      "buyername",
	Contact:        "contact",
	StartAt:        "startat",
	DurationMonths: "durationmonths",
	EndAt:          "endat",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

func (t CodesLicenseCodeTable) Columns() []string {
	return []string{t.ID, t.Code, t.Status, t.BuyerName, t.Contact, t.StartAt, t.DurationMonths, t.EndAt, t.CreatedAt, t.UpdatedAt}
}
