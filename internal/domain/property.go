package domain

type Property struct {
	ID                   int64
	OwnerID              *int64
	Title                *string
	Description          *string
	Price                *float64
	Location             *string
	PropertyType         *string
	CommissionPercentage *float64
	IsExclusive          bool
	DossierURL           *string
	Images               []string
}

type PropertyI18n struct {
	PropertyID  int64
	Lang        string // one of routes.Languages
	Title       *string
	Description *string
}
