package models

type BusinessDetails struct {
	Name       string `bson:"businessName" json:"business_name"`
	Address    string `bson:"businessAddress" json:"business_address"`
	City       string `bson:"businessCity" json:"business_city"`
	State      string `bson:"businessState" json:"business_state"`
	PostalCode string `bson:"businessPostalCode" json:"business_postal_code"`
	Phone      string `bson:"businessPhone" json:"business_phone"`
	Email      string `bson:"businessEmail" json:"business_email"`
	GSTIN      string `bson:"businessGSTIN" json:"business_gstin"`
}

type BillSettings struct {
	PaperWidth          int    `bson:"paperWidth" json:"paper_width"` // mm
	ShowLogo            bool   `bson:"showLogo" json:"show_logo"`
	ShowBusinessAddress bool   `bson:"showBusinessAddress" json:"show_business_address"`
	ShowGSTIN           bool   `bson:"showGSTIN" json:"show_gstin"`
	ShowFooterText      bool   `bson:"showFooterText" json:"show_footer_text"`
	FooterText          string `bson:"footerText" json:"footer_text"`
}

type ReportSettings struct {
	DefaultDateRange string `bson:"defaultDateRange" json:"default_date_range"` // today|week|month|year
	EnableExport     bool   `bson:"enableExport" json:"enable_export"`
	DefaultView      string `bson:"defaultView" json:"default_view"` // summary|detailed
	ShowTotals       bool   `bson:"showTotals" json:"show_totals"`
}

// AppSettings is stored one document per user.
type AppSettings struct {
	UserID     string          `bson:"_id" json:"user_id"`
	DefaultGST float64         `bson:"defaultGST" json:"default_gst"`
	Business   BusinessDetails `bson:"business" json:"business"`
	Bill       BillSettings    `bson:"billSettings" json:"bill_settings"`
	Report     ReportSettings  `bson:"reportSettings" json:"report_settings"`
}

// DefaultAppSettings is written on first read for a user that has no
// settings document yet.
func DefaultAppSettings(userID string) AppSettings {
	return AppSettings{
		UserID:     userID,
		DefaultGST: 18,
		Bill: BillSettings{
			PaperWidth:          80,
			ShowLogo:            true,
			ShowBusinessAddress: true,
			ShowGSTIN:           true,
			ShowFooterText:      true,
			FooterText:          "Thank you for your business!",
		},
		Report: ReportSettings{
			DefaultDateRange: "month",
			EnableExport:     true,
			DefaultView:      "summary",
			ShowTotals:       true,
		},
	}
}
