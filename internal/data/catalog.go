package data

type Platform struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// UserAppID is a betting-account identifier the user linked to a platform.
type UserAppID struct {
	ID        int64  `json:"id"`
	UserAppID string `json:"user_app_id"`
	App       string `json:"app"`
}

type UserPhone struct {
	ID      int64  `json:"id"`
	Phone   string `json:"phone"`
	Network int64  `json:"network"`
}

// Settings holds the merchant phones published by the remote service. Other keys are ignored.
type Settings struct {
	MoovMerchantPhone     string `json:"moov_merchant_phone"`
	MoovMarchandPhone     string `json:"moov_marchand_phone"`
	BFMoovMarchandPhone   string `json:"bf_moov_marchand_phone"`
	OrangeMarchandPhone   string `json:"orange_marchand_phone"`
	BFOrangeMarchandPhone string `json:"bf_orange_marchand_phone"`
}
