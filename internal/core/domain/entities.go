package domain

// MembershipFee is the configured membership fee value
type MembershipFee struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// DefaultMembershipFee applies when no membership_fee setting is configured
var DefaultMembershipFee = MembershipFee{Amount: 1000, Currency: "BDT"}

// FeatureFlags toggles optional system behavior
type FeatureFlags struct {
	EnableMembershipPayment  bool `json:"enableMembershipPayment"`
	EnableEmailNotifications bool `json:"enableEmailNotifications"`
	EnableAutoApproveIncome  bool `json:"enableAutoApproveIncome"`
}

// DefaultFeatureFlags applies when no feature_flags setting is configured
var DefaultFeatureFlags = FeatureFlags{
	EnableMembershipPayment:  true,
	EnableEmailNotifications: true,
	EnableAutoApproveIncome:  true,
}
