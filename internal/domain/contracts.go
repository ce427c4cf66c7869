package domain

// Contract names as they appear in artifacts and in the network state file.
const (
	ContractToken        = "ZtlDevils"
	ContractWhitelist    = "ZtlDevilsWhitelist"
	ContractTreasury     = "ZtlDevilsTreasury"
	ContractAuctionHouse = "ZtlDevilsAuctionHouse"
	ContractPieces       = "ZtlDevilsPieces"
	ContractKey          = "ZtlKey"
)

// MaxAffiliateShares is the treasury's cap on the sum of affiliate shares
// (per-mille of the affiliate pool).
const MaxAffiliateShares = 1000
