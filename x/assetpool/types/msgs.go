package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreatePool     = "create_pool"
	TypeMsgSetPoolActive  = "set_pool_active"
	TypeMsgAttachAsset    = "attach_asset"
	TypeMsgAttachTranches = "attach_tranches"
	TypeMsgInvest         = "invest"
	TypeMsgRedeem         = "redeem"
	TypeMsgTradeShares    = "trade_shares"
	TypeMsgListShares     = "list_shares"
	TypeMsgBuyListing     = "buy_listing"
	TypeMsgCancelListing  = "cancel_listing"
)

// MsgCreatePool defines the CreatePool message
type MsgCreatePool struct {
	Creator           string `json:"creator"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	ManagementFeeBps  int64  `json:"management_fee_bps"`
	PerformanceFeeBps int64  `json:"performance_fee_bps"`
}

// Route implements sdk.Msg
func (msg MsgCreatePool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreatePool) Type() string { return TypeMsgCreatePool }

// ValidateBasic implements sdk.Msg
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return err
	}
	if msg.Name == "" {
		return fmt.Errorf("pool name cannot be empty")
	}
	return ValidateFees(msg.ManagementFeeBps, msg.PerformanceFeeBps)
}

// GetSigners implements sdk.Msg
func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreatePool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreatePool) Reset() { *msg = MsgCreatePool{} }

// String implements proto.Message
func (msg MsgCreatePool) String() string {
	return fmt.Sprintf("MsgCreatePool{Creator: %s, Name: %s}", msg.Creator, msg.Name)
}

// MsgCreatePoolResponse defines the CreatePool response
type MsgCreatePoolResponse struct {
	PoolID string `json:"pool_id"`
}

// MsgSetPoolActive defines the SetPoolActive message
type MsgSetPoolActive struct {
	Creator string `json:"creator"`
	PoolID  string `json:"pool_id"`
	Active  bool   `json:"active"`
}

// Route implements sdk.Msg
func (msg MsgSetPoolActive) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetPoolActive) Type() string { return TypeMsgSetPoolActive }

// ValidateBasic implements sdk.Msg
func (msg MsgSetPoolActive) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetPoolActive) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetPoolActive) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetPoolActive) Reset() { *msg = MsgSetPoolActive{} }

// String implements proto.Message
func (msg MsgSetPoolActive) String() string {
	return fmt.Sprintf("MsgSetPoolActive{PoolID: %s, Active: %v}", msg.PoolID, msg.Active)
}

// MsgSetPoolActiveResponse defines the SetPoolActive response
type MsgSetPoolActiveResponse struct{}

// MsgAttachAsset defines the AttachAsset message
type MsgAttachAsset struct {
	Creator string `json:"creator"`
	PoolID  string `json:"pool_id"`
	AssetID string `json:"asset_id"`
}

// Route implements sdk.Msg
func (msg MsgAttachAsset) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgAttachAsset) Type() string { return TypeMsgAttachAsset }

// ValidateBasic implements sdk.Msg
func (msg MsgAttachAsset) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.AssetID == "" {
		return fmt.Errorf("asset id cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgAttachAsset) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgAttachAsset) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgAttachAsset) Reset() { *msg = MsgAttachAsset{} }

// String implements proto.Message
func (msg MsgAttachAsset) String() string {
	return fmt.Sprintf("MsgAttachAsset{PoolID: %s, AssetID: %s}", msg.PoolID, msg.AssetID)
}

// MsgAttachAssetResponse defines the AttachAsset response
type MsgAttachAssetResponse struct{}

// MsgAttachTranches defines the AttachTranches message. It builds a
// senior/junior pair whose splits sum to 100%.
type MsgAttachTranches struct {
	Creator        string `json:"creator"`
	PoolID         string `json:"pool_id"`
	SeniorSplitBps int64  `json:"senior_split_bps"`
	SeniorYieldBps int64  `json:"senior_yield_bps"`
	JuniorYieldBps int64  `json:"junior_yield_bps"`
	SeniorSymbol   string `json:"senior_symbol"`
	JuniorSymbol   string `json:"junior_symbol"`
}

// Route implements sdk.Msg
func (msg MsgAttachTranches) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgAttachTranches) Type() string { return TypeMsgAttachTranches }

// ValidateBasic implements sdk.Msg
func (msg MsgAttachTranches) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.SeniorSplitBps <= 0 || msg.SeniorSplitBps >= BpsDenominator {
		return fmt.Errorf("senior split must be between 1 and %d bps", BpsDenominator-1)
	}
	if msg.SeniorSymbol == "" || msg.JuniorSymbol == "" {
		return fmt.Errorf("tranche token symbols cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgAttachTranches) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgAttachTranches) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgAttachTranches) Reset() { *msg = MsgAttachTranches{} }

// String implements proto.Message
func (msg MsgAttachTranches) String() string {
	return fmt.Sprintf("MsgAttachTranches{PoolID: %s, SeniorSplit: %d}", msg.PoolID, msg.SeniorSplitBps)
}

// MsgAttachTranchesResponse defines the AttachTranches response
type MsgAttachTranchesResponse struct {
	SeniorTrancheID string `json:"senior_tranche_id"`
	JuniorTrancheID string `json:"junior_tranche_id"`
}

// MsgInvest defines the Invest message. TrancheID is empty for untranched
// pools.
type MsgInvest struct {
	Investor  string `json:"investor"`
	PoolID    string `json:"pool_id"`
	TrancheID string `json:"tranche_id,omitempty"`
	Amount    string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgInvest) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgInvest) Type() string { return TypeMsgInvest }

// ValidateBasic implements sdk.Msg
func (msg MsgInvest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Investor); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.Amount == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgInvest) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Investor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgInvest) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgInvest) Reset() { *msg = MsgInvest{} }

// String implements proto.Message
func (msg MsgInvest) String() string {
	return fmt.Sprintf("MsgInvest{Investor: %s, PoolID: %s, Amount: %s}", msg.Investor, msg.PoolID, msg.Amount)
}

// MsgInvestResponse defines the Invest response
type MsgInvestResponse struct {
	SharesIssued string `json:"shares_issued"`
}

// MsgRedeem defines the Redeem message
type MsgRedeem struct {
	Investor  string `json:"investor"`
	PoolID    string `json:"pool_id"`
	TrancheID string `json:"tranche_id,omitempty"`
	Shares    string `json:"shares"`
}

// Route implements sdk.Msg
func (msg MsgRedeem) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRedeem) Type() string { return TypeMsgRedeem }

// ValidateBasic implements sdk.Msg
func (msg MsgRedeem) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Investor); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.Shares == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRedeem) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Investor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRedeem) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRedeem) Reset() { *msg = MsgRedeem{} }

// String implements proto.Message
func (msg MsgRedeem) String() string {
	return fmt.Sprintf("MsgRedeem{Investor: %s, PoolID: %s, Shares: %s}", msg.Investor, msg.PoolID, msg.Shares)
}

// MsgRedeemResponse defines the Redeem response
type MsgRedeemResponse struct {
	Payout string `json:"payout"`
}

// MsgTradeShares defines the TradeShares message. Both parties sign: the
// seller authorizes the share transfer, the buyer authorizes the payment.
type MsgTradeShares struct {
	Seller        string `json:"seller"`
	Buyer         string `json:"buyer"`
	PoolID        string `json:"pool_id"`
	TrancheID     string `json:"tranche_id,omitempty"`
	Shares        string `json:"shares"`
	PricePerShare string `json:"price_per_share"`
}

// Route implements sdk.Msg
func (msg MsgTradeShares) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTradeShares) Type() string { return TypeMsgTradeShares }

// ValidateBasic implements sdk.Msg
func (msg MsgTradeShares) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Seller); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Buyer); err != nil {
		return err
	}
	if msg.Seller == msg.Buyer {
		return ErrSelfTrade
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTradeShares) GetSigners() []sdk.AccAddress {
	seller, _ := sdk.AccAddressFromBech32(msg.Seller)
	buyer, _ := sdk.AccAddressFromBech32(msg.Buyer)
	return []sdk.AccAddress{seller, buyer}
}

// ProtoMessage implements proto.Message
func (*MsgTradeShares) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTradeShares) Reset() { *msg = MsgTradeShares{} }

// String implements proto.Message
func (msg MsgTradeShares) String() string {
	return fmt.Sprintf("MsgTradeShares{Seller: %s, Buyer: %s, Shares: %s}", msg.Seller, msg.Buyer, msg.Shares)
}

// MsgTradeSharesResponse defines the TradeShares response
type MsgTradeSharesResponse struct {
	Payment string `json:"payment"`
}

// MsgListShares defines the ListShares message
type MsgListShares struct {
	Seller        string `json:"seller"`
	PoolID        string `json:"pool_id"`
	TrancheID     string `json:"tranche_id,omitempty"`
	Shares        string `json:"shares"`
	PricePerShare string `json:"price_per_share"`
}

// Route implements sdk.Msg
func (msg MsgListShares) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgListShares) Type() string { return TypeMsgListShares }

// ValidateBasic implements sdk.Msg
func (msg MsgListShares) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Seller); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return ErrPoolNotFound
	}
	if msg.Shares == "" {
		return ErrInvalidAmount
	}
	if msg.PricePerShare == "" {
		return ErrInvalidPrice
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgListShares) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Seller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgListShares) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgListShares) Reset() { *msg = MsgListShares{} }

// String implements proto.Message
func (msg MsgListShares) String() string {
	return fmt.Sprintf("MsgListShares{Seller: %s, PoolID: %s, Shares: %s}", msg.Seller, msg.PoolID, msg.Shares)
}

// MsgListSharesResponse defines the ListShares response
type MsgListSharesResponse struct {
	ListingID string `json:"listing_id"`
}

// MsgBuyListing defines the BuyListing message
type MsgBuyListing struct {
	Buyer     string `json:"buyer"`
	ListingID string `json:"listing_id"`
}

// Route implements sdk.Msg
func (msg MsgBuyListing) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgBuyListing) Type() string { return TypeMsgBuyListing }

// ValidateBasic implements sdk.Msg
func (msg MsgBuyListing) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Buyer); err != nil {
		return err
	}
	if msg.ListingID == "" {
		return ErrListingNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgBuyListing) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Buyer)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgBuyListing) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgBuyListing) Reset() { *msg = MsgBuyListing{} }

// String implements proto.Message
func (msg MsgBuyListing) String() string {
	return fmt.Sprintf("MsgBuyListing{Buyer: %s, ListingID: %s}", msg.Buyer, msg.ListingID)
}

// MsgBuyListingResponse defines the BuyListing response
type MsgBuyListingResponse struct {
	Shares  string `json:"shares"`
	Payment string `json:"payment"`
}

// MsgCancelListing defines the CancelListing message
type MsgCancelListing struct {
	Seller    string `json:"seller"`
	ListingID string `json:"listing_id"`
}

// Route implements sdk.Msg
func (msg MsgCancelListing) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCancelListing) Type() string { return TypeMsgCancelListing }

// ValidateBasic implements sdk.Msg
func (msg MsgCancelListing) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Seller); err != nil {
		return err
	}
	if msg.ListingID == "" {
		return ErrListingNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCancelListing) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Seller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCancelListing) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCancelListing) Reset() { *msg = MsgCancelListing{} }

// String implements proto.Message
func (msg MsgCancelListing) String() string {
	return fmt.Sprintf("MsgCancelListing{Seller: %s, ListingID: %s}", msg.Seller, msg.ListingID)
}

// MsgCancelListingResponse defines the CancelListing response
type MsgCancelListingResponse struct{}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgCreatePool{}
	_ sdk.Msg = &MsgSetPoolActive{}
	_ sdk.Msg = &MsgAttachAsset{}
	_ sdk.Msg = &MsgAttachTranches{}
	_ sdk.Msg = &MsgInvest{}
	_ sdk.Msg = &MsgRedeem{}
	_ sdk.Msg = &MsgTradeShares{}
	_ sdk.Msg = &MsgListShares{}
	_ sdk.Msg = &MsgBuyListing{}
	_ sdk.Msg = &MsgCancelListing{}
)
