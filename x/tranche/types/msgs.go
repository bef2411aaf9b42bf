package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreateTranche = "create_tranche"
)

// MsgCreateTranche defines the CreateTranche message
type MsgCreateTranche struct {
	Creator          string `json:"creator"`
	PoolID           string `json:"pool_id"`
	Class            string `json:"class"`
	PercentageBps    int64  `json:"percentage_bps"`
	ExpectedYieldBps int64  `json:"expected_yield_bps"`
	TokenSymbol      string `json:"token_symbol"`
}

// Route implements sdk.Msg
func (msg MsgCreateTranche) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreateTranche) Type() string { return TypeMsgCreateTranche }

// ValidateBasic implements sdk.Msg
func (msg MsgCreateTranche) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return fmt.Errorf("pool id cannot be empty")
	}
	if !ValidClass(msg.Class) {
		return ErrInvalidClass
	}
	if msg.PercentageBps <= 0 || msg.PercentageBps > BpsDenominator {
		return ErrInvalidSplit
	}
	if msg.ExpectedYieldBps < 0 {
		return ErrInvalidYield
	}
	if msg.TokenSymbol == "" {
		return fmt.Errorf("token symbol cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreateTranche) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreateTranche) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreateTranche) Reset() { *msg = MsgCreateTranche{} }

// String implements proto.Message
func (msg MsgCreateTranche) String() string {
	return fmt.Sprintf("MsgCreateTranche{PoolID: %s, Class: %s, Split: %d}", msg.PoolID, msg.Class, msg.PercentageBps)
}

// MsgCreateTrancheResponse defines the CreateTranche response
type MsgCreateTrancheResponse struct {
	TrancheID  string `json:"tranche_id"`
	TokenDenom string `json:"token_denom"`
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgCreateTranche{}
)
