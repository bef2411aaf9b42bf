package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgRecordPayment   = "record_payment"
	TypeMsgDistributeYield = "distribute_yield"
	TypeMsgMaturePool      = "mature_pool"
)

// MsgRecordPayment defines the RecordPayment message
type MsgRecordPayment struct {
	Manager string `json:"manager"`
	PoolID  string `json:"pool_id"`
	Amount  string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgRecordPayment) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRecordPayment) Type() string { return TypeMsgRecordPayment }

// ValidateBasic implements sdk.Msg
func (msg MsgRecordPayment) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return fmt.Errorf("pool id cannot be empty")
	}
	if msg.Amount == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRecordPayment) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRecordPayment) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRecordPayment) Reset() { *msg = MsgRecordPayment{} }

// String implements proto.Message
func (msg MsgRecordPayment) String() string {
	return fmt.Sprintf("MsgRecordPayment{PoolID: %s, Amount: %s}", msg.PoolID, msg.Amount)
}

// MsgRecordPaymentResponse defines the RecordPayment response
type MsgRecordPaymentResponse struct {
	PaymentEpoch int64 `json:"payment_epoch"`
}

// MsgDistributeYield defines the DistributeYield message
type MsgDistributeYield struct {
	Manager string `json:"manager"`
	PoolID  string `json:"pool_id"`
}

// Route implements sdk.Msg
func (msg MsgDistributeYield) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDistributeYield) Type() string { return TypeMsgDistributeYield }

// ValidateBasic implements sdk.Msg
func (msg MsgDistributeYield) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return fmt.Errorf("pool id cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgDistributeYield) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgDistributeYield) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgDistributeYield) Reset() { *msg = MsgDistributeYield{} }

// String implements proto.Message
func (msg MsgDistributeYield) String() string {
	return fmt.Sprintf("MsgDistributeYield{PoolID: %s}", msg.PoolID)
}

// MsgDistributeYieldResponse defines the DistributeYield response
type MsgDistributeYieldResponse struct {
	Distributed      string `json:"distributed"`
	DistributedEpoch int64  `json:"distributed_epoch"`
}

// MsgMaturePool defines the MaturePool message
type MsgMaturePool struct {
	Manager string `json:"manager"`
	PoolID  string `json:"pool_id"`
}

// Route implements sdk.Msg
func (msg MsgMaturePool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgMaturePool) Type() string { return TypeMsgMaturePool }

// ValidateBasic implements sdk.Msg
func (msg MsgMaturePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Manager); err != nil {
		return err
	}
	if msg.PoolID == "" {
		return fmt.Errorf("pool id cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgMaturePool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Manager)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgMaturePool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgMaturePool) Reset() { *msg = MsgMaturePool{} }

// String implements proto.Message
func (msg MsgMaturePool) String() string {
	return fmt.Sprintf("MsgMaturePool{PoolID: %s}", msg.PoolID)
}

// MsgMaturePoolResponse defines the MaturePool response
type MsgMaturePoolResponse struct{}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgRecordPayment{}
	_ sdk.Msg = &MsgDistributeYield{}
	_ sdk.Msg = &MsgMaturePool{}
)
