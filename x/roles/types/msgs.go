package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgGrantRole  = "grant_role"
	TypeMsgRevokeRole = "revoke_role"
)

// MsgGrantRole defines the GrantRole message
type MsgGrantRole struct {
	Authority string `json:"authority"`
	Address   string `json:"address"`
	Role      string `json:"role"`
}

// Route implements sdk.Msg
func (msg MsgGrantRole) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgGrantRole) Type() string { return TypeMsgGrantRole }

// ValidateBasic implements sdk.Msg
func (msg MsgGrantRole) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Address); err != nil {
		return err
	}
	if !ValidRole(msg.Role) {
		return ErrUnknownRole
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgGrantRole) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgGrantRole) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgGrantRole) Reset() { *msg = MsgGrantRole{} }

// String implements proto.Message
func (msg MsgGrantRole) String() string {
	return fmt.Sprintf("MsgGrantRole{Authority: %s, Address: %s, Role: %s}", msg.Authority, msg.Address, msg.Role)
}

// MsgGrantRoleResponse defines the GrantRole response
type MsgGrantRoleResponse struct {
	Address string `json:"address"`
	Role    string `json:"role"`
}

// MsgRevokeRole defines the RevokeRole message
type MsgRevokeRole struct {
	Authority string `json:"authority"`
	Address   string `json:"address"`
	Role      string `json:"role"`
}

// Route implements sdk.Msg
func (msg MsgRevokeRole) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRevokeRole) Type() string { return TypeMsgRevokeRole }

// ValidateBasic implements sdk.Msg
func (msg MsgRevokeRole) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Address); err != nil {
		return err
	}
	if !ValidRole(msg.Role) {
		return ErrUnknownRole
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRevokeRole) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRevokeRole) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRevokeRole) Reset() { *msg = MsgRevokeRole{} }

// String implements proto.Message
func (msg MsgRevokeRole) String() string {
	return fmt.Sprintf("MsgRevokeRole{Authority: %s, Address: %s, Role: %s}", msg.Authority, msg.Address, msg.Role)
}

// MsgRevokeRoleResponse defines the RevokeRole response
type MsgRevokeRoleResponse struct{}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgGrantRole{}
	_ sdk.Msg = &MsgRevokeRole{}
)
