package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgRegisterAsset   = "register_asset"
	TypeMsgVerifyAsset     = "verify_asset"
	TypeMsgSetAssetManaged = "set_asset_managed"
	TypeMsgRejectAsset     = "reject_asset"
)

// MsgRegisterAsset defines the RegisterAsset message
type MsgRegisterAsset struct {
	Custodian     string `json:"custodian"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	ValueEstimate string `json:"value_estimate"`
}

// Route implements sdk.Msg
func (msg MsgRegisterAsset) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRegisterAsset) Type() string { return TypeMsgRegisterAsset }

// ValidateBasic implements sdk.Msg
func (msg MsgRegisterAsset) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Custodian); err != nil {
		return err
	}
	if msg.Name == "" {
		return fmt.Errorf("asset name cannot be empty")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRegisterAsset) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Custodian)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRegisterAsset) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRegisterAsset) Reset() { *msg = MsgRegisterAsset{} }

// String implements proto.Message
func (msg MsgRegisterAsset) String() string {
	return fmt.Sprintf("MsgRegisterAsset{Custodian: %s, Name: %s}", msg.Custodian, msg.Name)
}

// MsgRegisterAssetResponse defines the RegisterAsset response
type MsgRegisterAssetResponse struct {
	AssetID string `json:"asset_id"`
	Status  string `json:"status"`
}

// MsgVerifyAsset defines the VerifyAsset message
type MsgVerifyAsset struct {
	Verifier string `json:"verifier"`
	AssetID  string `json:"asset_id"`
}

// Route implements sdk.Msg
func (msg MsgVerifyAsset) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgVerifyAsset) Type() string { return TypeMsgVerifyAsset }

// ValidateBasic implements sdk.Msg
func (msg MsgVerifyAsset) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Verifier); err != nil {
		return err
	}
	if msg.AssetID == "" {
		return ErrAssetNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgVerifyAsset) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Verifier)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgVerifyAsset) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgVerifyAsset) Reset() { *msg = MsgVerifyAsset{} }

// String implements proto.Message
func (msg MsgVerifyAsset) String() string {
	return fmt.Sprintf("MsgVerifyAsset{Verifier: %s, AssetID: %s}", msg.Verifier, msg.AssetID)
}

// MsgVerifyAssetResponse defines the VerifyAsset response
type MsgVerifyAssetResponse struct {
	Status string `json:"status"`
}

// MsgSetAssetManaged defines the SetAssetManaged message
type MsgSetAssetManaged struct {
	Custodian string `json:"custodian"`
	AssetID   string `json:"asset_id"`
}

// Route implements sdk.Msg
func (msg MsgSetAssetManaged) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetAssetManaged) Type() string { return TypeMsgSetAssetManaged }

// ValidateBasic implements sdk.Msg
func (msg MsgSetAssetManaged) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Custodian); err != nil {
		return err
	}
	if msg.AssetID == "" {
		return ErrAssetNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetAssetManaged) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Custodian)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetAssetManaged) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetAssetManaged) Reset() { *msg = MsgSetAssetManaged{} }

// String implements proto.Message
func (msg MsgSetAssetManaged) String() string {
	return fmt.Sprintf("MsgSetAssetManaged{Custodian: %s, AssetID: %s}", msg.Custodian, msg.AssetID)
}

// MsgSetAssetManagedResponse defines the SetAssetManaged response
type MsgSetAssetManagedResponse struct {
	Status string `json:"status"`
}

// MsgRejectAsset defines the RejectAsset message
type MsgRejectAsset struct {
	Verifier string `json:"verifier"`
	AssetID  string `json:"asset_id"`
	Reason   string `json:"reason"`
}

// Route implements sdk.Msg
func (msg MsgRejectAsset) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRejectAsset) Type() string { return TypeMsgRejectAsset }

// ValidateBasic implements sdk.Msg
func (msg MsgRejectAsset) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Verifier); err != nil {
		return err
	}
	if msg.AssetID == "" {
		return ErrAssetNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRejectAsset) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Verifier)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRejectAsset) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRejectAsset) Reset() { *msg = MsgRejectAsset{} }

// String implements proto.Message
func (msg MsgRejectAsset) String() string {
	return fmt.Sprintf("MsgRejectAsset{Verifier: %s, AssetID: %s}", msg.Verifier, msg.AssetID)
}

// MsgRejectAssetResponse defines the RejectAsset response
type MsgRejectAssetResponse struct {
	Status string `json:"status"`
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgRegisterAsset{}
	_ sdk.Msg = &MsgVerifyAsset{}
	_ sdk.Msg = &MsgSetAssetManaged{}
	_ sdk.Msg = &MsgRejectAsset{}
)
