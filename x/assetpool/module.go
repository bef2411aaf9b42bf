package assetpool

import (
	"encoding/json"

	"cosmossdk.io/core/appmodule"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/grpc-ecosystem/grpc-gateway/runtime"

	"github.com/openrwa/rwa-chain/x/assetpool/keeper"
	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

const (
	ModuleName = types.ModuleName
)

var (
	_ module.AppModuleBasic = AppModuleBasic{}
	_ appmodule.AppModule   = AppModule{}
)

// AppModuleBasic defines the basic application module for assetpool
type AppModuleBasic struct{}

// Name returns the module's name
func (AppModuleBasic) Name() string {
	return ModuleName
}

// RegisterLegacyAminoCodec registers the module's types on the given LegacyAmino codec
func (AppModuleBasic) RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&types.MsgCreatePool{}, "assetpool/MsgCreatePool", nil)
	cdc.RegisterConcrete(&types.MsgSetPoolActive{}, "assetpool/MsgSetPoolActive", nil)
	cdc.RegisterConcrete(&types.MsgAttachAsset{}, "assetpool/MsgAttachAsset", nil)
	cdc.RegisterConcrete(&types.MsgAttachTranches{}, "assetpool/MsgAttachTranches", nil)
	cdc.RegisterConcrete(&types.MsgInvest{}, "assetpool/MsgInvest", nil)
	cdc.RegisterConcrete(&types.MsgRedeem{}, "assetpool/MsgRedeem", nil)
	cdc.RegisterConcrete(&types.MsgTradeShares{}, "assetpool/MsgTradeShares", nil)
	cdc.RegisterConcrete(&types.MsgListShares{}, "assetpool/MsgListShares", nil)
	cdc.RegisterConcrete(&types.MsgBuyListing{}, "assetpool/MsgBuyListing", nil)
	cdc.RegisterConcrete(&types.MsgCancelListing{}, "assetpool/MsgCancelListing", nil)
}

// RegisterInterfaces registers the module's interface types
func (AppModuleBasic) RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&types.MsgCreatePool{},
		&types.MsgSetPoolActive{},
		&types.MsgAttachAsset{},
		&types.MsgAttachTranches{},
		&types.MsgInvest{},
		&types.MsgRedeem{},
		&types.MsgTradeShares{},
		&types.MsgListShares{},
		&types.MsgBuyListing{},
		&types.MsgCancelListing{},
	)
}

// DefaultGenesis returns default genesis state as raw bytes
func (AppModuleBasic) DefaultGenesis(cdc codec.JSONCodec) json.RawMessage {
	return nil
}

// ValidateGenesis performs genesis state validation
func (AppModuleBasic) ValidateGenesis(cdc codec.JSONCodec, config client.TxEncodingConfig, bz json.RawMessage) error {
	return nil
}

// RegisterGRPCGatewayRoutes registers the gRPC Gateway routes for the module
func (AppModuleBasic) RegisterGRPCGatewayRoutes(clientCtx client.Context, mux *runtime.ServeMux) {
}

// AppModule implements an application module for the assetpool module
type AppModule struct {
	AppModuleBasic
	keeper *keeper.Keeper
}

// NewAppModule creates a new AppModule object
func NewAppModule(k *keeper.Keeper) AppModule {
	return AppModule{
		AppModuleBasic: AppModuleBasic{},
		keeper:         k,
	}
}

// Name returns the module's name
func (am AppModule) Name() string {
	return ModuleName
}

// RegisterServices registers module services
func (am AppModule) RegisterServices(cfg module.Configurator) {
	_ = keeper.NewMsgServerImpl(am.keeper)
}

// IsOnePerModuleType implements the depinject.OnePerModuleType interface
func (am AppModule) IsOnePerModuleType() {}

// IsAppModule implements the appmodule.AppModule interface
func (am AppModule) IsAppModule() {}
