// Package grpcclient provides a pooled gRPC client for chain interaction
package grpcclient

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	assetpooltypes "github.com/openrwa/rwa-chain/x/assetpool/types"
	settlementtypes "github.com/openrwa/rwa-chain/x/settlement/types"
)

// Config holds gRPC client configuration
type Config struct {
	GRPCAddr      string
	ChainID       string
	AccountNumber uint64
	GasLimit      uint64
	GasPrice      string
	PoolSize      int           // Connection pool size
	Timeout       time.Duration // Request timeout
	RetryAttempts int           // Retry attempts on failure
	BatchSize     int           // Max messages per batch
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		GRPCAddr:      "localhost:9090",
		ChainID:       "rwachain-1",
		AccountNumber: 0,
		GasLimit:      200000,
		GasPrice:      "0.001uusdc",
		PoolSize:      10,
		Timeout:       5 * time.Second,
		RetryAttempts: 3,
		BatchSize:     100,
	}
}

// Client is a gRPC client with connection pooling and in-memory signing
type Client struct {
	config    *Config
	pool      []*grpc.ClientConn
	poolIndex uint64

	// Cached signer info
	privKey  cryptotypes.PrivKey
	pubKey   cryptotypes.PubKey
	address  sdk.AccAddress
	sequence uint64
	seqMu    sync.Mutex

	// Metrics
	txCount      uint64
	successCount uint64
	failCount    uint64
	totalLatency int64

	// TX encoder
	txConfig client.TxConfig
}

// NewClient creates a new gRPC client
func NewClient(config *Config, privKeyHex string) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	privKeyBytes, err := hex.DecodeString(privKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}

	privKey := &secp256k1.PrivKey{Key: privKeyBytes}
	pubKey := privKey.PubKey()
	address := sdk.AccAddress(pubKey.Address())

	c := &Client{
		config:   config,
		pool:     make([]*grpc.ClientConn, config.PoolSize),
		privKey:  privKey,
		pubKey:   pubKey,
		address:  address,
		sequence: 0,
	}

	for i := 0; i < config.PoolSize; i++ {
		conn, err := grpc.Dial(
			config.GRPCAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(1024*1024*10), // 10MB
				grpc.MaxCallSendMsgSize(1024*1024*10),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("connect to gRPC: %w", err)
		}
		c.pool[i] = conn
	}

	return c, nil
}

// getConn returns a connection from the pool (round-robin)
func (c *Client) getConn() *grpc.ClientConn {
	idx := atomic.AddUint64(&c.poolIndex, 1) % uint64(len(c.pool))
	return c.pool[idx]
}

// nextSequence atomically increments and returns the next sequence number
func (c *Client) nextSequence() uint64 {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()
	seq := c.sequence
	c.sequence++
	return seq
}

// Address returns the signer's account address
func (c *Client) Address() string {
	return c.address.String()
}

// TxResult contains the result of a broadcast operation
type TxResult struct {
	TxHash  string
	Success bool
	Latency time.Duration
	Error   error
}

// Invest submits an investment into a pool or tranche
func (c *Client) Invest(ctx context.Context, poolID, trancheID, amount string) *TxResult {
	msg := &assetpooltypes.MsgInvest{
		Investor:  c.address.String(),
		PoolID:    poolID,
		TrancheID: trancheID,
		Amount:    amount,
	}
	return c.broadcast(ctx, []sdk.Msg{msg})
}

// Redeem submits a share redemption
func (c *Client) Redeem(ctx context.Context, poolID, trancheID, shares string) *TxResult {
	msg := &assetpooltypes.MsgRedeem{
		Investor:  c.address.String(),
		PoolID:    poolID,
		TrancheID: trancheID,
		Shares:    shares,
	}
	return c.broadcast(ctx, []sdk.Msg{msg})
}

// BuyListing submits a listing purchase
func (c *Client) BuyListing(ctx context.Context, listingID string) *TxResult {
	msg := &assetpooltypes.MsgBuyListing{
		Buyer:     c.address.String(),
		ListingID: listingID,
	}
	return c.broadcast(ctx, []sdk.Msg{msg})
}

// RecordPayment submits an asset payment as the pool manager
func (c *Client) RecordPayment(ctx context.Context, poolID, amount string) *TxResult {
	msg := &settlementtypes.MsgRecordPayment{
		Manager: c.address.String(),
		PoolID:  poolID,
		Amount:  amount,
	}
	return c.broadcast(ctx, []sdk.Msg{msg})
}

// DistributeYield triggers the waterfall distribution for a pool
func (c *Client) DistributeYield(ctx context.Context, poolID string) *TxResult {
	msg := &settlementtypes.MsgDistributeYield{
		Manager: c.address.String(),
		PoolID:  poolID,
	}
	return c.broadcast(ctx, []sdk.Msg{msg})
}

// BatchInvestment represents one investment in a batch
type BatchInvestment struct {
	PoolID    string
	TrancheID string
	Amount    string
}

// BatchInvest places multiple investments in a single transaction
func (c *Client) BatchInvest(ctx context.Context, investments []BatchInvestment) *TxResult {
	if len(investments) == 0 {
		return &TxResult{Error: fmt.Errorf("no investments to place")}
	}
	if len(investments) > c.config.BatchSize {
		return &TxResult{Error: fmt.Errorf("batch size %d exceeds max %d", len(investments), c.config.BatchSize)}
	}

	msgs := make([]sdk.Msg, len(investments))
	for i, investment := range investments {
		msgs[i] = &assetpooltypes.MsgInvest{
			Investor:  c.address.String(),
			PoolID:    investment.PoolID,
			TrancheID: investment.TrancheID,
			Amount:    investment.Amount,
		}
	}

	return c.broadcast(ctx, msgs)
}

// broadcast builds, signs, and broadcasts a transaction
func (c *Client) broadcast(ctx context.Context, msgs []sdk.Msg) *TxResult {
	start := time.Now()
	result := &TxResult{}

	atomic.AddUint64(&c.txCount, uint64(len(msgs)))

	seq := c.nextSequence()

	txBytes, err := c.buildSignedTx(msgs, seq)
	if err != nil {
		result.Error = err
		result.Latency = time.Since(start)
		atomic.AddUint64(&c.failCount, uint64(len(msgs)))
		return result
	}

	conn := c.getConn()
	txClient := NewTxServiceClient(conn)

	resp, err := txClient.BroadcastTx(ctx, &BroadcastTxRequest{
		TxBytes: txBytes,
		Mode:    BroadcastMode_BROADCAST_MODE_ASYNC,
	})

	result.Latency = time.Since(start)
	atomic.AddInt64(&c.totalLatency, int64(result.Latency))

	if err != nil {
		result.Error = err
		atomic.AddUint64(&c.failCount, uint64(len(msgs)))
		return result
	}

	if resp.TxResponse.Code == 0 {
		result.Success = true
		result.TxHash = resp.TxResponse.TxHash
		atomic.AddUint64(&c.successCount, uint64(len(msgs)))
	} else {
		result.Error = fmt.Errorf("tx failed: %s", resp.TxResponse.RawLog)
		atomic.AddUint64(&c.failCount, uint64(len(msgs)))
	}

	return result
}

// buildSignedTx builds and signs a multi-message transaction in memory
func (c *Client) buildSignedTx(msgs []sdk.Msg, sequence uint64) ([]byte, error) {
	txBuilder := c.txConfig.NewTxBuilder()

	if err := txBuilder.SetMsgs(msgs...); err != nil {
		return nil, err
	}

	fee := sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(int64(c.config.GasLimit)*10)))
	txBuilder.SetFeeAmount(fee)
	txBuilder.SetGasLimit(c.config.GasLimit * uint64(len(msgs)))

	sigV2 := signing.SignatureV2{
		PubKey: c.pubKey,
		Data: &signing.SingleSignatureData{
			SignMode:  signing.SignMode_SIGN_MODE_DIRECT,
			Signature: nil,
		},
		Sequence: sequence,
	}

	if err := txBuilder.SetSignatures(sigV2); err != nil {
		return nil, err
	}

	signerData := authsigning.SignerData{
		ChainID:       c.config.ChainID,
		AccountNumber: c.config.AccountNumber,
		Sequence:      sequence,
	}

	signBytes, err := authsigning.GetSignBytesAdapter(
		context.Background(),
		c.txConfig.SignModeHandler(),
		signing.SignMode_SIGN_MODE_DIRECT,
		signerData,
		txBuilder.GetTx(),
	)
	if err != nil {
		return nil, err
	}

	signature, err := c.privKey.Sign(signBytes)
	if err != nil {
		return nil, err
	}

	sigV2.Data = &signing.SingleSignatureData{
		SignMode:  signing.SignMode_SIGN_MODE_DIRECT,
		Signature: signature,
	}

	if err := txBuilder.SetSignatures(sigV2); err != nil {
		return nil, err
	}

	return c.txConfig.TxEncoder()(txBuilder.GetTx())
}

// GetMetrics returns current client metrics
func (c *Client) GetMetrics() (txCount, successCount, failCount uint64, avgLatency time.Duration) {
	txCount = atomic.LoadUint64(&c.txCount)
	successCount = atomic.LoadUint64(&c.successCount)
	failCount = atomic.LoadUint64(&c.failCount)

	if successCount > 0 {
		avgLatency = time.Duration(atomic.LoadInt64(&c.totalLatency) / int64(successCount))
	}
	return
}

// ResetMetrics resets all metrics
func (c *Client) ResetMetrics() {
	atomic.StoreUint64(&c.txCount, 0)
	atomic.StoreUint64(&c.successCount, 0)
	atomic.StoreUint64(&c.failCount, 0)
	atomic.StoreInt64(&c.totalLatency, 0)
}

// Close closes all connections in the pool
func (c *Client) Close() error {
	for _, conn := range c.pool {
		if err := conn.Close(); err != nil {
			return err
		}
	}
	return nil
}

// Placeholder types for gRPC (would be generated from proto)
type TxServiceClient interface {
	BroadcastTx(ctx context.Context, req *BroadcastTxRequest, opts ...grpc.CallOption) (*BroadcastTxResponse, error)
}

type BroadcastTxRequest struct {
	TxBytes []byte
	Mode    BroadcastMode
}

type BroadcastMode int

const (
	BroadcastMode_BROADCAST_MODE_ASYNC BroadcastMode = iota
	BroadcastMode_BROADCAST_MODE_SYNC
	BroadcastMode_BROADCAST_MODE_BLOCK
)

type BroadcastTxResponse struct {
	TxResponse *TxResponse
}

type TxResponse struct {
	TxHash string
	Code   uint32
	RawLog string
}

func NewTxServiceClient(conn *grpc.ClientConn) TxServiceClient {
	return &txServiceClient{conn: conn}
}

type txServiceClient struct {
	conn *grpc.ClientConn
}

func (c *txServiceClient) BroadcastTx(ctx context.Context, req *BroadcastTxRequest, opts ...grpc.CallOption) (*BroadcastTxResponse, error) {
	// Would issue the generated cosmos.tx.v1beta1 service call
	return &BroadcastTxResponse{
		TxResponse: &TxResponse{
			TxHash: "placeholder",
			Code:   0,
		},
	}, nil
}
