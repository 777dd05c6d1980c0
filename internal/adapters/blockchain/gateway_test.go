package blockchain

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/bindings"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/domain/models"
)

var (
	owner       = common.HexToAddress("0x1111111111111111111111111111111111111111")
	productAddr = common.HexToAddress("0x3333333333333333333333333333333333333333")
	nftAddr     = common.HexToAddress("0x4444444444444444444444444444444444444444")
)

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

// fakeNode answers JSON-RPC calls from a handler keyed by method
func fakeNode(t *testing.T, handle func(method string, params []json.RawMessage) (interface{}, *rpcError)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, rerr := handle(req.Method, req.Params)
		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		if rerr != nil {
			resp["error"] = rerr
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func callData(t *testing.T, raw json.RawMessage) (common.Address, []byte) {
	t.Helper()
	var arg struct {
		To    common.Address `json:"to"`
		Input hexutil.Bytes  `json:"input"`
		Data  hexutil.Bytes  `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &arg))
	if len(arg.Input) > 0 {
		return arg.To, arg.Input
	}
	return arg.To, arg.Data
}

func packOutput(t *testing.T, descriptor bindings.Descriptor, method string, values ...interface{}) string {
	t.Helper()
	parsed, err := descriptor.Parse()
	require.NoError(t, err)
	out, err := parsed.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	return hexutil.Encode(out)
}

func methodID(t *testing.T, descriptor bindings.Descriptor, method string) []byte {
	t.Helper()
	parsed, err := descriptor.Parse()
	require.NoError(t, err)
	return parsed.Methods[method].ID
}

func newTestGateway(t *testing.T, url string) (*Gateway, *Binder) {
	t.Helper()
	client := NewClient(&config.RuntimeConfig{Network: &config.Network{Name: "goerli", ChainID: 5, RPCURL: url}})
	t.Cleanup(client.Close)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGateway(client, log), NewBinder(client)
}

func handle(t *testing.T, binder *Binder, address common.Address, descriptor bindings.Descriptor) *models.ContractHandle {
	t.Helper()
	contract, err := binder.Bind(address, descriptor)
	require.NoError(t, err)
	return &models.ContractHandle{Address: address, ABI: descriptor.ID(), Contract: contract}
}

func TestGateway_Reads(t *testing.T) {
	statusID := methodID(t, bindings.ProductDescriptor, "status")
	tokenID := methodID(t, bindings.ProductDescriptor, "currentTokenId")
	balanceID := methodID(t, bindings.NFTDescriptor, "balanceOf")

	node := fakeNode(t, func(method string, params []json.RawMessage) (interface{}, *rpcError) {
		if method != "eth_call" {
			return nil, &rpcError{Code: -32601, Message: "method not found"}
		}
		to, data := callData(t, params[0])
		switch {
		case to == productAddr && bytes.HasPrefix(data, statusID):
			return packOutput(t, bindings.ProductDescriptor, "status", uint8(3)), nil
		case to == productAddr && bytes.HasPrefix(data, tokenID):
			return packOutput(t, bindings.ProductDescriptor, "currentTokenId", big.NewInt(12)), nil
		case to == nftAddr && bytes.HasPrefix(data, balanceID):
			return packOutput(t, bindings.NFTDescriptor, "balanceOf", big.NewInt(5)), nil
		}
		return nil, &rpcError{Code: 3, Message: "execution reverted"}
	})

	gateway, binder := newTestGateway(t, node.URL)
	ctx := context.Background()

	snapshot, err := gateway.ReadProduct(ctx, handle(t, binder, productAddr, bindings.ProductDescriptor))
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusIssued, snapshot.Status)
	assert.Equal(t, big.NewInt(12), snapshot.CurrentTokenID)
	assert.Equal(t, productAddr, snapshot.Address)

	balance, err := gateway.BalanceOf(ctx, handle(t, binder, nftAddr, bindings.NFTDescriptor), owner, big.NewInt(12))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), balance)

	_, err = gateway.ReadProduct(ctx, handle(t, binder, nftAddr, bindings.ProductDescriptor))
	assert.Error(t, err)
}

func revertData(t *testing.T, reason string) string {
	t.Helper()
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)
	return hexutil.Encode(append(hexutil.MustDecode("0x08c379a0"), packed...))
}

func signedTx(t *testing.T, key *ecdsa.PrivateKey) *types.Transaction {
	t.Helper()
	to := common.HexToAddress("0x5555555555555555555555555555555555555555")
	tx, err := types.SignNewTx(key, types.LatestSignerForChainID(big.NewInt(5)), &types.DynamicFeeTx{
		ChainID:   big.NewInt(5),
		Nonce:     1,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(2),
		Gas:       100_000,
		To:        &to,
		Data:      bindings.NewMarketplace().PackCancelListing(big.NewInt(7)),
	})
	require.NoError(t, err)
	return tx
}

func TestGateway_RevertReason(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	sender := crypto.PubkeyToAddress(key.PublicKey)

	t.Run("replays the call", func(t *testing.T) {
		from := make(chan common.Address, 1)
		node := fakeNode(t, func(method string, params []json.RawMessage) (interface{}, *rpcError) {
			var arg struct {
				From common.Address `json:"from"`
			}
			_ = json.Unmarshal(params[0], &arg)
			select {
			case from <- arg.From:
			default:
			}
			return nil, &rpcError{Code: 3, Message: "execution reverted: Sold out", Data: revertData(t, "Sold out")}
		})
		gateway, _ := newTestGateway(t, node.URL)

		reason := gateway.RevertReason(context.Background(), signedTx(t, key), &types.Receipt{Status: 0, BlockNumber: big.NewInt(10)})

		assert.Equal(t, "Sold out", reason)
		assert.Equal(t, sender, <-from)
	})

	t.Run("successful replay has no reason", func(t *testing.T) {
		node := fakeNode(t, func(string, []json.RawMessage) (interface{}, *rpcError) {
			return "0x", nil
		})
		gateway, _ := newTestGateway(t, node.URL)

		reason := gateway.RevertReason(context.Background(), signedTx(t, key), &types.Receipt{BlockNumber: big.NewInt(10)})
		assert.Equal(t, domain.UnknownRevertReason, reason)
	})
}

func TestClient_ChainID(t *testing.T) {
	node := fakeNode(t, func(method string, _ []json.RawMessage) (interface{}, *rpcError) {
		return "0x1", nil
	})

	client := NewClient(&config.RuntimeConfig{Network: &config.Network{ChainID: 5, RPCURL: node.URL}})
	defer client.Close()
	_, err := client.ChainID(context.Background())
	assert.ErrorContains(t, err, "chain ID mismatch")

	_, err = NewClient(&config.RuntimeConfig{}).Eth()
	assert.ErrorIs(t, err, ErrNoRPC)
}
