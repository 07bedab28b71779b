// Package chain is a minimal JSON-RPC client for EVM chains, covering only
// what the mint gate CLI needs: contract reads, transaction plumbing, and
// block headers for the entropy preview.
package chain

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// EVMClient is a minimal JSON-RPC client for EVM chains.
type EVMClient struct {
	url    string
	client *http.Client
}

// NewEVMClient creates a new EVM JSON-RPC client pointed at url.
func NewEVMClient(url string) *EVMClient {
	return &EVMClient{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// URL returns the RPC endpoint the client talks to.
func (c *EVMClient) URL() string { return c.url }

// CallContract calls a read function with the given calldata and returns the
// raw hex result.
func (c *EVMClient) CallContract(toAddr, calldata string) (string, error) {
	result, err := c.call("eth_call", map[string]string{
		"to":   toAddr,
		"data": calldata,
	}, "latest")
	if err != nil {
		return "", err
	}
	hexStr, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected result: %T", result)
	}
	return hexStr, nil
}

// GasPrice returns the current gas price.
func (c *EVMClient) GasPrice() (*big.Int, error) {
	return c.callBig("eth_gasPrice")
}

// ChainID returns the chain's ID.
func (c *EVMClient) ChainID() (*big.Int, error) {
	return c.callBig("eth_chainId")
}

// GetNonce returns the transaction count (nonce) for an address.
func (c *EVMClient) GetNonce(address string) (uint64, error) {
	n, err := c.callBig("eth_getTransactionCount", address, "latest")
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// EstimateGas estimates gas for a transaction. Value may be nil.
func (c *EVMClient) EstimateGas(from, to, data string, value *big.Int) (uint64, error) {
	params := map[string]string{
		"from": from,
		"to":   to,
	}
	if data != "" {
		params["data"] = data
	}
	if value != nil && value.Sign() > 0 {
		params["value"] = "0x" + value.Text(16)
	}
	n, err := c.callBig("eth_estimateGas", params, "latest")
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// SendRawTransaction broadcasts a signed raw transaction and returns its
// hash.
func (c *EVMClient) SendRawTransaction(rawTx string) (string, error) {
	result, err := c.call("eth_sendRawTransaction", rawTx)
	if err != nil {
		return "", err
	}
	hash, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected result: %T", result)
	}
	return hash, nil
}

// Header holds the block-header fields the gate cares about. Difficulty is
// the entropy input for the tier draw; post-merge nodes report prevRandao in
// the same field.
type Header struct {
	Number     uint64
	Timestamp  *big.Int
	Difficulty *big.Int
}

// LatestHeader returns the latest block's header.
func (c *EVMClient) LatestHeader() (*Header, error) {
	result, err := c.call("eth_getBlockByNumber", "latest", false)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("no latest block returned")
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	var rb struct {
		Number     string `json:"number"`
		Timestamp  string `json:"timestamp"`
		Difficulty string `json:"difficulty"`
	}
	if err := json.Unmarshal(raw, &rb); err != nil {
		return nil, fmt.Errorf("parsing block header: %w", err)
	}

	num, ok := parseBigHex(rb.Number)
	if !ok {
		return nil, fmt.Errorf("could not parse block number: %s", rb.Number)
	}
	ts, ok := parseBigHex(rb.Timestamp)
	if !ok {
		return nil, fmt.Errorf("could not parse block timestamp: %s", rb.Timestamp)
	}
	diff, ok := parseBigHex(rb.Difficulty)
	if !ok {
		diff = new(big.Int)
	}

	return &Header{
		Number:     num.Uint64(),
		Timestamp:  ts,
		Difficulty: diff,
	}, nil
}

// --- internal JSON-RPC plumbing ---

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *EVMClient) call(method string, params ...interface{}) (interface{}, error) {
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Post(c.url, "application/json", strings.NewReader(string(reqBody)))
	if err != nil {
		return nil, fmt.Errorf("RPC request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if rpcResp.Error != nil {
		return nil, fmt.Errorf("RPC error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	var result interface{}
	if err := json.Unmarshal(rpcResp.Result, &result); err != nil {
		return nil, fmt.Errorf("parsing result: %w", err)
	}

	return result, nil
}

// callBig runs an RPC method whose result is a single hex quantity.
func (c *EVMClient) callBig(method string, params ...interface{}) (*big.Int, error) {
	result, err := c.call(method, params...)
	if err != nil {
		return nil, err
	}
	hexStr, ok := result.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected result: %T", result)
	}
	n, ok := parseBigHex(hexStr)
	if !ok {
		return nil, fmt.Errorf("could not parse %s result: %s", method, hexStr)
	}
	return n, nil
}

// parseBigHex parses a 0x-prefixed hex quantity.
func parseBigHex(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	return new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
}
