package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Response 是 Provider 请求的统一响应体。
// 连接握手填充 AccountID/Network/Balance, 交易提交填充 TransactionID。
type Response struct {
	AccountID     string `json:"accountId,omitempty"`
	Network       string `json:"network,omitempty"`
	Balance       string `json:"balance,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
	Success       bool   `json:"success"`
	UserRejected  bool   `json:"userRejected,omitempty"`
	Err           string `json:"error,omitempty"`
}

// Client 是与钱包 Provider 交互的唯一通道:
// 一个非对称的请求方法, 方法名 + 参数对象, 返回异步响应。
type Client interface {
	Request(ctx context.Context, method string, params interface{}) (*Response, error)
}

// requestEnvelope 是桥端点约定的请求格式
type requestEnvelope struct {
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// HTTPClient 通过 HTTP 调用钱包桥端点 (探测阶段从 Binding 拿到 Endpoint)。
type HTTPClient struct {
	endpoint string
	secret   string
	hc       *http.Client
}

func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		// 总超时由调用方的 ctx 控制, 这里只兜底
		hc: &http.Client{Timeout: 60 * time.Second},
	}
}

// WithPairingSecret 每个请求带上配对密钥, 桥端点用它鉴别调用方
func (c *HTTPClient) WithPairingSecret(secret string) *HTTPClient {
	c.secret = secret
	return c
}

func (c *HTTPClient) Request(ctx context.Context, method string, params interface{}) (*Response, error) {
	body, err := json.Marshal(requestEnvelope{Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("encode provider request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set("X-Pairing-Secret", c.secret)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider endpoint returned status %d", resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	return &out, nil
}

// Dial 按探测到的 Descriptor 建立请求通道
func Dial(desc Descriptor) (Client, error) {
	if !desc.Detected || desc.Endpoint == "" {
		return nil, fmt.Errorf("provider %s has no reachable endpoint", desc.Name)
	}
	return NewHTTPClient(desc.Endpoint), nil
}

// NewDialer 返回带配对密钥的拨号函数
func NewDialer(pairingSecret string) func(Descriptor) (Client, error) {
	return func(desc Descriptor) (Client, error) {
		if !desc.Detected || desc.Endpoint == "" {
			return nil, fmt.Errorf("provider %s has no reachable endpoint", desc.Name)
		}
		return NewHTTPClient(desc.Endpoint).WithPairingSecret(pairingSecret), nil
	}
}
