package clients

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	models "github.com/zdziszkee/bank-registry/internal/models"
)

// Config holds the settings for calling the registry's own HTTP API.
type Config struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// BankHTTPClient reads banks through the registry's HTTP API.
// Every failure (transport error, timeout, non-2xx status, bad body) is
// reported as an absent result.
type BankHTTPClient struct {
	httpClient *resty.Client
	logger     logrus.FieldLogger
}

// NewBankHTTPClient creates a client bound to cfg.BaseURL with a bounded timeout
func NewBankHTTPClient(cfg Config, logger logrus.FieldLogger) *BankHTTPClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &BankHTTPClient{
		httpClient: client,
		logger:     logger.WithField("component", "bank_client"),
	}
}

// GetBankByID calls GET /banks/{id}
func (c *BankHTTPClient) GetBankByID(ctx context.Context, id uuid.UUID) (*models.Bank, bool) {
	return c.get(ctx, "/banks/{id}", "id", id.String())
}

// GetBankBySwiftCode calls GET /banks/swift/{swiftCode}
func (c *BankHTTPClient) GetBankBySwiftCode(ctx context.Context, code string) (*models.Bank, bool) {
	return c.get(ctx, "/banks/swift/{swiftCode}", "swiftCode", code)
}

func (c *BankHTTPClient) get(ctx context.Context, path, param, value string) (*models.Bank, bool) {
	var bank models.Bank
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam(param, value).
		SetResult(&bank).
		Get(path)

	fields := logrus.Fields{"path": path, param: value}
	if err != nil {
		c.logger.WithFields(fields).WithError(err).Warn("Self-call failed")
		return nil, false
	}
	if resp.StatusCode() == http.StatusNotFound {
		c.logger.WithFields(fields).Debug("Self-call found no bank")
		return nil, false
	}
	if !resp.IsSuccess() {
		c.logger.WithFields(fields).WithField("status_code", resp.StatusCode()).Warn("Self-call returned an error status")
		return nil, false
	}

	return &bank, true
}
