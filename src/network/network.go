package network

import (
	"time"

	"lotus-ge/src/helpers"
	"lotus-ge/src/logger"
	"lotus-ge/src/models"

	"github.com/go-resty/resty/v2"
)

// -----------------------------------------------------------------------------

type NetworkManager struct {
	Config *models.MConfig
	Client *resty.Client
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewNetworkManager(cfg *models.MConfig, log *logger.Logger) *NetworkManager {
	client := resty.New()
	client.SetTimeout(time.Duration(cfg.Network.RequestTimeout) * time.Second)
	client.SetHeader("User-Agent", cfg.Network.UserAgent)

	return &NetworkManager{
		Config: cfg,
		Client: client,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// Get performs a single GET request. One attempt only: a connection failure
// or a non-200 status is a TransportError and the caller aborts the cycle
// rather than retrying mid-flight.
func (nm *NetworkManager) Get(urlStr string, params map[string]string) ([]byte, error) {
	req := nm.Client.R()
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(urlStr)
	if err != nil {
		nm.Logger.Error("Request to %s failed: %v", urlStr, err)
		return nil, helpers.NewTransportError("fetch failed", err)
	}

	if resp.StatusCode() != 200 {
		nm.Logger.Error("Request to %s returned status %d", urlStr, resp.StatusCode())
		return nil, helpers.NewTransportError(
			"fetch returned status "+resp.Status(), nil)
	}

	return resp.Body(), nil
}
